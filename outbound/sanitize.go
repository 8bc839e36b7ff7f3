package outbound

import (
	"strings"
	"unicode"
)

// Ellipsis is appended to truncated messages.
const Ellipsis = "…"

// Sanitize prepares text for a single chat line.
// Runs of CR and LF become one space, other control characters are removed and
// surrounding whitespace is trimmed. When the result is longer than maxLen runes it
// is cut and terminated with Ellipsis so that the total never exceeds maxLen.
func Sanitize(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	inBreak := false
	for _, r := range text {
		switch {
		case r == '\r' || r == '\n':
			if !inBreak {
				b.WriteRune(' ')
			}
			inBreak = true
			continue
		case r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
			// dropped
		default:
			b.WriteRune(r)
		}
		inBreak = false
	}

	return truncate(strings.TrimSpace(b.String()), maxLen)
}

func truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	ellipsis := []rune(Ellipsis)
	if maxLen <= len(ellipsis) {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-len(ellipsis)]) + Ellipsis
}
