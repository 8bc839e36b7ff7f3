package outbound

import "github.com/oklahomer/go-kasumi/logger"

// Logger is the subset of logging calls Sender makes.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// kasumiLogger forwards to go-kasumi's package-level logger.
type kasumiLogger struct{}

func (kasumiLogger) Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }
func (kasumiLogger) Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func (kasumiLogger) Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func (kasumiLogger) Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }

// DefaultLogger returns a Logger writing through go-kasumi's logger.
func DefaultLogger() Logger {
	return kasumiLogger{}
}

// LogPrinter is a Printer that writes echoed messages through a Logger.
type LogPrinter struct {
	Logger Logger
}

var _ Printer = (*LogPrinter)(nil)

// Print writes text at info level.
func (p *LogPrinter) Print(text string) error {
	l := p.Logger
	if l == nil {
		l = DefaultLogger()
	}
	l.Infof("[echo] %s", text)
	return nil
}
