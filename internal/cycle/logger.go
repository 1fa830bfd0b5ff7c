package cycle

import "fmt"

// Logger is the logging surface the loop needs. *zap.SugaredLogger satisfies
// it on the host; firmware builds use PrintLogger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// PrintLogger writes every level through the builtin println, which TinyGo
// routes to the board's serial console. It has no concept of levels.
type PrintLogger struct{}

// Debugf prints a formatted message.
func (PrintLogger) Debugf(format string, args ...any) {
	println(fmt.Sprintf(format, args...))
}

// Infof prints a formatted message.
func (PrintLogger) Infof(format string, args ...any) {
	println(fmt.Sprintf(format, args...))
}

// Warnf prints a formatted message.
func (PrintLogger) Warnf(format string, args ...any) {
	println(fmt.Sprintf(format, args...))
}

// Errorf prints a formatted message.
func (PrintLogger) Errorf(format string, args ...any) {
	println(fmt.Sprintf(format, args...))
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
