// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder on stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (InfoKV, WarnKV, ErrorKV, etc.).
//
// Host services accept a context and extract the logger from it. The clock
// loop itself takes the *zap.SugaredLogger through its own small interface.
package logger
