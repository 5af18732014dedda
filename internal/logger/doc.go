// Package logger wraps zap for the installer:
//   - a global sugared logger with a console encoder on stderr,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing for the --log-level flag,
//   - leveled convenience functions (Infof, WarnKV, etc.).
//
// Every installation step receives a context and logs through it, so the step
// name travels with each line.
package logger
