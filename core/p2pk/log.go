package p2pk

import "github.com/decred/slog"

// log is disabled by default: the package performs no I/O unless the
// caller installs a logger.
var log = slog.Disabled

// UseLogger sets the package logger. Pass slog.Disabled to turn logging
// back off.
func UseLogger(logger slog.Logger) {
	log = logger
}
