// Package log is the structured logger shared by the jexpr packages.
//
// It wraps [log/slog] with a fixed set of levels (including [LevelTrace],
// used by the parser to trace productions), two output formats and a
// compact "pretty" text handler for interactive use.
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Debug("filter applied", slog.String("name", "tojson"))
//
// The zero [Logger] discards everything, so components can hold one by
// value without checking whether logging was configured.
//
// A package-level default logger is returned by [Default] and reconfigured
// with [Config]. Components that are not given an explicit logger use it.
package log
