// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable output formats, levels, time layouts,
// and caller information that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("translation complete", slog.Int("lambdas", n))
//
// # Default Logger
//
// Package-level functions ([Debug], [Info], [Warn], [Error]) write to a
// default logger on standard error. [Config] reconfigures it:
//
//	log.Config(log.WithLevel(log.LevelDebug), log.WithFormat(log.FormatText))
//
// All diagnostics go to standard error: standard output is reserved for
// the transformed source text.
package log
