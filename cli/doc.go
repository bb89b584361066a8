// Package cli contains the command line interface for lambda-pp.
//
// # Usage
//
// The tool reads one C source file (or stdin with '-'), expands every
// lambda expression into a hoisted top-level function, and writes the
// transformed translation unit to stdout:
//
//	lambda-pp input.c | cc -xc - -o output
//
// Flags:
//
//   - -k, --keyword: identifier that introduces a lambda expression
//     (default "lambda")
//   - -o, --output: write transformed source to a file instead of stdout
//   - -V, --version: print version information and quit
//
// # Configuration
//
// Flag defaults are read from config.json or config.yaml in the user
// configuration directory (e.g., ~/.config/lambda-pp). Command-line flags
// override config file values. Example config.yaml:
//
//	log_level: debug
//	keyword: lambda
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//
// All diagnostics go to stderr; stdout carries only transformed source.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/lambda-pp/pprof)
package cli
