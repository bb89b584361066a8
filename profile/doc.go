// Package profile provides optional runtime profiling for the lambdapp
// binaries.
//
// # Overview
//
// This package integrates [github.com/pkg/profile] to provide runtime
// profiling capabilities with conditional compilation support. Profiling is
// optional and must be enabled at build time using the "pprof" build tag.
//
// When built with profiling disabled (default), all operations are no-ops
// with zero runtime overhead.
//
// # Available Profiling Modes
//
// The following profiling modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
// The profiler is configured with a [Config] built through functional
// options and started with [Config.Start]:
//
//	var cfg profile.Config = func() (string, string, bool) {
//	    return "", "", false
//	}
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the specified directory with names matching
// the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// # Command-Line Usage
//
// lambda-pp exposes profiling through command-line flags when built with
// the pprof tag:
//
//	# Enable CPU profiling (writes to default cache directory)
//	lambda-pp --pprof-mode cpu input.c
//
//	# Enable heap profiling with custom output directory
//	lambda-pp --pprof-mode heap --pprof-dir ./profiles input.c
//
// The default output directory is:
//
//	$XDG_CACHE_HOME/lambda-pp/pprof   (Linux/Unix)
//	~/Library/Caches/lambda-pp/pprof  (macOS)
//	%LocalAppData%\lambda-pp\pprof    (Windows)
//
// # Analyzing Profile Data
//
// Use the go tool pprof command to analyze profile data:
//
//	# Analyze a CPU profile
//	go tool pprof /tmp/profiles/cpu.pprof
//
//	# Open web UI on specific port
//	go tool pprof -http=localhost:8080 /tmp/profiles/cpu.pprof
//
//	# Compare two profiles
//	go tool pprof -base=old.pprof new.pprof
//
// When built with the pprof tag, this package also imports [net/http/pprof],
// which registers HTTP handlers for runtime profiling at /debug/pprof/ if
// the application starts an HTTP server.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
