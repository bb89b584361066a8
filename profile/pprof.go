//go:build pprof

package profile

import (
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Modes returns the selectable profiling modes, sorted. The "quiet"
// entry only suppresses profiler output and is not offered as a mode.
var Modes = sync.OnceValue(
	func() []string {
		names := make([]string, 0, len(mode)-1)
		for name := range mode {
			if name != "quiet" {
				names = append(names, name)
			}
		}

		slices.Sort(names)

		return names
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
	"quiet":     profile.Quiet,
}

type control struct {
	opts []func(*profile.Profile)
}

func start(name, path string, quiet bool) interface{ Stop() } {
	c := newControl(withMode(name))

	// An unrecognized mode contributes nothing, so nothing to profile.
	if len(c.opts) == 0 {
		return ignore{}
	}

	return profile.Start(
		apply(c, withPath(path), withQuiet(quiet)).opts...,
	)
}

func withMode(name string) Option {
	return func(c control) control {
		if fn, ok := mode[name]; ok {
			c.opts = append(c.opts, fn)
		}

		return c
	}
}

func withPath(dir string) Option {
	return func(c control) control {
		if dir != "" {
			c.opts = append(c.opts, profile.ProfilePath(dir))
		}

		return c
	}
}

func withQuiet(on bool) Option {
	return func(c control) control {
		if on {
			c.opts = append(c.opts, profile.Quiet)
		}

		return c
	}
}
