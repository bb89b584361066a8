//go:build pprof

package profile

// Option transforms a profiler control value.
type Option func(control) control

// apply folds the given options over c in order.
func apply(c control, opts ...Option) control {
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

// newControl builds a control from the given options.
func newControl(opts ...Option) control {
	return apply(control{}, opts...)
}
