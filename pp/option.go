package pp

import "github.com/graphitemaster/lambdapp/log"

// DefaultKeyword introduces a lambda expression unless overridden with
// [WithKeyword].
const DefaultKeyword = "lambda"

// options holds the engine configuration shared by Parse and Expand.
type options struct {
	keyword string
	logger  log.Logger
}

// Option applies a configuration option to the engine.
type Option func(*options)

func makeOptions(opts ...Option) options {
	cfg := options{keyword: DefaultKeyword}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.keyword == "" {
		cfg.keyword = DefaultKeyword
	}

	return cfg
}

// WithKeyword sets the identifier that introduces a lambda expression.
func WithKeyword(keyword string) Option {
	return func(o *options) {
		o.keyword = keyword
	}
}

// WithLogger sets the logger used for scan diagnostics. The zero
// [log.Logger] is silent.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
