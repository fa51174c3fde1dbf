package regex

import "go.uber.org/zap"

// Option configures a Pattern at Compile time.
type Option func(*options)

type options struct {
	log    *zap.Logger
	pool   PoolConfig
	hasCfg bool
}

// WithLogger attaches a zap logger that the lexer, postfix, nfa and sim
// stages emit Debug records to (class folding logs nothing). Compile defaults to zap.NewNop() — a pattern compiled
// without this option produces no log output at all.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithDebug is a shorthand for a development zap logger at debug level,
// useful for tracing the pipeline stages while iterating on a pattern.
func WithDebug() Option {
	return func(o *options) {
		l, err := zap.NewDevelopment()
		if err != nil {
			l = zap.NewNop()
		}
		o.log = l
	}
}

// WithPoolConfig overrides the pool sizes Compile uses, instead of the
// environment/default sizes LoadPoolConfig would otherwise resolve.
func WithPoolConfig(cfg PoolConfig) Option {
	return func(o *options) { o.pool = cfg; o.hasCfg = true }
}

func resolveOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasCfg {
		o.pool = LoadPoolConfig()
	}
	return o
}
