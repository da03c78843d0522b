package core

// Option configures how a function is wrapped.
type Option func(*config)

// Declare narrows the declared type of the named parameter with a matcher.
// The argument must satisfy both the Go parameter type and the matcher.
func Declare(param string, matcher Matcher) Option {
	return func(c *config) {
		if c.declared == nil {
			c.declared = make(map[string]Matcher)
		}

		c.declared[param] = matcher
	}
}

// DeclareResult narrows the declared type of the result at index with a matcher.
func DeclareResult(index int, matcher Matcher) Option {
	return func(c *config) {
		if c.declaredResults == nil {
			c.declaredResults = make(map[int]Matcher)
		}

		c.declaredResults[index] = matcher
	}
}

// Named gives the function's parameters names, in order. Parameters without
// a name are reported as arg0, arg1, and so on.
func Named(names ...string) Option {
	return func(c *config) {
		c.names = names
	}
}

// WithCoercion lets numeric arguments produced by decoders (json.Number,
// float64, int) bind to any numeric parameter type when the conversion is
// lossless.
func WithCoercion() Option {
	return func(c *config) {
		c.coerce = true
	}
}

// WithName overrides the function name used in error messages.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

type config struct {
	name            string
	names           []string
	declared        map[string]Matcher
	declaredResults map[int]Matcher
	coerce          bool
}

func newConfig(opts []Option) config {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
