package jsonpath

import "golang.org/x/time/rate"

// Configuration binds a Provider and a set of behavioral options to an
// evaluation, generalizing the original Jayway json-path
// Configuration/ConfigurationBuilder pair (see SPEC_FULL.md) into Go's
// functional-options idiom.
type Configuration struct {
	provider Provider

	throwOnMissingProperty bool
	maxScanDepth           int
	scanLimiter            *rate.Limiter
}

// Option configures a Configuration.
type Option func(*Configuration)

// WithThrowOnMissingProperty makes Field lookups raise ErrPathNotFound
// instead of silently yielding nil when a key is absent (§6's
// THROW_ON_MISSING_PROPERTY). Inside array context the raise does not fail
// the evaluation: the element that lacks the key is dropped.
func WithThrowOnMissingProperty() Option {
	return func(c *Configuration) { c.throwOnMissingProperty = true }
}

// WithMaxScanDepth bounds the recursion depth of the Scan ("..") token
// filter: scanAll stops descending once it has visited this many nested
// containers, keeping everything collected so far rather than raising.
// Zero (the default) means unlimited.
func WithMaxScanDepth(depth int) Option {
	return func(c *Configuration) { c.maxScanDepth = depth }
}

// WithProvider selects a non-default Provider, such as one of the adapters
// in providers/gjsonprovider, providers/gabsprovider, or
// providers/fastjsonprovider.
func WithProvider(p Provider) Option {
	return func(c *Configuration) { c.provider = p }
}

// WithScanLimiter throttles the Scan token filter's recursive descent to
// limiter's rate, waiting on limiter once per container node visited. See
// ratelimit.go.
func WithScanLimiter(limiter *rate.Limiter) Option {
	return func(c *Configuration) { c.scanLimiter = limiter }
}

// DefaultConfiguration returns the zero-option configuration using
// DefaultProvider, mirroring Configuration.defaultConfiguration().
func DefaultConfiguration(opts ...Option) *Configuration {
	c := &Configuration{provider: DefaultProvider{}}
	for _, o := range opts {
		o(c)
	}
	return c
}

// With returns a copy of c with additional options applied, mirroring
// Configuration.options(Option...) from the original builder.
func (c *Configuration) With(opts ...Option) *Configuration {
	cp := *c
	for _, o := range opts {
		o(&cp)
	}
	return &cp
}

// Provider returns the configuration's Provider.
func (c *Configuration) Provider() Provider {
	if c == nil || c.provider == nil {
		return DefaultProvider{}
	}
	return c.provider
}
