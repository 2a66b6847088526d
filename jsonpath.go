// Package jsonpath implements JSONPath expression compilation and
// evaluation: a tokenizer, a token-filter dispatch engine, and a predicate
// evaluator for "[?(...)]" filters, all driven off a pluggable Provider so
// the underlying JSON representation is never hard-coded against one
// library.
package jsonpath

import (
	"context"
)

// CompiledPath is a parsed, reusable JSONPath expression. Compiling once and
// calling Read many times avoids re-tokenizing the path string per call.
type CompiledPath struct {
	raw      string
	tokens   []token
	filters  []*Filter
	definite bool
}

// Compile parses path into a CompiledPath. externalFilters are bound,
// positionally and in order, to every "[?]" placeholder the path contains;
// Compile fails if the counts don't match.
func Compile(path string, externalFilters ...*Filter) (*CompiledPath, error) {
	tokens, err := tokenize(path)
	if err != nil {
		return nil, err
	}
	if tokens[0].fragment == "@" {
		return nil, newError(ErrInvalidPath, "a relative '@' path is only valid inside a predicate")
	}
	placeholders := 0
	definite := true
	for _, t := range tokens {
		if t.kind == kindArrayQuery {
			placeholders++
		}
		if !t.isRoot && !t.definite {
			definite = false
		}
	}
	if placeholders != len(externalFilters) {
		return nil, newErrorf(ErrInvalidPath,
			"path has %d \"[?]\" placeholder(s) but %d filter(s) were supplied", placeholders, len(externalFilters))
	}
	return &CompiledPath{raw: path, tokens: tokens, filters: externalFilters, definite: definite}, nil
}

// MustCompile is Compile, panicking on error — intended for package-level
// path literals.
func MustCompile(path string, externalFilters ...*Filter) *CompiledPath {
	cp, err := Compile(path, externalFilters...)
	if err != nil {
		panic(err)
	}
	return cp
}

// String returns the original path text.
func (cp *CompiledPath) String() string { return cp.raw }

// IsDefinite reports whether the path is guaranteed to match at most one
// node, per §4.4/§9 — Root/Field/single-index-only paths.
func (cp *CompiledPath) IsDefinite() bool { return cp.definite }

// IsPathDefinite reports whether path, as a raw string, is definite —
// without needing to Compile it first. It is a structural check over the
// tokenizer's own classification, not a regex approximation.
func IsPathDefinite(path string) (bool, error) {
	cp, err := Compile(path)
	if err != nil {
		return false, err
	}
	return cp.IsDefinite(), nil
}

// Read evaluates cp against document, which must already be a value native
// to cfg's Provider (e.g. the result of Provider.Parse, or a value built
// with Provider.CreateMap/CreateArray). Use Query/First/Values/Exists below
// to evaluate directly against raw JSON bytes.
func (cp *CompiledPath) Read(document interface{}, cfg *Configuration) ([]interface{}, error) {
	return cp.ReadContext(context.Background(), document, cfg)
}

// ReadContext is Read with cooperative cancellation: ctx is checked between
// each token filter application. Inside a single ".." scan ctx is only
// consulted through WithScanLimiter's limiter, when one is configured.
func (cp *CompiledPath) ReadContext(ctx context.Context, document interface{}, cfg *Configuration) ([]interface{}, error) {
	if document == nil {
		return nil, newError(ErrInvalidArgument, "document must not be nil")
	}
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	results, err := evaluate(ctx, cp.tokens, cfg, document, newFilterQueue(cp.filters))
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(results))
	for i, r := range results {
		out[i] = r.value
	}
	return out, nil
}

// Paths is Read, but returns the concrete path string of each match instead
// of its value.
func (cp *CompiledPath) Paths(document interface{}, cfg *Configuration) ([]string, error) {
	if document == nil {
		return nil, newError(ErrInvalidArgument, "document must not be nil")
	}
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	results, err := evaluate(context.Background(), cp.tokens, cfg, document, newFilterQueue(cp.filters))
	if err != nil {
		return nil, err
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.path
	}
	return out, nil
}

// Query parses raw JSON bytes with cfg's Provider (DefaultProvider if cfg is
// nil) and evaluates path against the result, returning every match.
func Query(path string, data []byte, cfg *Configuration) ([]interface{}, error) {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	cp, err := Compile(path)
	if err != nil {
		return nil, err
	}
	doc, err := cfg.Provider().Parse(data)
	if err != nil {
		return nil, newErrorf(ErrInvalidJSON, "parse: %v", err)
	}
	return cp.Read(doc, cfg)
}

// MustQuery is Query, panicking on error.
func MustQuery(path string, data []byte, cfg *Configuration) []interface{} {
	v, err := Query(path, data, cfg)
	if err != nil {
		panic(err)
	}
	return v
}

// First returns the first match of path in data, and false if there were
// none.
func First(path string, data []byte, cfg *Configuration) (interface{}, bool, error) {
	vs, err := Query(path, data, cfg)
	if err != nil {
		return nil, false, err
	}
	if len(vs) == 0 {
		return nil, false, nil
	}
	return vs[0], true, nil
}

// Values is an alias for Query, named for parity with Paths.
func Values(path string, data []byte, cfg *Configuration) ([]interface{}, error) {
	return Query(path, data, cfg)
}

// Exists reports whether path matches at least one node in data. Because a
// Field or SingleIndex miss at the terminal token now resolves to an
// explicit null match rather than an error (§4.2), Exists always forces
// WithThrowOnMissingProperty on a private copy of cfg so that a genuinely
// absent key is distinguished from one present with a null value.
func Exists(path string, data []byte, cfg *Configuration) (bool, error) {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	vs, err := Query(path, data, cfg.With(WithThrowOnMissingProperty()))
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return len(vs) > 0, nil
}
