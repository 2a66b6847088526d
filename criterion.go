package jsonpath

// Filter is an externally supplied predicate consumed, in the order
// Compile receives them, by each "[?]" placeholder in a path — generalizing
// the original Jayway Filter.java fluent API into idiomatic Go. A Filter
// holds one or more Criterion; the Filter matches a candidate when any one
// of its Criteria matches (logical OR across Criteria, mirroring
// Filter.java's varargs constructor).
type Filter struct {
	criteria []*Criterion
}

// NewFilter builds a Filter that matches when any of the given criteria
// matches.
func NewFilter(criteria ...*Criterion) *Filter {
	return &Filter{criteria: criteria}
}

// Where starts a fluent Criterion on key, e.g. Where("price").Lt(10).
func Where(key string) *Criterion {
	return &Criterion{key: key}
}

// Criterion is one "key <relation> literal" (or "key exists") test,
// evaluated against the key of the candidate value currently bound to "@".
type Criterion struct {
	key      string
	relation string // "eq","ne","gt","gte","lt","lte","exists","nexists","in","nin"
	value    literalValue
	set      []literalValue
	boolVal  bool
}

func (c *Criterion) Is(v interface{}) *Criterion  { return c.cmp("eq", v) }
func (c *Criterion) Eq(v interface{}) *Criterion  { return c.cmp("eq", v) }
func (c *Criterion) Ne(v interface{}) *Criterion  { return c.cmp("ne", v) }
func (c *Criterion) Gt(v interface{}) *Criterion  { return c.cmp("gt", v) }
func (c *Criterion) Gte(v interface{}) *Criterion { return c.cmp("gte", v) }
func (c *Criterion) Lt(v interface{}) *Criterion  { return c.cmp("lt", v) }
func (c *Criterion) Lte(v interface{}) *Criterion { return c.cmp("lte", v) }

func (c *Criterion) cmp(relation string, v interface{}) *Criterion {
	c.relation = relation
	c.value = toLiteral(v)
	return c
}

// Exists matches when the key is present (or absent, if want is false).
func (c *Criterion) Exists(want bool) *Criterion {
	c.relation = "exists"
	c.boolVal = want
	return c
}

// In matches when the key's value equals one of vals.
func (c *Criterion) In(vals ...interface{}) *Criterion {
	c.relation = "in"
	c.set = make([]literalValue, len(vals))
	for i, v := range vals {
		c.set[i] = toLiteral(v)
	}
	return c
}

// Nin matches when the key's value equals none of vals.
func (c *Criterion) Nin(vals ...interface{}) *Criterion {
	c.relation = "nin"
	c.set = make([]literalValue, len(vals))
	for i, v := range vals {
		c.set[i] = toLiteral(v)
	}
	return c
}

// matches evaluates the criterion against candidate, a provider-native map
// value.
func (c *Criterion) matches(cfg *Configuration, candidate interface{}) (bool, error) {
	p := cfg.Provider()
	if !p.IsMap(candidate) {
		return false, nil
	}
	v, present, err := p.GetProperty(candidate, c.key)
	if err != nil {
		return false, err
	}
	if c.relation == "exists" {
		return present == c.boolVal, nil
	}
	if !present {
		return c.relation == "ne", nil
	}
	lv := toLiteral(v)
	switch c.relation {
	case "eq":
		return literalsEqual(lv, c.value), nil
	case "ne":
		return !literalsEqual(lv, c.value), nil
	case "gt", "gte", "lt", "lte":
		op := map[string]string{"gt": ">", "gte": ">=", "lt": "<", "lte": "<="}[c.relation]
		return compareTyped(lv, op, c.value)
	case "in":
		for _, want := range c.set {
			if literalsEqual(lv, want) {
				return true, nil
			}
		}
		return false, nil
	case "nin":
		for _, want := range c.set {
			if literalsEqual(lv, want) {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, newErrorf(ErrUnsupported, "unsupported criterion relation %q", c.relation)
	}
}

// matches reports whether any of the Filter's Criteria matches candidate.
func (f *Filter) matches(cfg *Configuration, candidate interface{}) (bool, error) {
	for _, c := range f.criteria {
		ok, err := c.matches(cfg, candidate)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// filterQueue hands out externally supplied Filters positionally, once per
// "[?]" placeholder encountered during one evaluation. A fresh copy is
// taken per Read call (see newFilterQueue) so that concurrent evaluations
// of the same CompiledPath never race over a shared cursor.
type filterQueue struct {
	filters []*Filter
	next    int
}

func newFilterQueue(filters []*Filter) *filterQueue {
	return &filterQueue{filters: filters}
}

func (q *filterQueue) take() (*Filter, error) {
	if q == nil || q.next >= len(q.filters) {
		return nil, newError(ErrInvalidPath, "not enough external filters supplied for the \"[?]\" placeholders in this path")
	}
	f := q.filters[q.next]
	q.next++
	return f, nil
}
