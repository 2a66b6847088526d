package jsonpath

import "testing"

func TestCriterionRelations(t *testing.T) {
	cfg := DefaultConfiguration()
	p := cfg.Provider()
	doc, err := p.Parse([]byte(`{"category":"fiction","price":12.5,"isbn":"123"}`))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		c    *Criterion
		want bool
	}{
		{"eq match", Where("category").Is("fiction"), true},
		{"eq mismatch", Where("category").Is("reference"), false},
		{"ne match", Where("category").Ne("reference"), true},
		{"gt", Where("price").Gt(10), true},
		{"lt false", Where("price").Lt(10), false},
		{"exists true", Where("isbn").Exists(true), true},
		{"exists false on absent key", Where("nope").Exists(false), true},
		{"in", Where("category").In("reference", "fiction"), true},
		{"nin", Where("category").Nin("reference"), true},
	}
	for _, c := range cases {
		got, err := c.c.matches(cfg, doc)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestFilterMatchesAnyCriterion(t *testing.T) {
	cfg := DefaultConfiguration()
	p := cfg.Provider()
	doc, err := p.Parse([]byte(`{"category":"fiction","price":30}`))
	if err != nil {
		t.Fatal(err)
	}
	f := NewFilter(Where("category").Is("reference"), Where("price").Gt(20))
	ok, err := f.matches(cfg, doc)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("expected filter to match on the second criterion")
	}
}

func TestFilterQueueExhaustion(t *testing.T) {
	q := newFilterQueue([]*Filter{NewFilter(Where("a").Is(1))})
	if _, err := q.take(); err != nil {
		t.Fatal(err)
	}
	if _, err := q.take(); err == nil {
		t.Error("expected error when filter queue is exhausted")
	}
}
