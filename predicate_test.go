package jsonpath

import "testing"

func mustParsePredicate(t *testing.T, body string) *predicateNode {
	t.Helper()
	n, err := parsePredicate(body)
	if err != nil {
		t.Fatalf("parsePredicate(%q): unexpected error: %v", body, err)
	}
	return n
}

func TestEvaluatePredicateComparators(t *testing.T) {
	cfg := DefaultConfiguration()
	p := cfg.Provider()
	doc, err := p.Parse([]byte(`{"price": 9.5, "category": "fiction"}`))
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		expr string
		want bool
	}{
		{"@.price < 10", true},
		{"@.price > 10", false},
		{"@.price == 9.5", true},
		{"@.price != 9.5", false},
		{"@.category == 'fiction'", true},
		{"@.category == 'reference'", false},
		{"@.category=='fiction' ", true},
		{"@.missing == 'x'", false},
		{"@.price > 8 && @.price < 10", true},
		{"@.price < 9 || @.price > 9", true},
		{"@.isbn", false},
		{"@.price", true},
	}
	for _, c := range cases {
		node := mustParsePredicate(t, c.expr)
		got, err := evaluatePredicate(node, cfg, doc, doc, newFilterQueue(nil))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", c.expr, c.want, got)
		}
	}
}

func TestEvaluatePredicateRootReference(t *testing.T) {
	cfg := DefaultConfiguration()
	p := cfg.Provider()
	doc, err := p.Parse([]byte(`{"limit": 10, "items": [{"price": 5}, {"price": 15}]}`))
	if err != nil {
		t.Fatal(err)
	}
	arr, _, err := p.GetProperty(doc, "items")
	if err != nil {
		t.Fatal(err)
	}
	elems, err := p.ToIterable(arr)
	if err != nil {
		t.Fatal(err)
	}

	node := mustParsePredicate(t, "@.price < $.limit")
	got0, err := evaluatePredicate(node, cfg, elems[0], doc, newFilterQueue(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !got0 {
		t.Error("expected elems[0].price (5) < $.limit (10) to be true")
	}
	got1, err := evaluatePredicate(node, cfg, elems[1], doc, newFilterQueue(nil))
	if err != nil {
		t.Fatal(err)
	}
	if got1 {
		t.Error("expected elems[1].price (15) < $.limit (10) to be false")
	}
}

func TestCompareTypedNumericUnification(t *testing.T) {
	cases := []struct {
		l, r float64
		op   string
		want bool
	}{
		{1, 1.0, "==", true},
		{1, 2, "<", true},
		{2, 1, ">", true},
		{1, 1, ">=", true},
		{1, 1, "<=", true},
	}
	for _, c := range cases {
		got, err := compareTyped(literalValue{kind: "number", num: c.l}, c.op, literalValue{kind: "number", num: c.r})
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("%v %s %v: expected %v, got %v", c.l, c.op, c.r, c.want, got)
		}
	}
}

func TestLiteralsEqualAcrossKinds(t *testing.T) {
	if literalsEqual(literalValue{kind: "string", str: "a"}, literalValue{kind: "number", num: 1}) {
		t.Error("expected string and number to never be equal")
	}
	if !literalsEqual(literalValue{kind: "null"}, literalValue{kind: "null"}) {
		t.Error("expected null == null")
	}
}
