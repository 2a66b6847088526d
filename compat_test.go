//go:build compat

package jsonpath_test

import (
	"encoding/json"
	"testing"

	"github.com/kallejson/jsonpath"
	theoryjp "github.com/theory/jsonpath"
)

// TestCompatAgainstTheoryJSONPath differentially checks this package's
// navigation semantics (field/index/wildcard/scan — the subset of syntax
// shared with RFC 9535) against github.com/theory/jsonpath, an independent
// implementation, as a cross-check that match counts agree on ordinary
// paths. Filter-expression syntax is deliberately excluded: this package's
// inline predicates use Jayway-style single-quoted string literals, while
// RFC 9535 requires double quotes, so the two grammars diverge there by
// design.
func TestCompatAgainstTheoryJSONPath(t *testing.T) {
	data := []byte(`{
		"store": {
			"book": [
				{"category": "reference", "author": "Nigel Rees", "price": 8.95},
				{"category": "fiction", "author": "Evelyn Waugh", "price": 12.99},
				{"category": "fiction", "author": "Herman Melville", "price": 8.99}
			],
			"bicycle": {"color": "red", "price": 19.95}
		}
	}`)

	paths := []string{
		"$.store.book[0].author",
		"$.store.book[*].author",
		"$.store.bicycle.color",
		"$..price",
		"$.store.*",
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	for _, path := range paths {
		ours, err := jsonpath.Query(path, data, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", path, err)
		}

		theirs, err := theoryjp.Parse(path)
		if err != nil {
			t.Fatalf("%s: theory/jsonpath failed to parse: %v", path, err)
		}
		theirResults := theirs.Select(doc)

		if len(ours) != len(theirResults) {
			t.Errorf("%s: match count mismatch: ours=%d theirs=%d", path, len(ours), len(theirResults))
		}
	}
}
