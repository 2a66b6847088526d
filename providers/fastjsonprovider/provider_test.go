package fastjsonprovider_test

import (
	"testing"

	"github.com/kallejson/jsonpath"
	"github.com/kallejson/jsonpath/providers/fastjsonprovider"
)

var sample = []byte(`{"store":{"book":[{"title":"A","price":8.95},{"title":"B","price":12.99}]}}`)

func TestFastjsonProviderQuery(t *testing.T) {
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithProvider(&fastjsonprovider.Provider{}))
	results, err := jsonpath.Query("$.store.book[*].title", sample, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestFastjsonProviderFilter(t *testing.T) {
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithProvider(&fastjsonprovider.Provider{}))
	results, err := jsonpath.Query("$.store.book[?(@.price > 10)].title", sample, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0] != "B" {
		t.Errorf("unexpected results: %v", results)
	}
}
