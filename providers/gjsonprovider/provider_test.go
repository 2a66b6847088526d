package gjsonprovider_test

import (
	"testing"

	"github.com/kallejson/jsonpath"
	"github.com/kallejson/jsonpath/providers/gjsonprovider"
)

var sample = []byte(`{"store":{"book":[{"title":"A","price":8.95},{"title":"B","price":12.99}]}}`)

func TestGJSONProviderQuery(t *testing.T) {
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithProvider(gjsonprovider.Provider{}))
	results, err := jsonpath.Query("$.store.book[*].title", sample, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}

func TestGJSONProviderFilter(t *testing.T) {
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithProvider(gjsonprovider.Provider{}))
	results, err := jsonpath.Query("$.store.book[?(@.price < 10)].title", sample, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0] != "A" {
		t.Errorf("unexpected results: %v", results)
	}
}
