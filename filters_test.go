package jsonpath_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/kallejson/jsonpath"
)

func TestMaxScanDepthTruncates(t *testing.T) {
	data := []byte(`{"a":{"a":{"a":{"a":1}}}}`)

	unlimited, err := jsonpath.Query("$..a", data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(unlimited) != 4 {
		t.Fatalf("expected 4 nested \"a\" matches with no depth limit, got %d", len(unlimited))
	}

	cfg := jsonpath.DefaultConfiguration(jsonpath.WithMaxScanDepth(2))
	limited, err := jsonpath.Query("$..a", data, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) >= len(unlimited) {
		t.Fatalf("expected WithMaxScanDepth(2) to cut off some of the %d unlimited matches, got %d", len(unlimited), len(limited))
	}
}

// TestScanLimiterThrottlesPerContainer proves the scan limiter is consulted
// once per container node visited during a single ".." descent, not once
// per Scan token. A burst-of-1 limiter that never refills lets the first
// container through for free; any document with more than one nested
// container then fails Allow() on the second and falls back to Wait(ctx),
// which a short-deadline context turns into a cancellation error.
func TestScanLimiterThrottlesPerContainer(t *testing.T) {
	data := []byte(`{"a":{"b":{"c":1}}}`)
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithScanLimiter(limiter))

	cp, err := jsonpath.Compile("$..c")
	if err != nil {
		t.Fatal(err)
	}
	cfgProvider := cfg.Provider()
	doc, err := cfgProvider.Parse(data)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = cp.ReadContext(ctx, doc, cfg)
	if err == nil {
		t.Fatal("expected the second container visited to block on the exhausted limiter and time out")
	}
	if !jsonpath.IsCancelled(err) {
		t.Errorf("expected a cancellation error, got: %v", err)
	}
}

func TestScanLimiterAllowsWithinBurst(t *testing.T) {
	data := []byte(`{"a":{"price":1},"b":{"price":2}}`)
	limiter := rate.NewLimiter(rate.Every(time.Millisecond), 100)
	cfg := jsonpath.DefaultConfiguration(jsonpath.WithScanLimiter(limiter))

	results, err := jsonpath.Query("$..price", data, cfg)
	if err != nil {
		t.Fatalf("unexpected error within burst: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
}
