package jsonpath

import "context"

// scanRateLimit throttles Scan's (".." operator) recursive descent against
// the configured scanLimiter, if any. scanAll calls this once per container
// node it visits (not once per Scan token), so the limiter actually bounds
// a single ".."'s potentially-unbounded fan-out rather than just how often
// separate Scan tokens in a path run. WithScanLimiter is the opt-in; by
// default no limiter is configured and this is a no-op.
func scanRateLimit(ctx context.Context, cfg *Configuration) error {
	if cfg == nil || cfg.scanLimiter == nil {
		return nil
	}
	if !cfg.scanLimiter.Allow() {
		if err := cfg.scanLimiter.Wait(ctx); err != nil {
			return newError(ErrCancelled, err.Error())
		}
	}
	return nil
}
