package jsonpath

import (
	"context"
	"fmt"
)

// pathValue pairs a matched value with the concrete path that reached it,
// so Paths() can report definite per-match locations even when the
// compiled path contains fan-out tokens.
type pathValue struct {
	value interface{}
	path  string
}

// evaluate walks tokens (as produced by tokenize) against root, threading
// the sticky in_array_ctx flag described in §4.2: once a fan-out token
// (isArrayFilter) has run, every later token operates element-wise and
// silently drops elements that don't match instead of raising.
func evaluate(ctx context.Context, tokens []token, cfg *Configuration, root interface{}, filters *filterQueue) ([]pathValue, error) {
	current := []pathValue{{value: root, path: "$"}}
	inArrayCtx := false

	for _, tok := range tokens {
		if tok.isRoot {
			continue
		}
		select {
		case <-ctx.Done():
			return nil, newError(ErrCancelled, ctx.Err().Error())
		default:
		}

		var next []pathValue
		for _, pv := range current {
			if pv.value == nil {
				if inArrayCtx {
					continue
				}
				return nil, newErrorf(ErrPathNotFound, "cannot navigate into null").withFragment(pv.path)
			}
			results, err := applyToken(ctx, tok, cfg, pv, root, filters, inArrayCtx)
			if err != nil {
				if inArrayCtx && IsNotFound(err) {
					continue
				}
				return nil, err
			}
			next = append(next, results...)
		}
		current = next

		if tok.isArrayFilter {
			inArrayCtx = true
		}
	}
	return current, nil
}

func applyToken(ctx context.Context, tok token, cfg *Configuration, pv pathValue, root interface{}, filters *filterQueue, inArrayCtx bool) ([]pathValue, error) {
	p := cfg.Provider()

	switch tok.kind {
	case kindField:
		return applyField(tok, cfg, pv, inArrayCtx)

	case kindWildcard, kindAllArrayItems:
		if !p.IsContainer(pv.value) {
			return nil, newErrorf(ErrPathNotFound, "%s: not a container", tok.kind).withFragment(pv.path)
		}
		return fanOut(p, pv)

	case kindScan:
		return scanAll(ctx, p, cfg, pv, 0)

	case kindArrayIndex:
		return applyArrayIndex(p, cfg, tok, pv, inArrayCtx)

	case kindArrayEval, kindHasPath:
		if !p.IsArray(pv.value) {
			return nil, newErrorf(ErrPathNotFound, "%s: not an array", tok.kind).withFragment(pv.path)
		}
		return applyPredicateFilter(ctx, tok.predicate, cfg, pv, root, filters)

	case kindArrayQuery:
		if !p.IsArray(pv.value) {
			return nil, newErrorf(ErrPathNotFound, "%s: not an array", tok.kind).withFragment(pv.path)
		}
		f, err := filters.take()
		if err != nil {
			return nil, err
		}
		elems, err := p.ToIterable(pv.value)
		if err != nil {
			return nil, err
		}
		var out []pathValue
		for i, e := range elems {
			ok, err := f.matches(cfg, e)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, pathValue{value: e, path: fmt.Sprintf("%s[%d]", pv.path, i)})
			}
		}
		return out, nil

	default:
		return nil, newErrorf(ErrInvalidPath, "unhandled token kind %s", tok.kind)
	}
}

// applyField implements §4.2's Field contract: a present key returns its
// value; an absent one returns null rather than raising, unless
// THROW_ON_MISSING_PROPERTY is set. A null result only propagates as an
// explicit value when this is the terminal token — evaluate's own
// nil-value check turns it into PathNotFound the moment a later token
// tries to navigate into it. The multi-key bracket form `['a','b']` and
// element-wise application inside an array context are narrower: both
// silently drop a missing key instead of ever producing null, per §4.2's
// "present subset" and "skipping elements lacking k" wording.
func applyField(tok token, cfg *Configuration, pv pathValue, inArrayCtx bool) ([]pathValue, error) {
	p := cfg.Provider()
	isObj := p.IsMap(pv.value)
	multi := len(tok.fieldKeys) > 1

	var out []pathValue
	for _, key := range tok.fieldKeys {
		var (
			v       interface{}
			present bool
			err     error
		)
		if isObj {
			v, present, err = p.GetProperty(pv.value, key)
			if err != nil {
				return nil, err
			}
		}
		if present {
			out = append(out, pathValue{value: v, path: fmt.Sprintf("%s['%s']", pv.path, key)})
			continue
		}
		if cfg.throwOnMissingProperty {
			return nil, newErrorf(ErrPathNotFound, "missing property %q", key).withFragment(pv.path)
		}
		if multi || inArrayCtx {
			continue
		}
		out = append(out, pathValue{value: nil, path: fmt.Sprintf("%s['%s']", pv.path, key)})
	}
	return out, nil
}

// fanOut expands a map (in key order) or array into one pathValue per
// element.
func fanOut(p Provider, pv pathValue) ([]pathValue, error) {
	if p.IsMap(pv.value) {
		keys, err := p.Keys(pv.value)
		if err != nil {
			return nil, err
		}
		out := make([]pathValue, 0, len(keys))
		for _, k := range keys {
			v, _, err := p.GetProperty(pv.value, k)
			if err != nil {
				return nil, err
			}
			out = append(out, pathValue{value: v, path: fmt.Sprintf("%s['%s']", pv.path, k)})
		}
		return out, nil
	}
	elems, err := p.ToIterable(pv.value)
	if err != nil {
		return nil, err
	}
	out := make([]pathValue, len(elems))
	for i, e := range elems {
		out[i] = pathValue{value: e, path: fmt.Sprintf("%s[%d]", pv.path, i)}
	}
	return out, nil
}

// scanAll flattens pv (and, recursively, every container reachable from
// it) into a pre-order sequence that includes pv itself, every nested
// container, and every nested scalar — per §8 invariant 3 ("$..c" over
// {"a":{"b":{"c":1}},"x":{"c":2}} must yield [1,2]).
//
// depth counts containers already descended into (pv itself is depth 0).
// When cfg.maxScanDepth is set, recursion stops once depth reaches it —
// pv and everything already collected are kept, but its children are not
// visited — rather than raising, matching Scan's no-error contract.
// cfg.scanLimiter, if set, is consulted once per container actually
// descended into, so it bounds this single ".." token's fan-out directly
// instead of merely how often separate Scan tokens run.
func scanAll(ctx context.Context, p Provider, cfg *Configuration, pv pathValue, depth int) ([]pathValue, error) {
	out := []pathValue{pv}
	if !p.IsContainer(pv.value) {
		return out, nil
	}
	if cfg.maxScanDepth > 0 && depth >= cfg.maxScanDepth {
		return out, nil
	}
	if err := scanRateLimit(ctx, cfg); err != nil {
		return nil, err
	}
	children, err := fanOut(p, pv)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		sub, err := scanAll(ctx, p, cfg, child, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

func applyArrayIndex(p Provider, cfg *Configuration, tok token, pv pathValue, inArrayCtx bool) ([]pathValue, error) {
	if !p.IsArray(pv.value) {
		return nil, newErrorf(ErrPathNotFound, "%s: not an array", tok.fragment).withFragment(pv.path)
	}
	n, err := p.Length(pv.value)
	if err != nil {
		return nil, err
	}

	switch tok.arrayIndex.kind {
	case indexSingle:
		idx := normalizeIndex(tok.arrayIndex.single, n)
		v, ok, err := p.GetIndex(pv.value, idx)
		if err != nil {
			return nil, err
		}
		if !ok {
			// §4.2: SingleIndex out-of-range yields null (or PathNotFound
			// per option); null only surfaces as a result when this is
			// the terminal token, and never inside an array context,
			// where a miss is simply skipped.
			if cfg.throwOnMissingProperty {
				return nil, newErrorf(ErrPathNotFound, "index %d out of range (length %d)", tok.arrayIndex.single, n).withFragment(pv.path)
			}
			if inArrayCtx {
				return nil, nil
			}
			return []pathValue{{value: nil, path: fmt.Sprintf("%s[%d]", pv.path, tok.arrayIndex.single)}}, nil
		}
		return []pathValue{{value: v, path: fmt.Sprintf("%s[%d]", pv.path, idx)}}, nil

	case indexList:
		var out []pathValue
		for _, raw := range tok.arrayIndex.list {
			idx := normalizeIndex(raw, n)
			v, ok, err := p.GetIndex(pv.value, idx)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue // list/slice forms never raise on out-of-range
			}
			out = append(out, pathValue{value: v, path: fmt.Sprintf("%s[%d]", pv.path, idx)})
		}
		return out, nil

	default: // indexHeadSlice, indexTailSlice, indexRange
		start, end := sliceBounds(tok.arrayIndex, n)
		var out []pathValue
		for idx := start; idx < end; idx++ {
			v, ok, err := p.GetIndex(pv.value, idx)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			out = append(out, pathValue{value: v, path: fmt.Sprintf("%s[%d]", pv.path, idx)})
		}
		return out, nil
	}
}

// normalizeIndex resolves a (possibly negative) index against length n,
// Python-slice style.
func normalizeIndex(idx, n int) int {
	if idx < 0 {
		return n + idx
	}
	return idx
}

// sliceBounds implements the single clamp formula shared by [:b], [a:], and
// [a:b], per §4.2 — with one documented exception: HeadSlice(n) is defined
// as "value[0 : min(n, len)]; n ≤ 0 yields an empty array", not the
// Python-style "count from the end" that a negative bound gets everywhere
// else (TailSlice, Range). Applying the shared clamp formula uniformly
// would turn "$[: -2]" into "drop the last 2 elements" instead of "[]".
func sliceBounds(spec arrayIndexSpec, n int) (start, end int) {
	start, end = 0, n
	if spec.aSet {
		start = clampIndex(spec.a, n)
	}
	if spec.bSet {
		if spec.kind == indexHeadSlice && spec.b < 0 {
			end = 0
		} else {
			end = clampIndex(spec.b, n)
		}
	}
	if start > end {
		start = end
	}
	return start, end
}

func clampIndex(idx, n int) int {
	if idx < 0 {
		idx = n + idx
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

func applyPredicateFilter(ctx context.Context, node *predicateNode, cfg *Configuration, pv pathValue, root interface{}, filters *filterQueue) ([]pathValue, error) {
	p := cfg.Provider()
	elems, err := p.ToIterable(pv.value)
	if err != nil {
		return nil, err
	}
	var out []pathValue
	for i, e := range elems {
		ok, err := evaluatePredicate(node, cfg, e, root, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, pathValue{value: e, path: fmt.Sprintf("%s[%d]", pv.path, i)})
		}
	}
	return out, nil
}

// evalSubPath evaluates a "@...."/"$...." sub-path used inside a predicate,
// against base (the current candidate for "@", or the document root for
// "$"). filters is shared with the enclosing evaluation so that any "[?]"
// placeholders nested inside the sub-path keep consuming from the same
// positional queue.
func evalSubPath(path string, cfg *Configuration, base, root interface{}, filters *filterQueue) ([]interface{}, error) {
	toks, err := tokenize(path)
	if err != nil {
		return nil, err
	}
	results, err := evaluate(context.Background(), toks, cfg, base, filters)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(results))
	for i, r := range results {
		out[i] = r.value
	}
	return out, nil
}
