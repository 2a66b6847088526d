package jsonpath

import (
	"encoding/json"
	"math/big"
)

// toLiteral converts a provider-native value (as returned by evaluation)
// into the literalValue representation shared by inline predicate atoms and
// externally supplied Criteria, per §4.3's "single shared routine" note.
func toLiteral(v interface{}) literalValue {
	switch t := v.(type) {
	case nil:
		return literalValue{kind: "null"}
	case bool:
		return literalValue{kind: "bool", b: t}
	case string:
		return literalValue{kind: "string", str: t}
	case json.Number:
		f, _ := t.Float64()
		return literalValue{kind: "number", num: f}
	case float64:
		return literalValue{kind: "number", num: t}
	case int:
		return literalValue{kind: "number", num: float64(t)}
	case int64:
		return literalValue{kind: "number", num: float64(t)}
	default:
		// Containers never satisfy a comparator; they are only ever
		// compared via "==" against another container, which we treat as
		// always-false rather than attempting a deep-equality spec that
		// §4.3 does not define.
		return literalValue{kind: "container"}
	}
}

// compareTyped implements §4.3's type-aware comparison: numeric operands
// compare by rational value (so "1" == "1.0" and int/long/bigint/float all
// unify), equal-kind operands compare by kind, and mixed non-numeric kinds
// are never equal.
func compareTyped(l literalValue, op string, r literalValue) (bool, error) {
	switch op {
	case "==":
		return literalsEqual(l, r), nil
	case "!=", "<>":
		return !literalsEqual(l, r), nil
	case ">", ">=", "<", "<=":
		if l.kind != "number" || r.kind != "number" {
			return false, nil
		}
		lr := new(big.Rat).SetFloat64(l.num)
		rr := new(big.Rat).SetFloat64(r.num)
		if lr == nil || rr == nil {
			return false, nil
		}
		cmp := lr.Cmp(rr)
		switch op {
		case ">":
			return cmp > 0, nil
		case ">=":
			return cmp >= 0, nil
		case "<":
			return cmp < 0, nil
		case "<=":
			return cmp <= 0, nil
		}
	}
	return false, newErrorf(ErrUnsupported, "unsupported comparator %q", op)
}

func literalsEqual(l, r literalValue) bool {
	if l.kind == "number" && r.kind == "number" {
		lr := new(big.Rat).SetFloat64(l.num)
		rr := new(big.Rat).SetFloat64(r.num)
		if lr == nil || rr == nil {
			return l.num == r.num
		}
		return lr.Cmp(rr) == 0
	}
	if l.kind != r.kind {
		return false
	}
	switch l.kind {
	case "null":
		return true
	case "bool":
		return l.b == r.b
	case "string":
		return l.str == r.str
	default:
		return false
	}
}
