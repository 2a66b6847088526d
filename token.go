package jsonpath

// tokenKind identifies which of the §3 token-filter variants a token is.
type tokenKind int

const (
	kindRoot tokenKind = iota
	kindAllArrayItems
	kindWildcard
	kindScan
	kindField
	kindArrayIndex
	kindArrayEval
	kindHasPath
	kindArrayQuery
)

func (k tokenKind) String() string {
	switch k {
	case kindRoot:
		return "Root"
	case kindAllArrayItems:
		return "AllArrayItems"
	case kindWildcard:
		return "Wildcard"
	case kindScan:
		return "Scan"
	case kindField:
		return "Field"
	case kindArrayIndex:
		return "ArrayIndex"
	case kindArrayEval:
		return "ArrayEval"
	case kindHasPath:
		return "HasPath"
	case kindArrayQuery:
		return "ArrayQuery"
	default:
		return "Unknown"
	}
}

// arrayIndexKind distinguishes the five ArrayIndex shapes of §4.2.
type arrayIndexKind int

const (
	indexSingle arrayIndexKind = iota
	indexList
	indexHeadSlice
	indexTailSlice
	indexRange
)

// arrayIndexSpec is the compiled payload of an ArrayIndex token.
type arrayIndexSpec struct {
	kind arrayIndexKind

	single int   // indexSingle
	list   []int // indexList

	// indexHeadSlice/indexTailSlice/indexRange share one clamp formula;
	// aSet/bSet record which bound the bracket body actually specified so
	// sliceBounds can reproduce the precise [a:b], [:b], [a:] semantics.
	a, b       int
	aSet, bSet bool
}

// token is an immutable record of one path segment: its literal fragment,
// whether it is the Root token, whether it is the last token in the
// compiled path, the kind-specific payload, and the accumulated path up to
// and including this token (for error messages).
type token struct {
	kind     tokenKind
	fragment string
	isRoot   bool
	isEnd    bool

	// isArrayFilter is the compile-time flag from §4.2: true for token
	// kinds whose match fans out into a collection (AllArrayItems,
	// Wildcard, Scan, ArrayIndex list/slice, ArrayEval, HasPath,
	// ArrayQuery). Once a token with this flag set runs, in_array_ctx is
	// sticky-true for every later token.
	isArrayFilter bool

	// definite records whether this token alone is compatible with a
	// "definite" (unique-target) path, per §4.4/§9: false for Wildcard,
	// AllArrayItems, Scan, ArrayEval, HasPath, ArrayQuery, multi-key Field,
	// and any multi-result ArrayIndex; true for Root, single-key Field, and
	// ArrayIndex/indexSingle.
	definite bool

	upstreamFragment string

	// kindField
	fieldKeys []string

	// kindArrayIndex
	arrayIndex arrayIndexSpec

	// kindArrayEval / kindHasPath
	predicateSrc string
	predicate    *predicateNode
}
