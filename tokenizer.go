package jsonpath

import (
	"strconv"
	"strings"
)

// tokenize lexes a non-empty, trimmed JSONPath string into an ordered
// sequence of tokens, per §4.1. The path must start with '$' (absolute) or
// '@' (relative — used by evalSubPath for predicate sub-paths; Compile
// rejects it).
func tokenize(path string) ([]token, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, newError(ErrInvalidPath, "path must not be empty")
	}
	if path[0] != '$' && path[0] != '@' {
		return nil, newError(ErrInvalidPath, "path must start with '$' or '@'")
	}
	if len(path) > 1 && path[1] == '$' {
		return nil, newError(ErrInvalidPath, "'$$' is not a valid path")
	}

	root := token{
		kind:             kindRoot,
		fragment:         path[:1],
		isRoot:           true,
		definite:         true,
		upstreamFragment: path[:1],
	}
	tokens := []token{root}

	i := 1
	for i < len(path) {
		switch path[i] {
		case '.':
			if i+1 < len(path) && path[i+1] == '.' {
				scanTok := token{kind: kindScan, fragment: "..", isArrayFilter: true}
				i += 2
				tokens = append(tokens, withUpstream(scanTok, tokens))

				if i >= len(path) || path[i] == '.' {
					if i < len(path) && path[i] == '.' {
						return nil, newError(ErrInvalidPath, "unexpected '.' after '..'")
					}
					continue
				}
				if path[i] == '[' {
					continue // next loop iteration handles the bracket
				}
				name, adv, err := readIdentifier(path[i:])
				if err != nil {
					return nil, err
				}
				i += adv
				if name == "*" {
					tokens = append(tokens, withUpstream(token{kind: kindWildcard, fragment: "*", isArrayFilter: true}, tokens))
				} else {
					tokens = append(tokens, withUpstream(token{kind: kindField, fragment: name, fieldKeys: []string{name}, definite: true}, tokens))
				}
				continue
			}

			i++
			if i >= len(path) {
				return nil, newError(ErrInvalidPath, "trailing '.' at end of path")
			}
			if path[i] == '[' {
				return nil, newErrorf(ErrInvalidPath, "expected name after '.' at position %d", i)
			}
			name, adv, err := readIdentifier(path[i:])
			if err != nil {
				return nil, err
			}
			if name == "" {
				return nil, newErrorf(ErrInvalidPath, "expected name after '.' at position %d", i)
			}
			i += adv
			if name == "*" {
				tokens = append(tokens, withUpstream(token{kind: kindWildcard, fragment: "*", isArrayFilter: true}, tokens))
			} else {
				tokens = append(tokens, withUpstream(token{kind: kindField, fragment: name, fieldKeys: []string{name}, definite: true}, tokens))
			}

		case '[':
			inner, consumed, err := scanBracket(path[i:])
			if err != nil {
				return nil, err
			}
			fullFragment := path[i : i+consumed]
			tok, err := classifyBracket(inner, fullFragment)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, withUpstream(tok, tokens))
			i += consumed

		default:
			return nil, newErrorf(ErrInvalidPath, "unexpected character %q at position %d", path[i], i)
		}
	}

	tokens[len(tokens)-1].isEnd = true
	return tokens, nil
}

func withUpstream(tok token, prior []token) token {
	prefix := ""
	if len(prior) > 0 {
		prefix = prior[len(prior)-1].upstreamFragment
	}
	switch tok.kind {
	case kindField:
		tok.upstreamFragment = prefix + "." + tok.fragment
	case kindWildcard:
		tok.upstreamFragment = prefix + ".*"
	case kindScan:
		tok.upstreamFragment = prefix + ".."
	default:
		tok.upstreamFragment = prefix + tok.fragment
	}
	return tok
}

// readIdentifier reads a run of identifier characters (or a lone '*') from
// the start of s.
func readIdentifier(s string) (string, int, error) {
	if len(s) > 0 && s[0] == '*' {
		return "*", 1, nil
	}
	i := 0
	for i < len(s) && isIdentChar(s[i]) {
		i++
	}
	if i == 0 {
		return "", 0, newError(ErrInvalidPath, "expected an identifier")
	}
	return s[:i], i, nil
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-'
}

// scanBracket returns the content between s[0]=='[' and its matching ']',
// tracking quotes (content inside '...' is literal, with \' escapes) and
// nested bracket depth (so a sub-index like @.arr[0] inside a predicate
// doesn't prematurely close the outer bracket). consumed is the number of
// bytes of s occupied by the whole "[...]" fragment.
func scanBracket(s string) (inner string, consumed int, err error) {
	depth := 0
	inQuote := false
	i := 1
	for i < len(s) {
		c := s[i]
		if inQuote {
			if c == '\\' && i+1 < len(s) && s[i+1] == '\'' {
				i += 2
				continue
			}
			if c == '\'' {
				inQuote = false
			}
			i++
			continue
		}
		switch c {
		case '\'':
			inQuote = true
			i++
		case '[':
			depth++
			i++
		case ']':
			if depth == 0 {
				return s[1:i], i + 1, nil
			}
			depth--
			i++
		default:
			i++
		}
	}
	return "", 0, newError(ErrInvalidPath, "unclosed '['")
}

// classifyBracket turns the (already quote/depth scanned) content of a
// "[...]" segment into the corresponding token, per §4.1's bracket
// disambiguation rules.
func classifyBracket(inner, fragment string) (token, error) {
	switch {
	case inner == "?":
		return token{kind: kindArrayQuery, fragment: fragment, isArrayFilter: true}, nil

	case strings.HasPrefix(inner, "?(") && strings.HasSuffix(inner, ")"):
		body := inner[2 : len(inner)-1]
		if containsComparatorOutsideQuotes(body) {
			root, err := parsePredicate(body)
			if err != nil {
				return token{}, err
			}
			return token{kind: kindArrayEval, fragment: fragment, isArrayFilter: true, predicateSrc: body, predicate: root}, nil
		}
		root, err := parsePredicate(body)
		if err != nil {
			return token{}, err
		}
		return token{kind: kindHasPath, fragment: fragment, isArrayFilter: true, predicateSrc: body, predicate: root}, nil

	case inner == "*":
		return token{kind: kindAllArrayItems, fragment: fragment, isArrayFilter: true}, nil

	case strings.HasPrefix(inner, "'"):
		keys, err := splitQuotedKeys(inner)
		if err != nil {
			return token{}, err
		}
		return token{kind: kindField, fragment: fragment, fieldKeys: keys, definite: len(keys) == 1}, nil

	case strings.ContainsRune(inner, ':'):
		return classifySlice(inner, fragment)

	case strings.ContainsRune(inner, ','):
		nums, err := splitTopLevel(inner, ',')
		if err != nil {
			return token{}, err
		}
		indices := make([]int, 0, len(nums))
		for _, n := range nums {
			v, err := strconv.Atoi(strings.TrimSpace(n))
			if err != nil {
				return token{}, newErrorf(ErrInvalidPath, "invalid index list %q", inner)
			}
			indices = append(indices, v)
		}
		return token{
			kind:       kindArrayIndex,
			fragment:   fragment,
			isArrayFilter: true,
			arrayIndex: arrayIndexSpec{kind: indexList, list: indices},
		}, nil

	default:
		v, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return token{}, newErrorf(ErrInvalidPath, "invalid bracket content %q", inner)
		}
		return token{
			kind:       kindArrayIndex,
			fragment:   fragment,
			definite:   true,
			arrayIndex: arrayIndexSpec{kind: indexSingle, single: v},
		}, nil
	}
}

func classifySlice(inner, fragment string) (token, error) {
	parts, err := splitTopLevel(inner, ':')
	if err != nil {
		return token{}, err
	}
	if len(parts) != 2 {
		return token{}, newErrorf(ErrInvalidPath, "invalid slice %q", inner)
	}
	spec := arrayIndexSpec{}
	aStr, bStr := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if aStr != "" {
		a, err := strconv.Atoi(aStr)
		if err != nil {
			return token{}, newErrorf(ErrInvalidPath, "invalid slice start %q", aStr)
		}
		spec.a, spec.aSet = a, true
	}
	if bStr != "" {
		b, err := strconv.Atoi(bStr)
		if err != nil {
			return token{}, newErrorf(ErrInvalidPath, "invalid slice end %q", bStr)
		}
		spec.b, spec.bSet = b, true
	}
	switch {
	case !spec.aSet && spec.bSet:
		spec.kind = indexHeadSlice
	case spec.aSet && spec.a < 0 && !spec.bSet:
		spec.kind = indexTailSlice
	default:
		spec.kind = indexRange
	}
	return token{kind: kindArrayIndex, fragment: fragment, isArrayFilter: true, arrayIndex: spec}, nil
}

// splitQuotedKeys splits inner (e.g. "'a','b'") into unquoted keys.
func splitQuotedKeys(inner string) ([]string, error) {
	parts, err := splitTopLevel(inner, ',')
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if !strings.HasPrefix(p, "'") || !strings.HasSuffix(p, "'") || len(p) < 2 {
			return nil, newErrorf(ErrInvalidPath, "expected quoted key, got %q", p)
		}
		keys = append(keys, unescapeQuoted(p[1:len(p)-1]))
	}
	return keys, nil
}

func unescapeQuoted(s string) string {
	return strings.ReplaceAll(s, `\'`, "'")
}

// splitTopLevel splits s on sep, ignoring any sep that appears inside a
// single-quoted span.
func splitTopLevel(s string, sep byte) ([]string, error) {
	var parts []string
	inQuote := false
	start := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if inQuote {
			if c == '\\' && i+1 < len(s) && s[i+1] == '\'' {
				i += 2
				continue
			}
			if c == '\'' {
				inQuote = false
			}
			i++
			continue
		}
		switch {
		case c == '\'':
			inQuote = true
			i++
		case c == sep:
			parts = append(parts, s[start:i])
			i++
			start = i
		default:
			i++
		}
	}
	if inQuote {
		return nil, newError(ErrInvalidPath, "unterminated quote")
	}
	parts = append(parts, s[start:])
	return parts, nil
}

// containsComparatorOutsideQuotes reports whether body contains at least
// one of the §4.3 comparators outside a quoted string literal.
func containsComparatorOutsideQuotes(body string) bool {
	comparators := []string{"==", "!=", "<>", ">=", "<=", ">", "<"}
	inQuote := false
	for i := 0; i < len(body); i++ {
		c := body[i]
		if inQuote {
			if c == '\\' && i+1 < len(body) && body[i+1] == '\'' {
				i++
				continue
			}
			if c == '\'' {
				inQuote = false
			}
			continue
		}
		if c == '\'' {
			inQuote = true
			continue
		}
		for _, cmp := range comparators {
			if strings.HasPrefix(body[i:], cmp) {
				return true
			}
		}
	}
	return false
}
