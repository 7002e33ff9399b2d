package query

import "strings"

// Evaluate walks the expression tree against a per-asset haystack string and
// reports whether the asset matches. A nil expression matches everything
// (absence of a filter).
func Evaluate(node Expr, haystack string) bool {
	switch n := node.(type) {
	case nil:
		return true
	case *TermExpr:
		return containsTerm(haystack, n.Token)
	case *AndExpr:
		return Evaluate(n.Left, haystack) && Evaluate(n.Right, haystack)
	case *OrExpr:
		return Evaluate(n.Left, haystack) || Evaluate(n.Right, haystack)
	case *NotExpr:
		return !Evaluate(n.Operand, haystack)
	}
	return false
}

// containsTerm reports whether a lowercased haystack contains the term.
// Plain terms match as substrings; quoted (exact) terms must be bounded on
// both sides by a word boundary.
func containsTerm(haystack string, tok Token) bool {
	if tok.Value == "" {
		return false
	}
	if !tok.Exact {
		return strings.Contains(haystack, tok.Value)
	}
	for from := 0; ; {
		i := strings.Index(haystack[from:], tok.Value)
		if i < 0 {
			return false
		}
		i += from
		if boundaryAt(haystack, i, len(tok.Value)) {
			return true
		}
		from = i + 1
	}
}

// isWordChar reports whether c is part of a word ([a-z0-9]). Everything
// else, including the string edges, counts as a word boundary. Haystacks are
// lowercased before matching, so uppercase letters never appear here.
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// boundaryAt reports whether the match of the given length starting at start
// sits on word boundaries on both sides.
func boundaryAt(s string, start, length int) bool {
	return boundaryBefore(s, start) && boundaryAfter(s, start+length)
}

func boundaryBefore(s string, i int) bool {
	return i <= 0 || !isWordChar(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordChar(s[i])
}
