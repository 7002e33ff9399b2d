package query

import (
	"strings"

	"github.com/mapforge/content-browser/model"
)

// Relevance tiers. The model is flat and additive: every positive query term
// contributes the score of the strongest field it matches, and stronger match
// classes always outrank weaker ones (exact filename >> filename prefix >>
// display-name substring >> tag >> path).
const (
	scoreNameExact    = 2000 // term equals the whole filename root
	scoreDisplayExact = 1600 // term equals the whole display name

	scoreNamePrefixExact    = 1200 // quoted term is a whole-word filename prefix
	scoreNamePrefixBoundary = 1100 // plain term prefix ending on a boundary
	scoreNamePrefix         = 900  // plain term prefix continuing into a word
	scoreNameWordExact      = 950  // quoted term as an interior whole word
	scoreNameWord           = 750  // plain term on interior word boundaries
	scoreNameSubstring      = 500  // plain term anywhere in the filename root

	scoreDisplayPrefixExact    = 560
	scoreDisplayPrefixBoundary = 520
	scoreDisplayPrefix         = 450
	scoreDisplayWordExact      = 410
	scoreDisplayWord           = 380
	scoreDisplaySubstring      = 280

	scoreTagExact = 200
	scoreTag      = 160

	scorePathExact = 140
	scorePath      = 120
)

// matchTiers parameterizes the shared prefix/word/substring cascade so the
// filename root and display name fields can reuse it at different weights.
type matchTiers struct {
	prefixExact    float64
	prefixBoundary float64
	prefix         float64
	wordExact      float64
	word           float64
	substring      float64
}

var nameTiers = matchTiers{
	prefixExact:    scoreNamePrefixExact,
	prefixBoundary: scoreNamePrefixBoundary,
	prefix:         scoreNamePrefix,
	wordExact:      scoreNameWordExact,
	word:           scoreNameWord,
	substring:      scoreNameSubstring,
}

var displayTiers = matchTiers{
	prefixExact:    scoreDisplayPrefixExact,
	prefixBoundary: scoreDisplayPrefixBoundary,
	prefix:         scoreDisplayPrefix,
	wordExact:      scoreDisplayWordExact,
	word:           scoreDisplayWord,
	substring:      scoreDisplaySubstring,
}

// Score computes the relevance of an asset for the positive (non-negated)
// terms of the expression tree. It is only meaningful for assets that already
// evaluate to true; purely-negative queries have no positive terms and score
// zero everywhere.
func Score(asset model.Asset, expr Expr) float64 {
	terms := collectPositiveTerms(expr, false, nil)
	if len(terms) == 0 {
		return 0
	}

	filename := strings.ToLower(asset.GetString("filename"))
	nameRoot := stripExtension(filename)
	displayName := strings.ToLower(asset.GetString("display_name", "displayName"))
	path := strings.ToLower(asset.GetString("path", "file_path"))
	tags := strings.ToLower(asset.TagsText())

	total := 0.0
	for _, term := range terms {
		value := term.Value
		if nameRoot == value {
			total += scoreNameExact
			continue
		}
		if displayName == value {
			total += scoreDisplayExact
			continue
		}
		if idx := strings.Index(nameRoot, value); nameRoot != "" && idx >= 0 {
			total += fieldMatchScore(nameRoot, value, idx, term.Exact, nameTiers)
			continue
		}
		if idx := strings.Index(displayName, value); displayName != "" && idx >= 0 {
			total += fieldMatchScore(displayName, value, idx, term.Exact, displayTiers)
			continue
		}
		if tags != "" && containsTerm(tags, term) {
			if term.Exact {
				total += scoreTagExact
			} else {
				total += scoreTag
			}
			continue
		}
		if idx := strings.Index(path, value); path != "" && idx >= 0 {
			if boundaryAt(path, idx, len(value)) || !term.Exact {
				if term.Exact {
					total += scorePathExact
				} else {
					total += scorePath
				}
			}
		}
	}
	return total
}

// fieldMatchScore applies the tiered prefix/word-boundary/substring cascade
// for a term found in a field at idx. Quoted terms matching mid-word with no
// boundary contribute nothing.
func fieldMatchScore(field, value string, idx int, exact bool, tiers matchTiers) float64 {
	end := idx + len(value)
	if idx == 0 {
		if exact {
			if boundaryAfter(field, end) {
				return tiers.prefixExact
			}
			return 0
		}
		if boundaryAfter(field, end) {
			return tiers.prefixBoundary
		}
		return tiers.prefix
	}
	if boundaryAt(field, idx, len(value)) {
		if exact {
			return tiers.wordExact
		}
		return tiers.word
	}
	if !exact {
		return tiers.substring
	}
	return 0
}

// collectPositiveTerms gathers the terms whose effective polarity is
// positive: NOT flips the flag for its operand, so double-negated terms still
// count as positive.
func collectPositiveTerms(node Expr, negated bool, out []Token) []Token {
	switch n := node.(type) {
	case *TermExpr:
		if !negated {
			out = append(out, n.Token)
		}
	case *AndExpr:
		out = collectPositiveTerms(n.Left, negated, out)
		out = collectPositiveTerms(n.Right, negated, out)
	case *OrExpr:
		out = collectPositiveTerms(n.Left, negated, out)
		out = collectPositiveTerms(n.Right, negated, out)
	case *NotExpr:
		out = collectPositiveTerms(n.Operand, !negated, out)
	}
	return out
}

// stripExtension removes the final ".xxx" suffix from a filename, leaving
// the root used for name scoring. A trailing dot is kept as-is.
func stripExtension(filename string) string {
	if i := strings.LastIndexByte(filename, '.'); i >= 0 && i < len(filename)-1 {
		return filename[:i]
	}
	return filename
}
