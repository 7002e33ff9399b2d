// Package query implements the content browser's free-text filter language:
// a tokenizer and boolean-expression parser for queries like
// `goblin -archer`, `'cave troll' OR ogre`, `(map OR tile) dungeon`, and a
// relevance scorer that orders matching assets. The package is pure and
// reentrant: every call tokenizes and parses from scratch, touches no shared
// state, and never fails on malformed input.
package query

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// lexemeRegex extracts raw query chunks: quoted spans (which may contain
// whitespace and parens), single parenthesis characters, and otherwise
// maximal runs of non-whitespace/non-paren characters.
var lexemeRegex = regexp.MustCompile(`'[^']*'|"[^"]*"|[()]|[^\s()]+`)

// singleQuoted / doubleQuoted match lexemes that are fully quoted. Anything
// with an unmatched quote falls through and is treated as literal text.
var (
	singleQuoted = regexp.MustCompile(`^'[^']*'$`)
	doubleQuoted = regexp.MustCompile(`^"[^"]*"$`)
)

// minNegatedTermLen is the shortest term a '-' prefix may negate. Negating a
// single character is almost always a half-typed term, so the negation is
// carried forward to the next lexeme instead.
const minNegatedTermLen = 2

// Tokenize splits a raw query string into a flat token stream. It resolves
// quoting ('...' and "..." mark exact whole-word terms), negation prefixes
// (-term, --term, and a standalone '-' negating the next term or group), the
// case-insensitive AND/OR/NOT keywords, and parenthesis grouping. The result
// is deterministic for a given input and never contains a term with an empty
// value.
func Tokenize(queryStr string) []Token {
	lexemes := lexemeRegex.FindAllString(queryStr, -1)
	tokens := make([]Token, 0, len(lexemes))

	// A standalone '-' (or a negation that could not attach to anything)
	// negates the next produced term or group.
	pendingNegation := false

	for _, lexeme := range lexemes {
		lexeme = strings.TrimSpace(lexeme)
		if lexeme == "" {
			continue
		}
		if lexeme == "-" {
			pendingNegation = true
			continue
		}

		negated := pendingNegation
		pendingNegation = false

		// Leading dashes negate, however many there are (-term, --term).
		for strings.HasPrefix(lexeme, "-") {
			negated = true
			lexeme = lexeme[1:]
		}
		if lexeme == "" {
			pendingNegation = negated
			continue
		}

		// A negated group becomes NOT ( ... with the negation attached only
		// to the immediately-following open paren.
		for strings.HasPrefix(lexeme, "(") {
			if negated {
				tokens = append(tokens, Token{Kind: TokenNot})
				negated = false
			}
			tokens = append(tokens, Token{Kind: TokenLParen})
			lexeme = lexeme[1:]
		}

		trailingParens := 0
		for strings.HasSuffix(lexeme, ")") {
			trailingParens++
			lexeme = lexeme[:len(lexeme)-1]
		}
		if lexeme == "" {
			tokens = appendRParens(tokens, trailingParens)
			continue
		}

		if singleQuoted.MatchString(lexeme) || doubleQuoted.MatchString(lexeme) {
			inner := strings.TrimSpace(strings.ToLower(lexeme[1 : len(lexeme)-1]))
			switch {
			case inner == "":
				if negated {
					pendingNegation = true
				}
			case negated && utf8.RuneCountInString(inner) < minNegatedTermLen:
				pendingNegation = true
			default:
				tokens = append(tokens, Token{Kind: TokenTerm, Value: inner, Exact: true, Negated: negated})
			}
			tokens = appendRParens(tokens, trailingParens)
			continue
		}

		// Operator keywords are only recognized un-negated: "-and" is the
		// literal term "and".
		if !negated {
			switch {
			case strings.EqualFold(lexeme, "and"):
				tokens = append(tokens, Token{Kind: TokenAnd})
				tokens = appendRParens(tokens, trailingParens)
				continue
			case strings.EqualFold(lexeme, "or"):
				tokens = append(tokens, Token{Kind: TokenOr})
				tokens = appendRParens(tokens, trailingParens)
				continue
			case strings.EqualFold(lexeme, "not"):
				tokens = append(tokens, Token{Kind: TokenNot})
				tokens = appendRParens(tokens, trailingParens)
				continue
			}
		}

		value := strings.ToLower(lexeme)
		if negated && utf8.RuneCountInString(value) < minNegatedTermLen {
			// Too short to usefully negate (a stray "-x" fragment); carry the
			// negation forward instead of emitting.
			pendingNegation = true
			tokens = appendRParens(tokens, trailingParens)
			continue
		}
		tokens = append(tokens, Token{Kind: TokenTerm, Value: value, Exact: false, Negated: negated})
		tokens = appendRParens(tokens, trailingParens)
	}

	return tokens
}

func appendRParens(tokens []Token, count int) []Token {
	for i := 0; i < count; i++ {
		tokens = append(tokens, Token{Kind: TokenRParen})
	}
	return tokens
}
