package query

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	TokenTerm TokenKind = iota
	TokenAnd
	TokenOr
	TokenNot
	TokenLParen
	TokenRParen
)

// String returns a readable name for the token kind, mainly for test output.
func (k TokenKind) String() string {
	switch k {
	case TokenTerm:
		return "TERM"
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenNot:
		return "NOT"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	}
	return "UNKNOWN"
}

// Token is one element of a tokenized query. Tokens are immutable once
// produced by Tokenize.
type Token struct {
	Kind    TokenKind
	Value   string // lowercased search text; only set for TokenTerm
	Exact   bool   // the term was quoted and requires a whole-word match
	Negated bool   // the term was prefixed with '-' or followed a bare '-'
}
