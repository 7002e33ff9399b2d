package query

import "unicode/utf8"

// Parse builds an expression tree from a token stream using recursive
// descent: OR binds loosest, then AND (explicit or by adjacency), then unary
// NOT, with parenthesized groups as primaries. Malformed input is recovered
// silently (dangling operators collapse via combine, unmatched parens are
// tolerated, unrecognized tokens are skipped); Parse returns nil only when
// the stream is empty or nothing in it is parseable. Trailing unconsumed
// tokens are ignored.
func Parse(tokens []Token) Expr {
	p := &parser{tokens: tokens}
	return p.parseOr()
}

// parser carries the token stream and a position cursor. Each Parse call
// gets its own instance, so concurrent parses never share state.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *parser) parseOr() Expr {
	node := p.parseAnd()
	for {
		tok, ok := p.peek()
		if !ok || tok.Kind != TokenOr {
			return node
		}
		p.next()
		node = combine(node, p.parseAnd(), TokenOr)
	}
}

func (p *parser) parseAnd() Expr {
	node := p.parseUnary()
	for {
		tok, ok := p.peek()
		if !ok {
			return node
		}
		switch tok.Kind {
		case TokenAnd:
			p.next()
			node = combine(node, p.parseUnary(), TokenAnd)
		case TokenTerm, TokenNot, TokenLParen:
			// Adjacency with no connector: implicit AND.
			node = combine(node, p.parseUnary(), TokenAnd)
		default:
			return node
		}
	}
}

func (p *parser) parseUnary() Expr {
	if tok, ok := p.peek(); ok && tok.Kind == TokenNot {
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		// Negating a bare one-character term is dropped as malformed; the
		// tokenizer applies the same threshold to '-' prefixes.
		if term, isTerm := operand.(*TermExpr); isTerm && utf8.RuneCountInString(term.Token.Value) < minNegatedTermLen {
			return nil
		}
		return &NotExpr{Operand: operand}
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() Expr {
	tok, ok := p.next()
	if !ok {
		return nil
	}
	switch tok.Kind {
	case TokenTerm:
		var node Expr = &TermExpr{Token: tok}
		// Quoted negated terms carry their negation on the token itself and
		// never pass through the NOT-token path above.
		if tok.Negated {
			node = &NotExpr{Operand: node}
		}
		return node
	case TokenLParen:
		node := p.parseOr()
		if next, nok := p.peek(); nok && next.Kind == TokenRParen {
			p.next()
		}
		// A missing closing paren is tolerated.
		return node
	default:
		// Consumed and skipped, guaranteeing forward progress.
		return nil
	}
}
