package query

import (
	"fmt"
	"testing"
)

// exprString renders an expression tree in prefix form for comparison, e.g.
// (and (or a b) (not c)). Quoted terms render with surrounding quotes.
func exprString(node Expr) string {
	switch n := node.(type) {
	case nil:
		return "<nil>"
	case *TermExpr:
		if n.Token.Exact {
			return "'" + n.Token.Value + "'"
		}
		return n.Token.Value
	case *AndExpr:
		return fmt.Sprintf("(and %s %s)", exprString(n.Left), exprString(n.Right))
	case *OrExpr:
		return fmt.Sprintf("(or %s %s)", exprString(n.Left), exprString(n.Right))
	case *NotExpr:
		return fmt.Sprintf("(not %s)", exprString(n.Operand))
	}
	return "<unknown>"
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "goblin", "goblin"},
		{"implicit and", "goblin archer", "(and goblin archer)"},
		{"explicit and", "goblin AND archer", "(and goblin archer)"},
		{"or", "goblin OR orc", "(or goblin orc)"},
		{"or binds loosest", "aa OR bb cc", "(or aa (and bb cc))"},
		{"parens regroup", "(aa OR bb) cc", "(and (or aa bb) cc)"},
		{"and chain is left-combined", "aa bb cc", "(and (and aa bb) cc)"},
		{"or chain", "aa OR bb OR cc", "(or (or aa bb) cc)"},
		{"not keyword", "NOT goblin", "(not goblin)"},
		{"implicit and with not", "goblin NOT archer", "(and goblin (not archer))"},
		{"dash negation", "goblin -archer", "(and goblin (not archer))"},
		{"negated quoted term", "-'archer'", "(not 'archer')"},
		{"negated group", "-(goblin OR orc)", "(not (or goblin orc))"},
		{"double negation", "NOT NOT goblin", "(not (not goblin))"},
		{"quoted phrase", "'cave troll' goblin", "(and 'cave troll' goblin)"},
		{"group with trailing negation", "(aa OR bb) -cc", "(and (or aa bb) (not cc))"},
		{"dangling trailing and", "goblin AND", "goblin"},
		{"dangling trailing or", "goblin OR", "goblin"},
		{"leading and is skipped", "AND goblin", "goblin"},
		{"missing close paren tolerated", "(goblin OR orc", "(or goblin orc)"},
		{"stray close paren ignored", "goblin)", "goblin"},
		{"empty parens", "() goblin", "goblin"},
		{"not without operand", "goblin NOT", "goblin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exprString(Parse(Tokenize(tt.query)))
			if got != tt.want {
				t.Errorf("Parse(Tokenize(%q)) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}

func TestParseReturnsNilForUnparseableStreams(t *testing.T) {
	queries := []string{"", "   ", "AND", "OR", "AND OR", "()", ")(", "NOT"}
	for _, q := range queries {
		if node := Parse(Tokenize(q)); node != nil {
			t.Errorf("Parse(Tokenize(%q)) = %s, want nil", q, exprString(node))
		}
	}
}

func TestParseNeverLoopsOnArbitraryTokenStreams(t *testing.T) {
	// Streams a tokenizer would not normally produce must still terminate.
	streams := [][]Token{
		{tokRParen, tokRParen, tokRParen},
		{tokAnd, tokAnd, tokAnd},
		{tokNot, tokNot},
		{tokLParen, tokAnd, tokRParen},
		{tokOr, term("goblin"), tokOr},
	}
	for _, stream := range streams {
		Parse(stream) // must return, result shape is unconstrained
	}
}

func TestParseIndependentCursors(t *testing.T) {
	// Two parses of the same token slice must not share position state.
	tokens := Tokenize("goblin AND archer OR orc")
	first := exprString(Parse(tokens))
	second := exprString(Parse(tokens))
	if first != second {
		t.Errorf("repeated Parse over the same tokens differed: %s vs %s", first, second)
	}
}
