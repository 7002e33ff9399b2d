package query

import "testing"

func TestEvaluateNilMatchesEverything(t *testing.T) {
	if !Evaluate(nil, "anything at all") {
		t.Error("Evaluate(nil, ...) = false, want true")
	}
	if !Evaluate(nil, "") {
		t.Error("Evaluate(nil, \"\") = false, want true")
	}
}

func TestEvaluate(t *testing.T) {
	haystack := "goblin archer goblin_archer.png tokens/forest s1x 2x2"

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"plain substring", "goblin", true},
		{"plain substring inside word", "gob", true},
		{"missing term", "dragon", false},
		{"exact whole word", "'goblin'", true},
		{"exact inside longer word", "'gob'", false},
		{"exact bounded by underscore", "'archer'", true},
		{"exact bounded by slash", "'tokens'", true},
		{"exact bounded by digits fails", "'1'", false},
		{"exact at string start", "'goblin'", true},
		{"and both present", "goblin archer", true},
		{"and one missing", "goblin dragon", false},
		{"or one present", "goblin OR dragon", true},
		{"or both missing", "troll OR dragon", false},
		{"negation excludes", "-goblin", false},
		{"negation passes", "-dragon", true},
		{"grouping", "(dragon OR archer) goblin", true},
		{"grouping excludes", "(dragon OR troll) goblin", false},
		{"negated group", "-(dragon OR troll)", true},
		{"double negation", "NOT NOT goblin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(Parse(Tokenize(tt.query)), haystack)
			if got != tt.want {
				t.Errorf("Evaluate(%q) over %q = %v, want %v", tt.query, haystack, got, tt.want)
			}
		})
	}
}

func TestContainsTermScansPastUnboundedOccurrences(t *testing.T) {
	// First "cat" occurrence sits inside "catalog"; the later standalone one
	// must still be found.
	haystack := "catalog of cat tokens"
	if !containsTerm(haystack, Token{Kind: TokenTerm, Value: "cat", Exact: true}) {
		t.Error("exact 'cat' not found despite a bounded occurrence later in the haystack")
	}
	if containsTerm("catalog only", Token{Kind: TokenTerm, Value: "cat", Exact: true}) {
		t.Error("exact 'cat' matched inside 'catalog'")
	}
}
