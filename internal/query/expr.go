package query

// Expr is a node in a parsed query expression tree. The tree is a plain
// recursive structure built fresh per parse; nodes are never shared or
// mutated after construction.
type Expr interface {
	exprNode()
}

// TermExpr matches a single term against the haystack.
type TermExpr struct {
	Token Token
}

// AndExpr requires both operands to match.
type AndExpr struct {
	Left, Right Expr
}

// OrExpr requires either operand to match.
type OrExpr struct {
	Left, Right Expr
}

// NotExpr inverts its operand.
type NotExpr struct {
	Operand Expr
}

func (*TermExpr) exprNode() {}
func (*AndExpr) exprNode()  {}
func (*OrExpr) exprNode()   {}
func (*NotExpr) exprNode()  {}

// combine joins two subtrees under a binary operator. If either side is nil
// (a dangling trailing AND/OR, a malformed operand) the other side is
// returned unchanged; this is how parse errors degrade instead of failing.
func combine(left, right Expr, kind TokenKind) Expr {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	if kind == TokenOr {
		return &OrExpr{Left: left, Right: right}
	}
	return &AndExpr{Left: left, Right: right}
}
