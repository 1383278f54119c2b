package lox

import (
	"testing"
)

func TestPrintExprHandBuilt(t *testing.T) {
	expr := &BinaryExpr{
		Left: &UnaryExpr{
			Operator: Token{Kind: TokenMinus, Lexeme: "-", Line: 1},
			Right:    &LiteralExpr{Value: NewNumber(123)},
		},
		Operator: Token{Kind: TokenStar, Lexeme: "*", Line: 1},
		Right:    &GroupingExpr{Inner: &LiteralExpr{Value: NewNumber(45.67)}},
	}
	if got := PrintExpr(expr); got != "(* (- 123) (group 45.67))" {
		t.Fatalf("unexpected output %s", got)
	}
}

func TestPrintProgram(t *testing.T) {
	stmts := parseClean(t, `var a; var s = "hi"; { a = s; print a; }`)
	want := "(var a)\n(var s \"hi\")\n(block (; (= a s)) (print a))\n"
	if got := PrintProgram(stmts); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTree(t *testing.T) {
	stmts := parseClean(t, "var a = 1;\nprint -a + 2;")
	nodes := Tree(stmts)
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d", len(nodes))
	}

	decl := nodes[0]
	if decl.Type != "var" || decl.Name != "a" || len(decl.Children) != 1 {
		t.Fatalf("unexpected var node %#v", decl)
	}
	if lit := decl.Children[0]; lit.Type != "literal" || lit.Kind != "number" || lit.Value != "1" {
		t.Fatalf("unexpected literal node %#v", lit)
	}

	printNode := nodes[1]
	if printNode.Type != "print" || printNode.Line != 2 || printNode.Column != 1 {
		t.Fatalf("unexpected print node %#v", printNode)
	}
	binary := printNode.Children[0]
	if binary.Type != "binary" || binary.Operator != "+" || len(binary.Children) != 2 {
		t.Fatalf("unexpected binary node %#v", binary)
	}
	if unary := binary.Children[0]; unary.Type != "unary" || unary.Operator != "-" || unary.Children[0].Name != "a" {
		t.Fatalf("unexpected unary node %#v", unary)
	}
}
