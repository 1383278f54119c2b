package lox

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintExpr renders expr in parenthesized prefix form, e.g. (+ 1 (* 2 3)).
// String literals are quoted.
func PrintExpr(expr Expr) string {
	var b strings.Builder
	writeExpr(&b, expr)
	return b.String()
}

// PrintProgram renders each statement on its own line.
func PrintProgram(stmts []Stmt) string {
	var b strings.Builder
	for _, stmt := range stmts {
		writeStmt(&b, stmt)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeStmt(b *strings.Builder, stmt Stmt) {
	switch s := stmt.(type) {
	case *ExprStmt:
		parenthesize(b, ";", s.Expr)
	case *PrintStmt:
		parenthesize(b, "print", s.Expr)
	case *VarStmt:
		if s.Initializer == nil {
			fmt.Fprintf(b, "(var %s)", s.Name.Lexeme)
			return
		}
		parenthesize(b, "var "+s.Name.Lexeme, s.Initializer)
	case *BlockStmt:
		b.WriteString("(block")
		for _, inner := range s.Statements {
			b.WriteByte(' ')
			writeStmt(b, inner)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "(unknown %T)", stmt)
	}
}

func writeExpr(b *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *LiteralExpr:
		b.WriteString(literalText(e.Value))
	case *GroupingExpr:
		parenthesize(b, "group", e.Inner)
	case *UnaryExpr:
		parenthesize(b, e.Operator.Lexeme, e.Right)
	case *BinaryExpr:
		parenthesize(b, e.Operator.Lexeme, e.Left, e.Right)
	case *VariableExpr:
		b.WriteString(e.Name.Lexeme)
	case *AssignExpr:
		parenthesize(b, "= "+e.Name.Lexeme, e.Value)
	default:
		fmt.Fprintf(b, "(unknown %T)", expr)
	}
}

func parenthesize(b *strings.Builder, name string, exprs ...Expr) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteByte(' ')
		writeExpr(b, expr)
	}
	b.WriteByte(')')
}

func literalText(v Value) string {
	if v.IsString() {
		return strconv.Quote(v.Text())
	}
	return v.String()
}

// TreeNode is a serializable view of a syntax tree node.
type TreeNode struct {
	Type     string     `json:"type" yaml:"type"`
	Name     string     `json:"name,omitempty" yaml:"name,omitempty"`
	Operator string     `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	Kind     string     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Line     int        `json:"line" yaml:"line"`
	Column   int        `json:"column" yaml:"column"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree converts stmts into TreeNodes.
func Tree(stmts []Stmt) []TreeNode {
	nodes := make([]TreeNode, 0, len(stmts))
	for _, stmt := range stmts {
		nodes = append(nodes, stmtTree(stmt))
	}
	return nodes
}

func newTreeNode(typ string, n Node, children ...TreeNode) TreeNode {
	pos := n.Pos()
	return TreeNode{Type: typ, Line: pos.Line, Column: pos.Column, Children: children}
}

func stmtTree(stmt Stmt) TreeNode {
	switch s := stmt.(type) {
	case *ExprStmt:
		return newTreeNode("expression", s, exprTree(s.Expr))
	case *PrintStmt:
		return newTreeNode("print", s, exprTree(s.Expr))
	case *VarStmt:
		var node TreeNode
		if s.Initializer != nil {
			node = newTreeNode("var", s, exprTree(s.Initializer))
		} else {
			node = newTreeNode("var", s)
		}
		node.Name = s.Name.Lexeme
		return node
	case *BlockStmt:
		return newTreeNode("block", s, Tree(s.Statements)...)
	default:
		return newTreeNode(fmt.Sprintf("%T", stmt), stmt)
	}
}

func exprTree(expr Expr) TreeNode {
	switch e := expr.(type) {
	case *LiteralExpr:
		node := newTreeNode("literal", e)
		node.Kind = e.Value.Kind().String()
		node.Value = e.Value.String()
		return node
	case *GroupingExpr:
		return newTreeNode("grouping", e, exprTree(e.Inner))
	case *UnaryExpr:
		node := newTreeNode("unary", e, exprTree(e.Right))
		node.Operator = e.Operator.Lexeme
		return node
	case *BinaryExpr:
		node := newTreeNode("binary", e, exprTree(e.Left), exprTree(e.Right))
		node.Operator = e.Operator.Lexeme
		return node
	case *VariableExpr:
		node := newTreeNode("variable", e)
		node.Name = e.Name.Lexeme
		return node
	case *AssignExpr:
		node := newTreeNode("assign", e, exprTree(e.Value))
		node.Name = e.Name.Lexeme
		return node
	default:
		return newTreeNode(fmt.Sprintf("%T", expr), expr)
	}
}
