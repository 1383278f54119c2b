package lox

type Node interface {
	Pos() Position
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) stmtNode()     {}
func (s *ExprStmt) Pos() Position { return s.Expr.Pos() }

type PrintStmt struct {
	Keyword Token
	Expr    Expr
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Pos() Position { return s.Keyword.Pos() }

// VarStmt declares Name in the current scope. Initializer is nil when the
// declaration has no `= expr` part.
type VarStmt struct {
	Name        Token
	Initializer Expr
}

func (s *VarStmt) stmtNode()     {}
func (s *VarStmt) Pos() Position { return s.Name.Pos() }

type BlockStmt struct {
	Brace      Token
	Statements []Stmt
}

func (s *BlockStmt) stmtNode()     {}
func (s *BlockStmt) Pos() Position { return s.Brace.Pos() }

type LiteralExpr struct {
	Value Value
	Token Token
}

func (e *LiteralExpr) exprNode()     {}
func (e *LiteralExpr) Pos() Position { return e.Token.Pos() }

type GroupingExpr struct {
	Paren Token
	Inner Expr
}

func (e *GroupingExpr) exprNode()     {}
func (e *GroupingExpr) Pos() Position { return e.Paren.Pos() }

type UnaryExpr struct {
	Operator Token
	Right    Expr
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Pos() Position { return e.Operator.Pos() }

type BinaryExpr struct {
	Left     Expr
	Operator Token
	Right    Expr
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Pos() Position { return e.Left.Pos() }

type VariableExpr struct {
	Name Token
}

func (e *VariableExpr) exprNode()     {}
func (e *VariableExpr) Pos() Position { return e.Name.Pos() }

type AssignExpr struct {
	Name  Token
	Value Expr
}

func (e *AssignExpr) exprNode()     {}
func (e *AssignExpr) Pos() Position { return e.Name.Pos() }
