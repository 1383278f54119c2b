package lox

import (
	"fmt"
)

func (in *Interpreter) execStmt(stmt Stmt) error {
	in.trace(stmt)
	switch s := stmt.(type) {
	case *ExprStmt:
		_, err := in.evalExpr(s.Expr)
		return err
	case *PrintStmt:
		val, err := in.evalExpr(s.Expr)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.config.Stdout, val.String()); err != nil {
			return newRuntimeError(s.Keyword, "Cannot write output: %v.", err)
		}
		return nil
	case *VarStmt:
		val := NewNil()
		if s.Initializer != nil {
			var err error
			val, err = in.evalExpr(s.Initializer)
			if err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, val)
		return nil
	case *BlockStmt:
		return in.execBlock(s.Statements, newEnv(in.env))
	default:
		return newRuntimeError(Token{Line: stmt.Pos().Line, Column: stmt.Pos().Column}, "Unsupported statement %T.", stmt)
	}
}

// execBlock runs stmts with env as the current scope. The previous scope is
// restored however the block exits.
func (in *Interpreter) execBlock(stmts []Stmt, env *Env) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range stmts {
		if err := in.execStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) evalExpr(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *LiteralExpr:
		return e.Value, nil
	case *GroupingExpr:
		return in.evalExpr(e.Inner)
	case *VariableExpr:
		return in.env.Get(e.Name)
	case *AssignExpr:
		val, err := in.evalExpr(e.Value)
		if err != nil {
			return NewNil(), err
		}
		if err := in.env.Assign(e.Name, val); err != nil {
			return NewNil(), err
		}
		return val, nil
	case *UnaryExpr:
		return in.evalUnaryExpr(e)
	case *BinaryExpr:
		return in.evalBinaryExpr(e)
	default:
		return NewNil(), newRuntimeError(Token{Line: expr.Pos().Line, Column: expr.Pos().Column}, "Unsupported expression %T.", expr)
	}
}

func (in *Interpreter) trace(stmt Stmt) {
	logger := in.config.Logger
	if logger == nil {
		return
	}
	pos := stmt.Pos()
	logger.Debug().Str("stmt", fmt.Sprintf("%T", stmt)).Int("line", pos.Line).Int("column", pos.Column).Msg("exec")
}
