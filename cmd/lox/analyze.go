package main

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/beacodeart/glox/lox"
)

type lintWarning struct {
	Pos     lox.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return &exitError{code: exitUsage, err: errors.New("lox analyze: script path required")}
	}

	scriptPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve script path: %w", err)
	}
	source, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	tokens, scanErrs := lox.Scan(source)
	stmts, parseErrs := lox.Parse(tokens)
	if len(scanErrs)+len(parseErrs) > 0 {
		return &exitError{
			code: exitDataErr,
			err:  fmt.Errorf("analysis parse failed: %w", errors.Join(append(scanErrs, parseErrs...)...)),
		}
	}

	warnings := analyzeProgram(stmts)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s\n", scriptPath, line, column, warning.Message)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

type lintVar struct {
	name lox.Token
	used bool
}

type lintScope struct {
	global bool
	vars   map[string]*lintVar
}

// analyzer walks statements in execution order, so a name is declared
// exactly when the interpreter would have bound it.
type analyzer struct {
	scopes       []*lintScope
	initializing string
	warnings     []lintWarning
}

func analyzeProgram(stmts []lox.Stmt) []lintWarning {
	a := &analyzer{}
	a.push(true)
	a.statements(stmts)
	a.pop()

	sort.SliceStable(a.warnings, func(i, j int) bool {
		pi, pj := a.warnings[i].Pos, a.warnings[j].Pos
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}
		return pi.Column < pj.Column
	})
	return a.warnings
}

func (a *analyzer) warn(pos lox.Position, format string, args ...any) {
	a.warnings = append(a.warnings, lintWarning{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (a *analyzer) push(global bool) {
	a.scopes = append(a.scopes, &lintScope{global: global, vars: make(map[string]*lintVar)})
}

func (a *analyzer) pop() {
	top := a.scopes[len(a.scopes)-1]
	a.scopes = a.scopes[:len(a.scopes)-1]
	if top.global {
		return
	}
	for name, v := range top.vars {
		if !v.used {
			a.warn(v.name.Pos(), "local variable '%s' is never read", name)
		}
	}
}

func (a *analyzer) top() *lintScope {
	return a.scopes[len(a.scopes)-1]
}

func (a *analyzer) statements(stmts []lox.Stmt) {
	for _, stmt := range stmts {
		a.statement(stmt)
	}
}

func (a *analyzer) statement(stmt lox.Stmt) {
	switch s := stmt.(type) {
	case *lox.ExprStmt:
		a.expression(s.Expr)
	case *lox.PrintStmt:
		a.expression(s.Expr)
	case *lox.VarStmt:
		if s.Initializer != nil {
			a.initializing = s.Name.Lexeme
			a.expression(s.Initializer)
			a.initializing = ""
		}
		a.declare(s.Name)
	case *lox.BlockStmt:
		a.push(false)
		a.statements(s.Statements)
		a.pop()
	}
}

func (a *analyzer) declare(name lox.Token) {
	scope := a.top()
	if scope.global {
		scope.vars[name.Lexeme] = &lintVar{name: name, used: true}
		return
	}
	if prev, ok := scope.vars[name.Lexeme]; ok {
		a.warn(name.Pos(), "variable '%s' is already declared in this block on line %d", name.Lexeme, prev.name.Line)
	} else if outer := a.lookup(name.Lexeme, len(a.scopes)-2); outer != nil {
		a.warn(name.Pos(), "local variable '%s' shadows a variable declared on line %d", name.Lexeme, outer.name.Line)
	}
	scope.vars[name.Lexeme] = &lintVar{name: name}
}

// lookup searches scopes from index from outward.
func (a *analyzer) lookup(name string, from int) *lintVar {
	for i := from; i >= 0; i-- {
		if v, ok := a.scopes[i].vars[name]; ok {
			return v
		}
	}
	return nil
}

func (a *analyzer) expression(expr lox.Expr) {
	switch e := expr.(type) {
	case *lox.GroupingExpr:
		a.expression(e.Inner)
	case *lox.UnaryExpr:
		a.expression(e.Right)
	case *lox.BinaryExpr:
		a.expression(e.Left)
		a.expression(e.Right)
	case *lox.VariableExpr:
		if e.Name.Lexeme == a.initializing && !a.top().global {
			a.warn(e.Name.Pos(), "local variable '%s' is read in its own initializer", e.Name.Lexeme)
		}
		v := a.lookup(e.Name.Lexeme, len(a.scopes)-1)
		if v == nil {
			a.warn(e.Name.Pos(), "undeclared variable '%s'", e.Name.Lexeme)
			return
		}
		v.used = true
	case *lox.AssignExpr:
		a.expression(e.Value)
		if a.lookup(e.Name.Lexeme, len(a.scopes)-1) == nil {
			a.warn(e.Name.Pos(), "assignment to undeclared variable '%s'", e.Name.Lexeme)
		}
	}
}
