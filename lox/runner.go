package lox

import (
	"errors"
)

// Reporter receives diagnostics as a Runner produces them.
type Reporter interface {
	Report(err error)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(err error)

func (f ReporterFunc) Report(err error) { f(err) }

// Result describes one Run call. StaticErrors holds scan and parse errors
// in source order; when it is non-empty nothing was executed.
type Result struct {
	StaticErrors []error
	RuntimeErr   error
}

func (r Result) HadError() bool        { return len(r.StaticErrors) > 0 }
func (r Result) HadRuntimeError() bool { return r.RuntimeErr != nil }

// Err joins every error in the result, or returns nil.
func (r Result) Err() error {
	if r.RuntimeErr != nil {
		return r.RuntimeErr
	}
	return errors.Join(r.StaticErrors...)
}

// Runner drives source text through scanning, parsing and evaluation
// against one long-lived Interpreter. The error flags are sticky until
// ResetError.
type Runner struct {
	config      Config
	interpreter *Interpreter

	hadError        bool
	hadRuntimeError bool
}

func NewRunner(cfg Config) *Runner {
	interpreter := NewInterpreter(cfg)
	return &Runner{config: interpreter.config, interpreter: interpreter}
}

// Run scans and parses source and, when both succeed, executes it.
func (r *Runner) Run(source string) Result {
	stmts, static := compile(source)
	if logger := r.config.Logger; logger != nil {
		logger.Debug().Int("statements", len(stmts)).Int("errors", len(static)).Msg("compiled")
	}

	if len(static) > 0 {
		r.hadError = true
		for _, err := range static {
			r.report(err)
		}
		return Result{StaticErrors: static}
	}

	err := r.interpreter.Interpret(stmts)
	if err == nil {
		return Result{}
	}
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) && runtimeErr.CodeFrame == "" {
		runtimeErr.CodeFrame = codeFrame(source, runtimeErr.Token)
	}
	r.hadRuntimeError = true
	r.report(err)
	return Result{RuntimeErr: err}
}

// Check scans and parses source without executing it or touching the
// error flags.
func (r *Runner) Check(source string) []error {
	_, errs := compile(source)
	return errs
}

func (r *Runner) HadError() bool        { return r.hadError }
func (r *Runner) HadRuntimeError() bool { return r.hadRuntimeError }

// ResetError clears both error flags. Globals are kept.
func (r *Runner) ResetError() {
	r.hadError = false
	r.hadRuntimeError = false
}

func (r *Runner) Globals() *Env {
	return r.interpreter.Globals()
}

func (r *Runner) report(err error) {
	if r.config.Reporter != nil {
		r.config.Reporter.Report(err)
	}
}

// Check scans and parses source and returns its static errors.
func Check(source string) []error {
	_, errs := compile(source)
	return errs
}

func compile(source string) ([]Stmt, []error) {
	tokens, scanErrs := Scan(source)
	stmts, parseErrs := Parse(tokens)
	errs := make([]error, 0, len(scanErrs)+len(parseErrs))
	errs = append(errs, scanErrs...)
	errs = append(errs, parseErrs...)
	return stmts, errs
}
