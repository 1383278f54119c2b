package lox

import (
	"io"
	"os"

	"github.com/oarkflow/log"
)

// Config controls where an Interpreter or Runner sends output and
// diagnostics.
type Config struct {
	// Stdout receives print output. Defaults to os.Stdout.
	Stdout io.Writer
	// Reporter receives each error as a Runner encounters it. Optional.
	Reporter Reporter
	// Logger traces execution at debug level. Nil disables tracing.
	Logger *log.Logger
}

// Interpreter evaluates statements against one persistent global scope.
// It is not safe for concurrent use.
type Interpreter struct {
	config  Config
	globals *Env
	env     *Env
}

func NewInterpreter(cfg Config) *Interpreter {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	globals := newEnv(nil)
	return &Interpreter{config: cfg, globals: globals, env: globals}
}

// Globals returns the outermost scope. Bindings persist across Interpret
// calls.
func (in *Interpreter) Globals() *Env {
	return in.globals
}

// Interpret executes stmts in order and stops at the first runtime error,
// which is returned as a *RuntimeError. Output produced before the error
// stays written.
func (in *Interpreter) Interpret(stmts []Stmt) error {
	in.env = in.globals
	for _, stmt := range stmts {
		if err := in.execStmt(stmt); err != nil {
			if logger := in.config.Logger; logger != nil {
				logger.Debug().Err(err).Int("line", stmt.Pos().Line).Msg("runtime error")
			}
			return err
		}
	}
	return nil
}
