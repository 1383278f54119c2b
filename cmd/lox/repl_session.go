package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beacodeart/glox/lox"
)

// replSession is the interpreter state shared by both REPL front ends.
// Globals survive errors; the error flags are cleared after every input.
type replSession struct {
	config lox.Config
	runner *lox.Runner
}

func newREPLSession(cfg lox.Config) *replSession {
	return &replSession{config: cfg, runner: lox.NewRunner(cfg)}
}

func (s *replSession) run(src string) lox.Result {
	result := s.runner.Run(src)
	s.runner.ResetError()
	return result
}

func (s *replSession) reset() {
	s.runner = lox.NewRunner(s.config)
}

func (s *replSession) globals() *lox.Env {
	return s.runner.Globals()
}

// bindings renders each global as "name = value", sorted by name.
func (s *replSession) bindings() []string {
	env := s.globals()
	values := env.Snapshot()
	names := env.Names()
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, fmt.Sprintf("%s = %s", name, displayValue(values[name])))
	}
	return out
}

// displayValue quotes strings so "nil" and nil are told apart.
func displayValue(v lox.Value) string {
	if v.IsString() {
		return fmt.Sprintf("%q", v.Text())
	}
	return v.String()
}

type metaAction int

const (
	metaHelp metaAction = iota
	metaVars
	metaClear
	metaReset
	metaQuit
)

var metaCommands = []struct {
	name   string
	alias  string
	action metaAction
	desc   string
}{
	{":help", ":h", metaHelp, "show the commands"},
	{":vars", ":v", metaVars, "list global variables"},
	{":clear", ":c", metaClear, "clear the screen"},
	{":reset", ":r", metaReset, "discard all variables"},
	{":quit", ":q", metaQuit, "exit"},
}

// parseMetaCommand resolves the first word of a ":" line.
func parseMetaCommand(input string) (metaAction, string, bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return 0, "", false
	}
	word := fields[0]
	for _, c := range metaCommands {
		if word == c.name || word == c.alias {
			return c.action, word, true
		}
	}
	return 0, word, false
}

// inputIncomplete reports whether src ends inside an unclosed block or
// string.
func inputIncomplete(src string) bool {
	tokens, errs := lox.Scan(src)
	for _, err := range errs {
		var scanErr *lox.ScanError
		if errors.As(err, &scanErr) && scanErr.Message == "Unterminated string." {
			return true
		}
	}
	return braceDepth(tokens) > 0
}

func braceDepth(tokens []lox.Token) int {
	depth := 0
	for _, tok := range tokens {
		switch tok.Kind {
		case lox.TokenLeftBrace:
			depth++
		case lox.TokenRightBrace:
			depth--
		}
	}
	return depth
}

// completeWord returns the keywords and names that extend prefix.
func completeWord(prefix string, names []string) []string {
	var completions []string
	for _, k := range lox.Keywords() {
		if strings.HasPrefix(k, prefix) {
			completions = append(completions, k)
		}
	}
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			completions = append(completions, name)
		}
	}
	return completions
}

func isIdentifierRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}

// trailingWord splits input before the identifier it ends with.
func trailingWord(input string) (string, string) {
	i := len(input)
	for i > 0 && isIdentifierRune(rune(input[i-1])) {
		i--
	}
	return input[:i], input[i:]
}
