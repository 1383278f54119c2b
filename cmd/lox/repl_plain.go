package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/beacodeart/glox/lox"
)

const (
	historyFile        = ".lox_history"
	continuationPrompt = ". "
)

// lineReader is the part of *liner.State the plain REPL uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// plainREPL is the line-oriented prompt used with -plain and when stdin
// is not a terminal. Output streams straight to out.
type plainREPL struct {
	reader  lineReader
	prompt  string
	out     io.Writer
	session *replSession
}

func newPlainREPL(reader lineReader, prompt string, out io.Writer, cfg lox.Config) *plainREPL {
	cfg.Stdout = out
	return &plainREPL{
		reader:  reader,
		prompt:  prompt,
		out:     out,
		session: newREPLSession(cfg),
	}
}

func runPlainREPL(cfg cliConfig, loxCfg lox.Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if path := historyPath(cfg.REPL.HistoryFile); path != "" {
		if f, err := os.Open(path); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(path); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	loxCfg.Reporter = newDiagnosticPrinter(os.Stderr, cfg.Color)
	repl := newPlainREPL(ln, cfg.REPL.Prompt, os.Stdout, loxCfg)
	ln.SetCompleter(repl.complete)
	return repl.run()
}

func historyPath(configured string) string {
	if configured != "" {
		return configured
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func (r *plainREPL) run() error {
	for {
		src, ok := r.readInput()
		if !ok {
			fmt.Fprintln(r.out)
			return nil
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		r.reader.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := r.handleCommand(trimmed); quit {
				return nil
			}
			continue
		}
		r.session.run(src)
	}
}

// readInput keeps prompting while a block or string is still open. Ctrl-C
// discards the pending input.
func (r *plainREPL) readInput() (string, bool) {
	var lines []string
	for {
		prompt := r.prompt
		if len(lines) > 0 {
			prompt = continuationPrompt
		}
		line, err := r.reader.Prompt(prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true
		case err != nil:
			return strings.Join(lines, "\n"), len(lines) > 0
		}

		lines = append(lines, line)
		if src := strings.Join(lines, "\n"); !inputIncomplete(src) {
			return src, true
		}
	}
}

// complete returns whole-line candidates for liner's tab completion.
func (r *plainREPL) complete(line string) []string {
	head, word := trailingWord(line)
	if word == "" {
		return nil
	}
	var out []string
	for _, c := range completeWord(word, r.session.globals().Names()) {
		out = append(out, head+c)
	}
	return out
}

func (r *plainREPL) handleCommand(input string) bool {
	action, word, ok := parseMetaCommand(input)
	if !ok {
		fmt.Fprintf(r.out, "Unknown command: %s\n", word)
		return false
	}
	switch action {
	case metaHelp:
		for _, c := range metaCommands {
			fmt.Fprintf(r.out, "  %-7s %s\n", c.name, c.desc)
		}
	case metaVars:
		for _, binding := range r.session.bindings() {
			fmt.Fprintln(r.out, binding)
		}
	case metaClear:
		fmt.Fprint(r.out, "\033[H\033[2J")
	case metaReset:
		r.session.reset()
		fmt.Fprintln(r.out, "Environment reset")
	case metaQuit:
		return true
	}
	return false
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
