package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beacodeart/glox/lox"
)

// Exit codes follow sysexits(3).
const (
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

// exitError carries a process exit code. A nil err means the diagnostics
// were already written and nothing more should be printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func main() {
	err := runCLI(os.Args)
	if err == nil {
		return
	}
	code := 1
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		code = exitErr.code
		if exitErr.err == nil {
			os.Exit(code)
		}
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(code)
}

func runCLI(args []string) error {
	if len(args) < 2 {
		cfg, err := loadConfig("")
		if err != nil {
			return err
		}
		return startREPL(cfg)
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "lsp":
		return runLSP()
	case "serve":
		return serveCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		if len(args) == 2 && !strings.HasPrefix(args[1], "-") {
			cfg, err := loadConfig("")
			if err != nil {
				return err
			}
			return runFile(args[1], cfg)
		}
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	trace := fs.Bool("trace", false, "log each executed statement to stderr")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return &exitError{code: exitUsage, err: errors.New("lox run: script path required")}
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	if *trace {
		cfg.LogLevel = "debug"
	}
	return runFile(remaining[0], cfg)
}

// runFile executes one script. Diagnostics go to stderr as they are found;
// the returned exitError only carries the status.
func runFile(path string, cfg cliConfig) error {
	source, err := readScript(path)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}
	runner := lox.NewRunner(lox.Config{
		Stdout:   os.Stdout,
		Reporter: newDiagnosticPrinter(os.Stderr, cfg.Color),
		Logger:   logger,
	})
	result := runner.Run(source)
	switch {
	case result.HadError():
		return &exitError{code: exitDataErr}
	case result.HadRuntimeError():
		return &exitError{code: exitSoftware}
	}
	return nil
}

func usageError() error {
	printUsage()
	return &exitError{code: exitUsage, err: errors.New("invalid command")}
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", prog)
	fmt.Fprintf(os.Stderr, "       %s <command> [flags] [args...]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <script>      run a script (-trace logs each statement)")
	fmt.Fprintln(os.Stderr, "  repl              start the interactive prompt (-plain for line mode)")
	fmt.Fprintln(os.Stderr, "  tokens <script>   print the token stream (-format text|json|yaml)")
	fmt.Fprintln(os.Stderr, "  ast <script>      print the syntax tree (-format sexpr|json|yaml)")
	fmt.Fprintln(os.Stderr, "  fmt <paths...>    format sources (-w to write, -check to verify)")
	fmt.Fprintln(os.Stderr, "  analyze <script>  report likely mistakes")
	fmt.Fprintln(os.Stderr, "  lsp               serve the language server protocol on stdio")
	fmt.Fprintln(os.Stderr, "  serve             start the HTTP playground (-addr)")
	fmt.Fprintln(os.Stderr, "Common flags:")
	fmt.Fprintln(os.Stderr, "  -config <file>    YAML settings (default .lox.yaml when present)")
	fmt.Fprintln(os.Stderr, "  -log-level <lvl>  debug, info, warn, error or off")
	fmt.Fprintln(os.Stderr, "  -no-color         disable colored diagnostics")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

func readScript(path string) (string, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}
