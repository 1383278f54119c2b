package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/oarkflow/json"
	"gopkg.in/yaml.v3"

	"github.com/beacodeart/glox/lox"
)

type tokenRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Lexeme  string `json:"lexeme" yaml:"lexeme"`
	Literal any    `json:"literal,omitempty" yaml:"literal,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

func tokenRecords(tokens []lox.Token) []tokenRecord {
	records := make([]tokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		record := tokenRecord{
			Kind:   string(tok.Kind),
			Lexeme: tok.Lexeme,
			Line:   tok.Line,
			Column: tok.Column,
		}
		switch tok.Literal.Kind() {
		case lox.KindNumber:
			record.Literal = tok.Literal.Number()
		case lox.KindString:
			record.Literal = tok.Literal.Text()
		}
		records = append(records, record)
	}
	return records
}

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	format := fs.String("format", "text", "output format: text, json or yaml")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if fs.NArg() == 0 {
		return &exitError{code: exitUsage, err: errors.New("lox tokens: script path required")}
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	source, err := readScript(fs.Arg(0))
	if err != nil {
		return err
	}

	tokens, scanErrs := lox.Scan(source)
	switch *format {
	case "text":
		for _, tok := range tokens {
			fmt.Fprintln(os.Stdout, tok.String())
		}
	case "json", "yaml":
		if err := writeStructured(os.Stdout, *format, tokenRecords(tokens)); err != nil {
			return err
		}
	default:
		return &exitError{code: exitUsage, err: fmt.Errorf("lox tokens: unknown format %q", *format)}
	}

	if len(scanErrs) > 0 {
		reportAll(newDiagnosticPrinter(os.Stderr, cfg.Color), scanErrs)
		return &exitError{code: exitDataErr}
	}
	return nil
}

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	format := fs.String("format", "sexpr", "output format: sexpr, json or yaml")
	common := addCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if fs.NArg() == 0 {
		return &exitError{code: exitUsage, err: errors.New("lox ast: script path required")}
	}
	switch *format {
	case "sexpr", "json", "yaml":
	default:
		return &exitError{code: exitUsage, err: fmt.Errorf("lox ast: unknown format %q", *format)}
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	source, err := readScript(fs.Arg(0))
	if err != nil {
		return err
	}

	tokens, scanErrs := lox.Scan(source)
	stmts, parseErrs := lox.Parse(tokens)
	if len(scanErrs)+len(parseErrs) > 0 {
		printer := newDiagnosticPrinter(os.Stderr, cfg.Color)
		reportAll(printer, scanErrs)
		reportAll(printer, parseErrs)
		return &exitError{code: exitDataErr}
	}

	if *format == "sexpr" {
		fmt.Fprint(os.Stdout, lox.PrintProgram(stmts))
		return nil
	}
	return writeStructured(os.Stdout, *format, lox.Tree(stmts))
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func reportAll(reporter lox.Reporter, errs []error) {
	for _, err := range errs {
		reporter.Report(err)
	}
}
