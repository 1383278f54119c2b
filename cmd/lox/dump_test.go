package main

import (
	"strings"
	"testing"

	"github.com/oarkflow/json"
	"gopkg.in/yaml.v3"
)

func TestTokensCommandText(t *testing.T) {
	scriptPath := writeScript(t, "print 1;")
	out, err := captureStdout(t, func() error {
		return tokensCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}
	want := "PRINT print nil\nNUMBER 1 1\n; ; nil\nEOF  nil\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestTokensCommandJSON(t *testing.T) {
	scriptPath := writeScript(t, `var s = "hi";`)
	out, err := captureStdout(t, func() error {
		return tokensCommand([]string{"-format", "json", scriptPath})
	})
	if err != nil {
		t.Fatalf("tokens failed: %v", err)
	}

	var records []tokenRecord
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(records) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(records))
	}
	str := records[3]
	if str.Kind != "STRING" || str.Lexeme != `"hi"` || str.Literal != "hi" || str.Column != 9 {
		t.Fatalf("unexpected string token %#v", str)
	}
}

func TestTokensCommandReportsScanErrors(t *testing.T) {
	scriptPath := writeScript(t, "print @;")
	_, err := captureStdout(t, func() error {
		return tokensCommand([]string{"-no-color", scriptPath})
	})
	assertExitCode(t, err, exitDataErr)
}

func TestTokensCommandUnknownFormat(t *testing.T) {
	scriptPath := writeScript(t, "print 1;")
	err := tokensCommand([]string{"-format", "xml", scriptPath})
	assertExitCode(t, err, exitUsage)
}

func TestASTCommandSExpr(t *testing.T) {
	scriptPath := writeScript(t, "var a = 1;\nprint -a + 2 * 3;")
	out, err := captureStdout(t, func() error {
		return astCommand([]string{scriptPath})
	})
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}
	if out != "(var a 1)\n(print (+ (- a) (* 2 3)))\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestASTCommandYAML(t *testing.T) {
	scriptPath := writeScript(t, "print 1;")
	out, err := captureStdout(t, func() error {
		return astCommand([]string{"-format", "yaml", scriptPath})
	})
	if err != nil {
		t.Fatalf("ast failed: %v", err)
	}

	var nodes []map[string]any
	if err := yaml.Unmarshal([]byte(out), &nodes); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(nodes) != 1 || nodes[0]["type"] != "print" {
		t.Fatalf("unexpected nodes %#v", nodes)
	}
}

func TestASTCommandSyntaxErrorPrintsNothing(t *testing.T) {
	scriptPath := writeScript(t, "print ;")
	out, err := captureStdout(t, func() error {
		return astCommand([]string{"-no-color", "-format", "json", scriptPath})
	})
	assertExitCode(t, err, exitDataErr)
	if strings.TrimSpace(out) != "" {
		t.Fatalf("expected empty stdout, got %q", out)
	}
}
