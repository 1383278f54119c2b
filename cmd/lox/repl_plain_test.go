package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/beacodeart/glox/lox"
)

type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == "^C" {
		return "", liner.ErrPromptAborted
	}
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func runPlain(t *testing.T, lines ...string) (string, *scriptedReader) {
	t.Helper()
	reader := &scriptedReader{lines: lines}
	var out bytes.Buffer
	var diags []string
	cfg := lox.Config{Reporter: lox.ReporterFunc(func(err error) {
		diags = append(diags, err.Error())
	})}
	if err := newPlainREPL(reader, "> ", &out, cfg).run(); err != nil {
		t.Fatalf("plain repl failed: %v", err)
	}
	return out.String() + strings.Join(diags, "\n"), reader
}

func TestPlainREPLKeepsGlobalsAcrossLines(t *testing.T) {
	out, reader := runPlain(t, "var a = 1;", "a = a + 1;", "print a;")
	if out != "2\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if len(reader.history) != 3 {
		t.Fatalf("expected 3 history entries, got %v", reader.history)
	}
}

func TestPlainREPLContinuesOpenBlocks(t *testing.T) {
	out, reader := runPlain(t, "{", "  print 1;", "}")
	if out != "1\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if got := strings.Join(reader.prompts[:3], "|"); got != "> |. |. " {
		t.Fatalf("unexpected prompts %q", got)
	}
	if reader.history[0] != "{   print 1; }" {
		t.Fatalf("unexpected history entry %q", reader.history[0])
	}
}

func TestPlainREPLContinuesOpenStrings(t *testing.T) {
	out, _ := runPlain(t, `print "a`, `b";`)
	if out != "a\nb\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPlainREPLAbortDiscardsPendingInput(t *testing.T) {
	out, _ := runPlain(t, "{", "^C", "print 3;")
	if out != "3\n\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPlainREPLErrorDoesNotStopSession(t *testing.T) {
	out, _ := runPlain(t, "print ;", "print 4;")
	if !strings.HasPrefix(out, "4\n") {
		t.Fatalf("expected evaluation to continue, got %q", out)
	}
	if !strings.Contains(out, "Expect expression.") {
		t.Fatalf("expected diagnostic, got %q", out)
	}
}

func TestPlainREPLCommands(t *testing.T) {
	out, _ := runPlain(t, `var b = "x";`, "var a = 1;", ":vars", ":reset", ":vars", ":bogus", ":quit", "print 9;")
	want := "a = 1\nb = \"x\"\nEnvironment reset\nUnknown command: :bogus\n"
	if out != want {
		t.Fatalf("unexpected output %q, want %q", out, want)
	}
}

func TestInputIncomplete(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"print 1;", false},
		{"{", true},
		{"{ { }", true},
		{"{ }", false},
		{`print "open`, true},
		{"}", false},
	}
	for _, tc := range cases {
		if got := inputIncomplete(tc.src); got != tc.want {
			t.Fatalf("inputIncomplete(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}
