package lox

import (
	"io"
	"testing"
)

func FuzzScanParseDoesNotPanic(f *testing.F) {
	f.Add("")
	f.Add("print 1 + 2 * 3;")
	f.Add("var a = \"unterminated")
	f.Add("{ { { print ; } }")
	f.Add("a = b = = c;")
	f.Add("1.2.3 @ # é")

	f.Fuzz(func(t *testing.T, source string) {
		tokens, _ := Scan(source)
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
			t.Fatalf("token stream must end with EOF")
		}
		stmts, _ := Parse(tokens)
		_ = PrintProgram(stmts)
		_ = Tree(stmts)
	})
}

func FuzzRunDoesNotPanic(f *testing.F) {
	f.Add("var a = 1; { var a = a + 1; print a; }")
	f.Add("print -\"x\";")
	f.Add("print 0 / 0 == 0 / 0;")
	f.Add("x = 1;")

	f.Fuzz(func(t *testing.T, source string) {
		if len(source) > 4096 {
			source = source[:4096]
		}
		runner := NewRunner(Config{Stdout: io.Discard})
		runner.Run(source)
	})
}
