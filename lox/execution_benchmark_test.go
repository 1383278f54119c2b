package lox

import (
	"io"
	"strings"
	"testing"
)

func benchmarkProgram(b *testing.B, source string) []Stmt {
	b.Helper()
	tokens, scanErrs := Scan(source)
	stmts, parseErrs := Parse(tokens)
	if len(scanErrs)+len(parseErrs) > 0 {
		b.Fatalf("benchmark source does not parse: %v %v", scanErrs, parseErrs)
	}
	return stmts
}

func BenchmarkInterpretNestedBlocks(b *testing.B) {
	var src strings.Builder
	src.WriteString("var total = 0;\n")
	for i := 0; i < 50; i++ {
		src.WriteString("{ var step = 2; total = total + step * 3 - 1; }\n")
	}
	stmts := benchmarkProgram(b, src.String())

	interp := NewInterpreter(Config{Stdout: io.Discard})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := interp.Interpret(stmts); err != nil {
			b.Fatalf("interpret failed: %v", err)
		}
	}
}

func BenchmarkScanAndParse(b *testing.B) {
	source := strings.Repeat("var s = \"ab\" + \"cd\"; print !(s == nil) == (1 <= 2);\n", 40)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokens, _ := Scan(source)
		if _, errs := Parse(tokens); len(errs) > 0 {
			b.Fatalf("parse failed: %v", errs)
		}
	}
}
