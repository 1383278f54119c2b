package lox

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/oarkflow/log"
)

func newTestLogger(w io.Writer) *log.Logger {
	return &log.Logger{Level: log.DebugLevel, Writer: &log.IOWriter{Writer: w}}
}

func TestRunnerSkipsExecutionOnStaticErrors(t *testing.T) {
	var out bytes.Buffer
	var reported []error
	runner := NewRunner(Config{
		Stdout:   &out,
		Reporter: ReporterFunc(func(err error) { reported = append(reported, err) }),
	})

	result := runner.Run("print 1; print 2 +; @")
	if out.Len() != 0 {
		t.Fatalf("nothing should run when static errors exist, got %q", out.String())
	}
	if !result.HadError() || result.HadRuntimeError() {
		t.Fatalf("unexpected result %#v", result)
	}
	if len(result.StaticErrors) != 2 || len(reported) != 2 {
		t.Fatalf("expected 2 errors, got %v (reported %v)", result.StaticErrors, reported)
	}
	var scanErr *ScanError
	if !errors.As(result.StaticErrors[0], &scanErr) {
		t.Fatalf("scan errors come first, got %T", result.StaticErrors[0])
	}
	if !runner.HadError() || runner.HadRuntimeError() {
		t.Fatalf("unexpected runner flags")
	}
}

func TestRunnerFlagsAreSticky(t *testing.T) {
	runner := NewRunner(Config{Stdout: io.Discard})

	runner.Run("print missing;")
	if !runner.HadRuntimeError() {
		t.Fatalf("expected runtime error flag")
	}
	runner.Run("print 1;")
	if !runner.HadRuntimeError() {
		t.Fatalf("flag should stay set until reset")
	}
	runner.ResetError()
	if runner.HadError() || runner.HadRuntimeError() {
		t.Fatalf("flags should be cleared")
	}
}

func TestRunnerKeepsGlobalsAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	runner := NewRunner(Config{Stdout: &out})

	runner.Run("var count = 1;")
	runner.Run("print count +;")
	runner.ResetError()
	runner.Run("count = count + 1;")
	runner.Run("print count;")
	if out.String() != "2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}

	globals := runner.Globals().Snapshot()
	if v, ok := globals["count"]; !ok || v.Number() != 2 {
		t.Fatalf("unexpected globals %#v", globals)
	}
}

func TestRunnerAttachesCodeFrame(t *testing.T) {
	var reported []error
	runner := NewRunner(Config{
		Stdout:   io.Discard,
		Reporter: ReporterFunc(func(err error) { reported = append(reported, err) }),
	})
	result := runner.Run("var a = 1;\nprint a + \"x\";")

	var runtimeErr *RuntimeError
	if !errors.As(result.RuntimeErr, &runtimeErr) {
		t.Fatalf("expected runtime error, got %v", result.RuntimeErr)
	}
	want := "Operands must be two numbers or two strings.\n[line 2]\n  --> 2:9\n 2 | print a + \"x\";\n   |         ^"
	if runtimeErr.Error() != want {
		t.Fatalf("unexpected error:\n%s\nwant:\n%s", runtimeErr.Error(), want)
	}
	if len(reported) != 1 || reported[0] != result.RuntimeErr {
		t.Fatalf("runtime error should be reported once, got %v", reported)
	}
	pos, ok := ErrorPosition(result.Err())
	if !ok || pos != (Position{Line: 2, Column: 9}) {
		t.Fatalf("unexpected position %v", pos)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	var out bytes.Buffer
	runner := NewRunner(Config{Stdout: &out})
	if errs := runner.Check("print 1;"); len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if out.Len() != 0 || runner.HadError() {
		t.Fatalf("check must not execute or set flags")
	}

	errs := Check("print ;\nvar;")
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
	joined := Result{StaticErrors: errs}.Err().Error()
	if !strings.Contains(joined, "[line 2] Error at ';': Expect variable name.") {
		t.Fatalf("unexpected joined errors %q", joined)
	}
}

func TestResultErrNilWhenClean(t *testing.T) {
	_, result := runSource(t, "print 1;")
	if result.Err() != nil || result.HadError() || result.HadRuntimeError() {
		t.Fatalf("unexpected result %#v", result)
	}
}
