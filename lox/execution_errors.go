package lox

import (
	"fmt"
	"strings"
)

// RuntimeError aborts the current Interpret call. Token locates the
// operator or name that failed.
type RuntimeError struct {
	Token     Token
	Message   string
	CodeFrame string
}

func newRuntimeError(tok Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	fmt.Fprintf(&b, "\n[line %d]", re.Token.Line)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	return b.String()
}

func (re *RuntimeError) Position() Position {
	return re.Token.Pos()
}
