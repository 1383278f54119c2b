package lox

import (
	"errors"
	"fmt"
)

// ParseError reports a syntax error at Token.
type ParseError struct {
	Token   Token
	Message string
}

func (e *ParseError) Error() string {
	if e.Token.Kind == TokenEOF {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Message)
}

func (e *ParseError) Position() Position {
	return e.Token.Pos()
}

// ErrorPosition returns the source position carried by a scan, parse or
// runtime error.
func ErrorPosition(err error) (Position, bool) {
	var positioned interface{ Position() Position }
	if errors.As(err, &positioned) {
		return positioned.Position(), true
	}
	return Position{}, false
}

func (p *parser) errorAt(tok Token, msg string) error {
	return &ParseError{Token: tok, Message: msg}
}

// report records an error that does not interrupt parsing.
func (p *parser) report(err error) {
	p.errors = append(p.errors, err)
}

// synchronize discards tokens until a likely statement boundary: just past
// a semicolon or in front of a keyword that begins a statement.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}
		if _, ok := statementStarts[p.peek().Kind]; ok {
			return
		}
		p.advance()
	}
}
