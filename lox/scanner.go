package lox

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ScanError is a lexical error. Scanning continues past it.
type ScanError struct {
	Line    int
	Column  int
	Message string
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

func (e *ScanError) Position() Position {
	return Position{Line: e.Line, Column: e.Column}
}

type scanner struct {
	source string

	start   int
	current int

	line      int
	lineStart int

	// column where the current token began
	startColumn int

	tokens []Token
	errors []error
}

// Scan converts source into tokens. The returned slice always ends with a
// single EOF token; lexical errors are collected and returned alongside it.
func Scan(source string) ([]Token, []error) {
	s := &scanner{source: source, line: 1}
	return s.scanTokens()
}

func (s *scanner) scanTokens() ([]Token, []error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startColumn = s.column(s.start)
		s.scanToken()
	}
	s.tokens = append(s.tokens, Token{Kind: TokenEOF, Line: s.line, Column: s.column(s.current)})
	return s.tokens, s.errors
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(TokenLeftParen)
	case ')':
		s.addToken(TokenRightParen)
	case '{':
		s.addToken(TokenLeftBrace)
	case '}':
		s.addToken(TokenRightBrace)
	case ',':
		s.addToken(TokenComma)
	case '.':
		s.addToken(TokenDot)
	case '-':
		s.addToken(TokenMinus)
	case '+':
		s.addToken(TokenPlus)
	case ';':
		s.addToken(TokenSemicolon)
	case '*':
		s.addToken(TokenStar)
	case '!':
		s.addToken(s.pick('=', TokenBangEqual, TokenBang))
	case '=':
		s.addToken(s.pick('=', TokenEqualEqual, TokenEqual))
	case '<':
		s.addToken(s.pick('=', TokenLessEqual, TokenLess))
	case '>':
		s.addToken(s.pick('=', TokenGreaterEqual, TokenGreater))
	case '/':
		if s.match('/') {
			s.skipComment()
		} else {
			s.addToken(TokenSlash)
		}
	case ' ', '\r', '\t':
	case '\n':
		s.newline()
	case '"':
		s.readString()
	default:
		switch {
		case isDigit(c):
			s.readNumber()
		case isIdentifierStart(c):
			s.readIdentifier()
		default:
			if c >= utf8.RuneSelf {
				// report a multi-byte character once, not once per byte
				_, width := utf8.DecodeRuneInString(s.source[s.start:])
				s.current = s.start + width
			}
			s.errorAt(s.line, s.startColumn, "Unexpected character.")
		}
	}
}

func (s *scanner) skipComment() {
	for s.peek() != '\n' && !s.isAtEnd() {
		s.advance()
	}
}

func (s *scanner) readString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.advance() == '\n' {
			s.newline()
		}
	}

	if s.isAtEnd() {
		s.errorAt(s.line, s.column(s.current), "Unterminated string.")
		return
	}

	// closing quote
	s.advance()

	value := s.source[s.start+1 : s.current-1]
	s.addLiteral(TokenString, NewString(value))
}

func (s *scanner) readNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// digit runs always parse; overflow yields ±Inf which is kept
	value, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)
	s.addLiteral(TokenNumber, NewNumber(value))
}

func (s *scanner) readIdentifier() {
	for isIdentifierRune(s.peek()) {
		s.advance()
	}
	text := s.source[s.start:s.current]
	kind, ok := keywords[text]
	if !ok {
		kind = TokenIdentifier
	}
	s.addToken(kind)
}

func (s *scanner) pick(expected byte, matched, otherwise TokenKind) TokenKind {
	if s.match(expected) {
		return matched
	}
	return otherwise
}

func (s *scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *scanner) newline() {
	s.line++
	s.lineStart = s.current
}

// column returns the 1-based rune column of offset on the current line.
func (s *scanner) column(offset int) int {
	if offset < s.lineStart {
		return 0
	}
	return utf8.RuneCountInString(s.source[s.lineStart:offset]) + 1
}

func (s *scanner) addToken(kind TokenKind) {
	s.addLiteral(kind, NewNil())
}

func (s *scanner) addLiteral(kind TokenKind, literal Value) {
	lexeme := s.source[s.start:s.current]
	column := s.startColumn
	if strings.Contains(lexeme, "\n") {
		// multi-line strings are reported on their closing line
		column = 0
	}
	s.tokens = append(s.tokens, Token{
		Kind:    kind,
		Lexeme:  lexeme,
		Literal: literal,
		Line:    s.line,
		Column:  column,
	})
}

func (s *scanner) errorAt(line, column int, msg string) {
	s.errors = append(s.errors, &ScanError{Line: line, Column: column, Message: msg})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isIdentifierRune(c byte) bool {
	return isIdentifierStart(c) || isDigit(c)
}
