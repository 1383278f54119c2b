package lox

import "fmt"

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	TokenLeftParen  TokenKind = "("
	TokenRightParen TokenKind = ")"
	TokenLeftBrace  TokenKind = "{"
	TokenRightBrace TokenKind = "}"
	TokenComma      TokenKind = ","
	TokenDot        TokenKind = "."
	TokenMinus      TokenKind = "-"
	TokenPlus       TokenKind = "+"
	TokenSemicolon  TokenKind = ";"
	TokenSlash      TokenKind = "/"
	TokenStar       TokenKind = "*"

	TokenBang         TokenKind = "!"
	TokenBangEqual    TokenKind = "!="
	TokenEqual        TokenKind = "="
	TokenEqualEqual   TokenKind = "=="
	TokenGreater      TokenKind = ">"
	TokenGreaterEqual TokenKind = ">="
	TokenLess         TokenKind = "<"
	TokenLessEqual    TokenKind = "<="

	TokenIdentifier TokenKind = "IDENTIFIER"
	TokenString     TokenKind = "STRING"
	TokenNumber     TokenKind = "NUMBER"

	TokenAnd    TokenKind = "AND"
	TokenClass  TokenKind = "CLASS"
	TokenElse   TokenKind = "ELSE"
	TokenFalse  TokenKind = "FALSE"
	TokenFor    TokenKind = "FOR"
	TokenFun    TokenKind = "FUN"
	TokenIf     TokenKind = "IF"
	TokenNil    TokenKind = "NIL"
	TokenOr     TokenKind = "OR"
	TokenPrint  TokenKind = "PRINT"
	TokenReturn TokenKind = "RETURN"
	TokenSuper  TokenKind = "SUPER"
	TokenThis   TokenKind = "THIS"
	TokenTrue   TokenKind = "TRUE"
	TokenVar    TokenKind = "VAR"
	TokenWhile  TokenKind = "WHILE"

	TokenEOF TokenKind = "EOF"
)

var keywords = map[string]TokenKind{
	"and":    TokenAnd,
	"class":  TokenClass,
	"else":   TokenElse,
	"false":  TokenFalse,
	"for":    TokenFor,
	"fun":    TokenFun,
	"if":     TokenIf,
	"nil":    TokenNil,
	"or":     TokenOr,
	"print":  TokenPrint,
	"return": TokenReturn,
	"super":  TokenSuper,
	"this":   TokenThis,
	"true":   TokenTrue,
	"var":    TokenVar,
	"while":  TokenWhile,
}

// Keywords returns the reserved words in lexical order.
func Keywords() []string {
	return []string{
		"and", "class", "else", "false", "for", "fun", "if", "nil",
		"or", "print", "return", "super", "this", "true", "var", "while",
	}
}

// IsKeyword reports whether word is a reserved word.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Token captures lexical information for the parser. Literal holds the
// value of NUMBER and STRING tokens and is nil for every other kind.
type Token struct {
	Kind    TokenKind
	Lexeme  string
	Literal Value
	Line    int
	Column  int
}

// Position identifies a line and column in the source text.
type Position struct {
	Line   int
	Column int
}

func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, t.Literal.String())
}
