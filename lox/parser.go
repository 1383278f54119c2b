package lox

type (
	prefixParseFn func() (Expr, error)
	infixParseFn  func(Expr) (Expr, error)
)

type parser struct {
	tokens  []Token
	current int

	errors []error

	prefixFns map[TokenKind]prefixParseFn
	infixFns  map[TokenKind]infixParseFn
}

// Parse builds statements from tokens. A statement that fails to parse is
// dropped and its error recorded; parsing resumes at the next statement
// boundary, so one call reports every syntax error it can find.
func Parse(tokens []Token) ([]Stmt, []error) {
	return newParser(tokens).parseProgram()
}

func newParser(tokens []Token) *parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TokenEOF, Line: line})
	}
	p := &parser{tokens: tokens}

	p.prefixFns = make(map[TokenKind]prefixParseFn)
	p.infixFns = make(map[TokenKind]infixParseFn)

	p.registerPrefix(TokenIdentifier, p.parseVariable)
	p.registerPrefix(TokenNumber, p.parseLiteral)
	p.registerPrefix(TokenString, p.parseLiteral)
	p.registerPrefix(TokenTrue, p.parseLiteral)
	p.registerPrefix(TokenFalse, p.parseLiteral)
	p.registerPrefix(TokenNil, p.parseLiteral)
	p.registerPrefix(TokenLeftParen, p.parseGroupedExpression)
	p.registerPrefix(TokenBang, p.parsePrefixExpression)
	p.registerPrefix(TokenMinus, p.parsePrefixExpression)

	p.infixFns[TokenPlus] = p.parseInfixExpression
	p.infixFns[TokenMinus] = p.parseInfixExpression
	p.infixFns[TokenSlash] = p.parseInfixExpression
	p.infixFns[TokenStar] = p.parseInfixExpression
	p.infixFns[TokenEqualEqual] = p.parseInfixExpression
	p.infixFns[TokenBangEqual] = p.parseInfixExpression
	p.infixFns[TokenLess] = p.parseInfixExpression
	p.infixFns[TokenLessEqual] = p.parseInfixExpression
	p.infixFns[TokenGreater] = p.parseInfixExpression
	p.infixFns[TokenGreaterEqual] = p.parseInfixExpression
	p.infixFns[TokenEqual] = p.parseAssignment

	return p
}

func (p *parser) registerPrefix(kind TokenKind, fn prefixParseFn) {
	p.prefixFns[kind] = fn
}

func (p *parser) parseProgram() ([]Stmt, []error) {
	statements := []Stmt{}
	for !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errors
}

// parseDeclaration returns nil after recording an error and synchronizing.
func (p *parser) parseDeclaration() Stmt {
	var (
		stmt Stmt
		err  error
	)
	if p.match(TokenVar) {
		stmt, err = p.parseVarDeclaration()
	} else {
		stmt, err = p.parseStatement()
	}
	if err != nil {
		p.report(err)
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) parseVarDeclaration() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var initializer Expr
	if p.match(TokenEqual) {
		initializer, err = p.parseExpression(lowestPrec)
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.consume(TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Initializer: initializer}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	switch p.peek().Kind {
	case TokenPrint:
		return p.parsePrintStatement()
	case TokenLeftBrace:
		return p.parseBlockStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *parser) parsePrintStatement() (Stmt, error) {
	keyword := p.advance()
	value, err := p.parseExpression(lowestPrec)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Keyword: keyword, Expr: value}, nil
}

func (p *parser) parseBlockStatement() (Stmt, error) {
	brace := p.advance()
	statements := []Stmt{}
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		if stmt := p.parseDeclaration(); stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, err := p.consume(TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return &BlockStmt{Brace: brace, Statements: statements}, nil
}

func (p *parser) parseExpressionStatement() (Stmt, error) {
	expr, err := p.parseExpression(lowestPrec)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr}, nil
}

func (p *parser) parseExpression(precedence int) (Expr, error) {
	// the offending token stays unconsumed so synchronize starts from it
	prefix := p.prefixFns[p.peek().Kind]
	if prefix == nil {
		return nil, p.errorAt(p.peek(), "Expect expression.")
	}
	p.advance()

	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peek().Kind]
		p.advance()
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}

	return left, nil
}

func (p *parser) parseVariable() (Expr, error) {
	return &VariableExpr{Name: p.previous()}, nil
}

func (p *parser) parseLiteral() (Expr, error) {
	tok := p.previous()
	var value Value
	switch tok.Kind {
	case TokenTrue:
		value = NewBool(true)
	case TokenFalse:
		value = NewBool(false)
	case TokenNil:
		value = NewNil()
	default:
		value = tok.Literal
	}
	return &LiteralExpr{Value: value, Token: tok}, nil
}

func (p *parser) parseGroupedExpression() (Expr, error) {
	paren := p.previous()
	inner, err := p.parseExpression(lowestPrec)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRightParen, "Expect ')' after expression."); err != nil {
		return nil, err
	}
	return &GroupingExpr{Paren: paren, Inner: inner}, nil
}

func (p *parser) parsePrefixExpression() (Expr, error) {
	operator := p.previous()
	right, err := p.parseExpression(precUnary)
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Operator: operator, Right: right}, nil
}

func (p *parser) parseInfixExpression(left Expr) (Expr, error) {
	operator := p.previous()
	right, err := p.parseExpression(precedences[operator.Kind])
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Left: left, Operator: operator, Right: right}, nil
}

// parseAssignment is right-associative. A bad target is reported without
// abandoning the statement; the left-hand side is returned in its place.
func (p *parser) parseAssignment(target Expr) (Expr, error) {
	equals := p.previous()
	value, err := p.parseExpression(lowestPrec)
	if err != nil {
		return nil, err
	}
	if variable, ok := isAssignable(target); ok {
		return &AssignExpr{Name: variable.Name, Value: value}, nil
	}
	p.report(p.errorAt(equals, "Invalid assignment target."))
	return target, nil
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek().Kind]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) consume(kind TokenKind, msg string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), msg)
}

func (p *parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *parser) peek() Token {
	return p.tokens[p.current]
}

func (p *parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}
