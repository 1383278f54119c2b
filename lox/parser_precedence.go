package lox

const (
	lowestPrec = iota
	precAssign
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
)

var precedences = map[TokenKind]int{
	TokenEqual:        precAssign,
	TokenBangEqual:    precEquality,
	TokenEqualEqual:   precEquality,
	TokenGreater:      precComparison,
	TokenGreaterEqual: precComparison,
	TokenLess:         precComparison,
	TokenLessEqual:    precComparison,
	TokenMinus:        precTerm,
	TokenPlus:         precTerm,
	TokenSlash:        precFactor,
	TokenStar:         precFactor,
}

func isAssignable(expr Expr) (*VariableExpr, bool) {
	variable, ok := expr.(*VariableExpr)
	return variable, ok
}

// statementStarts are the keywords synchronize stops in front of.
var statementStarts = map[TokenKind]struct{}{
	TokenClass:  {},
	TokenFun:    {},
	TokenVar:    {},
	TokenFor:    {},
	TokenIf:     {},
	TokenWhile:  {},
	TokenPrint:  {},
	TokenReturn: {},
}
