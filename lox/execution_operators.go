package lox

func (in *Interpreter) evalUnaryExpr(e *UnaryExpr) (Value, error) {
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return NewNil(), err
	}
	switch e.Operator.Kind {
	case TokenMinus:
		if !right.IsNumber() {
			return NewNil(), newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NewNumber(-right.Number()), nil
	case TokenBang:
		return NewBool(!right.Truthy()), nil
	default:
		return NewNil(), newRuntimeError(e.Operator, "Unsupported unary operator '%s'.", e.Operator.Lexeme)
	}
}

// evalBinaryExpr evaluates the left operand, then the right, then applies
// the operator.
func (in *Interpreter) evalBinaryExpr(e *BinaryExpr) (Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return NewNil(), err
	}
	right, err := in.evalExpr(e.Right)
	if err != nil {
		return NewNil(), err
	}

	op := e.Operator
	switch op.Kind {
	case TokenEqualEqual:
		return NewBool(left.Equal(right)), nil
	case TokenBangEqual:
		return NewBool(!left.Equal(right)), nil
	case TokenPlus:
		switch {
		case left.IsNumber() && right.IsNumber():
			return NewNumber(left.Number() + right.Number()), nil
		case left.IsString() && right.IsString():
			return NewString(left.Text() + right.Text()), nil
		default:
			return NewNil(), newRuntimeError(op, "Operands must be two numbers or two strings.")
		}
	}

	if !left.IsNumber() || !right.IsNumber() {
		return NewNil(), newRuntimeError(op, "Operands must be numbers.")
	}
	l, r := left.Number(), right.Number()
	switch op.Kind {
	case TokenMinus:
		return NewNumber(l - r), nil
	case TokenStar:
		return NewNumber(l * r), nil
	case TokenSlash:
		return NewNumber(l / r), nil
	case TokenGreater:
		return NewBool(l > r), nil
	case TokenGreaterEqual:
		return NewBool(l >= r), nil
	case TokenLess:
		return NewBool(l < r), nil
	case TokenLessEqual:
		return NewBool(l <= r), nil
	default:
		return NewNil(), newRuntimeError(op, "Unsupported binary operator '%s'.", op.Lexeme)
	}
}
