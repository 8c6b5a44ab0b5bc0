/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package interpreter

import (
	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/util"
	"github.com/malis-lang/malis/values"
)

/*
evalUnary evaluates a prefix "-" or "!", per spec.md 4.4.
*/
func (i *Interpreter) evalUnary(e *ast.Unary) (interface{}, error) {
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case lexer.TokenMinus:
		n, ok := right.(float64)
		if !ok {
			return nil, operandError(e.Operator.Pos, "Operand must be a number.")
		}
		return -n, nil
	case lexer.TokenBang:
		return !values.IsTruthy(right), nil
	}

	panic("interpreter: unhandled unary operator")
}

/*
evalBinary evaluates arithmetic, comparison and equality operators. "+"
is overloaded for numbers and strings, matching spec.md 4.4's "+ also
concatenates strings" rule; division follows plain IEEE-754 float64
semantics the way the host language does, not a runtime error, resolving
spec.md 9's division-by-zero Open Question.
*/
func (i *Interpreter) evalBinary(e *ast.Binary) (interface{}, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {

	case lexer.TokenPlus:
		return evalPlus(e.Operator.Pos, left, right)

	case lexer.TokenMinus:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a - b })

	case lexer.TokenStar:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a * b })

	case lexer.TokenSlash:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a / b })

	case lexer.TokenGreater:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a > b })

	case lexer.TokenGreaterEqual:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a >= b })

	case lexer.TokenLess:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a < b })

	case lexer.TokenLessEqual:
		return numOp(e.Operator.Pos, left, right, func(a, b float64) interface{} { return a <= b })

	case lexer.TokenEqualEqual:
		return values.Equal(left, right), nil

	case lexer.TokenBangEqual:
		return !values.Equal(left, right), nil
	}

	panic("interpreter: unhandled binary operator")
}

func evalPlus(pos lexer.Position, left, right interface{}) (interface{}, error) {
	if ln, ok := left.(float64); ok {
		if rn, ok := right.(float64); ok {
			return ln + rn, nil
		}
	}
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			return ls + rs, nil
		}
	}
	return nil, operandError(pos, "Operands must be two numbers or two strings.")
}

/*
numOp applies a binary float64 operator after checking both operands are
numbers, matching the teacher's operatorRuntime.numOp shape.
*/
func numOp(pos lexer.Position, left, right interface{}, op func(a, b float64) interface{}) (interface{}, error) {
	ln, ok := left.(float64)
	if !ok {
		return nil, operandError(pos, "Operands must be numbers.")
	}
	rn, ok := right.(float64)
	if !ok {
		return nil, operandError(pos, "Operands must be numbers.")
	}
	return op(ln, rn), nil
}

func operandError(pos lexer.Position, message string) error {
	return util.NewRuntimeError(pos, message)
}
