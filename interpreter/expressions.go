/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package interpreter

import (
	"fmt"

	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/util"
	"github.com/malis-lang/malis/values"
)

/*
evalExpr is the main expression dispatch, one case per ast.Expr variant.
*/
func (i *Interpreter) evalExpr(expr ast.Expr) (interface{}, error) {
	switch e := expr.(type) {

	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return i.evalExpr(e.Expression)

	case *ast.Unary:
		return i.evalUnary(e)

	case *ast.Binary:
		return i.evalBinary(e)

	case *ast.Logical:
		return i.evalLogical(e)

	case *ast.Ternary:
		cond, err := i.evalExpr(e.Condition)
		if err != nil {
			return nil, err
		}
		if values.IsTruthy(cond) {
			return i.evalExpr(e.Then)
		}
		return i.evalExpr(e.Else)

	case *ast.Comma:
		var last interface{}
		for _, sub := range e.Expressions {
			v, err := i.evalExpr(sub)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *ast.Variable:
		return i.lookupVariable(e.Name, e)

	case *ast.Assign:
		v, err := i.evalExpr(e.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := i.locals[e]; ok {
			i.env.AssignAt(dist, e.Name.Lexeme, v)
		} else if err := i.globals.Assign(e.Name.Pos, e.Name.Lexeme, v); err != nil {
			return nil, err
		}
		return v, nil

	case *ast.Call:
		return i.evalCall(e)

	case *ast.Get:
		return i.evalGet(e)

	case *ast.Set:
		return i.evalSet(e)

	case *ast.This:
		return i.lookupVariable(e.Keyword, e)

	case *ast.Super:
		return i.evalSuper(e)

	default:
		panic("interpreter: unhandled expression type")
	}
}

func (i *Interpreter) evalGet(e *ast.Get) (interface{}, error) {
	obj, err := i.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*values.Instance)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Pos, "Only instances have properties.")
	}

	v, ok := inst.Get(e.Name.Lexeme)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Pos, fmt.Sprintf("Undefined property '%s'.", e.Name.Lexeme))
	}
	return v, nil
}

func (i *Interpreter) evalSet(e *ast.Set) (interface{}, error) {
	obj, err := i.evalExpr(e.Object)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*values.Instance)
	if !ok {
		return nil, util.NewRuntimeError(e.Name.Pos, "Only instances have fields.")
	}

	v, err := i.evalExpr(e.Value)
	if err != nil {
		return nil, err
	}

	inst.Set(e.Name.Lexeme, v)
	return v, nil
}

func (i *Interpreter) evalSuper(e *ast.Super) (interface{}, error) {
	dist, ok := i.locals[e]
	if !ok {
		return nil, util.NewRuntimeError(e.Keyword.Pos, "Unresolved 'super'.")
	}

	superVal := i.env.GetAt(dist, "super")
	superclass, ok := superVal.(*values.Class)
	if !ok {
		return nil, util.NewRuntimeError(e.Keyword.Pos, "'super' is not a class.")
	}

	// "this" always lives one environment closer than "super".
	thisVal := i.env.GetAt(dist-1, "this")
	instance, ok := thisVal.(*values.Instance)
	if !ok {
		return nil, util.NewRuntimeError(e.Keyword.Pos, "'this' is not an instance.")
	}

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, util.NewRuntimeError(e.Method.Pos, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}

	return method.Bind(instance), nil
}

/*
evalLogical short-circuits "and"/"or" (and their "&&"/"||" synonyms): the
right operand is only evaluated when the left doesn't already decide the
result, per spec.md 4.4.
*/
func (i *Interpreter) evalLogical(e *ast.Logical) (interface{}, error) {
	left, err := i.evalExpr(e.Left)
	if err != nil {
		return nil, err
	}

	isOr := e.Operator.Type == lexer.TokenOr || e.Operator.Type == lexer.TokenOrOr

	if isOr {
		if values.IsTruthy(left) {
			return left, nil
		}
	} else if !values.IsTruthy(left) {
		return left, nil
	}

	return i.evalExpr(e.Right)
}
