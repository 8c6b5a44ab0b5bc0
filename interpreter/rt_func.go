/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package interpreter

import (
	"fmt"

	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/util"
	"github.com/malis-lang/malis/values"
)

/*
evalCall evaluates a call expression: the callee must be something
Callable (a user function, native function, or class acting as its own
constructor), and the argument count must match its arity exactly - no
varargs, per spec.md 4.4.
*/
func (i *Interpreter) evalCall(e *ast.Call) (interface{}, error) {
	callee, err := i.evalExpr(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]interface{}, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, err := i.evalExpr(a)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	switch callee := callee.(type) {

	case *values.Function:
		if len(args) != callee.Arity() {
			return nil, util.NewRuntimeError(e.Paren.Pos,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
		}
		return callee.Call(i, args)

	case *values.NativeFn:
		if len(args) != callee.Arity() {
			return nil, util.NewRuntimeError(e.Paren.Pos,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
		}
		return callee.Fn(args)

	case *values.Class:
		if len(args) != callee.Arity() {
			return nil, util.NewRuntimeError(e.Paren.Pos,
				fmt.Sprintf("Expected %d arguments but got %d.", callee.Arity(), len(args)))
		}
		return i.instantiate(callee, args)

	default:
		return nil, util.NewRuntimeError(e.Paren.Pos, "Can only call functions and classes.")
	}
}

/*
instantiate creates a new instance of class, running its "init" method
(if any) bound to the fresh instance - matching spec.md 4.4's
initializer-always-returns-this rule, enforced independently by the
resolver rejecting a value-carrying return inside "init".
*/
func (i *Interpreter) instantiate(class *values.Class, args []interface{}) (interface{}, error) {
	instance := values.NewInstance(class)

	if init, ok := class.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(i, args); err != nil {
			return nil, err
		}
	}

	return instance, nil
}
