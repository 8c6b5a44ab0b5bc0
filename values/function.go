/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package values

import (
	"fmt"

	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/environment"
)

/*
Executor is the narrow slice of the interpreter a Function needs to run
its body: execute a list of statements against a given environment and
report a return value if a ReturnStmt fired. Keeping this as an
interface (rather than importing the interpreter package directly) is
what lets values and interpreter depend on each other without a cycle -
the interpreter implements Executor and passes itself into Call.
*/
type Executor interface {
	ExecuteFunctionBody(body []ast.Stmt, env *environment.Environment) (interface{}, error)
}

/*
Function is a user-declared function or method, closing over the
environment active at its declaration - this is what gives malis
closures their lexical scoping (spec.md 4.5). Grounded on the shape of
the teacher's interpreter/rt_func.go "function" type, generalized from
ECAL's dynamic this/super fields to Lox's resolved-at-call-time Bind.
*/
type Function struct {
	Declaration   *ast.FunctionStmt
	Closure       *environment.Environment
	IsInitializer bool
}

/*
NewFunction wraps a declaration with the environment it closes over.
*/
func NewFunction(decl *ast.FunctionStmt, closure *environment.Environment, isInitializer bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) Name() string {
	if f.Declaration.Name.Lexeme == "" {
		return "anonymous"
	}
	return f.Declaration.Name.Lexeme
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Name())
}

/*
Bind returns a copy of this function whose closure has "this" bound to
the given instance - called once per method lookup (ast.Get on an
instance), per spec.md 4.4's "this refers to the instance the method was
looked up on" rule.
*/
func (f *Function) Bind(instance *Instance) *Function {
	env := environment.NewChild(f.Closure)
	env.Define("this", instance)
	return NewFunction(f.Declaration, env, f.IsInitializer)
}

/*
Call runs the function body in a fresh environment parented on its
closure, with parameters bound to args. exec is the interpreter,
satisfying Executor so the body can be run without values importing
interpreter.
*/
func (f *Function) Call(exec Executor, args []interface{}) (interface{}, error) {
	env := environment.NewChild(f.Closure)

	for i, p := range f.Declaration.Params {
		var v interface{}
		if i < len(args) {
			v = args[i]
		}
		env.Define(p.Lexeme, v)
	}

	result, err := exec.ExecuteFunctionBody(f.Declaration.Body, env)

	if f.IsInitializer {
		if err != nil {
			return nil, err
		}
		return f.Closure.GetAt(0, "this"), nil
	}

	return result, err
}
