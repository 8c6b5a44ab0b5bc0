/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package interpreter evaluates a resolved malis program against a tree
// of nested environments. It replaces the teacher's per-node Runtime
// dispatch (one small struct and constructor per ASTNode kind, wired up
// in interpreter/provider.go's node-name switch) with a single
// Interpreter walking the typed ast package directly: a closed struct
// family is exactly what a Go type switch is for, so the extra
// indirection of a Runtime interface per node buys nothing here. The
// numeric/boolean semantics (rt_arithmetic.go, rt_boolean.go), the
// statement execution shape (rt_statements.go), and the function/return
// handling (rt_func.go) are all carried over in spirit - same
// operations, same "return is a non-error control signal" trick - just
// dispatched from one evalExpr/execStmt pair instead of N Eval methods.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/environment"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/util"
	"github.com/malis-lang/malis/values"
)

/*
returnSignal carries a function's return value up through the (result,
error) chain of execStmt calls. It wraps util.ErrReturn so
errors.Is(err, util.ErrReturn) still identifies it as the non-error
control signal it is, matching the teacher's returnValue/returnRuntime
split in interpreter/rt_func.go.
*/
type returnSignal struct {
	value interface{}
}

func (r *returnSignal) Error() string { return util.ErrReturn.Error() }
func (r *returnSignal) Unwrap() error { return util.ErrReturn }

/*
Interpreter walks a resolved program, executing statements against a
chain of environments rooted at globals.
*/
type Interpreter struct {
	globals *environment.Environment
	env     *environment.Environment
	locals  map[ast.Expr]int

	stdout io.Writer
	logger util.Logger
}

/*
New creates an interpreter. locals is the resolver's depth side table;
stdout receives "print" output (os.Stdout outside of tests).
*/
func New(locals map[ast.Expr]int, stdout io.Writer, logger util.Logger) *Interpreter {
	globals := environment.New("global")

	if locals == nil {
		locals = make(map[ast.Expr]int)
	}

	i := &Interpreter{
		globals: globals,
		env:     globals,
		locals:  locals,
		stdout:  stdout,
		logger:  logger,
	}

	registerNatives(globals)

	return i
}

/*
MergeLocals adds entries from a resolver pass into this interpreter's
depth side table. The REPL calls this once per line, since each line is
resolved independently but they all run against the same long-lived
global environment.
*/
func (i *Interpreter) MergeLocals(locals map[ast.Expr]int) {
	for k, v := range locals {
		i.locals[k] = v
	}
}

/*
NewStdout is a convenience constructor writing "print" output straight
to os.Stdout with a null logger, used by the cli/tool tests (the CLI
driver itself calls New with its configured logger).
*/
func NewStdout(locals map[ast.Expr]int) *Interpreter {
	return New(locals, os.Stdout, util.NewNullLogger())
}

/*
Globals returns the top-level environment, exposed for the REPL's "@env"
command.
*/
func (i *Interpreter) Globals() *environment.Environment {
	return i.globals
}

/*
Run executes a whole program, returning the first runtime error
encountered (if any). Statements after a failing one are not run -
spec.md 5 treats a runtime error as fatal to the run, unlike parse/lex
errors which keep accumulating.
*/
func (i *Interpreter) Run(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if _, err := i.execStmt(s); err != nil {
			return err
		}
	}
	return nil
}

// Statement execution
// =====================

func (i *Interpreter) execStmt(stmt ast.Stmt) (interface{}, error) {
	switch s := stmt.(type) {

	case *ast.ExpressionStmt:
		_, err := i.evalExpr(s.Expression)
		return nil, err

	case *ast.PrintStmt:
		v, err := i.evalExpr(s.Expression)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.stdout, values.Stringify(v))
		return nil, nil

	case *ast.VarStmt:
		var v interface{}
		if s.Initializer != nil {
			var err error
			v, err = i.evalExpr(s.Initializer)
			if err != nil {
				return nil, err
			}
		}
		i.env.Define(s.Name.Lexeme, v)
		return nil, nil

	case *ast.BlockStmt:
		return i.execBlock(s.Statements, environment.NewChild(i.env))

	case *ast.IfStmt:
		cond, err := i.evalExpr(s.Condition)
		if err != nil {
			return nil, err
		}
		if values.IsTruthy(cond) {
			return i.execStmt(s.Then)
		} else if s.Else != nil {
			return i.execStmt(s.Else)
		}
		return nil, nil

	case *ast.WhileStmt:
		for {
			cond, err := i.evalExpr(s.Condition)
			if err != nil {
				return nil, err
			}
			if !values.IsTruthy(cond) {
				return nil, nil
			}
			if res, err := i.execStmt(s.Body); err != nil {
				return res, err
			}
		}

	case *ast.FunctionStmt:
		fn := values.NewFunction(s, i.env, false)
		i.env.Define(s.Name.Lexeme, fn)
		return nil, nil

	case *ast.ReturnStmt:
		var v interface{}
		if s.Value != nil {
			var err error
			v, err = i.evalExpr(s.Value)
			if err != nil {
				return nil, err
			}
		}
		return nil, &returnSignal{value: v}

	case *ast.ClassStmt:
		return nil, i.execClassStmt(s)

	default:
		panic("interpreter: unhandled statement type")
	}
}

/*
execBlock runs a sequence of statements against env, restoring the
interpreter's previous environment before returning - including when a
return signal or runtime error unwinds through it.
*/
func (i *Interpreter) execBlock(stmts []ast.Stmt, env *environment.Environment) (interface{}, error) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, s := range stmts {
		if res, err := i.execStmt(s); err != nil {
			return res, err
		}
	}
	return nil, nil
}

/*
ExecuteFunctionBody implements values.Executor: it runs a function body
in env and converts a propagated returnSignal into its plain return
value, the same translation the teacher's function.Run does with
returnValue.
*/
func (i *Interpreter) ExecuteFunctionBody(body []ast.Stmt, env *environment.Environment) (interface{}, error) {
	res, err := i.execBlock(body, env)

	if rs, ok := err.(*returnSignal); ok {
		return rs.value, nil
	}

	return res, err
}

func (i *Interpreter) execClassStmt(s *ast.ClassStmt) error {
	var superclass *values.Class

	if s.Superclass != nil {
		sup, err := i.evalExpr(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := sup.(*values.Class)
		if !ok {
			return util.NewRuntimeError(s.Superclass.Name.Pos, "Superclass must be a class.")
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, nil)

	classEnv := i.env
	if superclass != nil {
		classEnv = environment.NewChild(i.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*values.Function)
	for _, m := range s.Methods {
		isInit := m.Kind == ast.KindInitializer
		methods[m.Name.Lexeme] = values.NewFunction(m, classEnv, isInit)
	}

	class := &values.Class{ClassName: s.Name.Lexeme, Superclass: superclass, Methods: methods}

	return i.env.Assign(s.Name.Pos, s.Name.Lexeme, class)
}

// Variable resolution helpers
// =============================

func (i *Interpreter) lookupVariable(name lexer.Token, expr ast.Expr) (interface{}, error) {
	if dist, ok := i.locals[expr]; ok {
		return i.env.GetAt(dist, name.Lexeme), nil
	}
	return i.globals.Get(name.Pos, name.Lexeme)
}
