/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package resolver runs a static pass between parsing and interpretation
// that resolves every variable reference to the number of scopes between
// its use and its declaration, and validates that "this"/"super"/"return"
// only appear where they make sense. It has no direct analogue in the
// teacher repo - ECAL resolves names dynamically against its scope chain
// at eval time (scope/varsscope.go) - so this package is grounded
// directly in spec.md 4.3's resolution algorithm, with the scope-stack
// bookkeeping style (a slice of maps, innermost last) carried over from
// how the teacher's own parser tracks nested scopes during parsing.
package resolver

import (
	"github.com/malis-lang/malis/ast"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/util"
)

/*
functionKind tracks what kind of function body is currently being
resolved, so "return" inside an initializer and bare "return" elsewhere
can be told apart.
*/
type functionKind int

const (
	fkNone functionKind = iota
	fkFunction
	fkMethod
	fkInitializer
)

/*
classKind tracks whether a class is currently being resolved, and
whether it has a superclass, so "this"/"super" can be validated.
*/
type classKind int

const (
	ckNone classKind = iota
	ckClass
	ckSubclass
)

/*
Resolver walks a parsed program once, producing a side table from every
Variable/Assign/This/Super node to the number of scopes out its binding
lives, keyed on the node's own pointer identity per spec.md 3. Each
scope maps a name to whether its declaration has been fully defined yet
(false between "var x = x;"'s declare and define steps).
*/
type Resolver struct {
	reporter *util.Reporter

	scopes []map[string]bool

	locals map[ast.Expr]int

	currentFunction functionKind
	currentClass    classKind
}

/*
New creates a resolver reporting into the given Reporter.
*/
func New(reporter *util.Reporter) *Resolver {
	return &Resolver{
		reporter: reporter,
		locals:   make(map[ast.Expr]int),
	}
}

/*
Locals returns the resolved depth side table: for each Variable, Assign,
This, or Super node that resolved to a local (not global), how many
environments out its binding lives.
*/
func (r *Resolver) Locals() map[ast.Expr]int {
	return r.locals
}

/*
Resolve walks a whole program (a list of top level statements).
*/
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

// Scope stack
// ============

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, name.Pos,
			"already a variable named %q in this scope", name.Lexeme))
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// Not found in any local scope: treated as global, left unresolved.
}

// Statements
// ===========

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fkFunction)

	case *ast.ReturnStmt:
		if r.currentFunction == fkNone {
			r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, s.Keyword.Pos,
				"can't return from top-level code"))
		}
		if s.Value != nil {
			if r.currentFunction == fkInitializer {
				r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, s.Keyword.Pos,
					"can't return a value from an initializer"))
			}
			r.resolveExpr(s.Value)
		}

	case *ast.ClassStmt:
		r.resolveClass(s)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveClass(c *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ckClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name.Lexeme == c.Name.Lexeme {
			r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, c.Superclass.Name.Pos,
				"a class can't inherit from itself"))
		} else {
			r.currentClass = ckSubclass
			r.resolveExpr(c.Superclass)
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, m := range c.Methods {
		kind := fkMethod
		if m.Name.Lexeme == "init" {
			kind = fkInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.endScope()

	if c.Superclass != nil {
		r.endScope()
	}
}

// Expressions
// ============

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {

	case *ast.Literal:
		// no names to resolve

	case *ast.Grouping:
		r.resolveExpr(e.Expression)

	case *ast.Unary:
		r.resolveExpr(e.Right)

	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.Ternary:
		r.resolveExpr(e.Condition)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)

	case *ast.Comma:
		for _, sub := range e.Expressions {
			r.resolveExpr(sub)
		}

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, e.Name.Pos,
					"can't read local variable %q in its own initializer", e.Name.Lexeme))
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Arguments {
			r.resolveExpr(a)
		}

	case *ast.Get:
		r.resolveExpr(e.Object)

	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.This:
		if r.currentClass == ckNone {
			r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, e.Keyword.Pos,
				"can't use 'this' outside of a class"))
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Super:
		if r.currentClass == ckNone {
			r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, e.Keyword.Pos,
				"can't use 'super' outside of a class"))
		} else if r.currentClass != ckSubclass {
			r.reporter.Report(util.NewDiagnostic(util.PhaseResolve, e.Keyword.Pos,
				"can't use 'super' in a class with no superclass"))
		}
		r.resolveLocal(e, e.Keyword)

	default:
		panic("resolver: unhandled expression type")
	}
}
