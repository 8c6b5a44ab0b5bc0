/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package environment implements the parent-linked variable bindings
// malis programs run against: the global scope and one nested scope per
// block, function call, and "for"/"while" body. Grounded on the
// teacher's scope/varsscope.go and the Scope interface declared in
// parser/runtime.go, simplified from ECAL's rule-engine scope (no
// "parent of same rule" tracking, no JSON export) down to the
// depth-indexed lexical lookup a resolved AST needs.
package environment

import (
	"fmt"
	"sort"

	"github.com/malis-lang/malis/util"

	"github.com/malis-lang/malis/lexer"
)

/*
Environment holds the variable bindings visible in one lexical scope and
a link to the enclosing scope.
*/
type Environment struct {
	name   string
	parent *Environment
	values map[string]interface{}
}

/*
New creates a new, unparented (global) environment.
*/
func New(name string) *Environment {
	return &Environment{name: name, values: make(map[string]interface{})}
}

/*
NewChild creates a new environment nested inside the given parent.
*/
func NewChild(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]interface{})}
}

/*
Parent returns the enclosing environment, or nil at the global scope.
*/
func (e *Environment) Parent() *Environment {
	return e.parent
}

/*
Define binds name to value in this environment. Re-declaring an existing
name in the same scope silently overwrites it - the resolver is the one
that rejects double declarations inside a single block (spec.md 4.3).
*/
func (e *Environment) Define(name string, value interface{}) {
	e.values[name] = value
}

/*
Get looks a name up starting at this environment and walking outward.
Used only for globals and other unresolved lookups; resolved variable
reads go through GetAt.
*/
func (e *Environment) Get(pos lexer.Position, name string) (interface{}, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, util.NewRuntimeError(pos, fmt.Sprintf("Undefined variable '%s'.", name))
}

/*
Assign rebinds an existing name starting at this environment and walking
outward. Assigning to a name that was never defined is a runtime error,
per spec.md 4.3's "assignment to an undeclared variable" edge case.
*/
func (e *Environment) Assign(pos lexer.Position, name string, value interface{}) error {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.values[name]; ok {
			env.values[name] = value
			return nil
		}
	}
	return util.NewRuntimeError(pos, fmt.Sprintf("Undefined variable '%s'.", name))
}

/*
Ancestor walks distance scopes outward from this environment. distance
comes from the resolver's side table and is always a scope this
environment actually has - an out-of-range distance is an interpreter
bug, not a user error, so this panics like the teacher's scope package
does on a malformed scope chain.
*/
func (e *Environment) Ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.parent == nil {
			panic(fmt.Sprintf("malis: environment has no ancestor at distance %d", distance))
		}
		env = env.parent
	}
	return env
}

/*
GetAt reads a name known (via resolution) to live exactly distance
scopes outward.
*/
func (e *Environment) GetAt(distance int, name string) interface{} {
	return e.Ancestor(distance).values[name]
}

/*
AssignAt assigns a name known (via resolution) to live exactly distance
scopes outward.
*/
func (e *Environment) AssignAt(distance int, name string, value interface{}) {
	e.Ancestor(distance).values[name] = value
}

/*
Entries returns a snapshot of the bindings defined directly in this
environment (not walking outward to parents), sorted by name. Used by
the REPL's "@env" command to render a table of the current scope.
*/
func (e *Environment) Entries() []string {
	names := make([]string, 0, len(e.values))
	for k := range e.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

/*
Value returns the raw binding for a name defined directly in this
environment, for display purposes only (no outward lookup, unlike Get).
*/
func (e *Environment) Value(name string) interface{} {
	return e.values[name]
}

