/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package values defines the runtime value variants of malis: numbers,
// strings, booleans, nil, and the three callable kinds (functions,
// native functions, and classes) plus instances. Grounded on the
// function/class/instance shapes in the teacher's interpreter/rt_func.go
// and interpreter/rt_general.go, translated from ECAL's dynamic
// attribute model into Lox's class/instance model.
package values

import (
	"fmt"
	"strconv"
	"strings"

	"devt.de/krotik/common/stringutil"
)

/*
Callable is implemented by every value that can appear as the callee of
a Call expression.
*/
type Callable interface {
	Arity() int
	Name() string
}

/*
Class is a runtime class value. Methods are looked up first on the class
itself, then by walking the Superclass chain - inheritance does not copy
methods, per spec.md 4.4.
*/
type Class struct {
	ClassName  string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

func (c *Class) Name() string { return c.ClassName }

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.ClassName) }

/*
FindMethod looks up a method by name on this class, then its superclass
chain.
*/
func (c *Class) FindMethod(name string) (*Function, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

/*
Instance is a runtime object produced by calling a Class value. Fields
are looked up before methods, per spec.md 4.4.
*/
type Instance struct {
	Class  *Class
	Fields map[string]interface{}
}

/*
NewInstance creates an instance with an empty field map.
*/
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]interface{})}
}

func (i *Instance) String() string { return fmt.Sprintf("<%s instance>", i.Class.ClassName) }

/*
Get resolves a property access on this instance: fields shadow methods,
and a matched method is bound to this instance before being returned, so
later calls see the right "this" (spec.md 4.4).
*/
func (i *Instance) Get(name string) (interface{}, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

/*
Set assigns a field on this instance, creating it if absent - malis
instances are open, unlike their declaring class (spec.md 4.4).
*/
func (i *Instance) Set(name string, value interface{}) {
	i.Fields[name] = value
}

/*
NativeFn is a host-provided function such as clock().
*/
type NativeFn struct {
	FnName string
	Arty   int
	Fn     func(args []interface{}) (interface{}, error)
}

func (n *NativeFn) Arity() int   { return n.Arty }
func (n *NativeFn) Name() string { return n.FnName }
func (n *NativeFn) String() string {
	return fmt.Sprintf("<native fn %s>", n.FnName)
}

// Truthiness, equality, and stringification
// ==========================================

/*
IsTruthy implements spec.md 4.4's truthiness rule: nil and boolean false
are false, everything else (including 0 and "") is true.
*/
func IsTruthy(v interface{}) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

/*
Equal implements spec.md 4.4's equality rule: nil equals only nil,
otherwise same-kind comparison with no implicit coercions, cross-kind is
always false.
*/
func Equal(a, b interface{}) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

/*
Stringify renders a runtime value the way "print" and the REPL do,
trimming the ".0" Go would otherwise print for whole-number floats
(matching the host's native float64 formatting the way spec.md 4.4
leaves division and arithmetic to IEEE semantics). Uses
devt.de/krotik/common/stringutil, the same helper the teacher's
scope printer (scope/varsscope.go) reaches for.
*/
func Stringify(v interface{}) string {
	if v == nil {
		return "nil"
	}

	switch val := v.(type) {
	case float64:
		s := strconv.FormatFloat(val, 'f', -1, 64)
		return s
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return stringutil.ConvertToString(val)
	}
}

/*
TypeName returns a short, human readable type name used in runtime error
messages.
*/
func TypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "nil"
	case float64:
		return "number"
	case string:
		return "string"
	case bool:
		return "boolean"
	case *Function:
		return "function"
	case *NativeFn:
		return "native function"
	case *Class:
		return "class"
	case *Instance:
		return "instance"
	default:
		return "value"
	}
}

/*
JoinArgs renders a list of values the way an argument error message does.
*/
func JoinArgs(args []interface{}) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Stringify(a)
	}
	return strings.Join(parts, ", ")
}
