/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(false))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy(0.0))
	assert.True(t, IsTruthy(""))
	assert.True(t, IsTruthy("x"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, false))
	assert.True(t, Equal(1.0, 1.0))
	assert.False(t, Equal(1.0, 2.0))
	assert.False(t, Equal(1.0, "1"))
	assert.True(t, Equal("a", "a"))
	assert.True(t, Equal(true, true))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "nil", Stringify(nil))
	assert.Equal(t, "3", Stringify(3.0))
	assert.Equal(t, "3.5", Stringify(3.5))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "hello", Stringify("hello"))
}

func TestClassFindMethodWalksSuperclass(t *testing.T) {
	base := &Class{ClassName: "Base", Methods: map[string]*Function{
		"greet": {},
	}}
	derived := &Class{ClassName: "Derived", Superclass: base, Methods: map[string]*Function{}}

	_, ok := derived.FindMethod("greet")
	assert.True(t, ok)

	_, ok = derived.FindMethod("missing")
	assert.False(t, ok)
}

func TestInstanceGetPrefersFieldOverMethod(t *testing.T) {
	class := &Class{ClassName: "Box", Methods: map[string]*Function{
		"v": {},
	}}
	inst := NewInstance(class)
	inst.Set("v", "field value")

	v, ok := inst.Get("v")
	assert.True(t, ok)
	assert.Equal(t, "field value", v)
}

func TestInstanceGetUnknownProperty(t *testing.T) {
	class := &Class{ClassName: "Box", Methods: map[string]*Function{}}
	inst := NewInstance(class)

	_, ok := inst.Get("nope")
	assert.False(t, ok)
}
