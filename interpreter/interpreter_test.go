/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malis-lang/malis/parser"
	"github.com/malis-lang/malis/resolver"
	"github.com/malis-lang/malis/util"
)

/*
run lexes, parses, resolves and interprets src, returning everything
printed to stdout plus any runtime error.
*/
func run(t *testing.T, src string) (string, error) {
	var reporter util.Reporter
	p := parser.NewFromSource("test.malis", src, &reporter)
	program := p.Parse()
	require.False(t, reporter.HadError(), "parse errors: %v", reporter.Diagnostics())

	r := resolver.New(&reporter)
	r.Resolve(program)
	require.False(t, reporter.HadError(), "resolve errors: %v", reporter.Diagnostics())

	var out bytes.Buffer
	interp := New(r.Locals(), &out, util.NewNullLogger())
	err := interp.Run(program)

	return out.String(), err
}

func TestArithmeticPrecedence(t *testing.T) {
	out, err := run(t, `print 1 + 2 * 3;`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, err := run(t, `print "foo" + "bar";`)
	require.NoError(t, err)
	assert.Equal(t, "foobar\n", out)
}

func TestDivisionByZeroIsInfinity(t *testing.T) {
	out, err := run(t, `print 1 / 0;`)
	require.NoError(t, err)
	assert.Equal(t, "+Inf\n", out)
}

func TestTruthiness(t *testing.T) {
	out, err := run(t, `
	if (0) print "zero is truthy"; else print "zero is falsy";
	if ("") print "empty string is truthy"; else print "empty string is falsy";
	if (nil) print "nil is truthy"; else print "nil is falsy";
	if (false) print "false is truthy"; else print "false is falsy";
	`)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{
		"zero is truthy",
		"empty string is truthy",
		"nil is falsy",
		"false is falsy",
	}, lines)
}

func TestShortCircuitAndOr(t *testing.T) {
	out, err := run(t, `
	fun bomb() { print "should not run"; return true; }
	print false and bomb();
	print true or bomb();
	`)
	require.NoError(t, err)
	assert.Equal(t, "false\ntrue\n", out)
}

func TestClosures(t *testing.T) {
	out, err := run(t, `
	fun makeCounter() {
		var count = 0;
		fun inc() {
			count = count + 1;
			return count;
		}
		return inc;
	}
	var counter = makeCounter();
	print counter();
	print counter();
	print counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n3\n", out)
}

func TestClassesFieldsAndMethods(t *testing.T) {
	out, err := run(t, `
	class Cake {
		init(flavor) {
			this.flavor = flavor;
		}
		describe() {
			print this.flavor + " cake";
		}
	}
	var c = Cake("chocolate");
	c.describe();
	`)
	require.NoError(t, err)
	assert.Equal(t, "chocolate cake\n", out)
}

func TestInheritanceAndSuper(t *testing.T) {
	out, err := run(t, `
	class Animal {
		speak() {
			print "...";
		}
	}
	class Dog < Animal {
		speak() {
			super.speak();
			print "Woof!";
		}
	}
	Dog().speak();
	`)
	require.NoError(t, err)
	assert.Equal(t, "...\nWoof!\n", out)
}

func TestThisBoundPerInstance(t *testing.T) {
	out, err := run(t, `
	class Box {
		init(v) { this.v = v; }
		get() { return this.v; }
	}
	var a = Box(1);
	var b = Box(2);
	print a.get();
	print b.get();
	`)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestInitializerAlwaysReturnsInstance(t *testing.T) {
	out, err := run(t, `
	class Thing {
		init() {
			this.ready = true;
		}
	}
	var t = Thing();
	print t.ready;
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestInitializerPropagatesRuntimeError(t *testing.T) {
	_, err := run(t, `
	class A {
		init() {
			print 1 + nil;
		}
	}
	A();
	`)
	require.Error(t, err)
}

func TestRuntimeErrorOnUndefinedVariable(t *testing.T) {
	_, err := run(t, `print nope;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable")
}

func TestRuntimeErrorOnBadOperand(t *testing.T) {
	_, err := run(t, `print "a" - 1;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Operands must be numbers")
}

func TestForLoop(t *testing.T) {
	out, err := run(t, `
	for (var i = 0; i < 3; i = i + 1) {
		print i;
	}
	`)
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
}
