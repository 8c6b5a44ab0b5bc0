/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package util

import (
	"testing"

	"github.com/malis-lang/malis/lexer"
	"github.com/stretchr/testify/assert"
)

func TestDiagnostic(t *testing.T) {
	pos := lexer.Position{Source: "test.malis", Line: 3, Column: 7}
	d := NewDiagnostic(PhaseParse, pos, "unexpected token %q", "}")

	assert.Equal(t, `parse error: unexpected token "}" (test.malis:3:7)`, d.Error())
}

func TestReporter(t *testing.T) {
	var r Reporter

	assert.False(t, r.HadError())

	r.Report(NewDiagnostic(PhaseLex, lexer.Position{}, "bad char"))
	r.Report(NewDiagnostic(PhaseParse, lexer.Position{}, "bad token"))

	assert.True(t, r.HadError())
	assert.Len(t, r.Diagnostics(), 2)
}

func TestRuntimeError(t *testing.T) {
	pos := lexer.Position{Source: "test.malis", Line: 1, Column: 1}
	err := NewRuntimeError(pos, "Operand must be a number.")

	assert.Equal(t, `runtime error: Operand must be a number. (test.malis:1:1)`, err.Error())
}
