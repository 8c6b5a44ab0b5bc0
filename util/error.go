/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

// Package util holds cross-phase diagnostics and logging, shared by the
// lexer, parser, resolver, and interpreter.
package util

import (
	"errors"
	"fmt"

	"github.com/malis-lang/malis/lexer"
)

/*
Phase identifies which pipeline stage raised a diagnostic, per spec.md 7.
*/
type Phase string

const (
	PhaseLex     Phase = "lex error"
	PhaseParse   Phase = "parse error"
	PhaseResolve Phase = "resolve error"
	PhaseRuntime Phase = "runtime error"
)

/*
ErrReturn identifies the interpreter's non-local return control-flow
signal. It is not itself used as an error value; it exists so that
errors.Is-style identity checks can distinguish "the function returned"
from "the function failed" without ErrReturn ever needing to propagate
past the call that produced it - see the interpreter's returnSignal.
*/
var ErrReturn = errors.New("return is not an error")

/*
Diagnostic is a single reported problem, always tagged with a source
position, per spec.md 7.
*/
type Diagnostic struct {
	Phase   Phase
	Pos     lexer.Position
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s (%s)", d.Phase, d.Message, d.Pos)
}

/*
NewDiagnostic builds a Diagnostic for the given phase.
*/
func NewDiagnostic(phase Phase, pos lexer.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Phase: phase, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

/*
Reporter accumulates diagnostics across a phase instead of aborting on
the first error, matching spec.md 7 ("All parse errors are reported")
and the teacher's panic-mode parser plus the resolver's own error list.
*/
type Reporter struct {
	diagnostics []*Diagnostic
}

/*
Report records a diagnostic.
*/
func (r *Reporter) Report(d *Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

/*
HadError reports whether any diagnostic has been recorded.
*/
func (r *Reporter) HadError() bool {
	return len(r.diagnostics) > 0
}

/*
Diagnostics returns all recorded diagnostics in report order.
*/
func (r *Reporter) Diagnostics() []*Diagnostic {
	return r.diagnostics
}

/*
RuntimeError is a runtime-phase error, tagged with the position of the
expression or statement that caused it.
*/
type RuntimeError struct {
	Pos     lexer.Position
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", PhaseRuntime, e.Message, e.Pos)
}

/*
NewRuntimeError builds a RuntimeError at the given position.
*/
func NewRuntimeError(pos lexer.Position, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
