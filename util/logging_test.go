/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package util

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/malis-lang/malis/lexer"
)

func TestMemoryLogger(t *testing.T) {
	ml := NewMemoryLogger(5)

	ml.LogDebug("test")
	ml.LogInfo("test")

	assert.Equal(t, "debug: test\ntest", ml.String())
	assert.Equal(t, "[debug: test test]", fmt.Sprint(ml.Slice()))

	ml.Reset()
	ml.LogError("test1")

	assert.Equal(t, "[error: test1]", fmt.Sprint(ml.Slice()))
	assert.Equal(t, 1, ml.Size())
}

func TestNullAndStdOutLogger(t *testing.T) {
	nl := NewNullLogger()
	nl.LogDebug(nil, "test")
	nl.LogInfo(nil, "test")
	nl.LogError(nil, "test")

	sol := NewStdOutLogger()
	sol.stdlog = func(v ...interface{}) {}
	sol.LogDebug(nil, "test")
	sol.LogInfo(nil, "test")
	sol.LogError(nil, "test")
}

func TestLogLevelLogger(t *testing.T) {
	ml := NewMemoryLogger(5)

	_, err := NewLogLevelLogger(ml, "test")
	require.EqualError(t, err, "invalid log level: test")

	ml.Reset()
	ll, err := NewLogLevelLogger(ml, "debug")
	require.NoError(t, err)
	ll.LogDebug("l", "test1")
	ll.LogInfo(nil, "test2")
	ll.LogError("l", "test3")

	assert.Equal(t, "debug: ltest1\n<nil>test2\nerror: ltest3", ml.String())

	ml.Reset()
	ll, _ = NewLogLevelLogger(ml, "info")
	ll.LogDebug("l", "test1")
	ll.LogInfo(nil, "test2")
	ll.LogError("l", "test3")

	assert.Equal(t, "<nil>test2\nerror: ltest3", ml.String())

	ml.Reset()
	ll, _ = NewLogLevelLogger(ml, "error")
	assert.Equal(t, LogLevel("error"), ll.Level())

	ll.LogDebug("l", "test1")
	ll.LogInfo(nil, "test2")
	ll.LogError("l", "test3")

	assert.Equal(t, "error: ltest3", ml.String())
}

func TestBufferLogger(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	bl := NewBufferLogger(buf)
	bl.LogDebug("l", "test1")
	bl.LogInfo(nil, "test2")
	bl.LogError("l", "test3")

	assert.Equal(t, "debug: ltest1\n<nil>test2\nerror: ltest3\n", buf.String())
}

func TestLogDiagnosticRoutesBySeverity(t *testing.T) {
	ml := NewMemoryLogger(5)

	LogDiagnostic(ml, NewDiagnostic(PhaseResolve, lexer.Position{}, "bad thing"))
	assert.Equal(t, []interface{}{fmt.Sprint(NewDiagnostic(PhaseResolve, lexer.Position{}, "bad thing").Error())}, ml.Slice())

	ml.Reset()
	LogDiagnostic(ml, NewDiagnostic(PhaseRuntime, lexer.Position{}, "boom"))
	assert.Equal(t, []interface{}{fmt.Sprintf("error: %v", NewDiagnostic(PhaseRuntime, lexer.Position{}, "boom").Error())}, ml.Slice())
}
