/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package util

import (
	"fmt"
	"io"
	"log"
	"strings"

	"devt.de/krotik/common/datautil"
)

// Logger with log-level support
// ==============================

/*
LogLevel represents a logging level.
*/
type LogLevel string

/*
Log levels.
*/
const (
	Debug LogLevel = "debug"
	Info  LogLevel = "info"
	Error LogLevel = "error"
)

/*
LogLevelLogger wraps a Logger and adds level-based filtering, copied in
spirit from the teacher's util/logging.go.
*/
type LogLevelLogger struct {
	logger Logger
	level  LogLevel
}

/*
NewLogLevelLogger wraps a given logger and adds level-based filtering.
*/
func NewLogLevelLogger(logger Logger, level string) (*LogLevelLogger, error) {
	llevel := LogLevel(strings.ToLower(level))

	if llevel != Debug && llevel != Info && llevel != Error {
		return nil, fmt.Errorf("invalid log level: %v", llevel)
	}

	return &LogLevelLogger{logger, llevel}, nil
}

/*
Level returns the current log level.
*/
func (ll *LogLevelLogger) Level() LogLevel {
	return ll.level
}

func (ll *LogLevelLogger) LogError(m ...interface{}) {
	ll.logger.LogError(m...)
}

func (ll *LogLevelLogger) LogInfo(m ...interface{}) {
	if ll.level == Info || ll.level == Debug {
		ll.logger.LogInfo(m...)
	}
}

func (ll *LogLevelLogger) LogDebug(m ...interface{}) {
	if ll.level == Debug {
		ll.logger.LogDebug(m...)
	}
}

// Logging implementations
// ========================

/*
MemoryLogger collects log messages in a ring buffer in memory, keeping
only the most recent ones.
*/
type MemoryLogger struct {
	*datautil.RingBuffer
}

/*
NewMemoryLogger returns a new memory logger instance.
*/
func NewMemoryLogger(size int) *MemoryLogger {
	return &MemoryLogger{datautil.NewRingBuffer(size)}
}

func (ml *MemoryLogger) LogError(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (ml *MemoryLogger) LogInfo(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprint(m...))
}

func (ml *MemoryLogger) LogDebug(m ...interface{}) {
	ml.RingBuffer.Add(fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

/*
StdOutLogger writes log messages to stdout.
*/
type StdOutLogger struct {
	stdlog func(v ...interface{})
}

/*
NewStdOutLogger returns a stdout logger instance.
*/
func NewStdOutLogger() *StdOutLogger {
	return &StdOutLogger{log.Print}
}

func (sl *StdOutLogger) LogError(m ...interface{}) {
	sl.stdlog(fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (sl *StdOutLogger) LogInfo(m ...interface{}) {
	sl.stdlog(fmt.Sprint(m...))
}

func (sl *StdOutLogger) LogDebug(m ...interface{}) {
	sl.stdlog(fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

/*
NullLogger discards log messages.
*/
type NullLogger struct{}

/*
NewNullLogger returns a null logger instance.
*/
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (nl *NullLogger) LogError(m ...interface{}) {}
func (nl *NullLogger) LogInfo(m ...interface{})  {}
func (nl *NullLogger) LogDebug(m ...interface{}) {}

/*
BufferLogger logs into an arbitrary io.Writer, used for rolling log
files via devt.de/krotik/common/fileutil in the CLI driver.
*/
type BufferLogger struct {
	buf io.Writer
}

/*
NewBufferLogger returns a buffer logger instance.
*/
func NewBufferLogger(buf io.Writer) *BufferLogger {
	return &BufferLogger{buf}
}

func (bl *BufferLogger) LogError(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprintf("error: %v", fmt.Sprint(m...)))
}

func (bl *BufferLogger) LogInfo(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprint(m...))
}

func (bl *BufferLogger) LogDebug(m ...interface{}) {
	fmt.Fprintln(bl.buf, fmt.Sprintf("debug: %v", fmt.Sprint(m...)))
}

// Diagnostic logging
// ===================

/*
LogDiagnostic routes a reported Diagnostic through a Logger at the
severity its Phase implies. Runtime-phase diagnostics are logged as
errors - they always abort a running program (spec.md 7) - while
lex/parse/resolve-phase diagnostics, which the CLI driver already
prints to stderr itself (cli/tool.printDiagnostics), are logged at info
level so a -logfile run keeps a durable record of why compilation
failed without duplicating error-level noise for every syntax mistake.
*/
func LogDiagnostic(logger Logger, d *Diagnostic) {
	if d.Phase == PhaseRuntime {
		logger.LogError(d.Error())
	} else {
		logger.LogInfo(d.Error())
	}
}
