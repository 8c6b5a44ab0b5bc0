/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package tool

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"devt.de/krotik/common/fileutil"
	"devt.de/krotik/common/stringutil"
	"devt.de/krotik/common/termutil"
	"github.com/fatih/color"

	"github.com/malis-lang/malis/config"
	"github.com/malis-lang/malis/interpreter"
	"github.com/malis-lang/malis/lexer"
	"github.com/malis-lang/malis/parser"
	"github.com/malis-lang/malis/resolver"
	"github.com/malis-lang/malis/util"
)

/*
Exit codes, per the convention Unix shells expect: 0 success, 65 a
usage/compile-time (lex, parse, or resolve) error, 70 a runtime error.
*/
const (
	ExitOK      = 0
	ExitDataErr = 65
	ExitSoft    = 70
)

/*
Interpreter is the commandline driver for malis: it owns argument
parsing, the REPL loop, and one-shot file execution. Mirrors the shape
of the teacher's cli/tool.CLIInterpreter, trimmed of ECAL's stdlib
plugin loading and scope/debugger plumbing, and extended with the
"-ast"/"-tokens" debug flags and the REPL's "@env" command.
*/
type Interpreter struct {
	Dir      *string
	LogFile  *string
	LogLevel *string
	ShowAST  *bool
	ShowToks *bool

	EntryFile string

	Term   termutil.ConsoleLineTerminal
	LogOut io.Writer

	logger util.Logger
	interp *interpreter.Interpreter
}

/*
NewInterpreter creates a new commandline interpreter for malis.
*/
func NewInterpreter() *Interpreter {
	return &Interpreter{LogOut: os.Stdout}
}

/*
logOrNull returns this interpreter's configured Logger, or a no-op one
if CreateLogger was never called (e.g. HandleInput driven directly in
tests without going through Interpret).
*/
func (i *Interpreter) logOrNull() util.Logger {
	if i.logger == nil {
		return util.NewNullLogger()
	}
	return i.logger
}

/*
ParseArgs parses the command line arguments. Call this after adding any
custom flags. Returns true if the program should exit (e.g. -help was
given).
*/
func (i *Interpreter) ParseArgs() bool {
	wd, _ := os.Getwd()

	i.Dir = flag.String("dir", wd, "Root directory for the malis interpreter")
	i.LogFile = flag.String("logfile", "", "Log to a file instead of stdout")
	i.LogLevel = flag.String("loglevel", "info", "Logging level (debug, info, error)")
	i.ShowAST = flag.Bool("ast", false, "Print the parsed AST instead of running it")
	i.ShowToks = flag.Bool("tokens", false, "Print the token stream instead of running it")
	showHelp := flag.Bool("help", false, "Show this help message")

	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output())
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s run [options] [file]\n", osArgs[0])
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output())
	}

	if len(osArgs) >= 2 {
		flag.CommandLine.Parse(osArgs[2:])

		if cargs := flag.Args(); len(cargs) > 0 {
			i.EntryFile = flag.Arg(0)
		}

		if *showHelp {
			flag.Usage()
		}
	}

	return showHelp != nil && *showHelp
}

/*
CreateLogger builds this interpreter's logger from -logfile/-loglevel,
rolling log files through devt.de/krotik/common/fileutil the way the
teacher's CreateRuntimeProvider does.
*/
func (i *Interpreter) CreateLogger() error {
	if i.logger != nil {
		return nil
	}

	var logger util.Logger
	var err error

	if i.LogFile != nil && *i.LogFile != "" {
		var logWriter io.Writer
		rollover := fileutil.SizeBasedRolloverCondition(1000000)
		logWriter, err = fileutil.NewMultiFileBuffer(*i.LogFile, fileutil.ConsecutiveNumberIterator(10), rollover)
		logger = util.NewBufferLogger(logWriter)
	} else {
		logger = util.NewStdOutLogger()
	}

	if err == nil {
		if i.LogLevel != nil && *i.LogLevel != "" {
			logger, err = util.NewLogLevelLogger(logger, *i.LogLevel)
		}
	}

	i.logger = logger
	return err
}

/*
CreateTerm creates a new console terminal for stdout.
*/
func (i *Interpreter) CreateTerm() error {
	var err error
	if i.Term == nil {
		i.Term, err = termutil.NewConsoleLineTerminal(os.Stdout)
	}
	return err
}

/*
Interpret starts the malis interpreter: runs EntryFile if one was given,
then (if interactive) drops into a REPL. Returns a process exit code
alongside any unexpected (non-user) error.
*/
func (i *Interpreter) Interpret(interactive bool) (int, error) {
	if i.ParseArgs() {
		return ExitOK, nil
	}

	if err := config.LoadFile(filepath.Join(*i.Dir, ".malis.yaml")); err != nil {
		return ExitDataErr, err
	}

	if err := i.CreateLogger(); err != nil {
		return ExitDataErr, err
	}

	i.interp = interpreter.New(nil, os.Stdout, i.logger)

	if interactive {
		fmt.Fprintf(i.LogOut, "malis %s\n", config.ProductVersion)
	}

	exitCode := ExitOK

	if i.EntryFile != "" {
		code, err := i.runFile(i.EntryFile)
		if err != nil {
			return ExitDataErr, err
		}
		exitCode = code

		if !interactive {
			return exitCode, nil
		}
	}

	if err := i.CreateTerm(); err != nil {
		return ExitDataErr, err
	}

	var err error
	i.Term, err = termutil.AddHistoryMixin(i.Term, "", func(s string) bool {
		return isExitLine(s)
	})
	if err != nil {
		return ExitDataErr, err
	}

	if err := i.Term.StartTerm(); err != nil {
		return ExitDataErr, err
	}
	defer i.Term.StopTerm()

	fmt.Fprintln(i.LogOut, "Type 'quit' or 'q' to exit, '?' for help")

	line, err := i.Term.NextLine()
	for err == nil && !isExitLine(line) {
		i.HandleInput(i.Term, strings.TrimSpace(line))
		line, err = i.Term.NextLine()
	}

	return ExitOK, nil
}

/*
runFile parses, resolves and runs a single source file, printing
diagnostics through colorized stderr the way spec.md 6 describes, and
returning the exit code that corresponds to what failed (if anything).
*/
func (i *Interpreter) runFile(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ExitDataErr, err
	}

	return i.runSource(path, string(content), os.Stdout), nil
}

func (i *Interpreter) runSource(name, source string, out io.Writer) int {
	var reporter util.Reporter

	if *i.ShowToks {
		for _, tok := range lexer.LexToList(name, source) {
			fmt.Fprintln(out, tok)
		}
		return ExitOK
	}

	p := parser.NewFromSource(name, source, &reporter)
	program := p.Parse()

	if reporter.HadError() {
		i.printDiagnostics(reporter.Diagnostics())
		return ExitDataErr
	}

	if *i.ShowAST {
		for _, s := range program {
			fmt.Fprintf(out, "%#v\n", s)
		}
		return ExitOK
	}

	r := resolver.New(&reporter)
	r.Resolve(program)

	if reporter.HadError() {
		i.printDiagnostics(reporter.Diagnostics())
		return ExitDataErr
	}

	i.interp.MergeLocals(r.Locals())

	if err := i.interp.Run(program); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err.Error())
		if d, ok := err.(*util.RuntimeError); ok {
			util.LogDiagnostic(i.logOrNull(), &util.Diagnostic{Phase: util.PhaseRuntime, Pos: d.Pos, Message: d.Message})
		} else {
			i.logOrNull().LogError(err.Error())
		}
		return ExitSoft
	}

	return ExitOK
}

/*
printDiagnostics prints every diagnostic to colorized stderr and, through
util.LogDiagnostic, into this interpreter's Logger - so a -logfile run
keeps the same record a REPL or terminal session would have shown.
*/
func (i *Interpreter) printDiagnostics(diags []*util.Diagnostic) {
	for _, d := range diags {
		color.New(color.FgRed).Fprintln(os.Stderr, d.Error())
		util.LogDiagnostic(i.logOrNull(), d)
	}
}

/*
HandleInput handles one line of REPL input: special "@" commands, "?"
help, or otherwise a malis statement evaluated against the REPL's
long-lived global environment.
*/
func (i *Interpreter) HandleInput(ot OutputTerminal, line string) {
	switch {
	case line == "":
		return

	case line == "?":
		ot.WriteString(fmt.Sprintf("malis %s\n\n", config.ProductVersion))
		ot.WriteString("Console supports all normal malis statements and the following commands:\n\n")
		ot.WriteString("    @env  - print the variables visible in the current scope\n")
		ot.WriteString("    q, quit - exit the console\n")

	case line == "@env":
		i.displayEnv(ot)

	default:
		i.evalLine(ot, line)
	}
}

/*
displayEnv prints the global environment as a table (one fillEnvRow row
per binding), grounded in the teacher's displayPackage/fillTableRow
pattern for listing symbols.
*/
func (i *Interpreter) displayEnv(ot OutputTerminal) {
	globals := i.interp.Globals()

	tabData := []string{"Name", "Value"}
	for _, name := range globals.Entries() {
		tabData = fillEnvRow(tabData, name, globals.Value(name))
	}

	if len(tabData) > 2 {
		ot.WriteString(stringutil.PrintGraphicStringTable(tabData, 2, 1, stringutil.SingleDoubleLineTable))
	} else {
		ot.WriteString("(empty)\n")
	}
}

func (i *Interpreter) evalLine(ot OutputTerminal, line string) {
	var reporter util.Reporter

	p := parser.NewFromSource("<repl>", line, &reporter)
	program := p.Parse()

	if reporter.HadError() {
		for _, d := range reporter.Diagnostics() {
			ot.WriteString(d.Error() + "\n")
			util.LogDiagnostic(i.logOrNull(), d)
		}
		return
	}

	r := resolver.New(&reporter)
	r.Resolve(program)

	if reporter.HadError() {
		for _, d := range reporter.Diagnostics() {
			ot.WriteString(d.Error() + "\n")
			util.LogDiagnostic(i.logOrNull(), d)
		}
		return
	}

	i.interp.MergeLocals(r.Locals())

	if err := i.interp.Run(program); err != nil {
		ot.WriteString(err.Error() + "\n")
		if d, ok := err.(*util.RuntimeError); ok {
			util.LogDiagnostic(i.logOrNull(), &util.Diagnostic{Phase: util.PhaseRuntime, Pos: d.Pos, Message: d.Message})
		} else {
			i.logOrNull().LogError(err.Error())
		}
		return
	}
}

func isExitLine(s string) bool {
	return s == "exit" || s == "q" || s == "quit" || s == "bye" || s == "\x04"
}
