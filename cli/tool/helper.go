/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package tool

import (
	"io"
	"os"
	"strings"

	"devt.de/krotik/common/stringutil"

	"github.com/malis-lang/malis/values"
)

/*
osArgs is a local copy of os.Args (used for unit tests).
*/
var osArgs = os.Args

/*
SetArgs overrides the argument vector ParseArgs reads from. Exposed so
cli/malis.go can synthesize the "run" subcommand for a bare one-argument
invocation (spec.md 6: "malis foo.ms" is shorthand for "malis run foo.ms"),
and so tests can drive ParseArgs without touching the real os.Args.
*/
func SetArgs(args []string) {
	osArgs = args
}

/*
osStderr is a local copy of os.Stderr (used for unit tests).
*/
var osStderr io.Writer = os.Stderr

/*
osExit is a local variable pointing to os.Exit (used for unit tests).
*/
var osExit func(int) = os.Exit

/*
OutputTerminal is a generic output terminal which can write strings.
*/
type OutputTerminal interface {

	/*
		WriteString writes a string on this terminal.
	*/
	WriteString(s string)
}

/*
fillEnvRow fills one row of the REPL "@env" table with a binding's name
and its value rendered the same way "print" renders it
(values.Stringify), wrapping long values across multiple lines the way
the teacher's stdlib symbol listing does for long docstrings.
*/
func fillEnvRow(tabData []string, name string, value interface{}) []string {
	tabData = append(tabData, name)

	valSplit := stringutil.ChunkSplit(values.Stringify(value), 80, true)
	tabData = append(tabData, strings.TrimSpace(valSplit[0]))
	for _, valPart := range valSplit[1:] {
		tabData = append(tabData, "")
		tabData = append(tabData, strings.TrimSpace(valPart))
	}

	tabData = append(tabData, "")
	tabData = append(tabData, "")

	return tabData
}
