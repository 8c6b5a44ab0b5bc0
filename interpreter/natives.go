/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package interpreter

import (
	"time"

	"github.com/malis-lang/malis/environment"
	"github.com/malis-lang/malis/values"
)

/*
registerNatives defines the small set of host-provided functions every
malis program starts with, per spec.md 4.6.
*/
func registerNatives(globals *environment.Environment) {
	globals.Define("clock", &values.NativeFn{
		FnName: "clock",
		Arty:   0,
		Fn: func(args []interface{}) (interface{}, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}
