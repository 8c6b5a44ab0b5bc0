/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package util

/*
Logger is the external object to which the interpreter and CLI driver
release their log messages, matching the teacher's own util.Logger
contract.
*/
type Logger interface {

	/*
		LogError adds a new error log message.
	*/
	LogError(v ...interface{})

	/*
		LogInfo adds a new info log message.
	*/
	LogInfo(v ...interface{})

	/*
		LogDebug adds a new debug log message.
	*/
	LogDebug(v ...interface{})
}
