/*
 * malis
 *
 * A tree-walking interpreter for a small Lox-family scripting language.
 */

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/malis-lang/malis/cli/tool"
	"github.com/malis-lang/malis/config"
)

func main() {
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	flag.Usage = func() {
		fmt.Printf("Usage of %s <command>\n\n", os.Args[0])
		fmt.Printf("malis %v - a small tree-walking scripting language\n\n", config.ProductVersion)
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    console   Interactive console (default)")
		fmt.Println("    run       Execute a malis source file")
		fmt.Println()
		fmt.Printf("Use %s <command> -help for more information about a given command.\n\n", os.Args[0])
	}

	exitCode := tool.ExitOK

	if err := flag.CommandLine.Parse(os.Args[1:]); err == nil {
		interp := tool.NewInterpreter()

		if len(flag.Args()) > 0 {
			switch flag.Args()[0] {
			case "console":
				exitCode, err = interp.Interpret(true)
			case "run":
				exitCode, err = interp.Interpret(false)
			default:
				// A single unrecognized positional argument is a bare
				// source file, per spec.md 6: "malis foo.ms" runs it
				// directly, equivalent to "malis run foo.ms".
				if len(flag.Args()) == 1 {
					tool.SetArgs(append([]string{os.Args[0], "run"}, flag.Args()...))
					exitCode, err = interp.Interpret(false)
				} else {
					flag.Usage()
					exitCode = tool.ExitDataErr
				}
			}
		} else {
			exitCode, err = interp.Interpret(true)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	} else {
		exitCode = tool.ExitDataErr
	}

	os.Exit(exitCode)
}
