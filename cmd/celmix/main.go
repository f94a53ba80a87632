/*
File    : go-cel/cmd/celmix/main.go

Package main is the entry point for celmix, the CEL evaluator's driver
program. It provides three modes of operation, mirroring the teacher's
main/main.go's REPL-vs-file-vs-server dispatch on os.Args[1] — celmix
narrows "file mode" to a declarative batch document since CEL has no
sequencing of its own to run as a script, and drops the server mode
entirely (no networking surface belongs to a side-effect-free expression
evaluator).
*/
package main

import (
	"os"
)

const version = "v1.0.0"
const author = "akashmaji(@iisc.ac.in)"

const line = "----------------------------------------------------------------"

const banner = `
   ___ ___ _      __  __ _____  __
  / __| __| |    |  \/  |_ _\ \/ /
 | (__| _|| |__  | |\/| || | >  <
  \___|___|____| |_|  |_|___/_/\_\
`

const prompt = "cel >>> "

// main dispatches on the subcommand:
//
//	celmix            - start the interactive REPL
//	celmix repl       - same as above, explicit
//	celmix run <file> - batch-evaluate a YAML document of contexts/expressions
//	celmix examples   - print the seed-scenario catalog
//	celmix --help     - usage
func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		startRepl()
		return
	}

	switch args[0] {
	case "--help", "-h":
		showHelp()
	case "--version", "-v":
		showVersion()
	case "repl":
		startRepl()
	case "examples":
		runExamples(os.Stdout)
	case "run":
		if len(args) < 2 {
			redColor.Fprintln(os.Stderr, "[USAGE ERROR] missing file. Usage: celmix run <file.yaml>")
			os.Exit(1)
		}
		if err := runBatch(os.Stdout, args[1]); err != nil {
			redColor.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	default:
		redColor.Fprintf(os.Stderr, "[USAGE ERROR] unknown command %q\n", args[0])
		showHelp()
		os.Exit(1)
	}
}

func startRepl() {
	r := NewRepl(banner, version, author, line, prompt)
	r.Start(os.Stdout)
}

func showHelp() {
	cyanColor.Println("celmix - a CEL (Common Expression Language) evaluator")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	cyanColor.Println("  celmix                  Start the interactive REPL")
	cyanColor.Println("  celmix repl             Start the interactive REPL")
	cyanColor.Println("  celmix run <file.yaml>  Evaluate a batch of expressions from a YAML file")
	cyanColor.Println("  celmix examples         Print the seed-scenario catalog")
	cyanColor.Println("  celmix --help           Display this help message")
	cyanColor.Println("  celmix --version        Display version information")
}

func showVersion() {
	cyanColor.Printf("celmix %s\n", version)
}
