/*
File    : go-cel/cmd/celmix/repl.go

Package main's REPL loop for celmix, adapted from the teacher's
repl/repl.go: readline-driven line editing and history, fatih/color
banner/prompt/error output, one line in, one evaluation out. Unlike
go-mix's REPL (which threads a single mutable Environment through one
Evaluator instance), celmix's context is immutable per evaluation — the
REPL instead keeps its own running map[string]value.Value and rebuilds a
fresh evaluator call each line, staying faithful to CEL's side-effect-free
evaluation model while still letting a session accumulate bindings via
"name := expr".
*/
package main

import (
	"io"
	"strings"

	"github.com/akashmaji946/go-cel/eval"
	"github.com/akashmaji946/go-cel/value"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive celmix session: a running context of bound
// names plus the cosmetic banner/prompt fields the teacher's Repl carries.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	Prompt  string

	context eval.Context
}

// NewRepl builds a Repl with an empty starting context.
func NewRepl(banner, version, author, line, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, Prompt: prompt, context: eval.Context{}}
}

// PrintBannerInfo prints the startup banner, mirroring repl.Repl.PrintBannerInfo.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to celmix!")
	cyanColor.Fprintf(writer, "%s\n", "Type a CEL expression and press enter.")
	cyanColor.Fprintf(writer, "%s\n", "Type 'name := expr' to bind a name into the session context.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop until '.exit' or EOF.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}
		rl.SaveHistory(line)
		r.evalLine(writer, line)
	}
}

// evalLine evaluates one line, handling the "name := expr" binding form
// and printing the result or error in color.
func (r *Repl) evalLine(writer io.Writer, line string) {
	name, source, isBinding := splitBinding(line)

	c, err := eval.Compile(source, eval.DefaultPolicy)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}
	result, err := c.Evaluate(r.context)
	if err != nil {
		redColor.Fprintf(writer, "%s\n", err)
		return
	}

	if isBinding {
		r.context[name] = result
	}
	yellowColor.Fprintf(writer, "%s\n", value.CanonicalString(result))
}

// splitBinding recognizes "name := expr". The name is trimmed, and the
// line is treated as a plain expression if the name is empty or contains
// whitespace or brackets; no other validation of the name is done.
func splitBinding(line string) (name, source string, ok bool) {
	idx := strings.Index(line, ":=")
	if idx < 0 {
		return "", line, false
	}
	candidate := strings.TrimSpace(line[:idx])
	if candidate == "" || strings.ContainsAny(candidate, " \t()[]{}") {
		return "", line, false
	}
	return candidate, strings.TrimSpace(line[idx+2:]), true
}
