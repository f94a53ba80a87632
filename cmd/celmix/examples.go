package main

import (
	"io"

	"github.com/akashmaji946/go-cel/eval"
	"github.com/akashmaji946/go-cel/value"
	"github.com/fatih/color"
)

// example is one entry in the seed-scenario catalog, grounded on
// original_source/pycel/main.py's Flask examples() route — that route
// hard-codes the same handful of expressions to demonstrate the language
// to a visitor; celmix's `examples` subcommand reproduces it as a CLI
// feature instead of an HTTP response.
type example struct {
	source  string
	context eval.Context
}

var catalog = []example{
	{"a + b * 2", eval.Context{"a": value.Int(10), "b": value.Int(5)}},
	{"(a + b) * 2", eval.Context{"a": value.Int(10), "b": value.Int(5)}},
	{"name + ' is ' + string(age) + ' years old'", eval.Context{"name": value.String("Alice"), "age": value.Int(30)}},
	{"isAdmin ? 'Administrator' : 'Regular user'", eval.Context{"isAdmin": value.Bool(true)}},
	{"size(tags)", eval.Context{"tags": value.List([]value.Value{value.String("user"), value.String("member")})}},
	{"contains(tags, 'admin')", eval.Context{"tags": value.List([]value.Value{value.String("user"), value.String("member")})}},
}

// runExamples evaluates and prints the seed-scenario catalog.
func runExamples(writer io.Writer) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, ex := range catalog {
		cyan.Fprintf(writer, "%s  ->  ", ex.source)
		compiled, err := eval.Compile(ex.source, eval.DefaultPolicy)
		if err != nil {
			red.Fprintf(writer, "%s\n", err)
			continue
		}
		result, err := compiled.Evaluate(ex.context)
		if err != nil {
			red.Fprintf(writer, "%s\n", err)
			continue
		}
		yellow.Fprintf(writer, "%s\n", value.CanonicalString(result))
	}
}
