package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/go-cel/eval"
	"github.com/akashmaji946/go-cel/internal/batchconfig"
	"github.com/akashmaji946/go-cel/value"
	"github.com/fatih/color"
)

// runBatch loads a batch YAML file and evaluates every expression it
// declares against its named context, printing one line of result or
// error per expression. Mirrors the teacher's file-mode execution path
// (main/main.go's runFile) but driven by a declarative document instead
// of a single source file, since CEL has no statement sequencing of its
// own to script a "file" with.
func runBatch(writer io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("celmix run: %w", err)
	}
	doc, err := batchconfig.Parse(data)
	if err != nil {
		return err
	}

	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	for _, expr := range doc.Expressions {
		cyan.Fprintf(writer, "%s: ", expr.Name)

		ctx, err := doc.ResolveContext(expr.Context)
		if err != nil {
			red.Fprintf(writer, "%s\n", err)
			continue
		}
		compiled, err := eval.Compile(expr.Source, eval.DefaultPolicy)
		if err != nil {
			red.Fprintf(writer, "%s\n", err)
			continue
		}
		result, err := compiled.Evaluate(eval.Context(ctx))
		if err != nil {
			red.Fprintf(writer, "%s\n", err)
			continue
		}
		yellow.Fprintf(writer, "%s\n", value.CanonicalString(result))
	}
	return nil
}
