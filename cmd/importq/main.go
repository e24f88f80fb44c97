// Command importq parses one question file and prints what it contains as
// JSON, either as the raw import result or as exam-creation requests.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vlikcc/izbo-sub001/internal/core"
)

func main() {
	input := flag.String("input", "", "Path to the question file (.xlsx, .xls or .docx)")
	output := flag.String("output", "", "Path to output JSON file (optional, defaults to stdout)")
	requests := flag.Bool("requests", false, "Write exam-creation requests instead of the import result")
	start := flag.Int("start", 1, "First order index for -requests")
	verbose := flag.Bool("verbose", false, "Print a summary and warnings to stderr")

	flag.Parse()

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		fmt.Fprintf(os.Stderr, "Usage: importq -input <file> [-requests [-start N]] [-output <json-file>] [-verbose]\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read input file: %v\n", err)
		os.Exit(1)
	}
	if int64(len(data)) > core.DefaultMaxFileSize {
		fmt.Fprintf(os.Stderr, "Error: %s is %d bytes, the limit is %d\n", *input, len(data), core.DefaultMaxFileSize)
		os.Exit(1)
	}

	res := core.ParseQuestionFile(data, filepath.Base(*input))

	if *verbose {
		printSummary(res)
	}
	if !res.Success {
		printFailure(os.Stderr, res, *verbose)
		os.Exit(1)
	}

	var v any = res
	if *requests {
		v = core.ToCreateRequests(res.Questions, *start)
	}
	if err := writeJSON(v, *output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if *verbose && *output != "" {
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", *output)
	}
}

func printSummary(res core.ImportResult) {
	s := core.Summarize(res)
	fmt.Fprintf(os.Stderr, "Parsed %d questions (%d multiple choice, %d true/false, %d short answer)\n",
		s.Total, s.MultipleChoice, s.TrueFalse, s.ShortAnswer)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "  skipped %s\n", w)
	}
}

// printFailure writes the coded user message for each fatal error, and the
// raw parser error when verbose.
func printFailure(w io.Writer, res core.ImportResult, verbose bool) {
	for i, msg := range core.ErrorDetails(res) {
		fmt.Fprintf(w, "Error: %s\n", msg)
		if verbose {
			fmt.Fprintf(w, "  detail: %s\n", res.Errors[i])
		}
	}
}

// writeJSON writes v as indented JSON to path, or to stdout when path is empty.
func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
