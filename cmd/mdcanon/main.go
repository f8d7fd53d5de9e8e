package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/editkit/mdsurface/internal/markdown"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: mdcanon [options] [input.md]

Rewrites a markdown document in canonical form: the file is parsed
into the editor's document tree and serialized back, normalizing
spacing, list markers and table layout.

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Arguments:
  input.md   Path to the markdown file (reads stdin when omitted)

Examples:
  # Canonicalize and print to stdout
  mdcanon notes.md

  # Rewrite a file in place
  mdcanon -w notes.md

  # Filter from stdin
  cat notes.md | mdcanon
`)
	}

	write := flag.Bool("w", false, "Write result back to the input file instead of stdout")
	flag.Parse()

	args := flag.Args()
	inputPath := ""
	if len(args) > 0 {
		inputPath = args[0]
	}

	if *write && inputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -w requires an input file")
		os.Exit(1)
	}

	var data []byte
	var err error
	if inputPath != "" {
		data, err = os.ReadFile(inputPath)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	root := markdown.Render(string(data), nil)
	canonical := markdown.Serialize(root)

	if *write {
		if err := os.WriteFile(inputPath, []byte(canonical), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(canonical)
}
