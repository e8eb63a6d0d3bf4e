// Command evalscript is the command-line driver: it reads source,
// builds the ambient context, runs the evaluator, and reports the result.
package main

import (
	"fmt"
	"os"

	"github.com/evalscript/evalscript/cmd/evalscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "evalscript: %s\n", err)
		os.Exit(1)
	}
}
