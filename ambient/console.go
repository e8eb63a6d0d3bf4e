package ambient

import (
	"fmt"
	"io"
	"os"

	"github.com/evalscript/evalscript/evaluator"
)

// newConsole builds the ambient console namespace: log/info write to
// stdout, warn/error to stderr, each joining its arguments with a single
// space and ending the line.
func newConsole() *evaluator.ObjectValue {
	c := evaluator.NewObject(nil)
	c.DefineOwn("log", dataProp(hostFn("console.log", writeLine(os.Stdout))))
	c.DefineOwn("info", dataProp(hostFn("console.info", writeLine(os.Stdout))))
	c.DefineOwn("warn", dataProp(hostFn("console.warn", writeLine(os.Stderr))))
	c.DefineOwn("error", dataProp(hostFn("console.error", writeLine(os.Stderr))))
	return c
}

func writeLine(w io.Writer) func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
	return func(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprint(w, evaluator.ToStringValue(a))
		}
		fmt.Fprintln(w)
		return evaluator.Undefined, nil
	}
}
