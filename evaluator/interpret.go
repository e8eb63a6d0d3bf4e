package evaluator

import (
	"fmt"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/parser"
)

// InterpretSource parses source and evaluates the result against context.
func InterpretSource(source string, context *ObjectValue) (Value, error) {
	l := lexer.New(source)
	p := parser.New(l)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("parse error: %w", errs[0])
	}
	return InterpretTree(prog, context)
}

// InterpretTree constructs an evaluator, pushes context as the outermost
// receiver/ambient record, runs the program, and yields the final
// expression value. A program that ends in an uncaught exception raises
// that as the returned error.
func InterpretTree(prog *ast.Program, context *ObjectValue) (Value, error) {
	e := New(context)
	result := e.Run(prog)
	if result.Kind == Throw {
		return nil, fmt.Errorf("uncaught exception: %s", result.Value.String())
	}
	return result.Value, nil
}
