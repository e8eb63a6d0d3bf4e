// Package scope stands in for the external scope-analysis pass: it assigns
// each binding occurrence a stable identity token (a *Variable) so the
// evaluator's binding store can key environment cells by identity rather
// than by name, as required by the data model's Variable Identity section.
package scope

// Kind distinguishes how a Variable was declared, which controls where its
// binding is hoisted to.
type Kind int

const (
	// Var bindings hoist to the nearest enclosing function (or program) scope.
	Var Kind = iota
	// Let and Const bindings are block-scoped and not hoisted past their block.
	Let
	// Const is scoped like Let. The evaluator does not check Kind, so
	// re-assignment of a Const binding is not rejected.
	Const
	// Param bindings are function parameters, scoped to the function body.
	Param
	// FunctionName is the binding a function declaration introduces for its
	// name in the enclosing block. A named function expression's own name is
	// not bound.
	FunctionName
)

// Variable is the opaque identity token for one declared name. Two
// occurrences of the same source identifier resolve to the same *Variable
// only if they refer to the same binding; shadowing in a nested scope
// produces a distinct *Variable even though the source text repeats.
type Variable struct {
	Name string
	Kind Kind
}

// New creates a fresh, uniquely-identified Variable. Identity is pointer
// identity: no two calls ever return the same *Variable, which is what lets
// the binding store distinguish shadowed declarations that share a name.
func New(name string, kind Kind) *Variable {
	return &Variable{Name: name, Kind: kind}
}
