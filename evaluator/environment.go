package evaluator

import "github.com/evalscript/evalscript/scope"

// Cell is the indirection the binding store uses for every variable: a
// closure that captures the binding captures the *Cell, not a copied
// value, so writes made after closure creation stay visible (closure
// liveness invariant).
type Cell struct {
	Value Value
}

// Environment is one activation frame: a Variable-token-keyed map of cells,
// chained to its enclosing frame. Frames are created per function call and
// per block, never per-name, matching the binding store described in the
// data model.
type Environment struct {
	cells map[*scope.Variable]*Cell
	outer *Environment
}

// NewEnvironment creates a root frame (used for the program's top-level
// scope).
func NewEnvironment() *Environment {
	return &Environment{cells: map[*scope.Variable]*Cell{}}
}

// NewChild creates a frame nested inside outer, used for function calls and
// blocks.
func NewChild(outer *Environment) *Environment {
	return &Environment{cells: map[*scope.Variable]*Cell{}, outer: outer}
}

// Declare installs a fresh cell for v in this frame, initialized to value.
// Re-declaring the same *Variable in the same frame keeps the cell and
// overwrites its value; `var` pre-declaration uses DeclareIfAbsent instead.
func (e *Environment) Declare(v *scope.Variable, value Value) {
	if c, ok := e.cells[v]; ok {
		c.Value = value
		return
	}
	e.cells[v] = &Cell{Value: value}
}

// DeclareIfAbsent pre-declares v as value only when no cell for it is
// reachable from this frame; used for hoisted `var` names, which the
// block-level re-hoist sees again in nested frames and must keep pointing
// at the function-level cell rather than shadowing it.
func (e *Environment) DeclareIfAbsent(v *scope.Variable, value Value) {
	if e.cellFor(v) != nil {
		return
	}
	e.cells[v] = &Cell{Value: value}
}

func (e *Environment) cellFor(v *scope.Variable) *Cell {
	for cur := e; cur != nil; cur = cur.outer {
		if c, ok := cur.cells[v]; ok {
			return c
		}
	}
	return nil
}

// Get reads v's current value, reporting false if v has no binding
// reachable from this frame (the caller falls back to ambient lookup).
func (e *Environment) Get(v *scope.Variable) (Value, bool) {
	c := e.cellFor(v)
	if c == nil {
		return nil, false
	}
	return c.Value, true
}

// Assign writes value into v's existing cell, reporting false if v has no
// reachable binding.
func (e *Environment) Assign(v *scope.Variable, value Value) bool {
	c := e.cellFor(v)
	if c == nil {
		return false
	}
	c.Value = value
	return true
}
