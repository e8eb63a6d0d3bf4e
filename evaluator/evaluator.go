package evaluator

import (
	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/scope"
	"github.com/evalscript/evalscript/token"
)

// Evaluator holds the state a single evaluation of a program needs: the
// top-level binding-store frame, the ambient host context, and the
// context stack of active `this` receivers.
type Evaluator struct {
	Global      *Environment
	Ambient     *ObjectValue
	objectProto *ObjectValue
	arrayProto  *ObjectValue
	stack       []*ContextRecord

	// SkipUnsupported makes node kinds the evaluator does not implement
	// evaluate to undefined instead of raising an unsupported-construct
	// error.
	SkipUnsupported bool
}

// New creates an Evaluator with ambient as the host-supplied global
// bindings object (console, Math, JSON, ...). ambient may be nil.
func New(ambient *ObjectValue) *Evaluator {
	if ambient == nil {
		ambient = NewObject(nil)
	}
	objectProto := NewObject(nil)
	arrayProto := NewObject(objectProto)
	e := &Evaluator{
		Global:      NewEnvironment(),
		Ambient:     ambient,
		objectProto: objectProto,
		arrayProto:  arrayProto,
	}
	e.stack = []*ContextRecord{{This: ambient, Ambient: ambient}}
	installArrayMethods(e, arrayProto)
	return e
}

func (e *Evaluator) currentContext() *ContextRecord { return e.stack[len(e.stack)-1] }
func (e *Evaluator) pushContext(c *ContextRecord)    { e.stack = append(e.stack, c) }
func (e *Evaluator) popContext()                     { e.stack = e.stack[:len(e.stack)-1] }

// resolvedVariable extracts the *scope.Variable the resolver attached to an
// identifier occurrence. Declaration-site identifiers always have one; the
// resolver leaves names with no enclosing declaration nil, and those get a
// fresh Variable here that no frame holds, so lookups fall through to the
// ambient record.
func resolvedVariable(id *ast.Identifier) *scope.Variable {
	v, _ := id.Resolved.(*scope.Variable)
	if v == nil {
		v = scope.New(id.Name, scope.Var)
		id.Resolved = v
	}
	return v
}

// Run resolves and evaluates a full program against the evaluator's global
// frame. Each call resolves prog afresh, so one Evaluator can run several
// programs in turn (as the CLI does for each -e snippet); bindings declared
// by one program are not visible to the next, but the ambient record is
// shared.
func (e *Evaluator) Run(prog *ast.Program) Completion {
	scope.Resolve(prog)
	e.hoistBlock(prog.Statements, e.Global)
	return e.evalStatements(prog.Statements, e.Global)
}

// evalStatements runs a statement list in order, stopping at the first
// abrupt completion.
func (e *Evaluator) evalStatements(stmts []ast.Statement, env *Environment) Completion {
	result := normal(Undefined)
	for _, s := range stmts {
		result = e.evalStatement(s, env)
		if result.isAbrupt() {
			return result
		}
	}
	return result
}

// hoistBlock performs the two-pass hoist described in the block/script
// design: function declarations are installed (bound to their closure)
// first, then `var` names reachable in this block without crossing a
// function boundary are pre-declared as undefined.
func (e *Evaluator) hoistBlock(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		if fd, ok := s.(*ast.FunctionDeclaration); ok && fd.Function.Name != nil {
			fn := e.makeFunctionValue(fd.Function, env)
			env.Declare(resolvedVariable(fd.Function.Name), fn)
		}
	}
	for _, s := range stmts {
		e.hoistVars(s, env)
	}
}

func (e *Evaluator) hoistVars(s ast.Statement, env *Environment) {
	switch n := s.(type) {
	case *ast.DeclarationStatement:
		if n.Kind == token.VAR {
			for _, d := range n.Declarators {
				env.DeclareIfAbsent(resolvedVariable(d.Name), Undefined)
			}
		}
	case *ast.BlockStatement:
		for _, sub := range n.Statements {
			e.hoistVars(sub, env)
		}
	case *ast.IfStatement:
		e.hoistVars(n.Consequent, env)
		if n.Alternate != nil {
			e.hoistVars(n.Alternate, env)
		}
	case *ast.WhileStatement:
		e.hoistVars(n.Body, env)
	case *ast.DoWhileStatement:
		e.hoistVars(n.Body, env)
	case *ast.ForStatement:
		if decl, ok := n.Init.(*ast.DeclarationStatement); ok && decl.Kind == token.VAR {
			for _, d := range decl.Declarators {
				env.DeclareIfAbsent(resolvedVariable(d.Name), Undefined)
			}
		}
		e.hoistVars(n.Body, env)
	case *ast.ForInStatement:
		if n.VarKind == token.VAR {
			if decl, ok := n.Left.(*ast.DeclarationStatement); ok {
				env.DeclareIfAbsent(resolvedVariable(decl.Declarators[0].Name), Undefined)
			}
		}
		e.hoistVars(n.Body, env)
	case *ast.TryStatement:
		for _, sub := range n.Block.Statements {
			e.hoistVars(sub, env)
		}
		if n.CatchBody != nil {
			for _, sub := range n.CatchBody.Statements {
				e.hoistVars(sub, env)
			}
		}
		if n.FinallyBody != nil {
			for _, sub := range n.FinallyBody.Statements {
				e.hoistVars(sub, env)
			}
		}
	}
}
