package scope

import (
	"testing"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/parser"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse error for %q: %v", input, errs[0])
	}
	return prog
}

// findIdentifier collects every *ast.Identifier occurrence of name in
// evaluation order by walking the handful of node kinds these tests
// exercise; it's just enough traversal for that, not a general AST walker.
func findIdentifier(t *testing.T, prog *ast.Program, name string, occurrence int) *ast.Identifier {
	t.Helper()
	var found []*ast.Identifier

	var walkStmts func([]ast.Statement)
	var walkStmt func(ast.Statement)
	var walkExpr func(ast.Expression)

	walkExpr = func(e ast.Expression) {
		switch n := e.(type) {
		case nil:
			return
		case *ast.Identifier:
			if n.Name == name {
				found = append(found, n)
			}
		case *ast.InfixExpression:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.AssignmentExpression:
			walkExpr(n.Target)
			walkExpr(n.Value)
		case *ast.CallExpression:
			walkExpr(n.Callee)
			for _, a := range n.Arguments {
				walkExpr(a)
			}
		case *ast.MemberExpression:
			walkExpr(n.Object)
			if n.Computed {
				walkExpr(n.Property)
			}
		case *ast.FunctionLiteral:
			if n.ExprBody != nil {
				walkExpr(n.ExprBody)
			}
			if n.Body != nil {
				walkStmts(n.Body.Statements)
			}
		}
	}

	walkStmt = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.ExpressionStatement:
			walkExpr(n.Expression)
		case *ast.DeclarationStatement:
			for _, d := range n.Declarators {
				if d.Name.Name == name {
					found = append(found, d.Name)
				}
				walkExpr(d.Init)
			}
		case *ast.BlockStatement:
			walkStmts(n.Statements)
		case *ast.IfStatement:
			walkStmt(n.Consequent)
			if n.Alternate != nil {
				walkStmt(n.Alternate)
			}
		case *ast.ReturnStatement:
			walkExpr(n.Argument)
		case *ast.FunctionDeclaration:
			walkStmts(n.Function.Body.Statements)
		}
	}

	walkStmts = func(stmts []ast.Statement) {
		for _, s := range stmts {
			walkStmt(s)
		}
	}

	walkStmts(prog.Statements)

	if occurrence >= len(found) {
		t.Fatalf("expected at least %d occurrences of %q, found %d", occurrence+1, name, len(found))
	}
	return found[occurrence]
}

func TestResolveSameBindingSharesIdentity(t *testing.T) {
	prog := parseProgram(t, `let a = 1; a;`)
	Resolve(prog)

	decl := findIdentifier(t, prog, "a", 0)
	use := findIdentifier(t, prog, "a", 1)

	if decl.Resolved == nil || use.Resolved == nil {
		t.Fatal("expected both occurrences to resolve")
	}
	if decl.Resolved.(*Variable) != use.Resolved.(*Variable) {
		t.Error("expected declaration and use to resolve to the same *Variable")
	}
}

func TestResolveShadowingProducesDistinctVariables(t *testing.T) {
	prog := parseProgram(t, `
	let a = 1;
	function f() {
		let a = 2;
		return a;
	}
	a;
	`)
	Resolve(prog)

	outer := findIdentifier(t, prog, "a", 0)
	inner := findIdentifier(t, prog, "a", 1)

	if outer.Resolved == nil || inner.Resolved == nil {
		t.Fatal("expected both declarations to resolve")
	}
	if outer.Resolved.(*Variable) == inner.Resolved.(*Variable) {
		t.Error("expected shadowed declaration to get a distinct *Variable identity")
	}
}

func TestResolveVarHoistsToFunctionScope(t *testing.T) {
	prog := parseProgram(t, `
	function f() {
		if (true) {
			var x = 1;
		}
		return x;
	}
	`)
	Resolve(prog)

	decl := findIdentifier(t, prog, "x", 0)
	use := findIdentifier(t, prog, "x", 1)

	if decl.Resolved == nil || use.Resolved == nil {
		t.Fatal("expected both occurrences to resolve")
	}
	if decl.Resolved.(*Variable) != use.Resolved.(*Variable) {
		t.Error("expected var declared inside a block to resolve identically outside the block, within the same function")
	}
	if decl.Resolved.(*Variable).Kind != Var {
		t.Errorf("expected Kind Var, got %v", decl.Resolved.(*Variable).Kind)
	}
}

func TestResolveLetDoesNotHoistAcrossBlocks(t *testing.T) {
	prog := parseProgram(t, `
	let a = 1;
	{
		let a = 2;
		a;
	}
	`)
	Resolve(prog)

	outer := findIdentifier(t, prog, "a", 0)
	inner := findIdentifier(t, prog, "a", 1)

	if outer.Resolved.(*Variable) == inner.Resolved.(*Variable) {
		t.Error("expected the block-scoped let to shadow the outer let with a distinct identity")
	}
}

func TestResolveUnboundIdentifierLeftNil(t *testing.T) {
	prog := parseProgram(t, `console;`)
	Resolve(prog)

	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	ident := stmt.Expression.(*ast.Identifier)
	if ident.Resolved != nil {
		t.Error("expected an identifier with no matching declaration to be left unresolved for ambient fallback")
	}
}
