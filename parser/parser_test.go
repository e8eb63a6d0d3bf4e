package parser

import (
	"testing"

	"github.com/evalscript/evalscript/ast"
	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/token"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parser errors for %q: %v", input, errs)
	}
	return prog
}

func TestParseDeclarationStatements(t *testing.T) {
	tests := []struct {
		input       string
		wantKind    token.Type
		wantName    string
		wantLiteral string
	}{
		{"let x = 5;", token.LET, "x", "5"},
		{"const y = 10;", token.CONST, "y", "10"},
		{"var foo = 838383;", token.VAR, "foo", "838383"},
	}

	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		if len(prog.Statements) != 1 {
			t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
		}
		stmt, ok := prog.Statements[0].(*ast.DeclarationStatement)
		if !ok {
			t.Fatalf("expected *ast.DeclarationStatement, got %T", prog.Statements[0])
		}
		if stmt.Kind != tt.wantKind {
			t.Errorf("expected kind %q, got %q", tt.wantKind, stmt.Kind)
		}
		if len(stmt.Declarators) != 1 {
			t.Fatalf("expected 1 declarator, got %d", len(stmt.Declarators))
		}
		if stmt.Declarators[0].Name.Name != tt.wantName {
			t.Errorf("expected name %q, got %q", tt.wantName, stmt.Declarators[0].Name.Name)
		}
		if lit, ok := stmt.Declarators[0].Init.(*ast.NumberLiteral); !ok || lit.TokenLiteral() != tt.wantLiteral {
			t.Errorf("expected init literal %q, got %v", tt.wantLiteral, stmt.Declarators[0].Init)
		}
	}
}

func TestParseReturnStatement(t *testing.T) {
	prog := parseProgram(t, "return 5;")
	if len(prog.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Statements))
	}
	stmt, ok := prog.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("expected *ast.ReturnStatement, got %T", prog.Statements[0])
	}
	if stmt.TokenLiteral() != "return" {
		t.Errorf("expected token literal %q, got %q", "return", stmt.TokenLiteral())
	}
}

func TestParseIdentifierExpression(t *testing.T) {
	prog := parseProgram(t, "foobar;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	ident, ok := stmt.Expression.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected *ast.Identifier, got %T", stmt.Expression)
	}
	if ident.Name != "foobar" {
		t.Errorf("expected name %q, got %q", "foobar", ident.Name)
	}
}

func TestParseNumberLiteralExpression(t *testing.T) {
	prog := parseProgram(t, "5;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	lit, ok := stmt.Expression.(*ast.NumberLiteral)
	if !ok {
		t.Fatalf("expected *ast.NumberLiteral, got %T", stmt.Expression)
	}
	if lit.Value != 5 {
		t.Errorf("expected value 5, got %v", lit.Value)
	}
}

func TestParsePrefixExpressions(t *testing.T) {
	tests := []struct {
		input    string
		operator string
	}{
		{"!5;", "!"},
		{"-15;", "-"},
		{"typeof x;", "typeof"},
	}

	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		exp, ok := stmt.Expression.(*ast.PrefixExpression)
		if !ok {
			t.Fatalf("for %q: expected *ast.PrefixExpression, got %T", tt.input, stmt.Expression)
		}
		if exp.Operator != tt.operator {
			t.Errorf("for %q: expected operator %q, got %q", tt.input, tt.operator, exp.Operator)
		}
	}
}

func TestParseInfixExpressions(t *testing.T) {
	tests := []struct {
		input      string
		leftValue  float64
		operator   string
		rightValue float64
	}{
		{"5 + 5;", 5, "+", 5},
		{"5 - 5;", 5, "-", 5},
		{"5 * 5;", 5, "*", 5},
		{"5 / 5;", 5, "/", 5},
		{"5 > 5;", 5, ">", 5},
		{"5 < 5;", 5, "<", 5},
		{"5 == 5;", 5, "==", 5},
		{"5 != 5;", 5, "!=", 5},
	}

	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		exp, ok := stmt.Expression.(*ast.InfixExpression)
		if !ok {
			t.Fatalf("for %q: expected *ast.InfixExpression, got %T", tt.input, stmt.Expression)
		}
		left := exp.Left.(*ast.NumberLiteral)
		right := exp.Right.(*ast.NumberLiteral)
		if left.Value != tt.leftValue || exp.Operator != tt.operator || right.Value != tt.rightValue {
			t.Errorf("for %q: got %v %s %v", tt.input, left.Value, exp.Operator, right.Value)
		}
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"-a * b", "((-a) * b)"},
		{"!-a", "(!(-a))"},
		{"a + b + c", "((a + b) + c)"},
		{"a + b - c", "((a + b) - c)"},
		{"a * b * c", "((a * b) * c)"},
		{"a + b * c", "(a + (b * c))"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
		{"3 + 4; -5 * 5", "(3 + 4)\n((-5) * 5)\n"},
		{"5 > 4 == 3 < 4", "((5 > 4) == (3 < 4))"},
		{"5 < 4 != 3 > 4", "((5 < 4) != (3 > 4))"},
		{"3 + 4 * 5 == 3 * 1 + 4 * 5", "((3 + (4 * 5)) == ((3 * 1) + (4 * 5)))"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"(5 + 5) * 2", "((5 + 5) * 2)"},
		{"a + b * c + d / e - f", "(((a + (b * c)) + (d / e)) - f)"},
	}

	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		got := prog.String()
		if tt.input == "3 + 4; -5 * 5" {
			if got != tt.expected {
				t.Errorf("for %q: expected %q, got %q", tt.input, tt.expected, got)
			}
			continue
		}
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		if stmt.Expression.String() != tt.expected {
			t.Errorf("for %q: expected %q, got %q", tt.input, tt.expected, stmt.Expression.String())
		}
	}
}

func TestParseBooleanLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"true;", true},
		{"false;", false},
	}
	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		b, ok := stmt.Expression.(*ast.BooleanLiteral)
		if !ok {
			t.Fatalf("expected *ast.BooleanLiteral, got %T", stmt.Expression)
		}
		if b.Value != tt.expected {
			t.Errorf("expected %v, got %v", tt.expected, b.Value)
		}
	}
}

func TestParseIfElseExpression(t *testing.T) {
	prog := parseProgram(t, "if (x < y) { x; } else { y; }")
	stmt := prog.Statements[0].(*ast.IfStatement)
	if stmt.Alternate == nil {
		t.Fatal("expected non-nil Alternate")
	}
	cons, ok := stmt.Consequent.(*ast.BlockStatement)
	if !ok || len(cons.Statements) != 1 {
		t.Fatalf("expected a single-statement consequent block, got %#v", stmt.Consequent)
	}
}

func TestParseFunctionLiteral(t *testing.T) {
	prog := parseProgram(t, "let f = function(x, y) { return x + y; };")
	stmt := prog.Statements[0].(*ast.DeclarationStatement)
	fn, ok := stmt.Declarators[0].Init.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected *ast.FunctionLiteral, got %T", stmt.Declarators[0].Init)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name.Name != "x" || fn.Params[1].Name.Name != "y" {
		t.Errorf("unexpected param names: %q %q", fn.Params[0].Name.Name, fn.Params[1].Name.Name)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
}

func TestParseArrowFunctionConciseBody(t *testing.T) {
	prog := parseProgram(t, "x => x * 2;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	fn, ok := stmt.Expression.(*ast.FunctionLiteral)
	if !ok || !fn.Arrow {
		t.Fatalf("expected an arrow *ast.FunctionLiteral, got %T", stmt.Expression)
	}
	if fn.ExprBody == nil {
		t.Fatal("expected a non-nil concise ExprBody")
	}
}

func TestParseCallExpressionArguments(t *testing.T) {
	prog := parseProgram(t, "add(1, 2 * 3, 4 + 5);")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected *ast.CallExpression, got %T", stmt.Expression)
	}
	if callee, ok := call.Callee.(*ast.Identifier); !ok || callee.Name != "add" {
		t.Errorf("unexpected callee: %#v", call.Callee)
	}
	if len(call.Arguments) != 3 {
		t.Fatalf("expected 3 arguments, got %d", len(call.Arguments))
	}
}

func TestParseMemberExpressions(t *testing.T) {
	prog := parseProgram(t, "a.b[c];")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	outer, ok := stmt.Expression.(*ast.MemberExpression)
	if !ok || !outer.Computed {
		t.Fatalf("expected computed outer member expression, got %#v", stmt.Expression)
	}
	inner, ok := outer.Object.(*ast.MemberExpression)
	if !ok || inner.Computed {
		t.Fatalf("expected non-computed inner member expression, got %#v", outer.Object)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	prog := parseProgram(t, "[1, 2 * 2, 3 + 3];")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	arr, ok := stmt.Expression.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayLiteral, got %T", stmt.Expression)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(arr.Elements))
	}
}

func TestParseObjectLiteral(t *testing.T) {
	prog := parseProgram(t, `let o = {"one": 1, "two": 2, "three": 3};`)
	stmt := prog.Statements[0].(*ast.DeclarationStatement)
	obj, ok := stmt.Declarators[0].Init.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("expected *ast.ObjectLiteral, got %T", stmt.Declarators[0].Init)
	}
	if len(obj.Properties) != 3 {
		t.Fatalf("expected 3 properties, got %d", len(obj.Properties))
	}
}

func TestParseClassDeclaration(t *testing.T) {
	input := `
	class Animal {
		constructor(name) { this.name = name; }
		speak() { return this.name; }
		get label() { return this.name; }
		static make(name) { return new Animal(name); }
	}
	`
	prog := parseProgram(t, input)
	stmt, ok := prog.Statements[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("expected *ast.ClassDeclaration, got %T", prog.Statements[0])
	}
	if stmt.Class.Name.Name != "Animal" {
		t.Errorf("expected class name %q, got %q", "Animal", stmt.Class.Name.Name)
	}
	if len(stmt.Class.Members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(stmt.Class.Members))
	}
}

func TestParseClassExtends(t *testing.T) {
	prog := parseProgram(t, "class Square extends Shape { }")
	stmt := prog.Statements[0].(*ast.ClassDeclaration)
	parent, ok := stmt.Class.Parent.(*ast.Identifier)
	if !ok || parent.Name != "Shape" {
		t.Fatalf("expected parent identifier %q, got %#v", "Shape", stmt.Class.Parent)
	}
}

func TestParseNewExpression(t *testing.T) {
	prog := parseProgram(t, "new Animal(\"Rex\");")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	n, ok := stmt.Expression.(*ast.NewExpression)
	if !ok {
		t.Fatalf("expected *ast.NewExpression, got %T", stmt.Expression)
	}
	if len(n.Arguments) != 1 {
		t.Fatalf("expected 1 argument, got %d", len(n.Arguments))
	}
}

func TestParseForStatement(t *testing.T) {
	prog := parseProgram(t, "for (let i = 0; i < 10; i = i + 1) { sum = sum + i; }")
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("expected *ast.ForStatement, got %T", prog.Statements[0])
	}
	if stmt.Init == nil || stmt.Test == nil || stmt.Update == nil {
		t.Fatal("expected non-nil init/test/update clauses")
	}
}

func TestParseForOfAndForIn(t *testing.T) {
	tests := []struct {
		input string
		of    bool
	}{
		{"for (let x of arr) { sum = sum + x; }", true},
		{"for (let k in obj) { keys = keys + k; }", false},
	}
	for _, tt := range tests {
		prog := parseProgram(t, tt.input)
		stmt, ok := prog.Statements[0].(*ast.ForInStatement)
		if !ok {
			t.Fatalf("for %q: expected *ast.ForInStatement, got %T", tt.input, prog.Statements[0])
		}
		if stmt.Of != tt.of {
			t.Errorf("for %q: expected Of=%v, got %v", tt.input, tt.of, stmt.Of)
		}
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	input := `
	try {
		throw "x";
	} catch (e) {
		out = e;
	} finally {
		cleaned = true;
	}
	`
	prog := parseProgram(t, input)
	stmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("expected *ast.TryStatement, got %T", prog.Statements[0])
	}
	if stmt.CatchParam == nil || stmt.CatchBody == nil || stmt.FinallyBody == nil {
		t.Fatal("expected catch param, catch body, and finally body to all be present")
	}
}

func TestParseTemplateLiteral(t *testing.T) {
	prog := parseProgram(t, "`hello ${name}!`;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	tmpl, ok := stmt.Expression.(*ast.TemplateLiteral)
	if !ok {
		t.Fatalf("expected *ast.TemplateLiteral, got %T", stmt.Expression)
	}
	if len(tmpl.Expressions) != 1 {
		t.Fatalf("expected 1 interpolated expression, got %d", len(tmpl.Expressions))
	}
}

func TestParseTernary(t *testing.T) {
	prog := parseProgram(t, "a ? b : c;")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	cond, ok := stmt.Expression.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("expected *ast.ConditionalExpression, got %T", stmt.Expression)
	}
	if cond.Consequent == nil || cond.Alternate == nil {
		t.Fatal("expected non-nil consequent and alternate")
	}
}

func TestParseSpreadInCallAndArray(t *testing.T) {
	prog := parseProgram(t, "f(...args); [1, ...rest];")
	call := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	if _, ok := call.Arguments[0].(*ast.SpreadElement); !ok {
		t.Fatalf("expected *ast.SpreadElement argument, got %T", call.Arguments[0])
	}
	arr := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.ArrayLiteral)
	if _, ok := arr.Elements[1].(*ast.SpreadElement); !ok {
		t.Fatalf("expected *ast.SpreadElement element, got %T", arr.Elements[1])
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	tests := []string{"a += 1;", "a -= 1;", "a *= 2;", "a /= 2;", "a %= 2;", "a **= 2;"}
	for _, input := range tests {
		prog := parseProgram(t, input)
		stmt := prog.Statements[0].(*ast.ExpressionStatement)
		if _, ok := stmt.Expression.(*ast.AssignmentExpression); !ok {
			t.Fatalf("for %q: expected *ast.AssignmentExpression, got %T", input, stmt.Expression)
		}
	}
}

func TestParseUpdateExpressions(t *testing.T) {
	prog := parseProgram(t, "i++; ++i;")
	post := prog.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.UpdateExpression)
	if post.Prefix {
		t.Error("expected postfix update for i++")
	}
	pre := prog.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.UpdateExpression)
	if !pre.Prefix {
		t.Error("expected prefix update for ++i")
	}
}
