package evaluator

import (
	"fmt"
	"os"
	"testing"

	"github.com/evalscript/evalscript/lexer"
	"github.com/evalscript/evalscript/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// fixture is one named end-to-end source snippet: source text in, the
// final expression's printed value out. Covers the representative
// scenarios the language is expected to support.
type fixture struct {
	name   string
	source string
}

var fixtures = []fixture{
	{"nested_member_access", `let a = {b: 2, c: {ca: "hello"}}; a.c.ca;`},
	{"break_in_nested_loop", `
		let total = 0;
		for (let i = 0; i < 3; i = i + 1) {
			for (let j = 0; j < 3; j = j + 1) {
				if (j == 1) { break; }
				total = total + 1;
			}
		}
		total;
	`},
	{"function_return", `function a() { return 2; } a();`},
	{"method_this_binding", `
		let obj = { value: 42, getValue: function() { return this.value; } };
		obj.getValue() == 42;
	`},
	{"getter_setter_roundtrip", `
		let box = {
			_value: 30,
			get value() { return this._value; },
			set value(v) { this._value = v + 1; }
		};
		box.value = 31;
		box.value;
	`},
	{"early_return_in_if_runs_finally", `
		function f() {
			let out = "";
			try {
				if (true) {
					out = "in";
					return out;
				}
			} finally {
				out = out + ":finally";
			}
			return out;
		}
		f();
	`},
	{"class_inheritance", `
		class Shape {
			sides = 0;
			describe() { return "sides:" + this.sides; }
		}
		class Square extends Shape {
			sides = 4;
		}
		new Square().describe();
	`},
	{"closures_capture_mutable_cell", `
		function makeCounter() {
			let count = 0;
			return function() { count = count + 1; return count; };
		}
		let counter = makeCounter();
		counter(); counter(); counter();
	`},
	{"array_higher_order_chain", `
		[1, 2, 3, 4].filter(function(x) { return x % 2 == 0; })
			.map(function(x) { return x * 10; })
			.reduce(function(acc, x) { return acc + x; }, 0);
	`},
	{"template_literal_interpolation", "let name = \"world\"; `hello ${name}, ${1 + 1} times`;"},
	{"spread_into_call", `
		function sum3(a, b, c) { return a + b + c; }
		let args = [1, 2, 3];
		sum3(...args);
	`},
	{"for_of_and_for_in", `
		let obj = {a: 1, b: 2};
		let sum = 0;
		for (let x of [1, 2, 3]) { sum = sum + x; }
		let keys = "";
		for (let k in obj) { keys = keys + k; }
		keys + ":" + sum;
	`},
	{"try_catch_recovers", `
		let out = "";
		try { throw "boom"; } catch (e) { out = "caught:" + e; }
		out;
	`},
	{"ternary_and_typeof", `typeof (1 < 2 ? "yes" : "no") + ":" + (1 < 2 ? "yes" : "no");`},
}

func TestFixtures(t *testing.T) {
	for _, fx := range fixtures {
		t.Run(fx.name, func(t *testing.T) {
			l := lexer.New(fx.source)
			p := parser.New(l)
			prog := p.ParseProgram()
			if errs := p.Errors(); len(errs) > 0 {
				t.Fatalf("parse error: %v", errs[0])
			}

			e := New(nil)
			result := e.Run(prog)

			var out string
			if result.Kind == Throw {
				out = fmt.Sprintf("throw: %s", result.Value.String())
			} else {
				out = result.Value.String()
			}
			snaps.MatchSnapshot(t, out)
		})
	}
}

// TestMain lets go-snaps prune snapshots that no longer correspond to a
// fixture once the whole package's tests have run.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}
