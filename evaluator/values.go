// Package evaluator implements the tree-walking evaluator: the value
// model, the binding store, and the per-node-kind evaluation rules.
package evaluator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/evalscript/evalscript/ast"
)

// Value is implemented by every runtime value the evaluator produces or
// consumes.
type Value interface {
	Type() string
	String() string
}

// NumberValue is the sole numeric type.
type NumberValue float64

func (NumberValue) Type() string { return "number" }
func (n NumberValue) String() string {
	f := float64(n)
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

type StringValue string

func (StringValue) Type() string     { return "string" }
func (s StringValue) String() string { return string(s) }

type BooleanValue bool

func (BooleanValue) Type() string     { return "boolean" }
func (b BooleanValue) String() string { return strconv.FormatBool(bool(b)) }

// nullValue and undefinedValue are singletons.
type nullValue struct{}

func (*nullValue) Type() string   { return "object" }
func (*nullValue) String() string { return "null" }

type undefinedValue struct{}

func (*undefinedValue) Type() string   { return "undefined" }
func (*undefinedValue) String() string { return "undefined" }

var (
	Null      Value = &nullValue{}
	Undefined Value = &undefinedValue{}
)

// IsNull and IsUndefined let callers compare against the singletons without
// importing the unexported concrete types.
func IsNull(v Value) bool      { _, ok := v.(*nullValue); return ok }
func IsUndefined(v Value) bool { _, ok := v.(*undefinedValue); return ok }

// RegExpValue is a compiled regular expression literal: pattern plus flags.
type RegExpValue struct {
	Pattern  string
	Flags    string
	Compiled *regexp.Regexp
}

func (*RegExpValue) Type() string { return "object" }
func (r *RegExpValue) String() string {
	return "/" + r.Pattern + "/" + r.Flags
}

// ArrayValue is an ordered sequence; elided elements (holes) are stored as
// Null.
type ArrayValue struct {
	Elements []Value
}

func NewArray(elems ...Value) *ArrayValue { return &ArrayValue{Elements: elems} }

func (*ArrayValue) Type() string { return "object" }
func (a *ArrayValue) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if IsUndefined(e) || IsNull(e) {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

// PropertyDescriptor is either a data property (Value set) or an accessor
// property (Get/Set set).
type PropertyDescriptor struct {
	Value        Value
	Get          *FunctionValue
	Set          *FunctionValue
	Enumerable   bool
	Writable     bool
	Configurable bool
}

func (d *PropertyDescriptor) isAccessor() bool { return d.Get != nil || d.Set != nil }

// ObjectValue is an ordered property map ("Object: ordered property
// map"). keys preserves insertion order for enumeration (for-in, JSON
// serialization, console formatting). Proto is the parent object in the
// prototype chain; Class is set when this object is a class instance.
type ObjectValue struct {
	keys  []string
	props map[string]*PropertyDescriptor
	Proto *ObjectValue
	Class *ClassValue

	// ErrorName is non-empty when this object represents a thrown runtime
	// error (TypeError, ReferenceError, ...); see errors.go.
	ErrorName string
}

func NewObject(proto *ObjectValue) *ObjectValue {
	return &ObjectValue{props: map[string]*PropertyDescriptor{}, Proto: proto}
}

func (*ObjectValue) Type() string { return "object" }

func (o *ObjectValue) String() string {
	if o.ErrorName != "" {
		return o.ErrorName + ": " + o.getMessage()
	}
	parts := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		d := o.props[k]
		if d.isAccessor() {
			parts = append(parts, k+": [accessor]")
			continue
		}
		parts = append(parts, k+": "+describe(d.Value))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func describe(v Value) string {
	if s, ok := v.(StringValue); ok {
		return "\"" + string(s) + "\""
	}
	return v.String()
}

func (o *ObjectValue) getMessage() string {
	if d, ok := o.OwnProperty("message"); ok && d.Value != nil {
		return d.Value.String()
	}
	return ""
}

// OwnProperty reports the descriptor declared directly on o, not inherited.
func (o *ObjectValue) OwnProperty(name string) (*PropertyDescriptor, bool) {
	d, ok := o.props[name]
	return d, ok
}

// Lookup walks the prototype chain and returns the first matching
// descriptor along with the object it was found on.
func (o *ObjectValue) Lookup(name string) (*PropertyDescriptor, *ObjectValue) {
	for cur := o; cur != nil; cur = cur.Proto {
		if d, ok := cur.props[name]; ok {
			return d, cur
		}
	}
	return nil, nil
}

// DefineOwn installs or replaces a property descriptor directly on o,
// preserving first-insertion key order.
func (o *ObjectValue) DefineOwn(name string, d *PropertyDescriptor) {
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	o.props[name] = d
}

// Set assigns name on o: if an accessor (own or inherited) exists its
// setter runs, otherwise an own writable data property is created or
// updated. call invokes a FunctionValue against (this, args); the
// evaluator passes its own callValue.
func (o *ObjectValue) Set(name string, v Value, call func(fn *FunctionValue, this Value, args []Value) (Value, Value)) {
	if d, _ := o.Lookup(name); d != nil && d.isAccessor() {
		if d.Set != nil {
			call(d.Set, o, []Value{v})
		}
		return
	}
	if d, ok := o.props[name]; ok {
		d.Value = v
		return
	}
	o.DefineOwn(name, &PropertyDescriptor{Value: v, Enumerable: true, Writable: true, Configurable: true})
}

// Get reads name: own or inherited data property value, or the result of
// an accessor's getter.
func (o *ObjectValue) Get(name string, call func(fn *FunctionValue, this Value, args []Value) (Value, Value)) Value {
	d, _ := o.Lookup(name)
	if d == nil {
		return Undefined
	}
	if d.isAccessor() {
		if d.Get == nil {
			return Undefined
		}
		v, _ := call(d.Get, o, nil)
		return v
	}
	return d.Value
}

// Delete removes an own property, returning whether it existed.
func (o *ObjectValue) Delete(name string) bool {
	if _, ok := o.props[name]; !ok {
		return false
	}
	delete(o.props, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnEnumerableKeys returns this object's own enumerable keys in insertion
// order (for-in enumerates own enumerable keys only, no
// inherited-property walk).
func (o *ObjectValue) OwnEnumerableKeys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if o.props[k].Enumerable {
			out = append(out, k)
		}
	}
	return out
}

// FunctionKind distinguishes the call-time binding rules a Callable uses.
type FunctionKind int

const (
	KindFunction FunctionKind = iota
	KindArrow
	KindMethod
	KindConstructor
	KindHost
)

// FunctionValue is a Callable: either an interpreter-defined function,
// arrow, method, or constructor, or a host function wrapping Go code.
type FunctionValue struct {
	Name     string
	Kind     FunctionKind
	Params   []*ast.Param
	Body     *ast.BlockStatement
	ExprBody ast.Expression
	Closure  *Environment
	// LexicalContext is the captured ContextRecord for arrow functions: at
	// call time it is re-pushed verbatim instead of a fresh receiver frame.
	LexicalContext *ContextRecord
	Prototype      *ObjectValue // function.prototype, used by `new`
	Home           *ObjectValue // object/class this method was defined on
	Host           func(this Value, args []Value) (Value, Value)
}

func (*FunctionValue) Type() string { return "function" }
func (f *FunctionValue) String() string {
	if f.Name == "" {
		return "function () { [code] }"
	}
	return fmt.Sprintf("function %s() { [code] }", f.Name)
}

// ClassValue: constructor + prototype + statics + parent link.
type ClassValue struct {
	Name           string
	Constructor    *FunctionValue
	Prototype      *ObjectValue
	Statics        *ObjectValue
	Parent         *ClassValue
	InstanceFields []instanceField
}

func (*ClassValue) Type() string     { return "function" }
func (c *ClassValue) String() string { return "class " + c.Name + " { ... }" }

// ContextRecord is one entry of the context stack: the active `this`
// receiver plus the ambient host bindings visible while it is active.
type ContextRecord struct {
	This    Value
	Ambient *ObjectValue
}
