package ambient

import (
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/evalscript/evalscript/evaluator"
)

// newJSON builds the ambient JSON namespace object. parse produces a
// live, mutable Object/Array tree a script can write back into, and
// stringify walks own enumerable data properties in insertion order.
func newJSON() *evaluator.ObjectValue {
	j := evaluator.NewObject(nil)
	j.DefineOwn("parse", dataProp(hostFn("JSON.parse", jsonParse)))
	j.DefineOwn("stringify", dataProp(hostFn("JSON.stringify", jsonStringify)))
	return j
}

func jsonParse(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
	if len(args) == 0 {
		return nil, evaluator.NewError("SyntaxError", "JSON.parse requires a string argument")
	}
	dec := json.NewDecoder(strings.NewReader(evaluator.ToStringValue(args[0])))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, evaluator.NewError("SyntaxError", "invalid JSON: %s", err.Error())
	}
	return v, nil
}

// decodeJSONValue walks the token stream by hand rather than unmarshalling
// into map[string]interface{}, which would lose key order (Go maps have
// none) and violate the object model's "insertion order preserved"
// invariant.
func decodeJSONValue(dec *json.Decoder) (evaluator.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := evaluator.NewObject(nil)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.DefineOwn(keyTok.(string), &evaluator.PropertyDescriptor{
					Value: val, Enumerable: true, Writable: true, Configurable: true,
				})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := evaluator.NewArray()
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Elements = append(arr.Elements, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		}
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return evaluator.NumberValue(f), nil
	case string:
		return evaluator.StringValue(t), nil
	case bool:
		return evaluator.BooleanValue(t), nil
	case nil:
		return evaluator.Null, nil
	}
	return evaluator.Undefined, nil
}

func jsonStringify(args []evaluator.Value) (evaluator.Value, evaluator.Value) {
	if len(args) == 0 || evaluator.IsUndefined(args[0]) {
		return evaluator.Undefined, nil
	}
	indent := ""
	if len(args) > 2 {
		switch w := args[2].(type) {
		case evaluator.NumberValue:
			indent = strings.Repeat(" ", int(w))
		case evaluator.StringValue:
			indent = string(w)
		}
	}
	var buf strings.Builder
	if err := writeJSONValue(&buf, args[0], indent, ""); err != nil {
		return nil, evaluator.NewError("TypeError", "cannot stringify value: %s", err.Error())
	}
	return evaluator.StringValue(buf.String()), nil
}

func writeJSONValue(w io.StringWriter, v evaluator.Value, indent, prefix string) error {
	switch t := v.(type) {
	case *evaluator.ObjectValue:
		return writeJSONObject(w, t, indent, prefix)
	case *evaluator.ArrayValue:
		return writeJSONArray(w, t, indent, prefix)
	case evaluator.StringValue:
		enc, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		_, err = w.WriteString(string(enc))
		return err
	case evaluator.BooleanValue:
		if t {
			_, err := w.WriteString("true")
			return err
		}
		_, err := w.WriteString("false")
		return err
	case evaluator.NumberValue:
		f := float64(t)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			_, err := w.WriteString("null")
			return err
		}
		_, err := w.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		return err
	default:
		if evaluator.IsNull(v) {
			_, err := w.WriteString("null")
			return err
		}
		// any other value (a top-level function, a class, a regexp)
		// serializes as null. Function and undefined members are skipped by
		// writeJSONObject and turned into null by writeJSONArray before
		// reaching here; a top-level undefined never gets here.
		_, err := w.WriteString("null")
		return err
	}
}

func writeJSONObject(w io.StringWriter, obj *evaluator.ObjectValue, indent, prefix string) error {
	type kv struct {
		key string
		val evaluator.Value
	}
	var pairs []kv
	for _, k := range obj.OwnEnumerableKeys() {
		d, _ := obj.OwnProperty(k)
		if d.Get != nil || d.Set != nil {
			continue // accessor properties need a live call to resolve; skipped here
		}
		if evaluator.IsUndefined(d.Value) {
			continue
		}
		if _, isFn := d.Value.(*evaluator.FunctionValue); isFn {
			continue
		}
		pairs = append(pairs, kv{k, d.Value})
	}
	if len(pairs) == 0 {
		_, err := w.WriteString("{}")
		return err
	}
	if _, err := w.WriteString("{"); err != nil {
		return err
	}
	childPrefix := prefix + indent
	for i, p := range pairs {
		if i > 0 {
			if _, err := w.WriteString(","); err != nil {
				return err
			}
		}
		if indent != "" {
			if _, err := w.WriteString("\n" + childPrefix); err != nil {
				return err
			}
		}
		keyEnc, err := json.Marshal(p.key)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(string(keyEnc) + ":"); err != nil {
			return err
		}
		if indent != "" {
			if _, err := w.WriteString(" "); err != nil {
				return err
			}
		}
		if err := writeJSONValue(w, p.val, indent, childPrefix); err != nil {
			return err
		}
	}
	if indent != "" {
		if _, err := w.WriteString("\n" + prefix); err != nil {
			return err
		}
	}
	_, err := w.WriteString("}")
	return err
}

func writeJSONArray(w io.StringWriter, arr *evaluator.ArrayValue, indent, prefix string) error {
	if len(arr.Elements) == 0 {
		_, err := w.WriteString("[]")
		return err
	}
	if _, err := w.WriteString("["); err != nil {
		return err
	}
	childPrefix := prefix + indent
	for i, el := range arr.Elements {
		if i > 0 {
			if _, err := w.WriteString(","); err != nil {
				return err
			}
		}
		if indent != "" {
			if _, err := w.WriteString("\n" + childPrefix); err != nil {
				return err
			}
		}
		v := el
		if evaluator.IsUndefined(v) {
			v = evaluator.Null
		}
		if _, isFn := v.(*evaluator.FunctionValue); isFn {
			v = evaluator.Null
		}
		if err := writeJSONValue(w, v, indent, childPrefix); err != nil {
			return err
		}
	}
	if indent != "" {
		if _, err := w.WriteString("\n" + prefix); err != nil {
			return err
		}
	}
	_, err := w.WriteString("]")
	return err
}
