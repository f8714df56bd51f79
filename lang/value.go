package lang

import (
	"math"
	"strconv"
	"strings"

	"github.com/sergev/mica/parser"
)

// ValueType enumerates the different runtime value categories.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeDict
	TypeClosure
	TypeNative

	// typeReturn wraps the operand of a return statement while it unwinds
	// to the nearest function call or top-level statement.
	typeReturn
)

var typeNames = [...]string{
	TypeUndefined: "UNDEFINED",
	TypeNull:      "NULL",
	TypeBool:      "BOOLEAN",
	TypeNumber:    "NUMBER",
	TypeString:    "STRING",
	TypeArray:     "ARRAY",
	TypeDict:      "DICTIONARY",
	TypeClosure:   "FUNCTION",
	TypeNative:    "NATIVE_FUNCTION",
	typeReturn:    "RETURN",
}

// String returns the kind name used in diagnostics.
func (t ValueType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "UNKNOWN"
}

// Value represents any runtime object in the interpreter. Arrays,
// dictionaries and functions are shared by reference.
type Value struct {
	Type    ValueType
	payload interface{}
}

// NativeFunc is the signature of built-in functions.
type NativeFunc func(*Evaluator, []Value) (Value, error)

// Native is a named built-in function.
type Native struct {
	Name string
	Fn   NativeFunc
}

// Closure is a user-defined function with its defining environment.
type Closure struct {
	Params []string
	Body   []parser.Stmt
	Env    *Env
}

// Undefined is the result of statements that produce no value.
var Undefined = Value{Type: TypeUndefined}

// Null is the value of the null literal.
var Null = Value{Type: TypeNull}

// BoolValue returns the boolean Value equivalent.
func BoolValue(b bool) Value {
	return Value{Type: TypeBool, payload: b}
}

// NumberValue constructs a numeric Value.
func NumberValue(f float64) Value {
	return Value{Type: TypeNumber, payload: f}
}

// StringValue constructs a string Value.
func StringValue(s string) Value {
	return Value{Type: TypeString, payload: s}
}

// ArrayValue wraps elems in a new array. The slice is not copied.
func ArrayValue(elems []Value) Value {
	return Value{Type: TypeArray, payload: &Array{Elements: elems}}
}

// DictValue wraps an existing dictionary.
func DictValue(d *Dict) Value {
	return Value{Type: TypeDict, payload: d}
}

// NativeValue wraps a built-in function.
func NativeValue(name string, fn NativeFunc) Value {
	return Value{Type: TypeNative, payload: &Native{Name: name, Fn: fn}}
}

// ClosureValue wraps a closure.
func ClosureValue(params []string, body []parser.Stmt, env *Env) Value {
	return Value{
		Type:    TypeClosure,
		payload: &Closure{Params: params, Body: body, Env: env},
	}
}

func returnValue(v Value) Value {
	return Value{Type: typeReturn, payload: v}
}

func (v Value) isReturn() bool {
	return v.Type == typeReturn
}

// unwrap strips the returning signal, if any.
func unwrap(v Value) Value {
	if inner, ok := v.payload.(Value); ok && v.Type == typeReturn {
		return inner
	}
	return v
}

func (v Value) Bool() bool {
	if b, ok := v.payload.(bool); ok {
		return b
	}
	return false
}

func (v Value) Number() float64 {
	if f, ok := v.payload.(float64); ok {
		return f
	}
	return 0
}

func (v Value) Str() string {
	if s, ok := v.payload.(string); ok {
		return s
	}
	return ""
}

func (v Value) Array() *Array {
	if a, ok := v.payload.(*Array); ok {
		return a
	}
	return nil
}

func (v Value) Dict() *Dict {
	if d, ok := v.payload.(*Dict); ok {
		return d
	}
	return nil
}

func (v Value) Closure() *Closure {
	if c, ok := v.payload.(*Closure); ok {
		return c
	}
	return nil
}

func (v Value) Native() *Native {
	if n, ok := v.payload.(*Native); ok {
		return n
	}
	return nil
}

// Equal reports whether a and b have the same kind and are equal: scalars
// by value, arrays, dictionaries and functions by identity.
func Equal(a, b Value) bool {
	return a.Type == b.Type && a.payload == b.payload
}

// IsTruthy reports whether v selects the then-branch of an if or keeps a
// while loop running. Only the boolean true does.
func IsTruthy(v Value) bool {
	return v.Type == TypeBool && v.Bool()
}

// String renders v the way print and str do. Strings are unquoted at the
// top level.
func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v, false, nil)
	return b.String()
}

// Inspect renders v with strings quoted, as the REPL echoes results.
func (v Value) Inspect() string {
	var b strings.Builder
	writeValue(&b, v, true, nil)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, quote bool, seen map[interface{}]bool) {
	switch v.Type {
	case TypeUndefined:
		b.WriteString("undefined")
	case TypeNull:
		b.WriteString("null")
	case TypeBool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case TypeNumber:
		b.WriteString(formatNumber(v.Number()))
	case TypeString:
		if quote {
			b.WriteString(strconv.Quote(v.Str()))
		} else {
			b.WriteString(v.Str())
		}
	case TypeArray:
		arr := v.Array()
		if seen[arr] {
			b.WriteString("[...]")
			return
		}
		seen = mark(seen, arr)
		b.WriteByte('[')
		for i, elem := range arr.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, elem, true, seen)
		}
		b.WriteByte(']')
		delete(seen, arr)
	case TypeDict:
		d := v.Dict()
		if seen[d] {
			b.WriteString("{...}")
			return
		}
		seen = mark(seen, d)
		b.WriteByte('{')
		for i, key := range d.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, key, true, seen)
			b.WriteString(": ")
			writeValue(b, d.values[i], true, seen)
		}
		b.WriteByte('}')
		delete(seen, d)
	case TypeClosure:
		b.WriteString("FUNCTION_OBJECT(")
		b.WriteString(strings.Join(v.Closure().Params, ", "))
		b.WriteByte(')')
	case TypeNative:
		b.WriteString("NATIVE_FUNCTION(")
		b.WriteString(v.Native().Name)
		b.WriteByte(')')
	case typeReturn:
		writeValue(b, unwrap(v), quote, seen)
	default:
		b.WriteString("<unknown>")
	}
}

func mark(seen map[interface{}]bool, obj interface{}) map[interface{}]bool {
	if seen == nil {
		seen = make(map[interface{}]bool)
	}
	seen[obj] = true
	return seen
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
