package runtime

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sergev/mica/lang"
)

func installPrimitives(ev *lang.Evaluator) {
	env := ev.Global
	define := func(name string, fn lang.NativeFunc) {
		env.Define(name, lang.NativeValue(name, fn))
	}

	define("print", primPrint)
	define("len", primLen)
	define("push", primPush)
	define("pop", primPop)
	define("str", primStr)
	define("dict", primDict)
}

func checkArity(name string, args []lang.Value, want int) error {
	if len(args) != want {
		return &lang.ArityError{Name: name, Expected: want, Got: len(args)}
	}
	return nil
}

func expectArray(name string, v lang.Value) (*lang.Array, error) {
	if v.Type != lang.TypeArray {
		return nil, &lang.TypeMismatchError{Op: name, Right: v.Type, Unary: true}
	}
	return v.Array(), nil
}

func primPrint(ev *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	out := ev.Out
	if out == nil {
		out = io.Discard
	}
	if _, err := fmt.Fprintln(out, strings.Join(parts, " ")); err != nil {
		return lang.Value{}, fmt.Errorf("print: %w", err)
	}
	return lang.Null, nil
}

func primLen(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("len", args, 1); err != nil {
		return lang.Value{}, err
	}
	switch v := args[0]; v.Type {
	case lang.TypeString:
		return lang.NumberValue(float64(utf8.RuneCountInString(v.Str()))), nil
	case lang.TypeArray:
		return lang.NumberValue(float64(v.Array().Len())), nil
	case lang.TypeDict:
		return lang.NumberValue(float64(v.Dict().Len())), nil
	default:
		return lang.Value{}, &lang.TypeMismatchError{Op: "len", Right: v.Type, Unary: true}
	}
}

func primPush(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("push", args, 2); err != nil {
		return lang.Value{}, err
	}
	arr, err := expectArray("push", args[0])
	if err != nil {
		return lang.Value{}, err
	}
	arr.Push(args[1])
	return lang.Null, nil
}

func primPop(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return lang.Value{}, &lang.ArityError{Name: "pop", Expected: 1, Got: len(args)}
	}
	arr, err := expectArray("pop", args[0])
	if err != nil {
		return lang.Value{}, err
	}
	if len(args) == 1 {
		return arr.Pop()
	}
	idx := args[1]
	if idx.Type != lang.TypeNumber {
		return lang.Value{}, &lang.TypeMismatchError{Op: "pop", Right: idx.Type, Unary: true}
	}
	i, err := lang.ToIndex(idx, 0)
	if err != nil {
		return lang.Value{}, err
	}
	if arr.Len() == 0 {
		return arr.Pop()
	}
	return arr.PopAt(i)
}

func primStr(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("str", args, 1); err != nil {
		return lang.Value{}, err
	}
	return lang.StringValue(args[0].String()), nil
}

func primDict(_ *lang.Evaluator, args []lang.Value) (lang.Value, error) {
	if err := checkArity("dict", args, 0); err != nil {
		return lang.Value{}, err
	}
	return lang.DictValue(lang.NewDict()), nil
}
