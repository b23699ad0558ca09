package stdlib

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/lugli-lang/lugli/internal/object"
)

var globalFunctions map[string]object.NativeFunctionCallback

func init() {
	globalFunctions = map[string]object.NativeFunctionCallback{
		"print":      fnPrint,
		"println":    fnPrintln,
		"len":        fnLen,
		"type":       fnType,
		"range":      fnRange,
		"to_string":  fnToString,
		"to_number":  fnToNumber,
		"assert":     fnAssert,
		"abs":        fnAbs,
		"now":        fnNow,
	}
}

// LookupFunction resolves a global builtin by name.
func LookupFunction(name string) (object.NativeFunctionCallback, bool) {
	fn, ok := globalFunctions[name]
	return fn, ok
}

// FunctionNames lists every global builtin, for typo suggestions.
func FunctionNames() []string {
	names := make([]string, 0, len(globalFunctions))
	for name := range globalFunctions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fnPrint(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	for _, v := range args.Positional() {
		fmt.Print(v.String())
	}
	return object.NullValue, nil
}

func fnPrintln(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	for _, v := range args.Positional() {
		fmt.Println(v.String())
	}
	return object.NullValue, nil
}

func fnLen(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("len", 1, args, false); err != nil {
		return nil, err
	}
	v, _ := args.At(0)
	switch t := object.Unwrap(v).(type) {
	case object.String:
		return object.Number(len(t)), nil
	case *object.List:
		return object.Number(t.Len()), nil
	}
	return nil, fmt.Errorf("len: %s has no length", v.Kind())
}

func fnType(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("type", 1, args, false); err != nil {
		return nil, err
	}
	v, _ := args.At(0)
	return object.String(object.Unwrap(v).Kind().String()), nil
}

func fnRange(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	nums := args.Positional()
	var start, stop, step float64 = 0, 0, 1
	switch len(nums) {
	case 1:
		n, ok := nums[0].(object.Number)
		if !ok {
			return nil, fmt.Errorf("range: expected number arguments")
		}
		stop = float64(n)
	case 2, 3:
		sn, ok1 := nums[0].(object.Number)
		en, ok2 := nums[1].(object.Number)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("range: expected number arguments")
		}
		start, stop = float64(sn), float64(en)
		if len(nums) == 3 {
			stepN, ok := nums[2].(object.Number)
			if !ok {
				return nil, fmt.Errorf("range: expected number arguments")
			}
			step = float64(stepN)
		}
	default:
		return nil, fmt.Errorf("range expects 1 to 3 arguments, got %d", len(nums))
	}
	if step == 0 {
		return nil, fmt.Errorf("range: step must not be zero")
	}

	var items []object.Value
	if step > 0 {
		for v := start; v < stop; v += step {
			items = append(items, object.Number(v))
		}
	} else {
		for v := start; v > stop; v += step {
			items = append(items, object.Number(v))
		}
	}
	return object.NewList(items), nil
}

func fnToString(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("to_string", 1, args, false); err != nil {
		return nil, err
	}
	v, _ := args.At(0)
	return object.String(object.Unwrap(v).String()), nil
}

func fnToNumber(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("to_number", 1, args, false); err != nil {
		return nil, err
	}
	v, _ := args.At(0)
	switch t := object.Unwrap(v).(type) {
	case object.Number:
		return t, nil
	case object.String:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, fmt.Errorf("to_number: cannot parse %q as a number", string(t))
		}
		return object.Number(f), nil
	}
	return nil, fmt.Errorf("to_number: cannot convert %s", v.Kind())
}

func fnAssert(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	positional := args.Positional()
	if len(positional) == 0 {
		return nil, fmt.Errorf("assert expects at least 1 argument, got 0")
	}
	if !positional[0].Truthy() {
		msg := "assertion failed"
		if len(positional) > 1 {
			msg = positional[1].String()
		}
		return nil, fmt.Errorf("%s", msg)
	}
	return object.NullValue, nil
}

func fnNow(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("now", 0, args, false); err != nil {
		return nil, err
	}
	return object.DateTime{Time: time.Now()}, nil
}

func fnAbs(_ object.Interpreter, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("abs", 1, args, false); err != nil {
		return nil, err
	}
	v, _ := args.At(0)
	n, ok := object.Unwrap(v).(object.Number)
	if !ok {
		return nil, fmt.Errorf("abs: expected a number, got %s", v.Kind())
	}
	return object.Number(math.Abs(float64(n))), nil
}
