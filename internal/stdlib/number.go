package stdlib

import (
	"fmt"
	"math"

	"github.com/lugli-lang/lugli/internal/object"
)

var numberMethods map[string]object.NativeMethodCallback

func init() {
	numberMethods = map[string]object.NativeMethodCallback{
		"round":     numRound,
		"floor":     numFloor,
		"ceil":      numCeil,
		"abs":       numAbs,
		"sqrt":      numSqrt,
		"to_string": numToString,
		"pow":       numPow,
		"min":       numMin,
		"max":       numMax,
	}
}

// LookupNumberMethod resolves a method name against a Number receiver.
func LookupNumberMethod(name string) (object.NativeMethodCallback, bool) {
	m, ok := numberMethods[name]
	return m, ok
}

// NumberMethodNames lists every Number method, for typo suggestions.
func NumberMethodNames() []string {
	return sortedKeys(numberMethods)
}

func receiverNumber(r object.Value) float64 {
	return float64(object.Unwrap(r).(object.Number))
}

func numRound(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("round", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(math.Round(receiverNumber(r))), nil
}

func numFloor(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("floor", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(math.Floor(receiverNumber(r))), nil
}

func numCeil(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("ceil", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(math.Ceil(receiverNumber(r))), nil
}

func numAbs(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("abs", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(math.Abs(receiverNumber(r))), nil
}

func numSqrt(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("sqrt", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(math.Sqrt(receiverNumber(r))), nil
}

func numToString(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("to_string", 0, args, false); err != nil {
		return nil, err
	}
	return object.String(object.Unwrap(r).String()), nil
}

func numPow(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("pow", 1, args, false); err != nil {
		return nil, err
	}
	expVal, _ := args.At(0)
	exp, ok := object.Unwrap(expVal).(object.Number)
	if !ok {
		return nil, fmt.Errorf("pow: expected a number")
	}
	return object.Number(math.Pow(receiverNumber(r), float64(exp))), nil
}

func numMin(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("min", 1, args, false); err != nil {
		return nil, err
	}
	otherVal, _ := args.At(0)
	other, ok := object.Unwrap(otherVal).(object.Number)
	if !ok {
		return nil, fmt.Errorf("min: expected a number")
	}
	return object.Number(math.Min(receiverNumber(r), float64(other))), nil
}

func numMax(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("max", 1, args, false); err != nil {
		return nil, err
	}
	otherVal, _ := args.At(0)
	other, ok := object.Unwrap(otherVal).(object.Number)
	if !ok {
		return nil, fmt.Errorf("max: expected a number")
	}
	return object.Number(math.Max(receiverNumber(r), float64(other))), nil
}
