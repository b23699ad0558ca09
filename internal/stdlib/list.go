package stdlib

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lugli-lang/lugli/internal/object"
)

var listMethods map[string]object.NativeMethodCallback

func init() {
	listMethods = map[string]object.NativeMethodCallback{
		"push":     listPush,
		"pop":      listPop,
		"len":      listLen,
		"join":     listJoin,
		"contains": listContains,
		"index_of": listIndexOf,
		"map":      listMap,
		"filter":   listFilter,
		"reduce":   listReduce,
		"reverse":  listReverse,
		"sort":     listSort,
	}
}

// LookupListMethod resolves a method name against a List receiver.
func LookupListMethod(name string) (object.NativeMethodCallback, bool) {
	m, ok := listMethods[name]
	return m, ok
}

// ListMethodNames lists every List method, for typo suggestions.
func ListMethodNames() []string {
	return sortedKeys(listMethods)
}

func receiverList(r object.Value) *object.List { return object.Unwrap(r).(*object.List) }

func listPush(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	positional := args.Positional()
	if len(positional) == 0 {
		return nil, fmt.Errorf("push expects at least 1 argument, got 0")
	}
	l := receiverList(r)
	for _, v := range positional {
		l.Append(v)
	}
	return l, nil
}

func listPop(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("pop", 0, args, false); err != nil {
		return nil, err
	}
	l := receiverList(r)
	n := l.Len()
	if n == 0 {
		return nil, fmt.Errorf("pop: list is empty")
	}
	last, _ := l.Get(n - 1)
	items := l.Items()[:n-1]
	*l = *object.NewList(items)
	return last, nil
}

func listLen(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("len", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(receiverList(r).Len()), nil
}

func listJoin(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("join", 1, args, false); err != nil {
		return nil, err
	}
	sepVal, _ := args.At(0)
	sep, ok := object.Unwrap(sepVal).(object.String)
	if !ok {
		return nil, fmt.Errorf("join: expected a string separator")
	}
	items := receiverList(r).Items()
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = v.String()
	}
	return object.String(strings.Join(parts, string(sep))), nil
}

func listContains(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("contains", 1, args, false); err != nil {
		return nil, err
	}
	needle, _ := args.At(0)
	for _, v := range receiverList(r).Items() {
		if object.Equal(v, needle) {
			return object.Bool(true), nil
		}
	}
	return object.Bool(false), nil
}

func listIndexOf(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("index_of", 1, args, false); err != nil {
		return nil, err
	}
	needle, _ := args.At(0)
	for i, v := range receiverList(r).Items() {
		if object.Equal(v, needle) {
			return object.Number(i), nil
		}
	}
	return object.Number(-1), nil
}

func listMap(interp object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("map", 1, args, false); err != nil {
		return nil, err
	}
	fn, _ := args.At(0)
	items := receiverList(r).Items()
	out := make([]object.Value, len(items))
	for i, v := range items {
		result, err := interp.Call(fn, object.ArgumentValues{{Value: v}})
		if err != nil {
			return nil, err
		}
		out[i] = result
	}
	return object.NewList(out), nil
}

func listFilter(interp object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("filter", 1, args, false); err != nil {
		return nil, err
	}
	fn, _ := args.At(0)
	var out []object.Value
	for _, v := range receiverList(r).Items() {
		result, err := interp.Call(fn, object.ArgumentValues{{Value: v}})
		if err != nil {
			return nil, err
		}
		if result.Truthy() {
			out = append(out, v)
		}
	}
	return object.NewList(out), nil
}

func listReduce(interp object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	positional := args.Positional()
	if len(positional) != 2 {
		return nil, fmt.Errorf("reduce expects 2 arguments, got %d", len(positional))
	}
	fn := positional[0]
	acc := positional[1]
	for _, v := range receiverList(r).Items() {
		result, err := interp.Call(fn, object.ArgumentValues{{Value: acc}, {Value: v}})
		if err != nil {
			return nil, err
		}
		acc = result
	}
	return acc, nil
}

func listReverse(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("reverse", 0, args, false); err != nil {
		return nil, err
	}
	items := receiverList(r).Items()
	out := make([]object.Value, len(items))
	for i, v := range items {
		out[len(items)-1-i] = v
	}
	return object.NewList(out), nil
}

func listSort(interp object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	positional := args.Positional()
	items := append([]object.Value(nil), receiverList(r).Items()...)

	if len(positional) == 1 {
		fn := positional[0]
		var sortErr error
		sort.SliceStable(items, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			result, err := interp.Call(fn, object.ArgumentValues{{Value: items[i]}, {Value: items[j]}})
			if err != nil {
				sortErr = err
				return false
			}
			return result.Truthy()
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return object.NewList(items), nil
	}

	sort.SliceStable(items, func(i, j int) bool {
		ni, iok := object.Unwrap(items[i]).(object.Number)
		nj, jok := object.Unwrap(items[j]).(object.Number)
		if iok && jok {
			return ni < nj
		}
		return items[i].String() < items[j].String()
	})
	return object.NewList(items), nil
}
