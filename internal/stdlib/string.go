package stdlib

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lugli-lang/lugli/internal/object"
)

var stringMethods map[string]object.NativeMethodCallback

func init() {
	stringMethods = map[string]object.NativeMethodCallback{
		"upper":     strUpper,
		"lower":     strLower,
		"trim":      strTrim,
		"len":       strLen,
		"split":     strSplit,
		"contains":  strContains,
		"replace":   strReplace,
		"starts_with": strStartsWith,
		"ends_with": strEndsWith,
		"to_number": strToNumber,
		"repeat":    strRepeat,
		"index_of":  strIndexOf,
	}
}

// LookupStringMethod resolves a method name against a String receiver.
func LookupStringMethod(name string) (object.NativeMethodCallback, bool) {
	m, ok := stringMethods[name]
	return m, ok
}

// StringMethodNames lists every String method, for typo suggestions.
func StringMethodNames() []string {
	return sortedKeys(stringMethods)
}

func receiverString(r object.Value) string { return string(object.Unwrap(r).(object.String)) }

func strUpper(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("upper", 0, args, false); err != nil {
		return nil, err
	}
	return object.String(strings.ToUpper(receiverString(r))), nil
}

func strLower(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("lower", 0, args, false); err != nil {
		return nil, err
	}
	return object.String(strings.ToLower(receiverString(r))), nil
}

func strTrim(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("trim", 0, args, false); err != nil {
		return nil, err
	}
	return object.String(strings.TrimSpace(receiverString(r))), nil
}

func strLen(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("len", 0, args, false); err != nil {
		return nil, err
	}
	return object.Number(len(receiverString(r))), nil
}

func strSplit(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("split", 1, args, false); err != nil {
		return nil, err
	}
	sepVal, _ := args.At(0)
	sep, ok := object.Unwrap(sepVal).(object.String)
	if !ok {
		return nil, fmt.Errorf("split: expected a string separator")
	}
	parts := strings.Split(receiverString(r), string(sep))
	items := make([]object.Value, len(parts))
	for i, p := range parts {
		items[i] = object.String(p)
	}
	return object.NewList(items), nil
}

func strContains(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("contains", 1, args, false); err != nil {
		return nil, err
	}
	needle, _ := args.At(0)
	n, ok := object.Unwrap(needle).(object.String)
	if !ok {
		return nil, fmt.Errorf("contains: expected a string")
	}
	return object.Bool(strings.Contains(receiverString(r), string(n))), nil
}

func strReplace(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("replace", 2, args, false); err != nil {
		return nil, err
	}
	fromVal, _ := args.At(0)
	toVal, _ := args.At(1)
	from, ok1 := object.Unwrap(fromVal).(object.String)
	to, ok2 := object.Unwrap(toVal).(object.String)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("replace: expected string arguments")
	}
	return object.String(strings.ReplaceAll(receiverString(r), string(from), string(to))), nil
}

func strStartsWith(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("starts_with", 1, args, false); err != nil {
		return nil, err
	}
	prefix, _ := args.At(0)
	p, ok := object.Unwrap(prefix).(object.String)
	if !ok {
		return nil, fmt.Errorf("starts_with: expected a string")
	}
	return object.Bool(strings.HasPrefix(receiverString(r), string(p))), nil
}

func strEndsWith(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("ends_with", 1, args, false); err != nil {
		return nil, err
	}
	suffix, _ := args.At(0)
	s, ok := object.Unwrap(suffix).(object.String)
	if !ok {
		return nil, fmt.Errorf("ends_with: expected a string")
	}
	return object.Bool(strings.HasSuffix(receiverString(r), string(s))), nil
}

func strToNumber(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("to_number", 0, args, false); err != nil {
		return nil, err
	}
	f, err := strconv.ParseFloat(receiverString(r), 64)
	if err != nil {
		return nil, fmt.Errorf("to_number: cannot parse %q as a number", receiverString(r))
	}
	return object.Number(f), nil
}

func strRepeat(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("repeat", 1, args, false); err != nil {
		return nil, err
	}
	countVal, _ := args.At(0)
	n, ok := object.Unwrap(countVal).(object.Number)
	if !ok || n < 0 {
		return nil, fmt.Errorf("repeat: expected a non-negative number")
	}
	return object.String(strings.Repeat(receiverString(r), int(n))), nil
}

func strIndexOf(_ object.Interpreter, r object.Value, args object.ArgumentValues) (object.Value, error) {
	if err := Arity("index_of", 1, args, false); err != nil {
		return nil, err
	}
	needle, _ := args.At(0)
	n, ok := object.Unwrap(needle).(object.String)
	if !ok {
		return nil, fmt.Errorf("index_of: expected a string")
	}
	return object.Number(strings.Index(receiverString(r), string(n))), nil
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
