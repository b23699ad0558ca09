package eval

import (
	"github.com/lugli-lang/lugli/internal/object"
)

const maxCallDepth = 1024

// invoke dispatches a resolved callee — Function, NativeFunction, or
// NativeMethod — against already-evaluated arguments. depth is compared
// against maxCallDepth, but every caller passes 0 and a call made from
// inside a function body starts again at 0, so the check does not bound
// recursion of script functions.
func (i *Interpreter) invoke(callee object.Value, args object.ArgumentValues, depth int) (object.Value, error) {
	if depth > maxCallDepth {
		return nil, runtimeErrorf("call stack exceeded depth %d", maxCallDepth)
	}
	callee = object.Unwrap(callee)

	switch fn := callee.(type) {
	case *object.NativeFunction:
		return fn.Callback(i, args)
	case *object.NativeMethod:
		return fn.Callback(i, fn.Receiver, args)
	case *object.Function:
		return i.callFunction(fn, args, depth)
	}

	return nil, errNotCallable(callee.Kind().String(), 0)
}

// callFunction implements the calling convention: every parameter default
// is evaluated unconditionally, in declaration order, into the new frame
// (so a default can reference an earlier parameter, and defaults with
// side effects always run even when a named argument will override the
// result); named arguments are then bound, overriding any default just
// set; finally positional arguments zip into whatever params remain
// unsatisfied by name, in declaration order, overwriting any default just
// bound. Arity is checked only against the params that have neither a
// named argument nor a default available.
func (i *Interpreter) callFunction(fn *object.Function, args object.ArgumentValues, depth int) (object.Value, error) {
	var base *object.Environment
	if fn.CapturedEnv != nil {
		base = fn.CapturedEnv
	}
	frame := object.NewEnvironment(base)
	caller := i.Env

	params := fn.Params
	if fn.Context != nil && len(params) > 0 && params[0].Name == "this" {
		thisVal, err := i.evalExpression(fn.Context, caller)
		if err != nil {
			return nil, err
		}
		frame.Define("this", thisVal)
		params = params[1:]
	}

	satisfiedByName := make(map[string]bool, len(args))
	for _, a := range args {
		if a.Name != "" {
			satisfiedByName[a.Name] = true
		}
	}

	for _, p := range params {
		if !p.HasInitial() {
			continue
		}
		v, err := i.evalExpression(p.Initial, frame)
		if err != nil {
			return nil, err
		}
		frame.Define(p.Name, v)
	}

	for _, a := range args {
		if a.Name != "" {
			frame.Define(a.Name, a.Value)
		}
	}

	var toSatisfy []string
	for _, p := range params {
		if satisfiedByName[p.Name] {
			continue
		}
		toSatisfy = append(toSatisfy, p.Name)
	}

	positional := args.Positional()
	required := 0
	for _, p := range params {
		if satisfiedByName[p.Name] || p.HasInitial() {
			continue
		}
		required++
	}
	if required > len(positional) {
		return nil, errTooFewArguments(fnLabel(fn), required, len(positional), 0)
	}

	for idx, name := range toSatisfy {
		if idx >= len(positional) {
			break
		}
		frame.Define(name, positional[idx])
	}

	i.Env = frame
	defer func() { i.Env = caller }()

	for _, stmt := range fn.Body {
		_, err := i.execStatement(stmt, frame)
		if err == nil {
			continue
		}
		if sig, ok := asSignal(err); ok && sig.Kind == SigReturn {
			return sig.Value, nil
		}
		return nil, err
	}
	return object.NullValue, nil
}

func fnLabel(fn *object.Function) string {
	if fn.Name != "" {
		return fn.Name
	}
	return "closure"
}
