package eval

import (
	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/object"
)

func (i *Interpreter) evalExpression(expr ast.Expression, env *object.Environment) (object.Value, error) {
	switch e := expr.(type) {
	case *ast.Null:
		return object.NullValue, nil
	case *ast.Number:
		return object.Number(e.Value), nil
	case *ast.String:
		return object.String(e.Value), nil
	case *ast.Bool:
		return object.Bool(e.Value), nil

	case *ast.Identifier:
		v, ok := i.lookupName(e.Name, env)
		if !ok {
			return nil, errUndefinedVariable(e.Name, 0, i.candidateNames(env))
		}
		return v, nil

	case *ast.List:
		items := make([]object.Value, len(e.Items))
		for idx, item := range e.Items {
			v, err := i.evalExpression(item, env)
			if err != nil {
				return nil, err
			}
			items[idx] = v
		}
		return object.NewList(items), nil

	case *ast.Index:
		return i.evalIndex(e, env)

	case *ast.GetProperty:
		target, err := i.evalExpression(e.Target, env)
		if err != nil {
			return nil, err
		}
		return i.getProperty(target, e.Target, e.Field, false, env)

	case *ast.SetProperty:
		return i.evalSetProperty(e, env)

	case *ast.MethodCall:
		target, err := i.evalExpression(e.Target, env)
		if err != nil {
			return nil, err
		}
		method, err := i.getProperty(target, e.Target, e.Field, true, env)
		if err != nil {
			return nil, err
		}
		args, err := i.evalArguments(e.Args, env)
		if err != nil {
			return nil, err
		}
		return i.invoke(method, args, 0)

	case *ast.Call:
		callee, err := i.evalExpression(e.Callee, env)
		if err != nil {
			return nil, err
		}
		args, err := i.evalArguments(e.Args, env)
		if err != nil {
			return nil, err
		}
		return i.invoke(callee, args, 0)

	case *ast.Closure:
		return &object.Function{Params: e.Params, Body: e.Body, CapturedEnv: env.Snapshot()}, nil

	case *ast.Struct:
		return i.evalStructLiteral(e, env)

	case *ast.Infix:
		return i.evalInfix(e, env)

	case *ast.Prefix:
		return i.evalPrefix(e, env)

	case *ast.Assign:
		return i.evalAssign(e, env)

	case *ast.MathAssign:
		return i.evalMathAssign(e, env)
	}

	return nil, runtimeErrorf("unhandled expression type %T", expr)
}

func (i *Interpreter) evalArguments(args []ast.Argument, env *object.Environment) (object.ArgumentValues, error) {
	out := make(object.ArgumentValues, len(args))
	for idx, a := range args {
		v, err := i.evalExpression(a.Expr, env)
		if err != nil {
			return nil, err
		}
		out[idx] = object.ArgumentValue{Name: a.Name, Value: v}
	}
	return out, nil
}

func (i *Interpreter) evalIndex(node *ast.Index, env *object.Environment) (object.Value, error) {
	targetVal, err := i.evalExpression(node.Target, env)
	if err != nil {
		return nil, err
	}
	list, ok := object.Unwrap(targetVal).(*object.List)
	if !ok {
		return nil, errInvalidAppendTarget(targetVal.Kind().String(), 0)
	}
	if node.Idx == nil {
		return nil, runtimeErrorf("index expression missing an index")
	}
	idxVal, err := i.evalExpression(node.Idx, env)
	if err != nil {
		return nil, err
	}
	n, ok := object.Unwrap(idxVal).(object.Number)
	if !ok {
		return nil, errTypeMismatch("index", 0, idxVal.Kind().String())
	}
	v, ok := list.Get(int(n))
	if !ok {
		return nil, errUndefinedIndex(int(n), 0)
	}
	return v, nil
}

func (i *Interpreter) evalSetProperty(node *ast.SetProperty, env *object.Environment) (object.Value, error) {
	target, err := i.evalExpression(node.Target, env)
	if err != nil {
		return nil, err
	}
	value, err := i.evalExpression(node.Value, env)
	if err != nil {
		return nil, err
	}
	return i.assignToInstance(target, node.Target, node.Field, value, env)
}

func (i *Interpreter) evalAssign(node *ast.Assign, env *object.Environment) (object.Value, error) {
	value, err := i.evalExpression(node.Value, env)
	if err != nil {
		return nil, err
	}

	switch target := node.Target.(type) {
	case *ast.Index:
		targetVal, err := i.evalExpression(target.Target, env)
		if err != nil {
			return nil, err
		}
		list, ok := object.Unwrap(targetVal).(*object.List)
		if !ok {
			return nil, errInvalidAppendTarget(targetVal.Kind().String(), 0)
		}
		if target.Idx == nil {
			list.Append(value)
			return value, nil
		}
		idxVal, err := i.evalExpression(target.Idx, env)
		if err != nil {
			return nil, err
		}
		n, ok := object.Unwrap(idxVal).(object.Number)
		if !ok {
			return nil, errTypeMismatch("index", 0, idxVal.Kind().String())
		}
		if !list.Set(int(n), value) {
			return nil, errUndefinedIndex(int(n), 0)
		}
		return value, nil

	case *ast.Identifier:
		if existing, ok := env.Get(target.Name); ok {
			if _, isConst := existing.(*object.Constant); isConst {
				return nil, errCannotAssignToConstant(target.Name, 0)
			}
		}
		if !env.Assign(target.Name, value) {
			return nil, errUndefinedVariable(target.Name, 0, i.candidateNames(env))
		}
		return value, nil
	}

	return nil, runtimeErrorf("invalid assignment target %T", node.Target)
}

func (i *Interpreter) evalMathAssign(node *ast.MathAssign, env *object.Environment) (object.Value, error) {
	ident, ok := node.Target.(*ast.Identifier)
	if !ok {
		return nil, runtimeErrorf("compound assignment target must be a variable")
	}
	current, ok := env.Get(ident.Name)
	if !ok {
		return nil, errUndefinedVariable(ident.Name, 0, i.candidateNames(env))
	}
	if _, isConst := current.(*object.Constant); isConst {
		return nil, errCannotAssignToConstant(ident.Name, 0)
	}
	n, ok := object.Unwrap(current).(object.Number)
	if !ok {
		return nil, errTypeMismatch(node.Op.String()+"=", 0, current.Kind().String())
	}

	rhs, err := i.evalExpression(node.Value, env)
	if err != nil {
		return nil, err
	}
	rn, ok := object.Unwrap(rhs).(object.Number)
	if !ok {
		return nil, errTypeMismatch(node.Op.String()+"=", 0, rhs.Kind().String())
	}

	var result object.Number
	switch node.Op {
	case ast.Add:
		result = n + rn
	case ast.Subtract:
		result = n - rn
	case ast.Multiply:
		result = n * rn
	case ast.Divide:
		result = n / rn
	default:
		return nil, runtimeErrorf("unsupported compound assignment operator %s", node.Op)
	}

	env.Assign(ident.Name, result)
	return result, nil
}
