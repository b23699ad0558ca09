package eval

import (
	"github.com/google/uuid"

	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/object"
	"github.com/lugli-lang/lugli/internal/stdlib"
)

// getProperty resolves `target.field` (GetProperty) or `target.field(...)`
// (MethodCall, isCall=true). targetExpr is the AST node that produced
// target — it becomes the bound Function's deferred `this` expression, so
// a later call re-evaluates targetExpr rather than trusting a value
// snapshotted at bind time (a reassigned variable is picked up by the next
// call).
func (i *Interpreter) getProperty(target object.Value, targetExpr ast.Expression, field string, isCall bool, env *object.Environment) (object.Value, error) {
	target = object.Unwrap(target)

	switch t := target.(type) {
	case *object.StructInstance:
		return i.getInstanceProperty(t, targetExpr, field, isCall)

	case *object.Struct:
		if fn, ok := t.Methods[field]; ok {
			return fn, nil
		}
		if def, ok := t.FieldDefault(field); ok {
			v, err := i.evalExpression(def, env)
			if err != nil {
				return nil, err
			}
			if fn, ok := v.(*object.Function); ok {
				return fn.Bind(targetExpr), nil
			}
			return v, nil
		}
		return nil, errUndefinedMethod(t.Name, field, 0, methodNames(t.Methods))

	case object.String:
		if !isCall {
			return nil, errUndefinedField("string", field, 0, stdlib.StringMethodNames())
		}
		m, ok := stdlib.LookupStringMethod(field)
		if !ok {
			return nil, errUndefinedMethod("string", field, 0, stdlib.StringMethodNames())
		}
		return &object.NativeMethod{Name: field, Receiver: target, Callback: m}, nil

	case object.Number:
		if !isCall {
			return nil, errUndefinedField("number", field, 0, stdlib.NumberMethodNames())
		}
		m, ok := stdlib.LookupNumberMethod(field)
		if !ok {
			return nil, errUndefinedMethod("number", field, 0, stdlib.NumberMethodNames())
		}
		return &object.NativeMethod{Name: field, Receiver: target, Callback: m}, nil

	case *object.List:
		if !isCall {
			return nil, errUndefinedField("list", field, 0, stdlib.ListMethodNames())
		}
		m, ok := stdlib.LookupListMethod(field)
		if !ok {
			return nil, errUndefinedMethod("list", field, 0, stdlib.ListMethodNames())
		}
		return &object.NativeMethod{Name: field, Receiver: target, Callback: m}, nil

	case object.DateTime:
		if isCall {
			m, ok := stdlib.LookupDateTimeMethod(field)
			if !ok {
				return nil, errUndefinedMethod("datetime", field, 0, stdlib.DateTimeMethodNames())
			}
			return &object.NativeMethod{Name: field, Receiver: target, Callback: m}, nil
		}
		v, ok := stdlib.DateTimeGet(t, field)
		if !ok {
			return nil, errUndefinedField("datetime", field, 0, stdlib.DateTimeFieldNames())
		}
		return v, nil
	}

	return nil, errUndefinedField(target.Kind().String(), field, 0, nil)
}

func (i *Interpreter) getInstanceProperty(inst *object.StructInstance, targetExpr ast.Expression, field string, isCall bool) (object.Value, error) {
	if v, ok := inst.Env.Get(field); ok {
		if fn, ok := v.(*object.Function); ok {
			if !isCall {
				return nil, errUndefinedField(inst.Definition.Name, field, 0, instanceFieldNames(inst))
			}
			return fn.Bind(targetExpr), nil
		}
		if isCall {
			return nil, errUndefinedField(inst.Definition.Name, field, 0, instanceFieldNames(inst))
		}
		return v, nil
	}

	if def, ok := inst.Definition.FieldDefault(field); ok {
		v, err := i.evalExpression(def, inst.Env)
		if err != nil {
			return nil, err
		}
		if fn, ok := v.(*object.Function); ok {
			return fn.Bind(targetExpr), nil
		}
		return v, nil
	}

	return nil, errUndefinedField(inst.Definition.Name, field, 0, instanceFieldNames(inst))
}

func instanceFieldNames(inst *object.StructInstance) []string {
	names := make([]string, 0, len(inst.Env.Values()))
	for name := range inst.Env.Values() {
		names = append(names, name)
	}
	return names
}

func methodNames(methods map[string]*object.Function) []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	return names
}

// assignToInstance implements SetProperty: writing a struct instance field
// mutates its shared environment directly; writing onto a Struct
// definition is the static-method-assignment sugar (`Point.origin = fn(){
// ... }`) and requires a Function value; writing onto a DateTime computes
// a new, immutable DateTime and writes it back only if the target
// expression was a bare identifier (DateTime has value, not reference,
// semantics, so there is no shared storage to mutate through an arbitrary
// target expression).
func (i *Interpreter) assignToInstance(target object.Value, targetExpr ast.Expression, field string, value object.Value, env *object.Environment) (object.Value, error) {
	switch t := object.Unwrap(target).(type) {
	case *object.StructInstance:
		t.Env.Define(field, value)
		return value, nil

	case *object.Struct:
		fn, ok := value.(*object.Function)
		if !ok {
			return nil, errInvalidMethodAssignmentTarget(t.Name, 0)
		}
		t.Methods[field] = fn
		return value, nil

	case object.DateTime:
		updated, err := stdlib.DateTimeSet(t, field, value)
		if err != nil {
			return nil, err
		}
		if ident, ok := targetExpr.(*ast.Identifier); ok {
			env.Assign(ident.Name, updated)
		}
		return updated, nil

	default:
		return nil, errInvalidMethodAssignmentTarget(target.Kind().String(), 0)
	}
}

// evalStructLiteral builds a fresh StructInstance: seed its environment
// with the struct's declared field defaults (each evaluated fresh, not
// shared with any other instance), override with the literal's supplied
// fields (re-wrapping any nested StructInstance value into its own fresh,
// independent environment so two sibling instances never alias each
// other's nested struct unless the same pointer is threaded through
// explicitly), then copy in the struct's methods with CapturedEnv cleared
// — instance methods resolve free variables through `this`, not through
// the struct-declaration-time lexical scope.
func (i *Interpreter) evalStructLiteral(node *ast.Struct, env *object.Environment) (object.Value, error) {
	defVal, err := i.evalExpression(node.Definition, env)
	if err != nil {
		return nil, err
	}
	def, ok := object.Unwrap(defVal).(*object.Struct)
	if !ok {
		return nil, errTypeMismatch("struct literal", 0, defVal.Kind().String())
	}

	instEnv := object.NewEnvironment(nil)
	inst := &object.StructInstance{Definition: def, Env: instEnv, ID: uuid.NewString()}

	for _, field := range def.Fields {
		if !field.HasInitial() {
			continue
		}
		v, err := i.evalExpression(field.Initial, instEnv)
		if err != nil {
			return nil, err
		}
		instEnv.Define(field.Name, v)
	}

	for _, name := range node.FieldOrder {
		if !def.HasField(name) {
			return nil, errUndefinedField(def.Name, name, 0, fieldDeclNames(def))
		}
		v, err := i.evalExpression(node.FieldInits[name], env)
		if err != nil {
			return nil, err
		}
		instEnv.Define(name, rewrapIfInstance(v))
	}

	for name, fn := range def.Methods {
		bound := *fn
		bound.CapturedEnv = nil
		instEnv.Define(name, &bound)
	}

	return inst, nil
}

// rewrapIfInstance gives a struct-typed field its own environment copy so
// that mutating the outer instance's field does not alias the value the
// field literal was initialized from.
func rewrapIfInstance(v object.Value) object.Value {
	inst, ok := object.Unwrap(v).(*object.StructInstance)
	if !ok {
		return v
	}
	freshEnv := object.NewEnvironment(nil)
	for name, val := range inst.Env.Values() {
		freshEnv.Define(name, val)
	}
	return &object.StructInstance{Definition: inst.Definition, Env: freshEnv, ID: uuid.NewString()}
}

func fieldDeclNames(def *object.Struct) []string {
	names := make([]string, len(def.Fields))
	for i, f := range def.Fields {
		names[i] = f.Name
	}
	return names
}
