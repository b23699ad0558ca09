package eval

import (
	"math"

	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/object"
)

// evalInfix implements the full binary operator table: arithmetic is
// Number-only except Add, which also concatenates Strings; equality works
// across any pair of kinds via object.Equal; And/Or always evaluate both
// operands and produce a coerced Bool.
func (i *Interpreter) evalInfix(node *ast.Infix, env *object.Environment) (object.Value, error) {
	if node.Op == ast.And || node.Op == ast.Or {
		return i.evalLogical(node, env)
	}

	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	left, right = object.Unwrap(left), object.Unwrap(right)

	switch node.Op {
	case ast.Equals:
		return object.Bool(object.Equal(left, right)), nil
	case ast.NotEquals:
		return object.Bool(!object.Equal(left, right)), nil
	case ast.In, ast.NotIn:
		return i.evalMembership(node.Op, left, right)
	}

	if node.Op == ast.Add {
		if ls, ok := left.(object.String); ok {
			if rs, ok := right.(object.String); ok {
				return ls + rs, nil
			}
		}
	}

	ln, lok := left.(object.Number)
	rn, rok := right.(object.Number)
	if !lok || !rok {
		return nil, errTypeMismatch(node.Op.String(), 0, left.Kind().String(), right.Kind().String())
	}

	switch node.Op {
	case ast.Add:
		return ln + rn, nil
	case ast.Subtract:
		return ln - rn, nil
	case ast.Multiply:
		return ln * rn, nil
	case ast.Divide:
		return ln / rn, nil
	case ast.Modulo:
		return object.Number(math.Mod(float64(ln), float64(rn))), nil
	case ast.Pow:
		return object.Number(math.Pow(float64(ln), float64(rn))), nil
	case ast.LessThan:
		return object.Bool(ln < rn), nil
	case ast.LessThanOrEquals:
		return object.Bool(ln <= rn), nil
	case ast.GreaterThan:
		return object.Bool(ln > rn), nil
	case ast.GreaterThanOrEquals:
		return object.Bool(ln >= rn), nil
	}

	return nil, errTypeMismatch(node.Op.String(), 0, left.Kind().String(), right.Kind().String())
}

func (i *Interpreter) evalLogical(node *ast.Infix, env *object.Environment) (object.Value, error) {
	left, err := i.evalExpression(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	if node.Op == ast.And {
		return object.Bool(left.Truthy() && right.Truthy()), nil
	}
	return object.Bool(left.Truthy() || right.Truthy()), nil
}

func (i *Interpreter) evalMembership(op ast.Op, left, right object.Value) (object.Value, error) {
	list, ok := right.(*object.List)
	if !ok {
		return nil, errTypeMismatch(op.String(), 0, left.Kind().String(), right.Kind().String())
	}
	found := false
	for _, item := range list.Items() {
		if object.Equal(left, item) {
			found = true
			break
		}
	}
	if op == ast.NotIn {
		found = !found
	}
	return object.Bool(found), nil
}

func (i *Interpreter) evalPrefix(node *ast.Prefix, env *object.Environment) (object.Value, error) {
	right, err := i.evalExpression(node.Right, env)
	if err != nil {
		return nil, err
	}
	right = object.Unwrap(right)

	switch node.Op {
	case ast.Bang:
		return object.Bool(!right.Truthy()), nil
	case ast.Subtract:
		n, ok := right.(object.Number)
		if !ok {
			return nil, errTypeMismatch("-", 0, right.Kind().String())
		}
		return -n, nil
	}
	return nil, runtimeErrorf("unsupported prefix operator %s", node.Op)
}
