// Package eval walks the AST the parser produces against a mutable
// Environment, evaluating it for effect. Structure follows
// codecrafters/cmd's interpreter.go/evaluate.go split (a dispatch-by-type
// walk returning (Value, error)); the run_statement/run_expression
// semantics — including the global-function-table lookup order, the
// struct construction and property-resolution rules, and the calling
// convention — are ported from the reference implementation's Interpreter.
package eval

import (
	"fmt"

	"github.com/lugli-lang/lugli/internal/ast"
	"github.com/lugli-lang/lugli/internal/object"
	"github.com/lugli-lang/lugli/internal/stdlib"
)

// Interpreter walks a Program. Globals holds top-level function and struct
// declarations in a flat table checked before the lexical environment
// chain on every identifier lookup — so a function can call another
// function declared later in the same file without threading it through
// every enclosing scope. Env is the current lexical frame.
type Interpreter struct {
	Globals map[string]object.Value
	Env     *object.Environment
}

// New creates an Interpreter with the builtin global functions pre-bound
// and a fresh root environment.
func New() *Interpreter {
	i := &Interpreter{
		Globals: make(map[string]object.Value),
		Env:     object.NewEnvironment(nil),
	}
	for _, name := range stdlib.FunctionNames() {
		fn, _ := stdlib.LookupFunction(name)
		i.Globals[name] = &object.NativeFunction{Name: name, Callback: fn}
	}
	return i
}

// Run executes every top-level statement in order. A bare `return` at the
// top level ends the program early without error, matching a script's
// natural exit point; break/continue outside any loop is a real error.
func (i *Interpreter) Run(prog *ast.Program) error {
	for _, stmt := range prog.Statements {
		_, err := i.execStatement(stmt, i.Env)
		if err == nil {
			continue
		}
		if sig, ok := asSignal(err); ok {
			if sig.Kind == SigReturn {
				return nil
			}
			return runtimeErrorf("%s", sig.Error())
		}
		return err
	}
	return nil
}

// Call implements object.Interpreter so native functions/methods can invoke
// callbacks (user closures passed as arguments, e.g. list.map(fn)).
func (i *Interpreter) Call(callee object.Value, args object.ArgumentValues) (object.Value, error) {
	return i.invoke(callee, args, 0)
}

// execStatement runs one statement, returning its value for expression
// statements (mostly unused by callers) or a *Signal/error for control
// flow and failures.
func (i *Interpreter) execStatement(stmt ast.Statement, env *object.Environment) (object.Value, error) {
	switch s := stmt.(type) {
	case *ast.CreateDecl:
		var v object.Value = object.NullValue
		if s.Initial != nil {
			var err error
			v, err = i.evalExpression(s.Initial, env)
			if err != nil {
				return nil, err
			}
		}
		env.Define(s.Name, v)
		return object.NullValue, nil

	case *ast.ConstDecl:
		v, err := i.evalExpression(s.Initial, env)
		if err != nil {
			return nil, err
		}
		env.Define(s.Name, &object.Constant{Inner: v})
		return object.NullValue, nil

	case *ast.FunctionDecl:
		i.Globals[s.Name] = &object.Function{Name: s.Name, Params: s.Params, Body: s.Body}
		return object.NullValue, nil

	case *ast.StructDecl:
		i.declareStruct(s, env)
		return object.NullValue, nil

	case *ast.If:
		return i.execIf(s, env)

	case *ast.While:
		return object.NullValue, i.execWhile(s, env)

	case *ast.Loop:
		return object.NullValue, i.execLoop(s, env)

	case *ast.For:
		return object.NullValue, i.execFor(s, env)

	case *ast.Return:
		v, err := i.evalExpression(s.Value, env)
		if err != nil {
			return nil, err
		}
		return nil, &Signal{Kind: SigReturn, Value: v}

	case *ast.Break:
		return nil, &Signal{Kind: SigBreak}

	case *ast.Continue:
		return nil, &Signal{Kind: SigContinue}

	case *ast.ExprStmt:
		return i.evalExpression(s.Expr, env)
	}
	return nil, fmt.Errorf("unhandled statement type %T", stmt)
}

func (i *Interpreter) execBlock(body []ast.Statement, env *object.Environment) error {
	for _, s := range body {
		if _, err := i.execStatement(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) declareStruct(decl *ast.StructDecl, env *object.Environment) {
	st := &object.Struct{Name: decl.Name, Methods: make(map[string]*object.Function)}
	for _, field := range decl.Fields {
		if closure, ok := field.Initial.(*ast.Closure); ok {
			st.Methods[field.Name] = &object.Function{
				Name:        field.Name,
				Params:      closure.Params,
				Body:        closure.Body,
				CapturedEnv: env.Snapshot(),
			}
			continue
		}
		st.Fields = append(st.Fields, field)
	}
	i.Globals[decl.Name] = st
}

func (i *Interpreter) execIf(node *ast.If, env *object.Environment) (object.Value, error) {
	cond, err := i.evalExpression(node.Condition.Condition, env)
	if err != nil {
		return nil, err
	}
	if cond.Truthy() {
		return object.NullValue, i.execBlock(node.Condition.Then, env)
	}
	for _, elif := range node.ElseIfs {
		cond, err := i.evalExpression(elif.Condition, env)
		if err != nil {
			return nil, err
		}
		if cond.Truthy() {
			return object.NullValue, i.execBlock(elif.Then, env)
		}
	}
	if node.Else != nil {
		return object.NullValue, i.execBlock(node.Else, env)
	}
	return object.NullValue, nil
}

func (i *Interpreter) execWhile(node *ast.While, env *object.Environment) error {
	for {
		cond, err := i.evalExpression(node.Condition.Condition, env)
		if err != nil {
			return err
		}
		if !cond.Truthy() {
			return nil
		}
		err = i.execBlock(node.Condition.Then, env)
		if err == nil {
			continue
		}
		if sig, ok := asSignal(err); ok {
			switch sig.Kind {
			case SigBreak:
				return nil
			case SigContinue:
				continue
			}
		}
		return err
	}
}

func (i *Interpreter) execLoop(node *ast.Loop, env *object.Environment) error {
	for {
		err := i.execBlock(node.Body, env)
		if err == nil {
			continue
		}
		if sig, ok := asSignal(err); ok {
			switch sig.Kind {
			case SigBreak:
				return nil
			case SigContinue:
				continue
			}
		}
		return err
	}
}

func (i *Interpreter) execFor(node *ast.For, env *object.Environment) error {
	iterVal, err := i.evalExpression(node.Iterable, env)
	if err != nil {
		return err
	}
	list, ok := object.Unwrap(iterVal).(*object.List)
	if !ok {
		return errInvalidIterable(iterVal.Kind().String(), 0)
	}

	for idx, item := range list.Items() {
		env.Define(node.Value, item)
		if node.Index != "" {
			env.Define(node.Index, object.Number(idx))
		}
		err := i.execBlock(node.Body, env)
		if err == nil {
			continue
		}
		if sig, ok := asSignal(err); ok {
			switch sig.Kind {
			case SigBreak:
				return nil
			case SigContinue:
				continue
			}
		}
		return err
	}
	return nil
}

// lookupName resolves an identifier: the global function/struct table is
// checked first so later-declared top-level functions and structs are
// visible from anywhere, then the lexical environment chain rooted at env.
func (i *Interpreter) lookupName(name string, env *object.Environment) (object.Value, bool) {
	if v, ok := i.Globals[name]; ok {
		return v, true
	}
	return env.Get(name)
}

func (i *Interpreter) candidateNames(env *object.Environment) []string {
	names := make([]string, 0, len(i.Globals))
	for name := range i.Globals {
		names = append(names, name)
	}
	for e := env; e != nil; e = e.Parent() {
		for name := range e.Values() {
			names = append(names, name)
		}
	}
	return names
}
