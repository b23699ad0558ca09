// Package object defines the runtime value model the evaluator operates
// on: the Value union, the shared-by-reference List and StructInstance
// types, and the calling surface (Function/NativeFunction/NativeMethod)
// native code and user code are invoked through.
//
// Shape follows codecrafters/cmd/object.go and callable.go (a small Value
// interface plus concrete struct types, a Callable-ish native hook); the
// field layout of Function/Struct/StructInstance follows the reference
// Rust implementation's Value enum (Function, NativeFunction,
// NativeMethod, Struct, StructInstance, Constant).
package object

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lugli-lang/lugli/internal/ast"
)

// Kind identifies which concrete Value a Value interface wraps.
type Kind int

const (
	NumberKind Kind = iota
	StringKind
	BoolKind
	NullKind
	ListKind
	DateTimeKind
	FunctionKind
	NativeFunctionKind
	NativeMethodKind
	StructKind
	StructInstanceKind
	ConstantKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case BoolKind:
		return "bool"
	case NullKind:
		return "null"
	case ListKind:
		return "list"
	case DateTimeKind:
		return "datetime"
	case FunctionKind:
		return "function"
	case NativeFunctionKind:
		return "native function"
	case NativeMethodKind:
		return "native method"
	case StructKind:
		return "struct"
	case StructInstanceKind:
		return "struct instance"
	case ConstantKind:
		return "constant"
	}
	return "unknown"
}

// Value is implemented by every runtime value kind.
type Value interface {
	fmt.Stringer
	Kind() Kind
	// Truthy reports whether the value counts as true in a boolean
	// context: everything except false and null.
	Truthy() bool
}

// Number is an IEEE-754 double, matching the host language's only numeric
// type; Inf and NaN propagate rather than panic.
type Number float64

func (Number) Kind() Kind      { return NumberKind }
func (n Number) Truthy() bool  { return true }
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// String is an immutable text value.
type String string

func (String) Kind() Kind       { return StringKind }
func (s String) Truthy() bool   { return true }
func (s String) String() string { return string(s) }

// Bool is the only value, besides Null, whose Truthy is conditional.
type Bool bool

func (Bool) Kind() Kind       { return BoolKind }
func (b Bool) Truthy() bool   { return bool(b) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Null is the sole absent-value marker.
type Null struct{}

func (Null) Kind() Kind       { return NullKind }
func (Null) Truthy() bool     { return false }
func (Null) String() string   { return "null" }

// NullValue is the single shared Null instance; value semantics make any
// Null{} equivalent, but sharing one avoids needless allocation.
var NullValue = Null{}

// List is a shared, mutable, reference-typed sequence: copying a List
// value copies the pointer, matching the language's "lists are shared"
// semantics (Rc<RefCell<Vec<Value>>> in the reference implementation).
type List struct {
	items *[]Value
}

// NewList wraps items (taking ownership) in a fresh shared List.
func NewList(items []Value) *List {
	return &List{items: &items}
}

func (*List) Kind() Kind     { return ListKind }
func (*List) Truthy() bool   { return true }

func (l *List) Len() int { return len(*l.items) }

func (l *List) Get(i int) (Value, bool) {
	if i < 0 || i >= len(*l.items) {
		return nil, false
	}
	return (*l.items)[i], true
}

func (l *List) Set(i int, v Value) bool {
	if i < 0 || i >= len(*l.items) {
		return false
	}
	(*l.items)[i] = v
	return true
}

func (l *List) Append(v Value) { *l.items = append(*l.items, v) }

func (l *List) Items() []Value { return *l.items }

func (l *List) String() string {
	parts := make([]string, len(*l.items))
	for i, v := range *l.items {
		if s, ok := v.(String); ok {
			parts[i] = strconv.Quote(string(s))
		} else {
			parts[i] = v.String()
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DateTime wraps a point in time; construction and field/method access are
// supplied by the datetime native table in package stdlib.
type DateTime struct {
	Time time.Time
}

func (DateTime) Kind() Kind       { return DateTimeKind }
func (DateTime) Truthy() bool     { return true }
func (d DateTime) String() string { return d.Time.Format(time.RFC3339) }

// Function is a user-defined closure: either a named top-level function, an
// anonymous closure expression, or a struct method. CapturedEnv is the
// lexical environment snapshotted at definition time (nil for a bare
// top-level FunctionDecl, which resolves names against interpreter
// globals instead). Context, when set, is the expression that must be
// re-evaluated at call time to produce the receiver bound to `this` —
// deferred rather than pre-bound so that rebinding a struct's field to a
// new instance changes what `this` resolves to on the next call.
type Function struct {
	Name        string
	Params      []ast.Parameter
	Body        []ast.Statement
	CapturedEnv *Environment
	Context     ast.Expression
}

func (*Function) Kind() Kind     { return FunctionKind }
func (*Function) Truthy() bool   { return true }
func (f *Function) String() string {
	if f.Name != "" {
		return fmt.Sprintf("<function %s>", f.Name)
	}
	return "<closure>"
}

// Bind returns a copy of f with ctx set as its deferred `this` expression —
// used when a method is read off a struct instance so later calls resolve
// `this` against that instance.
func (f *Function) Bind(ctx ast.Expression) *Function {
	bound := *f
	bound.Context = ctx
	return &bound
}

// ArgumentValue is one evaluated call argument; Name is non-empty for a
// named argument.
type ArgumentValue struct {
	Name  string
	Value Value
}

// ArgumentValues is the evaluated argument list passed to every callable,
// user or native. It is deliberately a concrete type (not just []Value) so
// native methods can see argument names the same way user functions do.
type ArgumentValues []ArgumentValue

// Positional returns the values supplied without a name, in order.
func (a ArgumentValues) Positional() []Value {
	var out []Value
	for _, v := range a {
		if v.Name == "" {
			out = append(out, v.Value)
		}
	}
	return out
}

// Named looks up a named argument by name.
func (a ArgumentValues) Named(name string) (Value, bool) {
	for _, v := range a {
		if v.Name == name {
			return v.Value, true
		}
	}
	return nil, false
}

func (a ArgumentValues) Len() int { return len(a) }

// At returns the i'th value regardless of whether it was named, for native
// methods with a fixed, small arity that don't accept named arguments.
func (a ArgumentValues) At(i int) (Value, bool) {
	if i < 0 || i >= len(a) {
		return nil, false
	}
	return a[i].Value, true
}

// Interpreter is the slice of the evaluator native code is allowed to call
// back into. Defined here, rather than imported from package eval, so that
// object has no dependency on eval; eval.Interpreter satisfies this
// interface structurally.
type Interpreter interface {
	// Call invokes callee (a Function, NativeFunction, NativeMethod, or
	// Constant wrapping one) with the given arguments.
	Call(callee Value, args ArgumentValues) (Value, error)
}

// NativeFunctionCallback is the signature every builtin global function
// implements.
type NativeFunctionCallback func(interp Interpreter, args ArgumentValues) (Value, error)

// NativeMethodCallback is the signature every builtin method on a String,
// Number, List, or DateTime receiver implements.
type NativeMethodCallback func(interp Interpreter, receiver Value, args ArgumentValues) (Value, error)

// NativeFunction is a builtin free function, e.g. print or len.
type NativeFunction struct {
	Name     string
	Callback NativeFunctionCallback
}

func (*NativeFunction) Kind() Kind       { return NativeFunctionKind }
func (*NativeFunction) Truthy() bool     { return true }
func (n *NativeFunction) String() string { return fmt.Sprintf("<native function %s>", n.Name) }

// NativeMethod is a builtin method already bound to a receiver, e.g.
// "hello".upper — produced by property resolution on Strings, Numbers,
// Lists, and DateTimes, never written down directly.
type NativeMethod struct {
	Name     string
	Receiver Value
	Callback NativeMethodCallback
}

func (*NativeMethod) Kind() Kind       { return NativeMethodKind }
func (*NativeMethod) Truthy() bool     { return true }
func (n *NativeMethod) String() string { return fmt.Sprintf("<native method %s>", n.Name) }

// Struct is a struct definition: its data-field defaults and its method
// table. Methods is shared and mutable (the static method-assignment sugar
// `Point.translate = fn(this, ...) {...}` mutates it in place), matching
// the reference implementation's Rc<RefCell<HashMap<...>>>.
type Struct struct {
	Name    string
	Fields  []ast.Parameter
	Methods map[string]*Function
}

func (*Struct) Kind() Kind       { return StructKind }
func (*Struct) Truthy() bool     { return true }
func (s *Struct) String() string { return fmt.Sprintf("<struct %s>", s.Name) }

// FieldDefault looks up a data field's default-value expression.
func (s *Struct) FieldDefault(name string) (ast.Expression, bool) {
	for _, f := range s.Fields {
		if f.Name == name && f.HasInitial() {
			return f.Initial, true
		}
	}
	return nil, false
}

// HasField reports whether name is declared as a data field (with or
// without a default).
func (s *Struct) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// StructInstance is one instantiation of a Struct: a fresh environment
// holding its data fields plus copies of the struct's methods (with
// CapturedEnv cleared; `this` is bound when a method is looked up on the
// instance for a call), parented to nothing — instance field
// lookup never falls through to an enclosing scope.
//
// ID is a synthetic identity, distinct from the instance's fields, that
// the `--debug` dump uses to tell apart two instances that happen to hold
// equal field values.
type StructInstance struct {
	Definition *Struct
	Env        *Environment
	ID         string
}

func (*StructInstance) Kind() Kind { return StructInstanceKind }
func (*StructInstance) Truthy() bool { return true }
func (i *StructInstance) String() string {
	return fmt.Sprintf("<%s instance>", i.Definition.Name)
}

// DebugString includes the synthetic identity, for the `--debug` dump.
func (i *StructInstance) DebugString() string {
	return fmt.Sprintf("<%s instance %s>", i.Definition.Name, i.ID)
}

// Constant wraps any value to make it immutable: assigning to a name bound
// to a Constant is rejected by the evaluator, but reading through it
// transparently yields Inner.
type Constant struct {
	Inner Value
}

func (*Constant) Kind() Kind       { return ConstantKind }
func (c *Constant) Truthy() bool   { return c.Inner.Truthy() }
func (c *Constant) String() string { return c.Inner.String() }

// Unwrap strips any number of Constant wrappers, returning the underlying
// value. Most of the evaluator operates on unwrapped values; only the
// binding sites (Get/Assign) need to know about Constant itself.
func Unwrap(v Value) Value {
	for {
		c, ok := v.(*Constant)
		if !ok {
			return v
		}
		v = c.Inner
	}
}

// Equal implements the language's `==`: structural for Number/String/Bool,
// identity for List/StructInstance (shared references), value-based for
// DateTime, and false across mismatched kinds.
func Equal(a, b Value) bool {
	a, b = Unwrap(a), Unwrap(b)
	switch av := a.(type) {
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Null:
		_, ok := b.(Null)
		return ok
	case *List:
		bv, ok := b.(*List)
		return ok && av == bv
	case *StructInstance:
		bv, ok := b.(*StructInstance)
		return ok && av == bv
	case DateTime:
		bv, ok := b.(DateTime)
		return ok && av.Time.Equal(bv.Time)
	default:
		return false
	}
}
