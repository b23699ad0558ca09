package eval

import "github.com/lugli-lang/lugli/internal/object"

// SignalKind distinguishes the three non-local control transfers the
// evaluator propagates as errors — the Go equivalent of the original
// interpreter's Return/Break/Continue InterpreterResult variants.
type SignalKind int

const (
	SigReturn SignalKind = iota
	SigBreak
	SigContinue
)

// Signal is the error value execStatement/evalExpression return to unwind
// out of nested blocks to the nearest matching boundary: SigBreak/
// SigContinue unwind to the nearest enclosing loop, SigReturn to the
// nearest enclosing function call.
type Signal struct {
	Kind  SignalKind
	Value object.Value // populated only for SigReturn
}

func (s *Signal) Error() string {
	switch s.Kind {
	case SigReturn:
		return "return outside a function"
	case SigBreak:
		return "break outside a loop"
	case SigContinue:
		return "continue outside a loop"
	}
	return "signal"
}

func asSignal(err error) (*Signal, bool) {
	sig, ok := err.(*Signal)
	return sig, ok
}
