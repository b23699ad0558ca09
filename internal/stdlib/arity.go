// Package stdlib supplies the native (Go-implemented) functions and
// per-kind methods the evaluator cannot express in the scripting language
// itself: global functions (print, len, type, ...) and the method tables
// String/Number/List/DateTime values expose through MethodCall.
//
// The reference Rust implementation split these across
// src/stdlib/{global,string,number,list,datetime}.rs; only
// src/stdlib/mod.rs was available here, so the concrete method surface
// below is original work, built in a plain switch-dispatched style rather
// than ported line for line.
package stdlib

import (
	"fmt"

	"github.com/lugli-lang/lugli/internal/object"
)

// Arity reports an error if args does not carry exactly n positional
// values (or at least n, when allowMore is set) — the Go counterpart of
// the original stdlib's arity() panic helper, turned into a returned error
// since native methods here report failure rather than abort the process.
func Arity(name string, n int, args object.ArgumentValues, allowMore bool) error {
	got := len(args.Positional())
	if allowMore && got >= n {
		return nil
	}
	if !allowMore && got == n {
		return nil
	}
	if allowMore {
		return fmt.Errorf("%s expects at least %d argument(s), got %d", name, n, got)
	}
	return fmt.Errorf("%s expects %d argument(s), got %d", name, n, got)
}
