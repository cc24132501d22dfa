// Package interp is the tree-walking evaluator: environments, runtime
// values, user functions and classes, and the statement/expression
// evaluation loop itself.
package interp

import (
	"fmt"
	"strconv"
)

// Value is a Lox runtime value. The dynamic type is one of:
// nil, bool, float64, string, *Instance, *Class, or Callable
// (*Function, *NativeFunction, or *Class again, since classes are
// themselves callable as constructors).
type Value any

// Callable is anything that can appear on the left of a call
// expression: user functions, closures, native builtins, and classes
// (construction).
type Callable interface {
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
	String() string
}

// isTruthy implements Lox truthiness: nil and false are falsy,
// everything else - including 0 and "" - is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox `==`. Numbers and strings compare by value;
// everything else (instances, functions, classes, arrays) compares by
// identity, per spec.md's Open Question resolution recorded in
// DESIGN.md.
func isEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if an, ok := a.(float64); ok {
		bn, ok := b.(float64)
		return ok && an == bn
	}
	if as, ok := a.(string); ok {
		bs, ok := b.(string)
		return ok && as == bs
	}
	if ab, ok := a.(bool); ok {
		bb, ok := b.(bool)
		return ok && ab == bb
	}
	return a == b
}

// stringify renders v the way `print` and string concatenation do,
// using an instance's default `<ClassName instance>` form. Interpreter
// wraps this with the `toString` override check.
func stringify(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(val)
	case string:
		return val
	case *Instance:
		return val.String()
	case *Class:
		return val.String()
	case Callable:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatNumber trims the trailing ".0" an integral float64 would
// otherwise print, matching the reference stringification of numbers.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
