package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/token"
)

// Function is a user-defined function: a named declaration, a method,
// or an anonymous `fun (...) {...}` expression, all represented the
// same way once parsed. Closure is the environment captured at
// definition time.
type Function struct {
	name          string
	params        []token.Token
	body          []ast.Statement
	closure       *Environment
	isInitializer bool
}

// NewFunction wraps a declaration with the environment it closes over.
func NewFunction(name string, params []token.Token, body []ast.Statement, closure *Environment, isInitializer bool) *Function {
	return &Function{name: name, params: params, body: body, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.params) }

func (f *Function) String() string {
	if f.name == "" {
		return "<anonymous fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

// Bind returns a copy of f whose closure has `this` (and, for methods
// of a subclass, `super` already resolved through that closure) bound
// to receiver. Used when a method is looked up off an instance.
func (f *Function) Bind(receiver Value) Callable {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", receiver)
	return NewFunction(f.name, f.params, f.body, env, f.isInitializer)
}

// Call runs the function body in a fresh scope over its closure,
// binding each parameter to the matching argument. A `return` inside
// the body surfaces here as a *returnSignal rather than propagating
// further. An initializer always returns `this`, ignoring any
// explicit return value (spec.md §7: "Can't return a value from an
// initializer" is rejected earlier, by the resolver).
func (f *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, p := range f.params {
		env.Define(p.Lexeme, args[i])
	}

	err := interp.executeBlock(f.body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

// NativeFunction adapts a Go function as a Lox-callable builtin (see
// internal/builtins).
type NativeFunction struct {
	Name     string
	ArityVal int
	Fn       func(interp *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.ArityVal }
func (n *NativeFunction) String() string {
	return "<native fn>"
}
func (n *NativeFunction) Call(interp *Interpreter, args []Value) (Value, error) {
	return n.Fn(interp, args)
}
