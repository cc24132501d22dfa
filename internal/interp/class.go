package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/token"
)

// Method is anything that can sit in a class's method table: a
// user-defined Function (see Bind) or a NativeMethod wrapping Go code
// (see internal/builtins). Binding either to a receiver produces an
// ordinary Callable.
type Method interface {
	Bind(receiver Value) Callable
}

// Class is a Lox class: its instance method table, its static method
// table (the spec's "metaclass" - static methods are looked up and
// bound to the class value itself, exactly as instance methods are
// looked up and bound to an instance), and an optional superclass for
// single inheritance. A class is also itself an instance (spec.md §3,
// invariant 4): Fields backs static field get/set through the same
// instance machinery ordinary instances use.
type Class struct {
	Name          string
	Superclass    *Class
	Methods       map[string]Method
	StaticMethods map[string]Method
	Fields        map[string]Value

	// NativeNew, when set, replaces the default
	// allocate-then-run-"init" construction path. Built-in classes
	// that need to set up native data (Array) use it; ordinary Lox
	// classes leave it nil.
	NativeNew func(interp *Interpreter, args []Value) (Value, error)
}

// NewClass creates a class with empty method and field tables ready to
// be populated by the interpreter while executing a ClassStmt, or by
// internal/builtins while registering a built-in.
func NewClass(name string, superclass *Class) *Class {
	return &Class{
		Name:          name,
		Superclass:    superclass,
		Methods:       make(map[string]Method),
		StaticMethods: make(map[string]Method),
		Fields:        make(map[string]Value),
	}
}

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.Name) }

// findMethod looks up an instance method, walking the superclass
// chain.
func (c *Class) findMethod(name string) Method {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil
}

// findStaticMethod looks up a static method, walking the superclass
// chain the same way findMethod does - single inheritance applies
// uniformly to the metaclass.
func (c *Class) findStaticMethod(name string) Method {
	if m, ok := c.StaticMethods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.findStaticMethod(name)
	}
	return nil
}

// FindMethod exposes findMethod for internal/builtins' introspection
// helpers (methods/hasMethod).
func (c *Class) FindMethod(name string) Method { return c.findMethod(name) }

// FindStaticMethod exposes findStaticMethod for symmetry with
// FindMethod.
func (c *Class) FindStaticMethod(name string) Method { return c.findStaticMethod(name) }

// Get resolves `ClassName.name`: static fields shadow static methods,
// exactly as instance fields shadow instance methods on Instance.Get -
// a class is also an instance of its own metaclass. A static method
// found this way is bound to the class itself so its body can call
// other static methods through `this`.
func (c *Class) Get(name token.Token) (Value, error) {
	if v, ok := c.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := c.findStaticMethod(name.Lexeme); m != nil {
		return m.Bind(c), nil
	}
	return nil, newRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

// Set assigns a static field, creating it if it doesn't already exist.
func (c *Class) Set(name token.Token, value Value) {
	c.Fields[name.Lexeme] = value
}

func (c *Class) Arity() int {
	if c.NativeNew != nil {
		// The only native constructor, Array, takes one argument: the length.
		return 1
	}
	switch init := c.findMethod("init").(type) {
	case *Function:
		return init.Arity()
	case *NativeMethod:
		return init.ArityVal
	default:
		return 0
	}
}

// Call constructs a new instance. If NativeNew is set it takes over
// entirely (used by Array, whose constructor builds native backing
// storage rather than running a Lox `init`); otherwise a bare instance
// is allocated and its `init` method, if any, is run over it.
func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	if c.NativeNew != nil {
		return c.NativeNew(interp, args)
	}
	instance := NewInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}
