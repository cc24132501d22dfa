package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/token"
)

// Instance is a runtime object: a class pointer, a field table, and an
// optional Native payload. Native holds the underlying Go value for
// the built-in classes that aren't pure Lox - the Array class stores
// its backing []Value there rather than treating array elements as
// ordinary fields, since `arr[i]` indexes are not field names.
type Instance struct {
	Class  *Class
	Fields map[string]Value
	Native any
}

// NewInstance creates a bare instance of class with no fields set.
func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.Class.Name)
}

// Get resolves a property access `instance.name`: fields shadow
// methods, and a method found this way is bound to i before being
// returned.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := i.Class.findMethod(name.Lexeme); m != nil {
		return m.Bind(i), nil
	}
	return nil, newRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

// Set assigns a field, creating it if it doesn't already exist -
// Lox instances have no fixed field list.
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields[name.Lexeme] = value
}
