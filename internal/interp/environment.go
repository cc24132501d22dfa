package interp

import (
	"fmt"

	"github.com/cwbudde/golox/internal/token"
)

// Environment is one lexical scope: a binding table plus a pointer to
// the enclosing scope it chains to. The global scope has a nil
// Enclosing.
type Environment struct {
	Enclosing *Environment
	values    map[string]Value
}

// NewEnvironment creates the top-level (global) environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewEnclosedEnvironment creates a scope nested inside enclosing.
func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	return &Environment{Enclosing: enclosing, values: make(map[string]Value)}
}

// Define binds name in this scope, shadowing any binding of the same
// name in an enclosing scope. Redefinition within the same scope is
// allowed (needed for the REPL and for `var a = a;`-style shadowing
// after the resolver has already run).
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Get looks up name starting in this scope and walking outward,
// reporting an undefined-variable runtime error at tok if not found.
func (e *Environment) Get(tok token.Token) (Value, error) {
	if v, ok := e.values[tok.Lexeme]; ok {
		return v, nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Get(tok)
	}
	return nil, newRuntimeError(tok, fmt.Sprintf("Undefined variable '%s'.", tok.Lexeme))
}

// Assign rebinds an existing name, searching outward the same way Get
// does; it does not create a new binding.
func (e *Environment) Assign(tok token.Token, value Value) error {
	if _, ok := e.values[tok.Lexeme]; ok {
		e.values[tok.Lexeme] = value
		return nil
	}
	if e.Enclosing != nil {
		return e.Enclosing.Assign(tok, value)
	}
	return newRuntimeError(tok, fmt.Sprintf("Undefined variable '%s'.", tok.Lexeme))
}

// ancestor walks exactly distance scopes outward. The resolver
// guarantees distance is always valid for the environment chain built
// at the matching point in execution.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.Enclosing
	}
	return env
}

// GetAt reads name exactly distance scopes out, bypassing the
// linear walk - used for resolver-backed lookups.
func (e *Environment) GetAt(distance int, name string) Value {
	return e.ancestor(distance).values[name]
}

// AssignAt rebinds name exactly distance scopes out.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).values[name] = value
}
