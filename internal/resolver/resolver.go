// Package resolver performs a static pass between parsing and
// interpretation: it resolves every Variable, Assign, This, and Super
// reference to a scope distance the interpreter can use for O(1)
// environment lookups, and rejects a handful of errors that are only
// detectable once the whole program's lexical structure is visible
// (spec.md §7).
package resolver

import (
	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/token"
)

type functionKind int

const (
	kindNone functionKind = iota
	kindFunction
	kindMethod
	kindStaticMethod
	kindInitializer
)

type classKind int

const (
	classNone classKind = iota
	classClass
	classSubclass
)

// Locals maps an Expression's ID (Variable, Assign, This, or Super) to
// the number of scopes between its use and the scope that declares it.
// Absence means the name resolves at global scope.
type Locals map[int]int

// Resolver walks a Program once, after parsing and before
// interpretation, populating a Locals side table.
type Resolver struct {
	scopes          []map[string]bool
	locals          Locals
	errors          []*errors.CompilerError
	source          string
	file            string
	currentFunction functionKind
	currentClass    classKind
}

// New creates a Resolver for the given source (used for error
// formatting only).
func New(source, file string) *Resolver {
	return &Resolver{locals: make(Locals), source: source, file: file}
}

// Errors returns every resolution error found.
func (r *Resolver) Errors() []*errors.CompilerError {
	return r.errors
}

// Resolve walks program and returns the populated Locals table.
func (r *Resolver) Resolve(program *ast.Program) Locals {
	r.resolveStatements(program.Statements)
	return r.locals
}

func (r *Resolver) errAt(line int, message string) {
	r.errors = append(r.errors, errors.New(token.Position{Line: line}, message, r.source, r.file))
}

// ---- scopes ----

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, map[string]bool{})
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) scopeTop() map[string]bool {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare marks name as declared-but-not-yet-initialized in the
// current scope, so a naive `var a = a;` can be caught as an error.
func (r *Resolver) declare(name token.Token) {
	scope := r.scopeTop()
	if scope == nil {
		return
	}
	if _, ok := scope[name.Lexeme]; ok {
		r.errAt(name.Line, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	scope := r.scopeTop()
	if scope == nil {
		return
	}
	scope[name.Lexeme] = true
}

// resolveLocal walks outward from the innermost scope looking for
// name, recording the distance if found. An unresolved name is left
// out of Locals entirely, meaning "look it up as a global".
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
}

// ---- statements ----

func (r *Resolver) resolveStatements(stmts []ast.Statement) {
	for _, s := range stmts {
		r.resolveStatement(s)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.resolveExpression(s.Init)
		}
		r.define(s.Name)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s.Params, s.Body, kindFunction)

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expr)

	case *ast.PrintStmt:
		r.resolveExpression(s.Expr)

	case *ast.ReturnStmt:
		if r.currentFunction == kindNone {
			r.errAt(s.Keyword.Line, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == kindInitializer {
				r.errAt(s.Keyword.Line, "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}

	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()

	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}

	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errAt(s.Superclass.Name.Line, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(s.Superclass)

		r.beginScope()
		r.scopeTop()["super"] = true
	}

	r.beginScope()
	r.scopeTop()["this"] = true

	for _, m := range s.Methods {
		kind := kindMethod
		if m.Name.Lexeme == "init" {
			kind = kindInitializer
		}
		r.resolveFunction(m.Params, m.Body, kind)
	}
	for _, m := range s.StaticMethods {
		r.resolveFunction(m.Params, m.Body, kindStaticMethod)
	}

	r.endScope() // "this"
	if s.Superclass != nil {
		r.endScope() // "super"
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(params []token.Token, body []ast.Statement, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStatements(body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// ---- expressions ----

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Variable:
		if scope := r.scopeTop(); scope != nil {
			if defined, ok := scope[e.Name.Lexeme]; ok && !defined {
				r.errAt(e.Name.Line, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)

	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Unary:
		r.resolveExpression(e.Right)

	case *ast.Grouping:
		r.resolveExpression(e.Inner)

	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, a := range e.Args {
			r.resolveExpression(a)
		}

	case *ast.Get:
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Index)

	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
		r.resolveExpression(e.Index)

	case *ast.This:
		if r.currentClass == classNone {
			r.errAt(e.Keyword.Line, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.errAt(e.Keyword.Line, "Can't use 'super' outside of a class.")
		case classClass:
			r.errAt(e.Keyword.Line, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.FunctionExpr:
		r.resolveFunction(e.Params, e.Body, kindFunction)

	case *ast.Array:
		for _, el := range e.Elements {
			r.resolveExpression(el)
		}

	case *ast.Literal:
		// nothing to resolve
	}
}
