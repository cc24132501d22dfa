package interp

import (
	"fmt"
	"io"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/cwbudde/golox/internal/token"
)

// Interpreter evaluates a resolved Program against a chain of
// environments rooted at Globals. One Interpreter is reused across an
// entire REPL session so that top-level declarations persist between
// lines.
type Interpreter struct {
	Globals     *Environment
	environment *Environment
	locals      resolver.Locals
	Stdout      io.Writer
	Stdin       io.Reader

	// ArrayClass backs array literals and the Array() constructor; set
	// once by internal/builtins during global registration so that
	// `[1, 2, 3]` and `Array(3)` produce instances of the same class
	// and share its length/fill/foreach methods.
	ArrayClass *Class
}

// New creates an Interpreter with the given globals (already
// populated with built-ins by internal/builtins), the resolver's
// locals side table, and the I/O streams the Console built-in and
// `print` statements use.
func New(globals *Environment, locals resolver.Locals, stdout io.Writer, stdin io.Reader) *Interpreter {
	return &Interpreter{Globals: globals, environment: globals, locals: locals, Stdout: stdout, Stdin: stdin}
}

// MergeLocals adds more resolver output to the interpreter's side
// table. The REPL resolves and interprets one line at a time but
// keeps a single Interpreter (and therefore a single locals map)
// alive across the whole session.
func (in *Interpreter) MergeLocals(locals resolver.Locals) {
	for id, dist := range locals {
		in.locals[id] = dist
	}
}

// Interpret runs every top-level statement in order, stopping at the
// first runtime error (the caller decides whether that ends the
// process or just the current REPL line).
func (in *Interpreter) Interpret(program *ast.Program) error {
	for _, stmt := range program.Statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ---- statements ----

func (in *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, in.Stringify(v))
		return nil

	case *ast.VarStmt:
		var value Value
		if s.Init != nil {
			v, err := in.evaluate(s.Init)
			if err != nil {
				return err
			}
			value = v
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.FunctionStmt:
		fn := NewFunction(s.Name.Lexeme, s.Params, s.Body, in.environment, false)
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ClassStmt:
		return in.executeClass(s)

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.environment))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}
	}
	return nil
}

// executeBlock runs stmts in env, restoring the previous environment
// before returning - including when a *returnSignal or error unwinds
// through it.
func (in *Interpreter) executeBlock(stmts []ast.Statement, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range stmts {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass implements the multi-step class-declaration dance from
// spec.md §4.5: evaluate and type-check the superclass, declare the
// name, create a `super` scope if there is a superclass, build the
// method tables closing over that scope (the interpreter's current
// environment is left unchanged), then bind the finished class object
// to its name.
func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.environment.Define(s.Name.Lexeme, nil)

	methodEnv := in.environment
	if superclass != nil {
		methodEnv = NewEnclosedEnvironment(in.environment)
		methodEnv.Define("super", superclass)
	}

	class := NewClass(s.Name.Lexeme, superclass)
	for _, m := range s.Methods {
		class.Methods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Params, m.Body, methodEnv, m.Name.Lexeme == "init")
	}
	for _, m := range s.StaticMethods {
		class.StaticMethods[m.Name.Lexeme] = NewFunction(m.Name.Lexeme, m.Params, m.Body, methodEnv, false)
	}

	return in.environment.Assign(s.Name, class)
}

// ---- expressions ----

func (in *Interpreter) evaluate(expr ast.Expression) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Grouping:
		return in.evaluate(e.Inner)

	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)

	case *ast.Assign:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if dist, ok := in.locals[e.ID()]; ok {
			in.environment.AssignAt(dist, e.Name.Lexeme, value)
		} else if err := in.Globals.Assign(e.Name, value); err != nil {
			return nil, err
		}
		return value, nil

	case *ast.Unary:
		return in.evalUnary(e)

	case *ast.Binary:
		return in.evalBinary(e)

	case *ast.Logical:
		return in.evalLogical(e)

	case *ast.Call:
		return in.evalCall(e)

	case *ast.Get:
		return in.evalGet(e)

	case *ast.Set:
		return in.evalSet(e)

	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)

	case *ast.Super:
		return in.evalSuper(e)

	case *ast.FunctionExpr:
		return NewFunction("", e.Params, e.Body, in.environment, false), nil

	case *ast.Array:
		elements := make([]Value, len(e.Elements))
		for i, el := range e.Elements {
			v, err := in.evaluate(el)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return in.NewArrayInstance(elements), nil
	}
	return nil, nil
}

// Stringify renders v for `print` and for the `string()` built-in,
// preferring a bound `toString` instance method over the default
// `<ClassName instance>` form (spec.md §4.5, Stringification).
func (in *Interpreter) Stringify(v Value) string {
	if inst, ok := v.(*Instance); ok {
		if m := inst.Class.findMethod("toString"); m != nil {
			bound := m.Bind(inst)
			if bound.Arity() == 0 {
				result, err := bound.Call(in, nil)
				if err == nil {
					if s, ok := result.(string); ok {
						return s
					}
				}
			}
		}
	}
	return stringify(v)
}

func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expression) (Value, error) {
	if dist, ok := in.locals[expr.ID()]; ok {
		return in.environment.GetAt(dist, name.Lexeme), nil
	}
	return in.Globals.Get(name)
}

func (in *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Type {
	case token.Minus:
		n, ok := right.(float64)
		if !ok {
			return nil, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator.")
}

func (in *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Type == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.Plus:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case token.Minus:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.Star:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.Slash:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l / r, nil
	case token.Greater:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GreaterEqual:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.Less:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LessEqual:
		l, r, err := in.numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.EqualEqual:
		return isEqual(left, right), nil
	case token.BangEqual:
		return !isEqual(left, right), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown binary operator.")
}

func (in *Interpreter) numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	ln, ok := left.(float64)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	rn, ok := right.(float64)
	if !ok {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}
	return ln, rn, nil
}

func (in *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(e.Paren, fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}
	return fn.Call(in, args)
}

// evalGet implements the Get unification: the index expression's
// runtime type decides whether this is a property lookup (string key,
// on an Instance or a Class) or an array index (numeric key, on an
// Instance whose Native payload is a []Value).
func (in *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	idx, err := in.evaluate(e.Index)
	if err != nil {
		return nil, err
	}

	switch key := idx.(type) {
	case string:
		name := token.Token{Type: token.Identifier, Lexeme: key, Line: e.Bracket.Line}
		switch o := obj.(type) {
		case *Instance:
			return o.Get(name)
		case *Class:
			return o.Get(name)
		default:
			return nil, newRuntimeError(e.Bracket, "Only instances have properties.")
		}
	case float64:
		arr, err := in.arrayData(obj, e.Bracket)
		if err != nil {
			return nil, err
		}
		i := int(key)
		if i < 0 || i >= len(*arr) {
			return nil, newRuntimeError(e.Bracket, "Array index out of bounds.")
		}
		return (*arr)[i], nil
	default:
		return nil, newRuntimeError(e.Bracket, "Index must be a property name or a number.")
	}
}

func (in *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	idx, err := in.evaluate(e.Index)
	if err != nil {
		return nil, err
	}
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	switch key := idx.(type) {
	case string:
		name := token.Token{Type: token.Identifier, Lexeme: key, Line: e.Bracket.Line}
		switch o := obj.(type) {
		case *Instance:
			o.Set(name, value)
		case *Class:
			o.Set(name, value)
		default:
			return nil, newRuntimeError(e.Bracket, "Only instances have fields.")
		}
		return value, nil
	case float64:
		arr, err := in.arrayData(obj, e.Bracket)
		if err != nil {
			return nil, err
		}
		i := int(key)
		if i < 0 || i >= len(*arr) {
			return nil, newRuntimeError(e.Bracket, "Array index out of bounds.")
		}
		(*arr)[i] = value
		return value, nil
	default:
		return nil, newRuntimeError(e.Bracket, "Index must be a property name or a number.")
	}
}

// arrayData extracts the backing element slice of an array instance,
// as a pointer so callers can mutate it in place.
func (in *Interpreter) arrayData(obj Value, at token.Token) (*[]Value, error) {
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, newRuntimeError(at, "Only arrays support indexing.")
	}
	arr, ok := inst.Native.(*[]Value)
	if !ok {
		return nil, newRuntimeError(at, "Only arrays support indexing.")
	}
	return arr, nil
}

// NewArrayInstance builds an Array instance around elements, backed by
// ArrayClass so its instance methods (length, fill, foreach, ...) are
// visible through ordinary property lookup.
func (in *Interpreter) NewArrayInstance(elements []Value) *Instance {
	class := in.ArrayClass
	if class == nil {
		class = NewClass("Array", nil)
	}
	instance := NewInstance(class)
	instance.Native = &elements
	return instance
}

// evalSuper resolves `super.method` both from instance methods and -
// since static methods are bound to the class value exactly as
// instance methods are bound to instances (spec.md §4.5's metaclass
// design) - from static methods when the bound receiver at `this` is
// the class itself rather than an instance.
func (in *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	dist, ok := in.locals[e.ID()]
	if !ok {
		return nil, newRuntimeError(e.Keyword, "Unresolved 'super'.")
	}
	superclass, _ := in.environment.GetAt(dist, "super").(*Class)
	receiver := in.environment.GetAt(dist-1, "this")

	var method Method
	if _, isClass := receiver.(*Class); isClass {
		method = superclass.findStaticMethod(e.Method.Lexeme)
	} else {
		method = superclass.findMethod(e.Method.Lexeme)
	}
	if method == nil {
		return nil, newRuntimeError(e.Method, fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(receiver), nil
}
