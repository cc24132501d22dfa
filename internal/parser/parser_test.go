package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/lexer"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := New(lexer.New(source), source, "<test>")
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", source, p.Errors())
	}
	return program
}

func TestParseVarAndExpression(t *testing.T) {
	program := parseSource(t, `var x = 1 + 2 * 3;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	stmt, ok := program.Statements[0].(*ast.VarStmt)
	if !ok {
		t.Fatalf("expected *ast.VarStmt, got %T", program.Statements[0])
	}
	if stmt.Name.Lexeme != "x" {
		t.Fatalf("expected name x, got %s", stmt.Name.Lexeme)
	}
	want := "(1 + (2 * 3))"
	if got := stmt.Init.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAugmentedAssignmentRewrite(t *testing.T) {
	program := parseSource(t, `x += 1;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	assign, ok := stmt.Expr.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt.Expr)
	}
	want := "(x = (x + 1))"
	if got := assign.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestForDesugarsToWhile(t *testing.T) {
	program := parseSource(t, `for (var i = 0; i < 3; i = i + 1) print i;`)
	if len(program.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(program.Statements))
	}
	block, ok := program.Statements[0].(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected desugared for to produce a BlockStmt, got %T", program.Statements[0])
	}
	if len(block.Statements) != 2 {
		t.Fatalf("expected initializer + while, got %d statements", len(block.Statements))
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected first statement to be the initializer, got %T", block.Statements[0])
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be a WhileStmt, got %T", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok {
		t.Fatalf("expected while body wrapped with increment, got %T", whileStmt.Body)
	}
	if len(body.Statements) != 2 {
		t.Fatalf("expected original body + increment, got %d statements", len(body.Statements))
	}
}

func TestClassWithStaticMethod(t *testing.T) {
	program := parseSource(t, `
class Math2 {
  class square(x) { return x * x; }
  init(v) { this.v = v; }
}
`)
	class, ok := program.Statements[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", program.Statements[0])
	}
	if len(class.StaticMethods) != 1 || class.StaticMethods[0].Name.Lexeme != "square" {
		t.Fatalf("expected one static method 'square', got %+v", class.StaticMethods)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "init" {
		t.Fatalf("expected one instance method 'init', got %+v", class.Methods)
	}
}

func TestAnonymousFunctionExpression(t *testing.T) {
	program := parseSource(t, `var f = fun (a, b) { return a + b; };`)
	stmt := program.Statements[0].(*ast.VarStmt)
	if _, ok := stmt.Init.(*ast.FunctionExpr); !ok {
		t.Fatalf("expected *ast.FunctionExpr, got %T", stmt.Init)
	}
}

func TestFunAsExpressionStatement(t *testing.T) {
	program := parseSource(t, `fun (x) { print x; };`)
	stmt, ok := program.Statements[0].(*ast.ExpressionStmt)
	if !ok {
		t.Fatalf("expected fun(...) {...}; to parse as an expression statement, got %T", program.Statements[0])
	}
	if _, ok := stmt.Expr.(*ast.FunctionExpr); !ok {
		t.Fatalf("expected the statement to hold the function expression, got %T", stmt.Expr)
	}
}

func TestArrayLiteralAndIndexGet(t *testing.T) {
	program := parseSource(t, `print [10, 20][0];`)
	stmt := program.Statements[0].(*ast.PrintStmt)
	get, ok := stmt.Expr.(*ast.Get)
	if !ok {
		t.Fatalf("expected *ast.Get, got %T", stmt.Expr)
	}
	if arr, ok := get.Object.(*ast.Array); !ok || len(arr.Elements) != 2 {
		t.Fatalf("expected a two-element array literal as the indexed object, got %+v", get.Object)
	}
	if lit, ok := get.Index.(*ast.Literal); !ok || lit.Value != float64(0) {
		t.Fatalf("expected bracket index to stay the number literal 0, not a property name, got %+v", get.Index)
	}
}

func TestPropertyGetAndSet(t *testing.T) {
	program := parseSource(t, `obj.field = 1;`)
	stmt := program.Statements[0].(*ast.ExpressionStmt)
	set, ok := stmt.Expr.(*ast.Set)
	if !ok {
		t.Fatalf("expected *ast.Set, got %T", stmt.Expr)
	}
	if lit, ok := set.Index.(*ast.Literal); !ok || lit.Value != "field" {
		t.Fatalf("expected dot access to lower to Literal(\"field\"), got %+v", set.Index)
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	p := New(lexer.New(`var ;
var x = 1;`), `var ;
var x = 1;`, "<test>")
	program := p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	found := false
	for _, s := range program.Statements {
		if v, ok := s.(*ast.VarStmt); ok && v.Name.Lexeme == "x" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse 'var x = 1;'")
	}
}

func TestSuperclassSelfInheritanceIsReported(t *testing.T) {
	p := New(lexer.New(`class A < A {}`), `class A < A {}`, "<test>")
	p.ParseProgram()
	found := false
	for _, e := range p.Errors() {
		if strings.Contains(e.Message, "inherit from itself") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a self-inheritance error, got %v", p.Errors())
	}
}
