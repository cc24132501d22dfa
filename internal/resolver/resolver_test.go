package resolver

import (
	"strings"
	"testing"

	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
)

func resolveSource(t *testing.T, source string) *Resolver {
	t.Helper()
	p := parser.New(lexer.New(source), source, "<test>")
	program := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := New(source, "<test>")
	r.Resolve(program)
	return r
}

func hasErrorContaining(r *Resolver, substr string) bool {
	for _, e := range r.Errors() {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestResolvesLocalVariable(t *testing.T) {
	r := resolveSource(t, `
{
  var a = 1;
  print a;
}
`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
	if len(r.locals) != 1 {
		t.Fatalf("expected exactly one resolved local, got %d", len(r.locals))
	}
}

func TestReadInOwnInitializerIsError(t *testing.T) {
	r := resolveSource(t, `{ var a = a; }`)
	if !hasErrorContaining(r, "own initializer") {
		t.Fatalf("expected own-initializer error, got %v", r.Errors())
	}
}

func TestRedeclarationInSameScopeIsError(t *testing.T) {
	r := resolveSource(t, `{ var a = 1; var a = 2; }`)
	if !hasErrorContaining(r, "Already a variable") {
		t.Fatalf("expected redeclaration error, got %v", r.Errors())
	}
}

func TestReturnAtTopLevelIsError(t *testing.T) {
	r := resolveSource(t, `return 1;`)
	if !hasErrorContaining(r, "Can't return from top-level") {
		t.Fatalf("expected top-level return error, got %v", r.Errors())
	}
}

func TestReturnValueFromInitializerIsError(t *testing.T) {
	r := resolveSource(t, `
class A {
  init() { return 1; }
}
`)
	if !hasErrorContaining(r, "Can't return a value from an initializer") {
		t.Fatalf("expected initializer-return error, got %v", r.Errors())
	}
}

func TestThisOutsideClassIsError(t *testing.T) {
	r := resolveSource(t, `print this;`)
	if !hasErrorContaining(r, "Can't use 'this'") {
		t.Fatalf("expected this-outside-class error, got %v", r.Errors())
	}
}

func TestSuperWithoutSuperclassIsError(t *testing.T) {
	r := resolveSource(t, `
class A {
  m() { super.m(); }
}
`)
	if !hasErrorContaining(r, "no superclass") {
		t.Fatalf("expected super-without-superclass error, got %v", r.Errors())
	}
}

func TestMethodsResolveThisAndSuper(t *testing.T) {
	r := resolveSource(t, `
class A {
  m() { return 1; }
}
class B < A {
  m() { return this.m() + super.m(); }
}
`)
	if len(r.Errors()) != 0 {
		t.Fatalf("unexpected errors: %v", r.Errors())
	}
}
