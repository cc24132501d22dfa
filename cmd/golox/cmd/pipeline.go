package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/ast"
	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/cwbudde/golox/internal/resolver"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Exit codes match the Lox reference implementation's convention
// (itself sysexits.h-derived): 64 for a usage error, 65 for a compile
// (scan, parse, or resolve) error, 70 for a runtime failure.
const (
	exitUsage   = 64
	exitParse   = 65
	exitRuntime = 70
)

// maxOneArg is the shared Args validator for run/tokens/parse, all of
// which take a single optional file path. More than one argument is a
// usage error (spec.md §6): print a usage line and exit 64 directly,
// since returning an error from Args would otherwise surface through
// cobra's generic error path and exit 1 instead.
func maxOneArg(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s\n", cmd.UseLine())
		os.Exit(exitUsage)
	}
	return nil
}

// colorEnabled reports whether diagnostics should be ANSI-colored:
// true when stderr is a real terminal, unless overridden by cfg.
func colorEnabled(override *bool) bool {
	if override != nil {
		return *override
	}
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// compile runs the scan -> parse -> resolve pipeline shared by `run`
// (file or -e source) and the REPL; `parse` stops after parsing and
// does not use it. On any compile-time error it prints formatted
// diagnostics to stderr and returns ok=false; the caller decides
// whether that means exiting the process (a script) or just discarding
// the current line (the REPL).
func compile(source, filename string, color bool) (program *ast.Program, locals resolver.Locals, ok bool) {
	l := lexer.New(source)
	p := parser.New(l, source, filename)
	program = p.ParseProgram()

	var diags []*errors.CompilerError
	for _, se := range l.Errors() {
		diags = append(diags, errors.New(se.Pos, se.Message, source, filename))
	}
	diags = append(diags, p.Errors()...)

	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(diags, color))
		fmt.Fprintln(os.Stderr)
		return program, nil, false
	}

	res := resolver.New(source, filename)
	locals = res.Resolve(program)
	if len(res.Errors()) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(res.Errors(), color))
		fmt.Fprintln(os.Stderr)
		return program, nil, false
	}

	return program, locals, true
}
