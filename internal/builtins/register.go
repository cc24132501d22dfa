// Package builtins wires the Lox standard library (spec.md §4.6) into
// an interpreter's global scope: free functions for conversion and
// reflection, plus the Console, String, Math, and Array classes.
package builtins

import (
	"github.com/cwbudde/golox/internal/config"
	"github.com/cwbudde/golox/internal/interp"
)

// Register populates ip.Globals with every built-in not named in
// cfg.DisabledBuiltins and sets ip.ArrayClass so array literals share
// the Array class's methods. Array is always registered regardless of
// cfg, since array literals depend on it directly. Call this once,
// before running any user source.
func Register(ip *interp.Interpreter, cfg *config.Config) {
	if cfg == nil {
		cfg = config.Default()
	}
	registerFreeFunctions(ip.Globals)
	if !cfg.Disabled("Console") {
		registerConsole(ip.Globals)
	}
	if !cfg.Disabled("String") {
		registerStringClass(ip.Globals)
	}
	if !cfg.Disabled("Math") {
		registerMathClass(ip.Globals)
	}
	ip.ArrayClass = registerArrayClass(ip.Globals)
}
