package builtins

import (
	"math"

	"github.com/cwbudde/golox/internal/interp"
)

// registerMathClass builds the static-only `Math` class: `mod` (the
// floating remainder, unlike Lox's `%`-less grammar which has no
// modulo operator) and `round` to d decimal places.
func registerMathClass(globals *interp.Environment) *interp.Class {
	class := interp.NewClass("Math", nil)

	class.StaticMethods["mod"] = &interp.NativeMethod{
		Name: "mod", ArityVal: 2,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			a, ok1 := args[0].(float64)
			b, ok2 := args[1].(float64)
			if !ok1 || !ok2 {
				return nil, interp.NewNativeError("Math.mod expects two numbers.")
			}
			return math.Mod(a, b), nil
		},
	}

	class.StaticMethods["round"] = &interp.NativeMethod{
		Name: "round", ArityVal: 2,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			v, ok1 := args[0].(float64)
			d, ok2 := args[1].(float64)
			if !ok1 || !ok2 {
				return nil, interp.NewNativeError("Math.round expects two numbers.")
			}
			scale := math.Pow(10, d)
			return math.Round(v*scale) / scale, nil
		},
	}

	globals.Define("Math", class)
	return class
}
