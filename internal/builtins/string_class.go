package builtins

import (
	"fmt"
	"unicode/utf16"

	"github.com/cwbudde/golox/internal/interp"
)

// registerStringClass builds the static-only `String` class. Its
// length/charAt/charCodeAt operate on UTF-16 code units (matching
// jlox), not bytes or runes, so a source string is re-encoded through
// unicode/utf16 on every call rather than cached.
func registerStringClass(globals *interp.Environment) *interp.Class {
	class := interp.NewClass("String", nil)

	class.StaticMethods["length"] = &interp.NativeMethod{
		Name: "length", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, interp.NewNativeError("String.length expects a string.")
			}
			return float64(len(utf16.Encode([]rune(s)))), nil
		},
	}

	class.StaticMethods["charAt"] = &interp.NativeMethod{
		Name: "charAt", ArityVal: 2,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			units, i, err := stringUnits(args)
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(units) {
				return nil, interp.NewNativeError(fmt.Sprintf("String.charAt index %d out of bounds.", i))
			}
			return string(utf16.Decode(units[i : i+1])), nil
		},
	}

	class.StaticMethods["charCodeAt"] = &interp.NativeMethod{
		Name: "charCodeAt", ArityVal: 2,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			units, i, err := stringUnits(args)
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(units) {
				return nil, interp.NewNativeError(fmt.Sprintf("String.charCodeAt index %d out of bounds.", i))
			}
			return float64(units[i]), nil
		},
	}

	globals.Define("String", class)
	return class
}

// stringUnits decodes args[0] into UTF-16 code units and args[1] into
// an index, the shape charAt and charCodeAt share.
func stringUnits(args []interp.Value) ([]uint16, int, error) {
	s, ok := args[0].(string)
	if !ok {
		return nil, 0, interp.NewNativeError("expected a string argument.")
	}
	n, ok := args[1].(float64)
	if !ok {
		return nil, 0, interp.NewNativeError("expected a numeric index.")
	}
	return utf16.Encode([]rune(s)), int(n), nil
}
