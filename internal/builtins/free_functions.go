package builtins

import (
	"strconv"
	"time"

	"github.com/cwbudde/golox/internal/interp"
)

// registerFreeFunctions wires the free functions of spec.md §4.6 into
// globals: clock, string/number conversion, type introspection, and
// the field/method reflection helpers used by the `fields`/`methods`
// family.
func registerFreeFunctions(globals *interp.Environment) {
	define := func(name string, arity int, fn func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error)) {
		globals.Define(name, &interp.NativeFunction{Name: name, ArityVal: arity, Fn: fn})
	}

	define("clock", 0, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		return float64(time.Now().Unix()), nil
	})

	define("string", 1, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		return ip.Stringify(args[0]), nil
	})

	define("number", 1, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		switch v := args[0].(type) {
		case float64:
			return v, nil
		case string:
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil
			}
			return n, nil
		default:
			return nil, nil
		}
	})

	define("typeOf", 1, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		return typeOf(args[0]), nil
	})

	define("is", 2, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		return isOfType(args[0], args[1]), nil
	})

	define("fields", 1, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		inst, ok := args[0].(*interp.Instance)
		if !ok {
			return ip.NewArrayInstance(nil), nil
		}
		names := make([]interp.Value, 0, len(inst.Fields))
		for name := range inst.Fields {
			names = append(names, name)
		}
		return ip.NewArrayInstance(names), nil
	})

	define("methods", 1, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		inst, ok := args[0].(*interp.Instance)
		if !ok {
			return ip.NewArrayInstance(nil), nil
		}
		seen := map[string]bool{}
		var names []interp.Value
		for c := inst.Class; c != nil; c = c.Superclass {
			for name := range c.Methods {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}
		return ip.NewArrayInstance(names), nil
	})

	define("hasField", 2, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		inst, ok := args[0].(*interp.Instance)
		if !ok {
			return false, nil
		}
		name, ok := args[1].(string)
		if !ok {
			return false, nil
		}
		_, found := inst.Fields[name]
		return found, nil
	})

	define("hasMethod", 2, func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		inst, ok := args[0].(*interp.Instance)
		if !ok {
			return false, nil
		}
		name, ok := args[1].(string)
		if !ok {
			return false, nil
		}
		return inst.Class.FindMethod(name) != nil, nil
	})
}

// typeOf implements spec.md §4.6's `typeOf` type tags.
func typeOf(v interp.Value) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64:
		return "number"
	case *interp.Class:
		return "class"
	case *interp.Instance:
		return "instance"
	case interp.Callable:
		return "function"
	default:
		return "nil"
	}
}

// isOfType implements `is(v, t)`: t is either a type-code string
// (compared against typeOf) or a class (checked against v's class and
// its superclass chain).
func isOfType(v interp.Value, t interp.Value) bool {
	if code, ok := t.(string); ok {
		return typeOf(v) == code
	}
	class, ok := t.(*interp.Class)
	if !ok {
		return false
	}
	inst, ok := v.(*interp.Instance)
	if !ok {
		return false
	}
	for c := inst.Class; c != nil; c = c.Superclass {
		if c == class {
			return true
		}
	}
	return false
}
