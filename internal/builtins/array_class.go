package builtins

import (
	"fmt"

	"github.com/cwbudde/golox/internal/interp"
)

// registerArrayClass builds the `Array` class: a constructor taking a
// length (filling with nil), plus get/set/length/fill/foreach instance
// methods. Array literals (`[1, 2, 3]`) bypass the constructor and are
// built directly by the interpreter via NewArrayInstance, but they
// share this same class and therefore its methods.
func registerArrayClass(globals *interp.Environment) *interp.Class {
	class := interp.NewClass("Array", nil)

	class.NativeNew = func(ip *interp.Interpreter, args []interp.Value) (interp.Value, error) {
		if len(args) != 1 {
			return nil, interp.NewNativeError("Array() expects a single length argument.")
		}
		n, ok := args[0].(float64)
		if !ok || n < 0 {
			return nil, interp.NewNativeError("Array() length must be a non-negative number.")
		}
		return ip.NewArrayInstance(make([]interp.Value, int(n))), nil
	}

	class.Methods["get"] = &interp.NativeMethod{
		Name: "get", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			data, err := arrayData(receiver)
			if err != nil {
				return nil, err
			}
			i, err := arrayIndex(args[0], len(*data))
			if err != nil {
				return nil, err
			}
			return (*data)[i], nil
		},
	}

	class.Methods["set"] = &interp.NativeMethod{
		Name: "set", ArityVal: 2,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			data, err := arrayData(receiver)
			if err != nil {
				return nil, err
			}
			i, err := arrayIndex(args[0], len(*data))
			if err != nil {
				return nil, err
			}
			(*data)[i] = args[1]
			return args[1], nil
		},
	}

	class.Methods["length"] = &interp.NativeMethod{
		Name: "length", ArityVal: 0,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			data, err := arrayData(receiver)
			if err != nil {
				return nil, err
			}
			return float64(len(*data)), nil
		},
	}

	class.Methods["fill"] = &interp.NativeMethod{
		Name: "fill", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			data, err := arrayData(receiver)
			if err != nil {
				return nil, err
			}
			for i := range *data {
				(*data)[i] = args[0]
			}
			return receiver, nil
		},
	}

	class.Methods["foreach"] = &interp.NativeMethod{
		Name: "foreach", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			data, err := arrayData(receiver)
			if err != nil {
				return nil, err
			}
			fn, ok := args[0].(interp.Callable)
			if !ok {
				return nil, interp.NewNativeError("Array.foreach expects a function.")
			}
			if fn.Arity() != 2 {
				return nil, interp.NewNativeError(fmt.Sprintf("Expected 2 arguments but got %d.", fn.Arity()))
			}
			for i, el := range *data {
				if _, err := fn.Call(ip, []interp.Value{el, float64(i)}); err != nil {
					return nil, err
				}
			}
			return nil, nil
		},
	}

	globals.Define("Array", class)
	return class
}

func arrayData(receiver interp.Value) (*[]interp.Value, error) {
	inst, ok := receiver.(*interp.Instance)
	if !ok {
		return nil, interp.NewNativeError("Array method called on a non-array receiver.")
	}
	data, ok := inst.Native.(*[]interp.Value)
	if !ok {
		return nil, interp.NewNativeError("Array method called on a non-array receiver.")
	}
	return data, nil
}

func arrayIndex(v interp.Value, length int) (int, error) {
	n, ok := v.(float64)
	if !ok {
		return 0, interp.NewNativeError("Array index must be a number.")
	}
	i := int(n)
	if i < 0 || i >= length {
		return 0, interp.NewNativeError(fmt.Sprintf("Array index %d out of bounds.", i))
	}
	return i, nil
}
