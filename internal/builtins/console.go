package builtins

import (
	"bufio"
	"fmt"

	"github.com/cwbudde/golox/internal/interp"
)

// registerConsole builds the static-only `Console` class: readLine,
// writeLine, write, reading from and writing to the interpreter's
// configured streams rather than hardcoded to the process's stdio.
func registerConsole(globals *interp.Environment) *interp.Class {
	class := interp.NewClass("Console", nil)

	class.StaticMethods["readLine"] = &interp.NativeMethod{
		Name: "readLine", ArityVal: 0,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			reader := bufio.NewReader(ip.Stdin)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil, nil
			}
			for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
				line = line[:len(line)-1]
			}
			return line, nil
		},
	}

	class.StaticMethods["writeLine"] = &interp.NativeMethod{
		Name: "writeLine", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			fmt.Fprintln(ip.Stdout, ip.Stringify(args[0]))
			return nil, nil
		},
	}

	class.StaticMethods["write"] = &interp.NativeMethod{
		Name: "write", ArityVal: 1,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			fmt.Fprint(ip.Stdout, ip.Stringify(args[0]))
			return nil, nil
		},
	}

	globals.Define("Console", class)
	return class
}
