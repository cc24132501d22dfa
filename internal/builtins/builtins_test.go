package builtins

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/golox/internal/interp"
	"github.com/cwbudde/golox/internal/token"
)

func newTestInterpreter(stdin string) (*interp.Interpreter, *bytes.Buffer) {
	var out bytes.Buffer
	ip := interp.New(interp.NewEnvironment(), map[int]int{}, &out, strings.NewReader(stdin))
	Register(ip, nil)
	return ip, &out
}

func mustGetClass(t *testing.T, ip *interp.Interpreter, name string) *interp.Class {
	t.Helper()
	v, err := ip.Globals.Get(token.Token{Lexeme: name})
	require.NoError(t, err)
	class, ok := v.(*interp.Class)
	require.True(t, ok, "%s is not a *interp.Class", name)
	return class
}

func TestStringLengthUsesUTF16CodeUnits(t *testing.T) {
	ip, _ := newTestInterpreter("")
	class := mustGetClass(t, ip, "String")
	length := class.StaticMethods["length"].Bind(class)

	// U+1F600 (grinning face) is a surrogate pair: 2 UTF-16 code units, 1 rune.
	result, err := length.Call(ip, []interp.Value{"a\U0001F600b"})
	require.NoError(t, err)
	assert.Equal(t, float64(4), result)
}

func TestStringCharAtAndCharCodeAt(t *testing.T) {
	ip, _ := newTestInterpreter("")
	class := mustGetClass(t, ip, "String")
	charAt := class.StaticMethods["charAt"].Bind(class)
	charCodeAt := class.StaticMethods["charCodeAt"].Bind(class)

	ch, err := charAt.Call(ip, []interp.Value{"hello", float64(1)})
	require.NoError(t, err)
	assert.Equal(t, "e", ch)

	code, err := charCodeAt.Call(ip, []interp.Value{"hello", float64(1)})
	require.NoError(t, err)
	assert.Equal(t, float64('e'), code)

	_, err = charAt.Call(ip, []interp.Value{"hello", float64(10)})
	assert.Error(t, err, "expected an out-of-bounds error")
}

func TestArrayGetSetOutOfBounds(t *testing.T) {
	ip, _ := newTestInterpreter("")
	arr := ip.NewArrayInstance([]interp.Value{float64(1), float64(2), float64(3)})
	get := arr.Class.Methods["get"].Bind(arr)
	set := arr.Class.Methods["set"].Bind(arr)

	v, err := get.Call(ip, []interp.Value{float64(1)})
	require.NoError(t, err)
	assert.Equal(t, float64(2), v)

	_, err = set.Call(ip, []interp.Value{float64(1), float64(99)})
	require.NoError(t, err)
	v, err = get.Call(ip, []interp.Value{float64(1)})
	require.NoError(t, err)
	assert.Equal(t, float64(99), v)

	_, err = get.Call(ip, []interp.Value{float64(5)})
	assert.Error(t, err, "expected an out-of-bounds error")

	_, err = set.Call(ip, []interp.Value{float64(-1), float64(0)})
	assert.Error(t, err, "expected an out-of-bounds error")
}

func TestArrayFill(t *testing.T) {
	ip, _ := newTestInterpreter("")
	arr := ip.NewArrayInstance([]interp.Value{float64(1), float64(2), float64(3)})
	fill := arr.Class.Methods["fill"].Bind(arr)
	get := arr.Class.Methods["get"].Bind(arr)

	_, err := fill.Call(ip, []interp.Value{"x"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		v, err := get.Call(ip, []interp.Value{float64(i)})
		require.NoError(t, err)
		assert.Equal(t, "x", v)
	}
}

func TestMathRoundAndMod(t *testing.T) {
	ip, _ := newTestInterpreter("")
	class := mustGetClass(t, ip, "Math")
	round := class.StaticMethods["round"].Bind(class)
	mod := class.StaticMethods["mod"].Bind(class)

	r, err := round.Call(ip, []interp.Value{3.14159, float64(2)})
	require.NoError(t, err)
	assert.InDelta(t, 3.14, r.(float64), 0.0001)

	m, err := mod.Call(ip, []interp.Value{5.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, 2.0, m)
}

func TestConsoleReadWrite(t *testing.T) {
	ip, out := newTestInterpreter("typed input\n")
	class := mustGetClass(t, ip, "Console")
	readLine := class.StaticMethods["readLine"].Bind(class)
	writeLine := class.StaticMethods["writeLine"].Bind(class)

	line, err := readLine.Call(ip, nil)
	require.NoError(t, err)
	assert.Equal(t, "typed input", line)

	_, err = writeLine.Call(ip, []interp.Value{"hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestTypeOfAndIs(t *testing.T) {
	assert.Equal(t, "nil", typeOf(nil))
	assert.Equal(t, "boolean", typeOf(true))
	assert.Equal(t, "string", typeOf("s"))
	assert.Equal(t, "number", typeOf(float64(1)))

	assert.True(t, isOfType("s", "string"))
	assert.False(t, isOfType("s", "number"))
}

func TestFieldsMethodsHasFieldHasMethod(t *testing.T) {
	ip, _ := newTestInterpreter("")
	class := interp.NewClass("Point", nil)
	class.Methods["dist"] = &interp.NativeMethod{Name: "dist", ArityVal: 0,
		Fn: func(ip *interp.Interpreter, receiver interp.Value, args []interp.Value) (interp.Value, error) {
			return float64(0), nil
		},
	}
	inst := interp.NewInstance(class)
	inst.Fields["x"] = float64(1)

	call := func(name string, args ...interp.Value) interp.Value {
		v, err := ip.Globals.Get(token.Token{Lexeme: name})
		require.NoError(t, err)
		result, err := v.(interp.Callable).Call(ip, args)
		require.NoError(t, err)
		return result
	}

	assert.Equal(t, true, call("hasMethod", inst, "dist"))
	assert.Equal(t, true, call("hasField", inst, "x"))
	assert.Equal(t, false, call("hasField", inst, "y"))
	fields := call("fields", inst).(*interp.Instance)
	assert.Equal(t, []interp.Value{"x"}, *fields.Native.(*[]interp.Value))
	methods := call("methods", inst).(*interp.Instance)
	assert.Equal(t, []interp.Value{"dist"}, *methods.Native.(*[]interp.Value))
}
