package interp

// NativeMethod is a Go-implemented instance or static method, used by
// internal/builtins to give Console, String, Math, and Array their
// behavior. Binding it to a receiver closes over that receiver the
// same way Function.Bind closes over `this`.
type NativeMethod struct {
	Name     string
	ArityVal int
	Fn       func(interp *Interpreter, receiver Value, args []Value) (Value, error)
}

func (m *NativeMethod) Bind(receiver Value) Callable {
	return &boundNativeMethod{receiver: receiver, method: m}
}

type boundNativeMethod struct {
	receiver Value
	method   *NativeMethod
}

func (b *boundNativeMethod) Arity() int { return b.method.ArityVal }
func (b *boundNativeMethod) String() string {
	return "<native fn>"
}
func (b *boundNativeMethod) Call(interp *Interpreter, args []Value) (Value, error) {
	return b.method.Fn(interp, b.receiver, args)
}
