package interp

import (
	"fmt"
	"strconv"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/loxerrors"
	"github.com/loxscript/golox/pkg/token"
)

// callable is implemented by every runtime value that can appear as the
// callee of a Call expression: native functions, user functions, and
// classes (construction).
type callable interface {
	arity() int
	call(in *Interpreter, arguments []any) (any, error)
}

// nativeFunction wraps a foreign Go function as a zero-overhead Lox
// callable. clock() is the only one preloaded into the global scope.
type nativeFunction struct {
	name string
	fn   func(arguments []any) (any, error)
}

func (n *nativeFunction) arity() int { return 0 }
func (n *nativeFunction) call(_ *Interpreter, arguments []any) (any, error) {
	return n.fn(arguments)
}
func (n *nativeFunction) String() string { return "<native fn>" }

// function is a user-defined function or method value: a declaration node
// plus the environment that was current at the moment of declaration (its
// closure). isInitializer marks a class's `init` method, which always
// yields the receiver regardless of its own return statements.
type function struct {
	declaration   *ast.Function
	closure       *Environment
	isInitializer bool
}

func newFunction(declaration *ast.Function, closure *Environment, isInitializer bool) *function {
	return &function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *function) arity() int { return len(f.declaration.Params) }

func (f *function) call(in *Interpreter, arguments []any) (any, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if ret, ok := err.(*returnSignal); ok {
		if f.isInitializer {
			return f.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return nil, nil
}

func (f *function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }

// bind returns a copy of f whose closure is a new environment, parented at
// f's original closure, with `this` defined to point at instance. This is
// how a method access (Get on an instance) produces a bound method.
func (f *function) bind(instance *instance) *function {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return newFunction(f.declaration, env, f.isInitializer)
}

// class is the runtime representation of a class declaration: a name plus
// a fixed method table (fixed at class-creation time; only instance field
// maps grow dynamically).
type class struct {
	name    string
	methods map[string]*function
}

func newClass(name string, methods map[string]*function) *class {
	return &class{name: name, methods: methods}
}

func (c *class) findMethod(name string) *function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	return nil
}

func (c *class) arity() int {
	if init := c.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

func (c *class) call(in *Interpreter, arguments []any) (any, error) {
	inst := newInstance(c)
	if init := c.findMethod("init"); init != nil {
		if _, err := init.bind(inst).call(in, arguments); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *class) String() string { return c.name }

// instance is a runtime instance of a class. Its field map may add keys
// dynamically via assignment; its class's method table never changes.
type instance struct {
	class  *class
	fields map[string]any
}

func newInstance(c *class) *instance {
	return &instance{class: c, fields: make(map[string]any)}
}

// get implements property access: fields shadow methods, and a found
// method is bound to this instance before being returned.
func (i *instance) get(name token.Token) (any, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}

	if method := i.class.findMethod(name.Lexeme); method != nil {
		return method.bind(i), nil
	}

	return nil, loxerrors.NewRuntimeError(name, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

func (i *instance) set(name token.Token, value any) {
	i.fields[name.Lexeme] = value
}

func (i *instance) String() string { return i.class.name + " instance" }

// stringify renders a runtime value per spec.md §4.4's printing rules: nil
// as "nil", booleans as "true"/"false", integer-valued numbers without a
// trailing ".0", text verbatim, and callables/instances via their own
// String().
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func newUndefinedVariableError(tok token.Token) error {
	return loxerrors.NewRuntimeError(tok, fmt.Sprintf("Undefined variable '%s'.", tok.Lexeme))
}
