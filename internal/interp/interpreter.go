// Package interp implements the tree-walking evaluator: it executes
// statement trees against a mutable environment chain, honoring closures,
// dynamic dispatch on instances, and constructor semantics.
package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/loxerrors"
	"github.com/loxscript/golox/pkg/token"
)

// Interpreter executes a resolved statement tree. It owns the global
// environment (which lives for the process lifetime of a session, so REPL
// state persists across lines) and the locals side-table populated by the
// resolver before Interpret is called.
type Interpreter struct {
	globals     *Environment
	environment *Environment
	locals      map[ast.Expression]int
	output      io.Writer
}

// New creates an Interpreter that writes `print` output to w and preloads
// the single native, clock().
func New(w io.Writer) *Interpreter {
	globals := NewEnvironment()
	in := &Interpreter{
		globals:     globals,
		environment: globals,
		locals:      make(map[ast.Expression]int),
		output:      w,
	}

	globals.Define("clock", &nativeFunction{
		name: "clock",
		fn: func(_ []any) (any, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})

	return in
}

// Resolve records the lexical distance the resolver computed for expr. It
// implements resolver.LocalsRecorder.
func (in *Interpreter) Resolve(expr ast.Expression, depth int) {
	in.locals[expr] = depth
}

// Interpret executes a program's statements in order, stopping at the
// first RuntimeError and reporting it through reporter (spec.md §7: a
// runtime error unwinds the evaluator's call stack but is caught at the
// top-level statement boundary).
func (in *Interpreter) Interpret(statements []ast.Statement, reporter interface {
	Runtime(*loxerrors.RuntimeError)
}) {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*loxerrors.RuntimeError); ok {
				reporter.Runtime(rerr)
			}
			return
		}
	}
}

// ---- statement execution --------------------------------------------------

func (in *Interpreter) execute(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.Block:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.environment))

	case *ast.Class:
		return in.executeClass(s)

	case *ast.Expr:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.Function:
		fn := newFunction(s, in.environment, false)
		in.environment.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.If:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		} else if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.Print:
		value, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.output, stringify(value))
		return nil

	case *ast.Return:
		var value any
		if s.Value != nil {
			var err error
			value, err = in.evaluate(s.Value)
			if err != nil {
				return err
			}
		}
		return &returnSignal{value: value}

	case *ast.Var:
		var value any
		if s.Initializer != nil {
			var err error
			value, err = in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
		}
		in.environment.Define(s.Name.Lexeme, value)
		return nil

	case *ast.While:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}
	}

	return nil
}

// executeBlock installs env (a fresh environment supplied by the caller) as
// the current one, runs statements against it, and
// restores the previous environment on every exit path: normal
// completion, a propagated RuntimeError, or a returnSignal.
func (in *Interpreter) executeBlock(statements []ast.Statement, env *Environment) error {
	previous := in.environment
	in.environment = env
	defer func() { in.environment = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

// executeClass binds the class name to nil first (permitting recursive
// self-reference in method bodies), builds the method table with the
// current environment as every method's closure, then assigns (not
// re-declares) the finished class value under its name.
func (in *Interpreter) executeClass(stmt *ast.Class) error {
	in.environment.Define(stmt.Name.Lexeme, nil)

	methods := make(map[string]*function, len(stmt.Methods))
	for _, decl := range stmt.Methods {
		isInitializer := decl.Name.Lexeme == "init"
		methods[decl.Name.Lexeme] = newFunction(decl, in.environment, isInitializer)
	}

	cls := newClass(stmt.Name.Lexeme, methods)
	return in.environment.Assign(stmt.Name, cls)
}

// ---- expression evaluation --------------------------------------------------

func (in *Interpreter) evaluate(expr ast.Expression) (any, error) {
	switch e := expr.(type) {
	case *ast.Assign:
		return in.evalAssign(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Call:
		return in.evalCall(e)
	case *ast.Get:
		return in.evalGet(e)
	case *ast.Grouping:
		return in.evaluate(e.Expression)
	case *ast.Literal:
		return e.Value, nil
	case *ast.Logical:
		return in.evalLogical(e)
	case *ast.Set:
		return in.evalSet(e)
	case *ast.This:
		return in.lookUpVariable(e.Keyword, e)
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Variable:
		return in.lookUpVariable(e.Name, e)
	}
	return nil, fmt.Errorf("unhandled expression type %T", expr)
}

func (in *Interpreter) evalAssign(e *ast.Assign) (any, error) {
	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := in.locals[e]; ok {
		in.environment.AssignAt(distance, e.Name, value)
	} else if err := in.globals.Assign(e.Name, value); err != nil {
		return nil, err
	}

	return value, nil
}

func (in *Interpreter) evalBinary(e *ast.Binary) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.PLUS:
		if ln, lok := left.(float64); lok {
			if rn, rok := right.(float64); rok {
				return ln + rn, nil
			}
		}
		if ls, lok := left.(string); lok {
			if rs, rok := right.(string); rok {
				return ls + rs, nil
			}
		}
		return nil, loxerrors.NewRuntimeError(e.Operator, "Operands must be two numbers or two strings.")

	case token.MINUS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil

	case token.STAR:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil

	case token.SLASH:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln / rn, nil

	case token.GREATER:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln > rn, nil

	case token.GREATER_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln >= rn, nil

	case token.LESS:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln < rn, nil

	case token.LESS_EQUAL:
		ln, rn, err := numberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return ln <= rn, nil

	case token.BANG_EQUAL:
		return !isEqual(left, right), nil

	case token.EQUAL_EQUAL:
		return isEqual(left, right), nil
	}

	return nil, fmt.Errorf("unhandled binary operator %s", e.Operator.Lexeme)
}

func (in *Interpreter) evalCall(e *ast.Call) (any, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	// Arguments are evaluated strictly left-to-right before the call
	// dispatches, even if the callee turns out not to be callable.
	arguments := make([]any, len(e.Arguments))
	for i, arg := range e.Arguments {
		val, err := in.evaluate(arg)
		if err != nil {
			return nil, err
		}
		arguments[i] = val
	}

	fn, ok := callee.(callable)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.ClosingParen, "Can only call functions and classes.")
	}

	if len(arguments) != fn.arity() {
		return nil, loxerrors.NewRuntimeError(e.ClosingParen,
			fmt.Sprintf("Expected %d arguments but got %d.", fn.arity(), len(arguments)))
	}

	return fn.call(in, arguments)
}

func (in *Interpreter) evalGet(e *ast.Get) (any, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*instance)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.Name, "Only instances have properties.")
	}
	return inst.get(e.Name)
}

func (in *Interpreter) evalLogical(e *ast.Logical) (any, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}

	if e.Operator.Type == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}

	return in.evaluate(e.Right)
}

func (in *Interpreter) evalSet(e *ast.Set) (any, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}

	inst, ok := obj.(*instance)
	if !ok {
		return nil, loxerrors.NewRuntimeError(e.Name, "Only instances have fields.")
	}

	value, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.set(e.Name, value)
	return value, nil
}

func (in *Interpreter) evalUnary(e *ast.Unary) (any, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Type {
	case token.BANG:
		return !isTruthy(right), nil
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, loxerrors.NewRuntimeError(e.Operator, "Operand must be a number.")
		}
		return -n, nil
	}

	return nil, fmt.Errorf("unhandled unary operator %s", e.Operator.Lexeme)
}

// lookUpVariable fetches the value bound to name at expr's evaluation
// time, using the resolver's recorded depth when present, else falling
// back to the global environment (spec.md §4.4).
func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expression) (any, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.environment.GetAt(distance, name.Lexeme), nil
	}
	return in.globals.Get(name)
}

// ---- value semantics --------------------------------------------------------

// isTruthy implements Lox's truthiness: nil and false are falsy, every
// other value (including 0, "", and any instance) is truthy.
func isTruthy(value any) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	return true
}

// isEqual implements Lox's equality: nil equals only nil, numbers and
// strings compare by value, anything else (callables, instances) compares
// by identity.
func isEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a == b
}

func numberOperands(operator token.Token, left, right any) (float64, float64, error) {
	ln, lok := left.(float64)
	rn, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, loxerrors.NewRuntimeError(operator, "Operands must be numbers.")
	}
	return ln, rn, nil
}
