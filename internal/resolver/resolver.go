// Package resolver implements the static resolution pass: for every
// Variable, Assign, and This expression that refers to a name declared in a
// lexical (non-global) scope, it records the number of enclosing scopes
// between the use site and the binding. The evaluator consumes this
// side-table to know exactly which environment ancestor to address,
// instead of re-walking the scope chain at every name use.
package resolver

import (
	"github.com/loxscript/golox/internal/ast"
	"github.com/loxscript/golox/internal/loxerrors"
	"github.com/loxscript/golox/pkg/token"
)

type functionType int

const (
	noFunction functionType = iota
	inFunction
	inMethod
	inInitializer
)

type classType int

const (
	noClass classType = iota
	inClass
)

// LocalsRecorder receives the resolver's output. The evaluator implements
// this so the resolver does not need to import the interp package.
type LocalsRecorder interface {
	Resolve(expr ast.Expression, depth int)
}

// Resolver walks the statement tree once, maintaining a stack of scope maps
// (name -> defined?) plus two enum registers tracking whether the current
// position is inside a function/method/initializer and inside a class
// body. Both registers are saved and restored around the constructs that
// set them.
type Resolver struct {
	locals   LocalsRecorder
	reporter loxerrors.Reporter
	scopes   []map[string]bool

	currentFunction functionType
	currentClass    classType
}

func New(locals LocalsRecorder, reporter loxerrors.Reporter) *Resolver {
	return &Resolver{locals: locals, reporter: reporter}
}

// Resolve resolves an entire program (a top-level statement list).
func (r *Resolver) Resolve(statements []ast.Statement) {
	r.resolveStatements(statements)
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStatements(s.Statements)
		r.endScope()

	case *ast.Class:
		enclosingClass := r.currentClass
		r.currentClass = inClass

		r.declare(s.Name)
		r.define(s.Name)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = true

		for _, method := range s.Methods {
			declType := inMethod
			if method.Name.Lexeme == "init" {
				declType = inInitializer
			}
			r.resolveFunction(method, declType)
		}

		r.endScope()
		r.currentClass = enclosingClass

	case *ast.Expr:
		r.resolveExpression(s.Expression)

	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, inFunction)

	case *ast.If:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Then)
		if s.Else != nil {
			r.resolveStatement(s.Else)
		}

	case *ast.Print:
		r.resolveExpression(s.Expression)

	case *ast.Return:
		if r.currentFunction == noFunction {
			r.reporter.Report(s.Keyword.Line, " at '"+s.Keyword.Lexeme+"'", "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == inInitializer {
				r.reporter.Report(s.Keyword.Line, " at '"+s.Keyword.Lexeme+"'", "Can't return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}

	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)

	case *ast.While:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	}
}

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.Binary:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Call:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}

	case *ast.Get:
		r.resolveExpression(e.Object)

	case *ast.Grouping:
		r.resolveExpression(e.Expression)

	case *ast.Literal:
		// no identifiers to resolve

	case *ast.Logical:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)

	case *ast.Set:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)

	case *ast.This:
		if r.currentClass == noClass {
			r.reporter.Report(e.Keyword.Line, " at 'this'", "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.Unary:
		r.resolveExpression(e.Right)

	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.reporter.Report(e.Name.Line, " at '"+e.Name.Lexeme+"'", "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, typ functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks name as present in the current scope but not yet
// initialized, so a reference to it inside its own initializer can be
// reported. Redeclaring a name in the same non-global scope is an error.
func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.Report(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

// resolveLocal searches the scope stack top-down for name and, if found,
// records the hop count from the use site to the declaring scope. If the
// name is not found in any lexical scope, nothing is recorded: the
// evaluator treats an unrecorded name as a global.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}
