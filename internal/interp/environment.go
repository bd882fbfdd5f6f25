package interp

import "github.com/loxscript/golox/pkg/token"

// Environment is a mapping from name to value, plus an optional reference
// to an enclosing environment. Environments form a parent chain; a fresh
// one is allocated for each block, function activation, and class body
// (to hold `this`). Once linked into a chain, environments are never
// rewired — a function value's captured environment is the environment
// that was current at the moment of declaration, and it outlives that
// declaration for as long as any closure references it.
type Environment struct {
	values map[string]any
	outer  *Environment
}

// NewEnvironment creates a root environment with no enclosing scope. Used
// for the global scope, which lives for the process lifetime of a session.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]any)}
}

// NewEnclosedEnvironment creates a new scope enclosed by outer, used for
// blocks, function calls, and the implicit scope a class body opens to
// bind `this`.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	return &Environment{values: make(map[string]any), outer: outer}
}

// Define creates (or overwrites) a binding in this environment only. Used
// for `var` declarations, which always write into the current scope,
// including shadowing in local scopes; at global scope, redeclaration
// silently replaces the prior value.
func (e *Environment) Define(name string, value any) {
	e.values[name] = value
}

// Get looks up name in this environment, then recursively in enclosing
// environments. It returns a RuntimeError carrying tok when the name is
// undefined anywhere in the chain.
func (e *Environment) Get(tok token.Token) (any, error) {
	if v, ok := e.values[tok.Lexeme]; ok {
		return v, nil
	}
	if e.outer != nil {
		return e.outer.Get(tok)
	}
	return nil, newUndefinedVariableError(tok)
}

// GetAt fetches a value exactly distance hops up the chain from e. The
// resolver guarantees that any distance it records names a scope that
// actually holds the variable, so this never needs to search.
func (e *Environment) GetAt(distance int, name string) any {
	return e.ancestor(distance).values[name]
}

// Assign writes to the nearest environment in the chain (starting at e)
// that already defines name, returning a RuntimeError if it is undefined
// everywhere.
func (e *Environment) Assign(tok token.Token, value any) error {
	if _, ok := e.values[tok.Lexeme]; ok {
		e.values[tok.Lexeme] = value
		return nil
	}
	if e.outer != nil {
		return e.outer.Assign(tok, value)
	}
	return newUndefinedVariableError(tok)
}

// AssignAt writes directly into the environment exactly distance hops up
// the chain from e, as directed by the resolver's recorded depth.
func (e *Environment) AssignAt(distance int, tok token.Token, value any) {
	e.ancestor(distance).values[tok.Lexeme] = value
}

func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		env = env.outer
	}
	return env
}
