package interp

// returnSignal carries a `return` statement's value out through the same
// unwinding machinery used for runtime errors, without being one: it is
// produced by execute's *ast.Return case, threaded up through block and
// control-flow execution (restoring environments at every level along the
// way), and discarded at the function-call boundary that started the
// activation (function.call). Never let it escape past that boundary.
type returnSignal struct {
	value any
}

func (r *returnSignal) Error() string { return "return" }
