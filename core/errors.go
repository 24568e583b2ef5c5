package core

import "errors"

// Sentinel errors for the Go-level fallible operations (§7's taxonomy,
// the Go side of it). The TCL-visible error text is produced by the
// functions below and travels through the result slot, never as one of
// these Go errors, except where a builtin's Go implementation needs to
// distinguish cases internally (e.g. VarGet miss vs. link cycle).
var (
	ErrNoSuchVariable  = errors.New("no such variable")
	ErrNoSuchCommand   = errors.New("no such command")
	ErrNoSuchNamespace = errors.New("no such namespace")
	ErrLinkCycle       = errors.New("variable link would form a cycle")
	ErrWrongNumArgs    = errors.New("wrong # args")
	ErrNotAList        = errors.New("not a list")
	ErrNotADict        = errors.New("not a dict")
	ErrBadIndex        = errors.New("bad index")
	ErrMathDomain      = errors.New("domain error: argument not in valid range")
	ErrDepthExceeded   = errors.New("too many nested evaluations")
	ErrControlLeak     = errors.New("control-flow result leaked past its consumer")
)

// errCantRead formats the §7 "can't read" variable error.
func errCantRead(name string) string {
	return "can't read \"" + name + "\": no such variable"
}

// errCantUnset formats the §7 "can't unset" variable error.
func errCantUnset(name string) string {
	return "can't unset \"" + name + "\": no such variable"
}

// errInvalidCommand formats the §7 unknown-command error.
func errInvalidCommand(name string) string {
	return "invalid command name \"" + name + "\""
}

// errWrongArgs formats the §4.7 proc argument-shape error.
func errWrongArgs(usage string) string {
	return "wrong # args: should be \"" + usage + "\""
}

// errBadIndex formats the §7 index-out-of-range error.
func errBadIndex(text string) string {
	return "bad index \"" + text + "\": must be integer?[+-]integer? or end?[+-]integer?"
}

// errLeak formats the §7 control-flow-leak error for break/continue.
func errLeak(which string) string {
	return "invoked \"" + which + "\" outside of a loop"
}
