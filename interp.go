package tcl

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/feather-lang/tcl/core"
	"github.com/feather-lang/tcl/memhost"
)

// Interp is a Tcl interpreter instance.
//
// Create one with [New]; an Interp is not safe for concurrent use from
// multiple goroutines.
type Interp struct {
	host *memhost.Host
	core *core.Interp
}

// Option configures an [Interp] at construction time.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger installs a structured logger for the default host's
// namespace/command/trace diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Tcl interpreter with all standard commands registered,
// backed by the default in-memory host.
func New(opts ...Option) *Interp {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	var hostOpts []memhost.Option
	if o.logger != nil {
		hostOpts = append(hostOpts, memhost.WithLogger(o.logger))
	}
	h := memhost.New(hostOpts...)
	return &Interp{host: h, core: core.NewInterp(h)}
}

// EvalError is returned by [Interp.Eval] and [Interp.Call] when script
// evaluation fails; it carries the Tcl-level error message and, when
// available, the accumulated "while executing" trace.
type EvalError struct {
	Message   string
	ErrorInfo string
}

func (e *EvalError) Error() string { return e.Message }

// Eval evaluates a script and returns its result.
//
// Multiple commands may be separated by semicolons or newlines.
func (i *Interp) Eval(script string) (Value, error) {
	h := i.host.StrNew(script)
	code := i.core.EvalScript(h, core.EvalLocal)
	if code == core.ResultError {
		return nil, i.errorFromResult()
	}
	return i.toValue(i.host.GetResult()), nil
}

func (i *Interp) errorFromResult() error {
	msg := i.host.StrGo(i.host.GetResult())
	info := msg
	if opts := i.host.GetReturnOptions(); opts != core.NilHandle {
		if h, ok := i.host.DictGet(opts, "-errorinfo"); ok {
			info = i.host.StrGo(h)
		}
	}
	return &EvalError{Message: msg, ErrorInfo: info}
}

// Call invokes a single command with the given arguments, each
// converted from a Go value the way [Interp.Register] converts return
// values.
func (i *Interp) Call(cmd string, args ...any) (Value, error) {
	var b []byte
	b = append(b, cmd...)
	for _, a := range args {
		b = append(b, ' ')
		b = append(b, quoteArg(a)...)
	}
	return i.Eval(string(b))
}

func quoteArg(v any) string {
	if val, ok := v.(Value); ok {
		return braceIfNeeded(val.String())
	}
	return braceIfNeeded(fmt.Sprintf("%v", v))
}

func braceIfNeeded(s string) string {
	if needsBraces(s) {
		return "{" + s + "}"
	}
	return s
}

// Var returns the value of a variable, or an empty string Value if it
// does not exist.
func (i *Interp) Var(name string) Value {
	h, ok := i.host.VarGet(i.host.FrameLevel(), name)
	if !ok {
		return newStringValue("")
	}
	return i.toValue(h)
}

// SetVar sets a global variable to val, converted the way [Interp.Call]
// converts arguments.
func (i *Interp) SetVar(name string, val any) {
	i.host.VarSet(0, name, i.handleFor(val))
}

// SetVars sets multiple global variables from a map.
func (i *Interp) SetVars(vars map[string]any) {
	for name, v := range vars {
		i.SetVar(name, v)
	}
}

// GetVars reads multiple variables into a map; missing variables map
// to an empty string Value.
func (i *Interp) GetVars(names ...string) map[string]Value {
	out := make(map[string]Value, len(names))
	for _, n := range names {
		out[n] = i.Var(n)
	}
	return out
}

// -----------------------------------------------------------------------------
// Value construction
// -----------------------------------------------------------------------------

// String creates a string Value. Equivalent to [NewString].
func (i *Interp) String(s string) Value { return NewString(s) }

// Int creates an integer Value. Equivalent to [NewInt].
func (i *Interp) Int(v int64) Value { return NewInt(v) }

// Float creates a floating-point Value. Equivalent to [NewFloat].
func (i *Interp) Float(v float64) Value { return NewFloat(v) }

// Bool creates a boolean Value, represented as the integer 1 or 0.
func (i *Interp) Bool(v bool) Value {
	if v {
		return NewInt(1)
	}
	return NewInt(0)
}

// List creates a list Value. Equivalent to [NewList].
func (i *Interp) List(items ...Value) Value { return NewList(items...) }

// toValue converts a host handle to a plain Value snapshot.
func (i *Interp) toValue(h core.Handle) Value {
	if i.host.IsForeign(h) {
		return NewForeign(i.host.ForeignTypeName(h), i.host.ForeignStringRep(h))
	}
	return newStringValue(i.host.StrGo(h))
}

// handleFor converts a Go value (or a Value) into a host handle, the
// way Call/SetVar auto-convert their arguments.
func (i *Interp) handleFor(v any) core.Handle {
	switch val := v.(type) {
	case Value:
		return i.host.StrNew(val.String())
	case string:
		return i.host.StrNew(val)
	case int:
		return i.host.IntCreate(int64(val))
	case int64:
		return i.host.IntCreate(val)
	case float64:
		return i.host.DblCreate(val)
	case bool:
		if val {
			return i.host.IntCreate(1)
		}
		return i.host.IntCreate(0)
	case []string:
		items := make([]core.Handle, len(val))
		for j, s := range val {
			items[j] = i.host.StrNew(s)
		}
		return i.host.ListFrom(items)
	default:
		return i.host.StrNew(fmt.Sprintf("%v", v))
	}
}

// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

// ParseStatus is the outcome of checking a script fragment for
// completeness.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseIncomplete
	ParseError
)

// ParseResult holds the outcome of [Interp.Parse].
type ParseResult struct {
	Status  ParseStatus
	Message string
}

// Parse reports whether script is a syntactically complete sequence of
// commands, without executing anything. REPL front ends use this to
// decide whether to keep reading more input.
func (i *Interp) Parse(script string) ParseResult {
	status, msg := i.core.CheckComplete(i.host.StrNew(script))
	switch status {
	case core.ParseOK:
		return ParseResult{Status: ParseOK}
	case core.ParseIncomplete:
		return ParseResult{Status: ParseIncomplete, Message: msg}
	default:
		return ParseResult{Status: ParseError, Message: msg}
	}
}

// Internal exposes the underlying core.Interp and memhost.Host for
// advanced use cases not covered by the public API.
func (i *Interp) Internal() (*core.Interp, *memhost.Host) {
	return i.core, i.host
}
