// Package core implements the language engine: the parser/substitutor,
// the evaluator and command dispatch, the frame/variable/namespace
// model, and the control-flow builtins. The core never allocates a
// value, opens a file, or touches a clock; every primitive operation on
// a value is reached through the Host interface below. A host owns all
// storage; core only orchestrates.
package core

// Handle is an opaque reference to a host-owned value, frame-local
// detail, or other host-managed object. The zero Handle is the
// distinguished nil value: "no such value".
type Handle uint64

// NilHandle is the distinguished nil handle.
const NilHandle Handle = 0

// Result is the five-way result code every command invocation and
// every script evaluation reduces to.
type Result int

const (
	ResultOK Result = iota
	ResultError
	ResultReturn
	ResultBreak
	ResultContinue
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultError:
		return "ERROR"
	case ResultReturn:
		return "RETURN"
	case ResultBreak:
		return "BREAK"
	case ResultContinue:
		return "CONTINUE"
	default:
		return "UNKNOWN"
	}
}

// EvalFlag selects the variable/command resolution scope for a script
// evaluation: the current frame, or the global namespace.
type EvalFlag int

const (
	EvalLocal EvalFlag = iota
	EvalGlobal
)

// ParseStatus is the outcome of parsing a single command from a script.
type ParseStatus int

const (
	ParseOK ParseStatus = iota
	ParseDone
	ParseIncomplete
	ParseError
)

// CommandKind tags a CommandEntry as a builtin or a user procedure.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdBuiltin
	CmdProc
)

// CommandEntry is the registry's unified representation of a command.
// The function identity for a builtin lives in the Interp's own
// builtin table (the builtins map in core/interp.go), keyed by BuiltinName; the host only
// ever stores this descriptor, never a Go closure, so that a
// non-Go host backend remains possible in principle.
type CommandEntry struct {
	Kind CommandKind

	// Name is the canonical absolute qualified name ("::foo::bar").
	Name string

	// DefiningNS is the absolute path of the namespace the command was
	// registered in.
	DefiningNS string

	// BuiltinName keys into the Interp's builtin table when Kind ==
	// CmdBuiltin.
	BuiltinName string

	// Params and Body hold the parameter-spec list and body value when
	// Kind == CmdProc.
	Params Handle
	Body   Handle

	// Exported records whether this command matches one of its
	// namespace's export patterns (a cache the host may recompute
	// lazily; core treats it as informational only).
	Exported bool
}

// FrameInfo is a snapshot of one call frame, as returned by
// HostFrame.Info.
type FrameInfo struct {
	Level     int
	Cmd       Handle // the command-and-arguments pair being evaluated
	Args      Handle
	Namespace string
	Line      int
	Lambda    Handle // set only for apply-introduced frames
}

// VarLinkInfo describes where a variable link points, as returned by
// HostVar.ResolveLink.
type VarLinkInfo struct {
	IsNamespace bool // true: (NSPath, Name); false: (Level, Name)
	Level       int
	NSPath      string
	Name        string
}

// HostString groups the string-primitive capabilities of §4.1/§6.1.
type HostString interface {
	StrByteAt(s Handle, i int) int // -1 on out-of-bounds
	StrByteLength(s Handle) int
	StrSlice(s Handle, start, end int) Handle
	StrConcat(a, b Handle) Handle
	StrCompare(a, b Handle) int // -1, 0, 1
	StrEqual(a, b Handle) bool
	StrGlobMatch(pattern, str Handle, nocase bool) bool
	// StrRegexMatch reports whether pattern matches str. On success it
	// also returns the whole match plus each capture group (matches[0]
	// is the whole match) and their half-open byte ranges.
	StrRegexMatch(pattern, str Handle, nocase bool) (matched bool, matches []Handle, ranges [][2]int, err error)

	StrBuilderNew() Handle
	StrBuilderAppendByte(b Handle, c byte) Handle
	StrBuilderAppendObj(b Handle, s Handle) Handle
	StrBuilderFinish(b Handle) Handle

	StrIntern(data []byte) Handle
	StrNew(s string) Handle // convenience: host.Intern(s) with a Go string
	StrGo(s Handle) string  // convenience: decode a string handle back to a Go string
}

// HostRune groups the Unicode-aware capabilities used by case-folding
// and the string builtins.
type HostRune interface {
	RuneLength(s Handle) int
	RuneAt(s Handle, i int) rune
	RuneToUpper(s Handle) Handle
	RuneToLower(s Handle) Handle
	RuneFold(s Handle) Handle
}

// HostInt groups the integer-primitive capabilities.
type HostInt interface {
	IntCreate(v int64) Handle
	IntGet(v Handle) (int64, error)
}

// HostDouble groups the floating point capabilities, including the
// host-mediated math operator used by expr for anything involving a
// double operand.
type HostDouble interface {
	DblCreate(v float64) Handle
	DblGet(v Handle) (float64, error)
	DblClassify(v Handle) string // "normal", "nan", "inf", "zero"
	DblFormat(v Handle, spec byte, precision int) Handle
	DblMath(op string, a, b Handle) (Handle, error)
}

// HostList groups the list capabilities.
type HostList interface {
	ListCreate() Handle
	ListFrom(items []Handle) Handle
	ListIsNil(l Handle) bool
	ListLength(l Handle) int
	ListAt(l Handle, i int) Handle // NilHandle if out of range
	ListSlice(l Handle, start, end int) Handle
	ListSetAt(l Handle, i int, v Handle) Handle
	ListSplice(l Handle, start, count int, items []Handle) Handle
	ListPush(l Handle, v Handle) Handle
	ListPop(l Handle) (Handle, Handle) // (newList, poppedValue)
	ListShift(l Handle) (Handle, Handle)
	ListUnshift(l Handle, v Handle) Handle
	ListSort(l Handle, cmp func(a, b Handle) int) Handle
}

// HostDict groups the dictionary capabilities. Iteration order over
// Keys/Values must be insertion order.
type HostDict interface {
	DictCreate() Handle
	DictIsDict(d Handle) bool
	DictFrom(keys []string, values []Handle) Handle
	DictGet(d Handle, key string) (Handle, bool)
	DictSet(d Handle, key string, v Handle) Handle
	DictExists(d Handle, key string) bool
	DictRemove(d Handle, key string) Handle
	DictSize(d Handle) int
	DictKeys(d Handle) []string
	DictValues(d Handle) []Handle
}

// HostFrame groups the call-frame stack capabilities.
type HostFrame interface {
	FramePush(namespace string) int // returns new frame's level
	FramePop()
	FrameLevel() int // active level
	FrameSetActive(level int) (previous int)
	FrameSize() int // physical stack depth
	FrameInfo(level int) (FrameInfo, bool)
	FrameSetNamespace(level int, ns string)
	FrameGetNamespace(level int) string
	FrameSetLine(level int, line int)
	FrameGetLine(level int) int
	FrameSetLambda(level int, lambda Handle)
	FrameGetLambda(level int) Handle
	FrameSetCommand(level int, cmd, args Handle)
}

// HostVar groups the variable capabilities. "local" names address the
// given frame level's local table; links transparently redirect.
type HostVar interface {
	VarGet(level int, name string) (Handle, bool)
	VarSet(level int, name string, v Handle)
	VarUnset(level int, name string) bool
	VarExists(level int, name string) bool
	VarLink(level int, localName string, targetLevel int, targetName string) error
	VarLinkNS(level int, localName string, nsPath string, targetName string) error
	VarNames(level int, pattern string) []string
	VarIsLink(level int, name string) bool
	VarResolveLink(level int, name string) (VarLinkInfo, bool)
}

// HostNamespace groups the namespace-tree capabilities.
type HostNamespace interface {
	NSCreate(path string)
	NSDelete(path string) error
	NSExists(path string) bool
	NSCurrent() string
	NSParent(path string) string
	NSChildren(path string) []string
	NSGetVar(path string, name string) (Handle, bool)
	NSSetVar(path string, name string, v Handle)
	NSVarExists(path string, name string) bool
	NSUnsetVar(path string, name string) bool
	NSGetCommand(path string, name string) (CommandEntry, bool)
	NSSetCommand(path string, name string, entry CommandEntry)
	NSDeleteCommand(path string, name string) bool
	NSListCommands(path string) []string
	NSGetExports(path string) []string
	NSSetExports(path string, patterns []string)
	NSIsExported(path string, name string) bool
	NSCopyCommand(fromPath, fromName, toPath, toName string) bool
}

// HostInterp groups the result-slot and return-options capabilities.
type HostInterp interface {
	SetResult(v Handle)
	GetResult() Handle
	ResetResult()
	SetReturnOptions(d Handle)
	GetReturnOptions() Handle
	GetScript() Handle
	SetScript(v Handle)
}

// HostBind groups the "unknown command" escape hatch.
type HostBind interface {
	Unknown(ip *Interp, cmdName string, args []Handle) (Result, bool)
}

// HostForeign groups the optional foreign-object capabilities. A host
// that never produces foreign values may implement every method as a
// trivial false/empty return.
type HostForeign interface {
	IsForeign(v Handle) bool
	ForeignTypeName(v Handle) string
	ForeignStringRep(v Handle) string
	ForeignMethods(v Handle) []string
	ForeignInvoke(v Handle, method string, args []Handle) (Handle, error)
	ForeignDestroy(v Handle)
}

// Host is the full capability table the core is built against. A host
// implementation owns every byte, list cell, frame, namespace, and
// variable slot the interpreter touches.
type Host interface {
	HostString
	HostRune
	HostInt
	HostDouble
	HostList
	HostDict
	HostFrame
	HostVar
	HostNamespace
	HostInterp
	HostBind
	HostForeign
}
