package memhost

import (
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/feather-lang/tcl/core"
)

// Host is the default in-memory core.Host implementation: every value,
// frame, variable, and namespace the interpreter touches lives here.
type Host struct {
	reg  *registry
	root *namespace

	frames []*frame
	active int

	result  *obj
	retOpts *obj
	script  *obj

	log hclog.Logger
}

// Option configures a Host at construction time.
type Option func(*Host)

// WithLogger installs a structured logger; by default a Host logs
// nothing (hclog.NewNullLogger()).
func WithLogger(l hclog.Logger) Option {
	return func(h *Host) { h.log = l }
}

// New creates a ready-to-use Host: the "::" namespace, a single global
// frame, and an empty result slot.
func New(opts ...Option) *Host {
	h := &Host{
		reg:     newRegistry(),
		result:  newStringObj(""),
		retOpts: nil,
		script:  newStringObj(""),
		log:     hclog.NewNullLogger(),
	}
	h.root = newNamespace("::", nil)
	h.frames = []*frame{newFrame("::")}
	h.active = 0
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Logger exposes the Host's structured logger, for embedders that want
// to route interpreter diagnostics alongside their own.
func (h *Host) Logger() hclog.Logger { return h.log }

var _ core.Host = (*Host)(nil)

// ---- HostString ----

func (h *Host) StrByteAt(s core.Handle, i int) int {
	o := h.reg.get(s)
	if o == nil {
		return -1
	}
	str := o.String()
	if i < 0 || i >= len(str) {
		return -1
	}
	return int(str[i])
}

func (h *Host) StrByteLength(s core.Handle) int {
	o := h.reg.get(s)
	if o == nil {
		return 0
	}
	return len(o.String())
}

func (h *Host) StrSlice(s core.Handle, start, end int) core.Handle {
	o := h.reg.get(s)
	if o == nil {
		return h.StrNew("")
	}
	str := o.String()
	if start < 0 {
		start = 0
	}
	if end > len(str) {
		end = len(str)
	}
	if start >= end {
		return h.StrNew("")
	}
	return h.StrNew(str[start:end])
}

func (h *Host) StrConcat(a, b core.Handle) core.Handle {
	return h.StrNew(h.StrGo(a) + h.StrGo(b))
}

func (h *Host) StrCompare(a, b core.Handle) int {
	return strings.Compare(h.StrGo(a), h.StrGo(b))
}

func (h *Host) StrEqual(a, b core.Handle) bool {
	return h.StrGo(a) == h.StrGo(b)
}

func (h *Host) StrGlobMatch(pattern, str core.Handle, nocase bool) bool {
	return globMatch(h.StrGo(pattern), h.StrGo(str), nocase)
}

func (h *Host) StrRegexMatch(pattern, str core.Handle, nocase bool) (bool, []core.Handle, [][2]int, error) {
	pat := h.StrGo(pattern)
	if nocase {
		pat = "(?i)" + pat
	}
	re, err := compileRegex(pat)
	if err != nil {
		return false, nil, nil, err
	}
	s := h.StrGo(str)
	idx := re.FindStringSubmatchIndex(s)
	if idx == nil {
		return false, nil, nil, nil
	}
	n := len(idx) / 2
	matches := make([]core.Handle, n)
	ranges := make([][2]int, n)
	for i := 0; i < n; i++ {
		start, end := idx[2*i], idx[2*i+1]
		ranges[i] = [2]int{start, end}
		if start < 0 {
			matches[i] = h.StrNew("")
			continue
		}
		matches[i] = h.StrNew(s[start:end])
	}
	return true, matches, ranges, nil
}

type builderObj struct{ b strings.Builder }

func (*builderObj) typeName() string       { return "builder" }
func (bo *builderObj) updateString() string { return bo.b.String() }

func (h *Host) StrBuilderNew() core.Handle {
	return h.reg.intern(&obj{intrep: &builderObj{}})
}

func (h *Host) StrBuilderAppendByte(b core.Handle, c byte) core.Handle {
	o := h.reg.get(b)
	bo, ok := o.intrep.(*builderObj)
	if !ok {
		return b
	}
	bo.b.WriteByte(c)
	o.bytesValid = false
	return b
}

func (h *Host) StrBuilderAppendObj(b core.Handle, s core.Handle) core.Handle {
	o := h.reg.get(b)
	bo, ok := o.intrep.(*builderObj)
	if !ok {
		return b
	}
	bo.b.WriteString(h.StrGo(s))
	o.bytesValid = false
	return b
}

func (h *Host) StrBuilderFinish(b core.Handle) core.Handle {
	o := h.reg.get(b)
	bo, ok := o.intrep.(*builderObj)
	if !ok {
		return h.StrNew("")
	}
	return h.StrNew(bo.b.String())
}

func (h *Host) StrIntern(data []byte) core.Handle {
	return h.reg.intern(newStringObj(string(data)))
}

func (h *Host) StrNew(s string) core.Handle {
	return h.reg.intern(newStringObj(s))
}

func (h *Host) StrGo(s core.Handle) string {
	o := h.reg.get(s)
	if o == nil {
		return ""
	}
	return o.String()
}

// ---- HostRune ----

func (h *Host) RuneLength(s core.Handle) int {
	return len([]rune(h.StrGo(s)))
}

func (h *Host) RuneAt(s core.Handle, i int) rune {
	r := []rune(h.StrGo(s))
	if i < 0 || i >= len(r) {
		return 0
	}
	return r[i]
}

func (h *Host) RuneToUpper(s core.Handle) core.Handle {
	return h.StrNew(strings.ToUpper(h.StrGo(s)))
}

func (h *Host) RuneToLower(s core.Handle) core.Handle {
	return h.StrNew(strings.ToLower(h.StrGo(s)))
}

func (h *Host) RuneFold(s core.Handle) core.Handle {
	return h.StrNew(strings.ToLower(h.StrGo(s)))
}

// ---- HostInt ----

func (h *Host) IntCreate(v int64) core.Handle {
	return h.reg.intern(newIntObj(v))
}

func (h *Host) IntGet(v core.Handle) (int64, error) {
	o := h.reg.get(v)
	if o == nil {
		return 0, core.ErrNotAList
	}
	n, ok := o.asInt()
	if !ok {
		return 0, &valueError{"expected integer but got \"" + o.String() + "\""}
	}
	return n, nil
}

type valueError struct{ msg string }

func (e *valueError) Error() string { return e.msg }
