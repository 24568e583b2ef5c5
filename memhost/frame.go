package memhost

import "github.com/feather-lang/tcl/core"

// varEntry is one slot in a frame's or namespace's variable table:
// either a live value, or a link redirecting to another frame/
// namespace slot, per §4.6.
type varEntry struct {
	val *obj

	isLink    bool
	linkIsNS  bool
	linkLevel int
	linkNS    string
	linkName  string
}

// frame is one call-frame-stack entry (§4.7's frame model).
type frame struct {
	namespace string
	vars      map[string]*varEntry
	cmd, args core.Handle
	line      int
	lambda    core.Handle
}

func newFrame(ns string) *frame {
	return &frame{namespace: ns, vars: make(map[string]*varEntry)}
}

// FramePush implements HostFrame.FramePush: it appends a new frame and
// makes it the active one, returning its level.
func (h *Host) FramePush(namespace string) int {
	h.frames = append(h.frames, newFrame(namespace))
	h.active = len(h.frames) - 1
	return h.active
}

// FramePop implements HostFrame.FramePop: it removes the top physical
// frame and restores the active level to the new top.
func (h *Host) FramePop() {
	if len(h.frames) <= 1 {
		return
	}
	h.frames = h.frames[:len(h.frames)-1]
	if h.active >= len(h.frames) {
		h.active = len(h.frames) - 1
	}
}

func (h *Host) FrameLevel() int { return h.active }

func (h *Host) FrameSetActive(level int) int {
	prev := h.active
	if level >= 0 && level < len(h.frames) {
		h.active = level
	}
	return prev
}

func (h *Host) FrameSize() int { return len(h.frames) }

func (h *Host) FrameInfo(level int) (core.FrameInfo, bool) {
	if level < 0 || level >= len(h.frames) {
		return core.FrameInfo{}, false
	}
	f := h.frames[level]
	return core.FrameInfo{
		Level:     level,
		Cmd:       f.cmd,
		Args:      f.args,
		Namespace: f.namespace,
		Line:      f.line,
		Lambda:    f.lambda,
	}, true
}

func (h *Host) FrameSetNamespace(level int, ns string) {
	if level < 0 || level >= len(h.frames) {
		return
	}
	h.frames[level].namespace = ns
}

func (h *Host) FrameGetNamespace(level int) string {
	if level < 0 || level >= len(h.frames) {
		return "::"
	}
	return h.frames[level].namespace
}

func (h *Host) FrameSetLine(level int, line int) {
	if level < 0 || level >= len(h.frames) {
		return
	}
	h.frames[level].line = line
}

func (h *Host) FrameGetLine(level int) int {
	if level < 0 || level >= len(h.frames) {
		return 0
	}
	return h.frames[level].line
}

func (h *Host) FrameSetLambda(level int, lambda core.Handle) {
	if level < 0 || level >= len(h.frames) {
		return
	}
	h.frames[level].lambda = lambda
}

func (h *Host) FrameGetLambda(level int) core.Handle {
	if level < 0 || level >= len(h.frames) {
		return core.NilHandle
	}
	return h.frames[level].lambda
}

func (h *Host) FrameSetCommand(level int, cmd, args core.Handle) {
	if level < 0 || level >= len(h.frames) {
		return
	}
	h.frames[level].cmd = cmd
	h.frames[level].args = args
}
