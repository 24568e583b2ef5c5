package memhost

import "github.com/feather-lang/tcl/core"

func (h *Host) SetResult(v core.Handle) {
	o := h.reg.get(v)
	if o == nil {
		o = newStringObj("")
	}
	h.result = o
	h.retOpts = nil
}

func (h *Host) GetResult() core.Handle {
	return h.reg.intern(h.result)
}

func (h *Host) ResetResult() {
	h.result = newStringObj("")
	h.retOpts = nil
}

func (h *Host) SetReturnOptions(d core.Handle) {
	h.retOpts = h.reg.get(d)
}

func (h *Host) GetReturnOptions() core.Handle {
	if h.retOpts == nil {
		return core.NilHandle
	}
	return h.reg.intern(h.retOpts)
}

func (h *Host) GetScript() core.Handle {
	return h.reg.intern(h.script)
}

func (h *Host) SetScript(v core.Handle) {
	o := h.reg.get(v)
	if o == nil {
		o = newStringObj("")
	}
	h.script = o
}

// Unknown implements HostBind: it delegates to a registered "::unknown"
// command, whether the builtin default or a script-level override
// installed via `proc unknown {...}`. It reports unhandled only when no
// "::unknown" command is currently registered, for example after
// `rename unknown {}`.
func (h *Host) Unknown(ip *core.Interp, cmdName string, args []core.Handle) (core.Result, bool) {
	if _, ok := h.NSGetCommand("::", "unknown"); !ok {
		return core.ResultOK, false
	}
	words := make([]core.Handle, 0, len(args)+2)
	words = append(words, h.StrNew("unknown"))
	words = append(words, h.StrNew(cmdName))
	words = append(words, args...)
	return ip.ExecCommand(words, core.EvalLocal), true
}
