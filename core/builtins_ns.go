package core

// builtinNamespace implements the `namespace` ensemble's commonly used
// subcommands, per §4.5.
func builtinNamespace(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("namespace subcommand ?arg ...?"))
	}
	sub := h.StrGo(args[0])
	rest := args[1:]
	level := h.FrameLevel()
	switch sub {
	case "eval":
		if len(rest) < 2 {
			return ip.SetError(errWrongArgs("namespace eval name arg ?arg ...?"))
		}
		name := h.StrGo(rest[0])
		abs := CanonicalNamespace(name)
		if !IsQualifiedName(name) && h.FrameGetNamespace(level) != "::" {
			abs = joinNamespace(h.FrameGetNamespace(level), name)
		}
		h.NSCreate(abs)
		var script Handle
		if len(rest) == 2 {
			script = rest[1]
		} else {
			b := h.StrBuilderNew()
			for i, a := range rest[1:] {
				if i > 0 {
					b = h.StrBuilderAppendByte(b, ' ')
				}
				b = h.StrBuilderAppendObj(b, a)
			}
			script = h.StrBuilderFinish(b)
		}
		frameLevel := h.FramePush(abs)
		code := ip.EvalScript(script, EvalLocal)
		_ = frameLevel
		h.FramePop()
		return code
	case "current":
		if len(rest) != 0 {
			return ip.SetError(errWrongArgs("namespace current"))
		}
		h.SetResult(h.StrNew(h.FrameGetNamespace(level)))
		return ResultOK
	case "parent":
		ns := h.FrameGetNamespace(level)
		if len(rest) == 1 {
			ns = CanonicalNamespace(h.StrGo(rest[0]))
		}
		h.SetResult(h.StrNew(h.NSParent(ns)))
		return ResultOK
	case "children":
		ns := h.FrameGetNamespace(level)
		if len(rest) == 1 {
			ns = CanonicalNamespace(h.StrGo(rest[0]))
		}
		children := h.NSChildren(ns)
		out := make([]Handle, len(children))
		for i, c := range children {
			out[i] = h.StrNew(c)
		}
		h.SetResult(h.ListFrom(out))
		return ResultOK
	case "exists":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("namespace exists name"))
		}
		h.SetResult(boolHandle(h, h.NSExists(CanonicalNamespace(h.StrGo(rest[0])))))
		return ResultOK
	case "delete":
		for _, a := range rest {
			if err := h.NSDelete(CanonicalNamespace(h.StrGo(a))); err != nil {
				return ip.SetError(err.Error())
			}
		}
		ip.SetResultString("")
		return ResultOK
	case "export":
		ns := h.FrameGetNamespace(level)
		patterns := make([]string, len(rest))
		for i, a := range rest {
			patterns[i] = h.StrGo(a)
		}
		h.NSSetExports(ns, append(h.NSGetExports(ns), patterns...))
		ip.SetResultString("")
		return ResultOK
	case "qualifiers":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("namespace qualifiers string"))
		}
		ns, _ := SplitQualifiedCommand(h.StrGo(rest[0]))
		h.SetResult(h.StrNew(ns))
		return ResultOK
	case "tail":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("namespace tail string"))
		}
		_, tail := SplitQualifiedCommand(h.StrGo(rest[0]))
		h.SetResult(h.StrNew(tail))
		return ResultOK
	case "which":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("namespace which name"))
		}
		name := h.StrGo(rest[0])
		entry, ok := ip.resolveCommand(h.FrameGetNamespace(level), name)
		if !ok {
			h.SetResult(h.StrNew(""))
			return ResultOK
		}
		h.SetResult(h.StrNew(entry.Name))
		return ResultOK
	}
	return ip.SetError("unknown or ambiguous subcommand \"" + sub + "\": must be children, current, delete, eval, exists, export, parent, qualifiers, tail, or which")
}
