package core

// registerCoreBuiltins installs every non-control-flow builtin: variable
// access, lists, dicts, strings, procedure management, namespaces, and
// introspection.
func registerCoreBuiltins(ip *Interp) {
	ip.RegisterBuiltin("set", builtinSet)
	ip.RegisterBuiltin("unset", builtinUnset)
	ip.RegisterBuiltin("incr", builtinIncr)
	ip.RegisterBuiltin("append", builtinAppend)
	ip.RegisterBuiltin("global", builtinGlobal)
	ip.RegisterBuiltin("variable", builtinVariable)
	ip.RegisterBuiltin("upvar", builtinUpvar)

	ip.RegisterBuiltin("list", builtinList)
	ip.RegisterBuiltin("llength", builtinLlength)
	ip.RegisterBuiltin("lindex", builtinLindex)
	ip.RegisterBuiltin("lappend", builtinLappend)
	ip.RegisterBuiltin("lrange", builtinLrange)
	ip.RegisterBuiltin("linsert", builtinLinsert)
	ip.RegisterBuiltin("lreplace", builtinLreplace)
	ip.RegisterBuiltin("lreverse", builtinLreverse)
	ip.RegisterBuiltin("lrepeat", builtinLrepeat)
	ip.RegisterBuiltin("lset", builtinLset)
	ip.RegisterBuiltin("lsearch", builtinLsearch)
	ip.RegisterBuiltin("lsort", builtinLsort)
	ip.RegisterBuiltin("join", builtinJoin)
	ip.RegisterBuiltin("split", builtinSplit)
	ip.RegisterBuiltin("concat", builtinConcat)

	ip.RegisterBuiltin("dict", builtinDict)
	ip.RegisterBuiltin("string", builtinString)

	ip.RegisterBuiltin("proc", builtinProc)
	ip.RegisterBuiltin("apply", builtinApply)
	ip.RegisterBuiltin("rename", builtinRename)
	ip.RegisterBuiltin("tailcall", builtinTailcall)

	ip.RegisterBuiltin("namespace", builtinNamespace)
	ip.RegisterBuiltin("info", builtinInfo)
	ip.RegisterBuiltin("unknown", builtinUnknown)
}

func builtinSet(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 2 {
		return ip.SetError(errWrongArgs("set varName ?newValue?"))
	}
	level := h.FrameLevel()
	name := h.StrGo(args[0])
	if len(args) == 2 {
		ip.resolveVariableSet(level, name, args[1])
		h.SetResult(args[1])
		return ResultOK
	}
	v, ok := ip.resolveVariableGet(level, name)
	if !ok {
		return ip.SetError(errCantRead(name))
	}
	h.SetResult(v)
	return ResultOK
}

func builtinUnset(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	level := h.FrameLevel()
	nocomplain := false
	i := 0
	for i < len(args) && h.StrGo(args[i]) == "-nocomplain" {
		nocomplain = true
		i++
	}
	if i < len(args) && h.StrGo(args[i]) == "--" {
		i++
	}
	if i >= len(args) && !nocomplain {
		return ip.SetError(errWrongArgs("unset ?-nocomplain? ?--? ?varName ...?"))
	}
	for ; i < len(args); i++ {
		name := h.StrGo(args[i])
		if !ip.resolveVariableUnset(level, name) && !nocomplain {
			return ip.SetError(errCantUnset(name))
		}
	}
	ip.SetResultString("")
	return ResultOK
}

func builtinIncr(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 2 {
		return ip.SetError(errWrongArgs("incr varName ?increment?"))
	}
	level := h.FrameLevel()
	name := h.StrGo(args[0])
	delta := int64(1)
	if len(args) == 2 {
		n, err := h.IntGet(args[1])
		if err != nil {
			return ip.SetError("expected integer but got \"" + h.StrGo(args[1]) + "\"")
		}
		delta = n
	}
	cur := int64(0)
	if v, ok := ip.resolveVariableGet(level, name); ok {
		n, err := h.IntGet(v)
		if err != nil {
			return ip.SetError("expected integer but got \"" + h.StrGo(v) + "\"")
		}
		cur = n
	}
	result := h.IntCreate(cur + delta)
	ip.resolveVariableSet(level, name, result)
	h.SetResult(result)
	return ResultOK
}

func builtinAppend(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("append varName ?value ...?"))
	}
	level := h.FrameLevel()
	name := h.StrGo(args[0])
	cur, _ := ip.resolveVariableGet(level, name)
	if cur == NilHandle {
		cur = h.StrNew("")
	}
	for _, v := range args[1:] {
		cur = h.StrConcat(cur, v)
	}
	ip.resolveVariableSet(level, name, cur)
	h.SetResult(cur)
	return ResultOK
}

func builtinGlobal(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	level := h.FrameLevel()
	for _, a := range args {
		name := h.StrGo(a)
		if err := h.VarLinkNS(level, name, "::", name); err != nil {
			return ip.SetError(err.Error())
		}
	}
	ip.SetResultString("")
	return ResultOK
}

func builtinVariable(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	level := h.FrameLevel()
	ns := h.FrameGetNamespace(level)
	i := 0
	for i < len(args) {
		name := h.StrGo(args[i])
		var initial Handle
		hasInitial := false
		if i+1 < len(args) && len(args) != i+1 {
			// Pairs consume two args unless this is the final lone name.
			if len(args)-i >= 2 {
				initial = args[i+1]
				hasInitial = true
			}
		}
		if err := h.VarLinkNS(level, name, ns, name); err != nil {
			return ip.SetError(err.Error())
		}
		if hasInitial && !h.NSVarExists(ns, name) {
			h.NSSetVar(ns, name, initial)
		} else if hasInitial {
			// initial value is only applied if the namespace variable is
			// unset, matching Tcl's `variable` semantics.
			if _, ok := h.NSGetVar(ns, name); !ok {
				h.NSSetVar(ns, name, initial)
			}
		}
		if hasInitial {
			i += 2
		} else {
			i++
		}
	}
	ip.SetResultString("")
	return ResultOK
}

func builtinUpvar(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 2 {
		return ip.SetError(errWrongArgs("upvar ?level? otherVar localVar ?otherVar localVar ...?"))
	}
	level := h.FrameLevel()
	rest := args
	srcLevel := ip.resolveLevel(1, false)
	if n, abs, ok := parseLevelSpec(h, args[0]); ok {
		srcLevel = ip.resolveLevel(n, abs)
		rest = args[1:]
	}
	if len(rest) == 0 || len(rest)%2 != 0 {
		return ip.SetError(errWrongArgs("upvar ?level? otherVar localVar ?otherVar localVar ...?"))
	}
	for i := 0; i < len(rest); i += 2 {
		other := h.StrGo(rest[i])
		local := h.StrGo(rest[i+1])
		if err := h.VarLink(level, local, srcLevel, other); err != nil {
			return ip.SetError(err.Error())
		}
	}
	ip.SetResultString("")
	return ResultOK
}

func builtinTailcall(ip *Interp, cmd Handle, args []Handle) Result {
	if len(args) == 0 {
		return ip.SetError(errWrongArgs("tailcall command ?arg ...?"))
	}
	h := ip.Host
	ip.pendingTailcall = &tailcallRequest{
		cmdName: h.StrGo(args[0]),
		args:    args[1:],
	}
	ip.SetResultString("")
	return ResultReturn
}

func builtinUnknown(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) == 0 {
		ip.SetResultString("")
		return ResultOK
	}
	return ip.SetError(errInvalidCommand(h.StrGo(args[0])))
}
