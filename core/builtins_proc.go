package core

// builtinProc implements §4.7's proc definition: it parses the
// parameter spec list into (name, ?default?) pairs once at definition
// time and stores the descriptor through the host's namespace table.
func builtinProc(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) != 3 {
		return ip.SetError(errWrongArgs("proc name args body"))
	}
	name := h.StrGo(args[0])
	ns, tail := SplitQualifiedCommand(name)
	abs := CanonicalNamespace(ns)
	if ns == "" {
		abs = h.FrameGetNamespace(h.FrameLevel())
	}
	h.NSCreate(abs)

	params, res := parseParamSpec(ip, args[1])
	if res != ResultOK {
		return res
	}

	entry := CommandEntry{
		Kind:       CmdProc,
		Name:       joinNamespace(abs, tail),
		DefiningNS: abs,
		Params:     params,
		Body:       args[2],
	}
	h.NSSetCommand(abs, tail, entry)
	ip.SetResultString("")
	return ResultOK
}

// parseParamSpec normalizes a raw params list (each element either a
// bare name or a {name default} pair) into a list of 1- or 2-element
// lists, ready for bindParams.
func parseParamSpec(ip *Interp, raw Handle) (Handle, Result) {
	h := ip.Host
	n := h.ListLength(raw)
	out := make([]Handle, n)
	for i := 0; i < n; i++ {
		elem := h.ListAt(raw, i)
		if h.ListLength(elem) >= 2 {
			out[i] = h.ListFrom([]Handle{h.ListAt(elem, 0), h.ListAt(elem, 1)})
		} else {
			out[i] = h.ListFrom([]Handle{h.StrNew(h.StrGo(elem))})
		}
	}
	return h.ListFrom(out), ResultOK
}

// builtinApply implements §4.7's lambda application: a lambda value is
// a 2- or 3-element list {params body ?namespace?}, invoked without
// ever being registered in the command table.
func builtinApply(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("apply lambdaExpr ?arg ...?"))
	}
	lambda := args[0]
	if h.ListLength(lambda) < 2 {
		return ip.SetError("can't interpret \"" + h.StrGo(lambda) + "\" as a lambda expression")
	}
	rawParams := h.ListAt(lambda, 0)
	body := h.ListAt(lambda, 1)
	ns := "::"
	if h.ListLength(lambda) >= 3 {
		ns = CanonicalNamespace(h.StrGo(h.ListAt(lambda, 2)))
	}
	params, res := parseParamSpec(ip, rawParams)
	if res != ResultOK {
		return res
	}
	entry := CommandEntry{
		Kind:       CmdProc,
		Name:       "apply",
		DefiningNS: ns,
		Params:     params,
		Body:       body,
	}
	return ip.invokeProc(entry, h.StrNew("apply"), args[1:])
}

// builtinRename implements §4.5's rename: moving or deleting a command
// descriptor between namespace tables. An empty newName deletes it.
func builtinRename(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) != 2 {
		return ip.SetError(errWrongArgs("rename oldName newName"))
	}
	oldName := h.StrGo(args[0])
	newName := h.StrGo(args[1])

	level := h.FrameLevel()
	currentNS := h.FrameGetNamespace(level)
	entry, ok := ip.resolveCommand(currentNS, oldName)
	if !ok {
		return ip.SetError(errInvalidCommand(oldName))
	}
	oldNS, oldTail := SplitQualifiedCommand(oldName)
	oldAbs := CanonicalNamespace(oldNS)
	if oldNS == "" {
		oldAbs = entry.DefiningNS
	}
	newNS, newTail := SplitQualifiedCommand(newName)
	newAbs := CanonicalNamespace(newNS)
	if newNS == "" {
		newAbs = currentNS
	}
	if newName != "" {
		if _, exists := h.NSGetCommand(newAbs, newTail); exists {
			return ip.SetError("can't rename to \"" + newName + "\": command already exists")
		}
	}
	h.NSDeleteCommand(oldAbs, oldTail)

	if newName == "" {
		ip.SetResultString("")
		return ResultOK
	}
	h.NSCreate(newAbs)
	entry.Name = joinNamespace(newAbs, newTail)
	entry.DefiningNS = newAbs
	h.NSSetCommand(newAbs, newTail, entry)
	ip.SetResultString("")
	return ResultOK
}
