package core

// builtinInfo implements the `info` ensemble's introspection
// subcommands, per §4.8.
func builtinInfo(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("info subcommand ?arg ...?"))
	}
	sub := h.StrGo(args[0])
	rest := args[1:]
	level := h.FrameLevel()
	ns := h.FrameGetNamespace(level)

	switch sub {
	case "exists":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("info exists varName"))
		}
		h.SetResult(boolHandle(h, ip.resolveVariableExists(level, h.StrGo(rest[0]))))
		return ResultOK
	case "commands":
		pattern := "*"
		if len(rest) == 1 {
			pattern = h.StrGo(rest[0])
		}
		names := h.NSListCommands(ns)
		out := filterGlob(h, names, pattern)
		h.SetResult(h.ListFrom(strsToHandles(h, out)))
		return ResultOK
	case "procs":
		pattern := "*"
		if len(rest) == 1 {
			pattern = h.StrGo(rest[0])
		}
		names := h.NSListCommands(ns)
		var out []string
		for _, n := range names {
			entry, ok := h.NSGetCommand(ns, n)
			if ok && entry.Kind == CmdProc && h.StrGlobMatch(h.StrNew(pattern), h.StrNew(n), false) {
				out = append(out, n)
			}
		}
		h.SetResult(h.ListFrom(strsToHandles(h, out)))
		return ResultOK
	case "vars":
		pattern := "*"
		if len(rest) == 1 {
			pattern = h.StrGo(rest[0])
		}
		names := h.VarNames(level, pattern)
		h.SetResult(h.ListFrom(strsToHandles(h, names)))
		return ResultOK
	case "level":
		if len(rest) == 0 {
			h.SetResult(h.IntCreate(int64(level)))
			return ResultOK
		}
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("info level ?number?"))
		}
		n, err := h.IntGet(rest[0])
		if err != nil {
			return ip.SetError("expected integer but got \"" + h.StrGo(rest[0]) + "\"")
		}
		nn := int(n)
		absolute := nn < 0
		if absolute {
			nn = -nn
		}
		target := ip.resolveLevel(nn, absolute)
		fi, ok := h.FrameInfo(target)
		if !ok || fi.Cmd == NilHandle {
			return ip.SetError("bad level \"" + h.StrGo(rest[0]) + "\"")
		}
		h.SetResult(fi.Args)
		return ResultOK
	case "body":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("info body procname"))
		}
		entry, ok := ip.resolveCommand(ns, h.StrGo(rest[0]))
		if !ok || entry.Kind != CmdProc {
			return ip.SetError(errInvalidCommand(h.StrGo(rest[0])))
		}
		h.SetResult(entry.Body)
		return ResultOK
	case "args":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("info args procname"))
		}
		entry, ok := ip.resolveCommand(ns, h.StrGo(rest[0]))
		if !ok || entry.Kind != CmdProc {
			return ip.SetError(errInvalidCommand(h.StrGo(rest[0])))
		}
		n := h.ListLength(entry.Params)
		out := make([]Handle, n)
		for i := 0; i < n; i++ {
			out[i] = h.ListAt(h.ListAt(entry.Params, i), 0)
		}
		h.SetResult(h.ListFrom(out))
		return ResultOK
	case "exists-command", "commandexists":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("info commandexists name"))
		}
		_, ok := ip.resolveCommand(ns, h.StrGo(rest[0]))
		h.SetResult(boolHandle(h, ok))
		return ResultOK
	case "script":
		h.SetResult(h.GetScript())
		return ResultOK
	case "namespace":
		h.SetResult(h.StrNew(ns))
		return ResultOK
	}
	return ip.SetError("unknown or ambiguous subcommand \"" + sub + "\": must be args, body, commands, exists, level, namespace, procs, script, or vars")
}

func filterGlob(h Host, names []string, pattern string) []string {
	var out []string
	p := h.StrNew(pattern)
	for _, n := range names {
		if h.StrGlobMatch(p, h.StrNew(n), false) {
			out = append(out, n)
		}
	}
	return out
}

func strsToHandles(h Host, names []string) []Handle {
	out := make([]Handle, len(names))
	for i, n := range names {
		out[i] = h.StrNew(n)
	}
	return out
}
