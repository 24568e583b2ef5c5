package core

// builtinDict implements the `dict` ensemble's commonly used
// subcommands.
func builtinDict(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("dict subcommand ?arg ...?"))
	}
	sub := h.StrGo(args[0])
	rest := args[1:]
	switch sub {
	case "create":
		if len(rest)%2 != 0 {
			return ip.SetError(errWrongArgs("dict create ?key value ...?"))
		}
		d := h.DictCreate()
		for i := 0; i < len(rest); i += 2 {
			d = h.DictSet(d, h.StrGo(rest[i]), rest[i+1])
		}
		h.SetResult(d)
		return ResultOK
	case "get":
		if len(rest) < 1 {
			return ip.SetError(errWrongArgs("dict get dictionary ?key ...?"))
		}
		cur := rest[0]
		for _, k := range rest[1:] {
			v, ok := h.DictGet(cur, h.StrGo(k))
			if !ok {
				return ip.SetError("key \"" + h.StrGo(k) + "\" not known in dictionary")
			}
			cur = v
		}
		h.SetResult(cur)
		return ResultOK
	case "exists":
		if len(rest) < 2 {
			return ip.SetError(errWrongArgs("dict exists dictionary key ?key ...?"))
		}
		cur := rest[0]
		ok := true
		for _, k := range rest[1:] {
			v, exists := h.DictGet(cur, h.StrGo(k))
			if !exists {
				ok = false
				break
			}
			cur = v
		}
		h.SetResult(boolHandle(h, ok))
		return ResultOK
	case "set":
		if len(rest) < 3 {
			return ip.SetError(errWrongArgs("dict set dictVarName key ?key ...? value"))
		}
		level := h.FrameLevel()
		name := h.StrGo(rest[0])
		d, ok := ip.resolveVariableGet(level, name)
		if !ok {
			d = h.DictCreate()
		}
		keys := rest[1 : len(rest)-1]
		value := rest[len(rest)-1]
		nd, res := dictSetPath(ip, d, keys, value)
		if res != ResultOK {
			return res
		}
		ip.resolveVariableSet(level, name, nd)
		h.SetResult(nd)
		return ResultOK
	case "unset":
		if len(rest) < 2 {
			return ip.SetError(errWrongArgs("dict unset dictVarName key ?key ...?"))
		}
		level := h.FrameLevel()
		name := h.StrGo(rest[0])
		d, ok := ip.resolveVariableGet(level, name)
		if !ok {
			d = h.DictCreate()
		}
		var unset func(d Handle, keys []Handle) Handle
		unset = func(d Handle, keys []Handle) Handle {
			k := h.StrGo(keys[0])
			if len(keys) == 1 {
				return h.DictRemove(d, k)
			}
			child, ok := h.DictGet(d, k)
			if !ok {
				return d
			}
			return h.DictSet(d, k, unset(child, keys[1:]))
		}
		nd := unset(d, rest[1:])
		ip.resolveVariableSet(level, name, nd)
		h.SetResult(nd)
		return ResultOK
	case "remove":
		if len(rest) < 1 {
			return ip.SetError(errWrongArgs("dict remove dictionary ?key ...?"))
		}
		d := rest[0]
		for _, k := range rest[1:] {
			d = h.DictRemove(d, h.StrGo(k))
		}
		h.SetResult(d)
		return ResultOK
	case "size":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("dict size dictionary"))
		}
		h.SetResult(h.IntCreate(int64(h.DictSize(rest[0]))))
		return ResultOK
	case "keys":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("dict keys dictionary"))
		}
		keys := h.DictKeys(rest[0])
		out := make([]Handle, len(keys))
		for i, k := range keys {
			out[i] = h.StrNew(k)
		}
		h.SetResult(h.ListFrom(out))
		return ResultOK
	case "values":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("dict values dictionary"))
		}
		h.SetResult(h.ListFrom(h.DictValues(rest[0])))
		return ResultOK
	case "append":
		if len(rest) < 2 {
			return ip.SetError(errWrongArgs("dict append dictVarName key ?value ...?"))
		}
		level := h.FrameLevel()
		name := h.StrGo(rest[0])
		d, ok := ip.resolveVariableGet(level, name)
		if !ok {
			d = h.DictCreate()
		}
		key := h.StrGo(rest[1])
		cur, _ := h.DictGet(d, key)
		if cur == NilHandle {
			cur = h.StrNew("")
		}
		for _, v := range rest[2:] {
			cur = h.StrConcat(cur, v)
		}
		nd := h.DictSet(d, key, cur)
		ip.resolveVariableSet(level, name, nd)
		h.SetResult(nd)
		return ResultOK
	case "incr":
		if len(rest) < 2 {
			return ip.SetError(errWrongArgs("dict incr dictVarName key ?increment?"))
		}
		level := h.FrameLevel()
		name := h.StrGo(rest[0])
		d, ok := ip.resolveVariableGet(level, name)
		if !ok {
			d = h.DictCreate()
		}
		key := h.StrGo(rest[1])
		delta := int64(1)
		if len(rest) >= 3 {
			n, err := h.IntGet(rest[2])
			if err != nil {
				return ip.SetError("expected integer but got \"" + h.StrGo(rest[2]) + "\"")
			}
			delta = n
		}
		cur := int64(0)
		if v, exists := h.DictGet(d, key); exists {
			n, err := h.IntGet(v)
			if err != nil {
				return ip.SetError("expected integer but got \"" + h.StrGo(v) + "\"")
			}
			cur = n
		}
		nd := h.DictSet(d, key, h.IntCreate(cur+delta))
		ip.resolveVariableSet(level, name, nd)
		h.SetResult(nd)
		return ResultOK
	case "for":
		return dictFor(ip, rest)
	case "merge":
		d := h.DictCreate()
		for _, arg := range rest {
			keys := h.DictKeys(arg)
			for _, k := range keys {
				v, _ := h.DictGet(arg, k)
				d = h.DictSet(d, k, v)
			}
		}
		h.SetResult(d)
		return ResultOK
	}
	return ip.SetError("unknown or ambiguous subcommand \"" + sub + "\": must be append, create, exists, for, get, incr, keys, merge, remove, set, size, unset, or values")
}

func dictSetPath(ip *Interp, d Handle, keys []Handle, value Handle) (Handle, Result) {
	h := ip.Host
	if len(keys) == 1 {
		return h.DictSet(d, h.StrGo(keys[0]), value), ResultOK
	}
	key := h.StrGo(keys[0])
	child, ok := h.DictGet(d, key)
	if !ok {
		child = h.DictCreate()
	}
	nchild, res := dictSetPath(ip, child, keys[1:], value)
	if res != ResultOK {
		return 0, res
	}
	return h.DictSet(d, key, nchild), ResultOK
}

func dictFor(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) != 3 {
		return ip.SetError(errWrongArgs("dict for {keyVar valueVar} dictionary body"))
	}
	varlist, d, body := rest[0], rest[1], rest[2]
	if h.ListLength(varlist) != 2 {
		return ip.SetError("must have exactly two variable names")
	}
	keyVar := h.StrGo(h.ListAt(varlist, 0))
	valVar := h.StrGo(h.ListAt(varlist, 1))
	level := h.FrameLevel()
	for _, k := range h.DictKeys(d) {
		v, _ := h.DictGet(d, k)
		h.VarSet(level, keyVar, h.StrNew(k))
		h.VarSet(level, valVar, v)
		code := ip.EvalScript(body, EvalLocal)
		switch code {
		case ResultBreak:
			ip.SetResultString("")
			return ResultOK
		case ResultContinue, ResultOK:
			continue
		default:
			return code
		}
	}
	ip.SetResultString("")
	return ResultOK
}
