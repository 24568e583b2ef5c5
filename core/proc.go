package core

import "strings"

// invokeProc implements §4.7's call protocol: push a frame, bind
// parameters, evaluate the body, and unwrap a matching RETURN.
func (ip *Interp) invokeProc(entry CommandEntry, cmdWord Handle, args []Handle) Result {
	h := ip.Host
	level := h.FramePush(entry.DefiningNS)
	popped := false
	pop := func() {
		if !popped {
			h.FramePop()
			popped = true
		}
	}
	defer pop()

	h.FrameSetCommand(level, cmdWord, h.ListFrom(args))

	if res := ip.bindParams(entry, cmdWord, args); res != ResultOK {
		return res
	}

	code := ip.EvalScript(entry.Body, EvalLocal)

	if code == ResultReturn && ip.pendingTailcall != nil {
		req := ip.pendingTailcall
		ip.pendingTailcall = nil
		pop()
		words := make([]Handle, 0, len(req.args)+1)
		words = append(words, h.StrNew(req.cmdName))
		words = append(words, req.args...)
		return ip.ExecCommand(words, EvalLocal)
	}

	switch code {
	case ResultReturn:
		return ip.consumeReturn()
	case ResultBreak:
		return ip.SetError(errLeak("break"))
	case ResultContinue:
		return ip.SetError(errLeak("continue"))
	default:
		return code
	}
}

// consumeReturn implements the §4.4/§4.7 RETURN-unwrapping rule: a
// RETURN at level 1 is consumed by the immediately enclosing proc
// invocation (becoming that invocation's OK, or the -code it carried);
// at level > 1 it is decremented and re-propagated.
func (ip *Interp) consumeReturn() Result {
	h := ip.Host
	opts := h.GetReturnOptions()
	level := int64(1)
	if v, ok := h.DictGet(opts, "-level"); ok {
		if n, err := h.IntGet(v); err == nil {
			level = n
		}
	}
	if level > 1 {
		opts = h.DictSet(opts, "-level", h.IntCreate(level-1))
		h.SetReturnOptions(opts)
		return ResultReturn
	}
	codeVal := int64(ResultOK)
	if v, ok := h.DictGet(opts, "-code"); ok {
		if n, err := h.IntGet(v); err == nil {
			codeVal = n
		}
	}
	return Result(codeVal)
}

// bindParams implements §4.7's binding algorithm.
func (ip *Interp) bindParams(entry CommandEntry, cmdWord Handle, args []Handle) Result {
	h := ip.Host
	level := h.FrameLevel()
	n := h.ListLength(entry.Params)

	ai := 0
	for pi := 0; pi < n; pi++ {
		spec := h.ListAt(entry.Params, pi)
		name := h.StrGo(h.ListAt(spec, 0))
		hasDefault := h.ListLength(spec) >= 2

		if name == "args" && pi == n-1 {
			rest := args[min(ai, len(args)):]
			h.VarSet(level, "args", h.ListFrom(rest))
			ai = len(args)
			continue
		}

		if ai < len(args) {
			h.VarSet(level, name, args[ai])
			ai++
			continue
		}
		if hasDefault {
			h.VarSet(level, name, h.ListAt(spec, 1))
			continue
		}
		return ip.SetError(errWrongArgs(procUsage(h, cmdWord, entry.Params)))
	}

	if ai < len(args) {
		return ip.SetError(errWrongArgs(procUsage(h, cmdWord, entry.Params)))
	}
	return ResultOK
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// procUsage builds the "name p1 p2 ..." usage string for the
// wrong-#-args error.
func procUsage(h Host, cmdWord Handle, params Handle) string {
	var b strings.Builder
	b.WriteString(h.StrGo(cmdWord))
	n := h.ListLength(params)
	for i := 0; i < n; i++ {
		spec := h.ListAt(params, i)
		name := h.StrGo(h.ListAt(spec, 0))
		b.WriteString(" ")
		if name == "args" && i == n-1 {
			b.WriteString("?args?")
			continue
		}
		if h.ListLength(spec) >= 2 {
			b.WriteString("?")
			b.WriteString(name)
			b.WriteString("?")
		} else {
			b.WriteString(name)
		}
	}
	return b.String()
}
