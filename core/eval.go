package core

// EvalScript implements §4.2's eval_script: it drives the parser over
// script's bytes, executing each parsed command in turn, and returns
// the result code of the last command (or the first error/non-OK
// control code encountered).
func (ip *Interp) EvalScript(script Handle, flags EvalFlag) Result {
	if ip.depth >= ip.recursionLimit {
		return ip.SetError(ErrDepthExceeded.Error())
	}
	ip.depth++
	defer func() { ip.depth-- }()

	restore := ip.applyEvalFlag(flags)
	defer restore()

	ctx := NewParseContext(script)
	lastCode := ResultOK
	for {
		words, status, start, end, msg := ip.ParseCommand(ctx)
		switch status {
		case ParseDone:
			return lastCode
		case ParseIncomplete:
			ip.Host.SetResult(ip.makeIncompleteDescriptor(start, end))
			return ip.SetError(ip.Host.StrGo(ip.Host.GetResult()))
		case ParseError:
			ip.Host.SetResult(ip.makeErrorDescriptor(start, end, msg))
			return ip.SetError(msg)
		}

		lastCode = ip.ExecCommand(words, flags)
		switch lastCode {
		case ResultOK:
			continue
		case ResultError, ResultReturn, ResultBreak, ResultContinue:
			return lastCode
		}
	}
}

// CheckComplete parses script without executing any command, reporting
// whether it is a syntactically complete sequence of commands. Used by
// REPL front ends to decide whether to keep reading more input.
func (ip *Interp) CheckComplete(script Handle) (ParseStatus, string) {
	ctx := NewParseContext(script)
	for {
		_, status, _, _, msg := ip.ParseCommand(ctx)
		switch status {
		case ParseDone:
			return ParseOK, ""
		case ParseIncomplete:
			return ParseIncomplete, msg
		case ParseError:
			return ParseError, msg
		}
	}
}

// EvalObj is an alias for EvalScript, named to mirror §6.2's
// script_eval_obj: it evaluates a value already known to be a script
// (as opposed to the raw script_eval entry point, EvalScript).
func (ip *Interp) EvalObj(script Handle, flags EvalFlag) Result {
	return ip.EvalScript(script, flags)
}

// applyEvalFlag implements the Local/Global EvalFlag by temporarily
// redirecting the active frame to the global frame (level 0) when
// EvalGlobal is requested, returning a function that restores it.
func (ip *Interp) applyEvalFlag(flags EvalFlag) func() {
	if flags != EvalGlobal {
		return func() {}
	}
	prev := ip.Host.FrameSetActive(0)
	return func() { ip.Host.FrameSetActive(prev) }
}

func (ip *Interp) makeIncompleteDescriptor(start, end int) Handle {
	h := ip.Host
	return h.ListFrom([]Handle{
		h.StrNew("INCOMPLETE"),
		h.IntCreate(int64(start)),
		h.IntCreate(int64(end)),
	})
}

func (ip *Interp) makeErrorDescriptor(start, end int, msg string) Handle {
	h := ip.Host
	return h.ListFrom([]Handle{
		h.StrNew("ERROR"),
		h.IntCreate(int64(start)),
		h.IntCreate(int64(end)),
		h.StrNew(msg),
	})
}

// ExecCommand implements §4.2's exec_command: it resolves the command
// name against the current namespace, falling back to `unknown` on a
// miss, and dispatches to a builtin or procedure.
func (ip *Interp) ExecCommand(words []Handle, flags EvalFlag) Result {
	if len(words) == 0 {
		ip.Host.ResetResult()
		return ResultOK
	}
	cmdName := ip.Host.StrGo(words[0])
	args := words[1:]

	level := ip.Host.FrameLevel()
	currentNS := ip.Host.FrameGetNamespace(level)
	entry, ok := ip.resolveCommand(currentNS, cmdName)
	if !ok {
		if res, handled := ip.Host.Unknown(ip, cmdName, words); handled {
			return res
		}
		return ip.SetError(errInvalidCommand(cmdName))
	}

	switch entry.Kind {
	case CmdBuiltin:
		fn, ok := ip.builtins[entry.BuiltinName]
		if !ok {
			return ip.SetError(errInvalidCommand(cmdName))
		}
		ip.Host.FrameSetCommand(level, words[0], ip.Host.ListFrom(args))
		return fn(ip, words[0], args)
	case CmdProc:
		return ip.invokeProc(entry, words[0], args)
	default:
		return ip.SetError(errInvalidCommand(cmdName))
	}
}

// Subst implements §4.3's standalone substitutor: it performs the
// selected subset of {backslash, variable, command} substitution over
// an arbitrary string, with no brace/quote tokenization.
func (ip *Interp) Subst(s Handle, backslashes, variables, commands bool) (Handle, Result) {
	h := ip.Host
	length := h.StrByteLength(s)
	ctx := &ParseContext{Script: s, Line: 1}
	builder := h.StrBuilderNew()

	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		switch {
		case b == '\\' && backslashes:
			text, ok := ip.readBackslashEscape(ctx)
			if !ok {
				return 0, ip.SetError("invalid backslash escape")
			}
			builder = h.StrBuilderAppendObj(builder, h.StrNew(text))
		case b == '$' && variables:
			v, status, start, end, msg, _ := ip.parseVarSubst(ctx)
			if status != ParseOK {
				if status == ParseIncomplete {
					msg = "missing close-brace for variable name"
					_ = start
					_ = end
				}
				return 0, ip.SetError(msg)
			}
			builder = h.StrBuilderAppendObj(builder, v)
		case b == '[' && commands:
			v, status, _, _, msg, _ := ip.parseCmdSubst(ctx)
			if status == ParseIncomplete {
				return 0, ip.SetError("missing close-bracket for command substitution")
			}
			if status != ParseOK {
				return 0, ip.SetError(msg)
			}
			builder = h.StrBuilderAppendObj(builder, v)
		default:
			runStart := ctx.Pos
			for ctx.Pos < length {
				c := ip.byteAt(ctx)
				if (c == '\\' && backslashes) || (c == '$' && variables) || (c == '[' && commands) {
					break
				}
				if c == '\n' {
					ctx.Line++
				}
				ctx.Pos++
			}
			if ctx.Pos == runStart {
				ctx.Pos++
				runEnd := ctx.Pos
				builder = h.StrBuilderAppendObj(builder, h.StrSlice(s, runStart, runEnd))
				continue
			}
			builder = h.StrBuilderAppendObj(builder, h.StrSlice(s, runStart, ctx.Pos))
		}
	}
	result := h.StrBuilderFinish(builder)
	h.SetResult(result)
	return result, ResultOK
}
