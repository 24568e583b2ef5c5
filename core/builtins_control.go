package core

import "strings"

// registerControlBuiltins installs the §4.4 control-flow commands: the
// ones that touch the result-code protocol directly.
func registerControlBuiltins(ip *Interp) {
	ip.RegisterBuiltin("if", builtinIf)
	ip.RegisterBuiltin("while", builtinWhile)
	ip.RegisterBuiltin("for", builtinFor)
	ip.RegisterBuiltin("foreach", builtinForeach)
	ip.RegisterBuiltin("lmap", builtinLmap)
	ip.RegisterBuiltin("catch", builtinCatch)
	ip.RegisterBuiltin("try", builtinTry)
	ip.RegisterBuiltin("return", builtinReturn)
	ip.RegisterBuiltin("break", builtinBreak)
	ip.RegisterBuiltin("continue", builtinContinue)
	ip.RegisterBuiltin("error", builtinError)
	ip.RegisterBuiltin("switch", builtinSwitch)
	ip.RegisterBuiltin("eval", builtinEval)
	ip.RegisterBuiltin("uplevel", builtinUplevel)
	ip.RegisterBuiltin("expr", builtinExpr)
}

// evalBoolWord evaluates word as a Tcl expression and interprets it
// with TCL boolean rules, the way if/while/for conditions do.
func (ip *Interp) evalBoolWord(word Handle) (bool, Result) {
	v, err := ip.evalExpr(word)
	if err != nil {
		return false, ip.SetError(err.Error())
	}
	b, err := ip.truthy(v)
	if err != nil {
		return false, ip.SetError(err.Error())
	}
	return b, ResultOK
}

func builtinExpr(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) == 0 {
		ip.SetResultString("")
		return ResultOK
	}
	joined := args[0]
	if len(args) > 1 {
		b := h.StrBuilderNew()
		for i, a := range args {
			if i > 0 {
				b = h.StrBuilderAppendByte(b, ' ')
			}
			b = h.StrBuilderAppendObj(b, a)
		}
		joined = h.StrBuilderFinish(b)
	}
	v, err := ip.evalExpr(joined)
	if err != nil {
		return ip.SetError(err.Error())
	}
	h.SetResult(v)
	return ResultOK
}

func builtinIf(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	i := 0
	for i < len(args) {
		cond := args[i]
		i++
		if i < len(args) && h.StrGo(args[i]) == "then" {
			i++
		}
		if i >= len(args) {
			return ip.SetError(errWrongArgs("if condition ?then? body ?elseif ...?"))
		}
		body := args[i]
		i++

		b, res := ip.evalBoolWord(cond)
		if res != ResultOK {
			return res
		}
		if b {
			return ip.EvalScript(body, EvalLocal)
		}

		if i >= len(args) {
			ip.SetResultString("")
			return ResultOK
		}
		kw := h.StrGo(args[i])
		if kw == "elseif" {
			i++
			continue
		}
		if kw == "else" {
			i++
			if i >= len(args) {
				return ip.SetError(errWrongArgs("if ... else body"))
			}
			return ip.EvalScript(args[i], EvalLocal)
		}
		// Bare else-body with no "else" keyword.
		return ip.EvalScript(args[i], EvalLocal)
	}
	ip.SetResultString("")
	return ResultOK
}

func builtinWhile(ip *Interp, cmd Handle, args []Handle) Result {
	if len(args) != 2 {
		return ip.SetError(errWrongArgs("while test command"))
	}
	cond, body := args[0], args[1]
	for {
		b, res := ip.evalBoolWord(cond)
		if res != ResultOK {
			return res
		}
		if !b {
			ip.SetResultString("")
			return ResultOK
		}
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
}

func builtinFor(ip *Interp, cmd Handle, args []Handle) Result {
	if len(args) != 4 {
		return ip.SetError(errWrongArgs("for start test next command"))
	}
	start, test, next, body := args[0], args[1], args[2], args[3]
	if code := ip.EvalScript(start, EvalLocal); code == ResultError {
		return code
	}
	for {
		b, res := ip.evalBoolWord(test)
		if res != ResultOK {
			return res
		}
		if !b {
			ip.SetResultString("")
			return ResultOK
		}
		code := ip.EvalScript(body, EvalLocal)
		switch code {
		case ResultBreak:
			ip.SetResultString("")
			return ResultOK
		case ResultError, ResultReturn:
			return code
		}
		if code := ip.EvalScript(next, EvalLocal); code == ResultError {
			return code
		}
	}
}

func builtinForeach(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 3 || len(args)%2 != 1 {
		return ip.SetError(errWrongArgs("foreach varlist list ?varlist list ...? command"))
	}
	body := args[len(args)-1]
	pairs := args[:len(args)-1]

	type pair struct {
		vars []string
		vals []Handle
		pos  int
	}
	var ps []pair
	iterations := 0
	for i := 0; i < len(pairs); i += 2 {
		varlist := pairs[i]
		list := pairs[i+1]
		nv := h.ListLength(varlist)
		vars := make([]string, nv)
		for j := 0; j < nv; j++ {
			vars[j] = h.StrGo(h.ListAt(varlist, j))
		}
		nl := h.ListLength(list)
		vals := make([]Handle, nl)
		for j := 0; j < nl; j++ {
			vals[j] = h.ListAt(list, j)
		}
		need := 0
		if nv > 0 {
			need = (nl + nv - 1) / nv
		}
		if need > iterations {
			iterations = need
		}
		ps = append(ps, pair{vars: vars, vals: vals})
	}

	level := h.FrameLevel()
	for iter := 0; iter < iterations; iter++ {
		for k := range ps {
			p := &ps[k]
			for _, v := range p.vars {
				var val Handle
				if p.pos < len(p.vals) {
					val = p.vals[p.pos]
				} else {
					val = h.StrNew("")
				}
				p.pos++
				h.VarSet(level, v, val)
			}
		}
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

func builtinLmap(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 3 || len(args)%2 != 1 {
		return ip.SetError(errWrongArgs("lmap varlist list ?varlist list ...? command"))
	}
	body := args[len(args)-1]
	varlist, list := args[0], args[1]
	nv := h.ListLength(varlist)
	vars := make([]string, nv)
	for j := 0; j < nv; j++ {
		vars[j] = h.StrGo(h.ListAt(varlist, j))
	}
	nl := h.ListLength(list)
	iterations := 0
	if nv > 0 {
		iterations = (nl + nv - 1) / nv
	}

	level := h.FrameLevel()
	var acc []Handle
	pos := 0
	for iter := 0; iter < iterations; iter++ {
		for _, v := range vars {
			var val Handle
			if pos < nl {
				val = h.ListAt(list, pos)
			} else {
				val = h.StrNew("")
			}
			pos++
			h.VarSet(level, v, val)
		}
		code := ip.EvalScript(body, EvalLocal)
		switch code {
		case ResultBreak:
			h.SetResult(h.ListFrom(acc))
			return ResultOK
		case ResultContinue:
			continue
		case ResultOK:
			acc = append(acc, h.GetResult())
		default:
			return code
		}
	}
	h.SetResult(h.ListFrom(acc))
	return ResultOK
}

func builtinCatch(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 3 {
		return ip.SetError(errWrongArgs("catch script ?resultVarName? ?optionsVarName?"))
	}
	body := args[0]
	code := ip.EvalScript(body, EvalLocal)
	result := h.GetResult()
	opts := h.GetReturnOptions()
	if opts == NilHandle {
		opts = h.DictCreate()
	}

	level := h.FrameLevel()
	if len(args) >= 2 {
		ip.resolveVariableSet(level, h.StrGo(args[1]), result)
	}
	if len(args) >= 3 {
		ip.resolveVariableSet(level, h.StrGo(args[2]), opts)
	}
	h.SetResult(h.IntCreate(int64(code)))
	return ResultOK
}

// handlerSpec is one parsed `on`/`trap` clause of a try command.
type handlerSpec struct {
	isTrap  bool
	code    Result
	pattern []string
	varspec Handle
	script  Handle
}

func builtinTry(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("try body ?handler ...? ?finally script?"))
	}
	body := args[0]
	rest := args[1:]

	var handlers []handlerSpec
	var finallyScript Handle
	hasFinally := false

	i := 0
	for i < len(rest) {
		kw := h.StrGo(rest[i])
		switch kw {
		case "on":
			if i+3 >= len(rest) {
				return ip.SetError(errWrongArgs("try ... on code varList script"))
			}
			codeWord := h.StrGo(rest[i+1])
			handlers = append(handlers, handlerSpec{
				code:    parseTryCode(codeWord),
				varspec: rest[i+2],
				script:  rest[i+3],
			})
			i += 4
		case "trap":
			if i+3 >= len(rest) {
				return ip.SetError(errWrongArgs("try ... trap pattern varList script"))
			}
			pattern := ip.splitListStrings(rest[i+1])
			handlers = append(handlers, handlerSpec{
				isTrap:  true,
				code:    ResultError,
				pattern: pattern,
				varspec: rest[i+2],
				script:  rest[i+3],
			})
			i += 4
		case "finally":
			if i+1 >= len(rest) {
				return ip.SetError(errWrongArgs("try ... finally script"))
			}
			finallyScript = rest[i+1]
			hasFinally = true
			i += 2
		default:
			return ip.SetError("invalid try handler \"" + kw + "\"")
		}
	}

	code := ip.EvalScript(body, EvalLocal)
	result := h.GetResult()
	opts := h.GetReturnOptions()
	if opts == NilHandle {
		opts = h.DictCreate()
	}

	effective := code
	if code == ResultReturn {
		effective = code
		if v, ok := h.DictGet(opts, "-level"); ok {
			if lvl, err := h.IntGet(v); err == nil && lvl > 1 {
				opts = h.DictSet(opts, "-level", h.IntCreate(lvl-1))
			} else {
				if cv, ok := h.DictGet(opts, "-code"); ok {
					if cn, err := h.IntGet(cv); err == nil {
						effective = Result(cn)
					}
				} else {
					effective = ResultOK
				}
			}
		}
	}

	matched := -1
	var errorCode []string
	if v, ok := h.DictGet(opts, "-errorcode"); ok {
		errorCode = ip.splitListStrings(v)
	}
	for idx, hs := range handlers {
		if hs.isTrap {
			if effective != ResultError {
				continue
			}
			if !hasPrefix(errorCode, hs.pattern) {
				continue
			}
		} else if hs.code != effective {
			continue
		}
		matched = idx
		break
	}

	runCode := code
	if matched >= 0 {
		hs := handlers[matched]
		script := hs.script
		varspec := hs.varspec
		// Walk "fall through" (`-`) scripts forward, keeping the first
		// matching handler's varspec.
		for h.StrGo(script) == "-" {
			next := matched + 1
			if next >= len(handlers) {
				break
			}
			matched = next
			script = handlers[matched].script
		}

		level := h.FrameLevel()
		vars := ip.splitListStrings(varspec)
		if len(vars) >= 1 {
			ip.resolveVariableSet(level, vars[0], result)
		}
		if len(vars) >= 2 {
			ip.resolveVariableSet(level, vars[1], opts)
		}
		runCode = ip.EvalScript(script, EvalLocal)
		if runCode == ResultOK {
			result = h.GetResult()
			opts = h.GetReturnOptions()
		} else {
			result = h.GetResult()
			opts = h.GetReturnOptions()
		}
	}

	if hasFinally {
		finallyCode := ip.EvalScript(finallyScript, EvalLocal)
		if finallyCode != ResultOK {
			return finallyCode
		}
	}

	h.SetResult(result)
	h.SetReturnOptions(opts)
	return runCode
}

func parseTryCode(s string) Result {
	switch s {
	case "ok":
		return ResultOK
	case "error":
		return ResultError
	case "return":
		return ResultReturn
	case "break":
		return ResultBreak
	case "continue":
		return ResultContinue
	}
	switch s {
	case "0":
		return ResultOK
	case "1":
		return ResultError
	case "2":
		return ResultReturn
	case "3":
		return ResultBreak
	case "4":
		return ResultContinue
	}
	return ResultError
}

func hasPrefix(code, pattern []string) bool {
	if len(pattern) > len(code) {
		return false
	}
	for i, p := range pattern {
		if code[i] != p {
			return false
		}
	}
	return true
}

func (ip *Interp) splitListStrings(v Handle) []string {
	h := ip.Host
	n := h.ListLength(v)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = h.StrGo(h.ListAt(v, i))
	}
	return out
}

func builtinReturn(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	opts := h.DictCreate()
	level := int64(1)
	code := int64(ResultOK)
	var value Handle = h.StrNew("")

	i := 0
	for i < len(args) {
		a := h.StrGo(args[i])
		switch a {
		case "-code":
			if i+1 >= len(args) {
				return ip.SetError(errWrongArgs("return ?-code code? ?value?"))
			}
			code = parseReturnCode(h, args[i+1])
			opts = h.DictSet(opts, "-code", h.IntCreate(code))
			i += 2
		case "-level":
			if i+1 >= len(args) {
				return ip.SetError(errWrongArgs("return ?-level level? ?value?"))
			}
			n, err := h.IntGet(args[i+1])
			if err != nil {
				n = 1
			}
			level = n
			i += 2
		case "-errorcode":
			if i+1 >= len(args) {
				return ip.SetError(errWrongArgs("return ?-errorcode code? ?value?"))
			}
			opts = h.DictSet(opts, "-errorcode", args[i+1])
			i += 2
		case "-errorinfo":
			if i+1 >= len(args) {
				return ip.SetError(errWrongArgs("return ?-errorinfo info? ?value?"))
			}
			opts = h.DictSet(opts, "-errorinfo", args[i+1])
			i += 2
		default:
			value = args[i]
			i++
		}
	}
	if level < 1 {
		level = 1
	}
	opts = h.DictSet(opts, "-level", h.IntCreate(level))
	if _, ok := h.DictGet(opts, "-code"); !ok {
		opts = h.DictSet(opts, "-code", h.IntCreate(code))
	}
	h.SetResult(value)
	h.SetReturnOptions(opts)
	return ResultReturn
}

func parseReturnCode(h Host, v Handle) int64 {
	s := h.StrGo(v)
	switch s {
	case "ok":
		return int64(ResultOK)
	case "error":
		return int64(ResultError)
	case "return":
		return int64(ResultReturn)
	case "break":
		return int64(ResultBreak)
	case "continue":
		return int64(ResultContinue)
	}
	if n, err := h.IntGet(v); err == nil {
		return n
	}
	return int64(ResultOK)
}

func builtinBreak(ip *Interp, cmd Handle, args []Handle) Result {
	ip.SetResultString("")
	return ResultBreak
}

func builtinContinue(ip *Interp, cmd Handle, args []Handle) Result {
	ip.SetResultString("")
	return ResultContinue
}

func builtinError(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 3 {
		return ip.SetError(errWrongArgs("error message ?info? ?code?"))
	}
	msg := h.StrGo(args[0])
	opts := h.DictCreate()
	errorInfo := msg
	if len(args) >= 2 {
		errorInfo = h.StrGo(args[1])
	}
	errorCode := "NONE"
	if len(args) >= 3 {
		errorCode = h.StrGo(args[2])
	}
	opts = h.DictSet(opts, "-code", h.IntCreate(1))
	opts = h.DictSet(opts, "-errorinfo", h.StrNew(errorInfo))
	opts = h.DictSet(opts, "-errorcode", h.StrNew(errorCode))
	h.SetResult(h.StrNew(msg))
	h.SetReturnOptions(opts)
	return ResultError
}

func builtinSwitch(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	mode := "exact"
	nocase := false
	matchVar, indexVar := "", ""
	i := 0
	for i < len(args) {
		a := h.StrGo(args[i])
		switch a {
		case "-exact":
			mode = "exact"
			i++
		case "-glob":
			mode = "glob"
			i++
		case "-regexp":
			mode = "regexp"
			i++
		case "-nocase":
			nocase = true
			i++
		case "-matchvar":
			matchVar = h.StrGo(args[i+1])
			i += 2
		case "-indexvar":
			indexVar = h.StrGo(args[i+1])
			i += 2
		case "--":
			i++
		default:
			goto argsDone
		}
	}
argsDone:
	if i >= len(args) {
		return ip.SetError(errWrongArgs("switch ?options? string pattern body ..."))
	}
	str := args[i]
	i++
	var clauses []Handle
	if len(args)-i == 1 {
		clauses = ip.splitListHandles(args[i])
	} else {
		clauses = args[i:]
	}
	if len(clauses)%2 != 0 {
		return ip.SetError("extra switch pattern with no body")
	}

	level := h.FrameLevel()
	for ci := 0; ci < len(clauses); ci += 2 {
		pattern := clauses[ci]
		body := clauses[ci+1]
		patText := h.StrGo(pattern)
		matched := false
		var matches []Handle
		var ranges [][2]int
		if patText == "default" && ci == len(clauses)-2 {
			matched = true
		} else {
			switch mode {
			case "exact":
				if nocase {
					matched = strings.EqualFold(h.StrGo(str), patText)
				} else {
					matched = h.StrEqual(str, pattern)
				}
			case "glob":
				matched = h.StrGlobMatch(pattern, str, nocase)
			case "regexp":
				var err error
				matched, matches, ranges, err = h.StrRegexMatch(pattern, str, nocase)
				if err != nil {
					return ip.SetError(err.Error())
				}
			}
		}
		if !matched {
			continue
		}
		if mode == "regexp" {
			if matchVar != "" {
				ip.resolveVariableSet(level, matchVar, h.ListFrom(matches))
			}
			if indexVar != "" {
				idxList := make([]Handle, len(ranges))
				for ri, r := range ranges {
					idxList[ri] = h.ListFrom([]Handle{h.IntCreate(int64(r[0])), h.IntCreate(int64(r[1]))})
				}
				ip.resolveVariableSet(level, indexVar, h.ListFrom(idxList))
			}
		}
		for h.StrGo(body) == "-" {
			ci += 2
			if ci+1 >= len(clauses) {
				return ip.SetError("fall-through switch body with nothing to fall into")
			}
			body = clauses[ci+1]
		}
		return ip.EvalScript(body, EvalLocal)
	}
	ip.SetResultString("")
	return ResultOK
}

func (ip *Interp) splitListHandles(v Handle) []Handle {
	h := ip.Host
	n := h.ListLength(v)
	out := make([]Handle, n)
	for i := 0; i < n; i++ {
		out[i] = h.ListAt(v, i)
	}
	return out
}

func builtinEval(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) == 0 {
		ip.SetResultString("")
		return ResultOK
	}
	script := args[0]
	if len(args) > 1 {
		b := h.StrBuilderNew()
		for i, a := range args {
			if i > 0 {
				b = h.StrBuilderAppendByte(b, ' ')
			}
			b = h.StrBuilderAppendObj(b, a)
		}
		script = h.StrBuilderFinish(b)
	}
	return ip.EvalScript(script, EvalLocal)
}

func builtinUplevel(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) == 0 {
		return ip.SetError(errWrongArgs("uplevel ?level? command ?arg ...?"))
	}
	level := 1
	absolute := false
	rest := args
	if n, abs, ok := parseLevelSpec(h, args[0]); ok {
		level = n
		absolute = abs
		rest = args[1:]
	}
	if len(rest) == 0 {
		return ip.SetError(errWrongArgs("uplevel ?level? command ?arg ...?"))
	}
	var script Handle
	if len(rest) == 1 {
		script = rest[0]
	} else {
		b := h.StrBuilderNew()
		for i, a := range rest {
			if i > 0 {
				b = h.StrBuilderAppendByte(b, ' ')
			}
			b = h.StrBuilderAppendObj(b, a)
		}
		script = h.StrBuilderFinish(b)
	}

	target := ip.resolveLevel(level, absolute)
	prev := h.FrameSetActive(target)
	code := ip.EvalScript(script, EvalLocal)
	h.FrameSetActive(prev)
	return code
}

// parseLevelSpec recognizes a leading level argument: "#N" (absolute)
// or "N" (relative). Returns ok=false if v doesn't look like a level.
func parseLevelSpec(h Host, v Handle) (level int, absolute bool, ok bool) {
	s := h.StrGo(v)
	if s == "" {
		return 0, false, false
	}
	if s[0] == '#' {
		if n, err := h.IntGet(h.StrNew(s[1:])); err == nil {
			return int(n), true, true
		}
		return 0, false, false
	}
	if n, err := h.IntGet(v); err == nil {
		return int(n), false, true
	}
	return 0, false, false
}

// resolveLevel converts a relative/absolute level spec to an absolute
// frame index, relative to the currently active frame.
func (ip *Interp) resolveLevel(level int, absolute bool) int {
	h := ip.Host
	if absolute {
		if level > h.FrameSize()-1 {
			level = h.FrameSize() - 1
		}
		if level < 0 {
			level = 0
		}
		return level
	}
	active := h.FrameLevel()
	target := active - level
	if target < 0 {
		target = 0
	}
	return target
}
