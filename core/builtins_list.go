package core

import "sort"

func builtinList(ip *Interp, cmd Handle, args []Handle) Result {
	ip.Host.SetResult(ip.Host.ListFrom(args))
	return ResultOK
}

func builtinLlength(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) != 1 {
		return ip.SetError(errWrongArgs("llength list"))
	}
	h.SetResult(h.IntCreate(int64(h.ListLength(args[0]))))
	return ResultOK
}

// resolveIndex implements Tcl's "end", "end-N", "N" index grammar.
func resolveIndex(h Host, spec string, length int) (int, bool) {
	if spec == "end" {
		return length - 1, true
	}
	if len(spec) > 4 && spec[:4] == "end-" {
		n, err := h.IntGet(h.StrNew(spec[4:]))
		if err != nil {
			return 0, false
		}
		return length - 1 - int(n), true
	}
	if len(spec) > 4 && spec[:4] == "end+" {
		n, err := h.IntGet(h.StrNew(spec[4:]))
		if err != nil {
			return 0, false
		}
		return length - 1 + int(n), true
	}
	n, err := h.IntGet(h.StrNew(spec))
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func builtinLindex(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("lindex list ?index ...?"))
	}
	cur := args[0]
	for _, idxArg := range args[1:] {
		idx, ok := resolveIndex(h, h.StrGo(idxArg), h.ListLength(cur))
		if !ok {
			return ip.SetError(errBadIndex(h.StrGo(idxArg)))
		}
		if idx < 0 || idx >= h.ListLength(cur) {
			h.SetResult(h.StrNew(""))
			return ResultOK
		}
		cur = h.ListAt(cur, idx)
	}
	h.SetResult(cur)
	return ResultOK
}

func builtinLappend(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("lappend varName ?value ...?"))
	}
	level := h.FrameLevel()
	name := h.StrGo(args[0])
	cur, ok := ip.resolveVariableGet(level, name)
	if !ok {
		cur = h.ListCreate()
	}
	for _, v := range args[1:] {
		cur = h.ListPush(cur, v)
	}
	ip.resolveVariableSet(level, name, cur)
	h.SetResult(cur)
	return ResultOK
}

func builtinLrange(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) != 3 {
		return ip.SetError(errWrongArgs("lrange list first last"))
	}
	n := h.ListLength(args[0])
	first, ok := resolveIndex(h, h.StrGo(args[1]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(args[1])))
	}
	last, ok := resolveIndex(h, h.StrGo(args[2]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(args[2])))
	}
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	if first > last || first >= n {
		h.SetResult(h.ListCreate())
		return ResultOK
	}
	h.SetResult(h.ListSlice(args[0], first, last+1))
	return ResultOK
}

func builtinLinsert(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 2 {
		return ip.SetError(errWrongArgs("linsert list index ?element ...?"))
	}
	n := h.ListLength(args[0])
	idx, ok := resolveIndex(h, h.StrGo(args[1]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(args[1])))
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	h.SetResult(h.ListSplice(args[0], idx, 0, args[2:]))
	return ResultOK
}

func builtinLreplace(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 3 {
		return ip.SetError(errWrongArgs("lreplace list first last ?element ...?"))
	}
	n := h.ListLength(args[0])
	first, ok := resolveIndex(h, h.StrGo(args[1]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(args[1])))
	}
	last, ok := resolveIndex(h, h.StrGo(args[2]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(args[2])))
	}
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	count := 0
	if last >= first {
		count = last - first + 1
	} else {
		first = min(first, n)
	}
	h.SetResult(h.ListSplice(args[0], first, count, args[3:]))
	return ResultOK
}

func builtinLreverse(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) != 1 {
		return ip.SetError(errWrongArgs("lreverse list"))
	}
	n := h.ListLength(args[0])
	out := make([]Handle, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = h.ListAt(args[0], i)
	}
	h.SetResult(h.ListFrom(out))
	return ResultOK
}

func builtinLrepeat(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("lrepeat count ?element ...?"))
	}
	count, err := h.IntGet(args[0])
	if err != nil || count < 0 {
		return ip.SetError("bad count \"" + h.StrGo(args[0]) + "\": must be a non-negative integer")
	}
	elems := args[1:]
	out := make([]Handle, 0, int(count)*len(elems))
	for i := int64(0); i < count; i++ {
		out = append(out, elems...)
	}
	h.SetResult(h.ListFrom(out))
	return ResultOK
}

func builtinLset(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 2 {
		return ip.SetError(errWrongArgs("lset varName ?index ...? value"))
	}
	level := h.FrameLevel()
	name := h.StrGo(args[0])
	cur, ok := ip.resolveVariableGet(level, name)
	if !ok {
		return ip.SetError(errCantRead(name))
	}
	indices := args[1 : len(args)-1]
	value := args[len(args)-1]

	if len(indices) == 0 {
		ip.resolveVariableSet(level, name, value)
		h.SetResult(value)
		return ResultOK
	}

	var set func(list Handle, path []Handle) (Handle, Result)
	set = func(list Handle, path []Handle) (Handle, Result) {
		idx, ok := resolveIndex(h, h.StrGo(path[0]), h.ListLength(list))
		if !ok || idx < 0 || idx >= h.ListLength(list) {
			return 0, ip.SetError(errBadIndex(h.StrGo(path[0])))
		}
		if len(path) == 1 {
			return h.ListSetAt(list, idx, value), ResultOK
		}
		child := h.ListAt(list, idx)
		newChild, res := set(child, path[1:])
		if res != ResultOK {
			return 0, res
		}
		return h.ListSetAt(list, idx, newChild), ResultOK
	}
	newList, res := set(cur, indices)
	if res != ResultOK {
		return res
	}
	ip.resolveVariableSet(level, name, newList)
	h.SetResult(newList)
	return ResultOK
}

func builtinLsearch(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	exact, glob, regexp, nocase, all, inline := true, false, false, false, false, false
	i := 0
	for i < len(args) {
		switch h.StrGo(args[i]) {
		case "-exact":
			exact, glob, regexp = true, false, false
		case "-glob":
			exact, glob, regexp = false, true, false
		case "-regexp":
			exact, glob, regexp = false, false, true
		case "-nocase":
			nocase = true
		case "-all":
			all = true
		case "-inline":
			inline = true
		case "--":
			i++
			goto done
		default:
			goto done
		}
		i++
	}
done:
	if len(args)-i != 2 {
		return ip.SetError(errWrongArgs("lsearch ?options? list pattern"))
	}
	list, pattern := args[i], args[i+1]
	n := h.ListLength(list)
	var matchIdx []int
	for j := 0; j < n; j++ {
		elem := h.ListAt(list, j)
		var m bool
		switch {
		case glob:
			m = h.StrGlobMatch(pattern, elem, nocase)
		case regexp:
			mm, _, _, err := h.StrRegexMatch(pattern, elem, nocase)
			if err != nil {
				return ip.SetError(err.Error())
			}
			m = mm
		case exact:
			if nocase {
				m = lowerEq(h, elem, pattern)
			} else {
				m = h.StrEqual(elem, pattern)
			}
		}
		if m {
			matchIdx = append(matchIdx, j)
			if !all {
				break
			}
		}
	}
	if inline {
		out := make([]Handle, len(matchIdx))
		for k, j := range matchIdx {
			out[k] = h.ListAt(list, j)
		}
		if all {
			h.SetResult(h.ListFrom(out))
		} else if len(out) > 0 {
			h.SetResult(out[0])
		} else {
			h.SetResult(h.StrNew(""))
		}
		return ResultOK
	}
	if all {
		out := make([]Handle, len(matchIdx))
		for k, j := range matchIdx {
			out[k] = h.IntCreate(int64(j))
		}
		h.SetResult(h.ListFrom(out))
		return ResultOK
	}
	if len(matchIdx) > 0 {
		h.SetResult(h.IntCreate(int64(matchIdx[0])))
	} else {
		h.SetResult(h.IntCreate(-1))
	}
	return ResultOK
}

func lowerEq(h Host, a, b Handle) bool {
	return h.StrGo(a) == h.StrGo(b) || len(h.StrGo(a)) == len(h.StrGo(b)) && sameFold(h.StrGo(a), h.StrGo(b))
}

func sameFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

func builtinLsort(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	increasing, decreasing := true, false
	dictionary, integer, real, ascii := false, false, false, true
	unique := false
	i := 0
	for i < len(args) {
		switch h.StrGo(args[i]) {
		case "-increasing":
			increasing, decreasing = true, false
		case "-decreasing":
			increasing, decreasing = false, true
		case "-dictionary":
			dictionary, integer, real, ascii = true, false, false, false
		case "-integer":
			dictionary, integer, real, ascii = false, true, false, false
		case "-real":
			dictionary, integer, real, ascii = false, false, true, false
		case "-ascii":
			dictionary, integer, real, ascii = false, false, false, true
		case "-unique":
			unique = true
		default:
			goto done
		}
		i++
	}
done:
	if len(args)-i != 1 {
		return ip.SetError(errWrongArgs("lsort ?options? list"))
	}
	n := h.ListLength(args[i])
	items := make([]Handle, n)
	for j := 0; j < n; j++ {
		items[j] = h.ListAt(args[i], j)
	}
	less := func(a, b Handle) bool {
		var c int
		switch {
		case integer:
			ai, _ := h.IntGet(a)
			bi, _ := h.IntGet(b)
			switch {
			case ai < bi:
				c = -1
			case ai > bi:
				c = 1
			}
		case real:
			af, _ := h.DblGet(a)
			bf, _ := h.DblGet(b)
			switch {
			case af < bf:
				c = -1
			case af > bf:
				c = 1
			}
		case dictionary:
			c = dictionaryCompare(h.StrGo(a), h.StrGo(b))
		case ascii:
			c = h.StrCompare(a, b)
		}
		if decreasing {
			return c > 0
		}
		_ = increasing
		return c < 0
	}
	sort.SliceStable(items, func(a, b int) bool { return less(items[a], items[b]) })
	if unique {
		out := items[:0]
		for idx, v := range items {
			if idx == 0 || h.StrGo(v) != h.StrGo(items[idx-1]) {
				out = append(out, v)
			}
		}
		items = out
	}
	h.SetResult(h.ListFrom(items))
	return ResultOK
}

// dictionaryCompare implements Tcl's -dictionary comparison: case- and
// leading-zero-insensitive for embedded runs of digits.
func dictionaryCompare(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigitByte(ca) && isDigitByte(cb) {
			starti, startj := i, j
			for i < len(a) && isDigitByte(a[i]) {
				i++
			}
			for j < len(b) && isDigitByte(b[j]) {
				j++
			}
			na := trimLeadingZeros(a[starti:i])
			nb := trimLeadingZeros(b[startj:j])
			if len(na) != len(nb) {
				if len(na) < len(nb) {
					return -1
				}
				return 1
			}
			if na != nb {
				if na < nb {
					return -1
				}
				return 1
			}
			continue
		}
		la, lb := foldByte(ca), foldByte(cb)
		if la != lb {
			if la < lb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	default:
		return 0
	}
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func foldByte(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + 'a' - 'A'
	}
	return c
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}

func builtinJoin(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 2 {
		return ip.SetError(errWrongArgs("join list ?joinString?"))
	}
	sep := h.StrNew(" ")
	if len(args) == 2 {
		sep = args[1]
	}
	n := h.ListLength(args[0])
	result := h.StrNew("")
	for i := 0; i < n; i++ {
		if i > 0 {
			result = h.StrConcat(result, sep)
		}
		result = h.StrConcat(result, h.ListAt(args[0], i))
	}
	h.SetResult(result)
	return ResultOK
}

func builtinSplit(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 || len(args) > 2 {
		return ip.SetError(errWrongArgs("split string ?splitChars?"))
	}
	s := h.StrGo(args[0])
	splitChars := " \t\n\r"
	if len(args) == 2 {
		splitChars = h.StrGo(args[1])
	}
	var out []Handle
	if splitChars == "" {
		for i := 0; i < len(s); i++ {
			out = append(out, h.StrNew(string(s[i])))
		}
		h.SetResult(h.ListFrom(out))
		return ResultOK
	}
	start := 0
	for i := 0; i < len(s); i++ {
		if containsByte(splitChars, s[i]) {
			out = append(out, h.StrNew(s[start:i]))
			start = i + 1
		}
	}
	out = append(out, h.StrNew(s[start:]))
	h.SetResult(h.ListFrom(out))
	return ResultOK
}

func containsByte(s string, c byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			return true
		}
	}
	return false
}

func builtinConcat(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	var out []Handle
	for _, a := range args {
		n := h.ListLength(a)
		for i := 0; i < n; i++ {
			out = append(out, h.ListAt(a, i))
		}
	}
	h.SetResult(h.ListFrom(out))
	return ResultOK
}
