package core

import "strings"

// builtinString implements the `string` ensemble's commonly used
// subcommands through HostString/HostRune. Indices and lengths count
// runes, except string first/last, which report byte offsets.
func builtinString(ip *Interp, cmd Handle, args []Handle) Result {
	h := ip.Host
	if len(args) < 1 {
		return ip.SetError(errWrongArgs("string subcommand ?arg ...?"))
	}
	sub := h.StrGo(args[0])
	rest := args[1:]
	switch sub {
	case "length":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("string length string"))
		}
		h.SetResult(h.IntCreate(int64(h.RuneLength(rest[0]))))
		return ResultOK
	case "index":
		if len(rest) != 2 {
			return ip.SetError(errWrongArgs("string index string charIndex"))
		}
		idx, ok := resolveIndex(h, h.StrGo(rest[1]), h.RuneLength(rest[0]))
		if !ok {
			return ip.SetError(errBadIndex(h.StrGo(rest[1])))
		}
		if idx < 0 || idx >= h.RuneLength(rest[0]) {
			h.SetResult(h.StrNew(""))
			return ResultOK
		}
		h.SetResult(h.StrNew(string(h.RuneAt(rest[0], idx))))
		return ResultOK
	case "range":
		if len(rest) != 3 {
			return ip.SetError(errWrongArgs("string range string first last"))
		}
		n := h.RuneLength(rest[0])
		first, ok := resolveIndex(h, h.StrGo(rest[1]), n)
		if !ok {
			return ip.SetError(errBadIndex(h.StrGo(rest[1])))
		}
		last, ok := resolveIndex(h, h.StrGo(rest[2]), n)
		if !ok {
			return ip.SetError(errBadIndex(h.StrGo(rest[2])))
		}
		if first < 0 {
			first = 0
		}
		if last >= n {
			last = n - 1
		}
		if first > last {
			h.SetResult(h.StrNew(""))
			return ResultOK
		}
		runes := []rune(h.StrGo(rest[0]))
		h.SetResult(h.StrNew(string(runes[first : last+1])))
		return ResultOK
	case "tolower":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("string tolower string"))
		}
		h.SetResult(h.RuneToLower(rest[0]))
		return ResultOK
	case "toupper":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("string toupper string"))
		}
		h.SetResult(h.RuneToUpper(rest[0]))
		return ResultOK
	case "trim":
		return stringTrim(ip, rest, true, true)
	case "trimleft":
		return stringTrim(ip, rest, true, false)
	case "trimright":
		return stringTrim(ip, rest, false, true)
	case "equal":
		return stringEqual(ip, rest)
	case "compare":
		return stringCompare(ip, rest)
	case "match":
		return stringMatch(ip, rest)
	case "first":
		return stringFirst(ip, rest)
	case "last":
		return stringLast(ip, rest)
	case "repeat":
		return stringRepeat(ip, rest)
	case "reverse":
		if len(rest) != 1 {
			return ip.SetError(errWrongArgs("string reverse string"))
		}
		runes := []rune(h.StrGo(rest[0]))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		h.SetResult(h.StrNew(string(runes)))
		return ResultOK
	case "cat":
		result := h.StrNew("")
		for _, a := range rest {
			result = h.StrConcat(result, a)
		}
		h.SetResult(result)
		return ResultOK
	case "map":
		return stringMap(ip, rest)
	case "is":
		return stringIs(ip, rest)
	case "replace":
		return stringReplace(ip, rest)
	}
	return ip.SetError("unknown or ambiguous subcommand \"" + sub + "\": must be cat, compare, equal, first, index, is, last, length, map, match, range, repeat, replace, reverse, tolower, toupper, trim, trimleft, or trimright")
}

func stringTrim(ip *Interp, rest []Handle, left, right bool) Result {
	h := ip.Host
	if len(rest) < 1 || len(rest) > 2 {
		return ip.SetError(errWrongArgs("string trim string ?chars?"))
	}
	chars := " \t\n\r"
	if len(rest) == 2 {
		chars = h.StrGo(rest[1])
	}
	s := h.StrGo(rest[0])
	if left {
		s = strings.TrimLeft(s, chars)
	}
	if right {
		s = strings.TrimRight(s, chars)
	}
	h.SetResult(h.StrNew(s))
	return ResultOK
}

func stringEqual(ip *Interp, rest []Handle) Result {
	h := ip.Host
	nocase := false
	i := 0
	length := -1
	for i < len(rest) {
		switch h.StrGo(rest[i]) {
		case "-nocase":
			nocase = true
			i++
		case "-length":
			n, err := h.IntGet(rest[i+1])
			if err != nil {
				return ip.SetError("expected integer but got \"" + h.StrGo(rest[i+1]) + "\"")
			}
			length = int(n)
			i += 2
		default:
			goto done
		}
	}
done:
	if len(rest)-i != 2 {
		return ip.SetError(errWrongArgs("string equal ?-nocase? ?-length int? string1 string2"))
	}
	a, b := h.StrGo(rest[i]), h.StrGo(rest[i+1])
	if length >= 0 {
		a = truncateRunes(a, length)
		b = truncateRunes(b, length)
	}
	if nocase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	h.SetResult(boolHandle(h, a == b))
	return ResultOK
}

func stringCompare(ip *Interp, rest []Handle) Result {
	h := ip.Host
	nocase := false
	i := 0
	length := -1
	for i < len(rest) {
		switch h.StrGo(rest[i]) {
		case "-nocase":
			nocase = true
			i++
		case "-length":
			n, err := h.IntGet(rest[i+1])
			if err != nil {
				return ip.SetError("expected integer but got \"" + h.StrGo(rest[i+1]) + "\"")
			}
			length = int(n)
			i += 2
		default:
			goto done
		}
	}
done:
	if len(rest)-i != 2 {
		return ip.SetError(errWrongArgs("string compare ?-nocase? ?-length int? string1 string2"))
	}
	a, b := h.StrGo(rest[i]), h.StrGo(rest[i+1])
	if length >= 0 {
		a = truncateRunes(a, length)
		b = truncateRunes(b, length)
	}
	if nocase {
		a, b = strings.ToLower(a), strings.ToLower(b)
	}
	switch {
	case a < b:
		h.SetResult(h.IntCreate(-1))
	case a > b:
		h.SetResult(h.IntCreate(1))
	default:
		h.SetResult(h.IntCreate(0))
	}
	return ResultOK
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n < len(r) {
		return string(r[:n])
	}
	return s
}

func stringMatch(ip *Interp, rest []Handle) Result {
	h := ip.Host
	nocase := false
	i := 0
	if len(rest) > 0 && h.StrGo(rest[0]) == "-nocase" {
		nocase = true
		i++
	}
	if len(rest)-i != 2 {
		return ip.SetError(errWrongArgs("string match ?-nocase? pattern string"))
	}
	h.SetResult(boolHandle(h, h.StrGlobMatch(rest[i], rest[i+1], nocase)))
	return ResultOK
}

func stringFirst(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) < 2 || len(rest) > 3 {
		return ip.SetError(errWrongArgs("string first needleString haystackString ?startIndex?"))
	}
	needle := h.StrGo(rest[0])
	hay := h.StrGo(rest[1])
	start := 0
	if len(rest) == 3 {
		n, ok := resolveIndex(h, h.StrGo(rest[2]), len(hay))
		if ok && n > 0 {
			start = n
		}
	}
	if start > len(hay) {
		h.SetResult(h.IntCreate(-1))
		return ResultOK
	}
	idx := strings.Index(hay[start:], needle)
	if idx < 0 {
		h.SetResult(h.IntCreate(-1))
	} else {
		h.SetResult(h.IntCreate(int64(idx + start)))
	}
	return ResultOK
}

func stringLast(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) < 2 || len(rest) > 3 {
		return ip.SetError(errWrongArgs("string last needleString haystackString ?lastIndex?"))
	}
	needle := h.StrGo(rest[0])
	hay := h.StrGo(rest[1])
	end := len(hay)
	if len(rest) == 3 {
		n, ok := resolveIndex(h, h.StrGo(rest[2]), len(hay))
		if ok && n+1 < end {
			end = n + 1
		}
	}
	if end < 0 || end > len(hay) {
		end = len(hay)
	}
	idx := strings.LastIndex(hay[:end], needle)
	h.SetResult(h.IntCreate(int64(idx)))
	return ResultOK
}

func stringRepeat(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) != 2 {
		return ip.SetError(errWrongArgs("string repeat string count"))
	}
	count, err := h.IntGet(rest[1])
	if err != nil || count < 0 {
		return ip.SetError("bad count \"" + h.StrGo(rest[1]) + "\": must be a non-negative integer")
	}
	h.SetResult(h.StrNew(strings.Repeat(h.StrGo(rest[0]), int(count))))
	return ResultOK
}

func stringMap(ip *Interp, rest []Handle) Result {
	h := ip.Host
	nocase := false
	i := 0
	if len(rest) > 0 && h.StrGo(rest[0]) == "-nocase" {
		nocase = true
		i++
	}
	if len(rest)-i != 2 {
		return ip.SetError(errWrongArgs("string map ?-nocase? mapping string"))
	}
	mapping := rest[i]
	s := h.StrGo(rest[i+1])
	n := h.ListLength(mapping)
	type pair struct{ from, to string }
	pairs := make([]pair, 0, n/2)
	for j := 0; j+1 < n; j += 2 {
		pairs = append(pairs, pair{h.StrGo(h.ListAt(mapping, j)), h.StrGo(h.ListAt(mapping, j+1))})
	}
	var b strings.Builder
	for pos := 0; pos < len(s); {
		matched := false
		for _, p := range pairs {
			if p.from == "" {
				continue
			}
			hay, needle := s[pos:], p.from
			if nocase {
				hay, needle = strings.ToLower(hay), strings.ToLower(needle)
			}
			if strings.HasPrefix(hay, needle) {
				b.WriteString(p.to)
				pos += len(p.from)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(s[pos])
			pos++
		}
	}
	h.SetResult(h.StrNew(b.String()))
	return ResultOK
}

func stringIs(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) < 2 {
		return ip.SetError(errWrongArgs("string is class ?-strict? string"))
	}
	class := h.StrGo(rest[0])
	s := h.StrGo(rest[len(rest)-1])
	var ok bool
	switch class {
	case "alpha":
		ok = s != "" && isAllFunc(s, func(r rune) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') })
	case "digit":
		ok = s != "" && isAllFunc(s, func(r rune) bool { return '0' <= r && r <= '9' })
	case "alnum":
		ok = s != "" && isAllFunc(s, func(r rune) bool {
			return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
		})
	case "space":
		ok = s != "" && isAllFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' })
	case "upper":
		ok = s != "" && isAllFunc(s, func(r rune) bool { return 'A' <= r && r <= 'Z' })
	case "lower":
		ok = s != "" && isAllFunc(s, func(r rune) bool { return 'a' <= r && r <= 'z' })
	case "integer":
		_, err := h.IntGet(rest[len(rest)-1])
		ok = err == nil
	case "double":
		_, err := h.DblGet(rest[len(rest)-1])
		ok = err == nil
	case "boolean":
		_, err := ip.truthy(rest[len(rest)-1])
		ok = err == nil
	case "list":
		ok = true
	default:
		return ip.SetError("bad class \"" + class + "\"")
	}
	h.SetResult(boolHandle(h, ok))
	return ResultOK
}

func isAllFunc(s string, f func(rune) bool) bool {
	for _, r := range s {
		if !f(r) {
			return false
		}
	}
	return true
}

func stringReplace(ip *Interp, rest []Handle) Result {
	h := ip.Host
	if len(rest) < 3 || len(rest) > 4 {
		return ip.SetError(errWrongArgs("string replace string first last ?newstring?"))
	}
	runes := []rune(h.StrGo(rest[0]))
	n := len(runes)
	first, ok := resolveIndex(h, h.StrGo(rest[1]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(rest[1])))
	}
	last, ok := resolveIndex(h, h.StrGo(rest[2]), n)
	if !ok {
		return ip.SetError(errBadIndex(h.StrGo(rest[2])))
	}
	if first < 0 {
		first = 0
	}
	if last >= n {
		last = n - 1
	}
	if first > last || first >= n {
		h.SetResult(h.StrNew(string(runes)))
		return ResultOK
	}
	var repl string
	if len(rest) == 4 {
		repl = h.StrGo(rest[3])
	}
	out := string(runes[:first]) + repl + string(runes[last+1:])
	h.SetResult(h.StrNew(out))
	return ResultOK
}
