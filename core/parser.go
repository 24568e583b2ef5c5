package core

import "strconv"

// ParseContext is the parser's iterator state: a byte offset and line
// number into a script value. Callers advance it one command at a time
// via Interp.ParseCommand.
type ParseContext struct {
	Script Handle
	Pos    int
	Line   int
}

// NewParseContext begins parsing script from the start.
func NewParseContext(script Handle) *ParseContext {
	return &ParseContext{Script: script, Line: 1}
}

type parseErr struct {
	start, end int
	msg        string
}

// ParseCommand reads the next command from ctx, advancing it past the
// command's terminator. It returns the parsed words (already
// substituted and {*}-expanded), the status, and — for
// ParseIncomplete/ParseError — the byte range and message of §4.1's
// result descriptors.
func (ip *Interp) ParseCommand(ctx *ParseContext) ([]Handle, ParseStatus, int, int, string) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)

	if !ip.skipToCommandStart(ctx) {
		return nil, ParseDone, 0, 0, ""
	}
	if ctx.Pos >= length {
		return nil, ParseDone, 0, 0, ""
	}

	var words []Handle
	for {
		ip.skipInterWordSpace(ctx)
		if ctx.Pos >= length {
			break
		}
		b := ip.byteAt(ctx)
		if b == '\n' {
			ctx.Pos++
			ctx.Line++
			break
		}
		if b == ';' {
			ctx.Pos++
			break
		}
		if b == '#' && len(words) == 0 {
			// A '#' that appears where a command name is expected is a
			// comment, but only at true command start; mid-command it's
			// an ordinary bare-word character. skipToCommandStart above
			// already consumes comments preceding the first word, so a
			// '#' reaching here mid-word-list is ordinary text.
		}

		start := ctx.Pos
		expand := false
		if b == '{' && ip.peekAt(ctx, 1) == '*' && ip.peekAt(ctx, 2) == '}' && !ip.isBareTerminatorByte(ip.peekAt(ctx, 3)) && ip.peekAt(ctx, 3) != 0 {
			expand = true
			ctx.Pos += 3
		}

		val, status, eStart, eEnd, msg, extra := ip.parseWord(ctx)
		if status != ParseOK {
			return nil, status, eStart, eEnd, msg
		}
		if extra {
			// extra characters after close-brace/quote
			return nil, ParseError, start, ctx.Pos, msg
		}

		if expand {
			items, err := ip.splitAsList(val)
			if err != nil {
				return nil, ParseError, start, ctx.Pos, err.Error()
			}
			words = append(words, items...)
		} else {
			words = append(words, val)
		}
	}
	return words, ParseOK, 0, 0, ""
}

// skipToCommandStart skips inter-command whitespace, newlines,
// semicolons, line-continuations, and comments until either a word
// start or end-of-script. Returns false at end-of-script.
func (ip *Interp) skipToCommandStart(ctx *ParseContext) bool {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	for {
		for ctx.Pos < length {
			b := ip.byteAt(ctx)
			if b == ' ' || b == '\t' {
				ctx.Pos++
				continue
			}
			if b == '\n' {
				ctx.Pos++
				ctx.Line++
				continue
			}
			if b == ';' {
				ctx.Pos++
				continue
			}
			if b == '\\' && ip.peekAt(ctx, 1) == '\n' {
				ctx.Pos += 2
				ctx.Line++
				for ctx.Pos < length && (ip.byteAt(ctx) == ' ' || ip.byteAt(ctx) == '\t') {
					ctx.Pos++
				}
				continue
			}
			break
		}
		if ctx.Pos < length && ip.byteAt(ctx) == '#' {
			for ctx.Pos < length && ip.byteAt(ctx) != '\n' {
				ctx.Pos++
			}
			continue
		}
		break
	}
	return ctx.Pos < length
}

// skipInterWordSpace skips the run of spaces/tabs and backslash-newline
// continuations between words within a command.
func (ip *Interp) skipInterWordSpace(ctx *ParseContext) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		if b == ' ' || b == '\t' {
			ctx.Pos++
			continue
		}
		if b == '\\' && ip.peekAt(ctx, 1) == '\n' {
			ctx.Pos += 2
			ctx.Line++
			for ctx.Pos < length && (ip.byteAt(ctx) == ' ' || ip.byteAt(ctx) == '\t') {
				ctx.Pos++
			}
			continue
		}
		break
	}
}

func (ip *Interp) byteAt(ctx *ParseContext) byte {
	v := ip.Host.StrByteAt(ctx.Script, ctx.Pos)
	if v < 0 {
		return 0
	}
	return byte(v)
}

func (ip *Interp) peekAt(ctx *ParseContext, off int) byte {
	v := ip.Host.StrByteAt(ctx.Script, ctx.Pos+off)
	if v < 0 {
		return 0
	}
	return byte(v)
}

func (ip *Interp) isBareTerminatorByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == ';' || b == 0
}

// parseWord parses a single word starting at ctx.Pos, returning its
// substituted value. extra indicates "extra characters after
// close-brace/quote", a parse error whose range the caller reports.
func (ip *Interp) parseWord(ctx *ParseContext) (val Handle, status ParseStatus, start, end int, msg string, extra bool) {
	start = ctx.Pos
	b := ip.byteAt(ctx)

	switch b {
	case '{':
		return ip.parseBracedWord(ctx)
	case '"':
		return ip.parseQuotedWord(ctx)
	default:
		return ip.parseBareWord(ctx)
	}
}

// parseBracedWord consumes a brace-delimited word verbatim, respecting
// nested braces and backslash-suppressed nesting (§4.1).
func (ip *Interp) parseBracedWord(ctx *ParseContext) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	openStart := ctx.Pos
	ctx.Pos++ // consume '{'
	contentStart := ctx.Pos
	depth := 1
	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		if b == '\\' {
			ctx.Pos += 2
			continue
		}
		if b == '{' {
			depth++
			ctx.Pos++
			continue
		}
		if b == '}' {
			depth--
			ctx.Pos++
			if depth == 0 {
				contentEnd := ctx.Pos - 1
				val := h.StrSlice(ctx.Script, contentStart, contentEnd)
				nb := ip.peekAt(ctx, 0)
				if !ip.isBareTerminatorByte(nb) {
					return 0, ParseError, openStart, ctx.Pos, "extra characters after close-brace", true
				}
				return val, ParseOK, 0, 0, "", false
			}
			continue
		}
		if b == '\n' {
			ctx.Line++
		}
		ctx.Pos++
	}
	return 0, ParseIncomplete, openStart, ctx.Pos, "", false
}

// parseQuotedWord consumes a double-quoted word, performing backslash,
// variable, and command substitution, up to the matching unescaped
// quote.
func (ip *Interp) parseQuotedWord(ctx *ParseContext) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	openStart := ctx.Pos
	ctx.Pos++ // consume '"'
	builder := h.StrBuilderNew()
	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		if b == '"' {
			ctx.Pos++
			val := h.StrBuilderFinish(builder)
			nb := ip.peekAt(ctx, 0)
			if !ip.isBareTerminatorByte(nb) {
				return 0, ParseError, openStart, ctx.Pos, "extra characters after close-quote", true
			}
			return val, ParseOK, 0, 0, "", false
		}
		seg, status, eStart, eEnd, msg, ok := ip.parseSubstSegment(ctx, true)
		if !ok {
			return 0, status, eStart, eEnd, msg, false
		}
		builder = h.StrBuilderAppendObj(builder, seg)
	}
	return 0, ParseIncomplete, openStart, ctx.Pos, "", false
}

// parseBareWord consumes an unbraced, unquoted word, performing
// substitution, up to the next word terminator.
func (ip *Interp) parseBareWord(ctx *ParseContext) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	builder := h.StrBuilderNew()
	any := false
	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		if b == ' ' || b == '\t' || b == '\n' || b == ';' {
			break
		}
		if b == '\\' && ip.peekAt(ctx, 1) == '\n' {
			break
		}
		any = true
		seg, status, eStart, eEnd, msg, ok := ip.parseSubstSegment(ctx, false)
		if !ok {
			return 0, status, eStart, eEnd, msg, false
		}
		builder = h.StrBuilderAppendObj(builder, seg)
	}
	if !any {
		// zero-length bare word (e.g. consecutive separators handled by
		// caller); still a valid empty word.
	}
	return h.StrBuilderFinish(builder), ParseOK, 0, 0, "", false
}

// parseSubstSegment parses one substitution unit (literal run,
// backslash escape, $var, or [cmd]) at ctx.Pos, used by both quoted and
// bare word parsing. inQuotes affects only what counts as a literal
// run's terminator (an unescaped '"' stops literal accumulation).
func (ip *Interp) parseSubstSegment(ctx *ParseContext, inQuotes bool) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	b := ip.byteAt(ctx)

	switch b {
	case '\\':
		s, ok := ip.readBackslashEscape(ctx)
		if !ok {
			return 0, ParseError, ctx.Pos, ctx.Pos, "invalid backslash escape", false
		}
		return h.StrNew(s), ParseOK, 0, 0, "", true
	case '$':
		return ip.parseVarSubst(ctx)
	case '[':
		return ip.parseCmdSubst(ctx)
	default:
		runStart := ctx.Pos
		for ctx.Pos < length {
			c := ip.byteAt(ctx)
			if c == '\\' || c == '$' || c == '[' {
				break
			}
			if inQuotes && c == '"' {
				break
			}
			if !inQuotes && (c == ' ' || c == '\t' || c == '\n' || c == ';') {
				break
			}
			if !inQuotes && c == '\\' {
				break
			}
			if c == '\n' {
				ctx.Line++
			}
			ctx.Pos++
		}
		if ctx.Pos == runStart {
			// Single character that is none of the specials but also
			// didn't advance (shouldn't normally happen); consume one
			// byte defensively to guarantee forward progress.
			ctx.Pos++
		}
		return h.StrSlice(ctx.Script, runStart, ctx.Pos), ParseOK, 0, 0, "", true
	}
}

// readBackslashEscape decodes one backslash escape per §4.1's table,
// advancing ctx past it and returning the decoded bytes.
func (ip *Interp) readBackslashEscape(ctx *ParseContext) (string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	ctx.Pos++ // consume backslash
	if ctx.Pos >= length {
		return "\\", true
	}
	c := ip.byteAt(ctx)
	switch c {
	case 'a':
		ctx.Pos++
		return "\a", true
	case 'b':
		ctx.Pos++
		return "\b", true
	case 'f':
		ctx.Pos++
		return "\f", true
	case 'n':
		ctx.Pos++
		return "\n", true
	case 'r':
		ctx.Pos++
		return "\r", true
	case 't':
		ctx.Pos++
		return "\t", true
	case 'v':
		ctx.Pos++
		return "\v", true
	case '\\':
		ctx.Pos++
		return "\\", true
	case '\n':
		ctx.Pos++
		ctx.Line++
		for ctx.Pos < length && (ip.byteAt(ctx) == ' ' || ip.byteAt(ctx) == '\t') {
			ctx.Pos++
		}
		return " ", true
	case 'x':
		ctx.Pos++
		return ip.readHexEscape(ctx, 2, false), true
	case 'u':
		ctx.Pos++
		return ip.readHexEscape(ctx, 4, true), true
	case 'U':
		ctx.Pos++
		return ip.readHexEscape(ctx, 8, true), true
	default:
		if c >= '0' && c <= '7' {
			return ip.readOctalEscape(ctx), true
		}
		ctx.Pos++
		return string(c), true
	}
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// readHexEscape reads up to maxDigits hex digits and returns the
// resulting byte/codepoint. If asRune, the value is encoded as UTF-8;
// otherwise it is emitted as a single raw byte (\xHH).
func (ip *Interp) readHexEscape(ctx *ParseContext, maxDigits int, asRune bool) string {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	digitStart := ctx.Pos
	for ctx.Pos < length && ctx.Pos-digitStart < maxDigits && isHexDigit(ip.byteAt(ctx)) {
		ctx.Pos++
	}
	text := ip.Host.StrGo(ip.Host.StrSlice(ctx.Script, digitStart, ctx.Pos))
	if text == "" {
		return "x"
	}
	v, err := strconv.ParseInt(text, 16, 64)
	if err != nil {
		return text
	}
	if asRune {
		if v > 0x10FFFF {
			v = 0x10FFFF
		}
		return string(rune(v))
	}
	return string([]byte{byte(v)})
}

// readOctalEscape reads up to three octal digits (bounded by 0o377).
func (ip *Interp) readOctalEscape(ctx *ParseContext) string {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	digitStart := ctx.Pos
	for ctx.Pos < length && ctx.Pos-digitStart < 3 && ip.byteAt(ctx) >= '0' && ip.byteAt(ctx) <= '7' {
		ctx.Pos++
	}
	text := ip.Host.StrGo(ip.Host.StrSlice(ctx.Script, digitStart, ctx.Pos))
	v, _ := strconv.ParseInt(text, 8, 64)
	if v > 0o377 {
		v = 0o377
	}
	return string([]byte{byte(v)})
}

// parseVarSubst parses a "$name" or "${name}" variable reference and
// resolves it against the current frame/namespace.
func (ip *Interp) parseVarSubst(ctx *ParseContext) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	dollarPos := ctx.Pos
	ctx.Pos++ // consume '$'
	if ctx.Pos >= length {
		return h.StrNew("$"), ParseOK, 0, 0, "", true
	}
	var name string
	if ip.byteAt(ctx) == '{' {
		ctx.Pos++
		nameStart := ctx.Pos
		for ctx.Pos < length && ip.byteAt(ctx) != '}' {
			ctx.Pos++
		}
		if ctx.Pos >= length {
			return 0, ParseIncomplete, dollarPos, ctx.Pos, "", false
		}
		name = h.StrGo(h.StrSlice(ctx.Script, nameStart, ctx.Pos))
		ctx.Pos++ // consume '}'
	} else {
		nameStart := ctx.Pos
		for ctx.Pos < length {
			c := ip.byteAt(ctx)
			if isNameByte(c) {
				ctx.Pos++
				continue
			}
			if c == ':' && ip.peekAt(ctx, 1) == ':' {
				ctx.Pos += 2
				continue
			}
			break
		}
		name = h.StrGo(h.StrSlice(ctx.Script, nameStart, ctx.Pos))
	}
	if name == "" {
		return h.StrNew("$"), ParseOK, 0, 0, "", true
	}
	v, ok := ip.resolveVariableGet(h.FrameLevel(), name)
	if !ok {
		return 0, ParseError, dollarPos, ctx.Pos, errCantRead(name), false
	}
	return v, ParseOK, 0, 0, "", true
}

func isNameByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_'
}

// parseCmdSubst parses a "[...]" command substitution: finds the
// matching ']' respecting nested brackets (skipping brackets that are
// themselves inside nested braces/quotes), evaluates the text as a
// script, and yields its result.
func (ip *Interp) parseCmdSubst(ctx *ParseContext) (Handle, ParseStatus, int, int, string, bool) {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	openPos := ctx.Pos
	ctx.Pos++ // consume '['
	innerStart := ctx.Pos
	depth := 1
	for ctx.Pos < length {
		b := ip.byteAt(ctx)
		switch b {
		case '\\':
			ctx.Pos += 2
			continue
		case '{':
			ctx.Pos = ip.skipBraceGroup(ctx)
			continue
		case '"':
			ctx.Pos = ip.skipQuoteGroup(ctx)
			continue
		case '[':
			depth++
			ctx.Pos++
			continue
		case ']':
			depth--
			ctx.Pos++
			if depth == 0 {
				inner := h.StrSlice(ctx.Script, innerStart, ctx.Pos-1)
				res := ip.EvalObj(inner, EvalLocal)
				if res == ResultError {
					return 0, ParseError, openPos, ctx.Pos, ip.Result(), false
				}
				return h.GetResult(), ParseOK, 0, 0, "", true
			}
			continue
		case '\n':
			ctx.Line++
			ctx.Pos++
		default:
			ctx.Pos++
		}
	}
	return 0, ParseIncomplete, openPos, ctx.Pos, "", false
}

// skipBraceGroup advances past a brace-delimited run (used while
// scanning for the bracket matching a command substitution), returning
// the position just past the matching '}'.
func (ip *Interp) skipBraceGroup(ctx *ParseContext) int {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	pos := ctx.Pos + 1
	depth := 1
	for pos < length && depth > 0 {
		v := h.StrByteAt(ctx.Script, pos)
		b := byte(0)
		if v >= 0 {
			b = byte(v)
		}
		if b == '\\' {
			pos += 2
			continue
		}
		if b == '{' {
			depth++
		} else if b == '}' {
			depth--
		} else if b == '\n' {
			ctx.Line++
		}
		pos++
	}
	return pos
}

// skipQuoteGroup advances past a double-quoted run, returning the
// position just past the matching '"'.
func (ip *Interp) skipQuoteGroup(ctx *ParseContext) int {
	h := ip.Host
	length := h.StrByteLength(ctx.Script)
	pos := ctx.Pos + 1
	for pos < length {
		v := h.StrByteAt(ctx.Script, pos)
		b := byte(0)
		if v >= 0 {
			b = byte(v)
		}
		if b == '\\' {
			pos += 2
			continue
		}
		if b == '"' {
			pos++
			break
		}
		if b == '\n' {
			ctx.Line++
		}
		pos++
	}
	return pos
}

// splitAsList splits a value as a list, for {*} argument expansion.
func (ip *Interp) splitAsList(v Handle) ([]Handle, error) {
	h := ip.Host
	n := h.ListLength(v)
	items := make([]Handle, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, h.ListAt(v, i))
	}
	return items, nil
}
