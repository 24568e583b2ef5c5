package memhost

import "strings"

// globMatch performs TCL-style glob matching: '*' matches any run of
// characters, '?' matches exactly one, and '[...]' matches one
// character from a set (or its complement with a leading '^').
func globMatch(pattern, str string, nocase bool) bool {
	if nocase {
		pattern = strings.ToLower(pattern)
		str = strings.ToLower(str)
	}
	return globMatchHelper(pattern, str, 0, 0)
}

func globMatchHelper(pattern, str string, pi, si int) bool {
	for pi < len(pattern) {
		switch pattern[pi] {
		case '*':
			for pi < len(pattern) && pattern[pi] == '*' {
				pi++
			}
			if pi >= len(pattern) {
				return true
			}
			for si <= len(str) {
				if globMatchHelper(pattern, str, pi, si) {
					return true
				}
				si++
			}
			return false
		case '?':
			if si >= len(str) {
				return false
			}
			pi++
			si++
		case '[':
			if si >= len(str) {
				return false
			}
			end := strings.IndexByte(pattern[pi+1:], ']')
			if end < 0 {
				// No closing bracket: treat '[' as a literal.
				if str[si] != '[' {
					return false
				}
				pi++
				si++
				continue
			}
			class := pattern[pi+1 : pi+1+end]
			if !matchCharClass(class, str[si]) {
				return false
			}
			pi += end + 2
			si++
		case '\\':
			if pi+1 < len(pattern) {
				if si >= len(str) || pattern[pi+1] != str[si] {
					return false
				}
				pi += 2
				si++
				continue
			}
			if si >= len(str) || str[si] != '\\' {
				return false
			}
			pi++
			si++
		default:
			if si >= len(str) || pattern[pi] != str[si] {
				return false
			}
			pi++
			si++
		}
	}
	return si >= len(str)
}

func matchCharClass(class string, c byte) bool {
	negate := false
	if strings.HasPrefix(class, "^") {
		negate = true
		class = class[1:]
	}
	matched := false
	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
			}
			i += 2
			continue
		}
		if class[i] == c {
			matched = true
		}
	}
	return matched != negate
}
