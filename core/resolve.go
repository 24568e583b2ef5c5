package core

import "strings"

// CanonicalNamespace normalizes a namespace path to absolute form: it
// always starts with "::" and has no trailing "::" (except the root
// itself, which is exactly "::").
func CanonicalNamespace(path string) string {
	if path == "" {
		return "::"
	}
	if !strings.HasPrefix(path, "::") {
		path = "::" + path
	}
	for len(path) > 2 && strings.HasSuffix(path, "::") {
		path = path[:len(path)-2]
	}
	if path == "" {
		path = "::"
	}
	return path
}

// SplitQualifiedCommand splits a possibly-qualified name into
// (namespace, tail) by cutting at the *last* "::". An unqualified name
// yields ("", name).
func SplitQualifiedCommand(name string) (ns, tail string) {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return "", name
	}
	ns = name[:idx]
	tail = name[idx+2:]
	return ns, tail
}

// IsQualifiedName reports whether name contains "::" anywhere.
func IsQualifiedName(name string) bool {
	return strings.Contains(name, "::")
}

// joinNamespace appends a simple name to an absolute namespace path,
// producing an absolute path.
func joinNamespace(base, name string) string {
	base = CanonicalNamespace(base)
	if base == "::" {
		return "::" + name
	}
	return base + "::" + name
}

// resolveCommand implements §4.5's command name resolution: qualified
// names resolve only in the named namespace; unqualified names try the
// current namespace then the global namespace.
func (ip *Interp) resolveCommand(currentNS string, name string) (CommandEntry, bool) {
	if IsQualifiedName(name) {
		ns, tail := SplitQualifiedCommand(name)
		abs := CanonicalNamespace(ns)
		if abs == "" {
			abs = "::"
		}
		return ip.Host.NSGetCommand(abs, tail)
	}
	if entry, ok := ip.Host.NSGetCommand(currentNS, name); ok {
		return entry, true
	}
	if currentNS != "::" {
		if entry, ok := ip.Host.NSGetCommand("::", name); ok {
			return entry, true
		}
	}
	return CommandEntry{}, false
}

// resolveVariableGet implements §4.5's variable resolution for an
// unqualified name (local frame only) vs. a qualified name (the named
// namespace's table only), following links transparently per §4.6.
func (ip *Interp) resolveVariableGet(level int, name string) (Handle, bool) {
	if IsQualifiedName(name) {
		ns, tail := SplitQualifiedCommand(name)
		abs := CanonicalNamespace(ns)
		return ip.Host.NSGetVar(abs, tail)
	}
	return ip.Host.VarGet(level, name)
}

func (ip *Interp) resolveVariableSet(level int, name string, v Handle) {
	if IsQualifiedName(name) {
		ns, tail := SplitQualifiedCommand(name)
		abs := CanonicalNamespace(ns)
		ip.Host.NSCreate(abs)
		ip.Host.NSSetVar(abs, tail, v)
		return
	}
	ip.Host.VarSet(level, name, v)
}

func (ip *Interp) resolveVariableExists(level int, name string) bool {
	if IsQualifiedName(name) {
		ns, tail := SplitQualifiedCommand(name)
		abs := CanonicalNamespace(ns)
		return ip.Host.NSVarExists(abs, tail)
	}
	return ip.Host.VarExists(level, name)
}

func (ip *Interp) resolveVariableUnset(level int, name string) bool {
	if IsQualifiedName(name) {
		ns, tail := SplitQualifiedCommand(name)
		abs := CanonicalNamespace(ns)
		return ip.Host.NSUnsetVar(abs, tail)
	}
	return ip.Host.VarUnset(level, name)
}
