package memhost

import (
	"github.com/feather-lang/tcl/core"
)

const maxLinkHops = 64

// resolveSlot follows a chain of variable links starting at
// (level, name), returning the table and name the value actually
// lives at. ok is false past maxLinkHops (treated as a cycle) or when
// an intermediate namespace is missing.
func (h *Host) resolveSlot(level int, name string) (vars map[string]*varEntry, key string, ok bool) {
	curLevel, curNS, curName, inNS := level, "", name, false
	for hop := 0; hop < maxLinkHops; hop++ {
		var table map[string]*varEntry
		if inNS {
			ns := h.findNamespace(curNS)
			if ns == nil {
				return nil, "", false
			}
			table = ns.vars
		} else {
			if curLevel < 0 || curLevel >= len(h.frames) {
				return nil, "", false
			}
			table = h.frames[curLevel].vars
		}
		entry, exists := table[curName]
		if !exists || !entry.isLink {
			return table, curName, true
		}
		if entry.linkIsNS {
			curNS, curName, inNS = entry.linkNS, entry.linkName, true
		} else {
			curLevel, curName, inNS = entry.linkLevel, entry.linkName, false
		}
	}
	return nil, "", false
}

func (h *Host) VarGet(level int, name string) (core.Handle, bool) {
	table, key, ok := h.resolveSlot(level, name)
	if !ok {
		return core.NilHandle, false
	}
	entry, exists := table[key]
	if !exists || entry.val == nil {
		return core.NilHandle, false
	}
	return h.reg.intern(entry.val), true
}

func (h *Host) VarSet(level int, name string, v core.Handle) {
	table, key, ok := h.resolveSlot(level, name)
	if !ok {
		return
	}
	o := h.reg.get(v)
	entry, exists := table[key]
	if !exists {
		entry = &varEntry{}
		table[key] = entry
	}
	entry.val = o
}

func (h *Host) VarUnset(level int, name string) bool {
	table, key, ok := h.resolveSlot(level, name)
	if !ok {
		return false
	}
	if _, exists := table[key]; !exists {
		return false
	}
	delete(table, key)
	return true
}

func (h *Host) VarExists(level int, name string) bool {
	table, key, ok := h.resolveSlot(level, name)
	if !ok {
		return false
	}
	entry, exists := table[key]
	return exists && entry.val != nil
}

func (h *Host) VarLink(level int, localName string, targetLevel int, targetName string) error {
	if level < 0 || level >= len(h.frames) {
		return core.ErrNoSuchVariable
	}
	if level == targetLevel && localName == targetName {
		return core.ErrLinkCycle
	}
	h.frames[level].vars[localName] = &varEntry{
		isLink: true, linkLevel: targetLevel, linkName: targetName,
	}
	return nil
}

func (h *Host) VarLinkNS(level int, localName string, nsPath string, targetName string) error {
	if level < 0 || level >= len(h.frames) {
		return core.ErrNoSuchVariable
	}
	h.NSCreate(nsPath)
	h.frames[level].vars[localName] = &varEntry{
		isLink: true, linkIsNS: true, linkNS: nsPath, linkName: targetName,
	}
	return nil
}

func (h *Host) VarNames(level int, pattern string) []string {
	if level < 0 || level >= len(h.frames) {
		return nil
	}
	var out []string
	for name, entry := range h.frames[level].vars {
		if entry.val == nil && !entry.isLink {
			continue
		}
		if matchGlob(pattern, name, false) {
			out = append(out, name)
		}
	}
	return out
}

func (h *Host) VarIsLink(level int, name string) bool {
	if level < 0 || level >= len(h.frames) {
		return false
	}
	entry, ok := h.frames[level].vars[name]
	return ok && entry.isLink
}

func (h *Host) VarResolveLink(level int, name string) (core.VarLinkInfo, bool) {
	if level < 0 || level >= len(h.frames) {
		return core.VarLinkInfo{}, false
	}
	entry, ok := h.frames[level].vars[name]
	if !ok || !entry.isLink {
		return core.VarLinkInfo{}, false
	}
	return core.VarLinkInfo{
		IsNamespace: entry.linkIsNS,
		Level:       entry.linkLevel,
		NSPath:      entry.linkNS,
		Name:        entry.linkName,
	}, true
}

// matchGlob exposes the package's glob matcher for pattern == "" meaning
// match-everything, trimming the slight asymmetry between Tcl's blank
// default pattern and a literal "*".
func matchGlob(pattern, s string, nocase bool) bool {
	if pattern == "" {
		pattern = "*"
	}
	return globMatch(pattern, s, nocase)
}
