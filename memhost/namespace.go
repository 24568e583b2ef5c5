package memhost

import (
	"errors"
	"strings"

	"github.com/feather-lang/tcl/core"
)

// namespace is one node of the namespace tree rooted at "::", mirroring
// the teacher's Namespace shape: a variable table, a command table, and
// export patterns, plus parent/children links for walking the tree.
type namespace struct {
	fullPath       string
	parent         *namespace
	children       map[string]*namespace
	vars           map[string]*varEntry
	commands       map[string]core.CommandEntry
	exportPatterns []string
}

func newNamespace(path string, parent *namespace) *namespace {
	return &namespace{
		fullPath: path,
		parent:   parent,
		children: make(map[string]*namespace),
		vars:     make(map[string]*varEntry),
		commands: make(map[string]core.CommandEntry),
	}
}

func (h *Host) findNamespace(path string) *namespace {
	path = core.CanonicalNamespace(path)
	if path == "::" {
		return h.root
	}
	parts := strings.Split(strings.TrimPrefix(path, "::"), "::")
	cur := h.root
	for _, p := range parts {
		next, ok := cur.children[p]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// NSCreate implements HostNamespace.NSCreate: it creates every missing
// namespace along path.
func (h *Host) NSCreate(path string) {
	path = core.CanonicalNamespace(path)
	if path == "::" {
		return
	}
	parts := strings.Split(strings.TrimPrefix(path, "::"), "::")
	cur := h.root
	built := ""
	for _, p := range parts {
		built += "::" + p
		next, ok := cur.children[p]
		if !ok {
			next = newNamespace(built, cur)
			cur.children[p] = next
		}
		cur = next
	}
}

func (h *Host) NSDelete(path string) error {
	path = core.CanonicalNamespace(path)
	if path == "::" {
		return errors.New("can't delete the root namespace")
	}
	ns := h.findNamespace(path)
	if ns == nil {
		return core.ErrNoSuchNamespace
	}
	tail := path[strings.LastIndex(path, "::")+2:]
	delete(ns.parent.children, tail)
	return nil
}

func (h *Host) NSExists(path string) bool {
	return h.findNamespace(path) != nil
}

func (h *Host) NSCurrent() string {
	return h.FrameGetNamespace(h.FrameLevel())
}

func (h *Host) NSParent(path string) string {
	ns := h.findNamespace(path)
	if ns == nil || ns.parent == nil {
		return "::"
	}
	return ns.parent.fullPath
}

func (h *Host) NSChildren(path string) []string {
	ns := h.findNamespace(path)
	if ns == nil {
		return nil
	}
	out := make([]string, 0, len(ns.children))
	for _, c := range ns.children {
		out = append(out, c.fullPath)
	}
	return out
}

func (h *Host) NSGetVar(path string, name string) (core.Handle, bool) {
	ns := h.findNamespace(path)
	if ns == nil {
		return core.NilHandle, false
	}
	entry, ok := ns.vars[name]
	if !ok || entry.val == nil {
		return core.NilHandle, false
	}
	return h.reg.intern(entry.val), true
}

func (h *Host) NSSetVar(path string, name string, v core.Handle) {
	ns := h.findNamespace(path)
	if ns == nil {
		h.NSCreate(path)
		ns = h.findNamespace(path)
	}
	o := h.reg.get(v)
	entry, ok := ns.vars[name]
	if !ok {
		entry = &varEntry{}
		ns.vars[name] = entry
	}
	entry.val = o
}

func (h *Host) NSVarExists(path string, name string) bool {
	ns := h.findNamespace(path)
	if ns == nil {
		return false
	}
	entry, ok := ns.vars[name]
	return ok && entry.val != nil
}

func (h *Host) NSUnsetVar(path string, name string) bool {
	ns := h.findNamespace(path)
	if ns == nil {
		return false
	}
	if _, ok := ns.vars[name]; !ok {
		return false
	}
	delete(ns.vars, name)
	return true
}

func (h *Host) NSGetCommand(path string, name string) (core.CommandEntry, bool) {
	ns := h.findNamespace(path)
	if ns == nil {
		return core.CommandEntry{}, false
	}
	entry, ok := ns.commands[name]
	return entry, ok
}

func (h *Host) NSSetCommand(path string, name string, entry core.CommandEntry) {
	h.NSCreate(path)
	ns := h.findNamespace(path)
	ns.commands[name] = entry
}

func (h *Host) NSDeleteCommand(path string, name string) bool {
	ns := h.findNamespace(path)
	if ns == nil {
		return false
	}
	if _, ok := ns.commands[name]; !ok {
		return false
	}
	delete(ns.commands, name)
	return true
}

func (h *Host) NSListCommands(path string) []string {
	ns := h.findNamespace(path)
	if ns == nil {
		return nil
	}
	out := make([]string, 0, len(ns.commands))
	for name := range ns.commands {
		out = append(out, name)
	}
	return out
}

func (h *Host) NSGetExports(path string) []string {
	ns := h.findNamespace(path)
	if ns == nil {
		return nil
	}
	return append([]string(nil), ns.exportPatterns...)
}

func (h *Host) NSSetExports(path string, patterns []string) {
	h.NSCreate(path)
	ns := h.findNamespace(path)
	ns.exportPatterns = patterns
}

func (h *Host) NSIsExported(path string, name string) bool {
	ns := h.findNamespace(path)
	if ns == nil {
		return false
	}
	for _, pat := range ns.exportPatterns {
		if matchGlob(pat, name, false) {
			return true
		}
	}
	return false
}

func (h *Host) NSCopyCommand(fromPath, fromName, toPath, toName string) bool {
	fromNS := h.findNamespace(fromPath)
	if fromNS == nil {
		return false
	}
	entry, ok := fromNS.commands[fromName]
	if !ok {
		return false
	}
	h.NSCreate(toPath)
	toNS := h.findNamespace(toPath)
	entry.Name = toPath + "::" + toName
	entry.DefiningNS = toPath
	toNS.commands[toName] = entry
	return true
}
