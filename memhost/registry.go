package memhost

import "github.com/feather-lang/tcl/core"

// registry maps core.Handle values to the *obj they address. Handles
// are never reused within a Host's lifetime, so a stale handle is
// always distinguishable from a live one.
type registry struct {
	objects map[core.Handle]*obj
	next    core.Handle
}

func newRegistry() *registry {
	return &registry{objects: make(map[core.Handle]*obj), next: 1}
}

func (r *registry) intern(o *obj) core.Handle {
	h := r.next
	r.next++
	r.objects[h] = o
	return h
}

func (r *registry) get(h core.Handle) *obj {
	if h == core.NilHandle {
		return nil
	}
	return r.objects[h]
}

// set replaces a handle's live value. Used when an in-place builtin
// (string append, list mutate) wants to keep the same handle identity;
// currently unused since this Host treats values as immutable
// snapshots, but kept for hosts that intern by value identity.
func (r *registry) set(h core.Handle, o *obj) {
	r.objects[h] = o
}
