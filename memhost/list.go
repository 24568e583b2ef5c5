package memhost

import (
	"sort"

	"github.com/feather-lang/tcl/core"
)

func (h *Host) ListCreate() core.Handle {
	return h.reg.intern(newListObj(nil))
}

func (h *Host) ListFrom(items []core.Handle) core.Handle {
	elems := make([]*obj, len(items))
	for i, it := range items {
		elems[i] = h.reg.get(it)
	}
	return h.reg.intern(newListObj(elems))
}

func (h *Host) ListIsNil(l core.Handle) bool {
	if l == core.NilHandle {
		return true
	}
	o := h.reg.get(l)
	return o == nil
}

func (h *Host) ListLength(l core.Handle) int {
	o := h.reg.get(l)
	if o == nil {
		return 0
	}
	items, ok := o.asList()
	if !ok {
		return 0
	}
	return len(items)
}

func (h *Host) ListAt(l core.Handle, i int) core.Handle {
	o := h.reg.get(l)
	if o == nil {
		return core.NilHandle
	}
	items, ok := o.asList()
	if !ok || i < 0 || i >= len(items) {
		return core.NilHandle
	}
	return h.reg.intern(items[i])
}

func (h *Host) ListSlice(l core.Handle, start, end int) core.Handle {
	o := h.reg.get(l)
	if o == nil {
		return h.ListCreate()
	}
	items, ok := o.asList()
	if !ok {
		return h.ListCreate()
	}
	if start < 0 {
		start = 0
	}
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return h.ListCreate()
	}
	return h.reg.intern(newListObj(items[start:end]))
}

func (h *Host) ListSetAt(l core.Handle, i int, v core.Handle) core.Handle {
	o := h.reg.get(l)
	items, ok := o.asList()
	if !ok {
		items = nil
	}
	out := append([]*obj(nil), items...)
	for len(out) <= i {
		out = append(out, newStringObj(""))
	}
	if i >= 0 {
		out[i] = h.reg.get(v)
	}
	return h.reg.intern(newListObj(out))
}

func (h *Host) ListSplice(l core.Handle, start, count int, items []core.Handle) core.Handle {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok {
		cur = nil
	}
	if start < 0 {
		start = 0
	}
	if start > len(cur) {
		start = len(cur)
	}
	end := start + count
	if end > len(cur) {
		end = len(cur)
	}
	ins := make([]*obj, len(items))
	for i, it := range items {
		ins[i] = h.reg.get(it)
	}
	out := make([]*obj, 0, len(cur)-count+len(items))
	out = append(out, cur[:start]...)
	out = append(out, ins...)
	out = append(out, cur[end:]...)
	return h.reg.intern(newListObj(out))
}

func (h *Host) ListPush(l core.Handle, v core.Handle) core.Handle {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok {
		cur = nil
	}
	out := append(append([]*obj(nil), cur...), h.reg.get(v))
	return h.reg.intern(newListObj(out))
}

func (h *Host) ListPop(l core.Handle) (core.Handle, core.Handle) {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok || len(cur) == 0 {
		return l, core.NilHandle
	}
	popped := cur[len(cur)-1]
	rest := cur[:len(cur)-1]
	return h.reg.intern(newListObj(rest)), h.reg.intern(popped)
}

func (h *Host) ListShift(l core.Handle) (core.Handle, core.Handle) {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok || len(cur) == 0 {
		return l, core.NilHandle
	}
	shifted := cur[0]
	rest := cur[1:]
	return h.reg.intern(newListObj(rest)), h.reg.intern(shifted)
}

func (h *Host) ListUnshift(l core.Handle, v core.Handle) core.Handle {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok {
		cur = nil
	}
	out := append([]*obj{h.reg.get(v)}, cur...)
	return h.reg.intern(newListObj(out))
}

func (h *Host) ListSort(l core.Handle, cmp func(a, b core.Handle) int) core.Handle {
	o := h.reg.get(l)
	cur, ok := o.asList()
	if !ok {
		return l
	}
	out := append([]*obj(nil), cur...)
	handles := make([]core.Handle, len(out))
	for i, v := range out {
		handles[i] = h.reg.intern(v)
	}
	sort.SliceStable(handles, func(i, j int) bool { return cmp(handles[i], handles[j]) < 0 })
	result := make([]*obj, len(handles))
	for i, hd := range handles {
		result[i] = h.reg.get(hd)
	}
	return h.reg.intern(newListObj(result))
}
