package memhost

import "github.com/feather-lang/tcl/core"

func (h *Host) DictCreate() core.Handle {
	return h.reg.intern(&obj{intrep: newDictObj()})
}

func (h *Host) DictIsDict(d core.Handle) bool {
	o := h.reg.get(d)
	if o == nil {
		return false
	}
	_, ok := o.asDict()
	return ok
}

func (h *Host) DictFrom(keys []string, values []core.Handle) core.Handle {
	d := newDictObj()
	for i, k := range keys {
		if i < len(values) {
			d.setKey(k, h.reg.get(values[i]))
		}
	}
	return h.reg.intern(&obj{intrep: d})
}

func (h *Host) DictGet(d core.Handle, key string) (core.Handle, bool) {
	o := h.reg.get(d)
	if o == nil {
		return core.NilHandle, false
	}
	dv, ok := o.asDict()
	if !ok {
		return core.NilHandle, false
	}
	v, ok := dv.m[key]
	if !ok {
		return core.NilHandle, false
	}
	return h.reg.intern(v), true
}

func (h *Host) DictSet(d core.Handle, key string, v core.Handle) core.Handle {
	o := h.reg.get(d)
	var src *dictObj
	if o != nil {
		if dv, ok := o.asDict(); ok {
			src = dv
		}
	}
	var nd *dictObj
	if src != nil {
		nd = src.copy()
	} else {
		nd = newDictObj()
	}
	nd.setKey(key, h.reg.get(v))
	return h.reg.intern(&obj{intrep: nd})
}

func (h *Host) DictExists(d core.Handle, key string) bool {
	_, ok := h.DictGet(d, key)
	return ok
}

func (h *Host) DictRemove(d core.Handle, key string) core.Handle {
	o := h.reg.get(d)
	dv, ok := o.asDict()
	if !ok {
		return h.DictCreate()
	}
	nd := dv.copy()
	nd.removeKey(key)
	return h.reg.intern(&obj{intrep: nd})
}

func (h *Host) DictSize(d core.Handle) int {
	o := h.reg.get(d)
	dv, ok := o.asDict()
	if !ok {
		return 0
	}
	return len(dv.order)
}

func (h *Host) DictKeys(d core.Handle) []string {
	o := h.reg.get(d)
	dv, ok := o.asDict()
	if !ok {
		return nil
	}
	return append([]string(nil), dv.order...)
}

func (h *Host) DictValues(d core.Handle) []core.Handle {
	o := h.reg.get(d)
	dv, ok := o.asDict()
	if !ok {
		return nil
	}
	out := make([]core.Handle, len(dv.order))
	for i, k := range dv.order {
		out[i] = h.reg.intern(dv.m[k])
	}
	return out
}
