package memhost

import "github.com/feather-lang/tcl/core"

// NewForeign creates a foreign value wrapping payload, with the given
// type name, string representation, and method table. invoke is called
// with the decoded Go string for each method argument and must return
// a string result or an error.
func (h *Host) NewForeign(typeName, stringRep string, methods []string, payload any, invoke func(method string, args []string) (string, error)) core.Handle {
	fo := &foreignObj{
		typeName_: typeName,
		stringRep: stringRep,
		methods:   append([]string(nil), methods...),
		payload:   payload,
	}
	fo.invoke = func(method string, args []*obj) (*obj, error) {
		strArgs := make([]string, len(args))
		for i, a := range args {
			strArgs[i] = a.String()
		}
		res, err := invoke(method, strArgs)
		if err != nil {
			return nil, err
		}
		return newStringObj(res), nil
	}
	return h.reg.intern(&obj{intrep: fo, bytes: stringRep, bytesValid: true})
}

func (h *Host) IsForeign(v core.Handle) bool {
	o := h.reg.get(v)
	if o == nil {
		return false
	}
	_, ok := o.intrep.(*foreignObj)
	return ok
}

func (h *Host) ForeignTypeName(v core.Handle) string {
	o := h.reg.get(v)
	fo, ok := o.intrep.(*foreignObj)
	if !ok {
		return ""
	}
	return fo.typeName_
}

func (h *Host) ForeignStringRep(v core.Handle) string {
	o := h.reg.get(v)
	fo, ok := o.intrep.(*foreignObj)
	if !ok {
		return ""
	}
	return fo.stringRep
}

func (h *Host) ForeignMethods(v core.Handle) []string {
	o := h.reg.get(v)
	fo, ok := o.intrep.(*foreignObj)
	if !ok {
		return nil
	}
	return append([]string(nil), fo.methods...)
}

func (h *Host) ForeignInvoke(v core.Handle, method string, args []core.Handle) (core.Handle, error) {
	o := h.reg.get(v)
	fo, ok := o.intrep.(*foreignObj)
	if !ok {
		return core.NilHandle, &valueError{"not a foreign value"}
	}
	argObjs := make([]*obj, len(args))
	for i, a := range args {
		argObjs[i] = h.reg.get(a)
	}
	res, err := fo.invoke(method, argObjs)
	if err != nil {
		return core.NilHandle, err
	}
	return h.reg.intern(res), nil
}

func (h *Host) ForeignDestroy(v core.Handle) {
	// Values are garbage collected by Go; nothing to release explicitly
	// unless payload holds an external resource, which the embedder's
	// invoke closure is responsible for.
}
