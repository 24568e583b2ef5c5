// Package memhost is the default in-memory implementation of
// core.Host: it owns every value, frame, variable, and namespace the
// interpreter touches, storing values as shimmering Obj records the
// way a TCL implementation classically does.
package memhost

import (
	"strconv"
	"strings"
)

// obj is a value: a string representation plus an optional, lazily
// computed internal representation. Both representations can be
// present at once; intrep is cleared to nil only when a mutation makes
// it stale and bytesValid is cleared only when intrep produces a new
// canonical string.
type obj struct {
	bytes      string
	bytesValid bool
	intrep     objType
}

// objType is the internal representation behind a shimmered obj.
type objType interface {
	typeName() string
	updateString() string
}

func newStringObj(s string) *obj {
	return &obj{bytes: s, bytesValid: true}
}

func (o *obj) String() string {
	if !o.bytesValid {
		o.bytes = o.intrep.updateString()
		o.bytesValid = true
	}
	return o.bytes
}

func (o *obj) typeName() string {
	if o.intrep == nil {
		return "string"
	}
	return o.intrep.typeName()
}

// intObj is the internal representation for integer values.
type intObj int64

func (intObj) typeName() string               { return "int" }
func (v intObj) updateString() string         { return strconv.FormatInt(int64(v), 10) }
func newIntObj(v int64) *obj                  { return &obj{intrep: intObj(v)} }
func (o *obj) asInt() (int64, bool) {
	if v, ok := o.intrep.(intObj); ok {
		return int64(v), true
	}
	if o.intrep == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(o.bytes), 0, 64)
		if err != nil {
			return 0, false
		}
		o.intrep = intObj(n)
		return n, true
	}
	if lv, ok := o.intrep.(listObj); ok && len(lv) == 1 {
		return lv[0].asInt()
	}
	n, err := strconv.ParseInt(strings.TrimSpace(o.String()), 0, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// dblObj is the internal representation for floating point values.
type dblObj float64

func (dblObj) typeName() string       { return "double" }
func (v dblObj) updateString() string { return formatDouble(float64(v)) }
func newDblObj(v float64) *obj        { return &obj{intrep: dblObj(v)} }

func formatDouble(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (o *obj) asDouble() (float64, bool) {
	if v, ok := o.intrep.(dblObj); ok {
		return float64(v), true
	}
	if v, ok := o.intrep.(intObj); ok {
		return float64(v), true
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(o.String()), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// listObj is the internal representation for list values: an ordered
// slice of element objs.
type listObj []*obj

func (listObj) typeName() string { return "list" }
func (t listObj) updateString() string {
	var b strings.Builder
	for i, item := range t {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeListElement(&b, item.String())
	}
	return b.String()
}

func writeListElement(b *strings.Builder, s string) {
	if s == "" || needsBracing(s) {
		b.WriteByte('{')
		b.WriteString(s)
		b.WriteByte('}')
		return
	}
	b.WriteString(s)
}

func needsBracing(s string) bool {
	return strings.ContainsAny(s, " \t\n{}\"[]$;\\")
}

func newListObj(items []*obj) *obj {
	return &obj{intrep: listObj(append([]*obj(nil), items...))}
}

func (o *obj) asList() ([]*obj, bool) {
	if lv, ok := o.intrep.(listObj); ok {
		return lv, true
	}
	items, err := parseAsList(o.String())
	if err != nil {
		return nil, false
	}
	o.intrep = listObj(items)
	return items, true
}

// dictObj is the internal representation for dictionary values: a map
// plus an explicit insertion order, since HostDict.Keys/Values must
// iterate in insertion order.
type dictObj struct {
	order []string
	m     map[string]*obj
}

func (*dictObj) typeName() string { return "dict" }
func (d *dictObj) updateString() string {
	var b strings.Builder
	for i, k := range d.order {
		if i > 0 {
			b.WriteByte(' ')
		}
		writeListElement(&b, k)
		b.WriteByte(' ')
		writeListElement(&b, d.m[k].String())
	}
	return b.String()
}

func newDictObj() *dictObj {
	return &dictObj{m: make(map[string]*obj)}
}

func (o *obj) asDict() (*dictObj, bool) {
	if dv, ok := o.intrep.(*dictObj); ok {
		return dv, true
	}
	items, err := parseAsList(o.String())
	if err != nil || len(items)%2 != 0 {
		return nil, false
	}
	d := newDictObj()
	for i := 0; i < len(items); i += 2 {
		d.setKey(items[i].String(), items[i+1])
	}
	o.intrep = d
	return d, true
}

func (d *dictObj) setKey(key string, v *obj) {
	if _, ok := d.m[key]; !ok {
		d.order = append(d.order, key)
	}
	d.m[key] = v
}

func (d *dictObj) removeKey(key string) {
	if _, ok := d.m[key]; !ok {
		return
	}
	delete(d.m, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func (d *dictObj) copy() *dictObj {
	nd := &dictObj{order: append([]string(nil), d.order...), m: make(map[string]*obj, len(d.m))}
	for k, v := range d.m {
		nd.m[k] = v
	}
	return nd
}

// foreignObj wraps a host-registered foreign value: something with a
// type name, a string representation, and a fixed method table,
// invoked by name.
type foreignObj struct {
	typeName_ string
	stringRep string
	methods   []string
	payload   any
	invoke    func(method string, args []*obj) (*obj, error)
}

func (f *foreignObj) typeName() string     { return f.typeName_ }
func (f *foreignObj) updateString() string { return f.stringRep }
