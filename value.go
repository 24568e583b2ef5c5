package tcl

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a script-level value with type-safe accessors. Tcl values
// shimmer: the same value can be read as a string, a number, a list or
// a dict depending on what the reader asks for.
type Value interface {
	// String returns the value's string representation. Always succeeds.
	String() string

	// Int parses the value as an integer.
	Int() (int64, error)

	// Float parses the value as a floating-point number.
	Float() (float64, error)

	// Bool applies Tcl's boolean rules: "1"/"true"/"yes"/"on" are true,
	// "0"/"false"/"no"/"off" are false (case-insensitive); anything else
	// is an error.
	Bool() (bool, error)

	// List parses the value as a list of values.
	List() ([]Value, error)

	// Dict parses the value as a set of key/value pairs, returned as a Go
	// map, so the pairs' order is not kept. An odd element count is an error.
	Dict() (map[string]Value, error)

	// Type names the value's native representation: "string", "int",
	// "double", "list", "dict", or a foreign type name.
	Type() string

	// IsNil reports whether this is a nil/empty value.
	IsNil() bool
}

func boolFromString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected boolean but got %q", s)
	}
}

// kind names which native representation a value carries, the way an
// internal object keeps track of its current intrep.
type kind int

const (
	kindString kind = iota
	kindInt
	kindFloat
	kindList
	kindDict
	kindForeign
)

// value is the sole concrete [Value]. It shimmers: whichever
// representation it was built with is stored natively, and every other
// accessor is derived from that on demand rather than carried by a
// dedicated struct per kind.
type value struct {
	kind kind

	str      string
	strValid bool

	i int64
	f float64

	items []Value // kindList

	keys   []string         // kindDict, insertion order
	fields map[string]Value // kindDict

	foreignType string // kindForeign
}

func newStringValue(s string) *value { return &value{kind: kindString, str: s, strValid: true} }

func (v *value) String() string {
	if v.strValid {
		return v.str
	}
	v.str = v.render()
	v.strValid = true
	return v.str
}

func (v *value) render() string {
	switch v.kind {
	case kindInt:
		return strconv.FormatInt(v.i, 10)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case kindList:
		var b strings.Builder
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeListElement(&b, item.String())
		}
		return b.String()
	case kindDict:
		var b strings.Builder
		for i, key := range v.keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeListElement(&b, key)
			b.WriteByte(' ')
			writeListElement(&b, v.fields[key].String())
		}
		return b.String()
	default:
		return v.str
	}
}

func (v *value) Int() (int64, error) {
	switch v.kind {
	case kindInt:
		return v.i, nil
	case kindFloat:
		return int64(v.f), nil
	case kindList:
		if len(v.items) == 1 {
			return v.items[0].Int()
		}
		return 0, fmt.Errorf("expected integer but got list")
	case kindDict:
		return 0, fmt.Errorf("expected integer but got dict")
	case kindForeign:
		return 0, fmt.Errorf("expected integer but got %s", v.foreignType)
	default:
		return strconv.ParseInt(v.str, 0, 64)
	}
}

func (v *value) Float() (float64, error) {
	switch v.kind {
	case kindInt:
		return float64(v.i), nil
	case kindFloat:
		return v.f, nil
	case kindList:
		if len(v.items) == 1 {
			return v.items[0].Float()
		}
		return 0, fmt.Errorf("expected float but got list")
	case kindDict:
		return 0, fmt.Errorf("expected float but got dict")
	case kindForeign:
		return 0, fmt.Errorf("expected float but got %s", v.foreignType)
	default:
		return strconv.ParseFloat(v.str, 64)
	}
}

func (v *value) Bool() (bool, error) {
	switch v.kind {
	case kindInt:
		switch v.i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, fmt.Errorf("expected boolean but got %d", v.i)
		}
	case kindFloat:
		switch v.f {
		case 0:
			return false, nil
		case 1:
			return true, nil
		default:
			return false, fmt.Errorf("expected boolean but got %g", v.f)
		}
	case kindList:
		if len(v.items) == 1 {
			return v.items[0].Bool()
		}
		return false, fmt.Errorf("expected boolean but got list")
	case kindDict:
		return false, fmt.Errorf("expected boolean but got dict")
	case kindForeign:
		return false, fmt.Errorf("expected boolean but got %s", v.foreignType)
	default:
		return boolFromString(v.str)
	}
}

func (v *value) List() ([]Value, error) {
	switch v.kind {
	case kindList:
		return v.items, nil
	case kindDict:
		out := make([]Value, 0, len(v.keys)*2)
		for _, key := range v.keys {
			out = append(out, newStringValue(key), v.fields[key])
		}
		return out, nil
	case kindString:
		items, err := parseListString(v.str)
		if err != nil {
			return nil, err
		}
		out := make([]Value, len(items))
		for i, item := range items {
			out[i] = newStringValue(item)
		}
		return out, nil
	default:
		return []Value{v}, nil
	}
}

func (v *value) Dict() (map[string]Value, error) {
	switch v.kind {
	case kindDict:
		return v.fields, nil
	case kindList:
		if len(v.items)%2 != 0 {
			return nil, fmt.Errorf("missing value to go with key")
		}
		out := make(map[string]Value, len(v.items)/2)
		for i := 0; i < len(v.items); i += 2 {
			out[v.items[i].String()] = v.items[i+1]
		}
		return out, nil
	case kindString:
		items, err := parseListString(v.str)
		if err != nil {
			return nil, err
		}
		if len(items)%2 != 0 {
			return nil, fmt.Errorf("missing value to go with key")
		}
		out := make(map[string]Value, len(items)/2)
		for i := 0; i < len(items); i += 2 {
			out[items[i]] = newStringValue(items[i+1])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("missing value to go with key")
	}
}

func (v *value) Type() string {
	switch v.kind {
	case kindInt:
		return "int"
	case kindFloat:
		return "double"
	case kindList:
		return "list"
	case kindDict:
		return "dict"
	case kindForeign:
		return v.foreignType
	default:
		return "string"
	}
}

func (v *value) IsNil() bool {
	switch v.kind {
	case kindList:
		return len(v.items) == 0
	case kindDict:
		return len(v.keys) == 0
	case kindInt, kindFloat, kindForeign:
		return false
	default:
		return v.str == ""
	}
}

// NewInt creates an integer Value.
func NewInt(v int64) Value { return &value{kind: kindInt, i: v} }

// NewFloat creates a floating-point Value.
func NewFloat(v float64) Value { return &value{kind: kindFloat, f: v} }

// NewString creates a string Value.
func NewString(s string) Value { return newStringValue(s) }

// NewList creates a list Value from the given items.
func NewList(items ...Value) Value { return &value{kind: kindList, items: items} }

// NewDict creates a dict Value from alternating key/value pairs.
func NewDict(pairs ...Value) Value {
	if len(pairs)%2 != 0 {
		return &value{kind: kindDict}
	}
	keys := make([]string, 0, len(pairs)/2)
	fields := make(map[string]Value, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].String()
		if _, seen := fields[key]; !seen {
			keys = append(keys, key)
		}
		fields[key] = pairs[i+1]
	}
	return &value{kind: kindDict, keys: keys, fields: fields}
}

// NewForeign describes a foreign object by type name and string form.
func NewForeign(typeName, rep string) Value {
	return &value{kind: kindForeign, foreignType: typeName, str: rep, strValid: true}
}

// needsBraces reports whether s must be braced to round-trip as one
// list element.
func needsBraces(s string) bool {
	if s == "" {
		return true
	}
	return strings.ContainsAny(s, " \t\n{}\"")
}

func writeListElement(b *strings.Builder, s string) {
	if needsBraces(s) {
		b.WriteByte('{')
		b.WriteString(s)
		b.WriteByte('}')
		return
	}
	b.WriteString(s)
}

// parseListString parses a Tcl list string into its elements.
func parseListString(s string) ([]string, error) {
	var items []string
	pos := 0
	for pos < len(s) {
		for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n') {
			pos++
		}
		if pos >= len(s) {
			break
		}

		var elem string
		switch s[pos] {
		case '{':
			depth := 1
			start := pos + 1
			pos++
			for pos < len(s) && depth > 0 {
				switch s[pos] {
				case '{':
					depth++
				case '}':
					depth--
				}
				pos++
			}
			if depth != 0 {
				return nil, fmt.Errorf("unmatched brace in list")
			}
			elem = s[start : pos-1]
		case '"':
			start := pos + 1
			pos++
			for pos < len(s) && s[pos] != '"' {
				if s[pos] == '\\' && pos+1 < len(s) {
					pos++
				}
				pos++
			}
			if pos >= len(s) {
				return nil, fmt.Errorf("unmatched quote in list")
			}
			elem = s[start:pos]
			pos++
		default:
			start := pos
			for pos < len(s) && s[pos] != ' ' && s[pos] != '\t' && s[pos] != '\n' {
				pos++
			}
			elem = s[start:pos]
		}
		items = append(items, elem)
	}
	return items, nil
}
