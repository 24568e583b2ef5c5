package memhost

import (
	"math"
	"strconv"

	"github.com/feather-lang/tcl/core"
)

func (h *Host) DblCreate(v float64) core.Handle {
	return h.reg.intern(newDblObj(v))
}

func (h *Host) DblGet(v core.Handle) (float64, error) {
	o := h.reg.get(v)
	if o == nil {
		return 0, core.ErrNotAList
	}
	f, ok := o.asDouble()
	if !ok {
		return 0, &valueError{"expected floating-point number but got \"" + o.String() + "\""}
	}
	return f, nil
}

func (h *Host) DblClassify(v core.Handle) string {
	f, err := h.DblGet(v)
	if err != nil {
		return "normal"
	}
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 0):
		return "inf"
	case f == 0:
		return "zero"
	default:
		return "normal"
	}
}

func (h *Host) DblFormat(v core.Handle, spec byte, precision int) core.Handle {
	f, err := h.DblGet(v)
	if err != nil {
		return h.StrNew("")
	}
	return h.StrNew(strconv.FormatFloat(f, spec, precision, 64))
}

// DblMath implements the host-mediated double arithmetic operator used
// by expr for any binary op with a double operand; domain errors (e.g.
// division by zero) are reported as Go errors, left for the caller to
// turn into a TCL-visible message.
func (h *Host) DblMath(op string, a, b core.Handle) (core.Handle, error) {
	af, err := h.DblGet(a)
	if err != nil {
		return 0, err
	}
	bf, err := h.DblGet(b)
	if err != nil {
		return 0, err
	}
	switch op {
	case "+":
		return h.DblCreate(af + bf), nil
	case "-":
		return h.DblCreate(af - bf), nil
	case "*":
		return h.DblCreate(af * bf), nil
	case "/":
		if bf == 0 {
			return 0, core.ErrMathDomain
		}
		return h.DblCreate(af / bf), nil
	case "%":
		if bf == 0 {
			return 0, core.ErrMathDomain
		}
		return h.DblCreate(math.Mod(af, bf)), nil
	case "**":
		return h.DblCreate(math.Pow(af, bf)), nil
	}
	return 0, &valueError{"unsupported floating point operator \"" + op + "\""}
}
