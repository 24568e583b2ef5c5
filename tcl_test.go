package tcl_test

import (
	"errors"
	"testing"

	"github.com/feather-lang/tcl"
)

func TestEvalExpr(t *testing.T) {
	interp := tcl.New()
	result, err := interp.Eval("expr {2 + 2}")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "4" {
		t.Errorf("expected '4', got %q", result.String())
	}
}

func TestSetVarInterpolation(t *testing.T) {
	interp := tcl.New()
	interp.SetVar("name", "World")
	result, err := interp.Eval(`set greeting "Hello, $name!"`)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "Hello, World!" {
		t.Errorf("expected 'Hello, World!', got %q", result.String())
	}
}

func TestVarRoundTrip(t *testing.T) {
	interp := tcl.New()
	interp.SetVar("x", 42)
	v := interp.Var("x")
	n, err := v.Int()
	if err != nil {
		t.Fatalf("Int() failed: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}
}

func TestRegisterSimple(t *testing.T) {
	interp := tcl.New()
	interp.Register("double", func(x int) int { return x * 2 })
	result, err := interp.Eval("double 21")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "42" {
		t.Errorf("expected '42', got %q", result.String())
	}
}

func TestRegisterError(t *testing.T) {
	interp := tcl.New()
	interp.Register("divide", func(a, b int) (int, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	})

	if _, err := interp.Eval("divide 10 2"); err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if _, err := interp.Eval("divide 10 0"); err == nil {
		t.Fatal("expected an error from divide 10 0")
	}
}

func TestRegisterCommandLowLevel(t *testing.T) {
	interp := tcl.New()
	interp.RegisterCommand("sum", func(i *tcl.Interp, cmd string, args []tcl.Value) tcl.Result {
		if len(args) != 2 {
			return tcl.Errorf("wrong # args: should be \"%s a b\"", cmd)
		}
		a, err := args[0].Int()
		if err != nil {
			return tcl.Error(err.Error())
		}
		b, err := args[1].Int()
		if err != nil {
			return tcl.Error(err.Error())
		}
		return tcl.OK(a + b)
	})

	result, err := interp.Eval("sum 3 4")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if result.String() != "7" {
		t.Errorf("expected '7', got %q", result.String())
	}
}

func TestListAndDictValues(t *testing.T) {
	interp := tcl.New()
	result, err := interp.Eval("list a b c")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	items, err := result.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(items) != 3 || items[1].String() != "b" {
		t.Errorf("unexpected list %v", items)
	}

	d, err := interp.Eval("dict create name Alice age 30")
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	dv, err := d.Dict()
	if err != nil {
		t.Fatalf("Dict() failed: %v", err)
	}
	if dv["name"].String() != "Alice" {
		t.Errorf("expected Alice, got %q", dv["name"].String())
	}
}

func TestParseIncomplete(t *testing.T) {
	interp := tcl.New()
	pr := interp.Parse("set x {")
	if pr.Status != tcl.ParseIncomplete {
		t.Errorf("expected ParseIncomplete, got %v", pr.Status)
	}

	pr = interp.Parse("set x 1")
	if pr.Status != tcl.ParseOK {
		t.Errorf("expected ParseOK, got %v", pr.Status)
	}
}

func TestEvalErrorCarriesMessage(t *testing.T) {
	interp := tcl.New()
	_, err := interp.Eval("error {boom}")
	if err == nil {
		t.Fatal("expected an error")
	}
	var evalErr *tcl.EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *tcl.EvalError, got %T", err)
	}
	if evalErr.Message != "boom" {
		t.Errorf("expected 'boom', got %q", evalErr.Message)
	}
}

func TestCallConvertsArguments(t *testing.T) {
	interp := tcl.New()
	result, err := interp.Call("expr", "3 + 4")
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if result.String() != "7" {
		t.Errorf("expected '7', got %q", result.String())
	}
}
