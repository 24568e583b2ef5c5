package tcl

import (
	"fmt"
	"reflect"

	"github.com/feather-lang/tcl/core"
)

// CommandFunc is the low-level signature for [Interp.RegisterCommand]:
// full control over argument handling and the reported result.
type CommandFunc func(i *Interp, cmd string, args []Value) Result

// Result is the outcome of a CommandFunc invocation. Build one with
// [OK], [Error], or [Errorf].
type Result struct {
	isError bool
	val     string
	value   Value
	hasVal  bool
}

// OK returns a successful result. Pass a [Value] to preserve its native
// type; anything else is converted the way [Interp.Call] converts
// arguments.
func OK(v any) Result {
	if val, ok := v.(Value); ok {
		return Result{value: val, hasVal: true}
	}
	return Result{val: fmt.Sprintf("%v", v)}
}

// Error returns a failing result carrying msg as the error message.
func Error(msg string) Result { return Result{isError: true, val: msg} }

// Errorf returns a failing result with a formatted error message.
func Errorf(format string, args ...any) Result {
	return Result{isError: true, val: fmt.Sprintf(format, args...)}
}

// RegisterCommand adds a command using the low-level CommandFunc
// interface. Use this for full control over argument handling; for
// simpler cases use [Interp.Register].
func (i *Interp) RegisterCommand(name string, fn CommandFunc) {
	i.core.RegisterBuiltin(name, func(ip *core.Interp, cmdH core.Handle, argsH []core.Handle) core.Result {
		args := make([]Value, len(argsH))
		for j, h := range argsH {
			args[j] = i.toValue(h)
		}
		r := fn(i, i.host.StrGo(cmdH), args)
		if r.isError {
			return ip.SetError(r.val)
		}
		if r.hasVal {
			ip.Host.SetResult(i.handleFor(r.value))
		} else {
			ip.SetResultString(r.val)
		}
		return core.ResultOK
	})
}

// Register adds a command with automatic argument conversion based on
// fn's Go signature.
//
// Parameter types: string, int, int64, float64, bool, []string, and a
// trailing variadic of any of those. Return types: string, int, int64,
// float64, bool, error, or (T, error).
func (i *Interp) Register(name string, fn any) {
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		panic(fmt.Sprintf("Register: expected function, got %T", fn))
	}

	i.core.RegisterBuiltin(name, func(ip *core.Interp, cmdH core.Handle, argsH []core.Handle) core.Result {
		numIn := fnType.NumIn()
		variadic := fnType.IsVariadic()
		if variadic {
			if len(argsH) < numIn-1 {
				return ip.SetError(fmt.Sprintf("wrong # args: expected at least %d, got %d", numIn-1, len(argsH)))
			}
		} else if len(argsH) != numIn {
			return ip.SetError(fmt.Sprintf("wrong # args: expected %d, got %d", numIn, len(argsH)))
		}

		callArgs := make([]reflect.Value, len(argsH))
		for j, h := range argsH {
			paramType := fnType.In(j)
			if variadic && j >= numIn-1 {
				paramType = fnType.In(numIn - 1).Elem()
			}
			converted, err := convertArg(i, h, paramType)
			if err != nil {
				return ip.SetError(fmt.Sprintf("argument %d: %v", j+1, err))
			}
			callArgs[j] = converted
		}

		results := fnVal.Call(callArgs)
		return processResults(ip, i, results, fnType)
	})
}

func convertArg(i *Interp, h core.Handle, targetType reflect.Type) (reflect.Value, error) {
	switch targetType.Kind() {
	case reflect.String:
		return reflect.ValueOf(i.host.StrGo(h)), nil

	case reflect.Int:
		v, err := i.host.IntGet(h)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(int(v)), nil

	case reflect.Int64:
		v, err := i.host.IntGet(h)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Float64:
		v, err := i.host.DblGet(h)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Bool:
		v, err := boolFromString(i.host.StrGo(h))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Slice:
		n := i.host.ListLength(h)
		if targetType.Elem().Kind() == reflect.String {
			out := make([]string, n)
			for j := 0; j < n; j++ {
				out[j] = i.host.StrGo(i.host.ListAt(h, j))
			}
			return reflect.ValueOf(out), nil
		}
		out := reflect.MakeSlice(targetType, n, n)
		for j := 0; j < n; j++ {
			converted, err := convertArg(i, i.host.ListAt(h, j), targetType.Elem())
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", j, err)
			}
			out.Index(j).Set(converted)
		}
		return out, nil

	case reflect.Interface:
		if targetType.NumMethod() == 0 {
			return reflect.ValueOf(i.host.StrGo(h)), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot convert to interface %v", targetType)

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %v", targetType)
	}
}

func processResults(ip *core.Interp, i *Interp, results []reflect.Value, fnType reflect.Type) core.Result {
	if len(results) == 0 {
		ip.SetResultString("")
		return core.ResultOK
	}

	if fnType.NumOut() > 0 && fnType.Out(fnType.NumOut()-1).Implements(reflect.TypeOf((*error)(nil)).Elem()) {
		last := results[len(results)-1]
		if !last.IsNil() {
			return ip.SetError(last.Interface().(error).Error())
		}
		results = results[:len(results)-1]
	}

	if len(results) == 0 {
		ip.SetResultString("")
		return core.ResultOK
	}

	return convertResult(ip, i, results[0])
}

func convertResult(ip *core.Interp, i *Interp, result reflect.Value) core.Result {
	if !result.IsValid() {
		ip.SetResultString("")
		return core.ResultOK
	}

	switch result.Kind() {
	case reflect.String:
		ip.SetResultString(result.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ip.Host.SetResult(i.host.IntCreate(result.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ip.SetResultString(fmt.Sprintf("%d", result.Uint()))
	case reflect.Float32, reflect.Float64:
		ip.Host.SetResult(i.host.DblCreate(result.Float()))
	case reflect.Bool:
		if result.Bool() {
			ip.Host.SetResult(i.host.IntCreate(1))
		} else {
			ip.Host.SetResult(i.host.IntCreate(0))
		}
	case reflect.Slice:
		items := make([]core.Handle, result.Len())
		for j := range items {
			items[j] = i.handleFor(elemToAny(result.Index(j)))
		}
		ip.Host.SetResult(i.host.ListFrom(items))
	case reflect.Map:
		d := i.host.DictCreate()
		iter := result.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			d = i.host.DictSet(d, key, i.handleFor(elemToAny(iter.Value())))
		}
		ip.Host.SetResult(d)
	case reflect.Ptr, reflect.Interface:
		if result.IsNil() {
			ip.SetResultString("")
			return core.ResultOK
		}
		ip.SetResultString(fmt.Sprintf("%v", result.Interface()))
	default:
		ip.SetResultString(fmt.Sprintf("%v", result.Interface()))
	}
	return core.ResultOK
}

func elemToAny(v reflect.Value) any {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Float32, reflect.Float64:
		return v.Float()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
