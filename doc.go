// Package tcl provides an embeddable Tcl-family command interpreter.
//
// # Architecture
//
// tcl has a layered architecture:
//
//   - core: the language engine. Parsing, substitution, evaluation and
//     command dispatch, expressed purely against a capability interface
//     ([github.com/feather-lang/tcl/core.Host]) so it never allocates a
//     value, opens a file, or touches a clock on its own.
//   - memhost: the default, in-memory implementation of that capability
//     interface — handle registry, shimmering value representation,
//     frame stack, namespace tree, variable tables.
//   - tcl (this package): a friendly, handle-free embedding API layered
//     on the two above, the way an application wants to use it.
//
// # Quick start
//
//	interp := tcl.New()
//	result, err := interp.Eval("set x 42; expr {$x * 2}")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.String()) // "84"
//
// # Registering Go functions
//
// [Interp.Register] exposes a Go function with automatic argument
// conversion:
//
//	interp.Register("greet", func(name string) string {
//	    return "Hello, " + name + "!"
//	})
//	result, _ := interp.Eval(`greet World`)
//	// result.String() == "Hello, World!"
//
// Supported parameter types: string, int, int64, float64, bool,
// []string. Supported return types: string, int, int64, float64, bool,
// error, or (T, error).
//
// For full control over argument handling and the command's reported
// result, use [Interp.RegisterCommand]:
//
//	interp.RegisterCommand("sum", func(i *tcl.Interp, cmd string, args []tcl.Value) tcl.Result {
//	    if len(args) < 2 {
//	        return tcl.Errorf("wrong # args: should be \"%s a b\"", cmd)
//	    }
//	    a, err := args[0].Int()
//	    if err != nil {
//	        return tcl.Error(err.Error())
//	    }
//	    b, err := args[1].Int()
//	    if err != nil {
//	        return tcl.Error(err.Error())
//	    }
//	    return tcl.OK(a + b)
//	})
//
// # Working with values
//
// [Value] represents a script-level value and supports shimmering (lazy
// type conversion) the way the underlying engine does:
//
//	s := interp.String("hello")
//	n := interp.Int(42)
//	list := interp.List(interp.String("a"), interp.Int(1))
//
// Reads are plain methods: v.Int(), v.Float(), v.Bool(), v.List(), v.Dict().
//
// # Parsing
//
// [Interp.Parse] reports whether a script fragment is syntactically
// complete, for building REPL-style front ends that need to detect
// unclosed braces/brackets/quotes before deciding to execute.
package tcl
