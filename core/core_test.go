package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feather-lang/tcl/core"
	"github.com/feather-lang/tcl/memhost"
)

func newInterp() (*core.Interp, *memhost.Host) {
	h := memhost.New()
	return core.NewInterp(h), h
}

func run(t *testing.T, ip *core.Interp, h *memhost.Host, script string) (string, core.Result) {
	t.Helper()
	code := ip.EvalScript(h.StrNew(script), core.EvalLocal)
	return h.StrGo(h.GetResult()), code
}

func TestExprArithmetic(t *testing.T) {
	ip, h := newInterp()

	cases := []struct {
		script string
		want   string
	}{
		{"expr {2 + 2}", "4"},
		{"expr {3 / 2}", "1"},
		{"expr {3.0 / 2}", "1.5"},
		{"expr {7 % 3}", "1"},
		{"expr {-7 % 3}", "2"}, // floor modulo
		{"expr {2 ** 10}", "1024"},
		{"expr {1 < 2 && 2 < 3}", "1"},
		{"expr {\"abc\" eq \"abc\"}", "1"},
	}
	for _, c := range cases {
		got, code := run(t, ip, h, c.script)
		require.Equal(t, core.ResultOK, code, "script %q", c.script)
		assert.Equal(t, c.want, got, "script %q", c.script)
	}
}

func TestExprDivisionByZeroIsError(t *testing.T) {
	ip, h := newInterp()
	_, code := run(t, ip, h, "expr {1 / 0}")
	assert.Equal(t, core.ResultError, code)
}

func TestSetAndVariableSubst(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set x 42; set y "value is $x"; set y`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "value is 42", got)
}

func TestWhileBreakContinue(t *testing.T) {
	ip, h := newInterp()
	script := `
set total 0
set i 0
while {$i < 10} {
	incr i
	if {$i == 5} { continue }
	if {$i > 8} { break }
	set total [expr {$total + $i}]
}
set total`
	got, code := run(t, ip, h, script)
	require.Equal(t, core.ResultOK, code)
	// 1+2+3+4+6+7+8 = 31
	assert.Equal(t, "31", got)
}

func TestForeachMultiVar(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set out {}
foreach {a b} {1 2 3 4} {
	lappend out [expr {$a + $b}]
}
set out`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "3 7", got)
}

func TestCatchCapturesError(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `catch {error "boom"} msg
set msg`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "boom", got)
}

func TestProcCallAndReturn(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `proc add {a b} { return [expr {$a + $b}] }
add 3 4`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "7", got)
}

func TestProcWrongArgs(t *testing.T) {
	ip, h := newInterp()
	_, code := run(t, ip, h, `proc add {a b} { return [expr {$a + $b}] }
add 3`)
	assert.Equal(t, core.ResultError, code)
}

func TestUpvarLinksCallerFrame(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `proc incr_it {name} {
	upvar 1 $name v
	set v [expr {$v + 1}]
}
set counter 10
incr_it counter
set counter`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "11", got)
}

func TestGlobalDeclaresLinkToGlobalFrame(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set g 1
proc bump {} {
	global g
	set g [expr {$g + 1}]
}
bump
bump
set g`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "3", got)
}

func TestNamespaceVariableResolution(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `namespace eval ::foo {
	variable bar 5
}
set ::foo::bar`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "5", got)
}

func TestListBuiltins(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set l [list a b c]
lappend l d
lindex $l 1`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "b", got)
}

func TestLsortDictionary(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `lsort -dictionary {item10 item2 item1}`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "item1 item2 item10", got)
}

func TestDictOperations(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set d [dict create a 1 b 2]
dict set d c 3
dict get $d c`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "3", got)
}

func TestStringOperations(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `string toupper [string trim "  hello  "]`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "HELLO", got)
}

func TestSwitchMatchesGlob(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `switch -glob -- "foobar" {
	foo* { set result matched }
	default { set result none }
}
set result`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "matched", got)
}

func TestTryFinallyRunsRegardlessOfOutcome(t *testing.T) {
	ip, h := newInterp()
	got, code := run(t, ip, h, `set trace {}
try {
	error "boom"
} on error {msg} {
	lappend trace "caught:$msg"
} finally {
	lappend trace done
}
set trace`)
	require.Equal(t, core.ResultOK, code)
	assert.Equal(t, "caught:boom done", got)
}

func TestUnknownCommandIsError(t *testing.T) {
	ip, h := newInterp()
	_, code := run(t, ip, h, "totally-nonexistent-command")
	assert.Equal(t, core.ResultError, code)
}

func TestIncompleteScriptReportsIncomplete(t *testing.T) {
	ip, h := newInterp()
	status, _ := ip.CheckComplete(h.StrNew("set x {"))
	assert.Equal(t, core.ParseIncomplete, status)
}
