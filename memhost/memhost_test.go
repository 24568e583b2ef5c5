package memhost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feather-lang/tcl/core"
	"github.com/feather-lang/tcl/memhost"
)

func TestStringShimmerPreservesValue(t *testing.T) {
	h := memhost.New()
	s := h.StrNew("hello world")
	assert.Equal(t, "hello world", h.StrGo(s))
	assert.Equal(t, 11, h.StrByteLength(s))
	assert.Equal(t, "hello", h.StrGo(h.StrSlice(s, 0, 5)))
}

func TestIntShimmerFromStringAndBack(t *testing.T) {
	h := memhost.New()
	s := h.StrNew("42")
	n, err := h.IntGet(s)
	require.NoError(t, err)
	assert.EqualValues(t, 42, n)

	bad := h.StrNew("not-a-number")
	_, err = h.IntGet(bad)
	assert.Error(t, err)
}

func TestDoubleMathDivisionByZero(t *testing.T) {
	h := memhost.New()
	a := h.DblCreate(1)
	b := h.DblCreate(0)
	_, err := h.DblMath("/", a, b)
	assert.ErrorIs(t, err, core.ErrMathDomain)
}

func TestListCopyOnWrite(t *testing.T) {
	h := memhost.New()
	l1 := h.ListFrom([]core.Handle{h.StrNew("a"), h.StrNew("b")})
	l2 := h.ListPush(l1, h.StrNew("c"))

	assert.Equal(t, 2, h.ListLength(l1), "original list must not mutate")
	assert.Equal(t, 3, h.ListLength(l2))
	assert.Equal(t, "c", h.StrGo(h.ListAt(l2, 2)))
}

func TestListFromStringShimmersToElements(t *testing.T) {
	h := memhost.New()
	s := h.StrNew("a {b c} d")
	assert.Equal(t, 3, h.ListLength(s))
	assert.Equal(t, "b c", h.StrGo(h.ListAt(s, 1)))
}

func TestDictCopyOnWriteAndOrder(t *testing.T) {
	h := memhost.New()
	d1 := h.DictCreate()
	d1 = h.DictSet(d1, "a", h.IntCreate(1))
	d2 := h.DictSet(d1, "b", h.IntCreate(2))

	assert.Equal(t, []string{"a"}, h.DictKeys(d1))
	assert.Equal(t, []string{"a", "b"}, h.DictKeys(d2))
	v, ok := h.DictGet(d2, "b")
	require.True(t, ok)
	n, _ := h.IntGet(v)
	assert.EqualValues(t, 2, n)
}

func TestFrameStackPushPopAndLevels(t *testing.T) {
	h := memhost.New()
	base := h.FrameLevel()
	lvl := h.FramePush("::")
	assert.Equal(t, base+1, lvl)
	assert.Equal(t, lvl, h.FrameLevel())
	h.FramePop()
	assert.Equal(t, base, h.FrameLevel())
}

func TestVarLinkResolvesTransparently(t *testing.T) {
	h := memhost.New()
	h.VarSet(0, "g", h.StrNew("original"))
	lvl := h.FramePush("::")
	defer h.FramePop()

	require.NoError(t, h.VarLink(lvl, "alias", 0, "g"))
	v, ok := h.VarGet(lvl, "alias")
	require.True(t, ok)
	assert.Equal(t, "original", h.StrGo(v))

	h.VarSet(lvl, "alias", h.StrNew("changed"))
	v, ok = h.VarGet(0, "g")
	require.True(t, ok)
	assert.Equal(t, "changed", h.StrGo(v))
}

func TestNamespaceCreateAndVariables(t *testing.T) {
	h := memhost.New()
	h.NSCreate("::foo::bar")
	assert.True(t, h.NSExists("::foo::bar"))
	assert.True(t, h.NSExists("::foo"))

	h.NSSetVar("::foo::bar", "x", h.IntCreate(7))
	v, ok := h.NSGetVar("::foo::bar", "x")
	require.True(t, ok)
	n, _ := h.IntGet(v)
	assert.EqualValues(t, 7, n)
}

func TestNamespaceDeleteRemovesDescendants(t *testing.T) {
	h := memhost.New()
	h.NSCreate("::a::b::c")
	require.NoError(t, h.NSDelete("::a"))
	assert.False(t, h.NSExists("::a"))
	assert.False(t, h.NSExists("::a::b"))
	assert.False(t, h.NSExists("::a::b::c"))
}

func TestCommandRegistrationIsIdempotentLastWriterWins(t *testing.T) {
	h := memhost.New()
	h.NSCreate("::")
	h.NSSetCommand("::", "greet", core.CommandEntry{Kind: core.CmdBuiltin, Name: "::greet", BuiltinName: "::greetV1"})
	h.NSSetCommand("::", "greet", core.CommandEntry{Kind: core.CmdBuiltin, Name: "::greet", BuiltinName: "::greetV2"})

	entry, ok := h.NSGetCommand("::", "greet")
	require.True(t, ok)
	assert.Equal(t, "::greetV2", entry.BuiltinName)
}

func TestGlobMatchWithCharacterClass(t *testing.T) {
	h := memhost.New()
	assert.True(t, h.StrGlobMatch(h.StrNew("file[0-9].txt"), h.StrNew("file5.txt"), false))
	assert.False(t, h.StrGlobMatch(h.StrNew("file[0-9].txt"), h.StrNew("fileA.txt"), false))
	assert.True(t, h.StrGlobMatch(h.StrNew("*.go"), h.StrNew("main.go"), false))
}

func TestRegexMatchReportsCaptureRanges(t *testing.T) {
	h := memhost.New()
	matched, matches, ranges, err := h.StrRegexMatch(h.StrNew(`(\d+)-(\d+)`), h.StrNew("range 10-20 here"), false)
	require.NoError(t, err)
	require.True(t, matched)
	require.Len(t, matches, 3)
	assert.Equal(t, "10-20", h.StrGo(matches[0]))
	assert.Equal(t, "10", h.StrGo(matches[1]))
	assert.Equal(t, "20", h.StrGo(matches[2]))
	assert.Len(t, ranges, 3)
}

func TestForeignValueRoundTrip(t *testing.T) {
	h := memhost.New()
	payload := map[string]int{"count": 0}
	f := h.NewForeign("Counter", "<Counter>", []string{"incr", "get"}, payload, func(method string, args []string) (string, error) {
		switch method {
		case "incr":
			payload["count"]++
			return "", nil
		case "get":
			return "0", nil
		}
		return "", nil
	})

	assert.True(t, h.IsForeign(f))
	assert.Equal(t, "Counter", h.ForeignTypeName(f))
	assert.Equal(t, []string{"incr", "get"}, h.ForeignMethods(f))

	_, err := h.ForeignInvoke(f, "incr", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, payload["count"])
}

func TestUnknownDelegatesToRegisteredCommand(t *testing.T) {
	h := memhost.New()
	ip := core.NewInterp(h)
	code := ip.EvalScript(h.StrNew("this-command-does-not-exist a b"), core.EvalLocal)
	assert.Equal(t, core.ResultError, code)
	assert.Contains(t, h.StrGo(h.GetResult()), "invalid command name")
}
