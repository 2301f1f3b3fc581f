package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motching/ginger-go/value"
)

func TestScopeLookupWalksParentChain(t *testing.T) {
	root := newScope(nil)
	root.set("a", value.IntNumber(1))
	child := newScope(root)
	child.set("b", value.IntNumber(2))

	v, ok := child.lookup("a")
	require.True(t, ok)
	assert.Equal(t, "1", value.ToText(v))

	v, ok = child.lookup("b")
	require.True(t, ok)
	assert.Equal(t, "2", value.ToText(v))

	_, ok = root.lookup("b")
	assert.False(t, ok, "a parent frame cannot see a child's bindings")
}

func TestScopeSetOnlyAffectsOwnFrame(t *testing.T) {
	root := newScope(nil)
	root.set("x", value.IntNumber(1))
	child := newScope(root)
	child.set("x", value.IntNumber(2))

	v, _ := child.lookup("x")
	assert.Equal(t, "2", value.ToText(v))
	v, _ = root.lookup("x")
	assert.Equal(t, "1", value.ToText(v), "a child's set must not mutate the parent frame")
}

func TestBindArgsPositional(t *testing.T) {
	sc := newScope(nil)
	bindArgs(sc, []string{"a", "b"}, []value.Argument{
		{Value: value.IntNumber(1)},
		{Value: value.IntNumber(2)},
	})
	va, _ := sc.lookup("a")
	vb, _ := sc.lookup("b")
	assert.Equal(t, "1", value.ToText(va))
	assert.Equal(t, "2", value.ToText(vb))
}

func TestBindArgsNamedTakesPriorityThenPositionalFillsRemaining(t *testing.T) {
	sc := newScope(nil)
	name := "b"
	bindArgs(sc, []string{"a", "b", "c"}, []value.Argument{
		{Name: &name, Value: value.String("named-b")},
		{Value: value.String("first-positional")},
		{Value: value.String("second-positional")},
	})
	va, _ := sc.lookup("a")
	vb, _ := sc.lookup("b")
	vc, _ := sc.lookup("c")
	assert.Equal(t, "first-positional", value.ToText(va))
	assert.Equal(t, "named-b", value.ToText(vb))
	assert.Equal(t, "second-positional", value.ToText(vc))
}

func TestBindArgsUnfilledTrailingParamsBindNull(t *testing.T) {
	sc := newScope(nil)
	bindArgs(sc, []string{"a", "b"}, []value.Argument{{Value: value.IntNumber(1)}})
	vb, ok := sc.lookup("b")
	require.True(t, ok, "unfilled params are still bound, to Null")
	assert.Equal(t, value.KindNull, vb.Kind())
}
