package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motching/ginger-go/value/html"
)

func TestToBoolean(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"zero", IntNumber(0), false},
		{"nonzero", IntNumber(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("x"), true},
		{"empty list", List(nil), false},
		{"nonempty list", List([]Value{Null()}), true},
		{"empty object", Object(), false},
		{"nonempty object", Object(KV{"a", Null()}), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ToBoolean(c.v))
		})
	}
}

func TestToText(t *testing.T) {
	assert.Equal(t, "", ToText(Null()))
	assert.Equal(t, "true", ToText(Bool(true)))
	assert.Equal(t, "false", ToText(Bool(false)))
	assert.Equal(t, "3", ToText(IntNumber(3)))
	assert.Equal(t, "hi", ToText(String("hi")))
	assert.Equal(t, "ab", ToText(List([]Value{String("a"), String("b")})))
}

func TestObjectBuilderDuplicateKeyOverwritesInPlace(t *testing.T) {
	v := Object(KV{"a", IntNumber(1)}, KV{"b", IntNumber(2)}, KV{"a", IntNumber(3)})
	assert.Equal(t, "31", ToText(v), "duplicate key overwrites value but keeps original position")

	keys := IterKeys(v)
	require.Len(t, keys, 2)
	assert.Equal(t, "a", ToText(keys[0]))
	assert.Equal(t, "b", ToText(keys[1]))
}

func TestToListAndIterKeysLockstep(t *testing.T) {
	v := List([]Value{String("x"), String("y"), String("z")})
	vals := ToList(v)
	keys := IterKeys(v)
	require.Len(t, vals, 3)
	require.Len(t, keys, 3)
	for i, want := range []string{"x", "y", "z"} {
		assert.Equal(t, int64(i), mustDecimal(t, keys[i]).IntPart())
		assert.Equal(t, want, ToText(vals[i]))
	}
}

func TestToListOverStringIsPerRune(t *testing.T) {
	vals := ToList(String("hi"))
	require.Len(t, vals, 2)
	assert.Equal(t, "h", ToText(vals[0]))
	assert.Equal(t, "i", ToText(vals[1]))
}

func TestLookupLooseList(t *testing.T) {
	v := List([]Value{String("a"), String("b")})
	got, ok := LookupLoose(IntNumber(1), v)
	require.True(t, ok)
	assert.Equal(t, "b", ToText(got))

	_, ok = LookupLoose(IntNumber(5), v)
	assert.False(t, ok, "out-of-range index reports not found")
}

func TestLookupLooseObject(t *testing.T) {
	v := Object(KV{"name", String("ada")})
	got, ok := LookupLoose(String("name"), v)
	require.True(t, ok)
	assert.Equal(t, "ada", ToText(got))

	_, ok = LookupLoose(String("missing"), v)
	assert.False(t, ok)
}

func TestToHTMLEscapesPlainValuesButNotHTML(t *testing.T) {
	assert.Equal(t, "&lt;b&gt;", ToHTML(String("<b>")).String())

	raw := FromHTML(html.UnsafeRaw("<b>"))
	assert.Equal(t, "<b>", ToHTML(raw).String())
}

func TestDecimalRoundTrip(t *testing.T) {
	d, ok := Decimal(IntNumber(42))
	require.True(t, ok)
	assert.Equal(t, int64(42), d.IntPart())

	_, ok = Decimal(String("42"))
	assert.False(t, ok)
}

func TestToFunction(t *testing.T) {
	fn := Func(func(args []Argument) (Value, error) { return IntNumber(int64(len(args))), nil })
	f, ok := ToFunction(fn)
	require.True(t, ok)
	out, err := f([]Argument{{Value: Null()}, {Value: Null()}})
	require.NoError(t, err)
	assert.Equal(t, "2", ToText(out))

	_, ok = ToFunction(Null())
	assert.False(t, ok)
}

func mustDecimal(t *testing.T, v Value) decimal.Decimal {
	t.Helper()
	d, ok := Decimal(v)
	require.True(t, ok)
	return d
}
