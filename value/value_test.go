package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderOverwritesInPlace(t *testing.T) {
	b := NewBuilder()
	b.Insert(NewString("a"), NewInteger(1))
	b.Insert(NewString("b"), NewInteger(2))
	b.Insert(NewString("a"), NewInteger(3))
	h := b.Build()
	require.Equal(t, 2, h.Len())
	entries := h.Entries()
	require.Equal(t, "a", entries[0].Key.AsString())
	require.Equal(t, int64(3), entries[0].Value.AsInteger())
	require.Equal(t, "b", entries[1].Key.AsString())
}

func TestEqualArrayIsOrderSensitive(t *testing.T) {
	a := NewArray([]Value{NewInteger(1), NewInteger(2)})
	b := NewArray([]Value{NewInteger(2), NewInteger(1)})
	require.False(t, Equal(a, b))
	require.True(t, Equal(a, a))
}

func TestEqualHashIsOrderInsensitive(t *testing.T) {
	a := NewHash([]Entry{{NewString("x"), NewInteger(1)}, {NewString("y"), NewInteger(2)}})
	b := NewHash([]Entry{{NewString("y"), NewInteger(2)}, {NewString("x"), NewInteger(1)}})
	require.True(t, Equal(a, b))
}

func TestRealComparesByText(t *testing.T) {
	require.True(t, Equal(NewReal("1.0"), NewReal("1.0")))
	require.False(t, Equal(NewReal("1.0"), NewReal("1.00")))
}

func TestGetMissingKey(t *testing.T) {
	h := NewHash([]Entry{{NewString("a"), NewInteger(1)}})
	_, ok := h.Get(NewString("b"))
	require.False(t, ok)
}
