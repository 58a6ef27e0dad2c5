package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeScalars(t *testing.T) {
	v, err := Decode("t.yaml", []byte("42\n"))
	require.NoError(t, err)
	require.Equal(t, Integer, v.Kind())
	require.Equal(t, int64(42), v.AsInteger())

	v, err = Decode("t.yaml", []byte("true\n"))
	require.NoError(t, err)
	require.Equal(t, Boolean, v.Kind())
	require.True(t, v.AsBool())

	v, err = Decode("t.yaml", []byte("null\n"))
	require.NoError(t, err)
	require.Equal(t, Null, v.Kind())

	v, err = Decode("t.yaml", []byte("3.14\n"))
	require.NoError(t, err)
	require.Equal(t, Real, v.Kind())
	require.Equal(t, "3.14", v.AsString())
}

func TestDecodeEmptyIsNull(t *testing.T) {
	v, err := Decode("t.yaml", []byte(""))
	require.NoError(t, err)
	require.Equal(t, Null, v.Kind())
}

func TestDecodeMapPreservesOrder(t *testing.T) {
	v, err := Decode("t.yaml", []byte("b: 1\na: 2\n"))
	require.NoError(t, err)
	require.Equal(t, Hash, v.Kind())
	entries := v.Entries()
	require.Equal(t, "b", entries[0].Key.AsString())
	require.Equal(t, "a", entries[1].Key.AsString())
}

func TestDecodeSequence(t *testing.T) {
	v, err := Decode("t.yaml", []byte("- 1\n- 2\n- 3\n"))
	require.NoError(t, err)
	require.Equal(t, Array, v.Kind())
	require.Len(t, v.AsArray(), 3)
}

func TestDecodeRejectsAlias(t *testing.T) {
	_, err := Decode("t.yaml", []byte("a: &x 1\nb: *x\n"))
	require.Error(t, err)
}

func TestDecodeRejectsMultipleDocuments(t *testing.T) {
	_, err := Decode("t.yaml", []byte("a: 1\n---\nb: 2\n"))
	require.Error(t, err)
}

func TestDecodeRejectsTaggedPlainScalar(t *testing.T) {
	_, err := Decode("t.yaml", []byte("a: !!str 1\n"))
	require.Error(t, err)
}

func TestDecodeTaggedQuotedScalarIsString(t *testing.T) {
	v, err := Decode("t.yaml", []byte(`!!str "1"`+"\n"))
	require.NoError(t, err)
	require.Equal(t, String, v.Kind())
	require.Equal(t, "1", v.AsString())
}
