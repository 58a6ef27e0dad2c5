package emit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willabides/yamltmpl/value"
)

func TestDocumentsScalars(t *testing.T) {
	out, err := Documents([]value.Value{value.NewInteger(1)})
	require.NoError(t, err)
	require.Equal(t, "1\n", string(out))
}

func TestDocumentsMultipleSeparatedByDashes(t *testing.T) {
	out, err := Documents([]value.Value{value.NewInteger(1), value.NewInteger(2)})
	require.NoError(t, err)
	require.Equal(t, "1\n---\n2\n", string(out))
}

func TestDocumentsMap(t *testing.T) {
	h := value.NewHash([]value.Entry{{Key: value.NewString("a"), Value: value.NewInteger(1)}})
	out, err := Documents([]value.Value{h})
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(out))
}

func TestDocumentsStringNeedingQuotes(t *testing.T) {
	out, err := Documents([]value.Value{value.NewString("true")})
	require.NoError(t, err)
	require.Equal(t, "\"true\"\n", string(out))
}

func TestDocumentsPlainString(t *testing.T) {
	out, err := Documents([]value.Value{value.NewString("hello")})
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(out))
}

func TestDocumentsEmpty(t *testing.T) {
	out, err := Documents(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestIsBase60Float(t *testing.T) {
	require.True(t, isBase60Float("1:30:00"))
	require.False(t, isBase60Float("hello"))
}

func TestIsOldBool(t *testing.T) {
	require.True(t, isOldBool("yes"))
	require.False(t, isOldBool("hello"))
}
