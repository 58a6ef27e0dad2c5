package template

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willabides/yamltmpl/exprast"
)

func TestParseLiteralOnly(t *testing.T) {
	ft, err := Parse("t.yaml", []byte("a: 1\n"))
	require.NoError(t, err)
	require.Len(t, ft.Docs, 1)
	m := ft.Docs[0].Node
	require.Equal(t, MapNode, m.Kind)
	require.Len(t, m.Map.Entries, 1)
}

func TestParseScalarExpression(t *testing.T) {
	ft, err := Parse("t.yaml", []byte(`hello: ${{ "world" }}` + "\n"))
	require.NoError(t, err)
	entry := ft.Docs[0].Node.Map.Entries[0]
	segs := entry.Value.Scalar.Segments
	require.Len(t, segs, 1)
	require.Equal(t, ExprSegment, segs[0].Kind)
	require.Equal(t, exprast.ExprStmt, segs[0].Expr.Kind)
	require.Equal(t, exprast.Str, segs[0].Expr.Expr.Kind)
	require.Equal(t, "world", segs[0].Expr.Expr.Text)
}

func TestParseMultiSegmentScalar(t *testing.T) {
	ft, err := Parse("t.yaml", []byte(`x: pre-${{ "a" }}-post`+"\n"))
	require.NoError(t, err)
	segs := ft.Docs[0].Node.Map.Entries[0].Value.Scalar.Segments
	require.Len(t, segs, 3)
	require.Equal(t, LiteralSegment, segs[0].Kind)
	require.Equal(t, "pre-", segs[0].Literal)
	require.Equal(t, ExprSegment, segs[1].Kind)
	require.Equal(t, LiteralSegment, segs[2].Kind)
	require.Equal(t, "-post", segs[2].Literal)
}

func TestParseRejectsAlias(t *testing.T) {
	_, err := Parse("t.yaml", []byte("a: &x 1\nb: *x\n"))
	require.Error(t, err)
}

func TestParseRejectsTaggedPlainScalar(t *testing.T) {
	_, err := Parse("t.yaml", []byte("a: !!str 1\n"))
	require.Error(t, err)
}

func TestParseAcceptsTaggedQuotedScalarAsString(t *testing.T) {
	ft, err := Parse("t.yaml", []byte(`a: !!str "1"`+"\n"))
	require.NoError(t, err)
	require.Equal(t, ScalarNode, ft.Docs[0].Node.Map.Entries[0].Value.Kind)
}

func TestParseSequence(t *testing.T) {
	ft, err := Parse("t.yaml", []byte("- 1\n- 2\n"))
	require.NoError(t, err)
	require.Equal(t, SequenceNode, ft.Docs[0].Node.Kind)
	require.Len(t, ft.Docs[0].Node.Sequence.Items, 2)
}

func TestMapSpanCorrectedToKeyStart(t *testing.T) {
	ft, err := Parse("t.yaml", []byte("parent:\n  x: 1\n"))
	require.NoError(t, err)
	m := ft.Docs[0].Node.Map.Entries[0].Value
	require.Equal(t, 2, m.Span.Start.Line)
	require.Equal(t, 3, m.Span.Start.Column)
}
