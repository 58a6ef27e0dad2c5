package interp

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willabides/yamltmpl/template"
	"github.com/willabides/yamltmpl/value"
)

func run(t *testing.T, tmpl, config string, vars Variables) []value.Value {
	t.Helper()
	ft, err := template.Parse("t.yaml", []byte(tmpl))
	require.NoError(t, err)
	cfg := value.NewNull()
	if config != "" {
		cfg, err = value.Decode("c.yaml", []byte(config))
		require.NoError(t, err)
	}
	if vars == nil {
		vars = Variables{}
	}
	docs, err := Run(ft, cfg, vars)
	require.NoError(t, err)
	return docs
}

func decodeOne(t *testing.T, s string) value.Value {
	t.Helper()
	v, err := value.Decode("expected.yaml", []byte(s))
	require.NoError(t, err)
	return v
}

func TestScenarioScalarExpression(t *testing.T) {
	docs := run(t, `hello: ${{ "world" }}`+"\n", "", nil)
	require.Len(t, docs, 1)
	require.True(t, value.Equal(docs[0], decodeOne(t, "hello: world\n")))
}

// A template scalar with no "${{ ... }}" is a single Literal segment,
// which §4.4.4 always evaluates to Yaml(String(text)) — a plain "1" in
// the template becomes Value::String("1"), not Value::Integer(1), even
// though a config document's "1" would decode to Integer: template
// literals never go through the plain-scalar resolution that
// value.Decode applies; see DESIGN.md.
func TestScenarioIdentity(t *testing.T) {
	docs := run(t, "a: 1\n", "", nil)
	expected := value.NewHash([]value.Entry{{Key: value.NewString("a"), Value: value.NewString("1")}})
	require.True(t, value.Equal(docs[0], expected))
}

func TestScenarioInlineMergesIntoParent(t *testing.T) {
	tmpl := "parent:\n  ${{ inline }}: { x: 1, y: 2 }\n  z: 3\n"
	docs := run(t, tmpl, "", nil)
	inner := value.NewHash([]value.Entry{
		{Key: value.NewString("x"), Value: value.NewString("1")},
		{Key: value.NewString("y"), Value: value.NewString("2")},
		{Key: value.NewString("z"), Value: value.NewString("3")},
	})
	expected := value.NewHash([]value.Entry{{Key: value.NewString("parent"), Value: inner}})
	require.True(t, value.Equal(docs[0], expected))
}

func TestScenarioSingletonDropDocument(t *testing.T) {
	docs := run(t, "${{ drop }}: _\n", "", nil)
	require.Len(t, docs, 0)
}

func TestScenarioDropWithSibling(t *testing.T) {
	docs := run(t, "${{ drop }}: _\nkeep: 1\n", "", nil)
	expected := value.NewHash([]value.Entry{{Key: value.NewString("keep"), Value: value.NewString("1")}})
	require.True(t, value.Equal(docs[0], expected))
}

func TestScenarioForOverArray(t *testing.T) {
	tmpl := "${{ for $u in .users }}:\n  - ${{ $u }}\n"
	docs := run(t, tmpl, "users: [alice, bob]\n", nil)
	require.True(t, value.Equal(docs[0], decodeOne(t, "[alice, bob]\n")))
}

func TestScenarioIfTrue(t *testing.T) {
	tmpl := "${{ if .flag }}:\n  included: yes\n"
	docs := run(t, tmpl, "flag: true\n", nil)
	// "yes" is a literal scalar (no "${{ ... }}"), so it evaluates to
	// Value::String("yes"), not a resolved Boolean — see
	// TestScenarioIdentity above.
	expected := value.NewHash([]value.Entry{{Key: value.NewString("included"), Value: value.NewString("yes")}})
	require.True(t, value.Equal(docs[0], expected))
}

func TestScenarioIfFalseYieldsNothing(t *testing.T) {
	tmpl := "${{ if .flag }}:\n  included: yes\n"
	docs := run(t, tmpl, "flag: false\n", nil)
	require.Len(t, docs, 0)
}

func TestScenarioMissingIndexError(t *testing.T) {
	ft, err := template.Parse("t.yaml", []byte("x: ${{ .missing }}\n"))
	require.NoError(t, err)
	cfg := decodeOne(t, "{}\n")
	_, err = Run(ft, cfg, Variables{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "index")
	require.Contains(t, err.Error(), "not found")
	require.Regexp(t, `^t\.yaml:\d+:\d+ `, err.Error())
}

func TestEqualityIdempotence(t *testing.T) {
	docs := run(t, `x: ${{ "a" == "a" }}`+"\n", "", nil)
	require.True(t, value.Equal(docs[0], decodeOne(t, "x: true\n")))
}

func TestInlineDropAreDistinctSentinels(t *testing.T) {
	docs := run(t, `x: ${{ inline == drop }}`+"\n", "", nil)
	require.True(t, value.Equal(docs[0], decodeOne(t, "x: false\n")))
}

func TestForOverHash(t *testing.T) {
	tmpl := "${{ for $k, $v in .m }}:\n  ${{ $k }}: ${{ $v }}\n"
	docs := run(t, tmpl, "m: {a: 1, b: 2}\n", nil)
	require.True(t, value.Equal(docs[0], decodeOne(t, "{a: 1, b: 2}\n")))
}

func TestVariableFromCLI(t *testing.T) {
	vars := Variables{"name": value.NewString("Ada")}
	docs := run(t, `greet: ${{ $name }}`+"\n", "", vars)
	require.True(t, value.Equal(docs[0], decodeOne(t, "greet: Ada\n")))
}

func TestDropNonSingletonSkipsEntry(t *testing.T) {
	tmpl := "a: 1\n${{ drop }}: _\nb: 2\n"
	docs := run(t, tmpl, "", nil)
	expected := value.NewHash([]value.Entry{
		{Key: value.NewString("a"), Value: value.NewString("1")},
		{Key: value.NewString("b"), Value: value.NewString("2")},
	})
	require.True(t, value.Equal(docs[0], expected))
}

func TestSequenceInline(t *testing.T) {
	tmpl := "- 1\n- ${{ inline }}: [2, 3]\n- 4\n"
	docs := run(t, tmpl, "", nil)
	expected := value.NewArray([]value.Value{
		value.NewString("1"), value.NewString("2"), value.NewString("3"), value.NewString("4"),
	})
	require.True(t, value.Equal(docs[0], expected))
}
