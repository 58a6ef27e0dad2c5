package exprlex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/willabides/yamltmpl/source"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	l := New("test.yaml", source.Pos{Line: 1, Column: 1}, []byte(src))
	var toks []Token
	for {
		tok, err := l.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == End {
			return toks
		}
	}
}

func TestLexerBasic(t *testing.T) {
	toks := lexAll(t, `${{ $foo.bar[0] == "hi" }}`)
	var kinds []Kind
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []Kind{Start, Variable, Dot, Ident, LBracket, Integer, RBracket, Eq, String, End}, kinds)
	require.Equal(t, "foo", toks[1].Text)
	require.Equal(t, "bar", toks[3].Text)
	require.Equal(t, int64(0), toks[5].Int)
	require.Equal(t, "hi", toks[8].Text)
}

func TestLexerNumbers(t *testing.T) {
	toks := lexAll(t, `${{ 42 -7 3.14 1e10 99999999999999999999 }}`)
	require.Equal(t, Integer, toks[1].Kind)
	require.Equal(t, int64(42), toks[1].Int)
	require.Equal(t, Integer, toks[2].Kind)
	require.Equal(t, int64(-7), toks[2].Int)
	require.Equal(t, Real, toks[3].Kind)
	require.Equal(t, Real, toks[4].Kind)
	require.Equal(t, Real, toks[5].Kind)
}

func TestLexerStringEscapes(t *testing.T) {
	toks := lexAll(t, `${{ "a\nb\tc\"dA" }}`)
	require.Equal(t, "a\nb\tc\"dA", toks[1].Text)
}

func TestLexerAstralPlaneCharacter(t *testing.T) {
	toks := lexAll(t, `${{ "😀" }}`)
	require.Equal(t, "😀", toks[1].Text)
}

func TestLexerNotEquals(t *testing.T) {
	toks := lexAll(t, `${{ inline != drop }}`)
	require.Equal(t, Ident, toks[1].Kind)
	require.Equal(t, Ne, toks[2].Kind)
	require.Equal(t, Ident, toks[3].Kind)
}

func TestLexerUnterminated(t *testing.T) {
	l := New("test.yaml", source.Pos{Line: 1, Column: 1}, []byte(`${{ $x`))
	_, err := l.Next() // Start
	require.NoError(t, err)
	_, err = l.Next() // Variable
	require.NoError(t, err)
	_, err = l.Next() // should fail: missing }}
	require.Error(t, err)
}

func FuzzLexer(f *testing.F) {
	f.Add(`${{ $foo.bar[0] == "hi" }}`)
	f.Add(`${{ for $x in $y }}`)
	f.Add(`${{ "😀" }}`)
	f.Add(`${{ 1e400 }}`)
	f.Fuzz(func(t *testing.T, s string) {
		src := "${{" + s
		l := New("fuzz.yaml", source.Pos{Line: 1, Column: 1}, []byte(src))
		for i := 0; i < 10000; i++ {
			tok, err := l.Next()
			if err != nil {
				return
			}
			if tok.Kind == End {
				return
			}
		}
	})
}
