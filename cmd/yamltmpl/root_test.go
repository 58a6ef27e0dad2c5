package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

func TestRunRendersTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", `hello: ${{ $name }}`+"\n")
	var buf bytes.Buffer
	opts := &options{bindings: []argBinding{{Name: "name", Value: "world"}}}
	err := run(tmplPath, opts, &buf)
	require.NoError(t, err)
	require.Equal(t, "hello: world\n", buf.String())
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", `x: ${{ .y }}`+"\n")
	cfgPath := writeFile(t, dir, "c.yaml", "y: 1\n")
	var buf bytes.Buffer
	opts := &options{configPath: cfgPath}
	err := run(tmplPath, opts, &buf)
	require.NoError(t, err)
	require.Equal(t, "x: 1\n", buf.String())
}

func TestRunWithArgYAML(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", `x: ${{ $n }}`+"\n")
	var buf bytes.Buffer
	opts := &options{bindings: []argBinding{{Name: "n", Value: "42", YAML: true}}}
	err := run(tmplPath, opts, &buf)
	require.NoError(t, err)
	require.Equal(t, "x: 42\n", buf.String())
}

func TestRunLaterArgOverridesEarlier(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", `x: ${{ $n }}`+"\n")
	var buf bytes.Buffer
	opts := &options{bindings: []argBinding{
		{Name: "n", Value: "first"},
		{Name: "n", Value: "second"},
	}}
	err := run(tmplPath, opts, &buf)
	require.NoError(t, err)
	require.Equal(t, "x: second\n", buf.String())
}

func TestRunWritesToOutFile(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", "a: 1\n")
	outPath := filepath.Join(dir, "out.yaml")
	opts := &options{outPath: outPath}
	err := run(tmplPath, opts, &bytes.Buffer{})
	require.NoError(t, err)
	got, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(got))
}

func TestRunSurfacesSpannedError(t *testing.T) {
	dir := t.TempDir()
	tmplPath := writeFile(t, dir, "t.yaml", `x: ${{ .missing }}`+"\n")
	var buf bytes.Buffer
	err := run(tmplPath, &options{}, &buf)
	require.Error(t, err)
	require.Regexp(t, `^t\.yaml:\d+:\d+ `, err.Error())
}
