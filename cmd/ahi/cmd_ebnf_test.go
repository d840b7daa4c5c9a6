package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runEbnf(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newEbnfCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCheckBuiltinGrammar(t *testing.T) {
	out, err := runEbnf(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "productions ok")
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ebnf")
	require.NoError(t, os.WriteFile(good, []byte(`S = "a" T . T = "b" .`), 0o644))
	out, err := runEbnf(t, "check", "--start", "S", good)
	require.NoError(t, err)
	assert.Equal(t, "2 productions ok\n", out)

	bad := filepath.Join(dir, "bad.ebnf")
	require.NoError(t, os.WriteFile(bad, []byte(`S = "a" Missing .`), 0o644))
	out, err = runEbnf(t, "check", "--start", "S", bad)
	require.Error(t, err)
	assert.Contains(t, out, "Missing")
}

func TestPrintGrammar(t *testing.T) {
	out, err := runEbnf(t, "print")
	require.NoError(t, err)
	assert.Contains(t, out, "Expression     = Assignment .")
}

func TestLexCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.hx")
	require.NoError(t, os.WriteFile(path, []byte(`a = 0x10 + "b\n" * 2.5`), 0o644))
	out, err := runEbnf(t, "lex", path)
	require.NoError(t, err)
	assert.Equal(t, "lexer agrees with grammar\n", out)

	require.NoError(t, os.WriteFile(path, []byte(`a + "open`), 0o644))
	_, err = runEbnf(t, "lex", path)
	assert.EqualError(t, err, "1 mismatches")
}
