package script

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/hxparse/format"
)

func sexprs(s *Script) []string {
	out := make([]string, len(s.Expressions))
	for i, expr := range s.Expressions {
		out[i] = format.Sexpr(expr)
	}
	return out
}

func TestParse(t *testing.T) {
	s, err := Parse(context.Background(), []byte("a = 1;; b + 2;\n// done\nnew Foo(a)"), "s.hx")
	require.NoError(t, err)
	assert.Equal(t, "s.hx", s.File)
	assert.Equal(t, []string{"(= a 1)", "(+ b 2)", "(new Foo a)"}, sexprs(s))
	assert.False(t, s.HasErrors())
}

func TestParseEmpty(t *testing.T) {
	s, err := Parse(context.Background(), []byte("  ;; /* nothing */ "), "")
	require.NoError(t, err)
	assert.Empty(t, s.Expressions)
	assert.False(t, s.HasErrors())
}

func TestParseMissingSemicolon(t *testing.T) {
	s, err := Parse(context.Background(), []byte("a b c; d"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "d"}, sexprs(s))
	require.Len(t, s.Diagnostics, 1)
	assert.Equal(t, 2, s.Diagnostics[0].Offset)
	assert.Equal(t, `expected ';' after expression, found "b"`, s.Diagnostics[0].Message)
}

func TestParseRecoversPerStatement(t *testing.T) {
	s, err := Parse(context.Background(), []byte("f(1;\nx = ) + 2;\ng()"), "")
	require.NoError(t, err)
	require.Len(t, s.Expressions, 3)
	assert.True(t, s.Expressions[0].IsError())
	assert.True(t, s.Expressions[1].IsError())
	assert.Equal(t, "(call g)", format.Sexpr(s.Expressions[2]))

	require.Len(t, s.Diagnostics, 2)
	assert.Equal(t, 3, s.Diagnostics[0].Offset)
	assert.Equal(t, "expected ')' to close argument list", s.Diagnostics[0].Message)
	assert.Equal(t, 9, s.Diagnostics[1].Offset)
	for i := 1; i < len(s.Diagnostics); i++ {
		assert.LessOrEqual(t, s.Diagnostics[i-1].Offset, s.Diagnostics[i].Offset)
	}
}

func TestParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, []byte("a; b"), "c.hx")
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "c.hx")
}

func TestNodeAt(t *testing.T) {
	s, err := Parse(context.Background(), []byte("a + b; foo.bar"), "")
	require.NoError(t, err)
	require.NotNil(t, s.NodeAt(4))
	assert.Equal(t, "b", s.NodeAt(4).Name)
	assert.Equal(t, "bar", s.NodeAt(11).Name)
	assert.Nil(t, s.NodeAt(5))
}
