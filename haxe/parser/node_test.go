package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *Result {
	t.Helper()
	return ParseExpression([]byte(src))
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a + b", "Binary +\n  Identifier a\n  Identifier b\n"},
		{"f(1)", "Call\n  Identifier f\n  Literal 1\n"},
		{"x.y", "FieldAccess y\n  Identifier x\n"},
		{"new Foo<Bar>()", "New Foo\n  TypeName Foo\n    TypeName Bar\n"},
		{"1 +", "Error ERROR: expected expression, found end of input\n  Literal 1\n  Error ERROR: expected expression, found end of input\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parse(t, tt.input).Node.String(); got != tt.want {
				t.Errorf("String() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestNodeStringWithPositions(t *testing.T) {
	got := parse(t, "a + b").Node.StringWithPositions()
	want := "Binary [1:1-1:6] +\n  Identifier [1:1-1:2] a\n  Identifier [1:5-1:6] b\n"
	assert.Equal(t, want, got)
}

func TestNodeWalk(t *testing.T) {
	n := parse(t, "a + b * c").Node
	var names []string
	n.Walk(func(c *Node) bool {
		if c.Kind == KindIdentifier {
			names = append(names, c.Name)
		}
		return true
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)

	visited := 0
	complete := n.Walk(func(c *Node) bool {
		visited++
		return c.Kind != KindIdentifier
	})
	assert.False(t, complete)
	assert.Equal(t, 2, visited)
}

func TestNodeHasError(t *testing.T) {
	assert.False(t, parse(t, "f(a, b)").Node.HasError())
	assert.True(t, parse(t, "f(a, )").Node.HasError())

	var nilNode *Node
	assert.Nil(t, nilNode.Left())
	assert.Nil(t, nilNode.NodeAt(0))
}

func TestNodeLiteralKind(t *testing.T) {
	tests := map[string]LiteralKind{
		"1":     LiteralInt,
		"0x1F":  LiteralInt,
		"1.0":   LiteralFloat,
		`"s"`:   LiteralString,
		"true":  LiteralBool,
		"false": LiteralBool,
		"null":  LiteralNull,
		"x":     LiteralInvalid,
	}
	for input, want := range tests {
		assert.Equal(t, want, parse(t, input).Node.LiteralKind(), "input %q", input)
	}
	assert.Equal(t, "float", LiteralFloat.String())
}

func TestNodeAccessors(t *testing.T) {
	n := parse(t, "c ? x[i] : -y").Node
	require.Equal(t, KindTernary, n.Kind)
	assert.Equal(t, "c", n.Condition().Name)
	assert.Equal(t, KindArrayAccess, n.Then().Kind)
	assert.Equal(t, "x", n.Then().Target().Name)
	assert.Equal(t, "i", n.Then().Index().Name)
	assert.Equal(t, "-", n.Else().Operator())
	assert.Equal(t, "y", n.Else().Operand().Name)
	assert.Nil(t, n.Arguments())
	assert.Nil(t, n.TypeName())

	call := parse(t, "f(1, 2)").Node
	assert.Equal(t, "f", call.Callee().Name)
	assert.Len(t, call.Arguments(), 2)
	assert.Equal(t, "", call.Operator())
}

func TestNodeMarshalJSON(t *testing.T) {
	data, err := json.Marshal(parse(t, "a + 1").Node)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Binary", got["kind"])
	assert.Equal(t, "+", got["token"])
	assert.Equal(t, map[string]any{"start": 0.0, "end": 5.0}, got["span"])
	children, ok := got["children"].([]any)
	require.True(t, ok)
	require.Len(t, children, 2)
	assert.Equal(t, "a", children[0].(map[string]any)["name"])

	data, err = json.Marshal(parse(t, "f(a b)").Node)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"partial":"Call"`)
	assert.Contains(t, string(data), `"skipped":["b"]`)
}

func TestDiagnosticMarshalJSON(t *testing.T) {
	res := parse(t, "a +\n")
	require.Len(t, res.Diagnostics, 1)
	data, err := json.Marshal(res.Diagnostics[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"offset":4,"line":2,"column":1,"message":"expected expression, found end of input"}`, string(data))
}
