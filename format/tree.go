package format

import (
	"strings"

	"github.com/dhamidi/hxparse/haxe/parser"
)

// Sexpr renders node as a compact s-expression, for example
// "(+ a (* b c))" for "a + b * c".
func Sexpr(node *parser.Node) string {
	var b strings.Builder
	writeSexpr(&b, node)
	return b.String()
}

func writeSexpr(b *strings.Builder, node *parser.Node) {
	if node == nil {
		b.WriteString("nil")
		return
	}

	head := ""
	children := node.Children
	switch node.Kind {
	case parser.KindLiteral:
		b.WriteString(node.TokenLiteral())
		return
	case parser.KindIdentifier:
		b.WriteString(node.Name)
		return
	case parser.KindTypeName:
		b.WriteString(typeNameString(node))
		return
	case parser.KindUnary, parser.KindBinary, parser.KindAssignment:
		head = node.Operator()
	case parser.KindPostfix:
		head = "postfix" + node.Operator()
	case parser.KindTernary:
		head = "?"
	case parser.KindCall:
		head = "call"
	case parser.KindNew:
		head = "new"
	case parser.KindFieldAccess:
		head = "."
		children = append(children[:len(children):len(children)], &parser.Node{Kind: parser.KindIdentifier, Name: node.Name})
	case parser.KindArrayAccess:
		head = "[]"
	case parser.KindArrayLiteral:
		head = "array"
	case parser.KindGrouping:
		head = "group"
	case parser.KindError:
		head = "error"
		if node.Error != nil && node.Error.Partial != parser.KindError {
			head += ":" + node.Error.Partial.String()
		}
	}

	b.WriteString("(" + head)
	for _, child := range children {
		b.WriteString(" ")
		writeSexpr(b, child)
	}
	b.WriteString(")")
}

func typeNameString(node *parser.Node) string {
	if len(node.Children) == 0 {
		return node.Name
	}
	params := make([]string, len(node.Children))
	for i, param := range node.Children {
		params[i] = typeNameString(param)
	}
	return node.Name + "<" + strings.Join(params, ",") + ">"
}

// Tree renders node as an indented outline, one node per line.
func Tree(node *parser.Node, withPositions bool) string {
	if node == nil {
		return ""
	}
	if withPositions {
		return strings.TrimSuffix(node.StringWithPositions(), "\n")
	}
	return strings.TrimSuffix(node.String(), "\n")
}
