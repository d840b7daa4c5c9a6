package format

import (
	"strings"

	"github.com/dhamidi/hxparse/haxe/parser"
)

// HaxePrinter prints expression trees back to Haxe source.
type HaxePrinter struct {
	buf strings.Builder
}

// Source returns canonical Haxe text for node. Parsing the result of a
// successful parse again yields a tree of the same shape.
func Source(node *parser.Node) string {
	p := &HaxePrinter{}
	p.printExpr(node)
	return p.buf.String()
}

func (p *HaxePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *HaxePrinter) printExpr(node *parser.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case parser.KindLiteral:
		p.write(node.TokenLiteral())
	case parser.KindIdentifier:
		p.write(node.Name)
	case parser.KindUnary:
		p.printUnary(node)
	case parser.KindPostfix:
		p.printExpr(node.Operand())
		p.write(node.Operator())
	case parser.KindBinary, parser.KindAssignment:
		p.printExpr(node.Left())
		p.write(" " + node.Operator() + " ")
		p.printExpr(node.Right())
	case parser.KindTernary:
		p.printExpr(node.Condition())
		p.write(" ? ")
		p.printExpr(node.Then())
		p.write(" : ")
		p.printExpr(node.Else())
	case parser.KindCall:
		p.printExpr(node.Callee())
		p.printList("(", node.Arguments(), ")")
	case parser.KindNew:
		p.write("new ")
		p.printTypeName(node.TypeName())
		p.printList("(", node.Arguments(), ")")
	case parser.KindTypeName:
		p.printTypeName(node)
	case parser.KindFieldAccess:
		p.printExpr(node.Target())
		p.write("." + node.Name)
	case parser.KindArrayAccess:
		p.printExpr(node.Target())
		p.write("[")
		p.printExpr(node.Index())
		p.write("]")
	case parser.KindArrayLiteral:
		p.printList("[", node.Children, "]")
	case parser.KindGrouping:
		p.write("(")
		p.printExpr(node.Inner())
		p.write(")")
	default:
		p.printError(node)
	}
}

func (p *HaxePrinter) printUnary(node *parser.Node) {
	op := node.Operator()
	operand := Source(node.Operand())
	p.write(op)
	// "- -a" must not turn into "--a".
	if op != "" && operand != "" {
		last := op[len(op)-1]
		if (last == '-' || last == '+') && operand[0] == last {
			p.write(" ")
		}
	}
	p.write(operand)
}

func (p *HaxePrinter) printList(open string, items []*parser.Node, close string) {
	p.write(open)
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(item)
	}
	p.write(close)
}

func (p *HaxePrinter) printTypeName(node *parser.Node) {
	if node == nil {
		return
	}
	p.write(node.Name)
	if len(node.Children) == 0 {
		return
	}
	p.write("<")
	for i, param := range node.Children {
		if i > 0 {
			p.write(", ")
		}
		p.printTypeName(param)
	}
	p.write(">")
}

// printError writes whatever survived of a broken expression.
func (p *HaxePrinter) printError(node *parser.Node) {
	var parts []string
	for _, child := range node.Children {
		if s := Source(child); s != "" {
			parts = append(parts, s)
		}
	}
	if node.Error != nil {
		for _, tok := range node.Error.Skipped {
			parts = append(parts, tok.Literal)
		}
	}
	p.write(strings.Join(parts, " "))
}
