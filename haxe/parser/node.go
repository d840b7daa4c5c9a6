package parser

import "strings"

type NodeKind int

const (
	KindError NodeKind = iota

	KindLiteral
	KindIdentifier
	KindUnary
	KindPostfix
	KindBinary
	KindAssignment
	KindTernary
	KindCall
	KindNew
	KindTypeName
	KindFieldAccess
	KindArrayAccess
	KindArrayLiteral
	KindGrouping
)

var nodeKindNames = map[NodeKind]string{
	KindError:        "Error",
	KindLiteral:      "Literal",
	KindIdentifier:   "Identifier",
	KindUnary:        "Unary",
	KindPostfix:      "Postfix",
	KindBinary:       "Binary",
	KindAssignment:   "Assignment",
	KindTernary:      "Ternary",
	KindCall:         "Call",
	KindNew:          "New",
	KindTypeName:     "TypeName",
	KindFieldAccess:  "FieldAccess",
	KindArrayAccess:  "ArrayAccess",
	KindArrayLiteral: "ArrayLiteral",
	KindGrouping:     "Grouping",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// LiteralKind classifies a KindLiteral node by its token.
type LiteralKind int

const (
	LiteralInvalid LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralBool
	LiteralNull
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralString:
		return "string"
	case LiteralBool:
		return "bool"
	case LiteralNull:
		return "null"
	}
	return "invalid"
}

type Error struct {
	Message string
	// Offset is the byte offset the diagnostic for this error points at.
	Offset int
	// Partial is the kind the node would have had if parsing had succeeded.
	Partial NodeKind
	Got     *Token
	// Skipped holds the tokens consumed while synchronizing.
	Skipped []Token
}

// Node is one expression in the syntax tree. The meaning of Token, Name and
// Children depends on Kind:
//
//	Literal       Token=literal
//	Identifier    Token=identifier, Name
//	Unary         Token=operator, Children=[operand]
//	Postfix       Token=operator, Children=[operand]
//	Binary        Token=operator, Children=[left, right]
//	Assignment    Token=operator, Children=[target, value]
//	Ternary       Token='?', Children=[condition, then, else]
//	Call          Token='(', Children=[callee, arguments...]
//	New           Token='new', Name=type name, Children=[TypeName, arguments...]
//	TypeName      Token=first identifier, Name=dotted name, Children=type parameters
//	FieldAccess   Token=field, Name=field, Children=[target]
//	ArrayAccess   Token='[', Children=[target, index]
//	ArrayLiteral  Token='[', Children=elements
//	Grouping      Token='(', Children=[inner]
//	Error         Token=offending token, Children=partial children
type Node struct {
	Kind     NodeKind
	Span     Span
	Token    *Token
	Name     string
	Children []*Node
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

// HasError reports whether n or any of its descendants is an Error node.
func (n *Node) HasError() bool {
	found := false
	n.Walk(func(c *Node) bool {
		if c.IsError() {
			found = true
		}
		return !found
	})
	return found
}

// Walk visits n and its descendants in depth-first order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// NodeAt returns the innermost node whose span contains offset.
func (n *Node) NodeAt(offset int) *Node {
	if n == nil || !n.Span.Contains(offset) {
		return nil
	}
	for _, child := range n.Children {
		if found := child.NodeAt(offset); found != nil {
			return found
		}
	}
	return n
}

func (n *Node) child(i int) *Node {
	if n == nil || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Operator returns the operator text of Unary, Postfix, Binary and
// Assignment nodes.
func (n *Node) Operator() string {
	switch n.Kind {
	case KindUnary, KindPostfix, KindBinary, KindAssignment:
		return n.TokenLiteral()
	}
	return ""
}

func (n *Node) Operand() *Node   { return n.child(0) }
func (n *Node) Left() *Node      { return n.child(0) }
func (n *Node) Right() *Node     { return n.child(1) }
func (n *Node) Value() *Node     { return n.child(1) }
func (n *Node) Condition() *Node { return n.child(0) }
func (n *Node) Then() *Node      { return n.child(1) }
func (n *Node) Else() *Node      { return n.child(2) }
func (n *Node) Callee() *Node    { return n.child(0) }
func (n *Node) Index() *Node     { return n.child(1) }
func (n *Node) Inner() *Node     { return n.child(0) }

// Target is the assignment target, or the object of a field or array access.
func (n *Node) Target() *Node { return n.child(0) }

// TypeName returns the TypeName child of a New node.
func (n *Node) TypeName() *Node {
	if n.Kind == KindNew || n.Kind == KindError {
		if c := n.child(0); c != nil && c.Kind == KindTypeName {
			return c
		}
	}
	return nil
}

// Arguments returns the argument list of a Call or New node.
func (n *Node) Arguments() []*Node {
	switch n.Kind {
	case KindCall, KindNew:
		if len(n.Children) > 1 {
			return n.Children[1:]
		}
	}
	return nil
}

func (n *Node) LiteralKind() LiteralKind {
	if n.Kind != KindLiteral || n.Token == nil {
		return LiteralInvalid
	}
	switch n.Token.Kind {
	case TokenIntLiteral:
		return LiteralInt
	case TokenFloatLiteral:
		return LiteralFloat
	case TokenStringLiteral:
		return LiteralString
	case TokenTrue, TokenFalse:
		return LiteralBool
	case TokenNull:
		return LiteralNull
	}
	return LiteralInvalid
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	var b strings.Builder
	n.writeIndent(&b, indent, showPositions)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if showPositions {
		b.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	switch {
	case n.Name != "":
		b.WriteString(" " + n.Name)
	case n.Kind == KindLiteral:
		b.WriteString(" " + n.TokenLiteral())
	case n.Operator() != "":
		b.WriteString(" " + n.Operator())
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message)
	}
	b.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
