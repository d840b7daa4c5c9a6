package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Name     string      `json:"name,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type jsonError struct {
	Message string   `json:"message"`
	Offset  int      `json:"offset"`
	Partial string   `json:"partial,omitempty"`
	Got     string   `json:"got,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON())
}

func (n *Node) toJSON() *jsonNode {
	jn := &jsonNode{
		Kind: n.Kind.String(),
		Span: &jsonSpan{Start: n.Span.Start.Offset, End: n.Span.End.Offset},
		Name: n.Name,
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = &jsonError{
			Message: n.Error.Message,
			Offset:  n.Error.Offset,
		}
		if n.Error.Partial != KindError {
			jn.Error.Partial = n.Error.Partial.String()
		}
		if n.Error.Got != nil {
			jn.Error.Got = n.Error.Got.Literal
		}
		for _, tok := range n.Error.Skipped {
			jn.Error.Skipped = append(jn.Error.Skipped, tok.Literal)
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON()
		}
	}

	return jn
}

func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Offset  int    `json:"offset"`
		Line    int    `json:"line"`
		Column  int    `json:"column"`
		Message string `json:"message"`
	}{d.Offset, d.Span.Start.Line, d.Span.Start.Column, d.Message})
}
