package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/hxparse/haxe/parser"
)

// Encoder writes a parse result in one output format.
type Encoder interface {
	Encode(res *parser.Result) error
}

type textEncoder struct {
	w      io.Writer
	render func(*parser.Node) string
}

func (e *textEncoder) Encode(res *parser.Result) error {
	if _, err := fmt.Fprintln(e.w, e.render(res.Node)); err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		if _, err := fmt.Fprintf(e.w, "%s: %s\n", d.Span.Start, d.Message); err != nil {
			return err
		}
	}
	return nil
}

// NewEncoder returns the encoder for a format name: json, tree, sexpr or
// source.
func NewEncoder(name string, w io.Writer, withPositions bool) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "tree":
		return &textEncoder{w: w, render: func(n *parser.Node) string {
			return Tree(n, withPositions)
		}}, nil
	case "sexpr":
		return &textEncoder{w: w, render: Sexpr}, nil
	case "source":
		return &textEncoder{w: w, render: Source}, nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
