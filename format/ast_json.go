package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/hxparse/haxe/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

type astJSONResult struct {
	Node        *parser.Node        `json:"node"`
	Next        int                 `json:"next"`
	Incomplete  bool                `json:"incomplete,omitempty"`
	Diagnostics []parser.Diagnostic `json:"diagnostics,omitempty"`
}

func (e *ASTJSONEncoder) Encode(res *parser.Result) error {
	text, err := e.MarshalText(res)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *ASTJSONEncoder) MarshalText(res *parser.Result) ([]byte, error) {
	return json.MarshalIndent(astJSONResult{
		Node:        res.Node,
		Next:        res.Next,
		Incomplete:  res.Incomplete,
		Diagnostics: res.Diagnostics,
	}, "", "  ")
}
