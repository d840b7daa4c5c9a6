// Package script parses a buffer as a sequence of top-level Haxe
// expressions separated by semicolons.
package script

import (
	"context"
	"fmt"
	"sort"

	"github.com/dhamidi/hxparse/haxe/parser"
)

type Script struct {
	File        string
	Expressions []*parser.Node
	Diagnostics []parser.Diagnostic
}

// Parse parses every expression in src. Cancellation is checked between
// expressions; a single expression always runs to completion.
func Parse(ctx context.Context, src []byte, file string) (*Script, error) {
	s := &Script{File: file}
	p := parser.NewParser(parser.Tokenize(src, file), parser.WithFile(file))

	var own []parser.Diagnostic
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}

		for p.Peek().Kind == parser.TokenSemicolon {
			p.Advance()
		}
		if p.Peek().Kind == parser.TokenEOF {
			break
		}

		s.Expressions = append(s.Expressions, p.ParseExpression())

		tok := p.Peek()
		if tok.Kind == parser.TokenSemicolon || tok.Kind == parser.TokenEOF {
			continue
		}
		if !reportedAt(p, tok.Start()) {
			own = append(own, parser.Diagnostic{
				Offset:  tok.Start(),
				Span:    tok.Span,
				Message: "expected ';' after expression, found " + tok.String(),
			})
		}
		skipStatement(p)
	}

	s.Diagnostics = append(p.Diagnostics(), own...)
	sort.SliceStable(s.Diagnostics, func(i, j int) bool {
		return s.Diagnostics[i].Offset < s.Diagnostics[j].Offset
	})
	return s, nil
}

func reportedAt(p *parser.Parser, offset int) bool {
	diags := p.Diagnostics()
	return len(diags) > 0 && diags[len(diags)-1].Offset == offset
}

// skipStatement advances past the rest of the current statement. It always
// consumes at least one token.
func skipStatement(p *parser.Parser) {
	for {
		switch p.Peek().Kind {
		case parser.TokenEOF:
			return
		case parser.TokenSemicolon:
			p.Advance()
			return
		}
		p.Advance()
	}
}

// NodeAt returns the innermost expression node containing offset.
func (s *Script) NodeAt(offset int) *parser.Node {
	for _, expr := range s.Expressions {
		if n := expr.NodeAt(offset); n != nil {
			return n
		}
	}
	return nil
}

// HasErrors reports whether any diagnostic was produced.
func (s *Script) HasErrors() bool {
	return len(s.Diagnostics) > 0
}
