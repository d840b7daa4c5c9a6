// Package grammar ships the EBNF description of the expressions accepted by
// package parser.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"unicode"

	"golang.org/x/exp/ebnf"
)

//go:embed expression.ebnf
var source []byte

const (
	Filename = "expression.ebnf"
	Start    = "Expression"
)

// Source returns the grammar text.
func Source() []byte {
	return bytes.Clone(source)
}

func Parse() (ebnf.Grammar, error) {
	g, err := ebnf.Parse(Filename, bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", Filename, err)
	}
	return g, nil
}

// Verify checks that every production is defined and reachable from Start.
func Verify() error {
	g, err := Parse()
	if err != nil {
		return err
	}
	if err := ebnf.Verify(g, Start); err != nil {
		return fmt.Errorf("verify %s: %w", Filename, err)
	}
	return nil
}

// Terminals returns the sorted literal tokens used by syntactic
// productions, such as operators and keywords.
func Terminals(g ebnf.Grammar) []string {
	seen := map[string]bool{}
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		collectTokens(prod.Expr, seen)
	}
	terminals := make([]string, 0, len(seen))
	for tok := range seen {
		terminals = append(terminals, tok)
	}
	sort.Strings(terminals)
	return terminals
}

func collectTokens(expr ebnf.Expression, seen map[string]bool) {
	switch x := expr.(type) {
	case ebnf.Alternative:
		for _, e := range x {
			collectTokens(e, seen)
		}
	case ebnf.Sequence:
		for _, e := range x {
			collectTokens(e, seen)
		}
	case *ebnf.Group:
		collectTokens(x.Body, seen)
	case *ebnf.Option:
		collectTokens(x.Body, seen)
	case *ebnf.Repetition:
		collectTokens(x.Body, seen)
	case *ebnf.Token:
		seen[x.String] = true
	}
}

func isLexical(name string) bool {
	for _, r := range name {
		return !unicode.IsUpper(r)
	}
	return false
}
