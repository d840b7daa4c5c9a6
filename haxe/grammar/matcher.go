package grammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/hxparse/haxe/parser"
)

type memoKey struct {
	name   string
	offset int
}

// Matcher matches the lexical productions of a grammar against raw input.
// Repetitions are greedy and alternatives take the longest match, which is
// enough for the token-level productions of the expression grammar.
type Matcher struct {
	grammar  ebnf.Grammar
	input    []byte
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection
}

func NewMatcher(g ebnf.Grammar, input []byte) *Matcher {
	return &Matcher{
		grammar:  g,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
}

// Match returns the length of the longest match of production name at
// offset, or 0.
func (m *Matcher) Match(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := m.memo[key]; ok {
		return max(n, 0)
	}
	if m.visiting[key] {
		return 0
	}

	prod, ok := m.grammar[name]
	if !ok || prod.Expr == nil {
		m.memo[key] = -1
		return 0
	}

	m.visiting[key] = true
	n := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	if n == 0 {
		m.memo[key] = -1
	} else {
		m.memo[key] = n
	}
	return n
}

// Longest tries each production at offset and returns the one with the
// longest match. Earlier productions win ties.
func (m *Matcher) Longest(offset int, names ...string) (string, int) {
	bestName, bestLen := "", 0
	for _, name := range names {
		if n := m.Match(name, offset); n > bestLen {
			bestName, bestLen = name, n
		}
	}
	return bestName, bestLen
}

func (m *Matcher) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return m.matchToken(e.String, offset)

	case *ebnf.Range:
		return m.matchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := m.match(item, offset+total)
			if n == 0 && !optional(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			best = max(best, m.match(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := m.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return m.match(e.Body, offset)

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.Match(e.String, offset)
	}
	return 0
}

// optional reports whether expr may match the empty string, so a zero
// length result inside a sequence is not a failure.
func optional(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	}
	return false
}

func (m *Matcher) matchToken(tok string, offset int) int {
	if tok == "" || offset+len(tok) > len(m.input) {
		return 0
	}
	if string(m.input[offset:offset+len(tok)]) == tok {
		return len(tok)
	}
	return 0
}

func (m *Matcher) matchRange(begin, end string, offset int) int {
	if offset >= len(m.input) || len(begin) != 1 || len(end) != 1 {
		return 0
	}
	if ch := m.input[offset]; ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}

// tokenProductions maps lexer token kinds to the lexical production that
// describes them.
var tokenProductions = map[parser.TokenKind]string{
	parser.TokenIntLiteral:    "int_lit",
	parser.TokenFloatLiteral:  "float_lit",
	parser.TokenStringLiteral: "string_lit",
	parser.TokenIdent:         "identifier",
}

var literalProductions = []string{"identifier", "int_lit", "float_lit", "string_lit"}

// CrossCheck lexes src with the parser's lexer and checks every literal and
// identifier token against the lexical productions of g. It returns one
// error per token the two disagree on.
func CrossCheck(g ebnf.Grammar, src []byte) []error {
	m := NewMatcher(g, src)
	var errs []error
	for _, tok := range parser.Tokenize(src, "") {
		want, ok := tokenProductions[tok.Kind]
		if !ok {
			continue
		}
		name, n := m.Longest(tok.Start(), literalProductions...)
		if name != want || n != len(tok.Literal) {
			got := "nothing"
			if n > 0 {
				got = fmt.Sprintf("%s %q", name, src[tok.Start():tok.Start()+n])
			}
			errs = append(errs, fmt.Errorf("%s: lexer produced %s %q, grammar matches %s",
				tok.Span.Start, tok.Kind, tok.Literal, got))
		}
	}
	return errs
}
