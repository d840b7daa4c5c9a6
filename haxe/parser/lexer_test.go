package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func literals(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Literal
	}
	return out
}

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("a + b"), "Expr.hx")
	pos := lexer.Position()

	want := Position{File: "Expr.hx", Offset: 0, Line: 1, Column: 1}
	if pos != want {
		t.Errorf("Position() = %+v, want %+v", pos, want)
	}
}

func TestLexerShiftFamily(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a >>> b", []string{"a", ">>>", "b", ""}},
		{"a >>>= b", []string{"a", ">>>=", "b", ""}},
		{"a >>= b", []string{"a", ">>=", "b", ""}},
		{"a >> b", []string{"a", ">>", "b", ""}},
		{"a >= b", []string{"a", ">=", "b", ""}},
		{"a > b", []string{"a", ">", "b", ""}},
		{"a>>>>b", []string{"a", ">>>", ">", "b", ""}},
		{"a <<= b << c <= d", []string{"a", "<<=", "b", "<<", "c", "<=", "d", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := literals(Tokenize([]byte(tt.input), ""))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexerOperators(t *testing.T) {
	input := "( ) [ ] { } , ; . : ? = == != < <= > >= && || ! & | ^ ~ << >> >>> + - * / % ++ -- ... -> => += -= *= /= %= &= |= ^= <<= >>= >>>="
	want := []TokenKind{
		TokenLParen, TokenRParen, TokenLBracket, TokenRBracket, TokenLBrace, TokenRBrace,
		TokenComma, TokenSemicolon, TokenDot, TokenColon, TokenQuestion,
		TokenAssign, TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE,
		TokenAnd, TokenOr, TokenNot, TokenBitAnd, TokenBitOr, TokenBitXor, TokenBitNot,
		TokenShl, TokenShr, TokenUShr,
		TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenIncrement, TokenDecrement, TokenInterval, TokenArrow, TokenFatArrow,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign, TokenPercentAssign,
		TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign,
		TokenEOF,
	}
	if diff := cmp.Diff(want, kinds(Tokenize([]byte(input), ""))); diff != "" {
		t.Errorf("operator kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenIntLiteral},
		{"42", TokenIntLiteral},
		{"0xFF", TokenIntLiteral},
		{"1.5", TokenFloatLiteral},
		{"1e10", TokenFloatLiteral},
		{"2.5E-3", TokenFloatLiteral},
		{`"hi"`, TokenStringLiteral},
		{`'it\'s'`, TokenStringLiteral},
		{`"unterminated`, TokenStringLiteral},
		{"foo", TokenIdent},
		{"_bar9", TokenIdent},
		{"new", TokenNew},
		{"true", TokenTrue},
		{"false", TokenFalse},
		{"null", TokenNull},
		{"this", TokenThis},
		{"super", TokenSuper},
		{"return", TokenKeyword},
		{"function", TokenKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize([]byte(tt.input), "")
			if len(tokens) != 2 {
				t.Fatalf("Tokenize(%q) = %d tokens, want 2", tt.input, len(tokens))
			}
			if tokens[0].Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tokens[0].Kind, tt.kind)
			}
			if tokens[0].Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tokens[0].Literal, tt.input)
			}
		})
	}
}

func TestLexerIntervalIsNotFloat(t *testing.T) {
	got := kinds(Tokenize([]byte("1...3"), ""))
	want := []TokenKind{TokenIntLiteral, TokenInterval, TokenIntLiteral, TokenEOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("1...3 mismatch (-want +got):\n%s", diff)
	}

	got = kinds(Tokenize([]byte("1e"), ""))
	want = []TokenKind{TokenIntLiteral, TokenIdent, TokenEOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("1e mismatch (-want +got):\n%s", diff)
	}
}

func TestLexerInvalidCharacter(t *testing.T) {
	tokens := Tokenize([]byte("a # é b"), "")
	want := []TokenKind{TokenIdent, TokenInvalid, TokenInvalid, TokenIdent, TokenEOF}
	if diff := cmp.Diff(want, kinds(tokens)); diff != "" {
		t.Fatalf("kinds mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Literal != "é" {
		t.Errorf("invalid rune literal = %q, want %q", tokens[2].Literal, "é")
	}
}

func TestLexerTrivia(t *testing.T) {
	l := NewLexer([]byte("a // line\n/* block */ b"), "")
	var got []TokenKind
	for {
		tok := l.NextToken()
		got = append(got, tok.Kind)
		if tok.Kind == TokenEOF {
			break
		}
	}
	want := []TokenKind{TokenIdent, TokenWhitespace, TokenLineComment, TokenWhitespace, TokenComment, TokenWhitespace, TokenIdent, TokenEOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("trivia mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"a", "b", ""}, literals(Tokenize([]byte("a // line\n/* block */ b"), ""))); diff != "" {
		t.Errorf("Tokenize kept trivia (-want +got):\n%s", diff)
	}
}

func TestLexerOffsetsAreMonotonic(t *testing.T) {
	src := []byte("x = new Map<String, Array<Int>>(a >>> 2, 'q') ? f(y)[0] : -z # done")
	tokens := Tokenize(src, "")
	prevEnd := 0
	for i, tok := range tokens {
		if tok.Start() < prevEnd {
			t.Errorf("token %d %v starts at %d before previous end %d", i, tok.Kind, tok.Start(), prevEnd)
		}
		if tok.End() < tok.Start() {
			t.Errorf("token %d %v ends before it starts", i, tok.Kind)
		}
		if got := string(src[tok.Start():tok.End()]); got != tok.Literal {
			t.Errorf("token %d literal %q does not match source %q", i, tok.Literal, got)
		}
		prevEnd = tok.End()
	}
	if last := tokens[len(tokens)-1]; last.Kind != TokenEOF || last.Start() != len(src) {
		t.Errorf("last token = %v at %d, want EOF at %d", last.Kind, last.Start(), len(src))
	}
}

func TestLexerLineAndColumn(t *testing.T) {
	tokens := Tokenize([]byte("a +\n  bb"), "f.hx")
	bb := tokens[2]
	want := Span{
		Start: Position{File: "f.hx", Offset: 6, Line: 2, Column: 3},
		End:   Position{File: "f.hx", Offset: 8, Line: 2, Column: 5},
	}
	if diff := cmp.Diff(want, bb.Span); diff != "" {
		t.Errorf("span mismatch (-want +got):\n%s", diff)
	}
}
