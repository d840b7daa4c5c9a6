package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether offset lies within the half-open span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenInvalid
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenStringLiteral

	// Keywords the expression grammar knows about
	TokenNew
	TokenTrue
	TokenFalse
	TokenNull
	TokenThis
	TokenSuper
	// Any other reserved word
	TokenKeyword

	// Structural
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace
	TokenComma
	TokenSemicolon
	TokenDot
	TokenColon
	TokenQuestion

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenInterval
	TokenArrow
	TokenFatArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenInvalid:       "Invalid",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenNew:           "new",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenThis:          "this",
	TokenSuper:         "super",
	TokenKeyword:       "Keyword",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenComma:         ",",
	TokenSemicolon:     ";",
	TokenDot:           ".",
	TokenColon:         ":",
	TokenQuestion:      "?",
	TokenAssign:        "=",
	TokenEQ:            "==",
	TokenNE:            "!=",
	TokenLT:            "<",
	TokenLE:            "<=",
	TokenGT:            ">",
	TokenGE:            ">=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenNot:           "!",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenBitNot:        "~",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenUShr:          ">>>",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenPercent:       "%",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenInterval:      "...",
	TokenArrow:         "->",
	TokenFatArrow:      "=>",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenPercentAssign: "%=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenUShrAssign:    ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTrivia reports whether tokens of this kind carry no syntax.
func (k TokenKind) IsTrivia() bool {
	return k == TokenWhitespace || k == TokenComment || k == TokenLineComment
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// Start returns the byte offset of the first character of the token.
func (t Token) Start() int { return t.Span.Start.Offset }

// End returns the byte offset just past the token.
func (t Token) End() int { return t.Span.End.Offset }

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Literal)
}

var keywords = map[string]TokenKind{
	"new":   TokenNew,
	"true":  TokenTrue,
	"false": TokenFalse,
	"null":  TokenNull,
	"this":  TokenThis,
	"super": TokenSuper,

	"abstract":   TokenKeyword,
	"break":      TokenKeyword,
	"case":       TokenKeyword,
	"cast":       TokenKeyword,
	"catch":      TokenKeyword,
	"class":      TokenKeyword,
	"continue":   TokenKeyword,
	"default":    TokenKeyword,
	"do":         TokenKeyword,
	"dynamic":    TokenKeyword,
	"else":       TokenKeyword,
	"enum":       TokenKeyword,
	"extends":    TokenKeyword,
	"extern":     TokenKeyword,
	"final":      TokenKeyword,
	"for":        TokenKeyword,
	"function":   TokenKeyword,
	"if":         TokenKeyword,
	"implements": TokenKeyword,
	"import":     TokenKeyword,
	"in":         TokenKeyword,
	"inline":     TokenKeyword,
	"interface":  TokenKeyword,
	"macro":      TokenKeyword,
	"operator":   TokenKeyword,
	"overload":   TokenKeyword,
	"override":   TokenKeyword,
	"package":    TokenKeyword,
	"private":    TokenKeyword,
	"public":     TokenKeyword,
	"return":     TokenKeyword,
	"static":     TokenKeyword,
	"switch":     TokenKeyword,
	"throw":      TokenKeyword,
	"try":        TokenKeyword,
	"typedef":    TokenKeyword,
	"untyped":    TokenKeyword,
	"using":      TokenKeyword,
	"var":        TokenKeyword,
	"while":      TokenKeyword,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
