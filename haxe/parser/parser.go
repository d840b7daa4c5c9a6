package parser

import "slices"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithOffset starts parsing at the given byte offset of the source buffer.
func WithOffset(offset int) Option {
	return func(p *Parser) {
		p.offset = offset
	}
}

// InTypeArguments starts parsing as if inside a type-argument list, where
// '>' and the tokens beginning with it close the list instead of acting as
// operators.
func InTypeArguments() Option {
	return func(p *Parser) {
		p.inTypeArgs = true
	}
}

type Diagnostic struct {
	Offset  int
	Span    Span
	Message string
}

type Result struct {
	Node *Node
	// Next is the offset of the first token the parse did not consume.
	Next        int
	Diagnostics []Diagnostic
	// Incomplete is set when the input ended in the middle of an
	// expression, as in "1 +".
	Incomplete bool
}

type Parser struct {
	file        string
	offset      int
	inTypeArgs  bool
	tokens      []Token
	pos         int
	diagnostics []Diagnostic
	incomplete  bool
}

// ParseExpression parses one expression from src and reports where it
// stopped. It never fails: malformed input yields Error nodes and
// diagnostics.
func ParseExpression(src []byte, opts ...Option) *Result {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.offset = max(0, min(p.offset, len(src)))

	lexer := NewLexer(src, p.file)
	lexer.seek(p.offset)
	for {
		tok := lexer.NextToken()
		if tok.Kind.IsTrivia() {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}

	node := p.ParseExpression()
	return &Result{
		Node:        node,
		Next:        p.Offset(),
		Diagnostics: p.Diagnostics(),
		Incomplete:  p.incomplete,
	}
}

// NewParser returns a parser over an already tokenized buffer. Trivia
// tokens are dropped and the slice is copied, so the caller's tokens are
// never modified. Successive ParseExpression calls continue where the
// previous one stopped.
func NewParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	for _, tok := range tokens {
		if tok.Kind.IsTrivia() {
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Kind != TokenEOF {
		var end Position
		if len(p.tokens) > 0 {
			end = p.tokens[len(p.tokens)-1].Span.End
		}
		p.tokens = append(p.tokens, Token{Kind: TokenEOF, Span: Span{Start: end, End: end}})
	}
	return p
}

// ParseExpression parses one expression at the current position using the
// parser's current type-argument context.
func (p *Parser) ParseExpression() *Node {
	return p.parseAssignment()
}

// ParseExpressionInTypeArguments parses one expression with the
// type-argument flag set to inside and restores the previous flag before
// returning.
func (p *Parser) ParseExpressionInTypeArguments(inside bool) *Node {
	return p.withTypeArguments(inside, p.parseAssignment)
}

func (p *Parser) InTypeArguments() bool {
	return p.inTypeArgs
}

// Diagnostics returns the diagnostics collected so far, in source order.
func (p *Parser) Diagnostics() []Diagnostic {
	return slices.Clone(p.diagnostics)
}

// Incomplete reports whether a parse failed at end of input.
func (p *Parser) Incomplete() bool {
	return p.incomplete
}

// Offset returns the start offset of the next unconsumed token.
func (p *Parser) Offset() int {
	return p.peek().Start()
}

func (p *Parser) Peek() Token {
	return p.peek()
}

// Advance consumes and returns the current token.
func (p *Parser) Advance() Token {
	return p.advance()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1]
		}
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) withTypeArguments(inside bool, parse func() *Node) *Node {
	saved := p.inTypeArgs
	p.inTypeArgs = inside
	defer func() { p.inTypeArgs = saved }()
	return parse()
}

// closesTypeArguments reports whether kind ends the enclosing type-argument
// list rather than acting as an operator.
func (p *Parser) closesTypeArguments(kind TokenKind) bool {
	if !p.inTypeArgs {
		return false
	}
	switch kind {
	case TokenGT, TokenGE, TokenShr, TokenUShr, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func (p *Parser) startNode(kind NodeKind, start Position, tok *Token, children ...*Node) *Node {
	n := &Node{Kind: kind, Span: Span{Start: start, End: start}, Token: tok}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// finishNode closes the node's span at the last consumed token and turns
// it into an Error node when one of its children failed.
func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		if end := p.tokens[p.pos-1].Span.End; end.Offset >= n.Span.Start.Offset {
			n.Span.End = end
		}
	}
	if n.Kind == KindError {
		return n
	}
	for _, child := range n.Children {
		if child.IsError() {
			n.Error = &Error{
				Message: child.Error.Message,
				Offset:  child.Error.Offset,
				Partial: n.Kind,
				Got:     child.Error.Got,
			}
			n.Kind = KindError
			break
		}
	}
	return n
}

// fail marks a partially built node as an Error because the current token
// is not what the construct expects. The token is left for the caller.
func (p *Parser) fail(n *Node, msg string) *Node {
	got := p.peek()
	p.report(got, msg)
	partial := n.Kind
	if n.Error != nil {
		partial = n.Error.Partial
	}
	n.Kind = KindError
	n.Error = &Error{
		Message: msg,
		Offset:  got.Start(),
		Partial: partial,
		Got:     &got,
	}
	return p.finishNode(n)
}

// unexpected reports the current token and skips to the next
// synchronizing token, recording what it skipped.
func (p *Parser) unexpected(msg string) *Node {
	got := p.peek()
	p.report(got, msg)
	n := &Node{
		Kind:  KindError,
		Span:  Span{Start: got.Span.Start, End: got.Span.Start},
		Token: &got,
		Error: &Error{
			Message: msg,
			Offset:  got.Start(),
			Partial: KindError,
			Got:     &got,
		},
	}
	n.Error.Skipped = p.synchronize()
	if k := len(n.Error.Skipped); k > 0 {
		n.Span.End = n.Error.Skipped[k-1].Span.End
	}
	return n
}

// report records a diagnostic unless the previous one points at the same
// token, so a single failure at end of input is reported once.
func (p *Parser) report(tok Token, msg string) {
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	if k := len(p.diagnostics); k > 0 && p.diagnostics[k-1].Offset == tok.Start() {
		return
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Offset:  tok.Start(),
		Span:    tok.Span,
		Message: msg,
	})
}

func isSyncToken(kind TokenKind) bool {
	switch kind {
	case TokenRParen, TokenRBracket, TokenRBrace, TokenSemicolon, TokenComma, TokenEOF:
		return true
	}
	return false
}

func (p *Parser) synchronize() []Token {
	var skipped []Token
	depth := 0
	for !p.check(TokenEOF) {
		kind := p.peek().Kind
		if depth == 0 && isSyncToken(kind) {
			break
		}
		switch kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
		}
		skipped = append(skipped, p.advance())
	}
	return skipped
}

func (p *Parser) parseAssignment() *Node {
	target := p.parseTernary()

	if !p.isAssignOp() {
		return target
	}
	op := p.advance()
	value := p.parseAssignment()
	return p.finishNode(p.startNode(KindAssignment, target.Span.Start, &op, target, value))
}

func (p *Parser) isAssignOp() bool {
	kind := p.peek().Kind
	if p.closesTypeArguments(kind) {
		return false
	}
	switch kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign,
		TokenStarAssign, TokenSlashAssign, TokenPercentAssign,
		TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func (p *Parser) parseTernary() *Node {
	cond := p.parseBinary(precInterval)

	if !p.check(TokenQuestion) {
		return cond
	}
	question := p.advance()
	then := p.withTypeArguments(false, p.parseAssignment)
	n := p.startNode(KindTernary, cond.Span.Start, &question, cond, then)
	if !p.check(TokenColon) {
		return p.fail(n, "expected ':' in conditional expression")
	}
	p.advance()
	n.AddChild(p.parseTernary())
	return p.finishNode(n)
}

const (
	precNone = iota
	precInterval
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

var binaryPrecedence = map[TokenKind]int{
	TokenInterval: precInterval,
	TokenOr:       precLogicalOr,
	TokenAnd:      precLogicalAnd,
	TokenBitOr:    precBitOr,
	TokenBitXor:   precBitXor,
	TokenBitAnd:   precBitAnd,
	TokenEQ:       precEquality,
	TokenNE:       precEquality,
	TokenLT:       precRelational,
	TokenLE:       precRelational,
	TokenGT:       precRelational,
	TokenGE:       precRelational,
	TokenShl:      precShift,
	TokenShr:      precShift,
	TokenUShr:     precShift,
	TokenPlus:     precAdditive,
	TokenMinus:    precAdditive,
	TokenStar:     precMultiplicative,
	TokenSlash:    precMultiplicative,
	TokenPercent:  precMultiplicative,
}

func (p *Parser) binaryPrecedence() int {
	kind := p.peek().Kind
	if p.closesTypeArguments(kind) {
		return precNone
	}
	return binaryPrecedence[kind]
}

// parseBinary climbs the binary operators binding at least as tightly as
// minPrec. Every binary level is left-associative, so the right operand is
// parsed one level higher.
func (p *Parser) parseBinary(minPrec int) *Node {
	left := p.parseUnary()

	for {
		prec := p.binaryPrecedence()
		if prec == precNone || prec < minPrec {
			return left
		}
		op := p.advance()
		right := p.parseBinary(prec + 1)
		left = p.finishNode(p.startNode(KindBinary, left.Span.Start, &op, left, right))
	}
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenNot, TokenMinus, TokenBitNot, TokenIncrement, TokenDecrement:
		op := p.advance()
		operand := p.parseUnary()
		return p.finishNode(p.startNode(KindUnary, op.Span.Start, &op, operand))
	}

	return p.parsePostfix(p.parsePrimary())
}

func (p *Parser) parsePostfix(expr *Node) *Node {
	for !expr.IsError() {
		switch p.peek().Kind {
		case TokenDot:
			p.advance()
			n := p.startNode(KindFieldAccess, expr.Span.Start, nil, expr)
			if !p.check(TokenIdent) {
				return p.fail(n, "expected field name after '.'")
			}
			tok := p.advance()
			n.Token = &tok
			n.Name = tok.Literal
			expr = p.finishNode(n)
		case TokenLBracket:
			open := p.advance()
			index := p.withTypeArguments(false, p.parseAssignment)
			n := p.startNode(KindArrayAccess, expr.Span.Start, &open, expr, index)
			if !p.check(TokenRBracket) {
				return p.fail(n, "expected ']' to close index expression")
			}
			p.advance()
			expr = p.finishNode(n)
		case TokenLParen:
			open := p.advance()
			args, closed := p.parseList(TokenRParen, "argument list")
			n := p.startNode(KindCall, expr.Span.Start, &open, append([]*Node{expr}, args...)...)
			if !closed {
				return p.fail(n, "expected ')' to close argument list")
			}
			expr = p.finishNode(n)
		case TokenIncrement, TokenDecrement:
			op := p.advance()
			expr = p.finishNode(p.startNode(KindPostfix, expr.Span.Start, &op, expr))
		default:
			return expr
		}
	}
	return expr
}

// parseList parses comma-separated expressions after an opening bracket
// and consumes the closing token. closed is false when the list ran into
// end of input or a token that ends an enclosing construct.
func (p *Parser) parseList(close TokenKind, what string) (items []*Node, closed bool) {
	saved := p.inTypeArgs
	p.inTypeArgs = false
	defer func() { p.inTypeArgs = saved }()

	if p.check(close) {
		p.advance()
		return nil, true
	}

	for {
		if p.endsList(close) {
			return items, false
		}
		items = append(items, p.parseAssignment())

		for !p.check(TokenComma) && !p.check(close) {
			if p.endsList(close) {
				return items, false
			}
			items = append(items, p.unexpected("expected ',' or '"+close.String()+"' in "+what))
		}
		if p.check(close) {
			p.advance()
			return items, true
		}
		p.advance()
	}
}

func (p *Parser) endsList(close TokenKind) bool {
	switch kind := p.peek().Kind; kind {
	case TokenEOF, TokenSemicolon, TokenRParen, TokenRBracket, TokenRBrace:
		return kind != close
	}
	return false
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenTrue, TokenFalse, TokenNull:
		p.advance()
		return &Node{Kind: KindLiteral, Token: &tok, Span: tok.Span}

	case TokenStringLiteral:
		if !isTerminatedString(tok.Literal) {
			n := &Node{Kind: KindLiteral, Token: &tok, Span: tok.Span}
			p.report(tok, "unterminated string literal")
			p.advance()
			n.Kind = KindError
			n.Error = &Error{Message: "unterminated string literal", Offset: tok.Start(), Partial: KindLiteral, Got: &tok}
			return n
		}
		p.advance()
		return &Node{Kind: KindLiteral, Token: &tok, Span: tok.Span}

	case TokenIdent, TokenThis, TokenSuper:
		p.advance()
		return &Node{Kind: KindIdentifier, Token: &tok, Name: tok.Literal, Span: tok.Span}

	case TokenLParen:
		return p.parseGrouping()

	case TokenLBracket:
		return p.parseArrayLiteral()

	case TokenNew:
		return p.parseNew()

	case TokenInvalid:
		return p.unexpected("unexpected character " + tok.String())

	case TokenKeyword:
		return p.unexpected("unexpected keyword '" + tok.Literal + "' in expression")
	}

	return p.unexpected("expected expression, found " + tok.String())
}

func isTerminatedString(literal string) bool {
	if len(literal) < 2 || literal[len(literal)-1] != literal[0] {
		return false
	}
	// Count the backslashes before the closing quote: an odd number
	// escapes it.
	escapes := 0
	for i := len(literal) - 2; i > 0 && literal[i] == '\\'; i-- {
		escapes++
	}
	return escapes%2 == 0
}

func (p *Parser) parseGrouping() *Node {
	open := p.advance()
	inner := p.withTypeArguments(false, p.parseAssignment)
	n := p.startNode(KindGrouping, open.Span.Start, &open, inner)
	if !p.check(TokenRParen) {
		return p.fail(n, "expected ')' to close parenthesized expression")
	}
	p.advance()
	return p.finishNode(n)
}

func (p *Parser) parseArrayLiteral() *Node {
	open := p.advance()
	items, closed := p.parseList(TokenRBracket, "array literal")
	n := p.startNode(KindArrayLiteral, open.Span.Start, &open, items...)
	if !closed {
		return p.fail(n, "expected ']' to close array literal")
	}
	return p.finishNode(n)
}

// parseNew parses "new" TypeName "(" arguments ")".
func (p *Parser) parseNew() *Node {
	newTok := p.advance()
	n := p.startNode(KindNew, newTok.Span.Start, &newTok)

	if !p.check(TokenIdent) {
		return p.fail(n, "expected type name after 'new'")
	}
	typeName := p.parseTypeName()
	n.AddChild(typeName)
	n.Name = typeName.Name
	if typeName.IsError() {
		return p.finishNode(n)
	}

	if !p.check(TokenLParen) {
		return p.fail(n, "expected '(' after type name")
	}
	p.advance()
	args, closed := p.parseList(TokenRParen, "argument list")
	for _, arg := range args {
		n.AddChild(arg)
	}
	if !closed {
		return p.fail(n, "expected ')' to close argument list")
	}
	return p.finishNode(n)
}

// parseTypeName parses a dotted identifier with optional type parameters.
// The current token must be an identifier.
func (p *Parser) parseTypeName() *Node {
	first := p.advance()
	n := p.startNode(KindTypeName, first.Span.Start, &first)
	n.Name = first.Literal
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		n.Name += "." + p.advance().Literal
	}

	if !p.check(TokenLT) {
		return p.finishNode(n)
	}

	saved := p.inTypeArgs
	p.inTypeArgs = true
	defer func() { p.inTypeArgs = saved }()

	p.advance()
	for {
		if !p.check(TokenIdent) {
			return p.fail(n, "expected type parameter")
		}
		param := p.parseTypeName()
		n.AddChild(param)
		if param.IsError() {
			return p.finishNode(n)
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	if !p.expectGT() {
		return p.fail(n, "expected '>' to close type parameters")
	}
	return p.finishNode(n)
}

// expectGT consumes a single '>'. Tokens that merely start with '>' are
// split so the remainder stays in the stream, which lets "Array<Array<Int>>"
// close both lists.
func (p *Parser) expectGT() bool {
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr:
		p.splitGT(TokenGT)
	case TokenUShr:
		p.splitGT(TokenShr)
	case TokenGE:
		p.splitGT(TokenAssign)
	case TokenShrAssign:
		p.splitGT(TokenGE)
	case TokenUShrAssign:
		p.splitGT(TokenShrAssign)
	default:
		return false
	}
	p.advance()
	return true
}

func (p *Parser) splitGT(remainder TokenKind) {
	tok := p.tokens[p.pos]
	mid := tok.Span.Start
	mid.Offset++
	mid.Column++
	gt := Token{
		Kind:    TokenGT,
		Literal: tok.Literal[:1],
		Span:    Span{Start: tok.Span.Start, End: mid},
	}
	rest := Token{
		Kind:    remainder,
		Literal: tok.Literal[1:],
		Span:    Span{Start: mid, End: tok.Span.End},
	}
	p.tokens[p.pos] = gt
	p.tokens = slices.Insert(p.tokens, p.pos+1, rest)
}
