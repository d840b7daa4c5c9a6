// Package parser provides an error-tolerant lexer and expression parser for
// Haxe source code.
//
// # Overview
//
// The parser turns one expression of source text into a syntax tree that
// encodes operator precedence and associativity. It is designed for IDE-like
// tooling where the user is usually in the middle of an edit, so it never
// fails: unknown characters become TokenInvalid tokens, and structural
// problems become KindError nodes plus diagnostics.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (Node)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │ Diagnostics │
//	                                        └─────────────┘
//
// # Usage
//
//	res := parser.ParseExpression([]byte("a = b << c + 1"))
//	fmt.Print(res.Node)
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d.Offset, d.Message)
//	}
//
// Callers that already hold tokens use NewParser and call ParseExpression
// repeatedly; each call continues at the first unconsumed token.
//
// # Precedence
//
// From tightest to loosest:
//
//	postfix      a.b  a[i]  a(x)  a++  a--
//	prefix       !a  -a  ~a  ++a  --a
//	*  /  %
//	+  -
//	<<  >>  >>>
//	<  <=  >  >=
//	==  !=
//	&
//	^
//	|
//	&&
//	||
//	...
//	?:           right-associative
//	=  +=  -=  *=  /=  %=  <<=  >>=  >>>=  &=  ^=  |=   right-associative
//
// # Shift operators and type arguments
//
// The lexer applies longest match to '>' sequences, so "a >>> b" is three
// tokens. Inside a type-argument list, as in "new Map<String, Array<Int>>()",
// the parser splits '>>' and friends when it needs a single '>'. The
// "inside type arguments" state is carried by the Parser value, set with the
// InTypeArguments option or ParseExpressionInTypeArguments, and restored on
// return. Parentheses, brackets and argument lists clear it for their
// contents.
//
// # Error recovery
//
// When a construct is missing a piece (a closing bracket, the ':' of a
// conditional, a field name, an operand) the node under construction becomes
// a KindError node that keeps the children parsed so far; Error.Partial
// records the kind it would have had. A token that cannot start an
// expression is reported, and tokens are skipped up to the next ')', ']',
// '}', ';', ',' or end of input. Every non-Error node is a complete
// sub-expression.
package parser
