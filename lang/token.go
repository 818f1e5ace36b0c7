package lang

//go:generate go tool stringer --linecomment --type TokenKind --output token_string.go

// TokenKind identifies the lexical class of a [Token].
type TokenKind int

const (
	// TokenEnd terminates every token stream.
	TokenEnd TokenKind = iota // END

	// TokenNumber is a numeric literal.
	TokenNumber // NUMBER

	// TokenString is a double-quoted string literal.
	TokenString // STRING

	// TokenBool is a TRUE or FALSE keyword.
	TokenBool // BOOLEAN

	// TokenNull is a NULL or NONE keyword.
	TokenNull // NULL

	// TokenVariable is a {{name}} placeholder.
	TokenVariable // VARIABLE

	// TokenIdent is a candidate function name.
	TokenIdent // IDENTIFIER

	// TokenOperator is one of + - * / ^ &.
	TokenOperator // OPERATOR

	// TokenCompare is one of = <> > >= < <=.
	TokenCompare // COMPARATOR

	// TokenLParen is "(".
	TokenLParen // LPAREN

	// TokenRParen is ")".
	TokenRParen // RPAREN

	// TokenSeparator is the argument separator ";" or ",".
	TokenSeparator // ARG_SEPARATOR
)

// Token is a single lexical unit of a formula.
//
// Text holds the decoded payload for variables, identifiers, and operators.
// Literal tokens (NUMBER, STRING, BOOLEAN, NULL) additionally carry their
// parsed value in Val so the parser can embed it without re-parsing.
type Token struct {
	Kind TokenKind
	Text string
	Val  Value
	Pos  int // byte offset of the token in the formula
}
