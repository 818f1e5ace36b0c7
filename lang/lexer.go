package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// Tokenize scans a formula expression into a flat token stream.
// The returned stream always ends with a TokenEnd token.
//
// The leading "=" prefix, if any, must already be stripped by the caller;
// [Engine.Evaluate] and [Engine.Parse] handle that.
func Tokenize(text string) ([]Token, error) {
	l := &lexer{src: text}

	return l.scan()
}

// lexer is a byte-wise scanner over a formula expression.
type lexer struct {
	src    string
	cur    int
	tokens []Token
}

func (l *lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}

	return l.src[l.cur], true
}

func (l *lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}

	return l.src[idx], true
}

func (l *lexer) add(kind TokenKind, text string, pos int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Text: text, Pos: pos})
}

func (l *lexer) addLiteral(kind TokenKind, val Value, pos int) {
	l.tokens = append(l.tokens, Token{Kind: kind, Val: val, Pos: pos})
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isIdentPart(b byte) bool {
	return isAlpha(b) || isDigit(b) || b == '.'
}

// scan tokenizes the entire source.
func (l *lexer) scan() ([]Token, error) {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		pos := l.cur

		switch {
		case isSpace(ch):
			l.cur++

		case ch == '{' && l.peekIs(1, '{'):
			if err := l.scanVariable(pos); err != nil {
				return nil, err
			}

		case ch == '"':
			if err := l.scanString(pos); err != nil {
				return nil, err
			}

		case isDigit(ch) ||
			((ch == '+' || ch == '-') && l.peekIsDigit(1) && l.signAllowed()):
			if err := l.scanNumber(pos); err != nil {
				return nil, err
			}

		case isAlpha(ch):
			l.scanIdentifier(pos)

		case ch == '(':
			l.add(TokenLParen, "(", pos)
			l.cur++

		case ch == ')':
			l.add(TokenRParen, ")", pos)
			l.cur++

		case ch == ';' || ch == ',':
			l.add(TokenSeparator, string(ch), pos)
			l.cur++

		case ch == '&':
			l.add(TokenOperator, "&", pos)
			l.cur++

		// Two-character comparators before single-character ones.
		case l.hasPrefix(">="), l.hasPrefix("<="), l.hasPrefix("<>"):
			l.add(TokenCompare, l.src[pos:pos+2], pos)
			l.cur += 2

		case ch == '=' || ch == '<' || ch == '>':
			l.add(TokenCompare, string(ch), pos)
			l.cur++

		case ch == '+' || ch == '-' || ch == '*' || ch == '/' || ch == '^':
			l.add(TokenOperator, string(ch), pos)
			l.cur++

		default:
			return nil, ErrUnexpectedChar.
				Wrap(fmt.Errorf("%q at position %d", string(ch), pos))
		}
	}

	l.add(TokenEnd, "", l.cur)

	return l.tokens, nil
}

func (l *lexer) peekIs(n int, want byte) bool {
	b, ok := l.peekN(n)

	return ok && b == want
}

// signAllowed reports whether a "+" or "-" at the cursor may begin a signed
// number literal. A sign is a sign only where no expression can end: at the
// start of the stream, or after an operator, comparator, "(", or argument
// separator. After a value or ")" it is a binary operator, so "1+2" and
// "10-4" tokenize as arithmetic rather than two adjacent literals.
func (l *lexer) signAllowed() bool {
	if len(l.tokens) == 0 {
		return true
	}

	switch l.tokens[len(l.tokens)-1].Kind {
	case TokenOperator, TokenCompare, TokenLParen, TokenSeparator:
		return true
	default:
		return false
	}
}

func (l *lexer) peekIsDigit(n int) bool {
	b, ok := l.peekN(n)

	return ok && isDigit(b)
}

func (l *lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(l.src[l.cur:], s)
}

// scanVariable consumes a {{name}} placeholder.
func (l *lexer) scanVariable(pos int) error {
	end := strings.Index(l.src[l.cur:], "}}")
	if end == -1 {
		return ErrUnterminatedVariable
	}

	name := strings.TrimSpace(l.src[l.cur+2 : l.cur+end])
	if name == "" {
		return ErrEmptyVariable
	}

	l.cur += end + 2
	l.add(TokenVariable, name, pos)

	return nil
}

// scanString consumes a double-quoted string literal. A doubled quote inside
// the literal is an escaped quote; backslash escapes \n \t \r \" \\ are
// decoded, and any other escaped character passes through literally.
func (l *lexer) scanString(pos int) error {
	l.cur++ // opening quote

	var out strings.Builder

	for !l.isAtEnd() {
		ch := l.src[l.cur]

		if ch == '"' {
			if l.peekIs(1, '"') {
				out.WriteByte('"')
				l.cur += 2

				continue
			}

			l.cur++
			l.addLiteral(TokenString, Text(out.String()), pos)

			return nil
		}

		if ch == '\\' {
			l.cur++
			if l.isAtEnd() {
				return ErrInvalidEscape
			}

			esc := l.src[l.cur]
			switch esc {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			default:
				out.WriteByte(esc)
			}

			l.cur++

			continue
		}

		out.WriteByte(ch)
		l.cur++
	}

	return ErrUnterminatedString
}

// scanNumber consumes an optionally signed integer, decimal, or exponent
// literal.
func (l *lexer) scanNumber(pos int) error {
	start := l.cur

	if b, ok := l.peek(); ok && (b == '+' || b == '-') {
		l.cur++
	}

	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}

		l.cur++
	}

	if b, ok := l.peek(); ok && b == '.' {
		l.cur++

		for {
			b, ok := l.peek()
			if !ok || !isDigit(b) {
				break
			}

			l.cur++
		}
	}

	if b, ok := l.peek(); ok && (b == 'e' || b == 'E') {
		// Only an exponent if digits follow the optional sign.
		next := 1
		if b2, ok := l.peekN(1); ok && (b2 == '+' || b2 == '-') {
			next = 2
		}

		if l.peekIsDigit(next) {
			l.cur += next

			for {
				b, ok := l.peek()
				if !ok || !isDigit(b) {
					break
				}

				l.cur++
			}
		}
	}

	lit := l.src[start:l.cur]

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return ErrInvalidNumber.
			Wrap(fmt.Errorf("%q at position %d", lit, pos))
	}

	l.addLiteral(TokenNumber, Number(f), pos)

	return nil
}

// scanIdentifier consumes an identifier and classifies the TRUE/FALSE and
// NULL/NONE keywords case-insensitively.
func (l *lexer) scanIdentifier(pos int) {
	start := l.cur
	l.cur++

	for {
		b, ok := l.peek()
		if !ok || !isIdentPart(b) {
			break
		}

		l.cur++
	}

	ident := l.src[start:l.cur]

	switch strings.ToUpper(ident) {
	case "TRUE":
		l.addLiteral(TokenBool, Bool(true), pos)
	case "FALSE":
		l.addLiteral(TokenBool, Bool(false), pos)
	case "NULL", "NONE":
		l.addLiteral(TokenNull, Null(), pos)
	default:
		l.add(TokenIdent, ident, pos)
	}
}
