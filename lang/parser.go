package lang

import (
	"errors"
	"fmt"
	"strings"
)

// Binary operator precedence. Comparators sit below all of these at a fixed
// precedence of 1 and are folded in the same loop, which makes chains like
// a=b=c parse as (a=b)=c.
var opPrecedence = map[string]int{
	"^": 4,
	"*": 3,
	"/": 3,
	"+": 2,
	"-": 2,
	"&": 2,
}

const comparePrecedence = 1

// parser consumes a token stream using precedence climbing.
type parser struct {
	tokens   []Token
	pos      int
	depth    int
	maxDepth int
}

// parseTokens parses a complete token stream into a single expression node.
// Trailing tokens after the expression are a syntax error.
func parseTokens(tokens []Token, maxDepth int) (Node, error) {
	p := &parser{tokens: tokens, maxDepth: maxDepth}

	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenEnd); err != nil {
		return nil, err
	}

	return node, nil
}

func (p *parser) peek() Token { return p.tokens[p.pos] }

func (p *parser) advance() Token {
	tok := p.tokens[p.pos]
	p.pos++

	return tok
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.advance()
	if tok.Kind != kind {
		return tok, ErrExpectedToken.
			Wrap(fmt.Errorf("want %s, found %s", kind, tok.Kind))
	}

	return tok, nil
}

// parseExpression folds binary operators and comparators into the prefix
// term while their precedence is at least min. Exponentiation recurses with
// the same minimum, making it right-associative; every other operator
// recurses with min+1.
func (p *parser) parseExpression(min int) (Node, error) {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > p.maxDepth {
		return nil, ErrMaxDepthExceeded
	}

	node, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()

		switch tok.Kind {
		case TokenOperator:
			prec := opPrecedence[tok.Text]
			if prec < min {
				return node, nil
			}

			p.advance()

			next := prec + 1
			if tok.Text == "^" {
				next = prec
			}

			rhs, err := p.parseExpression(next)
			if err != nil {
				return nil, err
			}

			node = &Binary{Op: tok.Text, Left: node, Right: rhs}

		case TokenCompare:
			if comparePrecedence < min {
				return node, nil
			}

			p.advance()

			rhs, err := p.parseExpression(comparePrecedence + 1)
			if err != nil {
				return nil, err
			}

			node = &Compare{Op: tok.Text, Left: node, Right: rhs}

		default:
			return node, nil
		}
	}
}

// parsePrefix parses a prefix term: a literal, a variable, a unary sign, a
// parenthesized expression, or a function call.
func (p *parser) parsePrefix() (Node, error) {
	tok := p.advance()

	switch tok.Kind {
	case TokenNumber, TokenString, TokenBool, TokenNull:
		return &Literal{Val: tok.Val}, nil

	case TokenVariable:
		return &Variable{Name: tok.Text}, nil

	case TokenOperator:
		if tok.Text != "+" && tok.Text != "-" {
			return nil, ErrUnexpectedToken.
				Wrap(fmt.Errorf("operator %q in prefix position", tok.Text))
		}

		// Unary sign binds at exponentiation level.
		operand, err := p.parseExpression(opPrecedence["^"])
		if err != nil {
			return nil, err
		}

		return &Unary{Op: tok.Text, Operand: operand}, nil

	case TokenLParen:
		node, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}

		return node, nil

	case TokenIdent:
		if p.peek().Kind != TokenLParen {
			return nil, ErrBareIdentifier.
				Wrap(fmt.Errorf("%q", tok.Text))
		}

		p.advance() // consume LPAREN

		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}

		return &Call{Name: strings.ToUpper(tok.Text), Args: args}, nil

	default:
		return nil, ErrUnexpectedToken.
			Wrap(fmt.Errorf("%s in expression", tok.Kind))
	}
}

// parseArguments parses a separator-delimited argument list through the
// closing parenthesis. Zero arguments are allowed.
func (p *parser) parseArguments() ([]Node, error) {
	if p.peek().Kind == TokenRParen {
		p.advance()

		return nil, nil
	}

	var args []Node

	for {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		switch tok := p.advance(); tok.Kind {
		case TokenSeparator:

		case TokenRParen:
			return args, nil

		default:
			return nil, ErrExpectedToken.
				Wrap(errors.New("';' or ')' in function arguments"))
		}
	}
}
