package lang

import (
	"strings"
)

// Node is a single node of a parsed formula expression.
// Nodes are immutable once built.
type Node interface {
	node()
}

// Literal is a constant value embedded in the formula.
type Literal struct {
	Val Value
}

// Variable is a {{name}} placeholder resolved against the evaluation
// context.
type Variable struct {
	Name string
}

// Unary is a prefix + or - applied to an operand.
type Unary struct {
	Op      string
	Operand Node
}

// Binary is an arithmetic or concatenation operator applied to two operands.
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

// Compare is a comparison operator applied to two operands.
type Compare struct {
	Op    string
	Left  Node
	Right Node
}

// Call is a function invocation with its canonical upper-cased name.
type Call struct {
	Name string
	Args []Node
}

func (*Literal) node()  {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Compare) node()  {}
func (*Call) node()     {}

// Walk calls fn for n and every node beneath it, depth-first.
func Walk(n Node, fn func(Node)) {
	if n == nil {
		return
	}

	fn(n)

	switch t := n.(type) {
	case *Unary:
		Walk(t.Operand, fn)

	case *Binary:
		Walk(t.Left, fn)
		Walk(t.Right, fn)

	case *Compare:
		Walk(t.Left, fn)
		Walk(t.Right, fn)

	case *Call:
		for _, arg := range t.Args {
			Walk(arg, fn)
		}
	}
}

// FormatNode renders a node back into formula syntax. Operands of binary and
// comparison operators are parenthesized, which makes the effective grouping
// of the parse visible.
func FormatNode(n Node) string {
	switch t := n.(type) {
	case nil:
		return ""

	case *Literal:
		if t.Val.Kind() == KindText {
			return `"` + strings.ReplaceAll(t.Val.Str(), `"`, `""`) + `"`
		}

		return t.Val.String()

	case *Variable:
		return "{{" + t.Name + "}}"

	case *Unary:
		return t.Op + FormatNode(t.Operand)

	case *Binary:
		return "(" + FormatNode(t.Left) + " " + t.Op + " " + FormatNode(t.Right) + ")"

	case *Compare:
		return "(" + FormatNode(t.Left) + " " + t.Op + " " + FormatNode(t.Right) + ")"

	case *Call:
		args := make([]string, len(t.Args))
		for i, arg := range t.Args {
			args[i] = FormatNode(arg)
		}

		return t.Name + "(" + strings.Join(args, "; ") + ")"

	default:
		return ""
	}
}
