package lang

import "sort"

// Description is the static analysis of a parsed formula: its syntax tree
// plus the distinct variable and function names it references, sorted.
type Description struct {
	AST       Node     `json:"-" yaml:"-"`
	Text      string   `json:"ast" yaml:"ast"`
	Variables []string `json:"variables" yaml:"variables"`
	Functions []string `json:"functions" yaml:"functions"`
}

// Describe parses a formula and reports which variables and functions it
// references, without evaluating it. Unknown functions are reported, not
// rejected.
func (e *Engine) Describe(formula string) (*Description, error) {
	node, err := e.Parse(formula)
	if err != nil {
		return nil, err
	}

	variables := map[string]struct{}{}
	functions := map[string]struct{}{}

	Walk(node, func(n Node) {
		switch n := n.(type) {
		case *Variable:
			variables[n.Name] = struct{}{}
		case *Call:
			functions[n.Name] = struct{}{}
		}
	})

	return &Description{
		AST:       node,
		Text:      FormatNode(node),
		Variables: sortedKeys(variables),
		Functions: sortedKeys(functions),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
