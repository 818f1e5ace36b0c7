package cmd

import (
	"context"
	"fmt"

	"github.com/cellang/cellang/lang"
)

// Eval evaluates a formula against an optional set of variable bindings.
type Eval struct {
	Formula string   `arg:"" help:"Formula to evaluate" name:"formula"`
	Vars    string   `       help:"YAML variable bindings file or '-' for stdin"   short:"v"`
	Set     []string `       help:"Bind a variable (NAME=VALUE), overrides --vars" short:"s"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	vars, err := loadVars(e.Vars, e.Set)
	if err != nil {
		return err
	}

	result, err := lang.Evaluate(e.Formula, vars)
	if err != nil {
		return err
	}

	// Print result in native display format
	fmt.Println(result.String())

	return nil
}
