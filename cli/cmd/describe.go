package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/cellang/cellang/lang"
)

// Describe parses a formula without evaluating it and reports its canonical
// form along with the variables and functions it references.
type Describe struct {
	Formula string `arg:"" help:"Formula to analyze"     name:"formula"`
	Format  string `       help:"Output format"          default:"yaml" enum:"yaml,json" short:"o"`
}

// Run executes the describe command.
func (d *Describe) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	desc, err := lang.Describe(d.Formula)
	if err != nil {
		return err
	}

	var out []byte

	switch d.Format {
	case "json":
		out, err = json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

	default:
		out, err = yaml.Marshal(desc)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}
	}

	fmt.Println(string(out))

	return nil
}
