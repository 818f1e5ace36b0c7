package cmd

import (
	"context"
	"log/slog"

	"github.com/cellang/cellang/cli/cmd/repl"
	"github.com/cellang/cellang/lang"
	"github.com/cellang/cellang/log"
)

// Repl starts the interactive formula prompt.
type Repl struct {
	Vars      string   `help:"YAML variable bindings file or '-' for stdin"   short:"v"`
	Set       []string `help:"Bind a variable (NAME=VALUE), overrides --vars" short:"s"`
	NoHistory bool     `help:"Disable persistent input history"`

	Cache string `default:"${cache}" help:"Directory for session state" hidden:"" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	vars, err := loadVars(r.Vars, r.Set)
	if err != nil {
		return err
	}

	stateDir := r.Cache
	if r.NoHistory {
		stateDir = ""
	}

	return repl.Run(
		ctx,
		lang.New(),
		vars,
		stateDir,
		log.With(slog.String("command", "repl")),
	)
}
