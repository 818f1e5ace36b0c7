package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/cellang/cellang/lang"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// loadVars builds the variable scope for a command from an optional YAML
// bindings file and any number of NAME=VALUE overrides. Overrides are applied
// after the file so they win on conflict.
func loadVars(path string, sets []string) (lang.Vars, error) {
	vars := lang.Vars{}

	if path != "" {
		data, err := readSource(path)
		if err != nil {
			return nil, ErrReadVars.Wrap(err).
				With(slog.String("path", path))
		}

		vars, err = lang.VarsFromYAML(data)
		if err != nil {
			return nil, ErrParseVars.Wrap(err).
				With(slog.String("path", path))
		}
	}

	for _, set := range sets {
		name, value, err := parseSet(set)
		if err != nil {
			return nil, err
		}

		vars[name] = value
	}

	return vars, nil
}

// readSource reads the full contents of a file, or stdin when path is "-".
func readSource(path string) ([]byte, error) {
	if path == stdinSource {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(path)
}

// parseSet splits a NAME=VALUE override and decodes the value as a YAML
// scalar, so numbers, booleans, and quoted strings all bind naturally.
func parseSet(set string) (string, lang.Value, error) {
	name, raw, ok := strings.Cut(set, "=")

	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", lang.Null(), ErrInvalidSet.
			With(slog.String("argument", set))
	}

	var native any
	if err := yaml.Unmarshal([]byte(raw), &native); err != nil {
		return "", lang.Null(), ErrInvalidSet.Wrap(err).
			With(slog.String("argument", set))
	}

	return name, lang.FromNative(native), nil
}
