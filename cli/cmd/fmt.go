package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/clj/lang"
)

// Fmt parses a source file and re-prints every top-level form in the
// chosen output format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Re-print using the canonical read/print syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Dump each top-level form as JSON."`
	YAML   YAML   `cmd:""                    help:"Dump each top-level form as YAML."`
}

// Native re-prints input using the language's own print_string syntax.
type Native struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the fmt command (native format).
func (f *Native) Run(ctx context.Context) error {
	forms, err := parseFile(ctx, f.Source)
	if err != nil {
		return err
	}

	for _, form := range forms {
		fmt.Println(lang.PrintString(form))
	}

	return nil
}

// JSON dumps parsed forms as a JSON array.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	forms, err := parseFile(ctx, j.Source)
	if err != nil {
		return err
	}

	data := formsToNative(forms)

	var out []byte
	if j.Indent > 0 {
		out, err = json.MarshalIndent(data, "", strings.Repeat(" ", j.Indent))
	} else {
		out, err = json.Marshal(data)
	}

	if err != nil {
		return ErrJSONMarshal.With(slog.Int("indent", j.Indent)).Wrap(err)
	}

	fmt.Println(string(out))

	return nil
}

// YAML dumps parsed forms as a YAML sequence.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output" short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	forms, err := parseFile(ctx, y.Source)
	if err != nil {
		return err
	}

	data := formsToNative(forms)

	var opts []yaml.EncodeOption
	if y.Indent > 0 {
		opts = append(opts, yaml.Indent(y.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	out, err := yaml.MarshalContext(ctx, data, opts...)
	if err != nil {
		return ErrYAMLMarshal.With(slog.Int("indent", y.Indent)).Wrap(err)
	}

	fmt.Print(string(out))

	return nil
}

// parseFile reads source (a path, "-" for stdin) and parses it into forms.
func parseFile(ctx context.Context, source string) ([]lang.Value, error) {
	var (
		data []byte
		err  error
	)

	if source == "-" || source == "" {
		if sf := sourceFilesFrom(ctx); sf != nil && !sf.IsZero() {
			data, err = io.ReadAll(sf)
		} else {
			data, err = io.ReadAll(os.Stdin)
		}
	} else {
		data, err = os.ReadFile(source)
	}

	if err != nil {
		return nil, ErrReadSource.With(slog.String("source", source)).Wrap(err)
	}

	forms, err := lang.Parse(string(data))
	if err != nil {
		return nil, ErrParseSource.With(slog.String("source", source)).Wrap(err)
	}

	return forms, nil
}

// formsToNative converts each top-level form to a marshalable Go value,
// falling back to its print_string text when lang.ToGo rejects the form
// (a map with a list, vector, or map key).
func formsToNative(forms []lang.Value) []any {
	out := make([]any, len(forms))

	for i, form := range forms {
		if v, err := lang.ToGo(form); err == nil {
			out[i] = v
		} else {
			out[i] = lang.PrintString(form)
		}
	}

	return out
}
