package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/clj/lang"
)

// Eval parses and evaluates a source file, then optionally a trailing
// namespace hint or an extra form, printing the final result.
type Eval struct {
	Source string `arg:"" help:"Source file to evaluate, or '-' for stdin" name:"source" type:"path"`
	NSOrForm string `arg:"" help:"Namespace hint for the loaded file, or an additional form to evaluate afterward" name:"ns-or-form" optional:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	content, err := e.readSource(ctx)
	if err != nil {
		return ErrReadSource.With(slog.String("source", e.Source)).Wrap(err)
	}

	root := "."
	if e.Source != "-" && e.Source != "" {
		root = filepath.Dir(e.Source)
	}

	session, err := lang.NewSession(ctx, lang.SessionOptions{
		Output:      func(s string) { fmt.Println(s) },
		SourceRoots: []string{root},
		ReadFile: func(path string) (io.ReadCloser, error) {
			return os.Open(path)
		},
	})
	if err != nil {
		return ErrEvaluateSource.Wrap(err)
	}

	nsHint, extraForm := e.splitNSOrForm()

	result, err := session.LoadFile(ctx, content, nsHint)
	if err != nil {
		return ErrEvaluateSource.
			With(slog.String("source", e.Source)).
			Wrap(err)
	}

	if extraForm != "" {
		result, err = session.Evaluate(ctx, extraForm)
		if err != nil {
			return ErrEvaluateSource.
				With(slog.String("form", extraForm)).
				Wrap(err)
		}
	}

	fmt.Println(lang.PrintString(result))

	return nil
}

// readSource returns the contents of e.Source or, when e.Source is "-" or
// empty, of the CLI's global --source files if ctx carries any and of
// stdin otherwise.
func (e *Eval) readSource(ctx context.Context) (string, error) {
	if e.Source == "-" || e.Source == "" {
		if sf := sourceFilesFrom(ctx); sf != nil && !sf.IsZero() {
			data, err := io.ReadAll(sf)

			return string(data), err
		}

		data, err := io.ReadAll(os.Stdin)

		return string(data), err
	}

	data, err := os.ReadFile(e.Source)

	return string(data), err
}

// splitNSOrForm decides whether e.NSOrForm names a namespace (a bare
// symbol) or is itself a form to evaluate after the file loads.
func (e *Eval) splitNSOrForm() (nsHint, extraForm string) {
	if e.NSOrForm == "" {
		return "", ""
	}

	forms, err := lang.Parse(e.NSOrForm)
	if err != nil || len(forms) != 1 || forms[0].Kind != lang.KindSymbol {
		return "", e.NSOrForm
	}

	return e.NSOrForm, ""
}
