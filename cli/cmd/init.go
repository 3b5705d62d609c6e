package cmd

import (
	"context"
	"log/slog"
	"os"
)

// starterSource is written by the init command when no target file exists
// yet. It's a minimal, commented "user" namespace rather than a generated
// flag dump, since clj has no analogue to the teacher's flag-derived
// config AST.
const starterSource = `; Starter namespace for clj.
; Evaluate this file with:
;
;   clj eval user.clj
;
(ns user)

(defn greet [name]
  (str "Hello, " name "!"))

(greet "world")
`

// Init writes a starter user.clj file if one doesn't already exist.
type Init struct {
	Path  string `arg:"" default:"user.clj" help:"Path to the starter namespace file" name:"path"`
	Force bool   `help:"Overwrite an existing file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	if _, err := os.Stat(i.Path); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", i.Path)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err := os.WriteFile(i.Path, []byte(starterSource), 0o644); err != nil {
		return ErrWriteConfig.With(slog.String("file", i.Path)).Wrap(err)
	}

	slog.DebugContext(ctx, "wrote starter namespace", slog.String("path", i.Path))

	return nil
}
