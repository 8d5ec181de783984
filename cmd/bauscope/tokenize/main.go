package tokenize

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/tokenizer"
)

type Handler struct {
	scope  string
	format string // text, json
	fs     afero.Fs
}

func NewTokenizeCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "tokenize <glob>",
		Short: "print scoped token ranges for source files",
	}

	cmd.Flags().StringVar(&me.scope, "scope", "source.bau", "grammar scope name to tokenize with")
	cmd.Flags().StringVar(&me.format, "format", "text", "output format (text, json)")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd, args[0])
	}

	return cmd
}

type fileTokens struct {
	File  string                 `json:"file"`
	Lines []tokenizer.LineTokens `json:"lines"`
}

func (me *Handler) Run(ctx context.Context, cmd *cobra.Command, pattern string) error {
	store, err := grammar.NewStore(ctx)
	if err != nil {
		return errors.Errorf("creating grammar store: %w", err)
	}

	g, err := store.Get(me.scope)
	if err != nil {
		return err
	}

	files, err := doublestar.Glob(afero.NewIOFS(me.fs), pattern)
	if err != nil {
		return errors.Errorf("expanding glob %q: %w", pattern, err)
	}
	if len(files) == 0 {
		return errors.Errorf("no files match %q", pattern)
	}

	for _, file := range files {
		content, err := afero.ReadFile(me.fs, file)
		if err != nil {
			return errors.Errorf("reading %s: %w", file, err)
		}

		lines, err := tokenizer.TokenizeText(ctx, g, string(content))
		if err != nil {
			return errors.Errorf("tokenizing %s: %w", file, err)
		}

		if err := me.print(cmd, file, lines); err != nil {
			return err
		}
	}

	return nil
}

func (me *Handler) print(cmd *cobra.Command, file string, lines []tokenizer.LineTokens) error {
	switch me.format {
	case "json":
		data, err := json.MarshalIndent(fileTokens{File: file, Lines: lines}, "", "  ")
		if err != nil {
			return errors.Errorf("encoding tokens for %s: %w", file, err)
		}
		cmd.Println(string(data))
		return nil

	case "text":
		for _, line := range lines {
			for _, r := range line.Ranges {
				cmd.Println(fmt.Sprintf("%s:%d:%d-%d\t%s", file, line.Line+1, r.Start, r.End, r.Scope))
			}
		}
		return nil

	default:
		return errors.Errorf("unknown format %q", me.format)
	}
}
