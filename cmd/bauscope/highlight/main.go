package highlight

import (
	"context"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/scanner"
	"github.com/bau-lang/bauscope/pkg/tokenizer"
)

type Handler struct {
	scope string
	fs    afero.Fs
}

func NewHighlightCommand() *cobra.Command {
	me := &Handler{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "render a source file to the terminal with scope-based colors",
	}

	cmd.Flags().StringVar(&me.scope, "scope", "source.bau", "grammar scope name to highlight with")
	cmd.Args = cobra.ExactArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return me.Run(cmd.Context(), cmd, args[0])
	}

	return cmd
}

// styles maps scope name prefixes to terminal colors, checked in order so
// the more specific prefix wins.
var styles = []struct {
	prefix string
	color  *color.Color
}{
	{"comment.", color.New(color.FgHiBlack)},
	{"keyword.operator.", color.New(color.FgHiMagenta)},
	{"keyword.", color.New(color.FgMagenta)},
	{"string.", color.New(color.FgGreen)},
	{"constant.numeric.", color.New(color.FgCyan)},
	{"constant.language.", color.New(color.FgCyan)},
	{"entity.name.function.", color.New(color.FgYellow)},
	{"entity.name.type.", color.New(color.FgBlue)},
	{"variable.", color.New(color.FgWhite)},
}

func (me *Handler) Run(ctx context.Context, cmd *cobra.Command, file string) error {
	store, err := grammar.NewStore(ctx)
	if err != nil {
		return errors.Errorf("creating grammar store: %w", err)
	}

	g, err := store.Get(me.scope)
	if err != nil {
		return err
	}

	content, err := afero.ReadFile(me.fs, file)
	if err != nil {
		return errors.Errorf("reading %s: %w", file, err)
	}

	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")

	tokens, err := tokenizer.Tokenize(ctx, g, lines)
	if err != nil {
		return errors.Errorf("tokenizing %s: %w", file, err)
	}

	for i, line := range lines {
		cmd.Println(renderLine(line, tokens[i].Ranges))
	}
	return nil
}

// renderLine styles each classified range and leaves unclassified text
// as-is. Overlapping ranges keep the most specific (narrowest) style, so
// capture scopes win over their enclosing region scope.
func renderLine(line string, ranges []scanner.ScopedRange) string {
	var out strings.Builder
	cursor := 0

	for i, r := range ranges {
		if r.Start < cursor {
			continue // enclosed by the range already rendered
		}
		if i+1 < len(ranges) && ranges[i+1].Start == r.Start && ranges[i+1].End < r.End {
			continue // a narrower range at the same start is more specific
		}
		out.WriteString(line[cursor:r.Start])
		out.WriteString(styleFor(r.Scope).Sprint(line[r.Start:r.End]))
		cursor = r.End
	}

	out.WriteString(line[cursor:])
	return out.String()
}

func styleFor(scope string) *color.Color {
	for _, s := range styles {
		if strings.HasPrefix(scope, s.prefix) {
			return s.color
		}
	}
	return color.New(color.Reset)
}
