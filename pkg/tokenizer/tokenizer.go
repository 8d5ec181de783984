// Package tokenizer drives the line scanner across whole documents,
// threading the region stack from each line into the next. Tokenization
// is inherently sequential: a line's classification depends on every line
// before it. Session adds the incremental path editors need, reusing
// cached results for lines an edit cannot have affected.
package tokenizer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/scanner"
)

// LineTokens holds the scoped ranges produced for one line.
type LineTokens struct {
	Line   int                   `json:"line"`
	Ranges []scanner.ScopedRange `json:"ranges"`
}

// Tokenize scans every line in order with an initially-empty region
// stack. Cancellation is checked between lines, never mid-line. An open
// region at end of document is normal and simply discarded.
func Tokenize(ctx context.Context, g *grammar.Grammar, lines []string) ([]LineTokens, error) {
	out := make([]LineTokens, 0, len(lines))
	stack := scanner.RegionStack{}

	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("tokenize canceled at line %d: %w", i, err)
		}
		ranges, next := scanner.ScanLine(g, line, stack)
		out = append(out, LineTokens{Line: i, Ranges: ranges})
		stack = next
	}

	zerolog.Ctx(ctx).Trace().Int("lines", len(lines)).Int("open_regions", stack.Depth()).Msg("tokenized document")
	return out, nil
}

// TokenizeText splits text on newlines and tokenizes the result.
func TokenizeText(ctx context.Context, g *grammar.Grammar, text string) ([]LineTokens, error) {
	return Tokenize(ctx, g, splitLines(text))
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
