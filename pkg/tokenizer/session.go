package tokenizer

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/scanner"
)

// Session keeps a document tokenized across edits. It caches, for every
// line, the region stack entering that line; since stacks are persistent
// values, cached entries stay valid no matter what is rescanned later.
// A session is not safe for concurrent use; use one session per document.
type Session struct {
	id      string
	grammar *grammar.Grammar
	lines   []string

	// entry[i] is the stack entering line i; entry[len(lines)] is the
	// stack after the last line.
	entry  []scanner.RegionStack
	tokens []LineTokens

	lastRescanned int
}

// NewSession tokenizes text fully and returns a session ready for edits.
func NewSession(ctx context.Context, g *grammar.Grammar, text string) (*Session, error) {
	s := &Session{
		id:      uuid.NewString(),
		grammar: g,
		lines:   splitLines(text),
	}

	if err := s.rescan(ctx, 0); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("session", s.id).
		Int("lines", len(s.lines)).
		Msg("created tokenizer session")
	return s, nil
}

// ID returns the session identifier used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Tokens returns the current per-line ranges for the whole document.
func (s *Session) Tokens() []LineTokens {
	return s.tokens
}

// FinalStack returns the region stack after the last line. A non-empty
// stack means the document ends inside an unterminated region.
func (s *Session) FinalStack() scanner.RegionStack {
	return s.entry[len(s.lines)]
}

// LastRescanned reports how many lines the most recent operation actually
// scanned, for observability.
func (s *Session) LastRescanned() int {
	return s.lastRescanned
}

// Edit replaces the text of one line and retokenizes. Lines before the
// edit are reused as-is. Rescanning runs from the edited line and stops
// as soon as a line's exit stack matches the cached stack entering the
// next line, since every later line would reproduce its cached result.
func (s *Session) Edit(ctx context.Context, line int, text string) error {
	if line < 0 || line >= len(s.lines) {
		return errors.Errorf("edit line %d out of range [0, %d)", line, len(s.lines))
	}
	s.lines[line] = text

	if err := s.rescan(ctx, line); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().
		Str("session", s.id).
		Int("line", line).
		Int("rescanned", s.lastRescanned).
		Msg("applied edit")
	return nil
}

func (s *Session) rescan(ctx context.Context, from int) error {
	full := s.entry == nil
	if full {
		s.entry = make([]scanner.RegionStack, len(s.lines)+1)
		s.tokens = make([]LineTokens, len(s.lines))
	}

	stack := s.entry[from]
	scanned := 0
	for i := from; i < len(s.lines); i++ {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rescan canceled at line %d: %w", i, err)
		}

		ranges, next := scanner.ScanLine(s.grammar, s.lines[i], stack)
		s.tokens[i] = LineTokens{Line: i, Ranges: ranges}
		scanned++

		if !full && next.Equal(s.entry[i+1]) {
			// Converged with the previous pass; every later line would
			// reproduce its cached result.
			break
		}
		s.entry[i+1] = next
		stack = next
	}

	s.lastRescanned = scanned
	return nil
}
