package grammar

import (
	"regexp"
	"time"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"
)

// fallbackTimeout bounds backtracking for patterns the linear-time engine
// cannot compile. A grammar regex that needs longer than this on a single
// line is considered a non-match.
const fallbackTimeout = time.Second

// Regex wraps a compiled grammar regex. Patterns are compiled with the
// stdlib engine when possible, which guarantees linear-time matching;
// patterns using backtracking-only syntax (lookarounds, backreferences)
// fall back to regexp2 with a match timeout.
type Regex struct {
	expr     string
	std      *regexp.Regexp
	fallback *regexp2.Regexp
}

func compileRegex(expr string) (*Regex, error) {
	std, err := regexp.Compile(expr)
	if err == nil {
		return &Regex{expr: expr, std: std}, nil
	}

	fb, err2 := regexp2.Compile(expr, regexp2.None)
	if err2 != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", expr, err2)
	}
	fb.MatchTimeout = fallbackTimeout
	return &Regex{expr: expr, fallback: fb}, nil
}

func (r *Regex) String() string {
	return r.expr
}

// MatchesEmpty reports whether the pattern can match empty text. Such
// patterns cannot guarantee scan progress and are rejected at load time.
func (r *Regex) MatchesEmpty() bool {
	if r.std != nil {
		return r.std.MatchString("")
	}
	m, err := r.fallback.FindStringMatch("")
	return err == nil && m != nil
}

// FindSubmatchIndexFrom returns the leftmost match of r in s starting at
// or after byte offset start, as stdlib-style submatch index pairs with
// absolute byte offsets. Unmatched groups are (-1, -1). Returns nil when
// there is no match (including fallback-engine timeouts).
func (r *Regex) FindSubmatchIndexFrom(s string, start int) []int {
	if start > len(s) {
		return nil
	}
	if r.std != nil {
		loc := r.std.FindStringSubmatchIndex(s[start:])
		if loc == nil {
			return nil
		}
		abs := make([]int, len(loc))
		for i, off := range loc {
			if off < 0 {
				abs[i] = -1
				continue
			}
			abs[i] = off + start
		}
		return abs
	}
	return r.findFallback(s, start)
}

// findFallback matches via regexp2, translating its rune-based capture
// offsets back to byte offsets.
func (r *Regex) findFallback(s string, start int) []int {
	runes := []rune(s)
	byteOf := make([]int, len(runes)+1)
	off := 0
	for i, ru := range runes {
		byteOf[i] = off
		off += len(string(ru))
	}
	byteOf[len(runes)] = off

	startRune := 0
	for startRune < len(runes) && byteOf[startRune] < start {
		startRune++
	}

	m, err := r.fallback.FindRunesMatchStartingAt(runes, startRune)
	if err != nil || m == nil {
		return nil
	}

	groups := m.Groups()
	loc := make([]int, 0, len(groups)*2)
	for _, g := range groups {
		if len(g.Captures) == 0 {
			loc = append(loc, -1, -1)
			continue
		}
		loc = append(loc, byteOf[g.Index], byteOf[g.Index+g.Length])
	}
	return loc
}
