// Package scanner classifies single lines of source text against a
// compiled grammar. ScanLine is a pure function: all cross-line state
// lives in the RegionStack value threaded between calls, which is what
// makes document tokenization restartable from any cached line boundary.
package scanner

import (
	"sort"

	"github.com/bau-lang/bauscope/pkg/grammar"
)

// ScopedRange assigns a scope name to a half-open byte range [Start, End)
// within one line. Ranges are ordered by start offset; when a wider range
// encloses a narrower one (a region scope around a capture scope) the
// wider range sorts first.
type ScopedRange struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Scope string `json:"scope"`
}

// ScanLine classifies one line given the region stack left by the
// previous line, returning the line's scoped ranges and the stack to
// carry into the next line.
//
// Matching is left to right. At each cursor position the candidate
// patterns are the innermost open region's inner patterns (with that
// region's end regex always tested first) or, at top level, the grammar's
// top-level pattern list. Among candidates the earliest-starting match
// wins; ties go to the pattern declared first. Text no pattern claims is
// left unclassified.
//
// An end regex may close its region on the same line the begin matched;
// the begin match itself is never rescanned. A region whose end never
// matches stays open, and the line's remainder belongs to it.
func ScanLine(g *grammar.Grammar, line string, stack RegionStack) ([]ScopedRange, RegionStack) {
	var ranges []ScopedRange
	cursor := 0
	segStart := 0 // start of the innermost region's content segment on this line

	for cursor < len(line) {
		if stack.Empty() {
			winner, loc := findMatch(g, g.Patterns, line, cursor)
			if loc == nil {
				break
			}
			switch p := winner.(type) {
			case *grammar.SimpleMatch:
				ranges = appendMatch(ranges, p, loc)
			case *grammar.BeginEnd:
				ranges = appendCaptures(ranges, p, loc)
				stack = stack.Push(p)
				segStart = loc[0] // region scope covers its begin match
			}
			cursor = loc[1]
			continue
		}

		region := stack.Top()
		endLoc := region.End.FindSubmatchIndexFrom(line, cursor)
		if endLoc != nil && endLoc[1] <= endLoc[0] {
			endLoc = nil
		}
		winner, loc := findMatch(g, region.Inner, line, cursor)

		// The pop check wins whenever the end match starts no later than
		// the best inner match.
		if endLoc != nil && (loc == nil || endLoc[0] <= loc[0]) {
			if region.Scope != "" && endLoc[1] > segStart {
				ranges = append(ranges, ScopedRange{Start: segStart, End: endLoc[1], Scope: region.Scope})
			}
			stack = stack.Pop()
			cursor = endLoc[1]
			segStart = cursor
			continue
		}

		if loc == nil {
			// No end, no inner match: the rest of the line is region content.
			if region.Scope != "" && len(line) > segStart {
				ranges = append(ranges, ScopedRange{Start: segStart, End: len(line), Scope: region.Scope})
			}
			return sorted(ranges), stack
		}

		switch p := winner.(type) {
		case *grammar.SimpleMatch:
			// Inner matches sit inside the region segment; the segment is
			// not interrupted.
			ranges = appendMatch(ranges, p, loc)
		case *grammar.BeginEnd:
			if region.Scope != "" && loc[0] > segStart {
				ranges = append(ranges, ScopedRange{Start: segStart, End: loc[0], Scope: region.Scope})
			}
			ranges = appendCaptures(ranges, p, loc)
			stack = stack.Push(p)
			segStart = loc[0]
		}
		cursor = loc[1]
	}

	if top := stack.Top(); top != nil && top.Scope != "" && len(line) > segStart {
		ranges = append(ranges, ScopedRange{Start: segStart, End: len(line), Scope: top.Scope})
	}
	return sorted(ranges), stack
}

func appendMatch(ranges []ScopedRange, p *grammar.SimpleMatch, loc []int) []ScopedRange {
	if p.Scope == "" {
		return ranges
	}
	return append(ranges, ScopedRange{Start: loc[0], End: loc[1], Scope: p.Scope})
}

// appendCaptures emits one range per capture group bound in the begin
// pattern, in group-index order. Groups that did not participate in the
// match are skipped.
func appendCaptures(ranges []ScopedRange, p *grammar.BeginEnd, loc []int) []ScopedRange {
	indices := make([]int, 0, len(p.BeginCaptures))
	for index := range p.BeginCaptures {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	for _, index := range indices {
		if 2*index+1 >= len(loc) || loc[2*index] < 0 {
			continue
		}
		ranges = append(ranges, ScopedRange{
			Start: loc[2*index],
			End:   loc[2*index+1],
			Scope: p.BeginCaptures[index],
		})
	}
	return ranges
}

// findMatch returns the winning pattern among the candidates and its
// submatch indices, or nil when nothing matches in the remaining text.
// Includes are expanded in declared order before matching. Zero-width
// matches are impossible for loaded grammars and skipped defensively.
func findMatch(g *grammar.Grammar, patterns []grammar.Pattern, line string, cursor int) (grammar.Pattern, []int) {
	var bestPat grammar.Pattern
	var best []int

	for _, p := range expand(g, patterns) {
		var re *grammar.Regex
		switch p := p.(type) {
		case *grammar.SimpleMatch:
			re = p.Regex
		case *grammar.BeginEnd:
			re = p.Begin
		default:
			continue
		}

		loc := re.FindSubmatchIndexFrom(line, cursor)
		if loc == nil || loc[1] <= loc[0] {
			continue
		}
		if best == nil || loc[0] < best[0] {
			bestPat, best = p, loc
		}
		if best[0] == cursor {
			// Nothing declared later can start earlier.
			break
		}
	}
	return bestPat, best
}

// expand inlines include references against the repository, preserving
// declared order. Resolution cannot fail for a loaded grammar; a dangling
// include is skipped rather than matched.
func expand(g *grammar.Grammar, patterns []grammar.Pattern) []grammar.Pattern {
	out := make([]grammar.Pattern, 0, len(patterns))
	for _, p := range patterns {
		if inc, ok := p.(*grammar.Include); ok {
			group, err := g.Repository().Resolve(inc.Group)
			if err != nil {
				continue
			}
			out = append(out, expand(g, group)...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func sorted(ranges []ScopedRange) []ScopedRange {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].Start != ranges[j].Start {
			return ranges[i].Start < ranges[j].Start
		}
		return ranges[i].End > ranges[j].End
	})
	return ranges
}
