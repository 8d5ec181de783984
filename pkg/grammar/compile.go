package grammar

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrUnknownRuleGroup means an include names a rule group absent from
	// the repository.
	ErrUnknownRuleGroup = errors.New("unknown rule group")

	// ErrCyclicInclude means a rule group transitively includes itself
	// without terminating in a non-include pattern.
	ErrCyclicInclude = errors.New("cyclic include")

	// ErrZeroWidthPattern means a pattern regex can match empty text,
	// which would stall the scanner.
	ErrZeroWidthPattern = errors.New("pattern can match empty text")

	// ErrMalformedRule means a rule entry is not exactly one of include,
	// match, or begin/end.
	ErrMalformedRule = errors.New("malformed rule")
)

// Load parses a JSON grammar document and compiles it into an immutable
// Grammar. All validation happens here: include resolution, cycle
// detection, and zero-width pattern rejection. A grammar that loads
// successfully never produces errors during scanning.
func Load(data []byte) (*Grammar, error) {
	var raw rawGrammar
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("unmarshaling grammar: %w", err)
	}
	return compile(raw)
}

func compile(raw rawGrammar) (*Grammar, error) {
	g := &Grammar{
		ScopeName: raw.ScopeName,
		Name:      raw.Name,
		FileTypes: raw.FileTypes,
		repo:      &Repository{groups: make(map[string][]Pattern, len(raw.Repository))},
	}

	var errs *multierror.Error

	patterns, err := compileRules(raw.Patterns)
	if err != nil {
		errs = multierror.Append(errs, errors.Errorf("top-level patterns: %w", err))
	}
	g.Patterns = patterns

	for name, rules := range raw.Repository {
		group, err := compileRules(rules)
		if err != nil {
			errs = multierror.Append(errs, errors.Errorf("rule group %q: %w", name, err))
			continue
		}
		g.repo.groups[name] = group
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	errs = multierror.Append(errs, validateIncludes(g))
	errs = multierror.Append(errs, validateAcyclic(g))
	errs = multierror.Append(errs, validateNonEmpty(g))
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	return g, nil
}

func compileRules(rules []rawRule) ([]Pattern, error) {
	patterns := make([]Pattern, 0, len(rules))
	for i, rule := range rules {
		p, err := compileRule(rule)
		if err != nil {
			return nil, errors.Errorf("rule %d: %w", i, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

func compileRule(rule rawRule) (Pattern, error) {
	switch {
	case rule.Include != "":
		name := rule.Include
		if name[0] == '#' {
			name = name[1:]
		}
		return &Include{Group: name}, nil

	case rule.Match != "":
		re, err := compileRegex(rule.Match)
		if err != nil {
			return nil, err
		}
		return &SimpleMatch{Scope: rule.Name, Regex: re}, nil

	case rule.Begin != "" && rule.End != "":
		begin, err := compileRegex(rule.Begin)
		if err != nil {
			return nil, err
		}
		end, err := compileRegex(rule.End)
		if err != nil {
			return nil, err
		}
		captures, err := compileCaptures(rule.BeginCaptures)
		if err != nil {
			return nil, err
		}
		inner, err := compileRules(rule.Patterns)
		if err != nil {
			return nil, err
		}
		return &BeginEnd{
			Scope:         rule.Name,
			Begin:         begin,
			End:           end,
			BeginCaptures: captures,
			Inner:         inner,
		}, nil

	case rule.Begin != "" || rule.End != "":
		return nil, errors.Errorf("%w: begin and end must be given together", ErrMalformedRule)

	default:
		return nil, errors.Errorf("%w: expected include, match, or begin/end", ErrMalformedRule)
	}
}

func compileCaptures(raw map[string]rawCapture) (map[int]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	captures := make(map[int]string, len(raw))
	for key, capture := range raw {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 {
			return nil, errors.Errorf("%w: capture index %q", ErrMalformedRule, key)
		}
		captures[index] = capture.Name
	}
	return captures, nil
}

// validateIncludes checks that every include, however deeply nested inside
// begin/end regions, resolves to a declared rule group.
func validateIncludes(g *Grammar) error {
	var errs *multierror.Error

	var walk func(patterns []Pattern)
	walk = func(patterns []Pattern) {
		for _, p := range patterns {
			switch p := p.(type) {
			case *Include:
				if _, ok := g.repo.groups[p.Group]; !ok {
					errs = multierror.Append(errs, errors.Errorf("include %q: %w", p.Group, ErrUnknownRuleGroup))
				}
			case *BeginEnd:
				walk(p.Inner)
			}
		}
	}

	walk(g.Patterns)
	for _, name := range sortedGroups(g.repo) {
		walk(g.repo.groups[name])
	}
	return errs.ErrorOrNil()
}

// validateAcyclic rejects include-only cycles at the pattern-list level.
// Includes inside a begin/end region's inner patterns do not count: the
// region's begin match terminates expansion, so region recursion is legal.
func validateAcyclic(g *Grammar) error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g.repo.groups))

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return errors.Errorf("rule group %q: %w", name, ErrCyclicInclude)
		case done:
			return nil
		}
		state[name] = visiting
		for _, p := range g.repo.groups[name] {
			inc, ok := p.(*Include)
			if !ok {
				continue
			}
			if _, exists := g.repo.groups[inc.Group]; !exists {
				continue // reported by validateIncludes
			}
			if err := visit(inc.Group); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}

	var errs *multierror.Error
	for _, name := range sortedGroups(g.repo) {
		if err := visit(name); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

// validateNonEmpty rejects any regex that can match zero-width text.
func validateNonEmpty(g *Grammar) error {
	var errs *multierror.Error

	check := func(re *Regex, what string) {
		if re.MatchesEmpty() {
			errs = multierror.Append(errs, errors.Errorf("%s %q: %w", what, re, ErrZeroWidthPattern))
		}
	}

	var walk func(patterns []Pattern)
	walk = func(patterns []Pattern) {
		for _, p := range patterns {
			switch p := p.(type) {
			case *SimpleMatch:
				check(p.Regex, "match")
			case *BeginEnd:
				check(p.Begin, "begin")
				check(p.End, "end")
				walk(p.Inner)
			}
		}
	}

	walk(g.Patterns)
	for _, name := range sortedGroups(g.repo) {
		walk(g.repo.groups[name])
	}
	return errs.ErrorOrNil()
}

// sortedGroups keeps validation error order stable across runs.
func sortedGroups(r *Repository) []string {
	names := r.Groups()
	sort.Strings(names)
	return names
}
