package grammar

import (
	"gitlab.com/tozd/go/errors"
)

// Pattern is the closed set of rule kinds a grammar can contain.
// Implementations are SimpleMatch, BeginEnd, and Include.
type Pattern interface {
	isPattern()
}

// SimpleMatch assigns a scope name to every match of a single-line regex.
type SimpleMatch struct {
	Scope string
	Regex *Regex
}

// BeginEnd opens a region at a begin-match and closes it at the first
// end-match. While the region is open, only Inner patterns (plus the end
// check) apply. BeginCaptures binds capture-group indices of the begin
// regex to scope names. Scope, when set, names the region content itself.
type BeginEnd struct {
	Scope         string
	Begin         *Regex
	End           *Regex
	BeginCaptures map[int]string
	Inner         []Pattern
}

// Include is a named reference into the grammar's repository, resolved
// before matching. Unresolved or cyclic includes are load-time errors.
type Include struct {
	Group string
}

func (*SimpleMatch) isPattern() {}
func (*BeginEnd) isPattern()    {}
func (*Include) isPattern()     {}

// Repository maps rule-group names to ordered pattern lists. It is built
// once at load time and never mutated during scanning, so it is safe to
// share across documents and goroutines.
type Repository struct {
	groups map[string][]Pattern
}

// Resolve returns the ordered pattern list registered under name.
func (r *Repository) Resolve(name string) ([]Pattern, error) {
	group, ok := r.groups[name]
	if !ok {
		return nil, errors.Errorf("resolving %q: %w", name, ErrUnknownRuleGroup)
	}
	return group, nil
}

// Groups returns the declared rule-group names, in no particular order.
func (r *Repository) Groups() []string {
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	return names
}

// Grammar is a compiled, immutable grammar: the top-level pattern list
// plus the repository its includes resolve against.
type Grammar struct {
	ScopeName string
	Name      string
	FileTypes []string
	Patterns  []Pattern

	repo *Repository
}

// Repository returns the grammar's rule-group repository.
func (g *Grammar) Repository() *Repository {
	return g.repo
}
