package grammar

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Store manages a collection of compiled grammars, keyed by scope name.
// Grammars are immutable once loaded, so a single store can back any
// number of concurrent tokenization sessions.
type Store struct {
	grammars map[string]*Grammar
}

// NewStore creates a grammar store and loads the embedded grammars.
func NewStore(ctx context.Context) (*Store, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Msg("creating new grammar store")

	s := &Store{
		grammars: make(map[string]*Grammar),
	}

	entries, err := builtinGrammarsFS.ReadDir("grammars")
	if err != nil {
		return nil, errors.Errorf("reading embedded grammars: %w", err)
	}

	for _, entry := range entries {
		data, err := builtinGrammarsFS.ReadFile("grammars/" + entry.Name())
		if err != nil {
			return nil, errors.Errorf("reading embedded grammar %s: %w", entry.Name(), err)
		}

		g, err := Load(data)
		if err != nil {
			return nil, errors.Errorf("loading embedded grammar %s: %w", entry.Name(), err)
		}

		logger.Debug().Str("scope", g.ScopeName).Str("file", entry.Name()).Msg("loaded embedded grammar")
		s.grammars[g.ScopeName] = g
	}

	return s, nil
}

// LoadCustomGrammar compiles grammar JSON and registers it under its scope
// name, replacing any previous grammar with the same scope.
func (s *Store) LoadCustomGrammar(ctx context.Context, data []byte) (*Grammar, error) {
	g, err := Load(data)
	if err != nil {
		return nil, errors.Errorf("loading custom grammar: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("scope", g.ScopeName).Msg("loaded custom grammar")
	s.grammars[g.ScopeName] = g
	return g, nil
}

// Get retrieves a grammar by scope name.
func (s *Store) Get(scopeName string) (*Grammar, error) {
	g, ok := s.grammars[scopeName]
	if !ok {
		return nil, errors.Errorf("grammar not found: %s", scopeName)
	}
	return g, nil
}
