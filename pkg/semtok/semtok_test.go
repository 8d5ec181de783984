package semtok_test

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/semtok"
)

func setup(t *testing.T) (context.Context, *grammar.Grammar) {
	t.Helper()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	store, err := grammar.NewStore(ctx)
	require.NoError(t, err)
	g, err := store.Get("source.bau")
	require.NoError(t, err)
	return ctx, g
}

func TestTypeForScope(t *testing.T) {
	tests := []struct {
		scope    string
		expected semtok.TokenType
		ok       bool
	}{
		{"comment.line.double-slash.bau", semtok.TokenComment, true},
		{"keyword.control.bau", semtok.TokenKeyword, true},
		{"keyword.control.fn.bau", semtok.TokenKeyword, true},
		{"keyword.operator.bau", semtok.TokenOperator, true},
		{"constant.numeric.bau", semtok.TokenNumber, true},
		{"constant.language.bau", semtok.TokenNumber, true},
		{"string.quoted.double.bau", semtok.TokenString, true},
		{"entity.name.type.bau", semtok.TokenTypeName, true},
		{"entity.name.function.bau", semtok.TokenVariable, true},
		{"variable.other.bau", semtok.TokenVariable, true},
		{"meta.block.bau", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.scope, func(t *testing.T) {
			tokenType, ok := semtok.TypeForScope(tt.scope)
			assert.Equal(t, tt.ok, ok, "mapping availability should match")
			if tt.ok {
				assert.Equal(t, tt.expected, tokenType, "token type should match")
			}
		})
	}
}

func TestLegend(t *testing.T) {
	legend := semtok.Legend()
	require.Len(t, legend, 8, "legend matches the language server's")
	assert.Equal(t, "comment", semtok.TokenComment.String())
	assert.Equal(t, "type", semtok.TokenTypeName.String())
	assert.Equal(t, "unknown", semtok.TokenType(99).String())
}

func TestTokensForText(t *testing.T) {
	ctx, g := setup(t)

	tokens, err := semtok.TokensForText(ctx, g, "fn main() -> int {\n    return 0\n}")
	require.NoError(t, err)

	assert.Equal(t, []semtok.Token{
		{Line: 0, Start: 0, Length: 2, Type: semtok.TokenKeyword},
		{Line: 0, Start: 3, Length: 4, Type: semtok.TokenVariable},
		{Line: 0, Start: 13, Length: 3, Type: semtok.TokenTypeName},
		{Line: 1, Start: 4, Length: 6, Type: semtok.TokenKeyword},
		{Line: 1, Start: 11, Length: 1, Type: semtok.TokenNumber},
	}, tokens, "tokens should be in document order with legend types")
}

func TestEncode(t *testing.T) {
	tokens := []semtok.Token{
		{Line: 0, Start: 0, Length: 2, Type: semtok.TokenKeyword},
		{Line: 0, Start: 3, Length: 4, Type: semtok.TokenVariable},
		{Line: 2, Start: 4, Length: 6, Type: semtok.TokenKeyword},
	}

	data := semtok.Encode(tokens)
	assert.Equal(t, []uint32{
		0, 0, 2, uint32(semtok.TokenKeyword), 0,
		0, 3, 4, uint32(semtok.TokenVariable), 0,
		2, 4, 6, uint32(semtok.TokenKeyword), 0,
	}, data, "deltas restart the character offset on a new line")

	assert.Empty(t, semtok.Encode(nil), "no tokens encode to no data")
}
