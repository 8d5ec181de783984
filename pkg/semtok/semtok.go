/*
Package semtok converts tokenizer output into LSP semantic tokens.

	  Input                Convert               Encode
	    |                     |                    |
	    v                     v                    v
	+-----------+      +-------------+      +-------------+
	| LineTokens|  ->  | Tokens with |  ->  | delta-coded |
	| (scopes)  |      | legend types|      | uint32 data |
	+-----------+      +-------------+      +-------------+

Scope names come from the grammar engine; the legend matches the one the
external bau language server advertises, so both classifiers agree on
token boundaries as far as the presentation layer can tell.
*/
package semtok

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/bau-lang/bauscope/pkg/grammar"
	"github.com/bau-lang/bauscope/pkg/tokenizer"
)

// TokensForText tokenizes text with the given grammar and returns its
// semantic tokens in document order.
func TokensForText(ctx context.Context, g *grammar.Grammar, text string) ([]Token, error) {
	lines, err := tokenizer.TokenizeText(ctx, g, text)
	if err != nil {
		return nil, err
	}
	return FromLineTokens(ctx, lines), nil
}

// FromLineTokens converts scoped ranges to semantic tokens, dropping
// ranges whose scope has no legend type.
func FromLineTokens(ctx context.Context, lines []tokenizer.LineTokens) []Token {
	var tokens []Token
	dropped := 0

	for _, line := range lines {
		for _, r := range line.Ranges {
			tokenType, ok := TypeForScope(r.Scope)
			if !ok {
				dropped++
				continue
			}
			tokens = append(tokens, Token{
				Line:   line.Line,
				Start:  r.Start,
				Length: r.End - r.Start,
				Type:   tokenType,
			})
		}
	}

	if dropped > 0 {
		zerolog.Ctx(ctx).Trace().Int("dropped", dropped).Msg("ranges without semantic token type")
	}
	return tokens
}

// Encode delta-encodes tokens per the LSP wire format: five uint32 values
// per token (deltaLine, deltaStart, length, tokenType, tokenModifiers).
// Tokens must already be in document order, which FromLineTokens
// guarantees.
func Encode(tokens []Token) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	prevLine := 0
	prevStart := 0

	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		deltaStart := token.Start
		if deltaLine == 0 {
			deltaStart = token.Start - prevStart
		}

		data = append(data,
			uint32(deltaLine),
			uint32(deltaStart),
			uint32(token.Length),
			uint32(token.Type),
			0,
		)

		prevLine = token.Line
		prevStart = token.Start
	}
	return data
}
