package semtok

import "strings"

// TokenType indexes into the semantic token legend advertised by the bau
// language server: comment, keyword, operator, number, string, type,
// parameter, variable, in that order.
type TokenType uint32

const (
	TokenComment TokenType = iota
	TokenKeyword
	TokenOperator
	TokenNumber
	TokenString
	TokenTypeName
	TokenParameter
	TokenVariable
)

// Legend returns the token type names in legend order.
func Legend() []string {
	return []string{
		"comment",
		"keyword",
		"operator",
		"number",
		"string",
		"type",
		"parameter",
		"variable",
	}
}

// String returns the legend name of the token type.
func (t TokenType) String() string {
	legend := Legend()
	if int(t) >= len(legend) {
		return "unknown"
	}
	return legend[t]
}

// TypeForScope maps a grammar scope name to a semantic token type.
// Scopes with no semantic counterpart (region content, for instance)
// report ok == false and produce no token.
func TypeForScope(scope string) (TokenType, bool) {
	switch {
	case strings.HasPrefix(scope, "comment."):
		return TokenComment, true
	case strings.HasPrefix(scope, "keyword.operator."):
		return TokenOperator, true
	case strings.HasPrefix(scope, "keyword."):
		return TokenKeyword, true
	case strings.HasPrefix(scope, "constant.numeric."):
		return TokenNumber, true
	case strings.HasPrefix(scope, "constant.language."):
		// Booleans ride the number type, matching the language server.
		return TokenNumber, true
	case strings.HasPrefix(scope, "string."):
		return TokenString, true
	case strings.HasPrefix(scope, "entity.name.type."), strings.HasPrefix(scope, "storage.type."):
		return TokenTypeName, true
	case strings.HasPrefix(scope, "entity.name.function."):
		return TokenVariable, true
	case strings.HasPrefix(scope, "variable."):
		return TokenVariable, true
	default:
		return 0, false
	}
}

// Token is one semantic token with absolute line/character coordinates.
type Token struct {
	Line   int
	Start  int
	Length int
	Type   TokenType
}
