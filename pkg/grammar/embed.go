package grammar

import "embed"

// builtinGrammarsFS carries the grammars shipped with the binary.
//
//go:embed grammars/*.tmLanguage.json
var builtinGrammarsFS embed.FS
