package grammar

// rawGrammar mirrors the tmLanguage-style JSON grammar document on disk.
// It is decoded as-is and compiled into an immutable Grammar.
type rawGrammar struct {
	ScopeName  string               `json:"scopeName"`
	Name       string               `json:"name,omitempty"`
	FileTypes  []string             `json:"fileTypes,omitempty"`
	Patterns   []rawRule            `json:"patterns"`
	Repository map[string][]rawRule `json:"repository,omitempty"`
}

// rawRule is a single raw rule entry. Exactly one of Include, Match, or
// Begin/End is expected to be set; anything else is a load error.
// Capture groups are addressed by string indices "1", "2", ... as in
// TextMate grammars.
type rawRule struct {
	Name          string                `json:"name,omitempty"`
	Match         string                `json:"match,omitempty"`
	Begin         string                `json:"begin,omitempty"`
	End           string                `json:"end,omitempty"`
	BeginCaptures map[string]rawCapture `json:"beginCaptures,omitempty"`
	Patterns      []rawRule             `json:"patterns,omitempty"`
	Include       string                `json:"include,omitempty"`
}

type rawCapture struct {
	Name string `json:"name"`
}
