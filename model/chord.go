package model

type Notes = []int

type ChordDefinition struct {
	Name      string `json:"name" yaml:"name"`
	Intervals []int  `json:"intervals" yaml:"intervals"`
	Suffix    string `json:"suffix" yaml:"suffix"`
}

type Chord struct {
	Root   string `json:"root" yaml:"root"`
	Type   string `json:"type" yaml:"type"`
	Notes  Notes  `json:"notes" yaml:"notes"`
	Symbol string `json:"symbol" yaml:"symbol"`
}

// NOTE: Missing and Extra are nil when empty, never a non-nil empty slice
type DetectedChord struct {
	Root       string  `json:"root" yaml:"root"`
	ChordType  string  `json:"chord_type" yaml:"chord_type"`
	Symbol     string  `json:"symbol" yaml:"symbol"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Missing    []int   `json:"missing,omitempty" yaml:"missing,omitempty"`
	Extra      []int   `json:"extra,omitempty" yaml:"extra,omitempty"`
}

type ScaleDefinition struct {
	Name      string `json:"name" yaml:"name"`
	Intervals []int  `json:"intervals" yaml:"intervals"`
}
