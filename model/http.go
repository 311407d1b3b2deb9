package model

type DetectRequestBody struct {
	Notes Notes `json:"notes"`
}

type DetectFretsRequestBody struct {
	Frets  []int  `json:"frets"`
	Tuning string `json:"tuning"`
}

type DetectResponse struct {
	Chords     []DetectedChord `json:"chords"`
	MostLikely *DetectedChord  `json:"most_likely"`
	Formatted  []string        `json:"formatted"`
}

type ChordResponse struct {
	Chord      Chord           `json:"chord"`
	Definition ChordDefinition `json:"definition"`
}

type VoicingsResponse struct {
	Chord    Chord     `json:"chord"`
	Tuning   Tuning    `json:"tuning"`
	Voicings []Voicing `json:"voicings"`
	Presets  []Voicing `json:"presets,omitempty"`
}

type ScaleResponse struct {
	Root     string        `json:"root"`
	Type     string        `json:"type"`
	Notes    Notes         `json:"notes"`
	Diatonic []string      `json:"diatonic"`
	Relative string        `json:"relative,omitempty"`
	Checked  []NoteInScale `json:"checked,omitempty"`
}

// NoteInScale answers whether a note belongs to a scale. Degree is 1-based
// and omitted when the note is outside.
type NoteInScale struct {
	Note    int  `json:"note"`
	InScale bool `json:"in_scale"`
	Degree  int  `json:"degree,omitempty"`
}

type ProgressionRequestBody struct {
	Name    string   `json:"name"`
	Key     string   `json:"key"`
	Roman   []string `json:"roman,omitempty"`
	Symbols []string `json:"symbols,omitempty"`
	Tempo   float64  `json:"tempo,omitempty"`
}

type TransposeRequestBody struct {
	Progression Progression `json:"progression"`
	Key         string      `json:"key"`
}

type ExportChordRequestBody struct {
	Symbol   string  `json:"symbol"`
	Duration float64 `json:"duration,omitempty"`
	Tempo    float64 `json:"tempo,omitempty"`
}

type CatalogResponse struct {
	ChordTypes   []string `json:"chord_types"`
	ScaleTypes   []string `json:"scale_types"`
	Tunings      []string `json:"tunings"`
	Progressions []string `json:"progressions"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
