package model

const DefaultTempo = 120

type ProgressionChord struct {
	Chord        Chord   `json:"chord" yaml:"chord"`
	Duration     float64 `json:"duration" yaml:"duration"`
	RomanNumeral string  `json:"roman_numeral,omitempty" yaml:"roman_numeral,omitempty"`
}

type Progression struct {
	Name   string             `json:"name" yaml:"name"`
	Key    string             `json:"key" yaml:"key"`
	Chords []ProgressionChord `json:"chords" yaml:"chords"`
	Tempo  float64            `json:"tempo" yaml:"tempo"`
}

func (p Progression) TempoOrDefault() float64 {
	if p.Tempo <= 0 {
		return DefaultTempo
	}
	return p.Tempo
}
