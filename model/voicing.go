package model

import "github.com/jsphweid/fretdex/util"

// Muted marks a string that is not played, in both Frets and Notes.
const Muted = -1

type Tuning struct {
	Name    string `json:"name" yaml:"name"`
	Strings Notes  `json:"strings" yaml:"strings"`
}

type Voicing struct {
	Frets []int `json:"frets" yaml:"frets"`
	Notes Notes `json:"notes" yaml:"notes"`
}

func (v Voicing) PlayedStrings() int {
	var n int
	for _, f := range v.Frets {
		if f != Muted {
			n++
		}
	}
	return n
}

// PlayedNotes drops muted strings.
func (v Voicing) PlayedNotes() Notes {
	return util.FilterOut(v.Notes, Muted)
}
