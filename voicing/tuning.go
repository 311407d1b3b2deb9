package voicing

import (
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

const DefaultTuning = "standard"

func mustMidi(name string, octave int) int {
	m, err := note.ToMidi(name, octave)
	if err != nil {
		panic(err)
	}
	return m
}

type tuningEntry struct {
	id     string
	tuning model.Tuning
}

// strings run low to high
var tunings = []tuningEntry{
	{"standard", model.Tuning{Name: "Standard (EADGBE)", Strings: model.Notes{
		mustMidi("E", 2), mustMidi("A", 2), mustMidi("D", 3), mustMidi("G", 3), mustMidi("B", 3), mustMidi("E", 4),
	}}},
	{"dropD", model.Tuning{Name: "Drop D", Strings: model.Notes{
		mustMidi("D", 2), mustMidi("A", 2), mustMidi("D", 3), mustMidi("G", 3), mustMidi("B", 3), mustMidi("E", 4),
	}}},
	{"openG", model.Tuning{Name: "Open G", Strings: model.Notes{
		mustMidi("D", 2), mustMidi("G", 2), mustMidi("D", 3), mustMidi("G", 3), mustMidi("B", 3), mustMidi("D", 4),
	}}},
	{"openD", model.Tuning{Name: "Open D", Strings: model.Notes{
		mustMidi("D", 2), mustMidi("A", 2), mustMidi("D", 3), mustMidi("F#", 3), mustMidi("A", 3), mustMidi("D", 4),
	}}},
	{"dadgad", model.Tuning{Name: "DADGAD", Strings: model.Notes{
		mustMidi("D", 2), mustMidi("A", 2), mustMidi("D", 3), mustMidi("G", 3), mustMidi("A", 3), mustMidi("D", 4),
	}}},
}

func copyTuning(t model.Tuning) model.Tuning {
	t.Strings = append(model.Notes(nil), t.Strings...)
	return t
}

func TuningNames() []string {
	res := make([]string, len(tunings))
	for i, e := range tunings {
		res[i] = e.id
	}
	return res
}

// LookupTuning reports whether id is a known tuning.
func LookupTuning(id string) (model.Tuning, bool) {
	for _, e := range tunings {
		if e.id == id {
			return copyTuning(e.tuning), true
		}
	}
	return model.Tuning{}, false
}

// Tuning falls back to standard tuning for unknown ids.
func Tuning(id string) model.Tuning {
	if t, ok := LookupTuning(id); ok {
		return t
	}
	return Standard()
}

func Standard() model.Tuning {
	return copyTuning(tunings[0].tuning)
}

func Tunings() []model.Tuning {
	res := make([]model.Tuning, len(tunings))
	for i, e := range tunings {
		res[i] = copyTuning(e.tuning)
	}
	return res
}

func isStandard(t model.Tuning) bool {
	std := tunings[0].tuning.Strings
	if len(t.Strings) != len(std) {
		return false
	}
	for i := range std {
		if t.Strings[i] != std[i] {
			return false
		}
	}
	return true
}
