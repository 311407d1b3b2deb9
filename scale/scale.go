package scale

import (
	"errors"
	"fmt"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

var ErrUnknownScaleType = errors.New("unknown scale type")

type entry struct {
	id  string
	def model.ScaleDefinition
}

var registry = []entry{
	{"major", model.ScaleDefinition{Name: "Major", Intervals: []int{0, 2, 4, 5, 7, 9, 11}}},
	{"minor", model.ScaleDefinition{Name: "Natural Minor", Intervals: []int{0, 2, 3, 5, 7, 8, 10}}},
	{"harmonicMinor", model.ScaleDefinition{Name: "Harmonic Minor", Intervals: []int{0, 2, 3, 5, 7, 8, 11}}},
	{"melodicMinor", model.ScaleDefinition{Name: "Melodic Minor", Intervals: []int{0, 2, 3, 5, 7, 9, 11}}},
	{"dorian", model.ScaleDefinition{Name: "Dorian", Intervals: []int{0, 2, 3, 5, 7, 9, 10}}},
	{"phrygian", model.ScaleDefinition{Name: "Phrygian", Intervals: []int{0, 1, 3, 5, 7, 8, 10}}},
	{"lydian", model.ScaleDefinition{Name: "Lydian", Intervals: []int{0, 2, 4, 6, 7, 9, 11}}},
	{"mixolydian", model.ScaleDefinition{Name: "Mixolydian", Intervals: []int{0, 2, 4, 5, 7, 9, 10}}},
	{"pentatonicMajor", model.ScaleDefinition{Name: "Major Pentatonic", Intervals: []int{0, 2, 4, 7, 9}}},
	{"pentatonicMinor", model.ScaleDefinition{Name: "Minor Pentatonic", Intervals: []int{0, 3, 5, 7, 10}}},
	{"blues", model.ScaleDefinition{Name: "Blues", Intervals: []int{0, 3, 5, 6, 7, 10}}},
	{"chromatic", model.ScaleDefinition{Name: "Chromatic", Intervals: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, e := range registry {
		m[e.id] = i
	}
	return m
}()

// triad suffix per degree, only major and natural minor have tables
var diatonicQualities = map[string][7]string{
	"major": {"", "m", "m", "", "", "m", "dim"},
	"minor": {"m", "dim", "", "m", "m", "", ""},
}

func Types() []string {
	res := make([]string, len(registry))
	for i, e := range registry {
		res[i] = e.id
	}
	return res
}

func Definition(typeID string) (model.ScaleDefinition, bool) {
	i, ok := byID[typeID]
	if !ok {
		return model.ScaleDefinition{}, false
	}
	def := registry[i].def
	def.Intervals = append([]int(nil), def.Intervals...)
	return def, true
}

// Generate anchors the root the same way chord.Build does.
func Generate(root string, typeID string, referenceMidi int) (model.Notes, error) {
	def, ok := Definition(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScaleType, typeID)
	}
	pc, err := note.Index(root)
	if err != nil {
		return nil, err
	}

	rootMidi := referenceMidi + note.PitchClass(pc-referenceMidi)
	notes := make(model.Notes, len(def.Intervals))
	for i, interval := range def.Intervals {
		notes[i] = rootMidi + interval
	}
	return notes, nil
}

// Degree is 1-based; ok is false when the note is outside the scale.
func Degree(scale model.Notes, midi int) (int, bool) {
	pc := note.PitchClass(midi)
	for i, n := range scale {
		if note.PitchClass(n) == pc {
			return i + 1, true
		}
	}
	return 0, false
}

func IsNoteInScale(midi int, scale model.Notes) bool {
	_, ok := Degree(scale, midi)
	return ok
}

// DiatonicChords returns the seven triad symbols of a major or natural minor
// key, sharp-spelled. Other scale types have no quality table and yield nil.
func DiatonicChords(root string, typeID string) ([]string, error) {
	pc, err := note.Index(root)
	if err != nil {
		return nil, err
	}
	qualities, ok := diatonicQualities[typeID]
	if !ok {
		return nil, nil
	}
	def, _ := Definition(typeID)

	res := make([]string, 0, len(qualities))
	for degree, suffix := range qualities {
		chordRoot := note.SharpNames[(pc+def.Intervals[degree])%12]
		res = append(res, chordRoot+suffix)
	}
	return res, nil
}

func RelativeMinor(majorRoot string) (string, error) {
	pc, err := note.Index(majorRoot)
	if err != nil {
		return "", err
	}
	return note.SharpNames[(pc+9)%12], nil
}

func RelativeMajor(minorRoot string) (string, error) {
	pc, err := note.Index(minorRoot)
	if err != nil {
		return "", err
	}
	return note.SharpNames[(pc+3)%12], nil
}
