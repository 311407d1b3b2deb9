package chord

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

var (
	ErrUnknownChordType   = errors.New("unknown chord type")
	ErrInvalidChordSymbol = errors.New("invalid chord symbol")
)

const DefaultReferenceMidi = 60

var rootPattern = regexp.MustCompile(`^([A-G][#b]?)`)

type entry struct {
	id  string
	def model.ChordDefinition
}

// registry order is observable: it breaks detection ties and decides
// which suffix ParseSymbol matches first
var registry = []entry{
	{"major", model.ChordDefinition{Name: "Major", Intervals: []int{0, 4, 7}, Suffix: ""}},
	{"minor", model.ChordDefinition{Name: "Minor", Intervals: []int{0, 3, 7}, Suffix: "m"}},
	{"diminished", model.ChordDefinition{Name: "Diminished", Intervals: []int{0, 3, 6}, Suffix: "dim"}},
	{"augmented", model.ChordDefinition{Name: "Augmented", Intervals: []int{0, 4, 8}, Suffix: "aug"}},
	{"sus2", model.ChordDefinition{Name: "Suspended 2nd", Intervals: []int{0, 2, 7}, Suffix: "sus2"}},
	{"sus4", model.ChordDefinition{Name: "Suspended 4th", Intervals: []int{0, 5, 7}, Suffix: "sus4"}},
	{"dominant7", model.ChordDefinition{Name: "Dominant 7th", Intervals: []int{0, 4, 7, 10}, Suffix: "7"}},
	{"major7", model.ChordDefinition{Name: "Major 7th", Intervals: []int{0, 4, 7, 11}, Suffix: "maj7"}},
	{"minor7", model.ChordDefinition{Name: "Minor 7th", Intervals: []int{0, 3, 7, 10}, Suffix: "m7"}},
	{"diminished7", model.ChordDefinition{Name: "Diminished 7th", Intervals: []int{0, 3, 6, 9}, Suffix: "dim7"}},
	{"halfDiminished7", model.ChordDefinition{Name: "Half Diminished 7th", Intervals: []int{0, 3, 6, 10}, Suffix: "m7b5"}},
	{"major6", model.ChordDefinition{Name: "Major 6th", Intervals: []int{0, 4, 7, 9}, Suffix: "6"}},
	{"minor6", model.ChordDefinition{Name: "Minor 6th", Intervals: []int{0, 3, 7, 9}, Suffix: "m6"}},
	{"major9", model.ChordDefinition{Name: "Major 9th", Intervals: []int{0, 4, 7, 11, 14}, Suffix: "maj9"}},
	{"dominant9", model.ChordDefinition{Name: "Dominant 9th", Intervals: []int{0, 4, 7, 10, 14}, Suffix: "9"}},
	{"minor9", model.ChordDefinition{Name: "Minor 9th", Intervals: []int{0, 3, 7, 10, 14}, Suffix: "m9"}},
	{"add9", model.ChordDefinition{Name: "Add 9", Intervals: []int{0, 4, 7, 14}, Suffix: "add9"}},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, e := range registry {
		m[e.id] = i
	}
	return m
}()

// Types lists every registered chord type in registry order.
func Types() []string {
	res := make([]string, len(registry))
	for i, e := range registry {
		res[i] = e.id
	}
	return res
}

// Definition returns a copy so callers can't mutate the registry.
func Definition(typeID string) (model.ChordDefinition, bool) {
	i, ok := byID[typeID]
	if !ok {
		return model.ChordDefinition{}, false
	}
	def := registry[i].def
	def.Intervals = append([]int(nil), def.Intervals...)
	return def, true
}

// Build places the root at the first MIDI number >= referenceMidi with the
// root's pitch class and stacks the type's intervals on top of it.
func Build(root string, typeID string, referenceMidi int) (model.Chord, error) {
	def, ok := Definition(typeID)
	if !ok {
		return model.Chord{}, fmt.Errorf("%w: %q", ErrUnknownChordType, typeID)
	}
	pc, err := note.Index(root)
	if err != nil {
		return model.Chord{}, err
	}

	rootMidi := referenceMidi + note.PitchClass(pc-referenceMidi)
	notes := make(model.Notes, len(def.Intervals))
	for i, interval := range def.Intervals {
		notes[i] = rootMidi + interval
	}

	return model.Chord{
		Root:   root,
		Type:   typeID,
		Notes:  notes,
		Symbol: root + def.Suffix,
	}, nil
}

type Parsed struct {
	Root string `json:"root" yaml:"root"`
	Type string `json:"type" yaml:"type"`
}

// SplitRoot separates a leading root token from the rest of a symbol.
func SplitRoot(symbol string) (root string, suffix string, ok bool) {
	m := rootPattern.FindStringSubmatch(symbol)
	if m == nil {
		return "", "", false
	}
	return m[1], symbol[len(m[0]):], true
}

// ParseSymbol matches the suffix by exact equality against registered
// suffixes, so "Cmaj7add11" does not parse. The root comes back in sharp spelling.
func ParseSymbol(symbol string) (Parsed, bool) {
	root, suffix, ok := SplitRoot(symbol)
	if !ok {
		return Parsed{}, false
	}
	for _, e := range registry {
		if e.def.Suffix == suffix {
			return Parsed{Root: note.NormalizeToSharp(root), Type: e.id}, true
		}
	}
	return Parsed{}, false
}

func FromSymbol(symbol string, referenceMidi int) (model.Chord, error) {
	p, ok := ParseSymbol(symbol)
	if !ok {
		return model.Chord{}, fmt.Errorf("%w: %q", ErrInvalidChordSymbol, symbol)
	}
	return Build(p.Root, p.Type, referenceMidi)
}
