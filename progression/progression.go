package progression

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

var (
	ErrInvalidRomanNumeral = errors.New("invalid roman numeral")
	ErrInvalidChordSymbol  = chord.ErrInvalidChordSymbol
	ErrUnknownPreset       = errors.New("unknown preset progression")
)

// DefaultDuration is one 4/4 bar.
const DefaultDuration = 4

var romanToDegree = map[string]int{
	"I": 0, "i": 0,
	"II": 1, "ii": 1,
	"III": 2, "iii": 2,
	"IV": 3, "iv": 3,
	"V": 4, "v": 4,
	"VI": 5, "vi": 5,
	"VII": 6, "vii": 6,
}

// degrees are always measured on the major scale, whatever the key's mode
var majorScaleIntervals = [7]int{0, 2, 4, 5, 7, 9, 11}

// checked in order with strings.Contains; longer patterns must come first so
// "m7b5" is not read as "m7" and "maj7" is not read as "7"
var suffixPatterns = []struct {
	pattern string
	typeID  string
}{
	{"m7b5", "halfDiminished7"},
	{"dim7", "diminished7"},
	{"maj7", "major7"},
	{"m7", "minor7"},
	{"sus4", "sus4"},
	{"sus2", "sus2"},
	{"dim", "diminished"},
	{"aug", "augmented"},
	{"7", "dominant7"},
	{"m", "minor"},
}

func tempoOrDefault(tempo float64) float64 {
	if tempo <= 0 {
		return model.DefaultTempo
	}
	return tempo
}

// RomanNumeralToChord reads quality from letter case only: upper is major,
// lower is minor.
func RomanNumeralToChord(numeral string, key string, referenceMidi int) (model.Chord, error) {
	degree, ok := romanToDegree[numeral]
	if !ok {
		return model.Chord{}, fmt.Errorf("%w: %q", ErrInvalidRomanNumeral, numeral)
	}
	keyIndex, err := note.Index(key)
	if err != nil {
		return model.Chord{}, err
	}

	typeID := "major"
	if numeral == strings.ToLower(numeral) {
		typeID = "minor"
	}
	root := note.SharpNames[(keyIndex+majorScaleIntervals[degree])%12]
	return chord.Build(root, typeID, referenceMidi)
}

// CreateFromRoman aborts on the first bad numeral.
func CreateFromRoman(name string, key string, numerals []string, tempo float64) (model.Progression, error) {
	chords := make([]model.ProgressionChord, 0, len(numerals))
	for _, rn := range numerals {
		c, err := RomanNumeralToChord(rn, key, chord.DefaultReferenceMidi)
		if err != nil {
			return model.Progression{}, err
		}
		chords = append(chords, model.ProgressionChord{
			Chord:        c,
			Duration:     DefaultDuration,
			RomanNumeral: rn,
		})
	}

	return model.Progression{
		Name:   name,
		Key:    key,
		Chords: chords,
		Tempo:  tempoOrDefault(tempo),
	}, nil
}

// SymbolChordType classifies a suffix by substring containment, unlike
// chord.ParseSymbol which needs an exact suffix. Unmatched suffixes are major.
func SymbolChordType(suffix string) string {
	for _, p := range suffixPatterns {
		if strings.Contains(suffix, p.pattern) {
			return p.typeID
		}
	}
	return "major"
}

func CreateFromSymbols(name string, key string, symbols []string, tempo float64) (model.Progression, error) {
	if _, err := note.Index(key); err != nil {
		return model.Progression{}, err
	}

	chords := make([]model.ProgressionChord, 0, len(symbols))
	for _, symbol := range symbols {
		root, suffix, ok := chord.SplitRoot(symbol)
		if !ok {
			return model.Progression{}, fmt.Errorf("%w: %q", ErrInvalidChordSymbol, symbol)
		}
		c, err := chord.Build(root, SymbolChordType(suffix), chord.DefaultReferenceMidi)
		if err != nil {
			return model.Progression{}, err
		}
		chords = append(chords, model.ProgressionChord{
			Chord:    c,
			Duration: DefaultDuration,
		})
	}

	return model.Progression{
		Name:   name,
		Key:    key,
		Chords: chords,
		Tempo:  tempoOrDefault(tempo),
	}, nil
}

// Transpose shifts every chord root by the distance between the old and new
// key. Types, durations and numerals are kept; roots come back sharp-spelled.
func Transpose(p model.Progression, newKey string) (model.Progression, error) {
	oldIndex, err := note.Index(note.NormalizeToSharp(p.Key))
	if err != nil {
		return model.Progression{}, err
	}
	newIndex, err := note.Index(note.NormalizeToSharp(newKey))
	if err != nil {
		return model.Progression{}, err
	}
	semitones := newIndex - oldIndex

	chords := make([]model.ProgressionChord, 0, len(p.Chords))
	for _, item := range p.Chords {
		rootIndex, err := note.Index(note.NormalizeToSharp(item.Chord.Root))
		if err != nil {
			return model.Progression{}, err
		}
		newRoot := note.SharpNames[(rootIndex+semitones+12)%12]
		c, err := chord.Build(newRoot, item.Chord.Type, chord.DefaultReferenceMidi)
		if err != nil {
			return model.Progression{}, err
		}
		chords = append(chords, model.ProgressionChord{
			Chord:        c,
			Duration:     item.Duration,
			RomanNumeral: item.RomanNumeral,
		})
	}

	res := p
	res.Key = newKey
	res.Chords = chords
	return res, nil
}
