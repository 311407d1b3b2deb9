package note

import (
	"errors"
	"fmt"
)

var ErrInvalidNoteName = errors.New("invalid note name")

var SharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var FlatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var flatToSharp = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

type Note struct {
	Name   string `json:"name" yaml:"name"`
	Octave int    `json:"octave" yaml:"octave"`
	Midi   int    `json:"midi" yaml:"midi"`
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// Index returns the pitch class of a note name written in either spelling.
func Index(name string) (int, error) {
	for i, n := range SharpNames {
		if n == name {
			return i, nil
		}
	}
	for i, n := range FlatNames {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
}

func ToMidi(name string, octave int) (int, error) {
	index, err := Index(name)
	if err != nil {
		return 0, err
	}
	return (octave+1)*12 + index, nil
}

// FromMidi never fails; notes below 0 land in negative octaves.
func FromMidi(midi int, preferFlats bool) Note {
	pc := PitchClass(midi)
	octave := (midi-pc)/12 - 1
	name := SharpNames[pc]
	if preferFlats {
		name = FlatNames[pc]
	}
	return Note{Name: name, Octave: octave, Midi: midi}
}

func PitchClass(midi int) int {
	return ((midi % 12) + 12) % 12
}

// NormalizeToSharp rewrites the five flat spellings; anything else passes through.
func NormalizeToSharp(name string) string {
	if sharp, ok := flatToSharp[name]; ok {
		return sharp
	}
	return name
}

func Interval(a, b int) int {
	if b < a {
		return a - b
	}
	return b - a
}

func Transpose(midi, semitones int) int {
	return midi + semitones
}

func AtFret(openString, fret int) int {
	return openString + fret
}
