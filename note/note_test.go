package note

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToMidi(t *testing.T) {
	cases := []struct {
		name   string
		octave int
		want   int
	}{
		{"C", 4, 60},
		{"A", 4, 69},
		{"E", 2, 40},
		{"C#", 4, 61},
		{"Db", 4, 61},
		{"Bb", 3, 58},
		{"B", -1, 11},
	}

	assert := assert.New(t)
	for _, c := range cases {
		got, err := ToMidi(c.name, c.octave)
		assert.NoError(err)
		assert.Equal(c.want, got, "%s%d", c.name, c.octave)
	}
}

func TestToMidiRejectsUnknownNames(t *testing.T) {
	for _, name := range []string{"H", "c", "E#", "", "Cb"} {
		_, err := ToMidi(name, 4)
		assert.True(t, errors.Is(err, ErrInvalidNoteName), name)
	}
}

func TestFromMidi(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Note{Name: "C", Octave: 4, Midi: 60}, FromMidi(60, false))
	assert.Equal(Note{Name: "A#", Octave: 3, Midi: 58}, FromMidi(58, false))
	assert.Equal(Note{Name: "Bb", Octave: 3, Midi: 58}, FromMidi(58, true))
	assert.Equal(Note{Name: "B", Octave: -2, Midi: -1}, FromMidi(-1, false))
	assert.Equal("Eb2", FromMidi(39, true).String())
}

func TestMidiRoundTrip(t *testing.T) {
	for m := -48; m <= 200; m++ {
		n := FromMidi(m, false)
		got, err := ToMidi(n.Name, n.Octave)
		assert.NoError(t, err)
		assert.Equal(t, m, got)

		n = FromMidi(m, true)
		got, err = ToMidi(n.Name, n.Octave)
		assert.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestNormalizeToSharp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("C#", NormalizeToSharp("Db"))
	assert.Equal("A#", NormalizeToSharp("Bb"))
	assert.Equal("F#", NormalizeToSharp("F#"))
	assert.Equal("E", NormalizeToSharp("E"))
	assert.Equal("Fb", NormalizeToSharp("Fb"))
}

func TestIntervalAndTranspose(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(7, Interval(60, 67))
	assert.Equal(7, Interval(67, 60))
	assert.Equal(0, Interval(5, 5))
	assert.Equal(72, Transpose(60, 12))
	assert.Equal(55, Transpose(60, -5))
	assert.Equal(43, AtFret(40, 3))
}

func TestPitchClass(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, PitchClass(60))
	assert.Equal(11, PitchClass(-1))
	assert.Equal(4, PitchClass(64))
}
