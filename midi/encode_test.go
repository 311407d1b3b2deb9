package midi

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestEncodeVLQ(t *testing.T) {
	cases := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{0x40, []byte{0x40}},
		{0x7F, []byte{0x7F}},
		{0x80, []byte{0x81, 0x00}},
		{480, []byte{0x83, 0x60}},
		{1920, []byte{0x8F, 0x00}},
		{0x3FFF, []byte{0xFF, 0x7F}},
		{0x4000, []byte{0x81, 0x80, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EncodeVLQ(c.value), "%#x", c.value)
	}
}

func TestVLQRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 255, 480, 16383, 16384, 2097151, 2097152, 0x0FFFFFFF}
	for v := uint32(0); v < 300; v++ {
		values = append(values, v*977)
	}
	for _, v := range values {
		enc := EncodeVLQ(v)
		if v < 128 {
			assert.Len(t, enc, 1)
		}
		got, n, err := DecodeVLQ(enc)
		require.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, len(enc), n)
	}
}

func TestDecodeVLQTruncated(t *testing.T) {
	_, _, err := DecodeVLQ([]byte{0x81})
	assert.ErrorIs(t, err, ErrTruncatedVLQ)
	_, _, err = DecodeVLQ(nil)
	assert.ErrorIs(t, err, ErrTruncatedVLQ)
	_, _, err = DecodeVLQ([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	assert.ErrorIs(t, err, ErrTruncatedVLQ)
}

func TestEncodeChordBytes(t *testing.T) {
	c := model.Chord{Root: "C", Type: "major", Notes: model.Notes{60, 64, 67}, Symbol: "C"}

	want := []byte{
		'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06, 0x00, 0x01, 0x00, 0x01, 0x01, 0xE0,
		'M', 'T', 'r', 'k', 0x00, 0x00, 0x00, 0x24,
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0x90, 60, 80,
		0x00, 0x90, 64, 80,
		0x00, 0x90, 67, 80,
		0x8F, 0x00, 0x80, 60, 0,
		0x00, 0x80, 64, 0,
		0x00, 0x80, 67, 0,
		0x00, 0xFF, 0x2F, 0x00,
	}
	assert.Equal(t, want, encodeChord(t, c))
}

func TestEncodeChordOptions(t *testing.T) {
	c := model.Chord{Notes: model.Notes{60}}
	data := encodeChord(t, c, WithDuration(1.5), WithTempo(90))

	// 60000000/90 = 666666 = 0x0A2C2A
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x51, 0x03, 0x0A, 0x2C, 0x2A}))
	// 1.5 beats = 720 ticks = 0x85 0x50
	assert.True(t, bytes.Contains(data, []byte{0x85, 0x50, 0x80, 60, 0}))
}

func TestEncodeIsDeterministic(t *testing.T) {
	p, err := progression.Preset("ii-V-I", "C")
	require.NoError(t, err)
	assert.Equal(t, encodeProgression(t, p), encodeProgression(t, p))
}

func TestEncodeProgressionBytes(t *testing.T) {
	p := model.Progression{
		Name:  "ab",
		Key:   "C",
		Tempo: 120,
		Chords: []model.ProgressionChord{
			{Chord: model.Chord{Notes: model.Notes{60, 64}}, Duration: 2},
			{Chord: model.Chord{Notes: model.Notes{62}}, Duration: 1},
		},
	}

	track := []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20,
		0x00, 0xFF, 0x03, 0x02, 'a', 'b',
		0x00, 0x90, 60, 80,
		0x00, 0x90, 64, 80,
		0x87, 0x40, 0x80, 60, 0,
		0x00, 0x80, 64, 0,
		0x87, 0x40, 0x90, 62, 80,
		0x83, 0x60, 0x80, 62, 0,
		0x00, 0xFF, 0x2F, 0x00,
	}
	want := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 1, 0, 1, 0x01, 0xE0, 'M', 'T', 'r', 'k', 0, 0, 0, byte(len(track))}
	want = append(want, track...)

	assert.Equal(t, want, encodeProgression(t, p))
}

func TestEncodeProgressionDefaultsTempoAndTruncatesName(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 300)
	data := encodeProgression(t, model.Progression{Name: string(long)})

	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20}))
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x03, 0xFF, 'x'}))
	assert.False(t, bytes.Contains(data, bytes.Repeat([]byte("x"), 256)))
}

func TestEncodedProgressionDecodesWithSMF(t *testing.T) {
	p, err := progression.Preset("I-V-vi-IV", "G")
	require.NoError(t, err)

	s, err := smf.ReadFrom(bytes.NewReader(encodeProgression(t, p)))
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	mt, ok := s.TimeFormat.(smf.MetricTicks)
	require.True(t, ok)
	assert.Equal(t, uint16(480), uint16(mt))

	var ons []int
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			ons = append(ons, int(key))
			assert.Equal(t, uint8(80), vel)
		}
	}

	var want []int
	for _, item := range p.Chords {
		want = append(want, item.Chord.Notes...)
	}
	assert.Equal(t, want, ons)
}

func TestEncodedChordRoundTripsThroughNoteSets(t *testing.T) {
	c, err := chord.Build("A", "minor7", chord.DefaultReferenceMidi)
	require.NoError(t, err)

	s, err := Decode(bytes.NewReader(encodeChord(t, c)))
	require.NoError(t, err)

	sets := NoteSets(s)
	require.Len(t, sets, 1)
	assert.Equal(t, int64(0), sets[0].Offset)
	assert.Equal(t, model.Notes{69, 72, 76, 79}, sets[0].Notes)
}

func encodeChord(t *testing.T, c model.Chord, opts ...Option) []byte {
	t.Helper()
	data, err := EncodeChord(c, opts...)
	require.NoError(t, err)
	return data
}

func encodeProgression(t *testing.T, p model.Progression) []byte {
	t.Helper()
	data, err := EncodeProgression(p)
	require.NoError(t, err)
	return data
}

func TestEncodeRejectsTempoBeyondThreeBytes(t *testing.T) {
	c := model.Chord{Notes: model.Notes{60, 64, 67}}

	_, err := EncodeChord(c, WithTempo(1))
	assert.ErrorIs(t, err, ErrTempoOutOfRange)
	_, err = EncodeChord(c, WithTempo(3.5))
	assert.ErrorIs(t, err, ErrTempoOutOfRange)
	_, err = EncodeProgression(model.Progression{Tempo: 2})
	assert.ErrorIs(t, err, ErrTempoOutOfRange)

	// 60000000/3.6 = 16666666 = 0xFE502A, the slowest tempos still fit
	data := encodeChord(t, c, WithTempo(3.6))
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x51, 0x03, 0xFE, 0x50, 0x2A}))
}

func TestValidateTempo(t *testing.T) {
	assert.NoError(t, ValidateTempo(120))
	assert.NoError(t, ValidateTempo(3.58))
	for _, bpm := range []float64{0, -5, 1, 3.57, 1e9} {
		assert.ErrorIs(t, ValidateTempo(bpm), ErrTempoOutOfRange, "%v", bpm)
	}
}

func TestEncodeRejectsNotesOutsideMidiRange(t *testing.T) {
	high, err := chord.Build("C", "major", 127)
	require.NoError(t, err)

	_, err = EncodeChord(high)
	assert.ErrorIs(t, err, ErrNoteOutOfRange)

	_, err = EncodeChord(model.Chord{Notes: model.Notes{-1, 60}})
	assert.ErrorIs(t, err, ErrNoteOutOfRange)

	_, err = EncodeProgression(model.Progression{Chords: []model.ProgressionChord{
		{Chord: model.Chord{Notes: model.Notes{60}}, Duration: 1},
		{Chord: high, Duration: 1},
	}})
	assert.ErrorIs(t, err, ErrNoteOutOfRange)

	encodeChord(t, model.Chord{Notes: model.Notes{0, 127}})
}

func TestTrackNameTruncatesOnRuneBoundary(t *testing.T) {
	// 254 ASCII bytes then a two-byte rune straddling the limit
	name := strings.Repeat("x", 254) + "é" + "tail"
	assert.Equal(t, strings.Repeat("x", 254), truncateName(name))

	exact := strings.Repeat("x", 253) + "é"
	assert.Equal(t, exact, truncateName(exact))

	long := strings.Repeat("ü", 200)
	got := truncateName(long)
	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, 254)

	data := encodeProgression(t, model.Progression{Name: name})
	assert.True(t, bytes.Contains(data, []byte{0xFF, 0x03, 0xFE, 'x'}))
}
