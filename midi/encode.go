package midi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/jsphweid/fretdex/constants"
	"github.com/jsphweid/fretdex/model"
)

const (
	headerTag = "MThd"
	trackTag  = "MTrk"

	// format 1: simultaneous tracks
	fileFormat = 1

	noteOn  = 0x90
	noteOff = 0x80

	metaEvent      = 0xFF
	metaTrackName  = 0x03
	metaTempo      = 0x51
	metaEndOfTrack = 0x2F

	maxTrackName = 255

	// tempo meta events carry microseconds per beat in 3 bytes
	maxMicrosPerBeat = 0xFFFFFF
	maxNote          = 127
)

var (
	ErrTruncatedVLQ    = errors.New("truncated variable-length quantity")
	ErrTempoOutOfRange = errors.New("tempo out of range")
	ErrNoteOutOfRange  = errors.New("note out of range")
)

// EncodeVLQ writes 7 bits per byte, most significant group first, with the
// high bit set on every byte but the last.
func EncodeVLQ(value uint32) []byte {
	res := []byte{byte(value & 0x7F)}
	for value >>= 7; value > 0; value >>= 7 {
		res = append([]byte{byte(value&0x7F) | 0x80}, res...)
	}
	return res
}

// DecodeVLQ returns the value and the number of bytes consumed.
func DecodeVLQ(b []byte) (uint32, int, error) {
	var value uint32
	for i, c := range b {
		if i == 4 {
			break
		}
		value = value<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			return value, i + 1, nil
		}
	}
	return 0, 0, ErrTruncatedVLQ
}

func beatsToTicks(beats float64) uint32 {
	return uint32(math.Floor(beats * constants.TicksPerBeat))
}

type track struct {
	buf bytes.Buffer
}

func (t *track) event(delta uint32, data ...byte) {
	t.buf.Write(EncodeVLQ(delta))
	t.buf.Write(data)
}

func microsPerBeat(bpm float64) (uint32, error) {
	if bpm <= 0 || math.IsNaN(bpm) || math.IsInf(bpm, 0) {
		return 0, fmt.Errorf("%w: %v bpm", ErrTempoOutOfRange, bpm)
	}
	micros := math.Floor(60000000 / bpm)
	if micros < 1 || micros > maxMicrosPerBeat {
		return 0, fmt.Errorf("%w: %v bpm", ErrTempoOutOfRange, bpm)
	}
	return uint32(micros), nil
}

// ValidateTempo accepts tempos from about 3.58 bpm (0xFFFFFF microseconds
// per beat) up to 60000000 bpm.
func ValidateTempo(bpm float64) error {
	_, err := microsPerBeat(bpm)
	return err
}

func validateNotes(notes model.Notes) error {
	for _, n := range notes {
		if n < 0 || n > maxNote {
			return fmt.Errorf("%w: %d", ErrNoteOutOfRange, n)
		}
	}
	return nil
}

func (t *track) tempo(bpm float64) error {
	micros, err := microsPerBeat(bpm)
	if err != nil {
		return err
	}
	t.event(0, metaEvent, metaTempo, 0x03, byte(micros>>16), byte(micros>>8), byte(micros))
	return nil
}

// truncateName cuts s to at most 255 bytes without splitting a rune.
func truncateName(s string) string {
	if len(s) <= maxTrackName {
		return s
	}
	cut := maxTrackName
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func (t *track) name(s string) {
	s = truncateName(s)
	t.event(0, append([]byte{metaEvent, metaTrackName, byte(len(s))}, s...)...)
}

// notes emits one event per note; only the first carries delta.
func (t *track) notes(status byte, delta uint32, notes model.Notes, velocity byte) {
	for i, n := range notes {
		d := delta
		if i > 0 {
			d = 0
		}
		t.event(d, status, byte(n), velocity)
	}
}

func (t *track) end() {
	t.event(0, metaEvent, metaEndOfTrack, 0x00)
}

func file(tracks ...*track) []byte {
	var out bytes.Buffer
	out.WriteString(headerTag)
	binary.Write(&out, binary.BigEndian, uint32(6))
	binary.Write(&out, binary.BigEndian, uint16(fileFormat))
	binary.Write(&out, binary.BigEndian, uint16(len(tracks)))
	binary.Write(&out, binary.BigEndian, uint16(constants.TicksPerBeat))

	for _, t := range tracks {
		out.WriteString(trackTag)
		binary.Write(&out, binary.BigEndian, uint32(t.buf.Len()))
		out.Write(t.buf.Bytes())
	}
	return out.Bytes()
}

type ChordOptions struct {
	Duration float64
	Tempo    float64
}

type Option func(*ChordOptions)

func WithDuration(beats float64) Option {
	return func(opts *ChordOptions) {
		opts.Duration = beats
	}
}

func WithTempo(bpm float64) Option {
	return func(opts *ChordOptions) {
		opts.Tempo = bpm
	}
}

func applyDefaultOptions(opts ...Option) ChordOptions {
	options := ChordOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Duration <= 0 {
		options.Duration = 4
	}
	if options.Tempo <= 0 {
		options.Tempo = model.DefaultTempo
	}
	return options
}

// EncodeChord renders one chord held for four beats at 120 bpm unless
// overridden. Notes must lie in 0..127.
func EncodeChord(c model.Chord, opts ...Option) ([]byte, error) {
	options := applyDefaultOptions(opts...)
	if err := validateNotes(c.Notes); err != nil {
		return nil, err
	}

	var t track
	if err := t.tempo(options.Tempo); err != nil {
		return nil, err
	}
	t.notes(noteOn, 0, c.Notes, constants.NoteVelocity)
	t.notes(noteOff, beatsToTicks(options.Duration), c.Notes, 0)
	t.end()
	return file(&t), nil
}

// EncodeProgression names the track after the progression. Each chord's
// note-on waits for the previous chord's duration after that chord's
// note-off, so chords are separated by a rest of the same length.
func EncodeProgression(p model.Progression) ([]byte, error) {
	for _, item := range p.Chords {
		if err := validateNotes(item.Chord.Notes); err != nil {
			return nil, fmt.Errorf("chord %q: %w", item.Chord.Symbol, err)
		}
	}

	var t track
	if err := t.tempo(p.TempoOrDefault()); err != nil {
		return nil, err
	}
	t.name(p.Name)

	for i, item := range p.Chords {
		var delta uint32
		if i > 0 {
			delta = beatsToTicks(p.Chords[i-1].Duration)
		}
		t.notes(noteOn, delta, item.Chord.Notes, constants.NoteVelocity)
		t.notes(noteOff, beatsToTicks(item.Duration), item.Chord.Notes, 0)
	}
	t.end()
	return file(&t), nil
}
