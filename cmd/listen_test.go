package cmd

import (
	"testing"

	"github.com/jsphweid/fretdex/model"
	"github.com/stretchr/testify/assert"
)

func TestHeldNotesTracksPressAndRelease(t *testing.T) {
	h := newHeldNotes()
	h.press(67)
	h.press(60)
	h.press(64)
	h.press(60)
	assert.Equal(t, model.Notes{60, 64, 67}, h.notes())

	h.release(64)
	h.release(99)
	assert.Equal(t, model.Notes{60, 67}, h.notes())
}

func TestChordReporterPrintsOnlyOnChange(t *testing.T) {
	var lines []string
	h := newHeldNotes()
	r := &chordReporter{held: h, print: func(line string) { lines = append(lines, line) }}

	for _, n := range []int{60, 64, 67} {
		h.press(n)
	}
	r.report()
	r.report()
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "60-64-67")
	assert.Contains(t, lines[0], "C")

	h.press(70)
	r.report()
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[1], "C7")

	for _, n := range []int{60, 64, 67, 70} {
		h.release(n)
	}
	r.report()
	assert.Len(t, lines, 2)
}
