package midi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
	"gitlab.com/gomidi/midi/v2/smf"
)

// NoteSet is the group of notes sounding from Offset (microseconds) on.
type NoteSet struct {
	Offset int64       `json:"offset" yaml:"offset"`
	Notes  model.Notes `json:"notes" yaml:"notes"`
}

type reducedEvent struct {
	offset    int64
	isNoteOff bool
	note      int
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	return Decode(bytes.NewReader(dat))
}

func Decode(r io.Reader) (s *smf.SMF, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = fmt.Errorf("error parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}
	if res == nil {
		return nil, errors.New("error parsing midi file: empty result")
	}
	return res, nil
}

// NoteSetKey identifies a set of notes regardless of order, e.g. "60-64-67".
func NoteSetKey(notes model.Notes) string {
	sorted := append(model.Notes(nil), notes...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

func snapshot(offset int64, pressed map[int]bool) NoteSet {
	return NoteSet{Offset: offset, Notes: util.GetSortedKeys(pressed)}
}

// NoteSets walks every track and returns, in time order, the notes held
// after each distinct event time. Empty sets are dropped.
func NoteSets(s *smf.SMF) []NoteSet {
	var events []reducedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, reducedEvent{
					offset:    s.TimeAt(absTicks),
					isNoteOff: velocity == 0,
					note:      int(key),
				})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, reducedEvent{
					offset:    s.TimeAt(absTicks),
					isNoteOff: true,
					note:      int(key),
				})
			}
		}
	}

	// earlier first, note-offs before note-ons at the same time
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].offset != events[j].offset {
			return events[i].offset < events[j].offset
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var res []NoteSet
	pressed := make(map[int]bool)
	for i, evt := range events {
		if evt.isNoteOff {
			delete(pressed, evt.note)
		} else {
			pressed[evt.note] = true
		}
		last := i == len(events)-1 || events[i+1].offset != evt.offset
		if last && len(pressed) > 0 {
			res = append(res, snapshot(evt.offset, pressed))
		}
	}
	return res
}
