package voicing

import (
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
	"github.com/jsphweid/fretdex/util"
)

const (
	DefaultMaxFret = 15
	DefaultMaxSpan = 4

	// frets covered by one hand position above the base fret
	handSpan = 4
	// open strings are still reachable while the hand sits at or below this fret
	openReach   = 3
	maxBaseFret = 12
	minStrings  = 3
	maxVoicings = 5
)

// Generate slides a four-fret hand position up the neck. On each string the
// first in-reach fret that sounds a chord tone is taken. A position is kept
// when at least three strings sound and every chord pitch class is covered.
func Generate(chordNotes model.Notes, tuning model.Tuning, maxFret int) []model.Voicing {
	want := make(map[int]bool)
	for _, n := range chordNotes {
		want[note.PitchClass(n)] = true
	}

	var res []model.Voicing
	for baseFret := 0; baseFret <= util.Min(maxBaseFret, maxFret-handSpan); baseFret++ {
		v, ok := atPosition(want, tuning, baseFret, maxFret)
		if !ok {
			continue
		}
		res = append(res, v)
		if len(res) == maxVoicings {
			break
		}
	}
	return res
}

func atPosition(want map[int]bool, tuning model.Tuning, baseFret, maxFret int) (model.Voicing, bool) {
	v := model.Voicing{
		Frets: make([]int, 0, len(tuning.Strings)),
		Notes: make(model.Notes, 0, len(tuning.Strings)),
	}
	found := make(map[int]bool)

	for _, open := range tuning.Strings {
		fret := model.Muted
		for f := baseFret; f <= util.Min(baseFret+handSpan, maxFret); f++ {
			if want[note.PitchClass(note.AtFret(open, f))] {
				fret = f
				break
			}
		}
		if fret == model.Muted && baseFret <= openReach && want[note.PitchClass(open)] {
			fret = 0
		}

		if fret == model.Muted {
			v.Frets = append(v.Frets, model.Muted)
			v.Notes = append(v.Notes, model.Muted)
			continue
		}
		n := note.AtFret(open, fret)
		v.Frets = append(v.Frets, fret)
		v.Notes = append(v.Notes, n)
		found[note.PitchClass(n)] = true
	}

	if v.PlayedStrings() < minStrings {
		return v, false
	}
	for pc := range want {
		if !found[pc] {
			return v, false
		}
	}
	return v, true
}

// Span ignores open strings since they cost no hand stretch.
func Span(v model.Voicing) int {
	var lo, hi int
	var seen bool
	for _, f := range v.Frets {
		if f == model.Muted || f == 0 {
			continue
		}
		if !seen {
			lo, hi, seen = f, f, true
			continue
		}
		lo = util.Min(lo, f)
		hi = util.Max(hi, f)
	}
	return hi - lo
}

func IsPlayable(v model.Voicing, maxSpan int) bool {
	return Span(v) <= maxSpan
}
