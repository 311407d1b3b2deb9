package detect

import (
	"fmt"
	"math"
	"sort"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

// Threshold is the minimum share of a chord's tones that must be present.
const Threshold = 0.75

const DefaultTop = 5

func pitchClasses(notes []int) []int {
	seen := make(map[int]bool)
	var res []int
	for _, n := range notes {
		pc := note.PitchClass(n)
		if !seen[pc] {
			seen[pc] = true
			res = append(res, pc)
		}
	}
	sort.Ints(res)
	return res
}

func contains(pcs []int, pc int) bool {
	for _, v := range pcs {
		if v == pc {
			return true
		}
	}
	return false
}

// Detect tries every present pitch class as a root against every registered
// chord type. Results are ordered by confidence, highest first; ties keep
// root-then-registry order.
func Detect(notes []int) []model.DetectedChord {
	present := pitchClasses(notes)
	var res []model.DetectedChord

	for _, root := range present {
		rootName := note.SharpNames[root]
		for _, typeID := range chord.Types() {
			def, _ := chord.Definition(typeID)

			var expected []int
			for _, interval := range def.Intervals {
				pc := (root + interval) % 12
				if !contains(expected, pc) {
					expected = append(expected, pc)
				}
			}

			var matched int
			var missing, extra []int
			for _, pc := range expected {
				if contains(present, pc) {
					matched++
				} else {
					missing = append(missing, pc)
				}
			}
			for _, pc := range present {
				if !contains(expected, pc) {
					extra = append(extra, pc)
				}
			}

			confidence := float64(matched) / float64(len(expected))
			if confidence < Threshold {
				continue
			}
			res = append(res, model.DetectedChord{
				Root:       rootName,
				ChordType:  typeID,
				Symbol:     rootName + def.Suffix,
				Confidence: confidence,
				Missing:    missing,
				Extra:      extra,
			})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Confidence > res[j].Confidence
	})
	return res
}

// DetectFromFrets resolves fretted strings against a tuning's open strings.
// model.Muted strings are skipped.
func DetectFromFrets(frets []int, openStrings []int) []model.DetectedChord {
	var notes []int
	for i, fret := range frets {
		if fret == model.Muted || i >= len(openStrings) {
			continue
		}
		notes = append(notes, note.AtFret(openStrings[i], fret))
	}
	return Detect(notes)
}

// MostLikely prefers candidates with fewer extra notes, then higher confidence.
func MostLikely(detected []model.DetectedChord) (model.DetectedChord, bool) {
	if len(detected) == 0 {
		return model.DetectedChord{}, false
	}
	sorted := make([]model.DetectedChord, len(detected))
	copy(sorted, detected)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Extra) != len(sorted[j].Extra) {
			return len(sorted[i].Extra) < len(sorted[j].Extra)
		}
		return sorted[i].Confidence > sorted[j].Confidence
	})
	return sorted[0], true
}

func Format(d model.DetectedChord) string {
	res := d.Symbol
	if d.Confidence < 1.0 {
		res += fmt.Sprintf(" (%d%%)", int(math.Round(d.Confidence*100)))
	}
	if len(d.Extra) > 0 {
		res += " +notes"
	}
	return res
}

func FormatTop(detected []model.DetectedChord, n int) []string {
	if n > len(detected) {
		n = len(detected)
	}
	res := make([]string, 0, n)
	for _, d := range detected[:n] {
		res = append(res, Format(d))
	}
	return res
}
