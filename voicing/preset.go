package voicing

import (
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

const x = model.Muted

// hand-checked shapes for standard tuning, low E first
var presets = map[string]map[string][][]int{
	"major": {
		"C": {{x, 3, 2, 0, 1, 0}, {3, 3, 2, 0, 1, 0}, {x, 3, 5, 5, 5, 3}},
		"D": {{x, x, 0, 2, 3, 2}, {x, 5, 7, 7, 7, 5}},
		"E": {{0, 2, 2, 1, 0, 0}, {0, 7, 6, 4, 5, 4}},
		"F": {{1, 3, 3, 2, 1, 1}, {x, x, 3, 2, 1, 1}},
		"G": {{3, 2, 0, 0, 0, 3}, {3, 5, 5, 4, 3, 3}},
		"A": {{x, 0, 2, 2, 2, 0}, {5, 7, 7, 6, 5, 5}},
		"B": {{x, 2, 4, 4, 4, 2}, {7, 9, 9, 8, 7, 7}},
	},
	"minor": {
		"A": {{x, 0, 2, 2, 1, 0}, {5, 7, 7, 5, 5, 5}},
		"B": {{x, 2, 4, 4, 3, 2}, {7, 9, 9, 7, 7, 7}},
		"C": {{x, 3, 5, 5, 4, 3}},
		"D": {{x, x, 0, 2, 3, 1}, {x, 5, 7, 7, 6, 5}},
		"E": {{0, 2, 2, 0, 0, 0}, {0, 7, 5, 4, 5, 3}},
		"F": {{1, 3, 3, 1, 1, 1}},
		"G": {{3, 5, 5, 3, 3, 3}},
	},
}

func fromFrets(frets []int, tuning model.Tuning) model.Voicing {
	v := model.Voicing{
		Frets: append([]int(nil), frets...),
		Notes: make(model.Notes, len(frets)),
	}
	for i, f := range frets {
		if f == model.Muted {
			v.Notes[i] = model.Muted
			continue
		}
		v.Notes[i] = note.AtFret(tuning.Strings[i], f)
	}
	return v
}

// PresetVoicings only knows standard tuning; anything else yields nil.
func PresetVoicings(root string, typeID string, tuning model.Tuning) []model.Voicing {
	if !isStandard(tuning) {
		return nil
	}
	shapes := presets[typeID][note.NormalizeToSharp(root)]
	var res []model.Voicing
	for _, frets := range shapes {
		res = append(res, fromFrets(frets, tuning))
	}
	return res
}

func PresetVoicing(root string, typeID string, tuning model.Tuning) (model.Voicing, bool) {
	all := PresetVoicings(root, typeID, tuning)
	if len(all) == 0 {
		return model.Voicing{}, false
	}
	return all[0], true
}
