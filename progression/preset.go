package progression

import (
	"fmt"

	"github.com/jsphweid/fretdex/model"
)

var presets = []struct {
	name     string
	numerals []string
}{
	{"I-IV-V", []string{"I", "IV", "V"}},
	{"I-V-vi-IV", []string{"I", "V", "vi", "IV"}},
	{"ii-V-I", []string{"ii", "V", "I"}},
	{"I-vi-IV-V", []string{"I", "vi", "IV", "V"}},
	{"vi-IV-I-V", []string{"vi", "IV", "I", "V"}},
	{"I-IV-vi-V", []string{"I", "IV", "vi", "V"}},
	{"I-vi-ii-V", []string{"I", "vi", "ii", "V"}},
	{"I-iii-IV-V", []string{"I", "iii", "IV", "V"}},
	{"12-bar-blues", []string{"I", "I", "I", "I", "IV", "IV", "I", "I", "V", "IV", "I", "V"}},
}

func PresetNames() []string {
	res := make([]string, len(presets))
	for i, p := range presets {
		res[i] = p.name
	}
	return res
}

func PresetNumerals(name string) ([]string, bool) {
	for _, p := range presets {
		if p.name == name {
			return append([]string(nil), p.numerals...), true
		}
	}
	return nil, false
}

func Preset(name string, key string) (model.Progression, error) {
	numerals, ok := PresetNumerals(name)
	if !ok {
		return model.Progression{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return CreateFromRoman(name, key, numerals, model.DefaultTempo)
}
