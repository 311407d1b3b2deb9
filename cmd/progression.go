package cmd

import (
	"errors"

	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/progression"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	progName      string
	progKey       string
	progRoman     string
	progSymbols   string
	progPreset    string
	progTranspose string
	progTempo     float64
)

var errNoProgressionSource = errors.New("give --roman, --symbols or --preset")

func init() {
	addProgressionFlags(progressionCmd)
	progressionCmd.Flags().StringVar(&progTranspose, "transpose", "", "transpose the result to this key")
	rootCmd.AddCommand(progressionCmd)
}

func addProgressionFlags(c *cobra.Command) {
	c.Flags().StringVar(&progName, "name", "", "progression name")
	c.Flags().StringVarP(&progKey, "key", "k", "C", "key the progression is in")
	c.Flags().StringVar(&progRoman, "roman", "", `roman numerals, e.g. "I,V,vi,IV"`)
	c.Flags().StringVar(&progSymbols, "symbols", "", `chord symbols, e.g. "C,G,Am,F"`)
	c.Flags().StringVar(&progPreset, "preset", "", `named progression, see "fretdex list"`)
	c.Flags().Float64Var(&progTempo, "tempo", 0, "tempo in BPM (defaults to config)")
}

var progressionCmd = &cobra.Command{
	Use:   "progression",
	Short: "Builds a chord progression",
	Example: `  fretdex progression --key G --roman I,V,vi,IV
  fretdex progression --preset 12-bar-blues --key A
  fretdex progression --symbols C,Am,F,G --transpose D`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := progressionFromFlags()
		if err != nil {
			return err
		}
		if progTranspose != "" {
			if p, err = progression.Transpose(p, progTranspose); err != nil {
				return err
			}
		}
		return writeResult(cmd.OutOrStdout(), outputFormat, p)
	},
}

func progressionFromFlags() (model.Progression, error) {
	tempo := progTempo
	if tempo <= 0 {
		tempo = cfg.Tempo
	}
	if progPreset != "" {
		p, err := progression.Preset(progPreset, progKey)
		if err != nil {
			return model.Progression{}, err
		}
		p.Tempo = tempo
		return p, nil
	}
	return buildProgression(model.ProgressionRequestBody{
		Name:    progName,
		Key:     progKey,
		Roman:   splitList(progRoman),
		Symbols: splitList(progSymbols),
		Tempo:   tempo,
	})
}

// buildProgression prefers roman numerals when both forms are given.
func buildProgression(body model.ProgressionRequestBody) (model.Progression, error) {
	var (
		p   model.Progression
		err error
	)
	switch {
	case len(body.Roman) > 0:
		p, err = progression.CreateFromRoman(body.Name, body.Key, body.Roman, body.Tempo)
	case len(body.Symbols) > 0:
		p, err = progression.CreateFromSymbols(body.Name, body.Key, body.Symbols, body.Tempo)
	default:
		return model.Progression{}, errNoProgressionSource
	}
	if err != nil {
		return model.Progression{}, err
	}
	zlog.Debug("built progression", zap.String("key", p.Key), zap.Int("chords", len(p.Chords)))
	return p, nil
}
