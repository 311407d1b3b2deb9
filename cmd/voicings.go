package cmd

import (
	"fmt"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/voicing"
	"github.com/spf13/cobra"
)

var (
	voicingsTuning  string
	voicingsMaxFret int
	voicingsMaxSpan int
	voicingsTab     bool
)

func init() {
	voicingsCmd.Flags().StringVarP(&voicingsTuning, "tuning", "t", "", "tuning name (defaults to config)")
	voicingsCmd.Flags().IntVar(&voicingsMaxFret, "max-fret", 0, "highest fret to search (defaults to config)")
	voicingsCmd.Flags().IntVar(&voicingsMaxSpan, "max-span", voicing.DefaultMaxSpan, "drop voicings stretching more frets than this")
	voicingsCmd.Flags().BoolVar(&voicingsTab, "tab", false, "print one tab line per voicing instead of structured output")
	rootCmd.AddCommand(voicingsCmd)
}

var voicingsCmd = &cobra.Command{
	Use:     "voicings <symbol>",
	Short:   "Finds fretboard shapes for a chord",
	Example: "  fretdex voicings G --tuning dropD --tab",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tuningName := firstNonEmpty(voicingsTuning, cfg.Tuning)
		if _, ok := voicing.LookupTuning(tuningName); !ok {
			return fmt.Errorf("unknown tuning: %s", tuningName)
		}
		maxFret := cfg.MaxFret
		if voicingsMaxFret > 0 {
			maxFret = voicingsMaxFret
		}

		res, err := chordVoicings(args[0], tuningName, maxFret, voicingsMaxSpan)
		if err != nil {
			return err
		}
		if !voicingsTab {
			return writeResult(cmd.OutOrStdout(), outputFormat, res)
		}
		for _, v := range res.Presets {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (preset)\n", formatFrets(v.Frets))
		}
		for _, v := range res.Voicings {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatFrets(v.Frets))
		}
		return nil
	},
}

func chordVoicings(symbol string, tuningName string, maxFret int, maxSpan int) (model.VoicingsResponse, error) {
	c, err := chord.FromSymbol(symbol, chord.DefaultReferenceMidi)
	if err != nil {
		return model.VoicingsResponse{}, err
	}
	tuning := voicing.Tuning(tuningName)

	res := model.VoicingsResponse{
		Chord:    c,
		Tuning:   tuning,
		Voicings: []model.Voicing{},
		Presets:  voicing.PresetVoicings(c.Root, c.Type, tuning),
	}
	for _, v := range voicing.Generate(c.Notes, tuning, maxFret) {
		if voicing.IsPlayable(v, maxSpan) {
			res.Voicings = append(res.Voicings, v)
		}
	}
	return res, nil
}
