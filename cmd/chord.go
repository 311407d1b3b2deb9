package cmd

import (
	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chordOctave int

func init() {
	chordCmd.Flags().IntVar(&chordOctave, "octave", 4, "octave the root is placed in")
	rootCmd.AddCommand(chordCmd)
}

var chordCmd = &cobra.Command{
	Use:     "chord <symbol>",
	Short:   "Spells out the notes of a chord symbol",
	Example: "  fretdex chord Am7 --octave 3",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := chordBySymbol(args[0], octaveReference(chordOctave))
		if err != nil {
			return err
		}
		zlog.Debug("built chord", zap.String("symbol", res.Chord.Symbol), zap.Ints("notes", res.Chord.Notes))
		return writeResult(cmd.OutOrStdout(), outputFormat, res)
	},
}

// octaveReference is the MIDI number of C in the given octave.
func octaveReference(octave int) int {
	return (octave + 1) * 12
}

func chordBySymbol(symbol string, referenceMidi int) (model.ChordResponse, error) {
	c, err := chord.FromSymbol(symbol, referenceMidi)
	if err != nil {
		return model.ChordResponse{}, err
	}
	def, _ := chord.Definition(c.Type)
	return model.ChordResponse{Chord: c, Definition: def}, nil
}
