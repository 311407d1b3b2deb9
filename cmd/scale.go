package cmd

import (
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/scale"
	"github.com/spf13/cobra"
)

var (
	scaleOctave int
	scaleCheck  string
)

func init() {
	scaleCmd.Flags().IntVar(&scaleOctave, "octave", 4, "octave the root is placed in")
	scaleCmd.Flags().StringVar(&scaleCheck, "check", "", `notes to test for membership, e.g. "64,F#4"`)
	rootCmd.AddCommand(scaleCmd)
}

var scaleCmd = &cobra.Command{
	Use:   "scale <root> [type]",
	Short: "Lists the notes of a scale and its diatonic chords",
	Long: `Lists the notes of a scale and its diatonic chords. The type defaults
to major; see "fretdex list" for the known types. Major and minor scales
also report their relative key.`,
	Example: `  fretdex scale A minor
  fretdex scale G --check 66,F4`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typeID := "major"
		if len(args) == 2 {
			typeID = args[1]
		}
		check, err := parseNoteArgs(splitList(scaleCheck))
		if err != nil {
			return err
		}
		res, err := scaleNotes(args[0], typeID, octaveReference(scaleOctave), check)
		if err != nil {
			return err
		}
		return writeResult(cmd.OutOrStdout(), outputFormat, res)
	},
}

func relativeKey(root string, typeID string) (string, error) {
	switch typeID {
	case "major":
		return scale.RelativeMinor(root)
	case "minor":
		return scale.RelativeMajor(root)
	default:
		return "", nil
	}
}

func scaleNotes(root string, typeID string, referenceMidi int, check model.Notes) (model.ScaleResponse, error) {
	notes, err := scale.Generate(root, typeID, referenceMidi)
	if err != nil {
		return model.ScaleResponse{}, err
	}
	diatonic, err := scale.DiatonicChords(root, typeID)
	if err != nil {
		return model.ScaleResponse{}, err
	}
	if diatonic == nil {
		diatonic = []string{}
	}
	relative, err := relativeKey(root, typeID)
	if err != nil {
		return model.ScaleResponse{}, err
	}

	res := model.ScaleResponse{Root: root, Type: typeID, Notes: notes, Diatonic: diatonic, Relative: relative}
	for _, n := range check {
		item := model.NoteInScale{Note: n, InScale: scale.IsNoteInScale(n, notes)}
		if item.InScale {
			item.Degree, _ = scale.Degree(notes, n)
		}
		res.Checked = append(res.Checked, item)
	}
	return res, nil
}
