package cmd

import (
	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/progression"
	"github.com/jsphweid/fretdex/scale"
	"github.com/jsphweid/fretdex/voicing"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists known chord types, scales, tunings and preset progressions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeResult(cmd.OutOrStdout(), outputFormat, catalog())
	},
}

func catalog() model.CatalogResponse {
	return model.CatalogResponse{
		ChordTypes:   chord.Types(),
		ScaleTypes:   scale.Types(),
		Tunings:      voicing.TuningNames(),
		Progressions: progression.PresetNames(),
	}
}
