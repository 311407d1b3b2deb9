package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOut      string
	exportSymbol   string
	exportDuration float64
)

func init() {
	exportCmd.PersistentFlags().StringVar(&exportOut, "out", "", "file to write (defaults to a new file in the output dir)")

	exportChordCmd.Flags().Float64Var(&exportDuration, "duration", 4, "length in beats")
	exportChordCmd.Flags().Float64Var(&progTempo, "tempo", 0, "tempo in BPM (defaults to config)")
	exportCmd.AddCommand(exportChordCmd)

	addProgressionFlags(exportProgressionCmd)
	exportCmd.AddCommand(exportProgressionCmd)

	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Writes chords or progressions as Standard MIDI Files",
}

var exportChordCmd = &cobra.Command{
	Use:     "chord <symbol>",
	Short:   "Writes a single chord as a MIDI file",
	Example: "  fretdex export chord Cmaj7 --duration 2 --out cmaj7.mid",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := chord.FromSymbol(args[0], chord.DefaultReferenceMidi)
		if err != nil {
			return err
		}
		tempo := progTempo
		if tempo <= 0 {
			tempo = cfg.Tempo
		}
		data, err := midi.EncodeChord(c, midi.WithDuration(exportDuration), midi.WithTempo(tempo))
		if err != nil {
			return err
		}
		return writeExport(cmd, data)
	},
}

var exportProgressionCmd = &cobra.Command{
	Use:     "progression",
	Short:   "Writes a chord progression as a MIDI file",
	Example: "  fretdex export progression --preset I-V-vi-IV --key G",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := progressionFromFlags()
		if err != nil {
			return err
		}
		data, err := midi.EncodeProgression(p)
		if err != nil {
			return err
		}
		return writeExport(cmd, data)
	},
}

func exportPath() string {
	if exportOut != "" {
		return exportOut
	}
	return filepath.Join(cfg.OutDir, uuid.New().String()+".mid")
}

func writeExport(cmd *cobra.Command, data []byte) error {
	if len(data) == 0 {
		return errors.New("nothing to export")
	}
	path := exportPath()
	if err := util.WriteBinary(path, data); err != nil {
		return err
	}
	zlog.Info("wrote midi file", zap.String("path", path), zap.Int("bytes", len(data)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
