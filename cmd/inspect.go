package cmd

import (
	"fmt"

	"github.com/jsphweid/fretdex/detect"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inspectEvents     bool
	inspectFrom       uint64
	inspectMaxNotes   int
	inspectExcerptOut string
)

func init() {
	inspectCmd.Flags().BoolVar(&inspectEvents, "events", false, "print every track event")
	inspectCmd.Flags().Uint64Var(&inspectFrom, "from", 0, "tick to start the excerpt at")
	inspectCmd.Flags().IntVar(&inspectMaxNotes, "max-notes", 10, "note messages per track kept in the excerpt")
	inspectCmd.Flags().StringVar(&inspectExcerptOut, "excerpt-out", "", "write an excerpt starting at --from to this file")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long: `Prints the layout of a MIDI file and the chord heard at every change
of sounding notes. Optionally writes a short excerpt of it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd, args[0])
	},
}

func inspect(cmd *cobra.Command, path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "time format: %v\n", s.TimeFormat)
	fmt.Fprintf(out, "tracks: %d\n", len(s.Tracks))
	for i, track := range s.Tracks {
		fmt.Fprintf(out, "track %d: %d events\n", i, len(track))
		if !inspectEvents {
			continue
		}
		var absTicks uint64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			fmt.Fprintf(out, "  %8d  %v\n", absTicks, evt.Message)
		}
	}

	for _, set := range midi.NoteSets(s) {
		name := "-"
		if best, ok := detect.MostLikely(detect.Detect(set.Notes)); ok {
			name = detect.Format(best)
		}
		fmt.Fprintf(out, "%10.3fs  %-16s %s\n", float64(set.Offset)/1e6, midi.NoteSetKey(set.Notes), name)
	}

	if inspectExcerptOut == "" {
		return nil
	}
	data, err := midi.Bytes(midi.Excerpt(s, inspectFrom, inspectMaxNotes))
	if err != nil {
		return err
	}
	if err := util.WriteBinary(inspectExcerptOut, data); err != nil {
		return err
	}
	zlog.Info("wrote excerpt", zap.String("path", inspectExcerptOut), zap.Uint64("from", inspectFrom))
	return nil
}
