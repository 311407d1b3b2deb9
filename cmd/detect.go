package cmd

import (
	"errors"

	"github.com/jsphweid/fretdex/detect"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
	"github.com/jsphweid/fretdex/voicing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	detectFile   string
	detectFrets  string
	detectTuning string
	detectTop    int
	detectMax    int
)

func init() {
	detectCmd.Flags().StringVarP(&detectFile, "file", "f", "", "MIDI file or directory to scan")
	detectCmd.Flags().StringVar(&detectFrets, "frets", "", `fretted shape low string first, e.g. "x02210"`)
	detectCmd.Flags().StringVarP(&detectTuning, "tuning", "t", "", "tuning for --frets (defaults to config)")
	detectCmd.Flags().IntVarP(&detectTop, "top", "n", detect.DefaultTop, "number of candidates to show")
	detectCmd.Flags().IntVar(&detectMax, "max-files", 0, "stop after this many files when scanning a directory")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [notes...]",
	Short: "Names the chord formed by a set of notes",
	Long: `Names the chord formed by a set of notes. Notes are MIDI numbers or
names with octave (60, C4, Eb3). Alternatively read a fretted shape with
--frets, or every sounding note set of a MIDI file with --file.`,
	Example: `  fretdex detect 60 64 67
  fretdex detect --frets x02210
  fretdex detect --file song.mid`,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case detectFile != "":
			res, err := detectInFiles(detectFile, detectMax)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), outputFormat, res)
		case detectFrets != "":
			frets, err := parseFrets(detectFrets)
			if err != nil {
				return err
			}
			tuning := voicing.Tuning(firstNonEmpty(detectTuning, cfg.Tuning))
			return writeResult(cmd.OutOrStdout(), outputFormat, detectResponse(detect.DetectFromFrets(frets, tuning.Strings), detectTop))
		case len(args) > 0:
			notes, err := parseNoteArgs(args)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), outputFormat, detectResponse(detect.Detect(notes), detectTop))
		default:
			return errors.New("give notes, --frets or --file")
		}
	},
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func detectResponse(detected []model.DetectedChord, top int) model.DetectResponse {
	res := model.DetectResponse{
		Chords:    detected,
		Formatted: detect.FormatTop(detected, top),
	}
	if res.Chords == nil {
		res.Chords = []model.DetectedChord{}
	}
	if best, ok := detect.MostLikely(detected); ok {
		res.MostLikely = &best
	}
	return res
}

type fileDetection struct {
	Path   string       `json:"path" yaml:"path"`
	Chords []timedChord `json:"chords" yaml:"chords"`
}

type timedChord struct {
	Offset int64       `json:"offset_us" yaml:"offset_us"`
	Notes  model.Notes `json:"notes" yaml:"notes"`
	Symbol string      `json:"symbol" yaml:"symbol"`
}

// detectInFiles names the most likely chord of every new note set; files
// that fail to parse are logged and skipped.
func detectInFiles(path string, maxNum int) ([]fileDetection, error) {
	paths, err := util.GatherAllMidiPaths(path, maxNum)
	if err != nil {
		return nil, err
	}

	var res []fileDetection
	for i, p := range paths {
		zlog.Debug("processing midi file", zap.Int("num", i+1), zap.Int("of", len(paths)), zap.String("path", p))
		parsed, err := midi.ReadMidiFile(p)
		if err != nil {
			zlog.Warn("skipping midi file", zap.String("path", p), zap.Error(err))
			continue
		}

		fd := fileDetection{Path: p, Chords: []timedChord{}}
		var lastKey string
		for _, set := range midi.NoteSets(parsed) {
			key := midi.NoteSetKey(set.Notes)
			if key == lastKey {
				continue
			}
			lastKey = key
			best, ok := detect.MostLikely(detect.Detect(set.Notes))
			if !ok {
				continue
			}
			fd.Chords = append(fd.Chords, timedChord{Offset: set.Offset, Notes: set.Notes, Symbol: detect.Format(best)})
		}
		res = append(res, fd)
	}
	return res, nil
}
