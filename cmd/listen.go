package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/fretdex/detect"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
	"go.uber.org/zap"
)

var (
	listenPort       int
	listenDebounceMs int
)

func init() {
	listenCmd.Flags().IntVarP(&listenPort, "port", "p", 0, "MIDI input port number")
	listenCmd.Flags().IntVar(&listenDebounceMs, "debounce", 0, "milliseconds to wait for the hand to settle (defaults to config)")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Names chords played on a MIDI keyboard",
	Long: `Listens to a MIDI input port and prints the chord held down once
the keys stop changing. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return listen(ctx, cmd)
	},
}

// heldNotes tracks keys currently down on a live input.
type heldNotes struct {
	mu      sync.Mutex
	pressed map[int]bool
}

func newHeldNotes() *heldNotes {
	return &heldNotes{pressed: make(map[int]bool)}
}

func (h *heldNotes) press(key int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pressed[key] = true
}

func (h *heldNotes) release(key int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pressed, key)
}

func (h *heldNotes) notes() model.Notes {
	h.mu.Lock()
	defer h.mu.Unlock()
	return util.GetSortedKeys(h.pressed)
}

// chordReporter prints the most likely chord when the held notes change.
type chordReporter struct {
	held    *heldNotes
	lastKey string
	print   func(line string)
}

func (c *chordReporter) report() {
	notes := c.held.notes()
	key := midi.NoteSetKey(notes)
	if key == c.lastKey {
		return
	}
	c.lastKey = key
	if len(notes) == 0 {
		return
	}
	best, ok := detect.MostLikely(detect.Detect(notes))
	if !ok {
		zlog.Debug("no chord", zap.Ints("notes", notes))
		return
	}
	c.print(fmt.Sprintf("%-16s %s", key, detect.Format(best)))
}

func listen(ctx context.Context, cmd *cobra.Command) error {
	defer gomidi.CloseDriver()
	in, err := gomidi.InPort(listenPort)
	if err != nil {
		return fmt.Errorf("can't open midi input %d: %w", listenPort, err)
	}

	wait := cfg.ListenDebounceMs
	if listenDebounceMs > 0 {
		wait = listenDebounceMs
	}
	debounced := debounce.New(time.Duration(wait) * time.Millisecond)

	held := newHeldNotes()
	var reportMu sync.Mutex
	reporter := &chordReporter{held: held, print: func(line string) {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}}
	schedule := func() {
		debounced(func() {
			reportMu.Lock()
			defer reportMu.Unlock()
			reporter.report()
		})
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			held.press(int(key))
			schedule()
		case msg.GetNoteEnd(&ch, &key):
			held.release(int(key))
			schedule()
		}
	})
	if err != nil {
		return fmt.Errorf("can't listen to midi input: %w", err)
	}
	defer stop()

	zlog.Info("listening for chords", zap.Int("port", listenPort), zap.Int("debounce_ms", wait))
	<-ctx.Done()
	return nil
}
