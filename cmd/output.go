package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
)

func writeResult(w io.Writer, format string, result any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml", "":
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

var noteArgPattern = regexp.MustCompile(`^([A-G][#b]?)(-?\d+)$`)

// parseNoteArg accepts a MIDI number ("60") or a name with octave ("C4", "Eb3").
func parseNoteArg(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	m := noteArgPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", note.ErrInvalidNoteName, s)
	}
	octave, _ := strconv.Atoi(m[2])
	return note.ToMidi(m[1], octave)
}

func parseNoteArgs(args []string) (model.Notes, error) {
	notes := make(model.Notes, 0, len(args))
	for _, a := range args {
		n, err := parseNoteArg(a)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

// parseFrets reads tab shorthand: "x32010", or comma separated when any
// fret needs two digits ("x,10,12,12,11,x").
func parseFrets(s string) ([]int, error) {
	var parts []string
	if strings.Contains(s, ",") {
		parts = strings.Split(s, ",")
	} else {
		parts = strings.Split(s, "")
	}

	frets := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "x" || p == "X" {
			frets = append(frets, model.Muted)
			continue
		}
		f, err := strconv.Atoi(p)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("invalid fret %q in %q", p, s)
		}
		frets = append(frets, f)
	}
	return frets, nil
}

func formatFrets(frets []int) string {
	parts := make([]string, len(frets))
	wide := false
	for i, f := range frets {
		if f == model.Muted {
			parts[i] = "x"
			continue
		}
		parts[i] = strconv.Itoa(f)
		if f > 9 {
			wide = true
		}
	}
	if wide {
		return strings.Join(parts, ",")
	}
	return strings.Join(parts, "")
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}
