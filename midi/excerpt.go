package midi

import (
	"bytes"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Excerpt copies s from fromTicks on, keeping at most maxNotes note on/off
// messages per track. Other messages before the start are kept with their
// delta clamped so tempo and program changes still apply.
func Excerpt(s *smf.SMF, fromTicks uint64, maxNotes int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			switch {
			case evt.Message.Is(gomidi.NoteOnMsg),
				evt.Message.Is(gomidi.NoteOffMsg):
				if absTicks >= fromTicks {
					newTrack = append(newTrack, evt)
					numNoteOnOff++
					if maxNotes > 0 && numNoteOnOff >= maxNotes {
						newTrack.Close(0)
						break TrackEventLoop
					}
				}
			default:
				if absTicks < fromTicks && evt.Delta > 1 {
					evt.Delta = 1
				}
				newTrack = append(newTrack, evt)
			}
		}
		res.Tracks = append(res.Tracks, newTrack)
	}

	return &res
}

func Bytes(s *smf.SMF) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("error writing midi file: %w", err)
	}
	return buf.Bytes(), nil
}
