package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/progression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, method string, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandleDetect(t *testing.T) {
	resp := do(t, http.MethodPost, "/detect", model.DetectRequestBody{Notes: model.Notes{60, 64, 67}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	res := decode[model.DetectResponse](t, resp)
	require.NotNil(t, res.MostLikely)
	assert.Equal(t, "C", res.MostLikely.Symbol)
	assert.Equal(t, "C", res.Formatted[0])
}

func TestHandleDetectNoMatch(t *testing.T) {
	resp := do(t, http.MethodPost, "/detect", model.DetectRequestBody{Notes: model.Notes{60}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.DetectResponse](t, resp)
	assert.Nil(t, res.MostLikely)
	assert.Empty(t, res.Chords)
}

func TestHandleDetectBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/detect", strings.NewReader("{"))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleDetectFrets(t *testing.T) {
	resp := do(t, http.MethodPost, "/detect/frets", model.DetectFretsRequestBody{
		Frets: []int{model.Muted, 0, 2, 2, 1, 0},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[model.DetectResponse](t, resp)
	require.NotNil(t, res.MostLikely)
	assert.Equal(t, "Am", res.MostLikely.Symbol)
}

func TestHandleChord(t *testing.T) {
	resp := do(t, http.MethodGet, "/chords/Am7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.ChordResponse](t, resp)
	assert.Equal(t, model.Notes{69, 72, 76, 79}, res.Chord.Notes)
	assert.Equal(t, "Minor 7th", res.Definition.Name)

	resp = do(t, http.MethodGet, "/chords/Am7?octave=3", nil)
	res = decode[model.ChordResponse](t, resp)
	assert.Equal(t, model.Notes{57, 60, 64, 67}, res.Chord.Notes)
}

func TestHandleChordErrors(t *testing.T) {
	resp := do(t, http.MethodGet, "/chords/Hm", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := decode[model.ErrorResponse](t, resp)
	assert.Contains(t, res.Error, "Hm")

	resp = do(t, http.MethodGet, "/chords/C?octave=four", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleVoicings(t *testing.T) {
	resp := do(t, http.MethodGet, "/chords/C/voicings", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.VoicingsResponse](t, resp)
	assert.Equal(t, "standard", res.Tuning.Name)
	require.NotEmpty(t, res.Voicings)
	assert.Equal(t, []int{0, 3, 2, 0, 1, 0}, res.Voicings[0].Frets)
	require.NotEmpty(t, res.Presets)

	resp = do(t, http.MethodGet, "/chords/C/voicings?tuning=banjo", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleScale(t *testing.T) {
	resp := do(t, http.MethodGet, "/scales/A/minor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.ScaleResponse](t, resp)
	assert.Equal(t, model.Notes{69, 71, 72, 74, 76, 77, 79}, res.Notes)
	assert.Equal(t, []string{"Am", "Bdim", "C", "Dm", "Em", "F", "G"}, res.Diatonic)

	assert.Equal(t, "C", res.Relative)
	assert.Empty(t, res.Checked)

	resp = do(t, http.MethodGet, "/scales/A/klingon", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleScaleRelativeAndChecked(t *testing.T) {
	resp := do(t, http.MethodGet, "/scales/G/major?check=66,F4,B3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.ScaleResponse](t, resp)
	assert.Equal(t, "E", res.Relative)
	assert.Equal(t, []model.NoteInScale{
		{Note: 66, InScale: true, Degree: 7},
		{Note: 65, InScale: false},
		{Note: 59, InScale: true, Degree: 3},
	}, res.Checked)

	resp = do(t, http.MethodGet, "/scales/D/dorian", nil)
	res = decode[model.ScaleResponse](t, resp)
	assert.Empty(t, res.Relative)

	resp = do(t, http.MethodGet, "/scales/G/major?check=H4", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleProgression(t *testing.T) {
	resp := do(t, http.MethodPost, "/progressions", model.ProgressionRequestBody{
		Name:  "pop",
		Key:   "G",
		Roman: []string{"I", "V", "vi", "IV"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decode[model.Progression](t, resp)
	var symbols []string
	for _, c := range p.Chords {
		symbols = append(symbols, c.Chord.Symbol)
	}
	assert.Equal(t, []string{"G", "D", "Em", "C"}, symbols)
	assert.Equal(t, float64(model.DefaultTempo), p.Tempo)

	resp = do(t, http.MethodPost, "/progressions", model.ProgressionRequestBody{Key: "C", Roman: []string{"VIII"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandlePreset(t *testing.T) {
	resp := do(t, http.MethodGet, "/progressions/presets/ii-V-I?key=D", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	p := decode[model.Progression](t, resp)
	assert.Equal(t, "D", p.Key)
	assert.Len(t, p.Chords, 3)

	resp = do(t, http.MethodGet, "/progressions/presets/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleTranspose(t *testing.T) {
	p, err := progression.CreateFromSymbols("", "C", []string{"C", "Am", "F", "G"}, 0)
	require.NoError(t, err)

	resp := do(t, http.MethodPost, "/progressions/transpose", model.TransposeRequestBody{Progression: p, Key: "D"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.Progression](t, resp)
	assert.Equal(t, "D", res.Key)
	assert.Equal(t, "Bm", res.Chords[1].Chord.Symbol)
}

func TestHandleExportChord(t *testing.T) {
	resp := do(t, http.MethodPost, "/export/chord", model.ExportChordRequestBody{Symbol: "C"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"C.mid"`)

	s, err := midi.Decode(resp.Body)
	require.NoError(t, err)
	sets := midi.NoteSets(s)
	require.Len(t, sets, 1)
	assert.Equal(t, model.Notes{60, 64, 67}, sets[0].Notes)
}

func TestHandleExportProgression(t *testing.T) {
	resp := do(t, http.MethodPost, "/export/progression", model.ProgressionRequestBody{
		Name:    "loop",
		Key:     "C",
		Symbols: []string{"C", "G"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"loop.mid"`)

	s, err := midi.Decode(resp.Body)
	require.NoError(t, err)
	assert.Len(t, midi.NoteSets(s), 2)
}

func TestHandleExportRejectsTempoTooSlowToEncode(t *testing.T) {
	resp := do(t, http.MethodPost, "/export/chord", model.ExportChordRequestBody{Symbol: "C", Tempo: 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	res := decode[model.ErrorResponse](t, resp)
	assert.Contains(t, res.Error, midi.ErrTempoOutOfRange.Error())

	resp = do(t, http.MethodPost, "/export/progression", model.ProgressionRequestBody{
		Key:     "C",
		Symbols: []string{"C", "G"},
		Tempo:   2,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleCatalog(t *testing.T) {
	resp := do(t, http.MethodGet, "/catalog", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decode[model.CatalogResponse](t, resp)
	assert.Equal(t, chord.Types(), res.ChordTypes)
	assert.Contains(t, res.Tunings, "dropD")
	assert.Contains(t, res.Progressions, "12-bar-blues")
}

func TestRecoverMiddleware(t *testing.T) {
	h := recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(progression.ErrUnknownPreset))
	assert.Equal(t, http.StatusBadRequest, statusFor(chord.ErrInvalidChordSymbol))
	assert.Equal(t, http.StatusBadRequest, statusFor(midi.ErrNoteOutOfRange))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk on fire")))
}
