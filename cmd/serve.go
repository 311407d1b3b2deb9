package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/jsphweid/fretdex/chord"
	"github.com/jsphweid/fretdex/detect"
	"github.com/jsphweid/fretdex/midi"
	"github.com/jsphweid/fretdex/model"
	"github.com/jsphweid/fretdex/note"
	"github.com/jsphweid/fretdex/progression"
	"github.com/jsphweid/fretdex/scale"
	"github.com/jsphweid/fretdex/voicing"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errBadBody = errors.New("invalid request body")

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the toolkit over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			return fmt.Errorf("failed to init sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		zlog.Info("sentry enabled")
	}

	addr := cfg.Addr()
	zlog.Info("listening", zap.String("addr", addr), zap.Strings("allowed_origins", cfg.AllowedOrigins))
	return http.ListenAndServe(addr, NewRouter())
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(recoverMiddleware, logMiddleware)

	router.HandleFunc("/detect", HandleDetect).Methods(http.MethodPost)
	router.HandleFunc("/detect/frets", HandleDetectFrets).Methods(http.MethodPost)
	router.HandleFunc("/chords/{symbol}", HandleChord).Methods(http.MethodGet)
	router.HandleFunc("/chords/{symbol}/voicings", HandleVoicings).Methods(http.MethodGet)
	router.HandleFunc("/scales/{root}/{type}", HandleScale).Methods(http.MethodGet)
	router.HandleFunc("/progressions", HandleProgression).Methods(http.MethodPost)
	router.HandleFunc("/progressions/presets/{name}", HandlePreset).Methods(http.MethodGet)
	router.HandleFunc("/progressions/transpose", HandleTranspose).Methods(http.MethodPost)
	router.HandleFunc("/export/chord", HandleExportChord).Methods(http.MethodPost)
	router.HandleFunc("/export/progression", HandleExportProgression).Methods(http.MethodPost)
	router.HandleFunc("/catalog", HandleCatalog).Methods(http.MethodGet)

	return cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		zlog.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("took", time.Since(start)))
	})
}

func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.CurrentHub().Recover(rec)
				zlog.Error("handler panicked", zap.Any("panic", rec), zap.String("path", r.URL.Path))
				writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, progression.ErrUnknownPreset):
		return http.StatusNotFound
	case errors.Is(err, errBadBody),
		errors.Is(err, errNoProgressionSource),
		errors.Is(err, note.ErrInvalidNoteName),
		errors.Is(err, chord.ErrUnknownChordType),
		errors.Is(err, chord.ErrInvalidChordSymbol),
		errors.Is(err, scale.ErrUnknownScaleType),
		errors.Is(err, progression.ErrInvalidRomanNumeral),
		errors.Is(err, midi.ErrTempoOutOfRange),
		errors.Is(err, midi.ErrNoteOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn("failed to write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		sentry.CaptureException(err)
		zlog.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func readBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

func writeMidi(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zlog.Warn("failed to write midi response", zap.Error(err))
	}
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", errBadBody, key)
	}
	return n, nil
}

func HandleDetect(w http.ResponseWriter, r *http.Request) {
	var input model.DetectRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detectResponse(detect.Detect(input.Notes), detect.DefaultTop))
}

func HandleDetectFrets(w http.ResponseWriter, r *http.Request) {
	var input model.DetectFretsRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	tuning := voicing.Tuning(firstNonEmpty(input.Tuning, cfg.Tuning))
	writeJSON(w, http.StatusOK, detectResponse(detect.DetectFromFrets(input.Frets, tuning.Strings), detect.DefaultTop))
}

func HandleChord(w http.ResponseWriter, r *http.Request) {
	octave, err := queryInt(r, "octave", 4)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := chordBySymbol(mux.Vars(r)["symbol"], octaveReference(octave))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleVoicings(w http.ResponseWriter, r *http.Request) {
	tuningName := firstNonEmpty(r.URL.Query().Get("tuning"), cfg.Tuning)
	if _, ok := voicing.LookupTuning(tuningName); !ok {
		writeError(w, fmt.Errorf("%w: unknown tuning %q", errBadBody, tuningName))
		return
	}
	maxFret, err := queryInt(r, "max_fret", cfg.MaxFret)
	if err != nil {
		writeError(w, err)
		return
	}
	maxSpan, err := queryInt(r, "max_span", voicing.DefaultMaxSpan)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := chordVoicings(mux.Vars(r)["symbol"], tuningName, maxFret, maxSpan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleScale(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	octave, err := queryInt(r, "octave", 4)
	if err != nil {
		writeError(w, err)
		return
	}
	var check model.Notes
	for _, raw := range splitList(r.URL.Query().Get("check")) {
		n, err := parseNoteArg(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		check = append(check, n)
	}
	res, err := scaleNotes(vars["root"], vars["type"], octaveReference(octave), check)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func progressionFromBody(r *http.Request) (model.Progression, error) {
	var input model.ProgressionRequestBody
	if err := readBody(r, &input); err != nil {
		return model.Progression{}, err
	}
	if input.Tempo <= 0 {
		input.Tempo = cfg.Tempo
	}
	return buildProgression(input)
}

func HandleProgression(w http.ResponseWriter, r *http.Request) {
	p, err := progressionFromBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func HandlePreset(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		key = "C"
	}
	p, err := progression.Preset(mux.Vars(r)["name"], key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func HandleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	p, err := progression.Transpose(input.Progression, input.Key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func HandleExportChord(w http.ResponseWriter, r *http.Request) {
	var input model.ExportChordRequestBody
	if err := readBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	c, err := chord.FromSymbol(input.Symbol, chord.DefaultReferenceMidi)
	if err != nil {
		writeError(w, err)
		return
	}
	var opts []midi.Option
	if input.Duration > 0 {
		opts = append(opts, midi.WithDuration(input.Duration))
	}
	if input.Tempo > 0 {
		opts = append(opts, midi.WithTempo(input.Tempo))
	} else {
		opts = append(opts, midi.WithTempo(cfg.Tempo))
	}
	data, err := midi.EncodeChord(c, opts...)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMidi(w, c.Symbol+".mid", data)
}

func HandleExportProgression(w http.ResponseWriter, r *http.Request) {
	p, err := progressionFromBody(r)
	if err != nil {
		writeError(w, err)
		return
	}
	name := p.Name
	if name == "" {
		name = "progression"
	}
	data, err := midi.EncodeProgression(p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeMidi(w, name+".mid", data)
}

func HandleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog())
}
