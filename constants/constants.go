package constants

import "os"

func getEnv(name string, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetOutDir() string {
	return getEnv("OUT_DIR", "./out")
}

func GetPort() string {
	return getEnv("PORT", "8080")
}

func GetLogLevel() string {
	return getEnv("LOG_LEVEL", "info")
}

func GetSentryDSN() string {
	return os.Getenv("SENTRY_DSN")
}

// 480 ticks per quarter note, fixed for every exported file
const TicksPerBeat = 480

const NoteVelocity = 80

const DefaultListenDebounceMs = 120
