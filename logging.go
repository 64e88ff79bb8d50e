package g2p

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the package-level logger. It is a no-op until a caller
// opts in with EnableDebugLogging, mirroring the teacher library's
// pattern of shipping quiet by default.
var Logger = zerolog.Nop()

// EnableDebugLogging switches Logger to a human-readable console
// writer on stderr, timestamped to the second.
func EnableDebugLogging() {
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
}

// EnableDebugLoggingAt switches Logger to the console writer at a
// caller-chosen level. The package itself logs only from WatchConfig,
// at Info and Error level.
func EnableDebugLoggingAt(level zerolog.Level) {
	EnableDebugLogging()
	Logger = Logger.Level(level)
}
