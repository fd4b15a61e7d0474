package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const timeFormat = "15:04:05.000"

// Init configures the global logger. Unknown levels fall back to info.
func Init(level string, pretty bool) {
	InitTo(os.Stderr, level, pretty)
}

func InitTo(w io.Writer, level string, pretty bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	output := w
	if pretty {
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: timeFormat}
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
	}
}
