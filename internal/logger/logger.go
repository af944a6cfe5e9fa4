package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. format "json" writes structured lines,
// anything else uses the console writer.
func Init(level, format string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if strings.EqualFold(format, "json") {
		out = os.Stdout
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func Get() zerolog.Logger {
	return log.With().Caller().Logger()
}
