package logger

import (
	"io"
	"os"
	"salon/config"
	"salon/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger writes human readable output in development and JSON lines elsewhere.
func InitLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Logger = New(os.Stdout, cfg)
	log.Trace().Msg("Zerolog initialized.")
}

func New(out io.Writer, cfg *config.Config) zerolog.Logger {
	writer := out
	if cfg.Server.Env == "" || cfg.Server.Env == constant.ServerEnvDevelopment {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	builder := zerolog.New(writer).With().Timestamp()
	if cfg.App.Name != "" {
		builder = builder.Str("app", cfg.App.Name)
	}

	return builder.Logger()
}

func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func SetLogLevel(config *config.Config) {
	level, err := zerolog.ParseLevel(config.Server.LogLevel)
	if err != nil {
		level = zerolog.TraceLevel
		log.Trace().Str("loglevel", level.String()).Msg("Environment has no log level set up, using default.")
	} else {
		log.Trace().Str("loglevel", level.String()).Msg("Desired log level detected.")
	}

	zerolog.SetGlobalLevel(level)
}
