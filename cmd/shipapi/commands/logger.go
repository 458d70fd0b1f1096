package commands

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/fivetwenty-io/shipapi/pkg/shipapi"
)

// zerologLogger adapts zerolog to shipapi.Logger.
type zerologLogger struct {
	logger zerolog.Logger
}

// NewLogger returns a console logger. Debug output is only written when
// verbose is set.
func NewLogger(w io.Writer, verbose bool) shipapi.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &zerologLogger{logger: logger}
}

func (l *zerologLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
