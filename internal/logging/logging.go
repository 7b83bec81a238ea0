// Package logging configures the process-wide zerolog logger and adapts it to
// the small Logger interface the pkg/ packages accept.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger sets the global level from verbosity and installs a console
// writer on out. Inside GitHub Actions levels are rendered as workflow
// commands so warnings and errors are annotated on the run.
func SetupLogger(verbosity int, out io.Writer, actions bool) {
	switch {
	case verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	if out == nil {
		out = os.Stdout
	}

	log.Logger = zerolog.New(NewConsoleWriter(out, actions)).With().Timestamp().Logger()
	log.Debug().Int("verbosity", verbosity).Bool("actions", actions).Msg("Logger initialized")
}

// NewConsoleWriter returns the human-readable writer used by SetupLogger.
func NewConsoleWriter(out io.Writer, actions bool) zerolog.ConsoleWriter {
	if !actions {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     true,
		PartsOrder:  []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: workflowLevel,
	}
}

func workflowLevel(i interface{}) string {
	level, _ := i.(string)
	switch level {
	case zerolog.LevelTraceValue, zerolog.LevelDebugValue:
		return "::debug::"
	case zerolog.LevelWarnValue:
		return "::warning::"
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return "::error::"
	default:
		return ""
	}
}

// GetLogger returns a logger tagged with component.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Reporter adapts a zerolog logger to the Info/Warning interface.
type Reporter struct {
	Logger zerolog.Logger
}

// NewReporter wraps the global logger.
func NewReporter() Reporter {
	return Reporter{Logger: log.Logger}
}

func (r Reporter) Info(msg string) {
	r.Logger.Info().Msg(msg)
}

func (r Reporter) Warning(msg string) {
	r.Logger.Warn().Msg(msg)
}
