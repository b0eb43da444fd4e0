package diagnostics

import (
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// NewLogger builds the module's structured logger: a zerolog.Logger writing
// a TTY-coloured console format to stdout when stdout is a terminal, and
// the same console format without colour otherwise — the same colorable/isatty-gated ConsoleWriter
// pattern the teacher's CLI tooling uses, adapted here as the one logging
// entry point every package in this module shares instead of each
// constructing its own writer.
func NewLogger(level zerolog.Level) zerolog.Logger {
	var out zerolog.ConsoleWriter
	if isatty.IsTerminal(os.Stdout.Fd()) {
		out = zerolog.ConsoleWriter{Out: colorable.NewColorableStdout()}
	} else {
		out = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// StageLogger returns a child logger tagged with the S1-S7 stage name, so
// every log line a pipeline stage emits can be filtered or grouped by
// stage without the stage threading its name through every call site.
func StageLogger(base zerolog.Logger, stage string) zerolog.Logger {
	return base.With().Str("stage", stage).Logger()
}

// loggingSink adapts a zerolog.Logger into a Sink that logs every
// warning at warn level, in addition to whatever else the caller wants done
// with it — used by LoggingSink below.
type loggingSink struct {
	logger zerolog.Logger
	next   Sink
}

// LoggingSink wraps next (typically a CollectSink) so every warning is both
// logged at warn level and preserved for the build's provenance record.
func LoggingSink(logger zerolog.Logger, next Sink) Sink {
	return &loggingSink{logger: logger, next: next}
}

func (s *loggingSink) Warn(w Warning) {
	s.logger.Warn().Str("kind", string(w.Kind)).Str("stage", w.Stage).Msg(w.Message)
	if s.next != nil {
		s.next.Warn(w)
	}
}
