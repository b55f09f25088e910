// Package zerolog provides the default console logger backed by rs/zerolog.
package zerolog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/goterm/term"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	messageWidth = 60
	callerWidth  = 16
)

// New builds a zerolog logger writing to stdout.
func New(level, dateTimeLayout string, colored, jsonFormat bool) (*zerolog.Logger, error) {
	return NewWithWriter(os.Stdout, level, dateTimeLayout, colored, jsonFormat)
}

// NewWithWriter builds a zerolog logger writing to out. With jsonFormat the
// output is raw JSON lines, otherwise a padded, coloured console layout.
func NewWithWriter(out io.Writer, level, dateTimeLayout string, colored, jsonFormat bool) (*zerolog.Logger, error) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = out
	if !jsonFormat {
		w = zerolog.ConsoleWriter{
			Out:             out,
			NoColor:         !colored,
			TimeFormat:      dateTimeLayout,
			FormatLevel:     formatLevel,
			FormatMessage:   formatMessage,
			FormatCaller:    formatCaller,
			FormatTimestamp: func(i interface{}) string { return formatTimestamp(i, dateTimeLayout) },
		}
	}

	l := zerolog.New(w).With().Timestamp().CallerWithSkipFrameCount(3).Logger()
	return &l, nil
}

func formatLevel(i interface{}) string {
	switch i {
	case zerolog.LevelTraceValue:
		return term.Cyanf("[TRC]")
	case zerolog.LevelDebugValue:
		return term.Cyanf("[DBG]")
	case zerolog.LevelInfoValue:
		return term.Greenf("[INF]")
	case zerolog.LevelWarnValue:
		return term.Yellowf("[WAR]")
	case zerolog.LevelErrorValue:
		return term.Redf("[ERR]")
	case zerolog.LevelFatalValue:
		return term.Redf("[FTL]")
	case zerolog.LevelPanicValue:
		return term.Redf("[PAN]")
	}
	return term.Whitef("[UNK]")
}

func formatMessage(i interface{}) string {
	msg, ok := i.(string)
	if !ok || msg == "" {
		return ">"
	}
	if len(msg) < messageWidth {
		msg += strings.Repeat(" ", messageWidth-len(msg))
	}
	return term.Whitef("> %s", msg)
}

func formatCaller(i interface{}) string {
	name, ok := i.(string)
	if !ok || name == "" {
		return ""
	}

	file, line, found := strings.Cut(filepath.Base(name), ":")
	if !found {
		return term.Yellowf("[%s]", name)
	}
	if len(file) > callerWidth {
		file = file[:callerWidth]
	}
	return term.Yellowf("[%-*s:%4s]", callerWidth, file, line)
}

func formatTimestamp(i interface{}, layout string) string {
	s, ok := i.(string)
	if !ok {
		return term.Cyanf("[%v]", i)
	}
	if ts, err := time.ParseInLocation(time.RFC3339, s, time.Local); err == nil {
		s = ts.In(time.Local).Format(layout)
	}
	return term.Cyanf("[%s]", s)
}
