package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogMode selects the log output format.
type LogMode string

const (
	LogModeDefault  LogMode = "default"
	LogModeJSON     LogMode = "json"
	LogModeCombined LogMode = "combined"
	// LogModeQuiet discards all log output.
	LogModeQuiet LogMode = "quiet"
)

const (
	jobIDFieldName  = "JobID"
	nodeIDFieldName = "NodeID"
)

var stderr = struct{ io.Writer }{os.Stderr}

func init() { //nolint:gochecknoinits
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.CallerMarshalFunc = shortCaller
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	// log lines written before ConfigureLogging are replayed once the
	// output is known
	log.Logger = zerolog.New(bufferLogs()).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log.Logger
}

func ParseLogMode(s string) (LogMode, error) {
	switch mode := LogMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return LogModeDefault, nil
	case LogModeDefault, LogModeJSON, LogModeCombined, LogModeQuiet:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid log mode %q, expected one of default, json, combined, quiet", s)
	}
}

func ParseLogLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
}

// ConfigureLogging sets the global logger and flushes anything logged before.
func ConfigureLogging(mode LogMode, level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	writer := writerFor(mode)
	log.Logger = zerolog.New(writer).With().Timestamp().Caller().Logger()
	// contexts without a logger of their own use the global one
	zerolog.DefaultContextLogger = &log.Logger
	LogBufferedLogs(writer)
}

type tTesting interface {
	Log(args ...interface{})
	Logf(format string, args ...interface{})
	Helper()
	Cleanup(f func())
}

// ConfigureTestLogging allows logs to be associated with individual tests
func ConfigureTestLogging(t tTesting) {
	oldLogger := log.Logger
	oldContextLogger := zerolog.DefaultContextLogger
	log.Logger = zerolog.New(consoleWriter(zerolog.ConsoleTestWriter(t))).With().Timestamp().Caller().Logger()
	zerolog.DefaultContextLogger = &log.Logger
	t.Cleanup(func() {
		log.Logger = oldLogger
		zerolog.DefaultContextLogger = oldContextLogger
	})
}

func writerFor(mode LogMode) io.Writer {
	switch mode {
	case LogModeJSON:
		return os.Stdout
	case LogModeCombined:
		return zerolog.MultiLevelWriter(consoleWriter(), os.Stdout)
	case LogModeQuiet:
		return io.Discard
	default:
		return consoleWriter()
	}
}

func consoleWriter(options ...func(w *zerolog.ConsoleWriter)) io.Writer {
	isTerminal := isatty.IsTerminal(os.Stderr.Fd())
	defaults := func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
		w.NoColor = !isTerminal
		w.TimeFormat = "15:04:05.999 |"
		w.PartsOrder = []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		}
		w.FormatFieldName = func(i interface{}) string {
			return fmt.Sprintf("[%s:", i)
		}
		w.FormatFieldValue = func(i interface{}) string {
			// don't print nil in case field value wasn't set
			if i == nil {
				i = ""
			}
			return fmt.Sprintf("%s]", i)
		}
	}
	return zerolog.NewConsoleWriter(append([]func(w *zerolog.ConsoleWriter){defaults}, options...)...)
}

// shortCaller keeps the last two path elements of the caller's file.
func shortCaller(_ uintptr, file string, line int) string {
	short := file
	separatorCount := 2
	countedSeparators := 0
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			countedSeparators++
			if countedSeparators >= separatorCount {
				short = file[i+1:]
				break
			}
		}
	}
	return short + ":" + strconv.Itoa(line)
}

// ContextWithNodeIDLogger will return a context with nodeID is added to the logging context.
func ContextWithNodeIDLogger(ctx context.Context, nodeID string) context.Context {
	l := log.Ctx(ctx).With().Str(nodeIDFieldName, nodeID).Logger()
	return l.WithContext(ctx)
}

// ContextWithJobIDLogger returns a context whose logger tags every line with
// the job id. Fields already on the context logger are kept.
func ContextWithJobIDLogger(ctx context.Context, jobID string) context.Context {
	l := log.Ctx(ctx).With().Str(jobIDFieldName, jobID).Logger()
	return l.WithContext(ctx)
}
