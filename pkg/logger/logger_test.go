//go:build unit || !integration

package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/suite"
)

type LoggerSuite struct {
	suite.Suite
	oldLogger        zerolog.Logger
	oldContextLogger *zerolog.Logger
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerSuite))
}

func (s *LoggerSuite) SetupTest() {
	s.oldLogger = log.Logger
	s.oldContextLogger = zerolog.DefaultContextLogger
}

func (s *LoggerSuite) TearDownTest() {
	log.Logger = s.oldLogger
	zerolog.DefaultContextLogger = s.oldContextLogger
}

func (s *LoggerSuite) TestParseLogMode() {
	for input, expected := range map[string]LogMode{
		"":         LogModeDefault,
		"json":     LogModeJSON,
		" JSON ":   LogModeJSON,
		"combined": LogModeCombined,
		"quiet":    LogModeQuiet,
	} {
		mode, err := ParseLogMode(input)
		s.Require().NoError(err, input)
		s.Equal(expected, mode, input)
	}
	_, err := ParseLogMode("xml")
	s.Error(err)
}

func (s *LoggerSuite) TestParseLogLevel() {
	level, err := ParseLogLevel("")
	s.Require().NoError(err)
	s.Equal(zerolog.InfoLevel, level)

	level, err = ParseLogLevel("DEBUG")
	s.Require().NoError(err)
	s.Equal(zerolog.DebugLevel, level)

	_, err = ParseLogLevel("loud")
	s.Error(err)
}

func (s *LoggerSuite) TestContextWithJobIDLogger() {
	var out bytes.Buffer
	base := zerolog.New(&out)
	ctx := base.WithContext(context.Background())

	ctx = ContextWithNodeIDLogger(ctx, "node-1")
	ctx = ContextWithJobIDLogger(ctx, "job-1")
	log.Ctx(ctx).Info().Msg("hello")

	s.Contains(out.String(), `"JobID":"job-1"`)
	s.Contains(out.String(), `"NodeID":"node-1"`)
	s.Contains(out.String(), `"message":"hello"`)
}

func (s *LoggerSuite) TestBufferedLogsAreReplayed() {
	buffer := &bufferingLogWriter{}
	logBufferedLogs = buffer.writeLogs
	l := zerolog.New(buffer)
	l.Info().Msg("before configuration")

	var out bytes.Buffer
	LogBufferedLogs(&out)
	s.Contains(out.String(), "before configuration")

	// the buffer is only written once
	out.Reset()
	LogBufferedLogs(&out)
	s.Empty(out.String())
}

func (s *LoggerSuite) TestShortCaller() {
	s.Equal("logger/logger.go:12", shortCaller(0, "/src/genie/pkg/logger/logger.go", 12))
	s.Equal("main.go:3", shortCaller(0, "main.go", 3))
}
