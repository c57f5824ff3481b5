package logger

import (
	"io"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var logBufferedLogs func(io.Writer) error

// LogBufferedLogs writes the log lines recorded before logging was configured
// to writer, or to the default console output if writer is nil. It does
// nothing once the buffer has been written.
func LogBufferedLogs(writer io.Writer) {
	if logBufferedLogs == nil {
		return
	}
	if writer == nil {
		writer = consoleWriter()
	}

	if err := logBufferedLogs(writer); err != nil {
		log.Err(err).Msg("Failed to log messages")
	}
	logBufferedLogs = nil
}

// bufferLogs returns a writer that keeps log lines until LogBufferedLogs is
// called with the real output.
func bufferLogs() io.Writer {
	buffer := &bufferingLogWriter{}
	logBufferedLogs = buffer.writeLogs
	return buffer
}

type bufferingLogWriter struct {
	buffer [][]byte
	mu     sync.Mutex
}

func (b *bufferingLogWriter) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// make sure p isn't reused while it's being kept on the buffer
	p = slices.Clone(p)

	b.buffer = append(b.buffer, p)

	return len(p), nil
}

func (b *bufferingLogWriter) writeLogs(w io.Writer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs error
	for _, line := range b.buffer {
		if _, err := w.Write(line); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return errs
}

var _ io.Writer = &bufferingLogWriter{}
