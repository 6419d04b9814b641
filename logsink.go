package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

const logTimeLayout = "2006-01-02 15:04:05"

// logSink appends one timestamped plaintext line per call. log.Logger issues
// a single Write per entry, and the file is O_APPEND, so lines never interleave
// or tear.
type logSink struct {
	closer io.Closer
	logger *log.Logger
	now    func() time.Time
}

func newLogSink(w io.Writer) *logSink {
	return &logSink{logger: log.New(w, "", 0), now: time.Now}
}

func openLogSink(path string) (*logSink, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", path, err)
	}
	sink := newLogSink(f)
	sink.closer = f
	return sink, nil
}

func (l *logSink) Printf(format string, args ...any) {
	l.logger.Printf("%s  %s", l.now().Format(logTimeLayout), fmt.Sprintf(format, args...))
}

func (l *logSink) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
