package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// fanoutWriter serialises log lines onto one or more buffered sinks.
type fanoutWriter struct {
	mu    sync.Mutex
	sinks []*bufio.Writer
	err   error
}

func newFanoutWriter(writers []io.Writer) *fanoutWriter {
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			sinks = append(sinks, bufio.NewWriter(w))
		}
	}
	return &fanoutWriter{sinks: sinks}
}

// Write copies one complete line to every sink and flushes it.
// The first sink error is sticky and returned on subsequent calls.
func (w *fanoutWriter) Write(p []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			w.err = err
			return err
		}
		if err := sink.Flush(); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// Flush pushes any buffered bytes to the sinks.
func (w *fanoutWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
