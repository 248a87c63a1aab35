// Package logspy provides a slog.Handler that records log records for assertions in tests.
package logspy

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// LogHandlerSpy is a slog.Handler implementation that captures log records for testing.
type LogHandlerSpy struct {
	records     *[]slog.Record
	attrs       []slog.Attr
	mu          *sync.Mutex
	logToStdout bool
}

// NewLogHandlerSpy creates a new LogHandlerSpy.
// Switchable to log to stdout, which can be useful for debugging tests by seeing the actual log output.
func NewLogHandlerSpy(logToStdout bool) *LogHandlerSpy {
	records := make([]slog.Record, 0)

	return &LogHandlerSpy{
		records:     &records,
		mu:          &sync.Mutex{},
		logToStdout: logToStdout,
	}
}

// NewLogger creates a *slog.Logger writing into a new LogHandlerSpy.
func NewLogger() (*slog.Logger, *LogHandlerSpy) {
	spy := NewLogHandlerSpy(false)

	return slog.New(spy), spy
}

// Handle implements slog.Handler interface.
func (s *LogHandlerSpy) Handle(ctx context.Context, record slog.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record = record.Clone()
	record.AddAttrs(s.attrs...)
	*s.records = append(*s.records, record)

	if s.logToStdout {
		_ = slog.NewJSONHandler(os.Stdout, nil).Handle(ctx, record)
	}

	return nil
}

// Enabled implements slog.Handler interface.
func (s *LogHandlerSpy) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// WithAttrs implements slog.Handler interface. The returned handler shares the recorded records.
func (s *LogHandlerSpy) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandlerSpy{
		records:     s.records,
		attrs:       append(append([]slog.Attr{}, s.attrs...), attrs...),
		mu:          s.mu,
		logToStdout: s.logToStdout,
	}
}

// WithGroup implements slog.Handler interface. Groups are ignored.
func (s *LogHandlerSpy) WithGroup(_ string) slog.Handler {
	return s
}

// Records returns a copy of all captured log records.
func (s *LogHandlerSpy) Records() []slog.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]slog.Record, len(*s.records))
	copy(records, *s.records)

	return records
}

// HasLog reports whether a record with the given level and message was captured.
func (s *LogHandlerSpy) HasLog(level slog.Level, message string) bool {
	_, found := s.find(level, message)

	return found
}

// AttrOf returns the value of the attribute key of the first record with the given level and message.
func (s *LogHandlerSpy) AttrOf(level slog.Level, message string, key string) (slog.Value, bool) {
	record, found := s.find(level, message)
	if !found {
		return slog.Value{}, false
	}

	var value slog.Value
	var hasAttr bool

	record.Attrs(func(attr slog.Attr) bool {
		if attr.Key == key {
			value, hasAttr = attr.Value, true
			return false
		}

		return true
	})

	return value, hasAttr
}

func (s *LogHandlerSpy) find(level slog.Level, message string) (slog.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range *s.records {
		if record.Level == level && record.Message == message {
			return record, true
		}
	}

	return slog.Record{}, false
}
