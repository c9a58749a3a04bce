package mocks

import (
	"bytes"
	"log/slog"
)

// NewLoggerMock returns a debug-level text logger writing into the returned
// buffer, with timestamps stripped so tests can assert on full lines.
func NewLoggerMock() (*bytes.Buffer, *slog.Logger) {
	buf := &bytes.Buffer{}
	return buf, slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
