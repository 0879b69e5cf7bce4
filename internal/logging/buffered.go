package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
)

// BufferedHandler is a text slog.Handler that keeps its output in memory,
// for asserting on log lines in tests.
type BufferedHandler struct {
	slog.Handler
	buf *lockedBuffer
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// NewBufferedHandler creates a handler; nil opts captures every level.
func NewBufferedHandler(opts *slog.HandlerOptions) *BufferedHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{Level: slog.LevelDebug}
	}
	buf := &lockedBuffer{}
	return &BufferedHandler{
		Handler: slog.NewTextHandler(buf, opts),
		buf:     buf,
	}
}

// String returns everything logged so far.
func (h *BufferedHandler) String() string {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	return h.buf.buf.String()
}

// Contains reports whether the captured output contains s.
func (h *BufferedHandler) Contains(s string) bool {
	return strings.Contains(h.String(), s)
}

// Reset drops captured output.
func (h *BufferedHandler) Reset() {
	h.buf.mu.Lock()
	defer h.buf.mu.Unlock()
	h.buf.buf.Reset()
}
