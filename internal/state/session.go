package state

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"InkOverlay/internal/applog"
)

// Session identifies one presentation run. Path ids are unique within it.
type Session struct {
	id  string
	seq uint64
}

func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

func (s *Session) ID() string { return s.id }

// NextPathID returns "path-<session>-<n>" with n counting from 1.
func (s *Session) NextPathID() string {
	n := atomic.AddUint64(&s.seq, 1)
	return fmt.Sprintf("path-%s-%d", s.id[:8], n)
}

func logger() *slog.Logger { return applog.For("state") }
