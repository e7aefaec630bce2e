package dashboard

import (
	"github.com/google/uuid"
	"go.uber.org/atomic"
)

// Session identifies one user action. Only the most recent session may
// write to the display.
type Session struct {
	ID  string
	seq uint64
}

type sessions struct {
	current *atomic.Uint64
}

func newSessions() *sessions {
	return &sessions{current: atomic.NewUint64(0)}
}

// begin starts a session and makes every earlier one stale.
func (s *sessions) begin() Session {
	return Session{ID: uuid.NewString(), seq: s.current.Inc()}
}

func (s *sessions) isCurrent(sess Session) bool {
	return s.current.Load() == sess.seq
}
