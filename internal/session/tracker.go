package session

import (
	"maps"
	"sync"
	"time"

	"github.com/vburojevic/clw/internal/domain"
)

// Tracker follows sessionId changes across the entries of one log file.
// Claude appends resumed sessions to the same project directory, so a file
// can interleave several sessions.
type Tracker struct {
	mu       sync.Mutex
	current  string
	order    []string
	sessions map[string]*domain.SessionSummary
	switches int
	entries  int
}

// SessionChange describes a switch between consecutive entries
type SessionChange struct {
	From    string // Empty on the first entry
	To      string
	Resumed bool // To was seen earlier in the file
}

// NewTracker creates a new session tracker
func NewTracker() *Tracker {
	return &Tracker{
		sessions: make(map[string]*domain.SessionSummary),
	}
}

// CheckEntry records an entry and returns a SessionChange when its session
// differs from the previous entry's. Entries without a session ID are ignored.
func (t *Tracker) CheckEntry(sessionID, entryType string, ts time.Time) *SessionChange {
	if sessionID == "" {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries++
	s, seen := t.sessions[sessionID]
	if !seen {
		s = domain.NewSessionSummary(sessionID)
		t.sessions[sessionID] = s
		t.order = append(t.order, sessionID)
	}
	s.Entries++
	if entryType != "" {
		s.EntryTypes[entryType]++
	}
	if !ts.IsZero() {
		if s.FirstSeen.IsZero() || ts.Before(s.FirstSeen) {
			s.FirstSeen = ts
		}
		if ts.After(s.LastSeen) {
			s.LastSeen = ts
		}
	}

	if sessionID == t.current {
		return nil
	}

	change := &SessionChange{From: t.current, To: sessionID, Resumed: seen}
	if t.current != "" {
		t.switches++
	}
	if seen {
		s.Resumed++
	}
	t.current = sessionID
	return change
}

// Sessions returns copies of all session summaries in first-seen order
func (t *Tracker) Sessions() []domain.SessionSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.SessionSummary, 0, len(t.order))
	for _, id := range t.order {
		s := *t.sessions[id]
		s.EntryTypes = maps.Clone(s.EntryTypes)
		out = append(out, s)
	}
	return out
}

// Stats returns tracker statistics
func (t *Tracker) Stats() (sessions, switches, entries int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.order), t.switches, t.entries
}
