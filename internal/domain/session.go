package domain

import "time"

// SessionSummary describes one Claude session seen inside a log file
type SessionSummary struct {
	SessionID  string         `json:"session_id"`
	Entries    int            `json:"entries"`
	EntryTypes map[string]int `json:"entry_types,omitempty"`
	FirstSeen  time.Time      `json:"first_seen,omitzero"`
	LastSeen   time.Time      `json:"last_seen,omitzero"`
	// Resumed counts how often the session reappeared after another one
	Resumed int `json:"resumed,omitempty"`
}

// NewSessionSummary creates a summary for sessionID
func NewSessionSummary(sessionID string) *SessionSummary {
	return &SessionSummary{
		SessionID:  sessionID,
		EntryTypes: make(map[string]int),
	}
}
