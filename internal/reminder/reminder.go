// Package reminder nags the user to re-run log analysis once enough time has
// passed since the last run.
package reminder

import (
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	DefaultInterval = 7 * 24 * time.Hour
	DefaultSnooze   = 24 * time.Hour
)

// Reminder decides when analysis is due
type Reminder struct {
	store    *Store
	clock    clock.Clock
	interval time.Duration
	snooze   time.Duration
}

// Option configures a Reminder
type Option func(*Reminder)

// WithClock replaces the wall clock (tests use clock.NewMock)
func WithClock(c clock.Clock) Option {
	return func(r *Reminder) { r.clock = c }
}

// WithSnooze sets how long "remind me later" postpones the nag
func WithSnooze(d time.Duration) Option {
	return func(r *Reminder) {
		if d > 0 {
			r.snooze = d
		}
	}
}

// New creates a reminder that is due every interval
func New(store *Store, interval time.Duration, opts ...Option) *Reminder {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := &Reminder{
		store:    store,
		clock:    clock.New(),
		interval: interval,
		snooze:   DefaultSnooze,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Status is a snapshot for display
type Status struct {
	Due          bool          `json:"due"`
	Disabled     bool          `json:"disabled"`
	Interval     time.Duration `json:"interval"`
	LastRun      time.Time     `json:"last_run,omitzero"`
	SnoozedUntil time.Time     `json:"snoozed_until,omitzero"`
	NextDue      time.Time     `json:"next_due,omitzero"`
	StateFile    string        `json:"state_file"`
}

// Due reports whether the user should be reminded now
func (r *Reminder) Due() bool {
	return r.due(r.store.State(), r.clock.Now())
}

func (r *Reminder) due(st State, now time.Time) bool {
	if st.Disabled {
		return false
	}
	if now.Before(st.SnoozedUntil) {
		return false
	}
	if st.LastRun.IsZero() {
		return true
	}
	return now.Sub(st.LastRun) >= r.interval
}

// Elapsed returns the time since the last recorded run; false if never run
func (r *Reminder) Elapsed() (time.Duration, bool) {
	st := r.store.State()
	if st.LastRun.IsZero() {
		return 0, false
	}
	return r.clock.Now().Sub(st.LastRun), true
}

// Status returns the current reminder state
func (r *Reminder) Status() Status {
	st := r.store.State()
	now := r.clock.Now()
	s := Status{
		Due:          r.due(st, now),
		Disabled:     st.Disabled,
		Interval:     r.interval,
		LastRun:      st.LastRun,
		SnoozedUntil: st.SnoozedUntil,
		StateFile:    r.store.Path(),
	}
	if !st.Disabled {
		next := now
		if !st.LastRun.IsZero() {
			next = st.LastRun.Add(r.interval)
		}
		if st.SnoozedUntil.After(next) {
			next = st.SnoozedUntil
		}
		s.NextDue = next
	}
	return s
}

// RecordRun marks analysis as done now and clears any snooze
func (r *Reminder) RecordRun() error {
	now := r.clock.Now()
	return r.store.Update(func(st *State) {
		st.LastRun = now
		st.SnoozedUntil = time.Time{}
	})
}

// Snooze postpones the reminder by d (the configured snooze when d <= 0)
func (r *Reminder) Snooze(d time.Duration) error {
	if d <= 0 {
		d = r.snooze
	}
	until := r.clock.Now().Add(d)
	return r.store.Update(func(st *State) {
		st.SnoozedUntil = until
	})
}

// Disable stops all future reminders
func (r *Reminder) Disable() error {
	return r.store.Update(func(st *State) {
		st.Disabled = true
	})
}

// Reset forgets the last run, any snooze and the disabled flag
func (r *Reminder) Reset() error {
	return r.store.Update(func(st *State) {
		*st = State{Version: stateVersion}
	})
}

// Message is the one-line nag shown to the user
func (r *Reminder) Message() string {
	elapsed, ok := r.Elapsed()
	if !ok {
		return "Logs have never been analyzed."
	}
	return fmt.Sprintf("It has been %s since logs were last analyzed.", humanizeDuration(elapsed))
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d >= 48*time.Hour:
		return fmt.Sprintf("%d days", int(d/(24*time.Hour)))
	case d >= 2*time.Hour:
		return fmt.Sprintf("%d hours", int(d/time.Hour))
	case d >= 2*time.Minute:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	default:
		return "a moment"
	}
}
