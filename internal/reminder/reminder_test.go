package reminder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestReminder(t *testing.T) (*Reminder, *clock.Mock, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "reminder.json")
	mock := clock.NewMock()
	mock.Set(epoch)
	r := New(NewStore(path), 7*24*time.Hour, WithClock(mock), WithSnooze(6*time.Hour))
	return r, mock, path
}

func TestReminder_Due(t *testing.T) {
	t.Run("due when never run", func(t *testing.T) {
		r, _, _ := newTestReminder(t)
		assert.True(t, r.Due())
		assert.Equal(t, "Logs have never been analyzed.", r.Message())
	})

	t.Run("not due right after a run", func(t *testing.T) {
		r, mock, _ := newTestReminder(t)
		require.NoError(t, r.RecordRun())

		assert.False(t, r.Due())
		mock.Add(7*24*time.Hour - time.Second)
		assert.False(t, r.Due())
		mock.Add(time.Second)
		assert.True(t, r.Due())
	})

	t.Run("snooze postpones", func(t *testing.T) {
		r, mock, _ := newTestReminder(t)
		require.NoError(t, r.Snooze(0))

		assert.False(t, r.Due())
		mock.Add(6 * time.Hour)
		assert.True(t, r.Due())
	})

	t.Run("disabled is never due", func(t *testing.T) {
		r, mock, _ := newTestReminder(t)
		require.NoError(t, r.Disable())

		mock.Add(365 * 24 * time.Hour)
		assert.False(t, r.Due())
	})

	t.Run("reset clears everything", func(t *testing.T) {
		r, _, _ := newTestReminder(t)
		require.NoError(t, r.RecordRun())
		require.NoError(t, r.Disable())
		require.NoError(t, r.Reset())

		assert.True(t, r.Due())
		_, ok := r.Elapsed()
		assert.False(t, ok)
	})
}

func TestReminder_Message(t *testing.T) {
	r, mock, _ := newTestReminder(t)
	require.NoError(t, r.RecordRun())

	mock.Add(8 * 24 * time.Hour)
	assert.Equal(t, "It has been 8 days since logs were last analyzed.", r.Message())

	elapsed, ok := r.Elapsed()
	require.True(t, ok)
	assert.Equal(t, 8*24*time.Hour, elapsed)
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "a moment", humanizeDuration(30*time.Second))
	assert.Equal(t, "5 minutes", humanizeDuration(5*time.Minute))
	assert.Equal(t, "3 hours", humanizeDuration(3*time.Hour+20*time.Minute))
	assert.Equal(t, "2 days", humanizeDuration(50*time.Hour))
}

func TestReminder_Status(t *testing.T) {
	r, mock, path := newTestReminder(t)

	st := r.Status()
	assert.True(t, st.Due)
	assert.Equal(t, epoch, st.NextDue)
	assert.Equal(t, path, st.StateFile)

	require.NoError(t, r.RecordRun())
	mock.Add(time.Hour)
	st = r.Status()
	assert.False(t, st.Due)
	assert.Equal(t, epoch, st.LastRun)
	assert.Equal(t, epoch.Add(7*24*time.Hour), st.NextDue)

	require.NoError(t, r.Disable())
	st = r.Status()
	assert.True(t, st.Disabled)
	assert.True(t, st.NextDue.IsZero())
}

func TestReminder_StatePersists(t *testing.T) {
	r, mock, path := newTestReminder(t)
	require.NoError(t, r.RecordRun())

	reloaded := New(NewStore(path), 7*24*time.Hour, WithClock(mock))
	assert.False(t, reloaded.Due())
	assert.Equal(t, epoch, reloaded.Status().LastRun)
}

func TestStore_Load(t *testing.T) {
	t.Run("missing file is fresh state", func(t *testing.T) {
		s := NewStore(filepath.Join(t.TempDir(), "none.json"))
		require.NoError(t, s.Load())
		assert.Equal(t, State{Version: stateVersion}, s.State())
	})

	t.Run("corrupt file is reported", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reminder.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		s := NewStore(path)
		assert.Equal(t, State{Version: stateVersion}, s.State())

		err := s.Load()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCorruptState))
	})

	t.Run("save creates directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a", "b", "reminder.json")
		s := NewStore(path)
		require.NoError(t, s.Update(func(st *State) { st.Disabled = true }))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"disabled": true`)
	})

	t.Run("failed save keeps previous state", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

		s := NewStore(filepath.Join(blocker, "reminder.json"))
		err := s.Update(func(st *State) { st.Disabled = true })
		require.Error(t, err)
		assert.False(t, s.State().Disabled)
	})
}

func TestReminder_Apply(t *testing.T) {
	tests := []struct {
		choice  Choice
		runNow  bool
		due     bool
		wantErr bool
	}{
		{ChoiceRun, true, true, false},
		{ChoiceSnooze, false, false, false},
		{ChoiceDisable, false, false, false},
		{ChoiceNone, false, true, false},
		{Choice("later"), false, true, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.choice), func(t *testing.T) {
			r, _, _ := newTestReminder(t)

			runNow, err := r.Apply(tt.choice)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.runNow, runNow)
			assert.Equal(t, tt.due, r.Due())
		})
	}
}

func TestMenuModel(t *testing.T) {
	t.Run("enter selects the highlighted choice", func(t *testing.T) {
		m := newMenuModel("title", "6 hours")

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		require.NotNil(t, cmd)
		assert.Equal(t, ChoiceRun, next.(menuModel).selected)
		assert.Empty(t, next.(menuModel).View())
	})

	t.Run("down then enter picks snooze", func(t *testing.T) {
		var m tea.Model = newMenuModel("title", "6 hours")

		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, ChoiceSnooze, m.(menuModel).selected)
	})

	t.Run("escape cancels", func(t *testing.T) {
		m := newMenuModel("title", "6 hours")

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, ChoiceNone, next.(menuModel).selected)
		assert.True(t, next.(menuModel).quitting)
	})

	t.Run("renders choices", func(t *testing.T) {
		m := newMenuModel("Logs have never been analyzed.", "6 hours")
		view := m.View()
		assert.Contains(t, view, "Analyze logs now")
		assert.Contains(t, view, "Remind me later")
	})
}
