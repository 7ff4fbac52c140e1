package reminder

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Choice is the user's answer to the reminder menu
type Choice string

const (
	ChoiceNone    Choice = ""
	ChoiceRun     Choice = "run"
	ChoiceSnooze  Choice = "snooze"
	ChoiceDisable Choice = "disable"
)

// menuItem implements list.Item for the reminder menu
type menuItem struct {
	choice      Choice
	title       string
	description string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.description }
func (i menuItem) FilterValue() string { return i.title }

func menuItems(snooze string) []list.Item {
	return []list.Item{
		menuItem{choice: ChoiceRun, title: "Analyze logs now", description: "Scan session logs and reset the timer"},
		menuItem{choice: ChoiceSnooze, title: "Remind me later", description: "Ask again in " + snooze},
		menuItem{choice: ChoiceDisable, title: "Don't remind me again", description: "Re-enable with 'clw remind reset'"},
	}
}

// menuModel is the bubbletea model for the reminder menu
type menuModel struct {
	list     list.Model
	selected Choice
	quitting bool
}

func newMenuModel(title, snooze string) menuModel {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("214")).
		Padding(0, 0, 0, 1)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("241"))

	l := list.New(menuItems(snooze), delegate, 60, 14)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().
		Background(lipgloss.Color("214")).
		Foreground(lipgloss.Color("0")).
		Padding(0, 1)

	return menuModel{list: l}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(menuItem); ok {
				m.selected = item.choice
				m.quitting = true
				return m, tea.Quit
			}
		case "q", "esc", "ctrl+c":
			m.selected = ChoiceNone
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m menuModel) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Prompt shows the interactive menu and returns the user's choice.
// Callers must make sure stdin is a terminal.
func (r *Reminder) Prompt(opts ...tea.ProgramOption) (Choice, error) {
	m := newMenuModel(r.Message(), humanizeDuration(r.snooze))
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return ChoiceNone, fmt.Errorf("reminder menu: %w", err)
	}
	return final.(menuModel).selected, nil
}

// Apply records the effect of choice. It reports whether analysis should run
// now; the run itself is recorded by whoever performs it.
func (r *Reminder) Apply(choice Choice) (bool, error) {
	switch choice {
	case ChoiceRun:
		return true, nil
	case ChoiceSnooze:
		return false, r.Snooze(0)
	case ChoiceDisable:
		return false, r.Disable()
	case ChoiceNone:
		return false, nil
	default:
		return false, fmt.Errorf("unknown reminder choice %q", choice)
	}
}
