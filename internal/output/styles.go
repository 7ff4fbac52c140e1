package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/vburojevic/clw/internal/domain"
)

// Styles holds all lipgloss styles for text output
var Styles = defaultStyles()

type styleSet struct {
	// Outcome styles
	Valid       lipgloss.Style
	Unsupported lipgloss.Style
	Unknown     lipgloss.Style
	Malformed   lipgloss.Style

	// Component styles
	Path      lipgloss.Style
	Line      lipgloss.Style
	Timestamp lipgloss.Style

	// Summary styles
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
}

func defaultStyles() styleSet {
	return styleSet{
		Valid:       lipgloss.NewStyle().Foreground(lipgloss.Color("42")),              // Green
		Unsupported: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true), // Orange
		Unknown:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),             // Gray
		Malformed:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // Red

		Path:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")), // Blue
		Line:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),

		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(lipgloss.Color("239")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Value:   lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// DisableStyles replaces every style with a plain one (non-TTY output)
func DisableStyles() {
	plain := lipgloss.NewStyle()
	Styles = styleSet{
		Valid: plain, Unsupported: plain, Unknown: plain, Malformed: plain,
		Path: plain, Line: plain, Timestamp: plain,
		Header: plain, Label: plain, Value: plain,
		Success: plain, Warning: plain, Danger: plain,
	}
}

// OutcomeStyle returns the style for a line outcome
func OutcomeStyle(o domain.Outcome) lipgloss.Style {
	switch o {
	case domain.OutcomeValid:
		return Styles.Valid
	case domain.OutcomeUnsupported:
		return Styles.Unsupported
	case domain.OutcomeUnknown:
		return Styles.Unknown
	case domain.OutcomeMalformed:
		return Styles.Malformed
	default:
		return Styles.Unknown
	}
}

// OutcomeIndicator returns a styled three-letter outcome tag
func OutcomeIndicator(o domain.Outcome) string {
	style := OutcomeStyle(o)
	switch o {
	case domain.OutcomeValid:
		return style.Render("OK ")
	case domain.OutcomeUnsupported:
		return style.Render("VER")
	case domain.OutcomeUnknown:
		return style.Render("UNK")
	case domain.OutcomeMalformed:
		return style.Render("BAD")
	default:
		return style.Render("???")
	}
}

// StatusText returns styled status text
func StatusText(hasProblems bool) string {
	if hasProblems {
		return Styles.Warning.Render("ISSUES FOUND")
	}
	return Styles.Success.Render("OK")
}
