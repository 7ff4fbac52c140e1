package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/reminder"
)

// TextWriter writes records as styled text for humans
type TextWriter struct {
	w io.Writer
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// WriteEntryWarning outputs one line warning
func (w *TextWriter) WriteEntryWarning(path string, lw domain.LineWarning) error {
	line := OutcomeIndicator(lw.Outcome) + " " +
		Styles.Path.Render(path) + Styles.Line.Render(":"+strconv.Itoa(lw.Line)) + " " +
		lw.Message + "\n"
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteFileReport outputs a one-line report for a file
func (w *TextWriter) WriteFileReport(r *domain.FileReport) error {
	line := StatusText(r.HasProblems()) + " " + Styles.Path.Render(r.Path) + " "
	line += Styles.Label.Render("valid=") + Styles.Valid.Render(strconv.Itoa(r.Valid))
	if r.Unsupported > 0 {
		line += " " + Styles.Label.Render("unsupported=") + Styles.Unsupported.Render(strconv.Itoa(r.Unsupported))
	}
	if r.Unknown > 0 {
		line += " " + Styles.Label.Render("unknown=") + Styles.Unknown.Render(strconv.Itoa(r.Unknown))
	}
	if r.Malformed > 0 {
		line += " " + Styles.Label.Render("malformed=") + Styles.Malformed.Render(strconv.Itoa(r.Malformed))
	}
	if n := len(r.Sessions); n > 0 {
		line += " " + Styles.Label.Render("sessions=") + Styles.Value.Render(strconv.Itoa(n))
	}
	if r.SessionSwitches > 0 {
		line += " " + Styles.Label.Render("switches=") + Styles.Value.Render(strconv.Itoa(r.SessionSwitches))
	}
	if r.Error != "" {
		line += " " + Styles.Danger.Render("error: "+r.Error)
	}
	_, err := io.WriteString(w.w, line+"\n")
	return err
}

// WriteSummary outputs a scan summary as a table
func (w *TextWriter) WriteSummary(s *domain.ScanSummary) error {
	if _, err := io.WriteString(w.w, "\n"+Styles.Header.Render("Summary")+"\n"); err != nil {
		return err
	}

	rows := [][]string{
		{"Files", strconv.Itoa(s.Files)},
		{"Lines", strconv.Itoa(s.Lines)},
		{"Valid", strconv.Itoa(s.Valid)},
		{"Unsupported version", strconv.Itoa(s.Unsupported)},
		{"Unknown format", strconv.Itoa(s.Unknown)},
		{"Malformed JSON", strconv.Itoa(s.Malformed)},
		{"Sessions", strconv.Itoa(s.Sessions)},
		{"Session switches", strconv.Itoa(s.SessionSwitches)},
		{"Valid rate", fmt.Sprintf("%.1f%%", s.ValidRate*100)},
	}
	if s.FailedFiles > 0 {
		rows = append(rows, []string{"Unreadable files", strconv.Itoa(s.FailedFiles)})
	}
	if !s.WindowStart.IsZero() {
		rows = append(rows, []string{"Time range", s.WindowStart.Format(time.RFC3339) + " to " + s.WindowEnd.Format(time.RFC3339)})
	}
	for _, k := range sortedKeys(s.EntryTypes) {
		rows = append(rows, []string{"Type " + k, strconv.Itoa(s.EntryTypes[k])})
	}
	for _, k := range sortedKeys(s.Versions) {
		rows = append(rows, []string{"Version " + k, strconv.Itoa(s.Versions[k])})
	}
	rows = append(rows, []string{"Supported versions", strings.Join(s.SupportedVersions, ", ")})

	if err := w.table([]string{"Metric", "Value"}, rows); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, "Status: "+StatusText(s.HasProblems)+"\n")
	return err
}

// WriteValidation outputs a single validation result
func (w *TextWriter) WriteValidation(result logschema.ValidationResult, kind logschema.Kind) error {
	var line string
	switch {
	case result.Valid:
		line = Styles.Success.Render("valid") + " " + Styles.Label.Render("version=") + Styles.Value.Render(result.Version.Detected)
	case result.Version != nil:
		line = Styles.Warning.Render("unsupported") + " " + Styles.Label.Render("version=") + Styles.Value.Render(result.Version.Detected)
	default:
		line = Styles.Danger.Render("unrecognized") + " " + Styles.Label.Render("kind=") + Styles.Value.Render(kind.String())
	}
	line += "\n"
	if result.Warning != "" {
		line += result.Warning + "\n"
	}
	_, err := io.WriteString(w.w, line)
	return err
}

// WriteVersions outputs supported versions and the rules of each descriptor
func (w *TextWriter) WriteVersions(supported []string, descriptors []logschema.Descriptor) error {
	rows := make([][]string, 0, len(descriptors))
	for _, d := range descriptors {
		status := "recognized"
		if logschema.IsSupported(d.Version) {
			status = "supported"
		}
		rows = append(rows, []string{
			d.Version.Detected,
			status,
			strings.Join(d.RequiredFields, ", "),
			d.MessageField + "{" + strings.Join(d.MessageFields, ", ") + "}",
			strings.Join(d.Types, "|"),
		})
	}
	if err := w.table([]string{"Version", "Status", "Required", "Message", "Types"}, rows); err != nil {
		return err
	}
	_, err := io.WriteString(w.w, "Supported: "+Styles.Value.Render(strings.Join(supported, ", "))+"\n")
	return err
}

// WriteReminder outputs reminder state and the nag message
func (w *TextWriter) WriteReminder(status reminder.Status, message, action string) error {
	if message != "" {
		style := Styles.Label
		if status.Due {
			style = Styles.Warning
		}
		if _, err := io.WriteString(w.w, style.Render(message)+"\n"); err != nil {
			return err
		}
	}
	if action != "" {
		if _, err := io.WriteString(w.w, Styles.Success.Render(action)+"\n"); err != nil {
			return err
		}
	}

	rows := [][]string{
		{"Due", strconv.FormatBool(status.Due)},
		{"Disabled", strconv.FormatBool(status.Disabled)},
		{"Interval", status.Interval.String()},
		{"Last run", formatTime(status.LastRun)},
		{"Snoozed until", formatTime(status.SnoozedUntil)},
		{"Next due", formatTime(status.NextDue)},
		{"State file", status.StateFile},
	}
	return w.table([]string{"Reminder", "Value"}, rows)
}

func (w *TextWriter) table(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w.w)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	table.Header(cells...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.RFC3339)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
