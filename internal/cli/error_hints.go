package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/vburojevic/clw/internal/reminder"
	"github.com/vburojevic/clw/internal/scan"
)

// errorCode classifies errors from path expansion and scanning
func errorCode(err error) string {
	var tooLong *scan.LineTooLongError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return "FILE_NOT_FOUND"
	case errors.Is(err, fs.ErrPermission):
		return "PERMISSION_DENIED"
	case errors.As(err, &tooLong):
		return "LINE_TOO_LONG"
	case errors.Is(err, reminder.ErrCorruptState):
		return "CORRUPT_STATE"
	case strings.Contains(err.Error(), "invalid pattern"):
		return "INVALID_PATTERN"
	default:
		return "SCAN_ERROR"
	}
}

func hintForPath(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, fs.ErrNotExist) {
		return "Check the path; Claude Code keeps session logs under ~/.claude/projects (see `clw config show`)"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "Check file permissions on the log directory"
	}
	if strings.Contains(err.Error(), "invalid pattern") {
		return "scan.pattern uses shell glob syntax, e.g. \"*.jsonl\""
	}
	return "Run `clw doctor` for diagnostics"
}

func hintForScan(err error) string {
	var tooLong *scan.LineTooLongError
	if errors.As(err, &tooLong) {
		return "Raise scan.max_line_bytes in the config file"
	}
	return hintForPath(err)
}

func hintForReminder(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, reminder.ErrCorruptState) {
		return "Run `clw remind reset` to start over"
	}
	return "Check that the reminder state file directory is writable (reminder.state_file)"
}
