// Package scan reads Claude session logs line by line and validates each
// record against the known schema versions.
package scan

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/logschema"
	"github.com/vburojevic/clw/internal/session"
	"go.uber.org/zap"
)

const (
	// ctxCheckInterval is how many lines are read between cancellation checks
	ctxCheckInterval = 1024
	initialBufSize   = 64 * 1024
)

// LineTooLongError reports a line exceeding Options.MaxLineBytes
type LineTooLongError struct {
	Line  int
	Limit int
}

func (e *LineTooLongError) Error() string {
	return fmt.Sprintf("line %d exceeds %d bytes", e.Line, e.Limit)
}

// ScanFile opens path and scans it. The returned report is never nil; when
// the file cannot be read to the end the error is also recorded in it.
func ScanFile(ctx context.Context, path string, opts Options) (*domain.FileReport, error) {
	opts = opts.withDefaults()
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		report := domain.NewFileReport(path)
		report.Error = err.Error()
		return report, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			opts.Logger.Debug("close failed", zap.String("path", path), zap.Error(err))
		}
	}()

	report, err := ScanReader(ctx, path, f, opts)
	opts.Logger.Debug("scanned file",
		zap.String("path", path),
		zap.Int("lines", report.Lines),
		zap.Int("valid", report.Valid),
		zap.Int("skipped", report.Skipped()),
		zap.Duration("took", time.Since(start)),
	)
	return report, err
}

// ScanReader validates every line of r. name labels the report.
func ScanReader(ctx context.Context, name string, r io.Reader, opts Options) (*domain.FileReport, error) {
	opts = opts.withDefaults()
	report := domain.NewFileReport(name)
	tracker := session.NewTracker()

	// The buffer holds the line plus its newline
	maxBuf := opts.MaxLineBytes + 1
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialBufSize, maxBuf)), maxBuf)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				report.Error = err.Error()
				finishSessions(report, tracker)
				return report, err
			}
		}
		report.Lines = lineNum
		scanLine(report, tracker, lineNum, scanner.Bytes(), opts)
	}
	finishSessions(report, tracker)

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = &LineTooLongError{Line: lineNum + 1, Limit: opts.MaxLineBytes}
		}
		report.Error = err.Error()
		return report, fmt.Errorf("read %s: %w", name, err)
	}
	return report, ctx.Err()
}

func finishSessions(report *domain.FileReport, tracker *session.Tracker) {
	report.Sessions = tracker.Sessions()
	_, report.SessionSwitches, _ = tracker.Stats()
}

func scanLine(report *domain.FileReport, tracker *session.Tracker, lineNum int, line []byte, opts Options) {
	if len(bytes.TrimSpace(line)) == 0 {
		report.Blank++
		return
	}

	where := fmt.Sprintf("line %d", lineNum)
	if !gjson.ValidBytes(line) {
		report.Malformed++
		addWarning(report, opts, domain.LineWarning{
			Line:    lineNum,
			Outcome: domain.OutcomeMalformed,
			Message: fmt.Sprintf("Malformed JSON (%s). This entry will be skipped.", where),
		})
		return
	}

	result := logschema.ValidateJSON(line, where)
	switch {
	case result.Valid:
		report.Valid++
	case result.Version != nil:
		report.Unsupported++
		addWarning(report, opts, domain.LineWarning{
			Line:    lineNum,
			Outcome: domain.OutcomeUnsupported,
			Version: result.Version.Detected,
			Message: result.Warning,
		})
	default:
		report.Unknown++
		addWarning(report, opts, domain.LineWarning{
			Line:    lineNum,
			Outcome: domain.OutcomeUnknown,
			Message: result.Warning,
		})
		return
	}

	report.Versions[result.Version.Detected]++

	fields := gjson.GetManyBytes(line, "type", "sessionId", "timestamp")
	entryType := fields[0].String()
	if entryType != "" {
		report.EntryTypes[entryType]++
	}
	ts, err := time.Parse(time.RFC3339Nano, fields[2].String())
	if err != nil {
		ts = time.Time{}
	}
	report.ObserveTimestamp(ts)
	if change := tracker.CheckEntry(fields[1].String(), entryType, ts); change != nil && change.From != "" {
		opts.Logger.Debug("session switch",
			zap.String("path", report.Path),
			zap.Int("line", lineNum),
			zap.String("from", change.From),
			zap.String("to", change.To),
			zap.Bool("resumed", change.Resumed),
		)
	}
}

func addWarning(report *domain.FileReport, opts Options, w domain.LineWarning) {
	report.WarningCount++
	if len(report.Warnings) < opts.MaxWarnings {
		report.Warnings = append(report.Warnings, w)
	}
}
