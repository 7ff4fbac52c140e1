package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/vburojevic/clw/internal/config"
	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/output"
	"github.com/vburojevic/clw/internal/reminder"
	"github.com/vburojevic/clw/internal/scan"
	"go.uber.org/zap"
)

// analysisRequest describes one validate/scan run
type analysisRequest struct {
	Paths []string
	// Reports prints a file_report per file
	Reports bool
	// Record counts this run for the reminder
	Record bool
}

// runAnalysis scans paths, prints per-file output and the summary, and
// records the run. The returned error is already emitted.
func runAnalysis(globals *Globals, req analysisRequest) (*domain.ScanSummary, error) {
	maybeNoStyle(globals)
	log := globals.logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := scanOptions(globals)
	files, err := scan.ExpandPaths(req.Paths, opts)
	if err != nil {
		return nil, outputErrorCommon(globals, errorCode(err), err.Error(), hintForPath(err))
	}
	if len(files) == 0 {
		return nil, outputErrorCommon(globals, "NO_LOG_FILES",
			fmt.Sprintf("no files matching %q found", opts.Pattern),
			"Pass log files directly or check scan.pattern")
	}

	runID := uuid.New().String()
	emitInfo(globals, fmt.Sprintf("Scanning %d files", len(files)), runID, len(files))

	start := time.Now()
	reports, err := scan.ScanFiles(ctx, files, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, outputErrorCommon(globals, "CANCELED", "scan interrupted")
		}
		return nil, outputErrorCommon(globals, errorCode(err), err.Error(), hintForScan(err))
	}
	log.Debug("scan finished",
		zap.String("run_id", runID),
		zap.Int("files", len(reports)),
		zap.Duration("elapsed", time.Since(start)))

	summary := scan.Summarize(reports)
	summary.RunID = runID

	if err := writeAnalysis(globals, runID, reports, summary, req.Reports); err != nil {
		return summary, err
	}

	if req.Record {
		recordRun(globals)
	}
	return summary, nil
}

func writeAnalysis(globals *Globals, runID string, reports []*domain.FileReport, summary *domain.ScanSummary, withReports bool) error {
	if globals.Format == "ndjson" {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, r := range reports {
			if !globals.Quiet {
				for _, lw := range r.Warnings {
					if err := w.WriteEntryWarning(runID, r.Path, lw); err != nil {
						return err
					}
				}
			}
			if withReports {
				if err := w.WriteFileReport(r); err != nil {
					return err
				}
			}
		}
		return w.WriteSummary(summary)
	}

	w := output.NewTextWriter(globals.Stdout)
	for _, r := range reports {
		if !globals.Quiet {
			for _, lw := range r.Warnings {
				if err := w.WriteEntryWarning(r.Path, lw); err != nil {
					return err
				}
			}
		}
		if withReports {
			if err := w.WriteFileReport(r); err != nil {
				return err
			}
		}
	}
	return w.WriteSummary(summary)
}

func scanOptions(globals *Globals) scan.Options {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return scan.Options{
		Pattern:      cfg.Scan.Pattern,
		Concurrency:  cfg.Scan.Concurrency,
		MaxLineBytes: cfg.Scan.MaxLineBytes,
		MaxWarnings:  cfg.Scan.MaxWarnings,
		Logger:       globals.logger(),
	}
}

// newReminder builds the reminder from config. A corrupt state file is
// reported as a warning and treated as empty.
func newReminder(globals *Globals) (*reminder.Reminder, error) {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	interval, err := cfg.Reminder.IntervalDuration()
	if err != nil {
		return nil, err
	}
	snooze, err := cfg.Reminder.SnoozeDuration()
	if err != nil {
		return nil, err
	}

	path := config.ExpandHome(cfg.Reminder.StateFile)
	if path == "" {
		path = reminder.DefaultStatePath()
	}
	store := reminder.NewStore(path)
	if err := store.Load(); err != nil {
		globals.logger().Debug("ignoring reminder state", zap.String("path", path), zap.Error(err))
		emitWarning(globals, fmt.Sprintf("ignoring unreadable reminder state (%v); run `clw remind reset` to rewrite it", err))
	}
	return reminder.New(store, interval, reminder.WithSnooze(snooze)), nil
}

// recordRun marks a completed analysis. Failures are logged, not returned.
func recordRun(globals *Globals) {
	if globals.Config != nil && !globals.Config.Reminder.Enabled {
		return
	}
	r, err := newReminder(globals)
	if err == nil {
		err = r.RecordRun()
	}
	if err != nil {
		globals.logger().Warn("could not record analysis run", zap.Error(err))
	}
}

func projectsDir(globals *Globals) string {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}
	return config.ExpandHome(cfg.Scan.ProjectsDir)
}

// maybeNoStyle drops colors when stdout is not a terminal
func maybeNoStyle(globals *Globals) {
	if globals == nil || globals.Stdout == nil {
		return
	}
	if f, ok := globals.Stdout.(*os.File); ok && isTerminal(f) {
		return
	}
	output.DisableStyles()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
