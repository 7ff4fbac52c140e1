package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vburojevic/clw/internal/domain"
	"github.com/vburojevic/clw/internal/logschema"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExpandPaths resolves files and directories into the list of files to scan.
// Directories are walked recursively and filtered by opts.Pattern; files named
// directly are always included. Order follows the input, then lexical order.
func ExpandPaths(paths []string, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	if _, err := filepath.Match(opts.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", opts.Pattern, err)
	}

	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				opts.Logger.Debug("skipping unreadable path", zap.String("path", path), zap.Error(err))
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if ok, _ := filepath.Match(opts.Pattern, d.Name()); ok {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}
	return files, nil
}

// ScanPaths expands paths and scans the files concurrently. Reports keep the
// order of ExpandPaths. Per-file read failures are recorded on the report;
// only cancellation or expansion errors are returned.
func ScanPaths(ctx context.Context, paths []string, opts Options) ([]*domain.FileReport, error) {
	opts = opts.withDefaults()
	files, err := ExpandPaths(paths, opts)
	if err != nil {
		return nil, err
	}
	return ScanFiles(ctx, files, opts)
}

// ScanFiles scans already expanded files concurrently. Reports keep the order
// of files.
func ScanFiles(ctx context.Context, files []string, opts Options) ([]*domain.FileReport, error) {
	opts = opts.withDefaults()
	reports := make([]*domain.FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, path := range files {
		g.Go(func() error {
			report, err := ScanFile(gctx, path, opts)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				opts.Logger.Warn("scan failed", zap.String("path", path), zap.Error(err))
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Summarize totals reports into one ScanSummary
func Summarize(reports []*domain.FileReport) *domain.ScanSummary {
	summary := domain.NewScanSummary()
	summary.SupportedVersions = logschema.SupportedVersions()

	for _, r := range reports {
		if r == nil {
			continue
		}
		summary.Files++
		if r.Error != "" {
			summary.FailedFiles++
		}
		summary.Lines += r.Lines
		summary.Valid += r.Valid
		summary.Unsupported += r.Unsupported
		summary.Unknown += r.Unknown
		summary.Malformed += r.Malformed
		summary.Sessions += len(r.Sessions)
		summary.SessionSwitches += r.SessionSwitches
		for v, n := range r.Versions {
			summary.Versions[v] += n
		}
		for t, n := range r.EntryTypes {
			summary.EntryTypes[t] += n
		}
		if !r.FirstTimestamp.IsZero() && (summary.WindowStart.IsZero() || r.FirstTimestamp.Before(summary.WindowStart)) {
			summary.WindowStart = r.FirstTimestamp
		}
		if r.LastTimestamp.After(summary.WindowEnd) {
			summary.WindowEnd = r.LastTimestamp
		}
		if r.HasProblems() {
			summary.HasProblems = true
		}
	}

	entries := summary.Valid + summary.Unsupported + summary.Unknown + summary.Malformed
	if entries > 0 {
		summary.ValidRate = float64(summary.Valid) / float64(entries)
	}
	return summary
}
