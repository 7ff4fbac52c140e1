package scan

import "go.uber.org/zap"

const (
	DefaultPattern      = "*.jsonl"
	DefaultConcurrency  = 4
	DefaultMaxLineBytes = 1024 * 1024
	DefaultMaxWarnings  = 50
)

// Options controls how log files are scanned
type Options struct {
	// Pattern selects files when walking directories (filepath.Match syntax)
	Pattern string
	// Concurrency bounds how many files are scanned at once
	Concurrency int
	// MaxLineBytes is the longest line accepted before the file is abandoned
	MaxLineBytes int
	// MaxWarnings caps the warnings kept per file (negative keeps none);
	// WarningCount still counts all
	MaxWarnings int
	Logger      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	if o.MaxLineBytes <= 0 {
		o.MaxLineBytes = DefaultMaxLineBytes
	}
	if o.MaxWarnings == 0 {
		o.MaxWarnings = DefaultMaxWarnings
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
