package mkzip

import (
	"log/slog"
	"time"
)

// config holds archive construction settings.
type config struct {
	logger   *slog.Logger
	modTime  time.Time
	compress Compressor
}

// Option configures an Archive.
type Option func(*config)

// WithLogger sets a logger for archive events. Entries log at Debug,
// finalization at Info. Without a logger, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithModTime fixes the timestamp stamped into every entry header,
// useful for reproducible archives. The default is the current time at
// New. Times before 1980 encode as zero; the DOS format cannot
// represent them.
func WithModTime(t time.Time) Option {
	return func(cfg *config) {
		cfg.modTime = t
	}
}

// WithCompressor substitutes the deflate implementation used for
// compressed entries. The compressor must produce raw deflate output
// whose inflation reproduces its input exactly.
func WithCompressor(c Compressor) Option {
	return func(cfg *config) {
		cfg.compress = c
	}
}
