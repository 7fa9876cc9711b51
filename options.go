package tagsync

import (
	"log/slog"
)

// Option configures a Codec.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	codec := tagsync.New(
//	    tagsync.WithLogger(slog.Default()),
//	    tagsync.WithBackup(".bak"),
//	)
type Option func(*options)

// options holds the configuration of a Codec.
type options struct {
	logger *slog.Logger
	save   saveOptions
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: slog.New(slog.DiscardHandler),
		save:   defaultSaveOptions(),
	}
}

// WithLogger sets the logger for debug records about recovered parse
// errors and info records about completed writes and copies.
//
// By default nothing is logged. A nil logger restores the default.
//
// Example:
//
//	codec := tagsync.New(tagsync.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}
