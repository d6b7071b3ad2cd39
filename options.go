package bitalloc

import (
	"io"
	"log/slog"
)

// Option configures an Allocator.
type Option func(*config)

type config struct {
	logger *slog.Logger
	strict bool
}

func defaultConfig() config {
	return config{logger: discardLogger()}
}

// WithLogger sets the logger used for allocator events. Allocation and free
// events are logged at debug level, rejected requests at warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStrictFree makes the allocator remember every live allocation so that
// frees with an unknown offset or a mismatched size are rejected instead of
// clearing whatever bits they cover.
func WithStrictFree() Option {
	return func(c *config) {
		c.strict = true
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
