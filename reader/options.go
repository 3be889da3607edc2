package reader

import (
	"log/slog"

	"github.com/arloliu/timsdf/internal/options"
)

type config struct {
	logger *slog.Logger
}

// Option configures Open behavior.
type Option = options.Option[*config]

// WithLogger attaches a structured logger to the reader.
//
// The reader logs the MALDI degrade path at WARN and per-block reads at
// DEBUG. By default all output is discarded; a library should be silent
// unless asked.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
