package observability

import (
	"log/slog"

	"github.com/google/uuid"
)

// WithRunID tags every record logged through the returned logger with a
// fresh run id, and returns the id so it can be published with the report.
func WithRunID(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With("run_id", id), id
}
