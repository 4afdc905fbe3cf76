package logging

import (
	"log/slog"

	"github.com/google/uuid"
)

// WithRunID tags every record of one sfollow invocation with a fresh run id.
func WithRunID(logger *slog.Logger) (*slog.Logger, string) {
	if logger == nil {
		logger = NewNop()
	}
	id := uuid.NewString()
	return logger.With(String(FieldRunID, id)), id
}
