package logger

import (
	"log/slog"

	"github.com/erlanggapratamaP/elang-mcp-server/pkg/logging"
)

// New returns the server's logger, configured from LOG_FORMAT and LOG_LEVEL.
// See pkg/logging for details.
func New() *slog.Logger {
	return logging.New()
}
