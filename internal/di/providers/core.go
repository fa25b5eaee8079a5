package providers

import (
	"io"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/mmcdole/cinedex/internal/adapter"
)

// LoggerHandle wraps the logger with its log file for lifecycle management.
type LoggerHandle struct {
	*slog.Logger
	closer io.Closer
}

// Shutdown implements do.Shutdownable.
func (h *LoggerHandle) Shutdown() error {
	return h.closer.Close()
}

// ProvideLogger provides the application logger and installs it as the slog default.
func ProvideLogger(i do.Injector) (*LoggerHandle, error) {
	cfg := do.MustInvoke[*adapter.Config](i)

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	return &LoggerHandle{Logger: logger, closer: closer}, nil
}

// ProvideLauncher provides the trailer link opener.
func ProvideLauncher(i do.Injector) (*adapter.Launcher, error) {
	cfg := do.MustInvoke[*adapter.Config](i)
	log := do.MustInvoke[*LoggerHandle](i)

	return adapter.NewLauncher(cfg.Opener, log.Logger), nil
}
