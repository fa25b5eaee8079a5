package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/adapter/source/omdb"
	"github.com/mmcdole/cinedex/internal/domain"
)

// SourceConfig contains the configuration needed to create a domain.Provider
type SourceConfig struct {
	Type          adapter.SourceType
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// NewClient creates a new domain.Provider based on the source type.
// This factory function abstracts away the specific backend implementation.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider API key is required")
	}

	switch cfg.Type {
	case adapter.SourceTypeOMDb, "":
		return omdb.NewClient(cfg.BaseURL, cfg.APIKey, omdb.Options{
			Timeout:       cfg.Timeout,
			RatePerSecond: cfg.RatePerSecond,
			Burst:         cfg.Burst,
		}, logger), nil

	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Type)
	}
}

// NewClientFromConfig creates a domain.Provider from the application config
func NewClientFromConfig(cfg *adapter.Config, logger *slog.Logger) (domain.Provider, error) {
	return NewClient(&SourceConfig{
		Type:          cfg.Provider.Type,
		BaseURL:       cfg.Provider.BaseURL,
		APIKey:        cfg.Provider.APIKey,
		Timeout:       cfg.Provider.Timeout,
		RatePerSecond: cfg.Provider.RatePerSecond,
		Burst:         cfg.Provider.Burst,
	}, logger)
}
