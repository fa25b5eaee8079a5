package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SourceType identifies the metadata provider backend
type SourceType string

const (
	SourceTypeOMDb SourceType = "omdb"
)

// Storage drivers for the bookmark snapshot
const (
	StorageDriverBolt   = "bolt"
	StorageDriverSQLite = "sqlite"
	StorageDriverMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Opener   OpenerConfig   `mapstructure:"opener"`
}

// ProviderConfig holds metadata provider configuration
type ProviderConfig struct {
	Type          SourceType    `mapstructure:"type" validate:"required,oneof=omdb"`
	BaseURL       string        `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey        string        `mapstructure:"api_key" validate:"required"`
	Timeout       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	RatePerSecond float64       `mapstructure:"rate_per_second" validate:"gte=0"`
	Burst         int           `mapstructure:"burst" validate:"gte=0"`
}

// CatalogConfig holds aggregation settings
type CatalogConfig struct {
	Concurrency int           `mapstructure:"concurrency" validate:"gte=1,lte=64"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl" validate:"gte=0"` // 0 disables caching
}

// StorageConfig holds durable bookmark storage configuration
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=bolt sqlite memory"`
	Path   string `mapstructure:"path"` // File path; ignored by the memory driver
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
}

// OpenerConfig holds the command used to open trailer links
type OpenerConfig struct {
	Command string   `mapstructure:"command"` // Empty for system default
	Args    []string `mapstructure:"args"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderConfig{
			Type:          SourceTypeOMDb,
			BaseURL:       "https://www.omdbapi.com/",
			Timeout:       15 * time.Second,
			RatePerSecond: 10,
			Burst:         10,
		},
		Catalog: CatalogConfig{
			Concurrency: 8,
			CacheTTL:    5 * time.Minute,
		},
		Storage: StorageConfig{
			Driver: StorageDriverBolt,
			Path:   filepath.Join(defaultDataPath(), "bookmarks.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinedex.log"),
			Level: "INFO",
		},
		Opener: OpenerConfig{
			Args: []string{},
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinedex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinedex")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinedex")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinedex")
	}
}

// ConfigFile returns the path SaveConfig writes to
func ConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// LoadConfig loads configuration from .env, the config file and the environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom loads configuration searching the given directories for config.yaml
func LoadConfigFrom(paths ...string) (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	cfg := DefaultConfig()
	v := newViper(cfg)
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	// The provider's conventional variable name is honoured as a fallback
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("OMDB_API_KEY")
	}

	return cfg, nil
}

// newViper creates a viper instance with defaults registered for every key so
// that environment overrides (CINEDEX_PROVIDER_API_KEY, ...) apply on Unmarshal.
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CINEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range settings(cfg) {
		v.SetDefault(key, value)
	}
	return v
}

// settings flattens cfg into viper keys (snake_case)
func settings(cfg *Config) map[string]any {
	return map[string]any{
		"provider.type":            string(cfg.Provider.Type),
		"provider.base_url":        cfg.Provider.BaseURL,
		"provider.api_key":         cfg.Provider.APIKey,
		"provider.timeout":         cfg.Provider.Timeout.String(),
		"provider.rate_per_second": cfg.Provider.RatePerSecond,
		"provider.burst":           cfg.Provider.Burst,
		"catalog.concurrency":      cfg.Catalog.Concurrency,
		"catalog.cache_ttl":        cfg.Catalog.CacheTTL.String(),
		"storage.driver":           cfg.Storage.Driver,
		"storage.path":             cfg.Storage.Path,
		"logging.file":             cfg.Logging.File,
		"logging.level":            cfg.Logging.Level,
		"opener.command":           cfg.Opener.Command,
		"opener.args":              cfg.Opener.Args,
	}
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(cfg, ConfigFile())
}

// SaveConfigTo saves the configuration to path
func SaveConfigTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	for key, value := range settings(cfg) {
		v.Set(key, value)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration with struct tag rules
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Driver != StorageDriverMemory && c.Storage.Path == "" {
		return fmt.Errorf("invalid config: storage.path is required for driver %q", c.Storage.Driver)
	}
	return nil
}

// IsConfigured returns true if the provider API key is set
func (c *Config) IsConfigured() bool {
	return c.Provider.APIKey != ""
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
