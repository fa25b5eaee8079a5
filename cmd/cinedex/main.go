package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/samber/do/v2"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/di"
	"github.com/mmcdole/cinedex/internal/di/providers"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Options are the global flags plus one field per command
type Options struct {
	ConfigDir string `short:"C" long:"config-dir" env:"CINEDEX_CONFIG_DIR" description:"Directory containing config.yaml (default: ~/.config/cinedex and .)"`

	Browse    BrowseCommand    `command:"browse" description:"Browse movies, series and bookmarks interactively (default)"`
	Trending  TrendingCommand  `command:"trending" description:"List the trending titles"`
	Search    SearchCommand    `command:"search" description:"Search movies and series by title"`
	Show      ShowCommand      `command:"show" description:"Show the full record for one title"`
	Bookmarks BookmarksCommand `command:"bookmarks" alias:"bm" description:"Manage bookmarks"`
	Config    ConfigCommand    `command:"config" description:"Manage the configuration file"`
	Version   VersionCommand   `command:"version" description:"Print version"`
}

var opts Options

func main() {
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		// flags.Default prints parse and command errors itself
		os.Exit(1)
	}

	// No command given
	if parser.Active == nil {
		if err := opts.Browse.Execute(nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// app is the per-invocation container and its config
type app struct {
	cfg      *adapter.Config
	injector *do.RootScope
	log      *providers.LoggerHandle
}

// openApp loads and validates config and builds the lazy container
func openApp() (*app, error) {
	var (
		cfg *adapter.Config
		err error
	)
	if opts.ConfigDir != "" {
		cfg, err = adapter.LoadConfigFrom(opts.ConfigDir)
	} else {
		cfg, err = adapter.LoadConfig()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	injector := di.NewContainer(cfg)
	log, err := do.Invoke[*providers.LoggerHandle](injector)
	if err != nil {
		injector.Shutdown()
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	log.Debug("starting cinedex", "version", GetVersion())

	return &app{cfg: cfg, injector: injector, log: log}, nil
}

// requireAPIKey returns a setup hint when no provider key is configured
func (a *app) requireAPIKey() error {
	if a.cfg.IsConfigured() {
		return nil
	}
	return errors.New("no OMDb API key configured; run 'cinedex config init --api-key <key>' or set OMDB_API_KEY")
}

// close shuts the container down, reporting services that failed to stop
func (a *app) close() {
	report := a.injector.Shutdown()
	if report != nil && !report.Succeed {
		fmt.Fprintf(os.Stderr, "Warning: shutdown: %s\n", report.Error())
	}
}

// GetVersion returns the build version
func GetVersion() string {
	return cmp.Or(Version, "unknown")
}
