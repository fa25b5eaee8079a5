package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"
	"golang.org/x/term"

	"github.com/mmcdole/cinedex/internal/adapter"
	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/catalog"
	"github.com/mmcdole/cinedex/internal/di"
	"github.com/mmcdole/cinedex/internal/di/providers"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/tui"
)

// TypeOption is the --type option shared by several commands
type TypeOption struct {
	Type string `short:"t" long:"type" choice:"movie" choice:"series" description:"Content type"`
}

// types returns the selected content type, or all of them when unset
func (f TypeOption) types() []domain.ContentType {
	if f.Type == "" {
		return domain.ContentTypes
	}
	t, _ := domain.ParseContentType(f.Type)
	return []domain.ContentType{t}
}

// requireType parses --type, failing when it was not given
func (f TypeOption) requireType() (domain.ContentType, error) {
	if f.Type == "" {
		return 0, errors.New("--type is required (movie or series)")
	}
	return domain.ParseContentType(f.Type)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// BrowseCommand runs the interactive browser
type BrowseCommand struct{}

func (c *BrowseCommand) Execute(_ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("browse needs an interactive terminal; try 'cinedex trending' instead")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAPIKey(); err != nil {
		return err
	}
	if err := di.Bootstrap(a.injector); err != nil {
		return err
	}

	slices := do.MustInvoke[*providers.Slices](a.injector)
	model := tui.NewModel(tui.Deps{
		Catalog:   do.MustInvoke[*providers.AggregatorHandle](a.injector).Aggregator,
		Slices:    slices.ByType,
		Search:    slices.Search,
		Bookmarks: do.MustInvoke[*bookmark.Store](a.injector),
		Opener:    do.MustInvoke[*adapter.Launcher](a.injector),
		Logger:    a.log.Logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	a.log.Info("starting TUI")
	if _, err := p.Run(); err != nil {
		a.log.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	a.log.Info("shutting down")
	return nil
}

// TrendingCommand prints the curated rows
type TrendingCommand struct {
	TypeOption
	Popular bool `short:"p" long:"popular" description:"Show the popular row instead of trending"`
}

func (c *TrendingCommand) Execute(_ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAPIKey(); err != nil {
		return err
	}
	agg, err := do.Invoke[*providers.AggregatorHandle](a.injector)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	for _, t := range c.types() {
		var items []domain.CatalogItem
		if c.Popular {
			items = agg.FetchPopular(ctx, t)
		} else {
			items = agg.FetchTrending(ctx, t)
		}
		fmt.Println(renderHeading(t.Label(), len(items)))
		fmt.Println(renderItems(items, false))
	}
	return nil
}

// SearchCommand searches by title
type SearchCommand struct {
	TypeOption
	Args struct {
		Query []string `positional-arg-name:"query" required:"yes"`
	} `positional-args:"yes"`
}

func (c *SearchCommand) Execute(_ []string) error {
	query := strings.TrimSpace(strings.Join(c.Args.Query, " "))
	if query == "" {
		return errors.New("search query is empty")
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAPIKey(); err != nil {
		return err
	}
	agg, err := do.Invoke[*providers.AggregatorHandle](a.injector)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var items []domain.CatalogItem
	if c.Type == "" {
		items = agg.SearchAcrossTypes(ctx, query)
	} else {
		t, _ := domain.ParseContentType(c.Type)
		if items, err = agg.Search(ctx, query, t); err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
	}

	if len(items) == 0 {
		fmt.Printf("No results for %q\n", query)
		return nil
	}
	fmt.Println(renderItems(items, c.Type == ""))
	return nil
}

// ShowCommand prints the full record for one title
type ShowCommand struct {
	TypeOption
	Trailer bool `long:"trailer" description:"Open a trailer search in the browser"`
	Args    struct {
		ID string `positional-arg-name:"imdb-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *ShowCommand) Execute(_ []string) error {
	t, err := c.requireType()
	if err != nil {
		return err
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.requireAPIKey(); err != nil {
		return err
	}
	agg, err := do.Invoke[*providers.AggregatorHandle](a.injector)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	item, err := agg.FetchDetails(ctx, c.Args.ID, t)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no %s found with id %s", t, c.Args.ID)
	}
	if err != nil {
		return err
	}

	marks, err := do.Invoke[*bookmark.Store](a.injector)
	if err != nil {
		return err
	}
	fmt.Println(renderDetail(item, marks.Contains(item.ExternalID, item.Type)))

	if c.Trailer {
		launcher := do.MustInvoke[*adapter.Launcher](a.injector)
		if err := launcher.Launch(catalog.TrailerSearchURL(item)); err != nil {
			return err
		}
	}
	return nil
}

// BookmarksCommand groups the bookmark subcommands
type BookmarksCommand struct {
	List   BookmarksListCommand   `command:"list" alias:"ls" description:"List bookmarks grouped by type"`
	Add    BookmarksAddCommand    `command:"add" description:"Bookmark a title by IMDb id"`
	Remove BookmarksRemoveCommand `command:"remove" alias:"rm" description:"Remove a bookmark"`
	Export BookmarksExportCommand `command:"export" description:"Write bookmarks as JSON"`
	Import BookmarksImportCommand `command:"import" description:"Replace bookmarks with a JSON export"`
}

// openBookmarks opens the app and its bookmark store. Bookmark commands never need an API key.
func openBookmarks() (*app, *bookmark.Store, error) {
	a, err := openApp()
	if err != nil {
		return nil, nil, err
	}
	marks, err := do.Invoke[*bookmark.Store](a.injector)
	if err != nil {
		a.close()
		return nil, nil, err
	}
	return a, marks, nil
}

// BookmarksListCommand lists bookmarks
type BookmarksListCommand struct {
	TypeOption
	Find string `short:"f" long:"find" description:"Only show bookmarks whose title fuzzy-matches"`
}

func (c *BookmarksListCommand) Execute(_ []string) error {
	a, marks, err := openBookmarks()
	if err != nil {
		return err
	}
	defer a.close()

	if c.Find != "" {
		found := marks.Find(c.Find)
		if len(found) == 0 {
			fmt.Printf("No bookmarks match %q\n", c.Find)
			return nil
		}
		fmt.Println(renderBookmarks(found))
		return nil
	}

	if marks.Len() == 0 {
		fmt.Println("No bookmarks yet")
		return nil
	}
	for _, t := range c.types() {
		group := marks.ByType(t)
		if len(group) == 0 {
			continue
		}
		fmt.Println(renderHeading(t.Label(), len(group)))
		fmt.Println(renderBookmarks(group))
	}
	return nil
}

// BookmarksAddCommand bookmarks a title after looking it up
type BookmarksAddCommand struct {
	TypeOption
	Args struct {
		ID string `positional-arg-name:"imdb-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *BookmarksAddCommand) Execute(_ []string) error {
	t, err := c.requireType()
	if err != nil {
		return err
	}

	a, marks, err := openBookmarks()
	if err != nil {
		return err
	}
	defer a.close()

	if marks.Contains(c.Args.ID, t) {
		fmt.Printf("%s is already bookmarked\n", c.Args.ID)
		return nil
	}

	if err := a.requireAPIKey(); err != nil {
		return err
	}
	agg, err := do.Invoke[*providers.AggregatorHandle](a.injector)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	item, err := agg.FetchDetails(ctx, c.Args.ID, t)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no %s found with id %s", t, c.Args.ID)
	}
	if err != nil {
		return err
	}

	if err := marks.Add(ctx, domain.NewBookmark(item)); err != nil {
		return err
	}
	fmt.Printf("Bookmarked %s (%s)\n", item.Title, item.Year)
	return nil
}

// BookmarksRemoveCommand removes a bookmark
type BookmarksRemoveCommand struct {
	TypeOption
	Args struct {
		ID string `positional-arg-name:"imdb-id" required:"yes"`
	} `positional-args:"yes"`
}

func (c *BookmarksRemoveCommand) Execute(_ []string) error {
	t, err := c.requireType()
	if err != nil {
		return err
	}

	a, marks, err := openBookmarks()
	if err != nil {
		return err
	}
	defer a.close()

	if !marks.Contains(c.Args.ID, t) {
		fmt.Printf("%s is not bookmarked\n", c.Args.ID)
		return nil
	}
	if err := marks.Remove(context.Background(), c.Args.ID, t); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", domain.BookmarkID(t, c.Args.ID))
	return nil
}

// BookmarksExportCommand writes the bookmark set as JSON
type BookmarksExportCommand struct {
	Output string `short:"o" long:"output" description:"File to write (default: stdout)"`
}

func (c *BookmarksExportCommand) Execute(_ []string) error {
	a, marks, err := openBookmarks()
	if err != nil {
		return err
	}
	defer a.close()

	if c.Output == "" || c.Output == "-" {
		return marks.Export(os.Stdout)
	}

	f, err := os.Create(c.Output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := marks.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %d bookmarks to %s\n", marks.Len(), c.Output)
	return nil
}

// BookmarksImportCommand replaces the bookmark set from a JSON export
type BookmarksImportCommand struct {
	Args struct {
		File string `positional-arg-name:"file" required:"yes" description:"JSON export, or - for stdin"`
	} `positional-args:"yes"`
}

func (c *BookmarksImportCommand) Execute(_ []string) error {
	var r io.Reader = os.Stdin
	if c.Args.File != "-" {
		f, err := os.Open(c.Args.File)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", c.Args.File, err)
		}
		defer f.Close()
		r = f
	}

	a, marks, err := openBookmarks()
	if err != nil {
		return err
	}
	defer a.close()

	n, err := marks.Import(context.Background(), r)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d bookmarks\n", n)
	return nil
}

// ConfigCommand groups the config subcommands
type ConfigCommand struct {
	Init ConfigInitCommand `command:"init" description:"Write a config file with defaults"`
	Path ConfigPathCommand `command:"path" description:"Print the config file location"`
}

// ConfigInitCommand writes a default config file
type ConfigInitCommand struct {
	APIKey string `long:"api-key" env:"OMDB_API_KEY" description:"OMDb API key to store"`
	Force  bool   `long:"force" description:"Overwrite an existing config file"`
}

func (c *ConfigInitCommand) Execute(_ []string) error {
	path := adapter.ConfigFile()
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}

	cfg := adapter.DefaultConfig()
	cfg.Provider.APIKey = c.APIKey
	if err := adapter.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Printf("Configuration saved to %s\n", path)
	if !cfg.IsConfigured() {
		fmt.Println("No API key set yet; add provider.api_key or export OMDB_API_KEY")
	}
	return nil
}

// ConfigPathCommand prints where the config file lives
type ConfigPathCommand struct{}

func (c *ConfigPathCommand) Execute(_ []string) error {
	fmt.Println(adapter.ConfigFile())
	return nil
}

// VersionCommand prints the build version
type VersionCommand struct{}

func (c *VersionCommand) Execute(_ []string) error {
	fmt.Printf("cinedex %s\n", GetVersion())
	return nil
}
