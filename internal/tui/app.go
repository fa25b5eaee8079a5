package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/catalog"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateDetail
	StateHelp
)

// Tab identifies a top-level view
type Tab int

const (
	TabMovies Tab = iota
	TabSeries
	TabSearch
	TabBookmarks
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabMovies:
		return "Movies"
	case TabSeries:
		return "TV Series"
	case TabSearch:
		return "Search"
	case TabBookmarks:
		return "Bookmarks"
	default:
		return ""
	}
}

// contentType maps a browse tab to its content type
func (t Tab) contentType() (domain.ContentType, bool) {
	switch t {
	case TabMovies:
		return domain.ContentTypeMovie, true
	case TabSeries:
		return domain.ContentTypeSeries, true
	default:
		return 0, false
	}
}

// ChromeHeight is the tab bar, the prompt line and the footer
const ChromeHeight = 3

const statusTimeout = 3 * time.Second

// Deps are the services the browser drives
type Deps struct {
	Catalog   *catalog.Aggregator
	Slices    map[domain.ContentType]*slice.Slice
	Search    *slice.Search
	Bookmarks *bookmark.Store
	Opener    Opener
	Logger    *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Tab   Tab
	Field slice.Field

	deps Deps
	Keys KeyMap

	// Inputs
	FilterInput textinput.Model
	SearchInput textinput.Model

	// Per-tab cursor
	cursors [tabCount]int

	// Row loads in flight; shared across copies of the model
	inflight map[rowKey]int

	// Item on the detail page
	Detail        *domain.CatalogItem
	DetailLoading bool

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(deps Deps) Model {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"
	filter.CharLimit = 100

	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "title"
	search.CharLimit = 100

	return Model{
		inflight:    make(map[rowKey]int),
		State:       StateBrowsing,
		Tab:         TabMovies,
		Field:       slice.Trending,
		deps:        deps,
		Keys:        DefaultKeyMap(),
		FilterInput: filter,
		SearchInput: search,
	}
}

// rowKey identifies one catalog row
type rowKey struct {
	Type  domain.ContentType
	Field slice.Field
}

// Init starts the initial loads. Popular rows load on first view.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(domain.ContentTypeMovie, slice.Trending),
		m.loadCatalog(domain.ContentTypeSeries, slice.Trending),
		TickCmd(100*time.Millisecond),
	)
}

// loadCatalog marks the slice of t as loading and returns the fetch command for one row
func (m Model) loadCatalog(t domain.ContentType, field slice.Field) tea.Cmd {
	s, ok := m.deps.Slices[t]
	if !ok {
		return nil
	}
	s.BeginLoad()
	m.inflight[rowKey{t, field}]++
	return LoadCatalogCmd(m.deps.Catalog, t, field)
}

// finishLoad records a completed row load and reports whether t has none left in flight
func (m Model) finishLoad(t domain.ContentType, field slice.Field) bool {
	key := rowKey{t, field}
	if m.inflight[key] > 0 {
		m.inflight[key]--
	}
	for k, n := range m.inflight {
		if k.Type == t && n > 0 {
			return false
		}
	}
	return true
}

// ensureRow starts loading the visible row if it was never loaded
func (m Model) ensureRow() tea.Cmd {
	t, ok := m.Tab.contentType()
	if !ok || m.Field != slice.Popular {
		return nil
	}
	s, ok := m.deps.Slices[t]
	if !ok || s.Snapshot().Popular != nil || m.inflight[rowKey{t, slice.Popular}] > 0 {
		return nil
	}
	return m.loadCatalog(t, slice.Popular)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.FilterInput.Width = msg.Width - 4
		m.SearchInput.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(100 * time.Millisecond)

	case CatalogLoadedMsg:
		s, ok := m.deps.Slices[msg.Type]
		if !ok {
			return m, nil
		}
		if len(msg.Items) == 0 {
			s.LoadFailed("No " + strings.ToLower(msg.Type.Label()) + " could be loaded")
		} else {
			s.LoadSucceeded(msg.Items, msg.Field)
		}
		if m.finishLoad(msg.Type, msg.Field) {
			s.EndLoad()
		}
		m.clampCursor()
		return m, nil

	case SearchResultsMsg:
		if !m.deps.Search.Complete(msg.Ticket, msg.Results) {
			m.deps.Logger.Debug("dropping stale search results", "query", msg.Query)
			return m, nil
		}
		m.cursors[TabSearch] = 0
		return m.setStatus(fmt.Sprintf("%d results for %q", len(msg.Results), msg.Query), false)

	case DetailsLoadedMsg:
		m.DetailLoading = false
		if m.State != StateDetail || m.Detail == nil || m.Detail.Key() != msg.Item.Key() {
			return m, nil
		}
		item := msg.Item
		m.Detail = &item
		if s, ok := m.deps.Slices[item.Type]; ok {
			s.SetCurrent(&item)
		}
		return m, nil

	case BookmarkToggledMsg:
		m.clampCursor()
		if msg.Bookmarked {
			return m.setStatus("Bookmarked "+msg.Item.Title, false)
		}
		return m.setStatus("Removed bookmark for "+msg.Item.Title, false)

	case TrailerOpenedMsg:
		return m.setStatus("Opening trailer for "+msg.Item.Title, false)

	case ErrMsg:
		m.DetailLoading = false
		m.deps.Logger.Error("tui operation failed", "context", msg.Context, "error", msg.Err)
		text := msg.Error()
		if errors.Is(msg.Err, domain.ErrNotFound) {
			text = msg.Context + ": not found"
		}
		return m.setStatus(text, true)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return m, ClearStatusCmd(statusTimeout)
}

// handleKeyMsg routes key presses by state and focused input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.State == StateHelp:
		m.State = StateBrowsing
		return m, nil
	case m.SearchInput.Focused():
		return m.handleSearchInput(msg)
	case m.FilterInput.Focused():
		return m.handleFilterInput(msg)
	case m.State == StateDetail:
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.Keys.Home):
		m.cursors[m.Tab] = 0
	case key.Matches(msg, m.Keys.End):
		m.cursors[m.Tab] = len(m.VisibleItems()) - 1
		m.clampCursor()

	case key.Matches(msg, m.Keys.NextTab):
		cmd := m.switchTab((m.Tab + 1) % tabCount)
		return m, cmd
	case key.Matches(msg, m.Keys.PrevTab):
		cmd := m.switchTab((m.Tab + tabCount - 1) % tabCount)
		return m, cmd
	case len(msg.String()) == 1 && msg.String()[0] >= '1' && msg.String()[0] <= '4':
		cmd := m.switchTab(Tab(msg.String()[0] - '1'))
		return m, cmd

	case key.Matches(msg, m.Keys.Filter):
		var cmd tea.Cmd
		if m.Tab == TabSearch {
			cmd = m.SearchInput.Focus()
		} else {
			cmd = m.FilterInput.Focus()
		}
		return m, cmd

	case key.Matches(msg, m.Keys.Back):
		if m.FilterInput.Value() != "" {
			m.FilterInput.SetValue("")
			m.clampCursor()
		}

	case key.Matches(msg, m.Keys.Field):
		if m.Field == slice.Trending {
			m.Field = slice.Popular
		} else {
			m.Field = slice.Trending
		}
		m.clampCursor()
		cmd := m.ensureRow()
		return m, cmd

	case key.Matches(msg, m.Keys.Refresh):
		cmd := m.refresh()
		return m, cmd

	case key.Matches(msg, m.Keys.Enter):
		if item, ok := m.SelectedItem(); ok {
			return m.openDetail(item)
		}

	case key.Matches(msg, m.Keys.Bookmark):
		if item, ok := m.SelectedItem(); ok {
			return m, ToggleBookmarkCmd(m.deps.Bookmarks, item)
		}

	case key.Matches(msg, m.Keys.Trailer):
		if item, ok := m.SelectedItem(); ok {
			return m, OpenTrailerCmd(m.deps.Opener, item)
		}
	}

	return m, nil
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.SearchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.SearchInput.Blur()
		query := strings.TrimSpace(m.SearchInput.Value())
		if query == "" {
			m.deps.Search.Reset()
			m.cursors[TabSearch] = 0
			return m, nil
		}
		ticket := m.deps.Search.Begin(query)
		return m, SearchCmd(m.deps.Catalog, ticket, query)
	}

	var cmd tea.Cmd
	m.SearchInput, cmd = m.SearchInput.Update(msg)
	return m, cmd
}

func (m Model) handleFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.FilterInput.SetValue("")
		m.FilterInput.Blur()
		m.clampCursor()
		return m, nil
	case tea.KeyEnter:
		m.FilterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.FilterInput, cmd = m.FilterInput.Update(msg)
	m.cursors[m.Tab] = 0
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Back):
		m.closeDetail()
	case key.Matches(msg, m.Keys.Bookmark):
		return m, ToggleBookmarkCmd(m.deps.Bookmarks, *m.Detail)
	case key.Matches(msg, m.Keys.Trailer):
		return m, OpenTrailerCmd(m.deps.Opener, *m.Detail)
	case key.Matches(msg, m.Keys.Help):
		m.State = StateHelp
	}
	return m, nil
}

func (m Model) openDetail(item domain.CatalogItem) (tea.Model, tea.Cmd) {
	m.State = StateDetail
	m.Detail = &item
	if item.HasDetails() {
		if s, ok := m.deps.Slices[item.Type]; ok {
			s.SetCurrent(&item)
		}
		return m, nil
	}
	m.DetailLoading = true
	return m, LoadDetailsCmd(m.deps.Catalog, item)
}

func (m *Model) closeDetail() {
	if m.Detail != nil {
		if s, ok := m.deps.Slices[m.Detail.Type]; ok {
			s.SetCurrent(nil)
		}
	}
	m.State = StateBrowsing
	m.Detail = nil
	m.DetailLoading = false
}

// refresh reloads the data behind the current tab
func (m *Model) refresh() tea.Cmd {
	switch m.Tab {
	case TabMovies, TabSeries:
		t, _ := m.Tab.contentType()
		m.deps.Catalog.Invalidate()
		return m.loadCatalog(t, m.Field)
	case TabSearch:
		query := m.deps.Search.Query()
		if query == "" {
			return nil
		}
		m.deps.Catalog.Invalidate()
		return SearchCmd(m.deps.Catalog, m.deps.Search.Begin(query), query)
	}
	return nil
}

func (m *Model) switchTab(t Tab) tea.Cmd {
	if t < 0 || t >= tabCount {
		return nil
	}
	m.Tab = t
	m.FilterInput.SetValue("")
	m.clampCursor()
	return m.ensureRow()
}

func (m *Model) moveCursor(delta int) {
	m.cursors[m.Tab] += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.VisibleItems())
	c := m.cursors[m.Tab]
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	m.cursors[m.Tab] = c
}

// Cursor returns the selected row of the current tab
func (m Model) Cursor() int {
	return m.cursors[m.Tab]
}

// VisibleItems returns the current tab's list after filtering
func (m Model) VisibleItems() []domain.CatalogItem {
	query := m.FilterInput.Value()

	switch m.Tab {
	case TabMovies, TabSeries:
		t, _ := m.Tab.contentType()
		s, ok := m.deps.Slices[t]
		if !ok {
			return nil
		}
		state := s.Snapshot()
		items := state.Trending
		if m.Field == slice.Popular {
			items = state.Popular
		}
		return catalog.Filter(items, query)

	case TabSearch:
		return m.deps.Search.Results()

	case TabBookmarks:
		// Grouped by type unless a filter ranks them
		var marks []domain.Bookmark
		if query != "" {
			marks = m.deps.Bookmarks.Find(query)
		} else {
			for _, t := range domain.ContentTypes {
				marks = append(marks, m.deps.Bookmarks.ByType(t)...)
			}
		}
		items := make([]domain.CatalogItem, len(marks))
		for i, b := range marks {
			items[i] = b.CatalogItem()
		}
		return items
	}
	return nil
}

// SelectedItem returns the item under the cursor
func (m Model) SelectedItem() (domain.CatalogItem, bool) {
	items := m.VisibleItems()
	c := m.cursors[m.Tab]
	if c < 0 || c >= len(items) {
		return domain.CatalogItem{}, false
	}
	return items[c], true
}

// loading reports whether any load backing the current view is in flight
func (m Model) loading() bool {
	if m.DetailLoading {
		return true
	}
	switch m.Tab {
	case TabMovies, TabSeries:
		t, _ := m.Tab.contentType()
		if s, ok := m.deps.Slices[t]; ok {
			return s.Snapshot().Loading
		}
	case TabSearch:
		return m.deps.Search.Loading()
	}
	return false
}
