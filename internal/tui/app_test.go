package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinedex/internal/bookmark"
	"github.com/mmcdole/cinedex/internal/catalog"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
	"github.com/mmcdole/cinedex/internal/store"
)

type fakeProvider struct {
	titles  map[string]string
	fail    bool
	results map[domain.ContentType][]domain.CatalogItem

	mu      sync.Mutex
	fetches int
}

func (p *fakeProvider) fetchCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches
}

func (p *fakeProvider) FetchByID(_ context.Context, id string, t domain.ContentType) (domain.CatalogItem, error) {
	p.mu.Lock()
	p.fetches++
	p.mu.Unlock()
	if p.fail {
		return domain.CatalogItem{}, &domain.TransportError{Op: "fetch", Err: errors.New("offline")}
	}
	title, ok := p.titles[id]
	if !ok {
		title = "Title " + id
	}
	return domain.CatalogItem{
		ExternalID: id,
		Type:       t,
		Title:      title,
		Year:       "1995",
		Plot:       "Plot of " + title,
	}, nil
}

func (p *fakeProvider) Search(_ context.Context, _ string, t domain.ContentType) ([]domain.CatalogItem, error) {
	return p.results[t], nil
}

type fakeOpener struct {
	mu    sync.Mutex
	links []string
	err   error
}

func (o *fakeOpener) Launch(link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.links = append(o.links, link)
	return o.err
}

type testEnv struct {
	deps     Deps
	provider *fakeProvider
	opener   *fakeOpener
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	provider := &fakeProvider{
		titles:  map[string]string{"tt0068646": "The Godfather", "tt0113277": "Heat"},
		results: map[domain.ContentType][]domain.CatalogItem{},
	}
	agg, err := catalog.NewAggregator(provider, catalog.Options{}, logger)
	require.NoError(t, err)
	t.Cleanup(agg.Close)

	storage, err := store.NewBoltStore("", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })
	marks := bookmark.NewStore(storage, logger)
	marks.Initialize(context.Background())

	opener := &fakeOpener{}
	return &testEnv{
		deps: Deps{
			Catalog: agg,
			Slices: map[domain.ContentType]*slice.Slice{
				domain.ContentTypeMovie:  slice.New(domain.ContentTypeMovie),
				domain.ContentTypeSeries: slice.New(domain.ContentTypeSeries),
			},
			Search:    slice.NewSearch(),
			Bookmarks: marks,
			Opener:    opener,
			Logger:    logger,
		},
		provider: provider,
		opener:   opener,
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText feeds s to the model one key at a time
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, runes(string(r)))
	}
	return m
}

// loadedModel returns a sized model with the movie and series rows loaded
func loadedModel(t *testing.T, env *testEnv) Model {
	t.Helper()
	m := NewModel(env.deps)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	for _, ct := range domain.ContentTypes {
		msg := m.loadCatalog(ct, slice.Trending)()
		m, _ = update(t, m, msg)
	}
	return m
}

func TestModel_LoadsCuratedRows(t *testing.T) {
	env := newTestEnv(t)
	m := NewModel(env.deps)

	cmd := m.loadCatalog(domain.ContentTypeMovie, slice.Trending)
	require.NotNil(t, cmd)
	assert.True(t, env.deps.Slices[domain.ContentTypeMovie].Snapshot().Loading)

	m, _ = update(t, m, cmd())

	state := env.deps.Slices[domain.ContentTypeMovie].Snapshot()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Error)

	items := m.VisibleItems()
	ids := catalog.CuratedIDs(domain.ContentTypeMovie)
	require.Len(t, items, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, items[i].ExternalID)
	}
}

func TestModel_PopularRowLoadsOnDemand(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	movies := len(catalog.CuratedIDs(domain.ContentTypeMovie))
	series := len(catalog.CuratedIDs(domain.ContentTypeSeries))
	assert.Equal(t, movies+series, env.provider.fetchCount(), "startup fetches each curated id once")
	assert.Nil(t, env.deps.Slices[domain.ContentTypeMovie].Snapshot().Popular)

	m, cmd := update(t, m, runes("v"))
	require.NotNil(t, cmd)
	assert.True(t, env.deps.Slices[domain.ContentTypeMovie].Snapshot().Loading)

	// Toggling back and forth does not start a second load
	m, _ = update(t, m, runes("v"))
	m, again := update(t, m, runes("v"))
	assert.Nil(t, again)

	m, _ = update(t, m, cmd())
	state := env.deps.Slices[domain.ContentTypeMovie].Snapshot()
	assert.False(t, state.Loading)
	assert.Len(t, state.Popular, movies)
	assert.Len(t, m.VisibleItems(), movies)

	m, cmd = update(t, m, runes("2"))
	require.NotNil(t, cmd, "series popular row loads when first shown")
	m, _ = update(t, m, cmd())
	assert.Len(t, m.VisibleItems(), series)

	_, cmd = update(t, m, runes("1"))
	assert.Nil(t, cmd, "loaded rows are not fetched again")
}

func TestModel_ConcurrentRowLoads(t *testing.T) {
	env := newTestEnv(t)
	m := NewModel(env.deps)
	s := env.deps.Slices[domain.ContentTypeMovie]

	trending := m.loadCatalog(domain.ContentTypeMovie, slice.Trending)
	popular := m.loadCatalog(domain.ContentTypeMovie, slice.Popular)

	m, _ = update(t, m, trending())
	assert.True(t, s.Snapshot().Loading, "popular row still in flight")
	assert.NotEmpty(t, s.Snapshot().Trending)

	_, _ = update(t, m, popular())
	assert.False(t, s.Snapshot().Loading)
	assert.NotEmpty(t, s.Snapshot().Popular)
}

func TestModel_LoadFailureShowsError(t *testing.T) {
	env := newTestEnv(t)
	env.provider.fail = true
	m := NewModel(env.deps)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, m.loadCatalog(domain.ContentTypeSeries, slice.Trending)())

	state := env.deps.Slices[domain.ContentTypeSeries].Snapshot()
	assert.False(t, state.Loading)
	assert.Equal(t, "No tv series could be loaded", state.Error)

	m, _ = update(t, m, runes("2"))
	assert.Equal(t, TabSeries, m.Tab)
	assert.Contains(t, m.View(), "No tv series could be loaded")
}

func TestModel_TabNavigation(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabSeries, m.Tab)

	m, _ = update(t, m, runes("4"))
	assert.Equal(t, TabBookmarks, m.Tab)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabMovies, m.Tab, "tab wraps around")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabBookmarks, m.Tab)
}

func TestModel_CursorStaysInBounds(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	n := len(m.VisibleItems())

	m, _ = update(t, m, runes("k"))
	assert.Equal(t, 0, m.Cursor())

	m, _ = update(t, m, runes("G"))
	assert.Equal(t, n-1, m.Cursor())

	m, _ = update(t, m, runes("j"))
	assert.Equal(t, n-1, m.Cursor())

	m, _ = update(t, m, runes("g"))
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_Filter(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	m, _ = update(t, m, runes("/"))
	require.True(t, m.FilterInput.Focused())
	m = typeText(t, m, "godfather")

	items := m.VisibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "The Godfather", items[0].Title)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.FilterInput.Focused())
	assert.Len(t, m.VisibleItems(), len(catalog.CuratedIDs(domain.ContentTypeMovie)))
}

func TestModel_SearchFlow(t *testing.T) {
	env := newTestEnv(t)
	env.provider.results[domain.ContentTypeMovie] = []domain.CatalogItem{
		{ExternalID: "tt1160419", Type: domain.ContentTypeMovie, Title: "Dune"},
	}
	env.provider.results[domain.ContentTypeSeries] = []domain.CatalogItem{
		{ExternalID: "tt0142032", Type: domain.ContentTypeSeries, Title: "Dune"},
	}
	m := loadedModel(t, env)

	m, _ = update(t, m, runes("3"))
	m, _ = update(t, m, runes("/"))
	require.True(t, m.SearchInput.Focused())
	m = typeText(t, m, "dune")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, env.deps.Search.Loading())

	m, _ = update(t, m, cmd())
	assert.False(t, env.deps.Search.Loading())
	assert.Equal(t, "dune", env.deps.Search.Query())

	items := m.VisibleItems()
	require.Len(t, items, 2)
	assert.Equal(t, domain.ContentTypeMovie, items[0].Type)
	assert.Equal(t, domain.ContentTypeSeries, items[1].Type)
	assert.Contains(t, m.StatusMsg, `2 results for "dune"`)
}

func TestModel_StaleSearchIgnored(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	m, _ = update(t, m, runes("3"))

	first := env.deps.Search.Begin("alien")
	second := env.deps.Search.Begin("aliens")

	late := []domain.CatalogItem{{ExternalID: "tt0078748", Type: domain.ContentTypeMovie, Title: "Alien"}}
	fresh := []domain.CatalogItem{{ExternalID: "tt0090605", Type: domain.ContentTypeMovie, Title: "Aliens"}}

	m, _ = update(t, m, SearchResultsMsg{Ticket: second, Query: "aliens", Results: fresh})
	m, _ = update(t, m, SearchResultsMsg{Ticket: first, Query: "alien", Results: late})

	items := m.VisibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Aliens", items[0].Title)
}

func TestModel_EmptySearchResets(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	m, _ = update(t, m, runes("3"))

	ticket := env.deps.Search.Begin("heat")
	m, _ = update(t, m, SearchResultsMsg{Ticket: ticket, Query: "heat", Results: []domain.CatalogItem{{ExternalID: "tt1", Title: "Heat"}}})
	require.Len(t, m.VisibleItems(), 1)

	m, _ = update(t, m, runes("/"))
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Empty(t, m.VisibleItems())
	assert.Empty(t, env.deps.Search.Query())
}

func TestModel_ToggleBookmark(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	selected, ok := m.SelectedItem()
	require.True(t, ok)

	m, cmd := update(t, m, runes("b"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.True(t, env.deps.Bookmarks.Contains(selected.ExternalID, selected.Type))
	assert.Equal(t, "Bookmarked "+selected.Title, m.StatusMsg)

	m, _ = update(t, m, runes("4"))
	items := m.VisibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, selected.ExternalID, items[0].ExternalID)

	// Toggling from the bookmarks tab removes it
	m, cmd = update(t, m, runes("b"))
	m, _ = update(t, m, cmd())
	assert.False(t, env.deps.Bookmarks.Contains(selected.ExternalID, selected.Type))
	assert.Empty(t, m.VisibleItems())
	assert.Equal(t, 0, m.Cursor())
}

func TestModel_OpenTrailer(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	selected, _ := m.SelectedItem()

	m, cmd := update(t, m, runes("t"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, TrailerOpenedMsg{}, msg)
	m, _ = update(t, m, msg)

	require.Len(t, env.opener.links, 1)
	assert.Equal(t, catalog.TrailerSearchURL(selected), env.opener.links[0])
	assert.False(t, m.StatusIsErr)
}

func TestModel_OpenTrailerFailure(t *testing.T) {
	env := newTestEnv(t)
	env.opener.err = errors.New("no browser")
	m := loadedModel(t, env)

	m, cmd := update(t, m, runes("t"))
	m, _ = update(t, m, cmd())

	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "opening trailer: no browser", m.StatusMsg)
}

func TestModel_DetailPage(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	selected, _ := m.SelectedItem()
	movies := env.deps.Slices[domain.ContentTypeMovie]

	// Curated rows come from single-item fetches, so details are already present
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, StateDetail, m.State)
	require.NotNil(t, movies.Snapshot().Current)
	assert.Equal(t, selected.ExternalID, movies.Snapshot().Current.ExternalID)
	assert.Contains(t, m.View(), "Plot of "+selected.Title)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, StateBrowsing, m.State)
	assert.Nil(t, movies.Snapshot().Current)
}

func TestModel_DetailPageFetchesDetails(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	m, _ = update(t, m, runes("3"))

	ticket := env.deps.Search.Begin("heat")
	hit := domain.CatalogItem{ExternalID: "tt0113277", Type: domain.ContentTypeMovie, Title: "Heat"}
	m, _ = update(t, m, SearchResultsMsg{Ticket: ticket, Query: "heat", Results: []domain.CatalogItem{hit}})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.DetailLoading)

	m, _ = update(t, m, cmd())
	assert.False(t, m.DetailLoading)
	require.NotNil(t, m.Detail)
	assert.Equal(t, "Plot of Heat", m.Detail.Plot)

	current := env.deps.Slices[domain.ContentTypeMovie].Snapshot().Current
	require.NotNil(t, current)
	assert.Equal(t, "tt0113277", current.ExternalID)
}

func TestModel_LateDetailsIgnored(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	m, _ = update(t, m, DetailsLoadedMsg{Item: domain.CatalogItem{ExternalID: "tt1", Type: domain.ContentTypeMovie}})
	assert.Equal(t, StateBrowsing, m.State)
	assert.Nil(t, m.Detail)
	assert.Nil(t, env.deps.Slices[domain.ContentTypeMovie].Snapshot().Current)
}

func TestModel_NotFoundError(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	err := fmt.Errorf("%w: tt0", domain.ErrNotFound)
	m, cmd := update(t, m, ErrMsg{Err: err, Context: "loading Heat"})
	require.NotNil(t, cmd)
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, "loading Heat: not found", m.StatusMsg)

	m, _ = update(t, m, ClearStatusMsg{})
	assert.Empty(t, m.StatusMsg)
}

func TestModel_HelpAndQuit(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	m, _ = update(t, m, runes("?"))
	assert.Equal(t, StateHelp, m.State)
	assert.Contains(t, m.View(), "toggle bookmark")

	m, _ = update(t, m, runes("x"))
	assert.Equal(t, StateBrowsing, m.State)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ViewRendersTabsAndRows(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	view := m.View()
	assert.Contains(t, view, "1 Movies")
	assert.Contains(t, view, "4 Bookmarks")
	assert.Contains(t, view, "TRENDING")
	assert.Contains(t, view, "The Godfather")

	m, _ = update(t, m, runes("v"))
	assert.Equal(t, slice.Popular, m.Field)
	assert.Contains(t, m.View(), "POPULAR")
}

func TestModel_BookmarksGroupedByType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.deps.Bookmarks.Add(ctx, domain.Bookmark{ExternalID: "tt0903747", Type: domain.ContentTypeSeries, Title: "Breaking Bad"}))
	require.NoError(t, env.deps.Bookmarks.Add(ctx, domain.Bookmark{ExternalID: "tt0068646", Type: domain.ContentTypeMovie, Title: "The Godfather"}))

	m := loadedModel(t, env)
	m, _ = update(t, m, runes("4"))

	items := m.VisibleItems()
	require.Len(t, items, 2)
	assert.Equal(t, "The Godfather", items[0].Title)
	assert.Equal(t, "Breaking Bad", items[1].Title)

	m, _ = update(t, m, runes("/"))
	m = typeText(t, m, "breaking")
	items = m.VisibleItems()
	require.Len(t, items, 1)
	assert.Equal(t, "Breaking Bad", items[0].Title)
}
