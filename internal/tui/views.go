package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/slice"
	"github.com/mmcdole/cinedex/internal/tui/styles"
)

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	var body string
	if m.State == StateDetail {
		body = m.renderDetail()
	} else {
		body = m.renderList(m.Height - ChromeHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderPrompt(),
		lipgloss.NewStyle().Height(m.Height-ChromeHeight).Render(body),
		m.renderFooter(),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := TabMovies; t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", t+1, t)
		if t == m.Tab {
			tabs = append(tabs, styles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderPrompt renders the active input, or the list's context line
func (m Model) renderPrompt() string {
	switch {
	case m.SearchInput.Focused():
		return m.SearchInput.View()
	case m.FilterInput.Focused() || m.FilterInput.Value() != "":
		return m.FilterInput.View()
	}

	switch m.Tab {
	case TabMovies, TabSeries:
		other := slice.Popular
		if m.Field == slice.Popular {
			other = slice.Trending
		}
		return styles.SubtitleStyle.Render(strings.ToUpper(m.Field.String())) +
			styles.DimStyle.Render("  v: "+other.String())
	case TabSearch:
		if q := m.deps.Search.Query(); q != "" {
			return styles.DimStyle.Render("results for ") + styles.AccentStyle.Render(q)
		}
		return styles.DimStyle.Render("press / to search")
	case TabBookmarks:
		return styles.DimStyle.Render(fmt.Sprintf("%d saved", m.deps.Bookmarks.Len()))
	}
	return ""
}

func (m Model) renderList(height int) string {
	items := m.VisibleItems()
	if len(items) == 0 {
		return m.renderEmpty()
	}

	// Keep the cursor in view
	cursor := m.Cursor()
	start := 0
	if height > 0 && cursor >= height {
		start = cursor - height + 1
	}
	end := len(items)
	if height > 0 && start+height < end {
		end = start + height
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(items[i], i == cursor))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderRow(item domain.CatalogItem, selected bool) string {
	mark := "  "
	if m.deps.Bookmarks.Contains(item.ExternalID, item.Type) {
		mark = styles.BookmarkChar + " "
	}

	gold := styles.MarqueeGold
	dim := styles.DimGray
	meta := item.Description()
	if r := item.FormattedRating(); r != "" {
		meta += "  " + r
	}
	if m.Tab == TabSearch || m.Tab == TabBookmarks {
		meta += "  " + item.Type.String()
	}

	titleWidth := m.Width - lipgloss.Width(meta) - 8
	parts := []styles.RowPart{
		{Text: mark, Foreground: &gold},
		{Text: styles.Truncate(item.Title, titleWidth)},
		{Text: "  " + meta, Foreground: &dim},
	}
	return styles.RenderListRow(parts, selected, m.Width)
}

func (m Model) renderEmpty() string {
	switch m.Tab {
	case TabMovies, TabSeries:
		t, _ := m.Tab.contentType()
		if s, ok := m.deps.Slices[t]; ok {
			state := s.Snapshot()
			if state.Loading {
				return styles.DimStyle.Render("  Loading " + strings.ToLower(t.Label()) + "...")
			}
			if state.Error != "" {
				return styles.ErrorStyle.Render("  " + state.Error)
			}
		}
	case TabSearch:
		if m.deps.Search.Loading() {
			return styles.DimStyle.Render("  Searching...")
		}
		if m.deps.Search.Query() != "" {
			return styles.DimStyle.Render("  No results")
		}
		return ""
	case TabBookmarks:
		if m.FilterInput.Value() == "" {
			return styles.DimStyle.Render("  No bookmarks yet. Press b on any title to save it.")
		}
	}
	return styles.DimStyle.Render("  Nothing matches")
}

func (m Model) renderDetail() string {
	item := m.Detail
	if item == nil {
		return ""
	}

	var b strings.Builder
	title := item.Title
	if m.deps.Bookmarks.Contains(item.ExternalID, item.Type) {
		title = styles.BookmarkMark + " " + title
	}
	b.WriteString(styles.TitleStyle.Render(title) + "\n")
	b.WriteString(styles.SubtitleStyle.Render(item.Description()) + "\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styles.LabelStyle.Render(label) + value + "\n")
	}
	field("Rating", item.FormattedRating())
	field("Runtime", item.Runtime)
	field("Released", item.Released)
	field("Genres", strings.Join(item.Genres, ", "))
	field("Director", item.Director)
	field("Cast", strings.Join(item.Actors, ", "))
	field("IMDb", item.ExternalID)

	if item.Plot != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(max(m.Width-6, 20)).Render(item.Plot) + "\n")
	} else if m.DetailLoading {
		b.WriteString("\n" + styles.DimStyle.Render("Loading details...") + "\n")
	}

	return styles.DetailStyle.Render(b.String())
}

// renderFooter renders the status line and the help hint
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.loading():
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "" && m.StatusIsErr:
		left = styles.ErrorStyle.Render(m.StatusMsg)
	case m.StatusMsg != "":
		left = styles.DimStyle.Render(m.StatusMsg)
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderHelp renders the help screen from the key map
func (m Model) renderHelp() string {
	columns := make([]string, 0, 2)
	for _, group := range m.Keys.HelpGroups() {
		var b strings.Builder
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("  %-8s", h.Key)))
			b.WriteString(styles.DimStyle.Render(" "+h.Desc) + "\n")
		}
		columns = append(columns, lipgloss.NewStyle().Width(32).Render(b.String()))
	}

	help := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("KEYS"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		"",
		styles.DimStyle.Render("Press any key to return..."),
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// RenderSpinner renders one frame of the loading spinner
func RenderSpinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return styles.SpinnerStyle.Render(frames[frame%len(frames)])
}
