package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/cinedex/internal/domain"
	"github.com/mmcdole/cinedex/internal/tui/styles"
)

const maxTitleWidth = 48

var (
	headerCell = lipgloss.NewStyle().Foreground(styles.MarqueeGold).Bold(true).Padding(0, 1)
	bodyCell   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.DimStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return bodyCell
		})
}

// renderHeading renders a section title such as "Movies (18)"
func renderHeading(label string, count int) string {
	return styles.TitleStyle.Render(label) + styles.DimStyle.Render(fmt.Sprintf(" (%d)", count))
}

// renderItems renders catalog items as a table, optionally with a type column
func renderItems(items []domain.CatalogItem, withType bool) string {
	headers := []string{"IMDb", "Title", "Year", "Rating"}
	if withType {
		headers = append(headers, "Type")
	}

	t := newTable(headers...)
	for _, item := range items {
		row := []string{
			item.ExternalID,
			styles.Truncate(item.Title, maxTitleWidth),
			item.Year,
			item.FormattedRating(),
		}
		if withType {
			row = append(row, item.Type.String())
		}
		t.Row(row...)
	}
	return t.Render()
}

// renderBookmarks renders bookmarks with the date they were added
func renderBookmarks(marks []domain.Bookmark) string {
	t := newTable("ID", "Title", "Year", "Added")
	for _, b := range marks {
		added := ""
		if !b.AddedAt.IsZero() {
			added = b.AddedAt.Local().Format("2006-01-02")
		}
		t.Row(b.ID, styles.Truncate(b.Title, maxTitleWidth), b.Year, added)
	}
	return t.Render()
}

// renderDetail renders the full record of one item
func renderDetail(item domain.CatalogItem, bookmarked bool) string {
	var b strings.Builder

	title := item.Title
	if bookmarked {
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
	field("IMDb", item.ExternalID)
	field("Type", item.Type.String())
	field("Rating", item.FormattedRating())
	field("Runtime", item.Runtime)
	field("Released", item.Released)
	field("Genres", strings.Join(item.Genres, ", "))
	field("Director", item.Director)
	field("Cast", strings.Join(item.Actors, ", "))
	field("Poster", item.PosterURL)

	if item.Plot != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Width(80).Render(item.Plot))
	}
	return b.String()
}
