package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	MarqueeGold = lipgloss.Color("#F5C518")
	Ink         = lipgloss.Color("#111827")
	InkLight    = lipgloss.Color("#2D3748")
	DimGray     = lipgloss.Color("#6B7280")
	LightGray   = lipgloss.Color("#A0AEC0")
	White       = lipgloss.Color("#F7FAFC")
	Green       = lipgloss.Color("#48BB78")
	Red         = lipgloss.Color("#F56565")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(MarqueeGold)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Tab bar
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Ink).
			Background(MarqueeGold).
			Bold(true).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Padding(0, 1)
)

// Bookmark marker
const BookmarkChar = "★"

var BookmarkMark = lipgloss.NewStyle().Foreground(MarqueeGold).Render(BookmarkChar)

// Detail page
var (
	DetailStyle = lipgloss.NewStyle().
			Padding(1, 2)

	LabelStyle = lipgloss.NewStyle().
			Foreground(DimGray).
			Width(10)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(MarqueeGold).
			Padding(1, 2).
			Background(Ink)
)

// Spinner and prompt styles
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(MarqueeGold)

	PromptStyle = lipgloss.NewStyle().
			Foreground(MarqueeGold).
			Bold(true)
)

// Truncate shortens s to width cells, ending with "..." when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

// RowPart is one segment of a list row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a list row padded to width. Each part is styled on its
// own so the selection background survives ANSI resets between parts.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(White)
		default:
			style = style.Foreground(LightGray)
		}
		if selected {
			style = style.Background(InkLight)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	edge := lipgloss.NewStyle()
	if selected {
		edge = edge.Background(InkLight)
	}
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(edge.Render(strings.Repeat(" ", pad)))
	}

	margin := edge.Render(" ")
	return margin + b.String() + margin
}
