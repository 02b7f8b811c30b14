package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the summary color scheme.
type Theme struct {
	Primary lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Foreground(t.Dim),
		Value: lipgloss.NewStyle(),
	}
}

// Row is one labeled line of a summary.
type Row struct {
	Label string
	Value string
}

// Summary is a titled block of label/value rows, the report printed after a
// generation run.
type Summary struct {
	Styles Styles
	Title  string
	Rows   []Row
}

// Render renders the summary to a string with aligned labels.
func (s Summary) Render() string {
	width := 0
	for _, r := range s.Rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	b.WriteString(s.Styles.Title.Render(s.Title))
	b.WriteByte('\n')
	for _, r := range s.Rows {
		label := r.Label + strings.Repeat(" ", width-len(r.Label))
		b.WriteString("  ")
		b.WriteString(s.Styles.Label.Render(label))
		b.WriteString("  ")
		b.WriteString(s.Styles.Value.Render(r.Value))
		b.WriteByte('\n')
	}
	return b.String()
}
