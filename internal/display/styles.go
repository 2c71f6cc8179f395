package display

import "github.com/charmbracelet/lipgloss"

// Styles used by the renderer, bound to one lipgloss.Renderer so that the color
// profile follows the output it writes to.
type Styles struct {
	Header     lipgloss.Style
	Dealer     lipgloss.Style
	Player     lipgloss.Style
	Active     lipgloss.Style
	Muted      lipgloss.Style
	RedCard    lipgloss.Style
	BlackCard  lipgloss.Style
	HiddenCard lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Prompt     lipgloss.Style
}

// NewStyles builds the palette for r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Dealer: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Active: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Muted: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		HiddenCard: r.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Bold(true),
		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
	}
}
