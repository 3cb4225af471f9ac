package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/koopa0/askdocs/internal/chat"
)

// defaultRenderWidth is the word-wrap width for rendered markdown when
// the terminal width is unknown.
const defaultRenderWidth = 80

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EA4335"))
	citationRule = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
)

// markdownRenderer converts assistant markdown into styled terminal
// output. Degrades gracefully: a nil renderer passes text through.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(width int) *markdownRenderer {
	if width <= 0 {
		width = defaultRenderWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Detect light/dark terminal
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return &markdownRenderer{renderer: r}
}

// Render converts markdown to styled output, or returns the input
// unchanged when rendering is unavailable.
func (m *markdownRenderer) Render(markdown string) string {
	if m == nil || m.renderer == nil {
		return markdown
	}
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimSuffix(rendered, "\n")
}

// roleLabel maps transcript roles to the labels shown on screen and in
// exports.
func roleLabel(role chat.Role) string {
	switch role {
	case chat.RoleUser:
		return "You"
	case chat.RoleAssistant:
		return "Assistant"
	default:
		return string(role)
	}
}

// printCitations renders the citation block for one assistant reply.
// Nothing is printed when the reply carried no grounding data.
func (s *Shell) printCitations(c chat.Citations) {
	if c.Empty() {
		return
	}

	rule := citationRule.Render(strings.Repeat("=", 70))
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, rule)
	fmt.Fprintln(s.out, "CITATIONS")
	fmt.Fprintln(s.out, rule)

	if c.SearchEntryPoint != "" {
		fmt.Fprintln(s.out, "\nSearch queries used:")
		fmt.Fprintf(s.out, "  %s\n", c.SearchEntryPoint)
	}

	if len(c.Sources) > 0 {
		fmt.Fprintf(s.out, "\nSources (%d):\n", len(c.Sources))
		for i, src := range c.Sources {
			title := src.Title
			if title == "" {
				title = "N/A"
			}
			fmt.Fprintf(s.out, "\n%d. %s\n", i+1, title)
			if src.URI != "" {
				fmt.Fprintf(s.out, "   URI: %s\n", src.URI)
			}
		}
	}

	if c.SupportCount > 0 {
		fmt.Fprintf(s.out, "\nGrounding supports: %d segment(s) grounded\n", c.SupportCount)
	}

	fmt.Fprintln(s.out, rule)
}
