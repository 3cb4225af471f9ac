package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/koopa0/askdocs/internal/chat"
)

// exportTimeFormat produces the timestamp used in default export
// filenames, e.g. chat_export_20260826_153045.md.
const exportTimeFormat = "20060102_150405"

// ExportFilename resolves the export filename: an empty argument
// yields a timestamp-based default, and a .md suffix is appended
// when absent (never doubled).
func ExportFilename(arg string, now time.Time) string {
	name := strings.TrimSpace(arg)
	if name == "" {
		name = "chat_export_" + now.Format(exportTimeFormat)
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return name
}

// exportMeta is the header block of an exported transcript.
type exportMeta struct {
	Exported  time.Time
	ModelName string
	StoreName string // empty means no store was selected
}

// FormatTranscript renders the transcript as a markdown document:
// a metadata header, then one section per turn with a role heading,
// the turn's text, and the citation list for grounded assistant turns.
func FormatTranscript(entries []chat.Entry, meta exportMeta) string {
	var b strings.Builder

	b.WriteString("# Gemini Chat Conversation Export\n\n")
	fmt.Fprintf(&b, "**Exported:** %s\n\n", meta.Exported.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "**Model:** %s\n\n", meta.ModelName)
	storeName := meta.StoreName
	if storeName == "" {
		storeName = "none"
	}
	fmt.Fprintf(&b, "**File Search Store:** %s\n\n", storeName)
	b.WriteString("---\n\n")

	for _, entry := range entries {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", roleLabel(entry.Role), entry.Text)

		if entry.Role == chat.RoleAssistant && !entry.Citations.Empty() {
			writeCitationsMarkdown(&b, entry.Citations)
		}

		b.WriteString("---\n\n")
	}

	return b.String()
}

func writeCitationsMarkdown(b *strings.Builder, c chat.Citations) {
	b.WriteString("### Citations\n\n")

	if c.SearchEntryPoint != "" {
		fmt.Fprintf(b, "**Search queries used:** %s\n\n", c.SearchEntryPoint)
	}

	if len(c.Sources) > 0 {
		fmt.Fprintf(b, "**Sources (%d):**\n\n", len(c.Sources))
		for i, src := range c.Sources {
			title := src.Title
			if title == "" {
				title = "N/A"
			}
			fmt.Fprintf(b, "%d. **%s**\n", i+1, title)
			if src.URI != "" {
				fmt.Fprintf(b, "   - URI: %s\n", src.URI)
			}
		}
		b.WriteString("\n")
	}

	if c.SupportCount > 0 {
		fmt.Fprintf(b, "**Grounding supports:** %d segment(s) grounded\n\n", c.SupportCount)
	}
}

func (s *Shell) cmdExportChat(arg string) {
	history := s.chat.History()
	if len(history) == 0 {
		fmt.Fprintln(s.out, "\nNo chat history available to export.")
		return
	}

	now := s.now()
	filename := ExportFilename(arg, now)

	if err := os.MkdirAll(s.cfg.ExportDir, 0o750); err != nil {
		s.printError(fmt.Errorf("creating export directory: %w", err))
		return
	}

	meta := exportMeta{Exported: now, ModelName: s.cfg.ModelName}
	if s.current != nil {
		meta.StoreName = s.current.Name
	}

	path := filepath.Join(s.cfg.ExportDir, filename)
	if err := os.WriteFile(path, []byte(FormatTranscript(history, meta)), 0o600); err != nil {
		s.printError(fmt.Errorf("writing export file: %w", err))
		return
	}

	fmt.Fprintf(s.out, "\nChat exported successfully to: %s\n", path)
}
