package shell

import (
	"strings"
	"testing"
	"time"

	"github.com/koopa0/askdocs/internal/chat"
)

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 30, 45, 0, time.UTC)

	tests := []struct {
		name string
		arg  string
		want string
	}{
		{name: "empty uses timestamp", arg: "", want: "chat_export_20260826_153045.md"},
		{name: "whitespace uses timestamp", arg: "   ", want: "chat_export_20260826_153045.md"},
		{name: "appends md suffix", arg: "report", want: "report.md"},
		{name: "keeps existing suffix", arg: "report.md", want: "report.md"},
		{name: "trims surrounding space", arg: "  notes  ", want: "notes.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportFilename(tt.arg, now); got != tt.want {
				t.Errorf("ExportFilename(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}

func TestFormatTranscript(t *testing.T) {
	entries := []chat.Entry{
		{Role: chat.RoleUser, Text: "What is the capital of France?"},
		{
			Role: chat.RoleAssistant,
			Text: "The capital of France is Paris.",
			Citations: chat.Citations{
				SearchEntryPoint: "capital of France",
				Sources: []chat.Source{
					{Title: "geography.txt", URI: "gs://docs/geography.txt"},
					{Title: "", URI: "gs://docs/untitled.txt"},
				},
				SupportCount: 2,
			},
		},
	}
	meta := exportMeta{
		Exported:  time.Date(2026, 8, 26, 15, 30, 45, 0, time.UTC),
		ModelName: "gemini-2.5-flash",
		StoreName: "fileSearchStores/store-1",
	}

	doc := FormatTranscript(entries, meta)

	for _, want := range []string{
		"# Gemini Chat Conversation Export",
		"**Exported:** 2026-08-26 15:30:45",
		"**Model:** gemini-2.5-flash",
		"**File Search Store:** fileSearchStores/store-1",
		"## You\n\nWhat is the capital of France?",
		"## Assistant\n\nThe capital of France is Paris.",
		"### Citations",
		"**Search queries used:** capital of France",
		"**Sources (2):**",
		"1. **geography.txt**",
		"   - URI: gs://docs/geography.txt",
		"2. **N/A**",
		"**Grounding supports:** 2 segment(s) grounded",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("FormatTranscript() missing %q in:\n%s", want, doc)
		}
	}
}

func TestFormatTranscriptNoStore(t *testing.T) {
	entries := []chat.Entry{{Role: chat.RoleUser, Text: "hi"}}
	meta := exportMeta{Exported: time.Unix(1700000000, 0).UTC(), ModelName: "gemini-2.5-flash"}

	doc := FormatTranscript(entries, meta)

	if !strings.Contains(doc, "**File Search Store:** none") {
		t.Errorf("empty store name should render as none:\n%s", doc)
	}
}

func TestFormatTranscriptUngroundedReply(t *testing.T) {
	entries := []chat.Entry{
		{Role: chat.RoleUser, Text: "hi"},
		{Role: chat.RoleAssistant, Text: "hello"},
	}
	meta := exportMeta{Exported: time.Unix(1700000000, 0).UTC(), ModelName: "gemini-2.5-flash"}

	doc := FormatTranscript(entries, meta)

	if strings.Contains(doc, "### Citations") {
		t.Errorf("ungrounded reply should have no citation block:\n%s", doc)
	}
}
