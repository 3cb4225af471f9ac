package gemini

import (
	"testing"

	"google.golang.org/genai"
)

func TestExtractCitationsNoMetadata(t *testing.T) {
	got := extractCitations(nil)
	if !got.Empty() {
		t.Errorf("extractCitations(nil) = %+v, want empty", got)
	}
}

func TestExtractCitationsNormalizesBothChunkKinds(t *testing.T) {
	md := &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{Web: &genai.GroundingChunkWeb{Title: "Example", URI: "https://example.com"}},
			{RetrievedContext: &genai.GroundingChunkRetrievedContext{Title: "notes.txt", URI: "fileSearchStores/s/documents/d"}},
		},
	}

	got := extractCitations(md)
	if len(got.Sources) != 2 {
		t.Fatalf("sources = %d, want 2", len(got.Sources))
	}
	if got.Sources[0].Title != "Example" || got.Sources[0].URI != "https://example.com" {
		t.Errorf("web source = %+v", got.Sources[0])
	}
	if got.Sources[1].Title != "notes.txt" || got.Sources[1].URI != "fileSearchStores/s/documents/d" {
		t.Errorf("retrieved-context source = %+v", got.Sources[1])
	}
}

func TestExtractCitationsSkipsChunksWithNoSource(t *testing.T) {
	md := &genai.GroundingMetadata{
		GroundingChunks: []*genai.GroundingChunk{
			{},
			nil,
			{Web: &genai.GroundingChunkWeb{Title: "Kept", URI: "https://kept"}},
		},
	}

	got := extractCitations(md)
	if len(got.Sources) != 1 || got.Sources[0].Title != "Kept" {
		t.Errorf("sources = %+v, want only the web chunk", got.Sources)
	}
}

func TestExtractCitationsSupportCountAndEntryPoint(t *testing.T) {
	md := &genai.GroundingMetadata{
		SearchEntryPoint: &genai.SearchEntryPoint{RenderedContent: "<div>queries</div>"},
		GroundingSupports: []*genai.GroundingSupport{
			{}, {}, {},
		},
	}

	got := extractCitations(md)
	if got.SearchEntryPoint != "<div>queries</div>" {
		t.Errorf("SearchEntryPoint = %q", got.SearchEntryPoint)
	}
	if got.SupportCount != 3 {
		t.Errorf("SupportCount = %d, want 3", got.SupportCount)
	}
}

func TestGroundingNilSafety(t *testing.T) {
	if grounding(nil) != nil {
		t.Error("grounding(nil) should be nil")
	}
	if grounding(&genai.GenerateContentResponse{}) != nil {
		t.Error("grounding with no candidates should be nil")
	}
}
