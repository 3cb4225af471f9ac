package gemini

import (
	"google.golang.org/genai"

	"github.com/koopa0/askdocs/internal/chat"
)

// grounding returns the first candidate's grounding metadata, or nil.
func grounding(resp *genai.GenerateContentResponse) *genai.GroundingMetadata {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	return resp.Candidates[0].GroundingMetadata
}

// extractCitations normalizes grounding metadata into citation data.
//
// Rules: no metadata yields the zero value; a rendered search entry
// point is surfaced verbatim; each grounding chunk contributes one
// (title, uri) source whether it is web-sourced or retrieved from a
// file-search store, and chunks with neither are skipped; supports are
// reported as a count, not expanded per segment.
func extractCitations(md *genai.GroundingMetadata) chat.Citations {
	if md == nil {
		return chat.Citations{}
	}

	var out chat.Citations
	if md.SearchEntryPoint != nil {
		out.SearchEntryPoint = md.SearchEntryPoint.RenderedContent
	}

	for _, chunk := range md.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil:
			out.Sources = append(out.Sources, chat.Source{
				Title: chunk.Web.Title,
				URI:   chunk.Web.URI,
			})
		case chunk.RetrievedContext != nil:
			out.Sources = append(out.Sources, chat.Source{
				Title: chunk.RetrievedContext.Title,
				URI:   chunk.RetrievedContext.URI,
			})
		}
	}

	out.SupportCount = len(md.GroundingSupports)
	return out
}
