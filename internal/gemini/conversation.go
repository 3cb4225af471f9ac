package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/koopa0/askdocs/internal/chat"
	"github.com/koopa0/askdocs/internal/config"
)

// Conversation is one chat session against the Gemini API. It carries
// the accumulated turn history and replays it on every request, so the
// retrieval tool configuration can change between sends — the SDK's
// own chat object fixes its config at creation time, which would make
// store selection changes wait for the next session.
type Conversation struct {
	client  *Client
	history []*genai.Content
}

// NewConversation implements chat.Opener.
func (c *Client) NewConversation() chat.Conversation {
	return &Conversation{client: c}
}

// Send implements chat.Conversation. On failure the history is left
// untouched so the session stays usable.
func (conv *Conversation) Send(ctx context.Context, text string, storeNames []string) (chat.Reply, error) {
	contents := make([]*genai.Content, 0, len(conv.history)+1)
	contents = append(contents, conv.history...)
	contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))

	cfg := buildGenerateConfig(conv.client.cfg, storeNames)
	resp, err := conv.client.api.Models.GenerateContent(ctx, conv.client.cfg.ModelName, contents, cfg)
	if err != nil {
		return chat.Reply{}, fmt.Errorf("generating content: %w", err)
	}

	replyText := resp.Text()
	conv.history = append(contents, genai.NewContentFromText(replyText, genai.RoleModel))

	conv.client.logger.Debug("message sent",
		"model", conv.client.cfg.ModelName,
		"stores", len(storeNames),
		"turns", len(conv.history))

	return chat.Reply{
		Text:      replyText,
		Citations: extractCitations(grounding(resp)),
	}, nil
}

// buildGenerateConfig assembles the per-request configuration.
//
// Thinking semantics: disabled sends an explicit zero budget; enabled
// with a non-negative configured budget sends that value; enabled with
// the default (-1) omits the parameter so the model decides. The file
// search tool is attached only when at least one store is active.
func buildGenerateConfig(cfg *config.Config, storeNames []string) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}

	if cfg.SystemInstruction != "" {
		out.SystemInstruction = genai.NewContentFromText(cfg.SystemInstruction, genai.RoleUser)
	}

	switch {
	case !cfg.ThinkingEnabled:
		out.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(int32(0))}
	case cfg.ThinkingBudget >= 0:
		out.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(cfg.ThinkingBudget)}
	}

	if len(storeNames) > 0 {
		out.Tools = []*genai.Tool{{
			FileSearch: &genai.FileSearch{
				FileSearchStoreNames: append([]string(nil), storeNames...),
			},
		}}
	}

	return out
}
