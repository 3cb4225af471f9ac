// Package chat owns the conversational session against the Gemini API.
//
// The Client keeps its own append-only transcript as the single source
// of truth for history and export; it never reads history back from the
// remote session object. The remote surface is the consumer-defined
// Conversation interface, implemented by internal/gemini in production
// and by fakes in tests.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for chat operations.
var (
	// ErrNoSession indicates no chat session has been started.
	ErrNoSession = errors.New("no active chat session")

	// ErrEmptyMessage indicates the outgoing message has no content.
	ErrEmptyMessage = errors.New("empty message")
)

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is one normalized citation source: a (title, uri) pair derived
// from either a web or a retrieved-context grounding chunk.
type Source struct {
	Title string
	URI   string
}

// Citations carries the grounding data attached to one model reply.
// The zero value means "no grounding metadata present".
type Citations struct {
	// SearchEntryPoint is the rendered search-entry-point content,
	// surfaced verbatim when present.
	SearchEntryPoint string

	// Sources lists the normalized grounding chunk sources.
	Sources []Source

	// SupportCount is the number of segment-level grounding links.
	SupportCount int
}

// Empty reports whether the reply carried no grounding data at all.
func (c Citations) Empty() bool {
	return c.SearchEntryPoint == "" && len(c.Sources) == 0 && c.SupportCount == 0
}

// Reply is one model response: the text plus its citation data.
type Reply struct {
	Text      string
	Citations Citations
}

// Conversation is the remote chat surface consumed by Client.
//
// Send delivers one user message. The store names to ground on travel
// with every send so that store selection changes take effect on the
// next message, not the next session.
type Conversation interface {
	Send(ctx context.Context, text string, storeNames []string) (Reply, error)
}

// Opener creates fresh remote conversations. Each Start/Reset of the
// Client opens a new one, discarding any previous remote state.
type Opener interface {
	NewConversation() Conversation
}

// Client binds a conversation, the active store selection and the local
// transcript together. Not safe for concurrent use; the shell runs
// it from a single goroutine.
type Client struct {
	opener Opener
	logger *slog.Logger

	conv       Conversation
	storeNames []string
	transcript *Transcript
}

// NewClient creates a chat client. No session is active until Start.
func NewClient(opener Opener, logger *slog.Logger) (*Client, error) {
	if opener == nil {
		return nil, errors.New("opener is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		opener:     opener,
		logger:     logger,
		transcript: NewTranscript(),
	}, nil
}

// SetStores replaces the list of stores consulted by future messages.
// Takes effect on the next Send; an active session is kept.
func (c *Client) SetStores(names []string) {
	c.storeNames = append([]string(nil), names...)
}

// Stores returns the currently active store names.
func (c *Client) Stores() []string {
	return append([]string(nil), c.storeNames...)
}

// Active reports whether a chat session has been started.
func (c *Client) Active() bool {
	return c.conv != nil
}

// Start discards any previous session and opens a new, empty one bound
// to the currently active stores.
func (c *Client) Start() {
	c.conv = c.opener.NewConversation()
	c.transcript = NewTranscript()
	c.logger.Debug("chat session started", "stores", len(c.storeNames))
}

// Reset is equivalent to Start with the same store binding.
func (c *Client) Reset() {
	c.Start()
}

// Send delivers one user message and returns the recorded assistant
// entry. Both the user turn and the assistant turn are appended to the
// transcript. A remote failure leaves the session usable; the failed
// user turn is not recorded.
func (c *Client) Send(ctx context.Context, text string) (Entry, error) {
	if c.conv == nil {
		return Entry{}, ErrNoSession
	}
	if text == "" {
		return Entry{}, ErrEmptyMessage
	}

	reply, err := c.conv.Send(ctx, text, c.storeNames)
	if err != nil {
		return Entry{}, fmt.Errorf("sending message: %w", err)
	}

	c.transcript.Append(Entry{
		ID:   uuid.New(),
		Role: RoleUser,
		Text: text,
		Time: time.Now(),
	})
	assistant := Entry{
		ID:        uuid.New(),
		Role:      RoleAssistant,
		Text:      reply.Text,
		Citations: reply.Citations,
		Time:      time.Now(),
	}
	c.transcript.Append(assistant)

	return assistant, nil
}

// History returns the ordered turn sequence of the active session.
func (c *Client) History() []Entry {
	return c.transcript.Entries()
}
