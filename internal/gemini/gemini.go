// Package gemini adapts the google.golang.org/genai SDK to the narrow
// surfaces the rest of askdocs consumes: the store.API interface for
// file-search store management and the chat.Opener/chat.Conversation
// pair for conversations. No other package imports the SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/koopa0/askdocs/internal/config"
	"github.com/koopa0/askdocs/internal/store"
)

// Client wraps a genai client together with the application
// configuration it sends on every request.
type Client struct {
	api    *genai.Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewClient creates the Gemini API client from validated configuration.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, config.ErrConfigNil
	}
	if logger == nil {
		logger = slog.Default()
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &Client{api: api, cfg: cfg, logger: logger}, nil
}

// CreateStore implements store.API.
func (c *Client) CreateStore(ctx context.Context, displayName string) (store.Store, error) {
	st, err := c.api.FileSearchStores.Create(ctx, &genai.CreateFileSearchStoreConfig{
		DisplayName: displayName,
	})
	if err != nil {
		return store.Store{}, mapNotFound(err)
	}
	return toStore(st), nil
}

// GetStore implements store.API.
func (c *Client) GetStore(ctx context.Context, name string) (store.Store, error) {
	st, err := c.api.FileSearchStores.Get(ctx, name, nil)
	if err != nil {
		return store.Store{}, mapNotFound(err)
	}
	return toStore(st), nil
}

// ListStores implements store.API. Order is whatever the remote
// listing returns.
func (c *Client) ListStores(ctx context.Context) ([]store.Store, error) {
	var out []store.Store
	for st, err := range c.api.FileSearchStores.All(ctx) {
		if err != nil {
			return nil, mapNotFound(err)
		}
		out = append(out, toStore(st))
	}
	return out, nil
}

// DeleteStore implements store.API.
func (c *Client) DeleteStore(ctx context.Context, name string, force bool) error {
	err := c.api.FileSearchStores.Delete(ctx, name, &genai.DeleteFileSearchStoreConfig{
		Force: &force,
	})
	if err != nil {
		return mapNotFound(err)
	}
	return nil
}

// BeginUpload implements store.API: it starts indexing one local file
// into the named store.
func (c *Client) BeginUpload(ctx context.Context, storeName, path, displayName string) (store.Operation, error) {
	op, err := c.api.FileSearchStores.UploadToFileSearchStoreFromPath(ctx, path, storeName,
		&genai.UploadToFileSearchStoreConfig{DisplayName: displayName})
	if err != nil {
		return store.Operation{}, mapNotFound(err)
	}
	return toOperation(op), nil
}

// PollUpload implements store.API: it fetches the current state of an
// indexing operation by name.
func (c *Client) PollUpload(ctx context.Context, op store.Operation) (store.Operation, error) {
	got, err := c.api.Operations.GetUploadToFileSearchStoreOperation(ctx,
		&genai.UploadToFileSearchStoreOperation{Name: op.Name}, nil)
	if err != nil {
		return op, mapNotFound(err)
	}
	return toOperation(got), nil
}

func toStore(st *genai.FileSearchStore) store.Store {
	if st == nil {
		return store.Store{}
	}
	return store.Store{
		Name:        st.Name,
		DisplayName: st.DisplayName,
		CreateTime:  st.CreateTime,
	}
}

func toOperation(op *genai.UploadToFileSearchStoreOperation) store.Operation {
	if op == nil {
		return store.Operation{}
	}
	return store.Operation{
		Name:       op.Name,
		Done:       op.Done,
		ErrMessage: operationError(op.Error),
	}
}

// operationError flattens the operation's error payload to a message.
func operationError(e map[string]any) string {
	if len(e) == 0 {
		return ""
	}
	if msg, ok := e["message"].(string); ok && msg != "" {
		return msg
	}
	return fmt.Sprintf("%v", e)
}

// mapNotFound converts a 404 from the API into the store package's
// sentinel so callers can use errors.Is.
func mapNotFound(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == 404 {
		return fmt.Errorf("%w: %s", store.ErrStoreNotFound, apiErr.Message)
	}
	return err
}
