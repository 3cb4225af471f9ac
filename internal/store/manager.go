package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

// DefaultPollInterval is the pause between status checks of an indexing
// operation. The cadence matters: one check every couple of seconds
// stays inside the API's rate limits, so keep it when changing code.
const DefaultPollInterval = 2 * time.Second

// Manager performs store CRUD and upload operations against a remote
// file-search API.
type Manager struct {
	api          API
	prefix       string
	pollInterval time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithPollInterval overrides the upload polling cadence. Tests use this
// to poll fast; production code should leave the default alone.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) { m.pollInterval = d }
}

// WithClock overrides the time source used for generated display names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a store Manager. prefix is used for generated
// store display names.
func NewManager(api API, prefix string, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if api == nil {
		return nil, errors.New("api is required")
	}
	if prefix == "" {
		return nil, errors.New("prefix is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		api:          api,
		prefix:       prefix,
		pollInterval: DefaultPollInterval,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Create creates a new store. An empty displayName generates
// "<prefix>-<unix timestamp>".
func (m *Manager) Create(ctx context.Context, displayName string) (Store, error) {
	if displayName == "" {
		displayName = fmt.Sprintf("%s-%d", m.prefix, m.now().Unix())
	}

	st, err := m.api.CreateStore(ctx, displayName)
	if err != nil {
		return Store{}, fmt.Errorf("creating store: %w", err)
	}

	m.logger.Info("store created", "name", st.Name, "display_name", st.DisplayName)
	return st, nil
}

// List returns all stores in the order the remote listing reports them.
func (m *Manager) List(ctx context.Context) ([]Store, error) {
	stores, err := m.api.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stores: %w", err)
	}
	return stores, nil
}

// Get fetches one store by resource name.
func (m *Manager) Get(ctx context.Context, name string) (Store, error) {
	st, err := m.api.GetStore(ctx, name)
	if err != nil {
		return Store{}, fmt.Errorf("getting store %q: %w", name, err)
	}
	return st, nil
}

// Delete removes a store.
func (m *Manager) Delete(ctx context.Context, name string, force bool) error {
	if err := m.api.DeleteStore(ctx, name, force); err != nil {
		return fmt.Errorf("deleting store %q: %w", name, err)
	}
	m.logger.Info("store deleted", "name", name, "force", force)
	return nil
}

// UploadFile indexes one local file into a store and blocks until the
// remote operation is terminal. There is deliberately no retry bound: a
// hung remote operation blocks until the context is cancelled.
func (m *Manager) UploadFile(ctx context.Context, storeName, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading file %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q is a directory", ErrUploadFailed, path)
	}

	displayName := filepath.Base(path)
	m.logger.Info("uploading file", "path", path, "store", storeName, "display_name", displayName)

	op, err := m.api.BeginUpload(ctx, storeName, path, displayName)
	if err != nil {
		return fmt.Errorf("uploading %q: %w", path, err)
	}

	op, err = m.waitForOperation(ctx, op)
	if err != nil {
		return fmt.Errorf("indexing %q: %w", path, err)
	}
	if op.ErrMessage != "" {
		return fmt.Errorf("%w: %s: %s", ErrUploadFailed, displayName, op.ErrMessage)
	}

	m.logger.Info("file indexed", "display_name", displayName, "operation", op.Name)
	return nil
}

// waitForOperation polls until the operation reports done. A limiter
// enforces the cadence: the stored token is spent up front so every
// status check waits a full interval, matching the observed behavior
// the API's rate limits were tuned against.
func (m *Manager) waitForOperation(ctx context.Context, op Operation) (Operation, error) {
	limiter := rate.NewLimiter(rate.Every(m.pollInterval), 1)
	_ = limiter.Allow()

	for !op.Done {
		if err := limiter.Wait(ctx); err != nil {
			return op, fmt.Errorf("waiting for indexing: %w", err)
		}
		next, err := m.api.PollUpload(ctx, op)
		if err != nil {
			return op, fmt.Errorf("polling operation %q: %w", op.Name, err)
		}
		op = next
	}
	return op, nil
}

// FileResult is the outcome of one file within a directory upload.
type FileResult struct {
	Path string
	Err  error
}

// Summary aggregates a directory upload: total files seen, how many
// indexed successfully, and the per-file outcomes in directory order.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []FileResult
}

// UploadDirectory uploads every regular file in dir into the store,
// continuing past individual failures. Subdirectories are skipped. The
// returned summary is complete even when every file fails; only a
// failure to read the directory itself aborts.
func (m *Manager) UploadDirectory(ctx context.Context, storeName, dir string) (Summary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return Summary{}, fmt.Errorf("%w: %q", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var summary Summary
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if t := entry.Type(); !t.IsRegular() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		summary.Total++

		uploadErr := m.UploadFile(ctx, storeName, path)
		summary.Results = append(summary.Results, FileResult{Path: path, Err: uploadErr})
		if uploadErr != nil {
			summary.Failed++
			m.logger.Warn("file upload failed", "path", path, "error", uploadErr)
			// Cancellation is not an individual-file failure; stop the batch.
			if ctx.Err() != nil {
				return summary, fmt.Errorf("uploading directory %q: %w", dir, ctx.Err())
			}
			continue
		}
		summary.Succeeded++
	}

	m.logger.Info("directory upload finished",
		"dir", dir, "total", summary.Total,
		"succeeded", summary.Succeeded, "failed", summary.Failed)
	return summary, nil
}
