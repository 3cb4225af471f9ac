package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/koopa0/askdocs/internal/log"
)

// fakeAPI is an in-memory remote: stores keyed by name, uploads
// scripted per display name.
type fakeAPI struct {
	stores map[string]Store
	nextID int

	// failUploads maps display names to the failure message their
	// operation should finish with. "reject" fails BeginUpload itself.
	failUploads map[string]string

	// pollsUntilDone is how many PollUpload calls an operation takes
	// to reach terminal state.
	pollsUntilDone int
	pollCounts     map[string]int

	beginCalls []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		stores:      make(map[string]Store),
		failUploads: make(map[string]string),
		pollCounts:  make(map[string]int),
	}
}

func (f *fakeAPI) CreateStore(_ context.Context, displayName string) (Store, error) {
	f.nextID++
	st := Store{
		Name:        fmt.Sprintf("fileSearchStores/fake-%d", f.nextID),
		DisplayName: displayName,
		CreateTime:  time.Now(),
	}
	f.stores[st.Name] = st
	return st, nil
}

func (f *fakeAPI) GetStore(_ context.Context, name string) (Store, error) {
	st, ok := f.stores[name]
	if !ok {
		return Store{}, fmt.Errorf("%w: %s", ErrStoreNotFound, name)
	}
	return st, nil
}

func (f *fakeAPI) ListStores(_ context.Context) ([]Store, error) {
	out := make([]Store, 0, len(f.stores))
	for _, st := range f.stores {
		out = append(out, st)
	}
	return out, nil
}

func (f *fakeAPI) DeleteStore(_ context.Context, name string, _ bool) error {
	if _, ok := f.stores[name]; !ok {
		return fmt.Errorf("%w: %s", ErrStoreNotFound, name)
	}
	delete(f.stores, name)
	return nil
}

func (f *fakeAPI) BeginUpload(_ context.Context, storeName, _, displayName string) (Operation, error) {
	f.beginCalls = append(f.beginCalls, displayName)
	if f.failUploads[displayName] == "reject" {
		return Operation{}, errors.New("rejected at upload time")
	}
	if _, ok := f.stores[storeName]; !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrStoreNotFound, storeName)
	}
	op := Operation{Name: "operations/" + displayName}
	if f.pollsUntilDone == 0 {
		op.Done = true
		op.ErrMessage = f.failUploads[displayName]
	}
	return op, nil
}

func (f *fakeAPI) PollUpload(_ context.Context, op Operation) (Operation, error) {
	f.pollCounts[op.Name]++
	if f.pollCounts[op.Name] >= f.pollsUntilDone {
		op.Done = true
		display := strings.TrimPrefix(op.Name, "operations/")
		op.ErrMessage = f.failUploads[display]
	}
	return op, nil
}

func newTestManager(t *testing.T, api API) *Manager {
	t.Helper()
	m, err := NewManager(api, "file-search-chat", log.NewNop(),
		WithPollInterval(time.Millisecond),
		WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestCreateThenGet(t *testing.T) {
	api := newFakeAPI()
	m := newTestManager(t, api)
	ctx := context.Background()

	created, err := m.Create(ctx, "docs")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := m.Get(ctx, created.Name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != created.Name {
		t.Errorf("Get name = %q, want %q", got.Name, created.Name)
	}
	if got.DisplayName != "docs" {
		t.Errorf("Get display name = %q, want docs", got.DisplayName)
	}
}

func TestCreateGeneratesDisplayName(t *testing.T) {
	api := newFakeAPI()
	m := newTestManager(t, api)

	created, err := m.Create(context.Background(), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := "file-search-chat-1700000000"
	if created.DisplayName != want {
		t.Errorf("generated display name = %q, want %q", created.DisplayName, want)
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	api := newFakeAPI()
	m := newTestManager(t, api)
	ctx := context.Background()

	created, err := m.Create(ctx, "docs")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Delete(ctx, created.Name, true); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, err := m.Get(ctx, created.Name); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("Get after Delete = %v, want ErrStoreNotFound", err)
	}
}

func TestUploadFilePollsUntilDone(t *testing.T) {
	api := newFakeAPI()
	api.pollsUntilDone = 3
	m := newTestManager(t, api)
	ctx := context.Background()

	created, _ := m.Create(ctx, "docs")
	path := writeTempFile(t, "a.txt", "hello")

	if err := m.UploadFile(ctx, created.Name, path); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	if got := api.pollCounts["operations/a.txt"]; got != 3 {
		t.Errorf("poll count = %d, want 3", got)
	}
}

func TestUploadFileReportsOperationFailure(t *testing.T) {
	api := newFakeAPI()
	api.pollsUntilDone = 1
	api.failUploads["big.bin"] = "file exceeds size limit"
	m := newTestManager(t, api)
	ctx := context.Background()

	created, _ := m.Create(ctx, "docs")
	path := writeTempFile(t, "big.bin", "xxxx")

	err := m.UploadFile(ctx, created.Name, path)
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("UploadFile = %v, want ErrUploadFailed", err)
	}
	if !strings.Contains(err.Error(), "file exceeds size limit") {
		t.Errorf("error should carry the remote message, got %v", err)
	}
}

func TestUploadFileCancelledWhilePolling(t *testing.T) {
	api := newFakeAPI()
	api.pollsUntilDone = 1 << 30 // never finishes on its own
	m := newTestManager(t, api)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	created, _ := m.Create(context.Background(), "docs")
	path := writeTempFile(t, "slow.txt", "zzz")

	err := m.UploadFile(ctx, created.Name, path)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("UploadFile under cancelled context = %v, want DeadlineExceeded", err)
	}
}

// TestUploadDirectoryContinuesPastFailures uploads N files with K
// scripted failures and expects exactly N-K successes, K failures, and
// no early abort.
func TestUploadDirectoryContinuesPastFailures(t *testing.T) {
	api := newFakeAPI()
	api.failUploads["bad1.txt"] = "unsupported type"
	api.failUploads["bad2.txt"] = "reject"
	m := newTestManager(t, api)
	ctx := context.Background()

	created, _ := m.Create(ctx, "docs")

	dir := t.TempDir()
	for _, name := range []string{"a.txt", "bad1.txt", "b.txt", "bad2.txt", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	// Subdirectories are skipped, not counted.
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatal(err)
	}

	summary, err := m.UploadDirectory(ctx, created.Name, dir)
	if err != nil {
		t.Fatalf("UploadDirectory: %v", err)
	}

	if summary.Total != 5 {
		t.Errorf("Total = %d, want 5", summary.Total)
	}
	if summary.Succeeded != 3 {
		t.Errorf("Succeeded = %d, want 3", summary.Succeeded)
	}
	if summary.Failed != 2 {
		t.Errorf("Failed = %d, want 2", summary.Failed)
	}
	if len(api.beginCalls) != 5 {
		t.Errorf("BeginUpload calls = %d, want 5 (no early abort)", len(api.beginCalls))
	}
}

func TestUploadDirectoryRejectsFile(t *testing.T) {
	api := newFakeAPI()
	m := newTestManager(t, api)

	path := writeTempFile(t, "f.txt", "data")
	if _, err := m.UploadDirectory(context.Background(), "fileSearchStores/x", path); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("UploadDirectory on a file = %v, want ErrNotDirectory", err)
	}
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
