// Package store manages remote file-search stores: CRUD against the
// store resource and the upload-and-poll lifecycle for indexing local
// files into a store.
//
// The remote surface is the consumer-defined API interface; the
// production implementation lives in internal/gemini.
package store

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for store operations.
var (
	// ErrStoreNotFound indicates the named store does not exist remotely.
	ErrStoreNotFound = errors.New("store not found")

	// ErrNotDirectory indicates the upload path is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrUploadFailed indicates an indexing operation finished in failure.
	ErrUploadFailed = errors.New("upload failed")
)

// Store describes one remote file-search store. The Name is the opaque
// resource identifier assigned by the remote system and is immutable;
// DisplayName is the optional human-readable label.
type Store struct {
	Name        string
	DisplayName string
	CreateTime  time.Time
}

// Operation is the transient handle for one in-progress indexing
// operation. Done is monotonic: once true it never reverts. ErrMessage
// is set only when the operation finished in failure.
type Operation struct {
	Name       string
	Done       bool
	ErrMessage string
}

// API is the remote file-search surface consumed by Manager.
type API interface {
	// CreateStore creates a store with the given display name.
	CreateStore(ctx context.Context, displayName string) (Store, error)

	// GetStore fetches a store by resource name. Returns an error
	// wrapping ErrStoreNotFound when it does not exist.
	GetStore(ctx context.Context, name string) (Store, error)

	// ListStores returns all stores in remote listing order.
	ListStores(ctx context.Context) ([]Store, error)

	// DeleteStore removes a store. With force, contained documents are
	// removed as well.
	DeleteStore(ctx context.Context, name string, force bool) error

	// BeginUpload starts indexing one local file into a store and
	// returns the operation handle.
	BeginUpload(ctx context.Context, storeName, path, displayName string) (Operation, error)

	// PollUpload fetches the current state of an indexing operation.
	PollUpload(ctx context.Context, op Operation) (Operation, error)
}
