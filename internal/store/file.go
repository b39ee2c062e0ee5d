package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zhubert/chatter/internal/chat"
	perrors "github.com/zhubert/chatter/internal/errors"
)

const fileVersion = 1

type fileDocument struct {
	Version  int           `json:"version"`
	Messages []chat.Record `json:"messages"`
}

// FileStore keeps every record in one JSON file, rewritten atomically on
// each change.
type FileStore struct {
	mu      sync.Mutex
	path    string
	records []chat.Record // newest first
	closed  bool
}

// OpenFile loads path, or starts empty if it does not exist yet.
func OpenFile(path string) (*FileStore, error) {
	if path == "" {
		return nil, perrors.E(perrors.Op("store.OpenFile"), perrors.KindConfig, "file store needs a path")
	}
	fs := &FileStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, perrors.StorageFailed("store.OpenFile", err)
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, perrors.StorageFailed("store.OpenFile", err)
	}
	fs.records = doc.Messages
	chat.SortNewestFirst(fs.records)
	return fs, nil
}

// Fetch implements Store.
func (f *FileStore) Fetch(ctx context.Context) ([]chat.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil, perrors.StorageClosed("store.Fetch")
	}
	out := make([]chat.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

// Save implements Store.
func (f *FileStore) Save(ctx context.Context, r chat.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return perrors.StorageClosed("store.Save")
	}

	next := make([]chat.Record, 0, len(f.records)+1)
	for _, existing := range f.records {
		if existing.ID != r.ID {
			next = append(next, existing)
		}
	}
	next = append(next, r)
	chat.SortNewestFirst(next)

	if err := f.write(next); err != nil {
		return err
	}
	f.records = next
	return nil
}

// Delete implements Store.
func (f *FileStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return perrors.StorageClosed("store.Delete")
	}

	next := make([]chat.Record, 0, len(f.records))
	for _, existing := range f.records {
		if existing.ID != id {
			next = append(next, existing)
		}
	}
	if len(next) == len(f.records) {
		return perrors.MessageNotFound(id)
	}

	if err := f.write(next); err != nil {
		return err
	}
	f.records = next
	return nil
}

// write replaces the file via a temp file and rename. Caller holds mu.
func (f *FileStore) write(records []chat.Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return perrors.StorageFailed("store.write", err)
	}

	data, err := json.MarshalIndent(fileDocument{Version: fileVersion, Messages: records}, "", "  ")
	if err != nil {
		return perrors.StorageFailed("store.write", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".messages-*.json")
	if err != nil {
		return perrors.StorageFailed("store.write", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return perrors.StorageFailed("store.write", err)
	}
	if err := tmp.Close(); err != nil {
		return perrors.StorageFailed("store.write", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return perrors.StorageFailed("store.write", err)
	}
	return nil
}

// Close implements Store.
func (f *FileStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}
