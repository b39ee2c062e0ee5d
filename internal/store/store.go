// Package store persists message history.
//
// Every backend implements Store. The UI talks to a Queue, which runs a
// backend on one worker goroutine so calls never block the event loop and a
// save is always visible to the next fetch.
package store

import (
	"context"
	"fmt"

	"github.com/zhubert/chatter/internal/chat"
	"github.com/zhubert/chatter/internal/config"
	perrors "github.com/zhubert/chatter/internal/errors"
)

// Store is a message history backend.
type Store interface {
	// Fetch returns every record, newest first (timestamp then id, descending).
	Fetch(ctx context.Context) ([]chat.Record, error)
	// Save inserts or replaces the record with r.ID.
	Save(ctx context.Context, r chat.Record) error
	// Delete removes the record with id. Missing ids are a KindNotFound error.
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open creates the backend selected by cfg.
func Open(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorePebble, "":
		return OpenPebble(cfg.Path)
	case config.StoreFile:
		return OpenFile(cfg.Path)
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, perrors.E(perrors.Op("store.Open"), perrors.KindConfig,
			fmt.Sprintf("unknown store backend %q", cfg.Backend))
	}
}
