package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/pebble"

	"github.com/zhubert/chatter/internal/chat"
	perrors "github.com/zhubert/chatter/internal/errors"
	"github.com/zhubert/chatter/internal/logger"
)

// Key layout:
//
//	msg/<20-digit seconds>.<9-digit nanos>/<id>  -> JSON record
//	id/<id>                                      -> msg key
//
// Message keys sort by time, so a reverse scan yields newest first. Seconds
// are stored with the sign bit flipped so times before 1970 (and the zero
// time) still sort before later ones.
const (
	msgPrefix = "msg/"
	msgUpper  = "msg0" // '0' sorts right after '/'
	idPrefix  = "id/"
)

func msgKey(r chat.Record) []byte {
	secs := uint64(r.Timestamp.Unix()) ^ (1 << 63)
	return []byte(fmt.Sprintf("%s%020d.%09d/%s", msgPrefix, secs, r.Timestamp.Nanosecond(), r.ID))
}

func idKey(id string) []byte {
	return []byte(idPrefix + id)
}

// PebbleStore keeps records in a Pebble database.
type PebbleStore struct {
	db   *pebble.DB
	path string
}

// OpenPebble opens (or creates) the database directory at path.
func OpenPebble(path string) (*PebbleStore, error) {
	if path == "" {
		return nil, perrors.E(perrors.Op("store.OpenPebble"), perrors.KindConfig, "pebble store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, perrors.StorageFailed("store.OpenPebble", err)
	}
	db, err := pebble.Open(path, &pebble.Options{Logger: pebbleLogger{}})
	if err != nil {
		return nil, perrors.StorageFailed("store.OpenPebble", err)
	}
	logger.WithComponent("store").Info("pebble opened", "path", path)
	return &PebbleStore{db: db, path: path}, nil
}

// Fetch implements Store.
func (s *PebbleStore) Fetch(ctx context.Context) ([]chat.Record, error) {
	if s.db == nil {
		return nil, perrors.StorageClosed("store.Fetch")
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(msgPrefix),
		UpperBound: []byte(msgUpper),
	})
	if err != nil {
		return nil, perrors.StorageFailed("store.Fetch", err)
	}
	defer iter.Close()

	var out []chat.Record
	for iter.Last(); iter.Valid(); iter.Prev() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var r chat.Record
		if err := json.Unmarshal(iter.Value(), &r); err != nil {
			logger.WithComponent("store").Warn("skipping unreadable record", "key", string(iter.Key()), "error", err)
			continue
		}
		out = append(out, r)
	}
	if err := iter.Error(); err != nil {
		return nil, perrors.StorageFailed("store.Fetch", err)
	}
	return out, nil
}

// Save implements Store. Re-saving an id with a new timestamp moves it.
func (s *PebbleStore) Save(ctx context.Context, r chat.Record) error {
	if s.db == nil {
		return perrors.StorageClosed("store.Save")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return perrors.StorageFailed("store.Save", err)
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	key := msgKey(r)
	old, err := s.lookup(r.ID)
	if err != nil {
		return err
	}
	if old != nil && string(old) != string(key) {
		if err := batch.Delete(old, nil); err != nil {
			return perrors.StorageFailed("store.Save", err)
		}
	}
	if err := batch.Set(key, data, nil); err != nil {
		return perrors.StorageFailed("store.Save", err)
	}
	if err := batch.Set(idKey(r.ID), key, nil); err != nil {
		return perrors.StorageFailed("store.Save", err)
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return perrors.StorageFailed("store.Save", err)
	}
	return nil
}

// Delete implements Store.
func (s *PebbleStore) Delete(ctx context.Context, id string) error {
	if s.db == nil {
		return perrors.StorageClosed("store.Delete")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	key, err := s.lookup(id)
	if err != nil {
		return err
	}
	if key == nil {
		return perrors.MessageNotFound(id)
	}

	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Delete(key, nil); err != nil {
		return perrors.StorageFailed("store.Delete", err)
	}
	if err := batch.Delete(idKey(id), nil); err != nil {
		return perrors.StorageFailed("store.Delete", err)
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return perrors.StorageFailed("store.Delete", err)
	}
	return nil
}

// lookup returns the message key stored for id, or nil.
func (s *PebbleStore) lookup(id string) ([]byte, error) {
	v, closer, err := s.db.Get(idKey(id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.StorageFailed("store.lookup", err)
	}
	defer closer.Close()
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Close implements Store.
func (s *PebbleStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return perrors.StorageFailed("store.Close", err)
	}
	return nil
}

// pebbleLogger routes Pebble's own logging to the debug log so it never
// reaches the terminal.
type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	logger.Debug("pebble: "+strings.TrimSpace(format), args...)
}

func (pebbleLogger) Errorf(format string, args ...interface{}) {
	logger.Error("pebble: "+strings.TrimSpace(format), args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	logger.Error("pebble: "+strings.TrimSpace(format), args...)
	panic(fmt.Sprintf(format, args...))
}
