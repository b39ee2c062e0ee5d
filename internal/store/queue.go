package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/zhubert/chatter/internal/chat"
	perrors "github.com/zhubert/chatter/internal/errors"
	"github.com/zhubert/chatter/internal/logger"
)

// FetchResult is the outcome of an asynchronous fetch.
type FetchResult struct {
	Records []chat.Record
	Err     error
}

// Queue serializes every call to a Store on one worker goroutine. Requests
// run in the order they were enqueued, so a fetch enqueued after a save
// always observes it. Enqueueing never blocks.
type Queue struct {
	store Store
	log   *slog.Logger

	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

// NewQueue starts a worker for s. The queue owns s and closes it on Close.
func NewQueue(s Store) *Queue {
	q := &Queue{
		store: s,
		log:   logger.WithComponent("store"),
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		closed := q.closed
		q.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-q.wake
	}
}

func (q *Queue) enqueue(fn func()) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// SaveAsync enqueues a save. The channel receives its result.
func (q *Queue) SaveAsync(ctx context.Context, r chat.Record) <-chan error {
	res := make(chan error, 1)
	if !q.enqueue(func() {
		err := q.store.Save(ctx, r)
		if err != nil {
			q.log.Error("save failed", "id", r.ID, "error", err)
		}
		res <- err
	}) {
		res <- perrors.StorageClosed("store.Save")
	}
	return res
}

// DeleteAsync enqueues a delete. The channel receives its result.
func (q *Queue) DeleteAsync(ctx context.Context, id string) <-chan error {
	res := make(chan error, 1)
	if !q.enqueue(func() {
		err := q.store.Delete(ctx, id)
		if err != nil {
			q.log.Error("delete failed", "id", id, "error", err)
		}
		res <- err
	}) {
		res <- perrors.StorageClosed("store.Delete")
	}
	return res
}

// FetchAsync enqueues a fetch behind every pending write.
func (q *Queue) FetchAsync(ctx context.Context) <-chan FetchResult {
	res := make(chan FetchResult, 1)
	if !q.enqueue(func() {
		records, err := q.store.Fetch(ctx)
		if err != nil {
			q.log.Error("fetch failed", "error", err)
		}
		res <- FetchResult{Records: records, Err: err}
	}) {
		res <- FetchResult{Err: perrors.StorageClosed("store.Fetch")}
	}
	return res
}

// Fetch implements Store.
func (q *Queue) Fetch(ctx context.Context) ([]chat.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case r := <-q.FetchAsync(ctx):
		return r.Records, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Save implements Store.
func (q *Queue) Save(ctx context.Context, r chat.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wait(ctx, q.SaveAsync(ctx, r))
}

// Delete implements Store.
func (q *Queue) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wait(ctx, q.DeleteAsync(ctx, id))
}

func wait(ctx context.Context, res <-chan error) error {
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting requests, drains the ones already enqueued and
// closes the underlying store.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return nil
	}
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
	return q.store.Close()
}
