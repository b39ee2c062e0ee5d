package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/zhubert/chatter/internal/errors"
)

func TestQueue_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemory())
	defer q.Close()

	records := sampleRecords(50)
	var saves []<-chan error
	for _, r := range records {
		saves = append(saves, q.SaveAsync(ctx, r))
	}
	// Enqueued after every save, so it must see all of them.
	fetch := q.FetchAsync(ctx)

	res := <-fetch
	require.NoError(t, res.Err)
	assert.Len(t, res.Records, len(records))

	for _, ch := range saves {
		assert.NoError(t, <-ch)
	}
}

func TestQueue_DeleteThenFetch(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemory(sampleRecords(3)...))
	defer q.Close()

	del := q.DeleteAsync(ctx, "id-001")
	got, err := q.Fetch(ctx)
	require.NoError(t, err)
	require.NoError(t, <-del)
	assert.Len(t, got, 2)

	err = q.Delete(ctx, "id-001")
	assert.True(t, perrors.Is(err, perrors.KindNotFound))
}

func TestQueue_ConcurrentCallers(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(NewMemory())
	defer q.Close()

	records := sampleRecords(40)
	var wg sync.WaitGroup
	for _, r := range records {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, q.Save(ctx, r))
		}()
	}
	wg.Wait()

	got, err := q.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, got, len(records))
}

func TestQueue_CloseDrainsAndRejects(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	q := NewQueue(mem)

	pending := q.SaveAsync(ctx, sampleRecords(1)[0])
	require.NoError(t, q.Close())
	require.NoError(t, <-pending, "work enqueued before Close still runs")

	err := <-q.SaveAsync(ctx, sampleRecords(2)[1])
	assert.True(t, perrors.Is(err, perrors.KindStorage))

	res := <-q.FetchAsync(ctx)
	assert.Error(t, res.Err)

	assert.NoError(t, q.Close(), "second Close is a no-op")
}

func TestQueue_ContextCancelled(t *testing.T) {
	q := NewQueue(NewMemory())
	defer q.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Fetch(ctx)
	assert.Error(t, err)
}
