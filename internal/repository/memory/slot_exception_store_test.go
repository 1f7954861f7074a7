package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
)

type recorder struct {
	mu        sync.Mutex
	snapshots [][]model.SlotException
}

func (r *recorder) record(records []model.SlotException) {
	r.mu.Lock()
	r.snapshots = append(r.snapshots, records)
	r.mu.Unlock()
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *recorder) last() []model.SlotException {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[len(r.snapshots)-1]
}

func TestSubscribeDeliversInitialAndFullSnapshots(t *testing.T) {
	ctx := context.Background()
	store := NewStore(model.SlotException{ID: "seed", Date: "2025-06-10", Time: "09:00"})
	rec := &recorder{}

	cancel, err := store.Subscribe(ctx, rec.record)
	require.NoError(t, err)
	defer cancel()

	require.Equal(t, 1, rec.count())
	assert.Len(t, rec.last(), 1)

	id, err := store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "10:00"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.Equal(t, 2, rec.count())
	assert.Len(t, rec.last(), 2, "each delivery carries the whole collection")

	require.NoError(t, store.SetRemoved(ctx, id, true))
	require.Equal(t, 3, rec.count())
	for _, r := range rec.last() {
		if r.ID == id {
			assert.True(t, r.Removed)
		}
	}

	require.NoError(t, store.Delete(ctx, id))
	require.Equal(t, 4, rec.count())
	assert.Len(t, rec.last(), 1)
}

func TestMissingRecordsReportNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	assert.ErrorIs(t, store.SetRemoved(ctx, "missing", true), model.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "missing"), model.ErrNotFound)
}

func TestCancelIsIdempotentAndStopsDelivery(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	rec := &recorder{}

	cancel, err := store.Subscribe(ctx, rec.record)
	require.NoError(t, err)

	cancel()
	cancel()

	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "10:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.count())
}

func TestCancelFromInsideCallback(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var (
		calls  int
		cancel func()
	)
	ready := make(chan struct{})
	c, err := store.Subscribe(ctx, func(records []model.SlotException) {
		calls++
		if calls == 2 {
			<-ready
			cancel()
		}
	})
	require.NoError(t, err)
	cancel = c
	close(ready)

	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "10:00"})
	require.NoError(t, err)
	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "11:00"})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestWriteHookSurfacesWriteError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	boom := errors.New("network down")
	store.SetWriteHook(func(op, id string) error { return boom })

	_, err := store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "10:00"})
	assert.ErrorIs(t, err, model.ErrWrite)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())

	store.SetWriteHook(nil)
	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "10:00"})
	assert.NoError(t, err)
}

func TestSnapshotsAreIsolatedCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore(model.SlotException{ID: "a", Date: "2025-06-10", Time: "09:00"})

	list, err := store.List(ctx)
	require.NoError(t, err)
	list[0].Time = "23:00"

	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "09:00", again[0].Time)
}

func TestConcurrentWritersNeverRegress(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var (
		mu      sync.Mutex
		lengths []int
	)
	cancel, err := store.Subscribe(ctx, func(records []model.SlotException) {
		mu.Lock()
		lengths = append(lengths, len(records))
		mu.Unlock()
	})
	require.NoError(t, err)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(hour int) {
			defer wg.Done()
			_, err := store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: fmt.Sprintf("%02d:00", hour)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(lengths); i++ {
		assert.Greater(t, lengths[i], lengths[i-1])
	}
	assert.Equal(t, 20, lengths[len(lengths)-1])
}

func TestCreateRejectsSecondActiveRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, err := store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "09:00"})
	require.NoError(t, err)

	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "09:00"})
	assert.ErrorIs(t, err, model.ErrAlreadyOffered)

	// маркеры и другие даты не конфликтуют
	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "09:00", Removed: true})
	assert.NoError(t, err)
	_, err = store.Create(ctx, model.SlotException{Date: "2025-06-11", Time: "09:00"})
	assert.NoError(t, err)

	assert.Equal(t, 3, store.Len())
}

func TestSetRemovedRejectsReactivationOverActiveRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore(
		model.SlotException{ID: "active", Date: "2025-06-10", Time: "09:00"},
		model.SlotException{ID: "marker", Date: "2025-06-10", Time: "09:00", Removed: true},
	)

	assert.ErrorIs(t, store.SetRemoved(ctx, "marker", false), model.ErrAlreadyOffered)
	assert.NoError(t, store.SetRemoved(ctx, "active", false), "record does not conflict with itself")

	require.NoError(t, store.SetRemoved(ctx, "active", true))
	assert.NoError(t, store.SetRemoved(ctx, "marker", false))
}

func TestConcurrentCreatesKeepOneActiveRecord(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create(ctx, model.SlotException{Date: "2025-06-10", Time: "09:00"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, model.ErrAlreadyOffered):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, 9, rejected)
	assert.Equal(t, 1, store.Len())
}
