package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikiasgoitom/traceblog/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(clock Clock) *Store {
	opts := DefaultOptions()
	opts.Clock = clock
	return NewStore(opts)
}

func constFetcher(calls *int32, value interface{}) Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(calls, 1)
		return value, nil
	}
}

func TestStore_FreshValueIsServedFromCache(t *testing.T) {
	clock := newManualClock()
	s := newTestStore(clock)
	id := ListIdentity(entity.ListParams{})
	var calls int32

	snap, err := s.EnsureFresh(context.Background(), id, constFetcher(&calls, "v1")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", snap.Value)
	assert.Equal(t, StatusSuccess, snap.Status)

	clock.Advance(4 * time.Minute)
	snap, err = s.EnsureFresh(context.Background(), id, constFetcher(&calls, "v2")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1", snap.Value)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))

	clock.Advance(2 * time.Minute)
	snap, err = s.EnsureFresh(context.Background(), id, constFetcher(&calls, "v2")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Value)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestStore_ZeroStaleTimeAlwaysRefetches(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")
	var calls int32

	for i := 0; i < 3; i++ {
		_, err := s.EnsureFresh(context.Background(), id, constFetcher(&calls, "post")).Wait(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestStore_ConcurrentReadsCoalesce(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("7")
	release := make(chan struct{})
	var calls int32
	fetcher := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "post-7", nil
	}

	handles := make([]*Handle, 5)
	for i := range handles {
		handles[i] = s.EnsureFresh(context.Background(), id, fetcher)
	}
	assert.True(t, s.Read(id).IsLoading())
	close(release)

	for _, h := range handles {
		snap, err := h.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "post-7", snap.Value)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestStore_CompletionStartedBeforeInvalidationIsDiscarded(t *testing.T) {
	clock := newManualClock()
	s := newTestStore(clock)
	id := ListIdentity(entity.ListParams{})

	releaseA := make(chan struct{})
	fetchA := func(ctx context.Context) (interface{}, error) {
		<-releaseA
		return "V1", nil
	}
	fetchB := func(ctx context.Context) (interface{}, error) {
		return "V2", nil
	}

	// A starts at t0.
	handleA := s.EnsureFresh(context.Background(), id, fetchA)

	// invalidation at t50
	clock.Advance(50 * time.Millisecond)
	s.Invalidate(AllLists())

	// B starts at t60 and completes at t80.
	clock.Advance(10 * time.Millisecond)
	snapB, err := s.EnsureFresh(context.Background(), id, fetchB).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "V2", snapB.Value)

	// A completes at t100.
	clock.Advance(40 * time.Millisecond)
	close(releaseA)
	_, err = handleA.Wait(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)

	assert.Equal(t, "V2", s.Read(id).Value)
}

func TestStore_CommitHookSkipsSupersededFetches(t *testing.T) {
	s := newTestStore(newManualClock())
	id := ListIdentity(entity.ListParams{})

	var (
		mu        sync.Mutex
		committed []interface{}
	)
	s.OnCommit(func(ctx context.Context, got QueryIdentity, value interface{}) {
		assert.Equal(t, id, got)
		mu.Lock()
		committed = append(committed, value)
		mu.Unlock()
	})

	release := make(chan struct{})
	handleA := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		<-release
		return "V1", nil
	})
	s.Invalidate(AllLists())

	_, err := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		return "V2", nil
	}).Wait(context.Background())
	require.NoError(t, err)

	close(release)
	_, err = handleA.Wait(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)

	_, err = s.EnsureFresh(context.Background(), DetailIdentity("1"), func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	}).Wait(context.Background())
	assert.Error(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []interface{}{"V2"}, committed)
}

func TestStore_CompletionOlderThanWriteIsDiscarded(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")
	release := make(chan struct{})

	h := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		<-release
		return "old", nil
	})
	s.Write(id, "confirmed")
	close(release)

	_, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)
	snap := s.Read(id)
	assert.Equal(t, "confirmed", snap.Value)
	assert.False(t, snap.Fetching)
}

func TestStore_FailureKeepsPreviousValue(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")
	boom := errors.New("boom")

	s.Write(id, "v1")
	s.Invalidate(Detail("1"))

	snap, err := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	}).Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, snap.Status)
	assert.Equal(t, "v1", snap.Value)
	assert.ErrorIs(t, snap.Err, boom)

	var calls int32
	snap, err = s.EnsureFresh(context.Background(), id, constFetcher(&calls, "v2")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2", snap.Value)
	assert.Nil(t, snap.Err)
	assert.EqualValues(t, 1, calls)
}

func TestStore_InvalidateReturnsMatches(t *testing.T) {
	s := newTestStore(newManualClock())
	s.Write(ListIdentity(entity.ListParams{}), "p1")
	s.Write(ListIdentity(entity.ListParams{Q: "farm"}), "p1-farm")
	s.Write(DetailIdentity("1"), "d1")
	s.Write(DetailIdentity("2"), "d2")
	s.Write(CommentsIdentity("1", entity.CommentListParams{Page: 2}), "c1")

	matched := s.Invalidate(AnyOf(AllLists(), Detail("2")))
	keys := make([]string, 0, len(matched))
	for _, m := range matched {
		keys = append(keys, m.Key())
	}
	assert.ElementsMatch(t, []string{
		ListIdentity(entity.ListParams{}).Key(),
		ListIdentity(entity.ListParams{Q: "farm"}).Key(),
		DetailIdentity("2").Key(),
	}, keys)

	assert.True(t, s.Read(DetailIdentity("2")).Stale)
	assert.True(t, s.Read(ListIdentity(entity.ListParams{})).Stale)
	// still served while stale
	assert.Equal(t, "d2", s.Read(DetailIdentity("2")).Value)
}

func TestStore_InvalidateRefetchesSubscribedEntries(t *testing.T) {
	s := newTestStore(newManualClock())
	id := ListIdentity(entity.ListParams{})
	var calls int32
	var version int32
	fetcher := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return atomic.AddInt32(&version, 1), nil
	}

	updates := make(chan Snapshot, 16)
	unsubscribe := s.Subscribe(id, func(snap Snapshot) { updates <- snap })
	defer unsubscribe()

	_, err := s.EnsureFresh(context.Background(), id, fetcher).Wait(context.Background())
	require.NoError(t, err)

	s.Invalidate(AllLists())

	require.Eventually(t, func() bool {
		snap := s.Read(id)
		return !snap.Fetching && snap.Value == int32(2)
	}, time.Second, 5*time.Millisecond)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	assert.NotEmpty(t, updates)
}

func TestStore_InvalidateWithoutSubscribersDoesNotFetch(t *testing.T) {
	s := newTestStore(newManualClock())
	id := ListIdentity(entity.ListParams{})
	var calls int32

	_, err := s.EnsureFresh(context.Background(), id, constFetcher(&calls, "v")).Wait(context.Background())
	require.NoError(t, err)
	s.Invalidate(AllLists())

	assert.False(t, s.Read(id).Fetching)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestStore_SubscribersSeeWrites(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")
	var got []interface{}
	unsubscribe := s.Subscribe(id, func(snap Snapshot) { got = append(got, snap.Value) })

	s.Write(id, "a")
	s.Write(id, "b")
	unsubscribe()
	unsubscribe()
	s.Write(id, "c")

	assert.Equal(t, []interface{}{"a", "b"}, got)
}

func TestStore_SeedIsStale(t *testing.T) {
	s := newTestStore(newManualClock())
	id := ListIdentity(entity.ListParams{})

	assert.True(t, s.Seed(id, "mirrored"))
	snap := s.Read(id)
	assert.Equal(t, "mirrored", snap.Value)
	assert.True(t, snap.Stale)

	var calls int32
	snap, err := s.EnsureFresh(context.Background(), id, constFetcher(&calls, "live")).Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "live", snap.Value)
	assert.False(t, s.Seed(id, "mirrored-again"))
}

func TestStore_Update(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")

	assert.False(t, s.Update(id, func(v interface{}) interface{} { return v }))

	s.Write(id, 1)
	assert.True(t, s.Update(id, func(v interface{}) interface{} { return v.(int) + 1 }))
	assert.Equal(t, 2, s.Read(id).Value)
}

func TestStore_CollectRemovesIdleEntries(t *testing.T) {
	clock := newManualClock()
	s := newTestStore(clock)
	idle := DetailIdentity("idle")
	watched := DetailIdentity("watched")

	s.Write(idle, "x")
	s.Write(watched, "y")
	unsubscribe := s.Subscribe(watched, func(Snapshot) {})

	clock.Advance(4 * time.Minute)
	assert.Equal(t, 0, s.Collect())

	clock.Advance(time.Minute)
	assert.Equal(t, 1, s.Collect())
	assert.Equal(t, 1, s.Len())

	unsubscribe()
	assert.Equal(t, 0, s.Collect())
	clock.Advance(5 * time.Minute)
	assert.Equal(t, 1, s.Collect())
	assert.Equal(t, 0, s.Len())
}

func TestStore_ResultForCollectedEntryIsDropped(t *testing.T) {
	clock := newManualClock()
	s := newTestStore(clock)
	id := DetailIdentity("1")
	release := make(chan struct{})

	h := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		<-release
		return "late", nil
	})
	s.Invalidate(Detail("1"))
	clock.Advance(DefaultGCTime)
	require.Equal(t, 1, s.Collect())

	close(release)
	_, err := h.Wait(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Equal(t, 0, s.Len())
}

func TestHandle_WaitHonorsContext(t *testing.T) {
	s := newTestStore(newManualClock())
	id := DetailIdentity("1")
	release := make(chan struct{})
	h := s.EnsureFresh(context.Background(), id, func(ctx context.Context) (interface{}, error) {
		<-release
		return "done", nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	require.Eventually(t, func() bool {
		return s.Read(id).Value == "done"
	}, time.Second, 5*time.Millisecond)
}

func TestStore_EnsureFreshWithoutFetcher(t *testing.T) {
	s := newTestStore(newManualClock())
	snap, err := s.EnsureFresh(context.Background(), DetailIdentity("1"), nil).Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.HasValue)
	assert.Equal(t, StatusIdle, snap.Status)
}
