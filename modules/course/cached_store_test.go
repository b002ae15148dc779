package course_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/courseapi/modules/course"
)

func ptr[T any](v T) *T { return &v }

func setupCache(t *testing.T) (*miniredis.Miniredis, *memStore, *course.CachedStore) {
	t.Helper()
	inner := newMemStore()
	mr, store := cacheOver(t, inner)
	return mr, inner, store
}

func cacheOver(t *testing.T, inner course.Store) (*miniredis.Miniredis, *course.CachedStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, course.NewCachedStore(inner, client, 30*time.Second, nil)
}

// pausedGetStore holds the first Get after it has read from the wrapped
// store, so a write can commit between the read and the cache fill.
type pausedGetStore struct {
	*memStore
	paused  atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func newPausedGetStore() *pausedGetStore {
	return &pausedGetStore{
		memStore: newMemStore(),
		read:     make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (p *pausedGetStore) Get(ctx context.Context, id string) (course.Course, error) {
	c, err := p.memStore.Get(ctx, id)
	if p.paused.CompareAndSwap(false, true) {
		close(p.read)
		<-p.release
	}
	return c, err
}

// readDuring starts a cached Get, runs write while that Get holds the old
// document, then lets the Get finish.
func readDuring(t *testing.T, inner *pausedGetStore, store *course.CachedStore, id string, write func()) {
	t.Helper()
	done := make(chan error, 1)
	go func() {
		_, err := store.Get(context.Background(), id)
		done <- err
	}()

	<-inner.read
	write()
	close(inner.release)
	require.NoError(t, <-done)
}

func TestCachedStoreReadThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, inner, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Caching 101")})
	require.NoError(t, err)
	id := c.ID.Hex()

	first, err := store.Get(ctx, id)
	require.NoError(t, err)
	second, err := store.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, inner.getCalls(), "second read served from cache")
	assert.True(t, mr.Exists("course:"+id))
	assert.Equal(t, 30*time.Second, mr.TTL("course:"+id))

	mr.FastForward(31 * time.Second)
	_, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.getCalls(), "expired entry reloads")
}

func TestCachedStoreInvalidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, _, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Old")})
	require.NoError(t, err)
	id := c.ID.Hex()
	_, err = store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, mr.Exists("course:"+id))

	_, err = store.Update(ctx, id, course.Input{Title: ptr("New")})
	require.NoError(t, err)
	assert.False(t, mr.Exists("course:"+id))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	require.NoError(t, store.Delete(ctx, id))
	assert.False(t, mr.Exists("course:"+id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, course.ErrNotFound)
}

func TestCachedStoreNormalisesIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, inner, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Case")})
	require.NoError(t, err)
	lower := c.ID.Hex()
	upper := ""
	for _, r := range lower {
		if r >= 'a' && r <= 'f' {
			r -= 'a' - 'A'
		}
		upper += string(r)
	}

	_, err = store.Get(ctx, upper)
	require.NoError(t, err)
	_, err = store.Get(ctx, lower)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.getCalls())
	assert.Len(t, mr.Keys(), 1)
}

func TestCachedStoreInvalidIDSkipsCache(t *testing.T) {
	t.Parallel()
	mr, _, store := setupCache(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, course.ErrInvalidID)
	assert.Empty(t, mr.Keys())
}

func TestCachedStoreFallsThroughWhenRedisDown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, inner, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Resilient")})
	require.NoError(t, err)
	mr.Close()

	got, err := store.Get(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Resilient", got.Title)
	assert.Equal(t, 1, inner.getCalls())

	_, err = store.Update(ctx, c.ID.Hex(), course.Input{Price: ptr(5.0)})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, c.ID.Hex()))
}

func TestCachedStoreDiscardsCorruptEntries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, inner, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Corrupt")})
	require.NoError(t, err)
	require.NoError(t, mr.Set("course:"+c.ID.Hex(), "{not json"))

	got, err := store.Get(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Corrupt", got.Title)
	assert.Equal(t, 1, inner.getCalls())
}

func TestCachedStoreUpdateDuringReadIsNotCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inner := newPausedGetStore()
	mr, store := cacheOver(t, inner)

	c, err := store.Create(ctx, course.Input{Title: ptr("Old")})
	require.NoError(t, err)
	id := c.ID.Hex()

	readDuring(t, inner, store, id, func() {
		_, err := store.Update(ctx, id, course.Input{Title: ptr("New")})
		require.NoError(t, err)
	})

	assert.False(t, mr.Exists("course:"+id), "read from before the update must not be cached")
	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	cached, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", cached.Title)
	assert.Equal(t, 2, inner.getCalls(), "fresh document is cached once the race is over")
}

func TestCachedStoreDeleteDuringReadIsNotCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	inner := newPausedGetStore()
	mr, store := cacheOver(t, inner)

	c, err := store.Create(ctx, course.Input{Title: ptr("Doomed")})
	require.NoError(t, err)
	id := c.ID.Hex()

	readDuring(t, inner, store, id, func() {
		require.NoError(t, store.Delete(ctx, id))
	})

	assert.False(t, mr.Exists("course:"+id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, course.ErrNotFound)
}

func TestCachedStoreWritesBumpVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, _, store := setupCache(t)

	c, err := store.Create(ctx, course.Input{Title: ptr("Versioned")})
	require.NoError(t, err)
	id := c.ID.Hex()

	_, err = store.Update(ctx, id, course.Input{Title: ptr("Versioned again")})
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))

	v, err := mr.Get("course:ver:" + id)
	require.NoError(t, err)
	assert.Equal(t, "2", v)
	assert.Equal(t, 10*time.Minute, mr.TTL("course:ver:"+id))
}
