package course

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/courseapi/pkg/logger"
)

// DefaultCacheTTL applies when NewCachedStore receives a non-positive TTL.
const DefaultCacheTTL = time.Minute

const (
	cacheKeyPrefix   = "course:"
	versionKeyPrefix = "course:ver:"

	// minVersionTTL keeps a version counter alive longer than any read-through
	// fill can take, so a fill never compares against an expired counter.
	minVersionTTL = 10 * time.Minute
)

// errStaleFill aborts a read-through fill that raced with a write.
var errStaleFill = errors.New("course changed while it was being cached")

// CachedStore is a read-through Redis cache in front of another Store.
// Only Get is cached; Update and Delete invalidate the entry. Redis failures
// are logged and never fail a request.
//
// Every write bumps a per-course version counter before dropping the entry.
// A Get miss records the counter before reading the wrapped store and only
// fills the cache if the counter is unchanged (checked under WATCH), so a
// document read before a concurrent write is never cached after it.
type CachedStore struct {
	Store
	client     redis.UniversalClient
	ttl        time.Duration
	versionTTL time.Duration
	log        *slog.Logger
}

// NewCachedStore wraps next. A nil log discards cache warnings.
func NewCachedStore(next Store, client redis.UniversalClient, ttl time.Duration, log *slog.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = logger.Noop()
	}
	return &CachedStore{
		Store:      next,
		client:     client,
		ttl:        ttl,
		versionTTL: max(minVersionTTL, 2*ttl),
		log:        log.With(logger.Component("course_cache")),
	}
}

// cacheKeys normalises id so that every spelling of an ObjectID maps to the
// same entry and version counter.
func cacheKeys(id string) (entry, version string, ok bool) {
	oid, err := ParseID(id)
	if err != nil {
		return "", "", false
	}
	return cacheKeyPrefix + oid.Hex(), versionKeyPrefix + oid.Hex(), true
}

func (s *CachedStore) Get(ctx context.Context, id string) (Course, error) {
	key, verKey, ok := cacheKeys(id)
	if !ok {
		return s.Store.Get(ctx, id)
	}

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var c Course
		if err := json.Unmarshal(raw, &c); err == nil {
			return c, nil
		}
		s.log.WarnContext(ctx, "Discarding undecodable cache entry", logger.CourseID(id))
	case !errors.Is(err, redis.Nil):
		s.log.WarnContext(ctx, "Course cache read failed", logger.CourseID(id), logger.Error(err))
	}

	seen, verErr := s.version(ctx, verKey)
	if verErr != nil {
		s.log.WarnContext(ctx, "Course cache read failed", logger.CourseID(id), logger.Error(verErr))
	}

	c, err := s.Store.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if verErr == nil {
		s.fill(ctx, key, verKey, seen, c)
	}
	return c, nil
}

func (s *CachedStore) Update(ctx context.Context, id string, in Input) (Course, error) {
	c, err := s.Store.Update(ctx, id, in)
	if err != nil {
		return Course{}, err
	}
	s.invalidate(ctx, id)
	return c, nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// version returns the write counter for a course; a missing counter is 0.
func (s *CachedStore) version(ctx context.Context, verKey string) (int64, error) {
	v, err := s.client.Get(ctx, verKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// fill caches c unless the course was written after seen was read.
func (s *CachedStore) fill(ctx context.Context, key, verKey string, seen int64, c Course) {
	raw, err := json.Marshal(c)
	if err != nil {
		return
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, verKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != seen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, s.ttl)
			return nil
		})
		return err
	}, verKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		s.log.DebugContext(ctx, "Skipped caching a course changed during read", logger.CourseID(c.ID.Hex()))
	default:
		s.log.WarnContext(ctx, "Course cache write failed", logger.CourseID(c.ID.Hex()), logger.Error(err))
	}
}

// invalidate bumps the version counter and drops the entry in one transaction.
func (s *CachedStore) invalidate(ctx context.Context, id string) {
	key, verKey, ok := cacheKeys(id)
	if !ok {
		return
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, verKey)
		pipe.Expire(ctx, verKey, s.versionTTL)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		s.log.WarnContext(ctx, "Course cache invalidation failed", logger.CourseID(id), logger.Error(err))
	}
}
