// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/catalog/usecase"
)

// DefaultTTL is used when no positive ttl is given.
const DefaultTTL = 10 * time.Minute

// CachingSpeciesRepository decorates a SpeciesRepository with a Redis
// read-through cache. Reads fill the cache; every write invalidates the
// affected keys after the inner write succeeds. A nil client disables caching.
type CachingSpeciesRepository struct {
	inner     usecase.SpeciesRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.SpeciesRepository = (*CachingSpeciesRepository)(nil)

// NewCachingSpeciesRepository decorates inner. If namespace is empty, it uses "species".
func NewCachingSpeciesRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SpeciesRepository, namespace string) *CachingSpeciesRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if namespace == "" {
		namespace = "species"
	}
	return &CachingSpeciesRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: safe(namespace),
	}
}

// List returns the whole catalog, cached under a single key.
func (c *CachingSpeciesRepository) List(ctx context.Context) ([]entity.Species, error) {
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()
	var out []entity.Species
	if c.get(ctx, key, &out) {
		return out, nil
	}

	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

// FindByID returns one entry. Misses are not cached.
func (c *CachingSpeciesRepository) FindByID(ctx context.Context, id int) (*entity.Species, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var s entity.Species
	if c.get(ctx, key, &s) {
		return &s, nil
	}

	found, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, found)
	return found, nil
}

// FindByIDs serves what it can from one MGET and loads the rest from inner.
func (c *CachingSpeciesRepository) FindByIDs(ctx context.Context, ids []int) (map[int]*entity.Species, error) {
	if c.rdb == nil || len(ids) == 0 {
		return c.inner.FindByIDs(ctx, ids)
	}

	unique := dedupe(ids)
	keys := make([]string, len(unique))
	for i, id := range unique {
		keys[i] = c.idKey(id)
	}

	out := make(map[int]*entity.Species, len(unique))
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Warn("species cache mget failed", "error", err)
		vals = make([]any, len(keys))
	}

	var missing []int
	for i, v := range vals {
		raw, ok := v.(string)
		if ok {
			var s entity.Species
			if err := json.Unmarshal([]byte(raw), &s); err == nil {
				out[unique[i]] = &s
				continue
			}
			_ = c.rdb.Del(ctx, keys[i]).Err()
		}
		missing = append(missing, unique[i])
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := c.inner.FindByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, id := range missing {
		if s, ok := loaded[id]; ok {
			out[id] = s
			c.set(ctx, c.idKey(id), s)
		}
	}
	return out, nil
}

func (c *CachingSpeciesRepository) Create(ctx context.Context, s *entity.Species) error {
	if err := c.inner.Create(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx, s.SpeciesID)
	return nil
}

func (c *CachingSpeciesRepository) Update(ctx context.Context, s *entity.Species) error {
	if err := c.inner.Update(ctx, s); err != nil {
		return err
	}
	c.invalidate(ctx, s.SpeciesID)
	return nil
}

func (c *CachingSpeciesRepository) Delete(ctx context.Context, id int) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// FindOrCreate always invalidates: the caller cannot tell whether a row was inserted.
func (c *CachingSpeciesRepository) FindOrCreate(ctx context.Context, s *entity.Species) (*entity.Species, error) {
	out, err := c.inner.FindOrCreate(ctx, s)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, s.SpeciesID)
	return out, nil
}

func (c *CachingSpeciesRepository) UpsertBatch(ctx context.Context, species []entity.Species) error {
	if err := c.inner.UpsertBatch(ctx, species); err != nil {
		return err
	}
	if len(species) == 0 {
		return nil
	}
	ids := make([]int, 0, len(species))
	for _, s := range species {
		ids = append(ids, s.SpeciesID)
	}
	c.invalidate(ctx, ids...)
	return nil
}

func (c *CachingSpeciesRepository) DeleteAll(ctx context.Context) error {
	if err := c.inner.DeleteAll(ctx); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("species cache flush failed", "error", err)
	}
	return nil
}

// get decodes key into dst. Corrupted entries are deleted.
func (c *CachingSpeciesRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("species cache read failed", "key", key, "error", err)
		}
		return false
	}
	if len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores v under key. Best effort.
func (c *CachingSpeciesRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops the list key and the keys of ids. Best effort.
func (c *CachingSpeciesRepository) invalidate(ctx context.Context, ids ...int) {
	if c.rdb == nil {
		return
	}
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, c.listKey())
	for _, id := range dedupe(ids) {
		keys = append(keys, c.idKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("species cache invalidation failed", "error", err)
	}
}

func (c *CachingSpeciesRepository) idKey(id int) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingSpeciesRepository) listKey() string {
	return c.namespace + ":list"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingSpeciesRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
