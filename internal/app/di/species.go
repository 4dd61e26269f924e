// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	catalogadapters "pokecard_backend/internal/feature/catalog/adapters"
	"pokecard_backend/internal/feature/catalog/usecase"
	"pokecard_backend/internal/platform/cache"
)

// NewSpeciesRepository creates a SpeciesRepository implementation.
// If Redis is available, the gorm repository is wrapped in a read-through cache.
// Otherwise, reads go straight to the database.
func NewSpeciesRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.SpeciesRepository {
	repo := catalogadapters.NewSpeciesRepository(db)
	if rdb != nil {
		return cache.NewCachingSpeciesRepository(rdb, ttl, repo, "species")
	}
	return repo
}
