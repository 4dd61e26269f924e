package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/shared/ratelimiter"
)

// DefaultImportBatchSize is the number of entries written per batch.
const DefaultImportBatchSize = 100

// ImportUsecase bulk loads catalog entries, throttling writes between batches.
type ImportUsecase struct {
	repo      SpeciesRepository
	limiter   ratelimiter.Limiter
	batchSize int
}

// NewImportUsecase creates a new ImportUsecase. A non-positive batchSize uses DefaultImportBatchSize.
func NewImportUsecase(repo SpeciesRepository, limiter ratelimiter.Limiter, batchSize int) *ImportUsecase {
	if batchSize <= 0 {
		batchSize = DefaultImportBatchSize
	}
	return &ImportUsecase{repo: repo, limiter: limiter, batchSize: batchSize}
}

// Import validates every entry, optionally empties the catalog, then upserts
// the entries in batches. Nothing is written when any entry is invalid.
// It returns the number of entries written.
func (u *ImportUsecase) Import(ctx context.Context, species []entity.Species, replace bool) (int, error) {
	seen := make(map[int]struct{}, len(species))
	for i := range species {
		if err := species[i].Normalize(); err != nil {
			return 0, fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[species[i].SpeciesID]; dup {
			return 0, fmt.Errorf("entry %d: duplicate pokemon id %d", i, species[i].SpeciesID)
		}
		seen[species[i].SpeciesID] = struct{}{}
	}

	if replace {
		if err := u.repo.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("failed to clear catalog: %w", err)
		}
		slog.Info("catalog cleared")
	}

	written := 0
	for start := 0; start < len(species); start += u.batchSize {
		end := min(start+u.batchSize, len(species))
		if err := u.limiter.Wait(ctx); err != nil {
			return written, err
		}
		if err := u.repo.UpsertBatch(ctx, species[start:end]); err != nil {
			return written, fmt.Errorf("failed to write entries %d-%d: %w", start, end-1, err)
		}
		written = end
		slog.Info("catalog batch imported", "from", start, "to", end-1)
	}
	return written, nil
}
