// Package usecase implements the species catalog operations.
package usecase

import (
	"context"

	"pokecard_backend/internal/feature/catalog/domain"
	"pokecard_backend/internal/feature/catalog/domain/entity"
)

// SpeciesRepository abstracts the catalog store.
// Following Go convention, the interface is defined by the consumer.
type SpeciesRepository interface {
	// List returns every entry ordered by species id.
	List(ctx context.Context) ([]entity.Species, error)
	// FindByID returns domain.ErrSpeciesNotFound when the id is unknown.
	FindByID(ctx context.Context, id int) (*entity.Species, error)
	// FindByIDs returns the entries that exist, keyed by species id.
	FindByIDs(ctx context.Context, ids []int) (map[int]*entity.Species, error)
	// Create returns domain.ErrSpeciesExists when the id is taken.
	Create(ctx context.Context, s *entity.Species) error
	// Update returns domain.ErrSpeciesNotFound when the id is unknown.
	Update(ctx context.Context, s *entity.Species) error
	// Delete returns domain.ErrSpeciesNotFound when the id is unknown.
	Delete(ctx context.Context, id int) error
	// FindOrCreate inserts s unless an entry with its id exists, then returns the stored entry.
	FindOrCreate(ctx context.Context, s *entity.Species) (*entity.Species, error)
	// UpsertBatch inserts or overwrites the given entries.
	UpsertBatch(ctx context.Context, species []entity.Species) error
	// DeleteAll empties the catalog.
	DeleteAll(ctx context.Context) error
}

// CatalogUsecase serves catalog reads and admin writes.
type CatalogUsecase struct {
	repo SpeciesRepository
}

// NewCatalogUsecase creates a new CatalogUsecase.
func NewCatalogUsecase(repo SpeciesRepository) *CatalogUsecase {
	return &CatalogUsecase{repo: repo}
}

// List returns the whole catalog.
func (u *CatalogUsecase) List(ctx context.Context) ([]entity.Species, error) {
	return u.repo.List(ctx)
}

// Get returns one entry.
func (u *CatalogUsecase) Get(ctx context.Context, id int) (*entity.Species, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidSpeciesID
	}
	return u.repo.FindByID(ctx, id)
}

// Create validates and stores a new entry.
func (u *CatalogUsecase) Create(ctx context.Context, s entity.Species) (*entity.Species, error) {
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	if err := u.repo.Create(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces the entry with the given id. The id in s is ignored.
func (u *CatalogUsecase) Update(ctx context.Context, id int, s entity.Species) (*entity.Species, error) {
	s.SpeciesID = id
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	if err := u.repo.Update(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes the entry with the given id and returns it.
// Cards that referenced it are dropped from collection listings.
func (u *CatalogUsecase) Delete(ctx context.Context, id int) (*entity.Species, error) {
	s, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return s, nil
}
