// Package adapters provides the gorm-backed species catalog.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pokecard_backend/internal/feature/catalog/domain"
	"pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/catalog/usecase"
	"pokecard_backend/internal/platform/db"
)

// updatableColumns are overwritten by Update and UpsertBatch.
var updatableColumns = []string{
	"name_french", "name_english", "name_japanese", "name_chinese",
	"types", "hp", "attack", "defense", "special_attack", "special_defense", "speed",
	"image", "updated_at",
}

type speciesGorm struct {
	db *gorm.DB
}

var _ usecase.SpeciesRepository = (*speciesGorm)(nil)

// NewSpeciesRepository creates a speciesGorm bound to db.
func NewSpeciesRepository(db *gorm.DB) *speciesGorm {
	return &speciesGorm{db: db}
}

func (r *speciesGorm) List(ctx context.Context) ([]entity.Species, error) {
	var rows []SpeciesModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Species, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToEntity())
	}
	return out, nil
}

func (r *speciesGorm) FindByID(ctx context.Context, id int) (*entity.Species, error) {
	var m SpeciesModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSpeciesNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByIDs skips ids that do not exist.
func (r *speciesGorm) FindByIDs(ctx context.Context, ids []int) (map[int]*entity.Species, error) {
	out := make(map[int]*entity.Species, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []SpeciesModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		out[rows[i].SpeciesID] = rows[i].ToEntity()
	}
	return out, nil
}

func (r *speciesGorm) Create(ctx context.Context, s *entity.Species) error {
	if err := r.db.WithContext(ctx).Create(FromEntity(s)).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return domain.ErrSpeciesExists
		}
		return err
	}
	return nil
}

func (r *speciesGorm) Update(ctx context.Context, s *entity.Species) error {
	res := r.db.WithContext(ctx).
		Model(&SpeciesModel{}).
		Where("id = ?", s.SpeciesID).
		Select(updatableColumns).
		Updates(FromEntity(s))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		_, err := r.FindByID(ctx, s.SpeciesID)
		return err
	}
	return nil
}

func (r *speciesGorm) Delete(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&SpeciesModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSpeciesNotFound
	}
	return nil
}

// FindOrCreate keeps the stored entry when one exists, so concurrent callers
// creating the same species all end up with the first writer's data.
func (r *speciesGorm) FindOrCreate(ctx context.Context, s *entity.Species) (*entity.Species, error) {
	tx := r.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(FromEntity(s)).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, s.SpeciesID)
}

func (r *speciesGorm) UpsertBatch(ctx context.Context, species []entity.Species) error {
	if len(species) == 0 {
		return nil
	}
	ms := make([]SpeciesModel, 0, len(species))
	for i := range species {
		ms = append(ms, *FromEntity(&species[i]))
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updatableColumns),
	}).Create(&ms).Error
}

func (r *speciesGorm) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&SpeciesModel{}).Error
}
