// Package adapters provides the gorm-backed collection ledger.
package adapters

import (
	"context"

	"gorm.io/gorm"

	"pokecard_backend/internal/feature/collection/domain"
	"pokecard_backend/internal/feature/collection/domain/entity"
	"pokecard_backend/internal/feature/collection/usecase"
	"pokecard_backend/internal/platform/db"
)

type cardGorm struct {
	db *gorm.DB
}

var _ usecase.CardRepository = (*cardGorm)(nil)

// NewCardRepository creates a cardGorm bound to db.
func NewCardRepository(db *gorm.DB) *cardGorm {
	return &cardGorm{db: db}
}

// Load prefers per-card rows and falls back to the legacy list.
func (r *cardGorm) Load(ctx context.Context, userID string) (*entity.Snapshot, error) {
	var cards []CardModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("obtained_at ASC, id ASC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	if len(cards) > 0 {
		out := make([]entity.Card, 0, len(cards))
		for i := range cards {
			out = append(out, cards[i].toEntity())
		}
		return &entity.Snapshot{Kind: entity.SnapshotCards, Cards: out}, nil
	}

	var legacy []int
	if err := r.db.WithContext(ctx).
		Model(&LegacyEntryModel{}).
		Where("user_id = ?", userID).
		Order("position ASC, id ASC").
		Pluck("species_id", &legacy).Error; err != nil {
		return nil, err
	}
	if len(legacy) > 0 {
		return &entity.Snapshot{Kind: entity.SnapshotLegacy, LegacySpecies: legacy}, nil
	}
	return &entity.Snapshot{Kind: entity.SnapshotEmpty}, nil
}

// AppendCards inserts the card rows and the species not yet in the user's
// legacy list in one transaction. No existing row is rewritten.
func (r *cardGorm) AppendCards(ctx context.Context, userID string, cards []entity.Card) error {
	if len(cards) == 0 {
		return nil
	}
	rows := make([]CardModel, 0, len(cards))
	for _, c := range cards {
		c.UserID = userID
		rows = append(rows, cardToModel(c))
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rows).Error; err != nil {
			if db.IsDuplicateKey(err) {
				return domain.ErrDuplicateCardID
			}
			return err
		}
		return appendLegacy(tx, userID, cards)
	})
}

func appendLegacy(tx *gorm.DB, userID string, cards []entity.Card) error {
	var present []int
	if err := tx.Model(&LegacyEntryModel{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("species_id", &present).Error; err != nil {
		return err
	}
	seen := make(map[int]bool, len(present))
	for _, id := range present {
		seen[id] = true
	}

	var last struct{ Pos int }
	if err := tx.Model(&LegacyEntryModel{}).
		Select("COALESCE(MAX(position), -1) AS pos").
		Where("user_id = ?", userID).
		Scan(&last).Error; err != nil {
		return err
	}

	var entries []LegacyEntryModel
	for _, c := range cards {
		if seen[c.SpeciesID] {
			continue
		}
		seen[c.SpeciesID] = true
		last.Pos++
		entries = append(entries, LegacyEntryModel{UserID: userID, SpeciesID: c.SpeciesID, Position: last.Pos})
	}
	if len(entries) == 0 {
		return nil
	}
	return tx.Create(&entries).Error
}
