package adapters

import (
	"time"

	"pokecard_backend/internal/feature/collection/domain/entity"
)

// CardModel is one row per owned card. card_id is unique across all users.
type CardModel struct {
	ID         uint      `gorm:"primaryKey"`
	CardID     string    `gorm:"size:128;not null;uniqueIndex"`
	UserID     string    `gorm:"size:36;not null;index:idx_user_cards_user_obtained,priority:1"`
	SpeciesID  int       `gorm:"not null;index"`
	ObtainedAt time.Time `gorm:"not null;index:idx_user_cards_user_obtained,priority:2"`
	CreatedAt  time.Time
}

// TableName pins the table name.
func (CardModel) TableName() string {
	return "user_cards"
}

// CaseSensitiveColumns keeps card id uniqueness exact on every database.
func (CardModel) CaseSensitiveColumns() []string {
	return []string{"card_id"}
}

// LegacyEntryModel is one species reference of the older collection format.
// Position keeps insertion order; duplicates are allowed.
type LegacyEntryModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:36;not null;index:idx_legacy_user_position,priority:1"`
	SpeciesID int    `gorm:"not null"`
	Position  int    `gorm:"not null;index:idx_legacy_user_position,priority:2"`
	CreatedAt time.Time
}

// TableName pins the table name.
func (LegacyEntryModel) TableName() string {
	return "user_legacy_pokemons"
}

func cardToModel(c entity.Card) CardModel {
	return CardModel{
		CardID:     c.CardID,
		UserID:     c.UserID,
		SpeciesID:  c.SpeciesID,
		ObtainedAt: c.ObtainedAt,
	}
}

func (m *CardModel) toEntity() entity.Card {
	return entity.Card{
		CardID:     m.CardID,
		UserID:     m.UserID,
		SpeciesID:  m.SpeciesID,
		ObtainedAt: m.ObtainedAt,
	}
}
