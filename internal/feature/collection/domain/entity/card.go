// Package entity defines the collection ledger's records.
package entity

import (
	"time"

	catalog "pokecard_backend/internal/feature/catalog/domain/entity"
)

// Card is one ownership record: a user holds one copy of a species.
type Card struct {
	CardID     string
	UserID     string
	SpeciesID  int
	ObtainedAt time.Time
}

// SnapshotKind tells which stored representation a collection uses.
type SnapshotKind int

const (
	// SnapshotEmpty means the user owns nothing.
	SnapshotEmpty SnapshotKind = iota
	// SnapshotCards means the user has per-card records.
	SnapshotCards
	// SnapshotLegacy means the user only has the older list of species references.
	SnapshotLegacy
)

// Snapshot is a user's stored collection. Only the field matching Kind is set.
type Snapshot struct {
	Kind          SnapshotKind
	Cards         []Card
	LegacySpecies []int
}

// OwnedCard is a card joined with its catalog entry, as listed to the owner.
// Entries read from a legacy collection have Legacy set and no card id,
// timestamp or count.
type OwnedCard struct {
	Species    catalog.Species
	CardID     string
	ObtainedAt time.Time
	Count      int
	Legacy     bool
}

// IncomingCard is one card a user asks to add.
// Species carries the data used to create the catalog entry when it does not exist.
type IncomingCard struct {
	SpeciesID  int
	Species    *catalog.Species
	ObtainedAt time.Time
	CardID     string
}

// AddedCard is a newly stored card joined with its catalog entry.
type AddedCard struct {
	Card    Card
	Species catalog.Species
}
