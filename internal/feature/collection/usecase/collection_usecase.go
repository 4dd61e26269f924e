// Package usecase implements the collection ledger: adding and listing cards.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	authentity "pokecard_backend/internal/feature/auth/domain/entity"
	catalog "pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/collection/domain"
	"pokecard_backend/internal/feature/collection/domain/entity"
)

// UserFinder resolves the collection owner.
type UserFinder interface {
	// FindByID returns authdomain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*authentity.User, error)
}

// SpeciesCatalog is the part of the catalog store the ledger needs.
type SpeciesCatalog interface {
	FindByIDs(ctx context.Context, ids []int) (map[int]*catalog.Species, error)
	FindOrCreate(ctx context.Context, s *catalog.Species) (*catalog.Species, error)
}

// CardRepository stores card records.
type CardRepository interface {
	// Load returns the user's stored collection in whichever form it exists.
	Load(ctx context.Context, userID string) (*entity.Snapshot, error)
	// AppendCards stores cards and records their species in the legacy list in
	// one atomic write. It returns domain.ErrDuplicateCardID when a card id is taken.
	AppendCards(ctx context.Context, userID string, cards []entity.Card) error
}

// Recorder observes ledger activity.
type Recorder interface {
	CardsAdded(n int)
}

type nopRecorder struct{}

func (nopRecorder) CardsAdded(int) {}

// Options toggles optional ledger behaviour.
type Options struct {
	// CollectorCatalogWrite lets non-admin users create missing catalog
	// entries while adding cards. Admins can always do so.
	CollectorCatalogWrite bool
	// Recorder defaults to a no-op.
	Recorder Recorder
}

type collectionUsecase struct {
	users   UserFinder
	catalog SpeciesCatalog
	cards   CardRepository
	opts    Options

	now       func() time.Time
	newSuffix func() string
}

// NewCollectionUsecase creates a new collectionUsecase.
func NewCollectionUsecase(users UserFinder, species SpeciesCatalog, cards CardRepository, opts Options) *collectionUsecase {
	if opts.Recorder == nil {
		opts.Recorder = nopRecorder{}
	}
	return &collectionUsecase{
		users:     users,
		catalog:   species,
		cards:     cards,
		opts:      opts,
		now:       time.Now,
		newSuffix: func() string { return uuid.NewString()[:8] },
	}
}

// AddCards appends one card per incoming item to the user's collection.
// Unknown species are created from the item's species data when the user may
// write to the catalog. Either every card is stored or none is.
func (u *collectionUsecase) AddCards(ctx context.Context, userID string, incoming []entity.IncomingCard) ([]entity.AddedCard, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateIncoming(incoming); err != nil {
		return nil, err
	}
	if len(incoming) == 0 {
		return []entity.AddedCard{}, nil
	}

	species, err := u.resolveSpecies(ctx, user, incoming)
	if err != nil {
		return nil, err
	}

	now := u.now()
	cards := make([]entity.Card, 0, len(incoming))
	for _, in := range incoming {
		card := entity.Card{
			CardID:     strings.TrimSpace(in.CardID),
			UserID:     userID,
			SpeciesID:  in.SpeciesID,
			ObtainedAt: in.ObtainedAt,
		}
		if card.CardID == "" {
			card.CardID = u.newCardID(in.SpeciesID, now)
		}
		if card.ObtainedAt.IsZero() {
			card.ObtainedAt = now
		}
		cards = append(cards, card)
	}

	if err := u.cards.AppendCards(ctx, userID, cards); err != nil {
		return nil, err
	}
	u.opts.Recorder.CardsAdded(len(cards))

	out := make([]entity.AddedCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, entity.AddedCard{Card: c, Species: *species[c.SpeciesID]})
	}
	return out, nil
}

// resolveSpecies loads every referenced species, creating the missing ones.
func (u *collectionUsecase) resolveSpecies(ctx context.Context, user *authentity.User, incoming []entity.IncomingCard) (map[int]*catalog.Species, error) {
	ids := make([]int, 0, len(incoming))
	for _, in := range incoming {
		ids = append(ids, in.SpeciesID)
	}
	found, err := u.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var toCreate []*catalog.Species
	planned := map[int]bool{}
	for _, in := range incoming {
		if _, ok := found[in.SpeciesID]; ok || planned[in.SpeciesID] {
			continue
		}
		data := speciesData(incoming, in.SpeciesID)
		if data == nil {
			return nil, fmt.Errorf("%w: id %d", domain.ErrMissingSpeciesData, in.SpeciesID)
		}
		if err := data.Normalize(); err != nil {
			return nil, fmt.Errorf("pokemon %d: %w", in.SpeciesID, err)
		}
		planned[in.SpeciesID] = true
		toCreate = append(toCreate, data)
	}
	if len(toCreate) == 0 {
		return found, nil
	}

	if !user.IsAdmin && !u.opts.CollectorCatalogWrite {
		return nil, domain.ErrCatalogWriteForbidden
	}
	for _, s := range toCreate {
		stored, err := u.catalog.FindOrCreate(ctx, s)
		if err != nil {
			return nil, err
		}
		slog.Info("pokemon created from collection", "species_id", stored.SpeciesID, "user_id", user.ID)
		found[stored.SpeciesID] = stored
	}
	return found, nil
}

// ListCards returns the user's cards joined with the catalog.
// Cards whose species no longer exists are left out. Per-card collections
// carry the number of cards the user holds of each species; legacy ones do not.
func (u *collectionUsecase) ListCards(ctx context.Context, userID string) ([]entity.OwnedCard, error) {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	snap, err := u.cards.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch snap.Kind {
	case entity.SnapshotCards:
		return u.listPerCard(ctx, snap.Cards)
	case entity.SnapshotLegacy:
		return u.listLegacy(ctx, snap.LegacySpecies)
	default:
		return []entity.OwnedCard{}, nil
	}
}

func (u *collectionUsecase) listPerCard(ctx context.Context, cards []entity.Card) ([]entity.OwnedCard, error) {
	ids := make([]int, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.SpeciesID)
	}
	species, err := u.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]entity.OwnedCard, 0, len(cards))
	counts := map[int]int{}
	for _, c := range cards {
		s, ok := species[c.SpeciesID]
		if !ok {
			continue
		}
		counts[c.SpeciesID]++
		out = append(out, entity.OwnedCard{Species: *s, CardID: c.CardID, ObtainedAt: c.ObtainedAt})
	}
	for i := range out {
		out[i].Count = counts[out[i].Species.SpeciesID]
	}
	return out, nil
}

func (u *collectionUsecase) listLegacy(ctx context.Context, speciesIDs []int) ([]entity.OwnedCard, error) {
	species, err := u.catalog.FindByIDs(ctx, speciesIDs)
	if err != nil {
		return nil, err
	}
	out := make([]entity.OwnedCard, 0, len(speciesIDs))
	for _, id := range speciesIDs {
		if s, ok := species[id]; ok {
			out = append(out, entity.OwnedCard{Species: *s, Legacy: true})
		}
	}
	return out, nil
}

// newCardID builds "{speciesId}-{unixMillis}-{suffix}".
func (u *collectionUsecase) newCardID(speciesID int, at time.Time) string {
	return fmt.Sprintf("%d-%d-%s", speciesID, at.UnixMilli(), u.newSuffix())
}

func validateIncoming(incoming []entity.IncomingCard) error {
	seen := make(map[string]struct{}, len(incoming))
	for _, in := range incoming {
		if in.SpeciesID <= 0 {
			return domain.ErrInvalidSpeciesRef
		}
		id := strings.TrimSpace(in.CardID)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCardID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// speciesData returns a copy of the first species data supplied for id.
func speciesData(incoming []entity.IncomingCard, id int) *catalog.Species {
	for _, in := range incoming {
		if in.SpeciesID == id && in.Species != nil {
			s := *in.Species
			s.SpeciesID = id
			return &s
		}
	}
	return nil
}
