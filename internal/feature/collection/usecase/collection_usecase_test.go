package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "pokecard_backend/internal/feature/auth/domain"
	authentity "pokecard_backend/internal/feature/auth/domain/entity"
	catalog "pokecard_backend/internal/feature/catalog/domain/entity"
	"pokecard_backend/internal/feature/collection/domain"
	"pokecard_backend/internal/feature/collection/domain/entity"
	"pokecard_backend/internal/shared/apperr"
)

type fakeUsers map[string]*authentity.User

func (f fakeUsers) FindByID(ctx context.Context, id string) (*authentity.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, authdomain.ErrUserNotFound
}

type fakeCatalog struct {
	byID    map[int]catalog.Species
	created []int
}

func newFakeCatalog(species ...catalog.Species) *fakeCatalog {
	f := &fakeCatalog{byID: map[int]catalog.Species{}}
	for _, s := range species {
		f.byID[s.SpeciesID] = s
	}
	return f
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []int) (map[int]*catalog.Species, error) {
	out := map[int]*catalog.Species{}
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out[id] = &s
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindOrCreate(ctx context.Context, s *catalog.Species) (*catalog.Species, error) {
	if existing, ok := f.byID[s.SpeciesID]; ok {
		return &existing, nil
	}
	f.byID[s.SpeciesID] = *s
	f.created = append(f.created, s.SpeciesID)
	cp := *s
	return &cp, nil
}

// fakeCards mirrors the gorm repository: globally unique card ids, legacy
// references appended once per species, all-or-nothing appends.
type fakeCards struct {
	cards  map[string][]entity.Card
	legacy map[string][]int
	used   map[string]bool
	err    error
}

func newFakeCards() *fakeCards {
	return &fakeCards{cards: map[string][]entity.Card{}, legacy: map[string][]int{}, used: map[string]bool{}}
}

func (f *fakeCards) Load(ctx context.Context, userID string) (*entity.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if cs := f.cards[userID]; len(cs) > 0 {
		return &entity.Snapshot{Kind: entity.SnapshotCards, Cards: cs}, nil
	}
	if ls := f.legacy[userID]; len(ls) > 0 {
		return &entity.Snapshot{Kind: entity.SnapshotLegacy, LegacySpecies: ls}, nil
	}
	return &entity.Snapshot{Kind: entity.SnapshotEmpty}, nil
}

func (f *fakeCards) AppendCards(ctx context.Context, userID string, cards []entity.Card) error {
	if f.err != nil {
		return f.err
	}
	for _, c := range cards {
		if f.used[c.CardID] {
			return domain.ErrDuplicateCardID
		}
	}
	for _, c := range cards {
		f.used[c.CardID] = true
		f.cards[userID] = append(f.cards[userID], c)
		present := false
		for _, id := range f.legacy[userID] {
			present = present || id == c.SpeciesID
		}
		if !present {
			f.legacy[userID] = append(f.legacy[userID], c.SpeciesID)
		}
	}
	return nil
}

type countingRecorder struct{ total int }

func (r *countingRecorder) CardsAdded(n int) { r.total += n }

var (
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	pikachu   = catalog.Species{SpeciesID: 25, Name: catalog.Name{French: "Pikachu"}, Types: []string{"Electric"}}
	bulbasaur = catalog.Species{SpeciesID: 1, Name: catalog.Name{French: "Bulbizarre"}, Types: []string{"Grass", "Poison"}}
)

type fixture struct {
	uc      *collectionUsecase
	catalog *fakeCatalog
	cards   *fakeCards
	rec     *countingRecorder
}

func newFixture(opts Options, species ...catalog.Species) *fixture {
	users := fakeUsers{
		"ash":   {ID: "ash", Username: "ash"},
		"oak":   {ID: "oak", Username: "oak", IsAdmin: true},
		"misty": {ID: "misty", Username: "misty"},
	}
	f := &fixture{catalog: newFakeCatalog(species...), cards: newFakeCards(), rec: &countingRecorder{}}
	opts.Recorder = f.rec
	f.uc = NewCollectionUsecase(users, f.catalog, f.cards, opts)
	f.uc.now = func() time.Time { return fixedNow }
	n := 0
	f.uc.newSuffix = func() string {
		n++
		return fmt.Sprintf("sfx%05d", n)
	}
	return f
}

func TestCollectionUsecase_AddTwiceCountsTwo(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{}, pikachu)

	first, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}})
	require.NoError(t, err)
	second, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}})
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].Card.CardID, second[0].Card.CardID)
	assert.Equal(t, "Pikachu", first[0].Species.Name.French)

	list, err := f.uc.ListCards(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, 25, c.Species.SpeciesID)
		assert.Equal(t, 2, c.Count)
		assert.False(t, c.Legacy)
	}
	assert.Equal(t, 2, f.rec.total)
}

func TestCollectionUsecase_CountIsPerSpecies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{}, pikachu, bulbasaur)

	_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}, {SpeciesID: 1}, {SpeciesID: 25}, {SpeciesID: 25}})
	require.NoError(t, err)

	list, err := f.uc.ListCards(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, list, 4)
	for _, c := range list {
		want := map[int]int{25: 3, 1: 1}[c.Species.SpeciesID]
		assert.Equal(t, want, c.Count, "species %d", c.Species.SpeciesID)
	}

	other, err := f.uc.ListCards(ctx, "misty")
	require.NoError(t, err)
	assert.Empty(t, other, "collections are per user")
}

func TestCollectionUsecase_GeneratedCardFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{}, pikachu)
	supplied := time.Date(2020, 5, 5, 0, 0, 0, 0, time.UTC)

	added, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{
		{SpeciesID: 25},
		{SpeciesID: 25, CardID: "  promo-001 ", ObtainedAt: supplied},
	})

	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("25-%d-sfx00001", fixedNow.UnixMilli()), added[0].Card.CardID)
	assert.Equal(t, fixedNow, added[0].Card.ObtainedAt)
	assert.Equal(t, "promo-001", added[1].Card.CardID)
	assert.Equal(t, supplied, added[1].Card.ObtainedAt)
	assert.Equal(t, "ash", added[1].Card.UserID)
}

func TestCollectionUsecase_ListFreshUserIsEmpty(t *testing.T) {
	list, err := newFixture(Options{}).uc.ListCards(context.Background(), "ash")

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCollectionUsecase_LegacyThenPerCard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{}, pikachu, bulbasaur)
	f.cards.legacy["ash"] = []int{1, 25, 1, 404}

	list, err := f.uc.ListCards(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, list, 3, "unresolved legacy reference is dropped")
	assert.Equal(t, []int{1, 25, 1}, []int{list[0].Species.SpeciesID, list[1].Species.SpeciesID, list[2].Species.SpeciesID})
	for _, c := range list {
		assert.True(t, c.Legacy)
		assert.Zero(t, c.Count)
		assert.Empty(t, c.CardID)
	}

	_, err = f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}})
	require.NoError(t, err)

	list, err = f.uc.ListCards(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Legacy)
	assert.Equal(t, 1, list[0].Count)
	assert.Equal(t, []int{1, 25, 1, 404}, f.cards.legacy["ash"], "species already referenced is not appended again")
}

func TestCollectionUsecase_DanglingCardsAreDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(Options{}, pikachu, bulbasaur)
	_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}, {SpeciesID: 1}, {SpeciesID: 1}})
	require.NoError(t, err)

	delete(f.catalog.byID, 1)

	list, err := f.uc.ListCards(ctx, "ash")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 25, list[0].Species.SpeciesID)
	assert.Equal(t, 1, list[0].Count)
}

func TestCollectionUsecase_ImplicitCatalogCreation(t *testing.T) {
	ctx := context.Background()
	mew := &catalog.Species{Name: catalog.Name{French: "Mew"}, Types: []string{"psychic"}}

	t.Run("admin may create", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: false})

		added, err := f.uc.AddCards(ctx, "oak", []entity.IncomingCard{{SpeciesID: 151, Species: mew}, {SpeciesID: 151}})

		require.NoError(t, err)
		assert.Len(t, added, 2)
		assert.Equal(t, []int{151}, f.catalog.created)
		assert.Equal(t, []string{"Psychic"}, f.catalog.byID[151].Types)
		assert.Equal(t, "Mew", added[1].Species.Name.French)
	})

	t.Run("collector may create when enabled", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: true})

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 151, Species: mew}})

		require.NoError(t, err)
		assert.Equal(t, []int{151}, f.catalog.created)
	})

	t.Run("collector is forbidden when disabled", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: false}, pikachu)

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}, {SpeciesID: 151, Species: mew}})

		assert.ErrorIs(t, err, domain.ErrCatalogWriteForbidden)
		assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))
		assert.Empty(t, f.catalog.created)
		assert.Empty(t, f.cards.cards["ash"], "no card of the request is stored")
	})

	t.Run("existing species ignores supplied data", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: false}, pikachu)
		fake := &catalog.Species{Name: catalog.Name{French: "Faux"}}

		added, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25, Species: fake}})

		require.NoError(t, err)
		assert.Equal(t, "Pikachu", added[0].Species.Name.French)
		assert.Empty(t, f.catalog.created)
	})

	t.Run("unknown species without data", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: true})

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 151}})

		assert.ErrorIs(t, err, domain.ErrMissingSpeciesData)
	})

	t.Run("invalid species data", func(t *testing.T) {
		f := newFixture(Options{CollectorCatalogWrite: true})
		bad := &catalog.Species{Name: catalog.Name{French: "Mew"}, Types: []string{"Cosmic"}}

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 151, Species: bad}})

		assert.Equal(t, apperr.Validation, apperr.KindOf(err))
		assert.Empty(t, f.catalog.created)
	})
}

func TestCollectionUsecase_AddCardsValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate card id in batch", func(t *testing.T) {
		f := newFixture(Options{}, pikachu)

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{
			{SpeciesID: 25, CardID: "same"},
			{SpeciesID: 25, CardID: "same"},
		})

		assert.ErrorIs(t, err, domain.ErrDuplicateCardID)
		assert.Empty(t, f.cards.cards["ash"])
	})

	t.Run("card id already stored for another user", func(t *testing.T) {
		f := newFixture(Options{}, pikachu)
		_, err := f.uc.AddCards(ctx, "misty", []entity.IncomingCard{{SpeciesID: 25, CardID: "promo"}})
		require.NoError(t, err)

		_, err = f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}, {SpeciesID: 25, CardID: "promo"}})

		assert.ErrorIs(t, err, domain.ErrDuplicateCardID)
		assert.Empty(t, f.cards.cards["ash"])
	})

	t.Run("non-positive species id", func(t *testing.T) {
		_, err := newFixture(Options{}).uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 0}})
		assert.ErrorIs(t, err, domain.ErrInvalidSpeciesRef)
	})

	t.Run("empty request adds nothing", func(t *testing.T) {
		f := newFixture(Options{})

		added, err := f.uc.AddCards(ctx, "ash", nil)

		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Zero(t, f.rec.total)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := newFixture(Options{}, pikachu).uc.AddCards(ctx, "ghost", []entity.IncomingCard{{SpeciesID: 25}})
		assert.ErrorIs(t, err, authdomain.ErrUserNotFound)

		_, err = newFixture(Options{}).uc.ListCards(ctx, "ghost")
		assert.ErrorIs(t, err, authdomain.ErrUserNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(Options{}, pikachu)
		f.cards.err = errors.New("deadlock")

		_, err := f.uc.AddCards(ctx, "ash", []entity.IncomingCard{{SpeciesID: 25}})
		assert.EqualError(t, err, "deadlock")

		_, err = f.uc.ListCards(ctx, "ash")
		assert.EqualError(t, err, "deadlock")
	})
}
