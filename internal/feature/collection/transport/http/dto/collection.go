// Package dto defines request and response bodies for the collection endpoints.
package dto

import (
	"time"

	catalogdto "pokecard_backend/internal/feature/catalog/transport/http/dto"
	"pokecard_backend/internal/feature/collection/domain/entity"
)

// MessageCardsAdded is the message of a successful add.
const MessageCardsAdded = "pokemons added successfully"

// AddPokemonItem is one card to add. name, type, base and image describe the
// species and are only used when it is missing from the catalog.
type AddPokemonItem struct {
	ID           int                 `json:"id"`
	Name         *catalogdto.NameDTO `json:"name"`
	Type         []string            `json:"type"`
	Base         *catalogdto.BaseDTO `json:"base"`
	Image        string              `json:"image"`
	CollectionID string              `json:"collectionId"`
	AddedAt      *time.Time          `json:"addedAt"`
}

// AddPokemonsReq is the body of POST /auth/add-pokemons.
type AddPokemonsReq struct {
	Pokemons []AddPokemonItem `json:"pokemons" binding:"required"`
}

// ToIncoming converts the request for the usecase.
func (r AddPokemonsReq) ToIncoming() []entity.IncomingCard {
	out := make([]entity.IncomingCard, 0, len(r.Pokemons))
	for _, p := range r.Pokemons {
		in := entity.IncomingCard{SpeciesID: p.ID, CardID: p.CollectionID}
		if p.AddedAt != nil {
			in.ObtainedAt = *p.AddedAt
		}
		if p.Name != nil {
			pd := catalogdto.PokemonDTO{ID: p.ID, Name: *p.Name, Type: p.Type, Image: p.Image}
			if p.Base != nil {
				pd.Base = *p.Base
			}
			s := pd.ToEntity()
			in.Species = &s
		}
		out = append(out, in)
	}
	return out
}

// OwnedCardRes is one entry of GET /auth/my-pokemons: the species fields plus
// the card fields. Legacy entries carry only the species fields.
type OwnedCardRes struct {
	catalogdto.PokemonDTO
	CollectionID string     `json:"collectionId,omitempty"`
	AddedAt      *time.Time `json:"addedAt,omitempty"`
	Count        int        `json:"count,omitempty"`
}

// NewOwnedCardsRes converts listed cards. The result is never nil.
func NewOwnedCardsRes(cards []entity.OwnedCard) []OwnedCardRes {
	out := make([]OwnedCardRes, 0, len(cards))
	for i := range cards {
		c := &cards[i]
		res := OwnedCardRes{PokemonDTO: catalogdto.NewPokemonDTO(&c.Species)}
		if !c.Legacy {
			at := c.ObtainedAt
			res.CollectionID = c.CardID
			res.AddedAt = &at
			res.Count = c.Count
		}
		out = append(out, res)
	}
	return out
}

// AddedCardRes is one stored card in the add response.
type AddedCardRes struct {
	PokemonID    int                   `json:"pokemonId"`
	ObtainedAt   time.Time             `json:"obtainedAt"`
	CollectionID string                `json:"collectionId"`
	Pokemon      catalogdto.PokemonDTO `json:"pokemon"`
}

// AddPokemonsRes is the body returned by POST /auth/add-pokemons.
type AddPokemonsRes struct {
	Message    string         `json:"message"`
	CardsAdded int            `json:"cardsAdded"`
	Cards      []AddedCardRes `json:"cards"`
}

// NewAddPokemonsRes converts the usecase result.
func NewAddPokemonsRes(added []entity.AddedCard) AddPokemonsRes {
	cards := make([]AddedCardRes, 0, len(added))
	for i := range added {
		a := &added[i]
		cards = append(cards, AddedCardRes{
			PokemonID:    a.Card.SpeciesID,
			ObtainedAt:   a.Card.ObtainedAt,
			CollectionID: a.Card.CardID,
			Pokemon:      catalogdto.NewPokemonDTO(&a.Species),
		})
	}
	return AddPokemonsRes{Message: MessageCardsAdded, CardsAdded: len(cards), Cards: cards}
}
