// Package dto defines the JSON shape of catalog entries.
package dto

import "pokecard_backend/internal/feature/catalog/domain/entity"

// NameDTO holds the localized names.
type NameDTO struct {
	French   string `json:"french"`
	English  string `json:"english"`
	Japanese string `json:"japanese"`
	Chinese  string `json:"chinese"`
}

// BaseDTO is the base stat block. Field names are capitalized on the wire.
type BaseDTO struct {
	HP             int `json:"HP"`
	Attack         int `json:"Attack"`
	Defense        int `json:"Defense"`
	SpecialAttack  int `json:"SpecialAttack"`
	SpecialDefense int `json:"SpecialDefense"`
	Speed          int `json:"Speed"`
}

// PokemonDTO is a catalog entry as sent and received by clients.
type PokemonDTO struct {
	ID    int      `json:"id"`
	Name  NameDTO  `json:"name"`
	Type  []string `json:"type"`
	Base  BaseDTO  `json:"base"`
	Image string   `json:"image"`
}

// ListRes is returned by GET /api/pokemons.
type ListRes struct {
	Types    []string     `json:"types"`
	Pokemons []PokemonDTO `json:"pokemons"`
}

// GetRes is returned by GET /api/pokemons/:id.
type GetRes struct {
	Pokemon PokemonDTO `json:"pokemon"`
}

// NewPokemonDTO converts an entity for output. Type is never null.
func NewPokemonDTO(s *entity.Species) PokemonDTO {
	types := s.Types
	if types == nil {
		types = []string{}
	}
	return PokemonDTO{
		ID: s.SpeciesID,
		Name: NameDTO{
			French:   s.Name.French,
			English:  s.Name.English,
			Japanese: s.Name.Japanese,
			Chinese:  s.Name.Chinese,
		},
		Type: types,
		Base: BaseDTO{
			HP:             s.Base.HP,
			Attack:         s.Base.Attack,
			Defense:        s.Base.Defense,
			SpecialAttack:  s.Base.SpecialAttack,
			SpecialDefense: s.Base.SpecialDefense,
			Speed:          s.Base.Speed,
		},
		Image: s.Image,
	}
}

// ToEntity converts client input to an entity. Validation happens in the usecase.
func (p PokemonDTO) ToEntity() entity.Species {
	return entity.Species{
		SpeciesID: p.ID,
		Name: entity.Name{
			French:   p.Name.French,
			English:  p.Name.English,
			Japanese: p.Name.Japanese,
			Chinese:  p.Name.Chinese,
		},
		Types: p.Type,
		Base: entity.BaseStats{
			HP:             p.Base.HP,
			Attack:         p.Base.Attack,
			Defense:        p.Base.Defense,
			SpecialAttack:  p.Base.SpecialAttack,
			SpecialDefense: p.Base.SpecialDefense,
			Speed:          p.Base.Speed,
		},
		Image: p.Image,
	}
}
