// Package entity defines the catalog entry shared by every collection.
package entity

import (
	"fmt"
	"strings"

	"pokecard_backend/internal/feature/catalog/domain"
)

// KnownTypes lists every accepted type tag in canonical spelling.
var KnownTypes = []string{
	"Fire", "Water", "Grass", "Electric", "Ice", "Fighting",
	"Poison", "Ground", "Flying", "Psychic", "Bug", "Rock",
	"Ghost", "Dragon", "Dark", "Steel", "Fairy", "Normal",
}

var canonicalType = func() map[string]string {
	m := make(map[string]string, len(KnownTypes))
	for _, t := range KnownTypes {
		m[strings.ToLower(t)] = t
	}
	return m
}()

// Name holds the localized names of a species. French is mandatory.
type Name struct {
	French   string
	English  string
	Japanese string
	Chinese  string
}

// BaseStats is the base stat block of a species.
type BaseStats struct {
	HP             int
	Attack         int
	Defense        int
	SpecialAttack  int
	SpecialDefense int
	Speed          int
}

// Species is a catalog entry.
type Species struct {
	SpeciesID int
	Name      Name
	Types     []string
	Base      BaseStats
	Image     string
}

// Normalize validates s in place: the id must be positive, the French name
// present and every type known. Types are rewritten in canonical spelling.
func (s *Species) Normalize() error {
	if s.SpeciesID <= 0 {
		return domain.ErrInvalidSpeciesID
	}
	s.Name.French = strings.TrimSpace(s.Name.French)
	if s.Name.French == "" {
		return domain.ErrMissingFrenchName
	}
	types, err := NormalizeTypes(s.Types)
	if err != nil {
		return err
	}
	s.Types = types
	return nil
}

// NormalizeTypes maps each tag to its canonical spelling, case-insensitively.
func NormalizeTypes(types []string) ([]string, error) {
	out := make([]string, 0, len(types))
	for _, t := range types {
		c, ok := canonicalType[strings.ToLower(strings.TrimSpace(t))]
		if !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownType, t)
		}
		out = append(out, c)
	}
	return out, nil
}
