package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokecard_backend/internal/feature/catalog/domain"
	"pokecard_backend/internal/shared/apperr"
)

func TestSpecies_Normalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		species   Species
		wantErr   error
		wantTypes []string
	}{
		{
			name:      "canonicalizes types",
			species:   Species{SpeciesID: 25, Name: Name{French: " Pikachu "}, Types: []string{"electric"}},
			wantTypes: []string{"Electric"},
		},
		{
			name:      "no types is fine",
			species:   Species{SpeciesID: 132, Name: Name{French: "Métamorph"}},
			wantTypes: []string{},
		},
		{
			name:    "zero id",
			species: Species{Name: Name{French: "Bulbizarre"}},
			wantErr: domain.ErrInvalidSpeciesID,
		},
		{
			name:    "missing french name",
			species: Species{SpeciesID: 1, Name: Name{English: "Bulbasaur"}},
			wantErr: domain.ErrMissingFrenchName,
		},
		{
			name:    "unknown type",
			species: Species{SpeciesID: 1, Name: Name{French: "Bulbizarre"}, Types: []string{"Grass", "Plasma"}},
			wantErr: domain.ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.species
			err := s.Normalize()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperr.Validation, apperr.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTypes, s.Types)
		})
	}
}

func TestNormalizeTypes_AllKnown(t *testing.T) {
	t.Parallel()

	for _, typ := range KnownTypes {
		got, err := NormalizeTypes([]string{typ, "  " + typ + " "})
		require.NoError(t, err)
		assert.Equal(t, []string{typ, typ}, got)
	}
}
