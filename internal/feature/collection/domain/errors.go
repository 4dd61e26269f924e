// Package domain defines domain-level errors for the collection ledger.
package domain

import "pokecard_backend/internal/shared/apperr"

var (
	// ErrDuplicateCardID is returned when a card id repeats inside a request or
	// is already used by any stored card.
	ErrDuplicateCardID = apperr.New(apperr.Validation, "duplicate card id")

	// ErrInvalidSpeciesRef is returned when an incoming card has no positive species id.
	ErrInvalidSpeciesRef = apperr.New(apperr.Validation, "each pokemon needs a positive id")

	// ErrMissingSpeciesData is returned when a species is unknown and the request
	// carries nothing to create it from.
	ErrMissingSpeciesData = apperr.New(apperr.Validation, "unknown pokemon and no pokemon data to create it")

	// ErrCatalogWriteForbidden is returned when adding cards would create catalog
	// entries and the caller may not write to the catalog.
	ErrCatalogWriteForbidden = apperr.New(apperr.Forbidden, "creating pokemons requires catalog write access")
)
