// Package domain defines domain-level errors for the species catalog.
package domain

import "pokecard_backend/internal/shared/apperr"

var (
	// ErrSpeciesNotFound is returned when no catalog entry has the requested id.
	ErrSpeciesNotFound = apperr.New(apperr.NotFound, "pokemon not found")

	// ErrSpeciesExists is returned when creating an entry whose id is already used.
	ErrSpeciesExists = apperr.New(apperr.Validation, "pokemon already exists")

	// ErrInvalidSpeciesID is returned for ids that are not positive integers.
	ErrInvalidSpeciesID = apperr.New(apperr.Validation, "pokemon id must be a positive integer")

	// ErrMissingFrenchName is returned when an entry has no French name.
	ErrMissingFrenchName = apperr.New(apperr.Validation, "pokemon french name is required")

	// ErrUnknownType is returned when a type tag is not one of the known types.
	ErrUnknownType = apperr.New(apperr.Validation, "unknown pokemon type")
)
