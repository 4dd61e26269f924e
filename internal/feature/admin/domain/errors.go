// Package domain defines errors for the authorization gate.
package domain

import "pokecard_backend/internal/shared/apperr"

// ErrForbidden is returned when the acting user is not an admin.
var ErrForbidden = apperr.New(apperr.Forbidden, "admin privileges required")
