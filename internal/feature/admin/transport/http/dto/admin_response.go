// Package dto defines response bodies for the admin endpoints.
package dto

import authdto "pokecard_backend/internal/feature/auth/transport/http/dto"

// CheckAdminRes is returned by GET /auth/check-admin.
type CheckAdminRes struct {
	IsAdmin bool `json:"isAdmin"`
}

// PromoteRes is returned by both promotion endpoints.
type PromoteRes struct {
	Message string          `json:"message"`
	User    authdto.UserRes `json:"user"`
}
