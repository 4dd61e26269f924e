// Package usecase implements the authorization gate: admin checks and promotion.
package usecase

import (
	"context"

	admindomain "pokecard_backend/internal/feature/admin/domain"
	"pokecard_backend/internal/feature/auth/domain/entity"
)

// UserRepository is the part of the credential store the gate needs.
type UserRepository interface {
	// FindByID returns authdomain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// SetAdmin sets is_admin without rewriting the rest of the record.
	SetAdmin(ctx context.Context, id string) error
}

type adminUsecase struct {
	users UserRepository
}

// NewAdminUsecase creates a new adminUsecase.
func NewAdminUsecase(users UserRepository) *adminUsecase {
	return &adminUsecase{users: users}
}

// CheckAdmin reports whether the user is an admin.
func (u *adminUsecase) CheckAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// RequireAdmin returns nil for admins, ErrForbidden for other users and
// ErrUserNotFound when the user does not exist.
func (u *adminUsecase) RequireAdmin(ctx context.Context, userID string) error {
	isAdmin, err := u.CheckAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return admindomain.ErrForbidden
	}
	return nil
}

// Promote grants admin to targetID on behalf of actingID.
// Promoting an admin again is a successful no-op.
func (u *adminUsecase) Promote(ctx context.Context, actingID, targetID string) (*entity.User, error) {
	if err := u.RequireAdmin(ctx, actingID); err != nil {
		return nil, err
	}
	if err := u.users.SetAdmin(ctx, targetID); err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, targetID)
}

// SelfPromote grants admin to the caller without any check.
// alreadyAdmin is true when nothing had to change.
func (u *adminUsecase) SelfPromote(ctx context.Context, userID string) (user *entity.User, alreadyAdmin bool, err error) {
	user, err = u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user.IsAdmin {
		return user, true, nil
	}
	if err := u.users.SetAdmin(ctx, userID); err != nil {
		return nil, false, err
	}
	user.IsAdmin = true
	return user, false, nil
}
