// Package adapters provides the gorm-backed credential store.
package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adminusecase "pokecard_backend/internal/feature/admin/usecase"
	"pokecard_backend/internal/feature/auth/domain"
	"pokecard_backend/internal/feature/auth/domain/entity"
	"pokecard_backend/internal/feature/auth/usecase"
	"pokecard_backend/internal/platform/db"
)

// userGorm is the gorm implementation of the user repository.
type userGorm struct {
	db *gorm.DB
}

var (
	_ usecase.UserRepository      = (*userGorm)(nil)
	_ adminusecase.UserRepository = (*userGorm)(nil)
)

// NewUserRepository creates a userGorm bound to db.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// Create inserts u with a freshly generated id, overwriting whatever id it carried.
// A duplicate username yields domain.ErrUsernameTaken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	u.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return domain.ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindByUsername returns the user with the exact (case-sensitive) username.
// The comparison is repeated in Go for databases whose collation folds case.
func (r *userGorm) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := r.first(ctx, "username = ?", username)
	if err != nil {
		return nil, err
	}
	if u.Username != username {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// FindByID returns the user with the given id.
func (r *userGorm) FindByID(ctx context.Context, id string) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

// SetAdmin flags the user as admin in a single UPDATE.
func (r *userGorm) SetAdmin(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", id).
		Update("is_admin", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// mysql reports 0 affected rows when the value is unchanged
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *userGorm) first(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
