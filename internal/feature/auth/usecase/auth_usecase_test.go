package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pokecard_backend/internal/feature/auth/domain"
	"pokecard_backend/internal/feature/auth/domain/entity"
	jwtmw "pokecard_backend/internal/platform/jwt"
	"pokecard_backend/internal/shared/apperr"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	CreateFunc         func(ctx context.Context, user *entity.User) error
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
	FindByIDFunc       func(ctx context.Context, id string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = "generated-id"
	return nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

// memoryUserRepository is a small in-memory credential store.
type memoryUserRepository struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	nextID int
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{byID: map[string]*entity.User{}}
}

func (m *memoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memoryUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memoryUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrUserNotFound
}

// mockTokenIssuer is a func-field mock of TokenIssuer.
type mockTokenIssuer struct {
	GenerateTokenFunc func(userID string) (string, error)
	ValidateFunc      func(token string) (string, error)
}

func (m *mockTokenIssuer) GenerateToken(userID string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(userID)
	}
	return "mock-jwt-token", nil
}

func (m *mockTokenIssuer) Validate(token string) (string, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return "", jwtmw.ErrInvalidToken
}

func newTestUsecase(repo UserRepository, tokens TokenIssuer, opts Options) *authUsecase {
	uc := NewAuthUsecase(repo, tokens, opts)
	uc.hashCost = bcrypt.MinCost
	return uc
}

func newIssuer(t *testing.T) *jwtmw.Issuer {
	t.Helper()
	iss, err := jwtmw.NewIssuer("usecase-test-secret", time.Hour)
	require.NoError(t, err)
	return iss
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes the password and trims the username", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				assert.Equal(t, "ash", user.Username)
				assert.NotEqual(t, "password123", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
				user.ID = "id-1"
				return nil
			},
		}
		uc := newTestUsecase(repo, &mockTokenIssuer{}, Options{})

		res, err := uc.Register(ctx, RegisterInput{Username: "  ash ", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", res.Token)
		assert.Equal(t, "id-1", res.User.ID)
		assert.False(t, res.User.IsAdmin)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name     string
			opts     Options
			username string
			password string
			wantErr  error
		}{
			{"blank username", Options{}, "   ", "password123", domain.ErrInvalidUsername},
			{"password below default minimum", Options{}, "ash", "short", domain.ErrWeakPassword},
			{"empty password with minimum 1", Options{MinPasswordLength: 1}, "ash", "", domain.ErrWeakPassword},
			{"minimum counts characters, not bytes", Options{}, "ash", "ピカチュウ", domain.ErrWeakPassword},
			{"password over the size limit", Options{}, "ash", strings.Repeat("p", maxPasswordBytes+1), domain.ErrPasswordTooLong},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := newTestUsecase(&mockUserRepository{}, &mockTokenIssuer{}, tt.opts)

				_, err := uc.Register(ctx, RegisterInput{Username: tt.username, Password: tt.password})

				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperr.Validation, apperr.KindOf(err))
			})
		}
	})

	t.Run("minimum 1 accepts a one character password", func(t *testing.T) {
		uc := newTestUsecase(newMemoryUserRepository(), &mockTokenIssuer{}, Options{MinPasswordLength: 1})

		_, err := uc.Register(ctx, RegisterInput{Username: "ash", Password: "p"})

		assert.NoError(t, err)
	})

	t.Run("passwords longer than 72 bytes hash without error", func(t *testing.T) {
		uc := newTestUsecase(newMemoryUserRepository(), &mockTokenIssuer{}, Options{})

		_, err := uc.Register(ctx, RegisterInput{Username: "ash", Password: strings.Repeat("p", 73)})

		assert.NoError(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		uc := newTestUsecase(newMemoryUserRepository(), &mockTokenIssuer{}, Options{})

		_, err := uc.Register(ctx, RegisterInput{Username: "misty", Password: "password123"})
		require.NoError(t, err)
		_, err = uc.Register(ctx, RegisterInput{Username: "misty", Password: "password456"})

		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("repository failure", func(t *testing.T) {
		expectedErr := errors.New("database error")
		repo := &mockUserRepository{CreateFunc: func(ctx context.Context, user *entity.User) error { return expectedErr }}
		uc := newTestUsecase(repo, &mockTokenIssuer{}, Options{})

		_, err := uc.Register(ctx, RegisterInput{Username: "ash", Password: "password123"})

		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestAuthUsecase_Register_AdminGrant(t *testing.T) {
	ctx := context.Background()
	iss := newIssuer(t)

	repo := newMemoryUserRepository()
	admin := &entity.User{Username: "admin", PasswordHash: "x", IsAdmin: true}
	collector := &entity.User{Username: "collector", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, collector))

	adminToken, err := iss.GenerateToken(admin.ID)
	require.NoError(t, err)
	collectorToken, err := iss.GenerateToken(collector.ID)
	require.NoError(t, err)
	ghostToken, err := iss.GenerateToken("deleted-user")
	require.NoError(t, err)

	tests := []struct {
		name         string
		opts         Options
		requestAdmin bool
		token        string
		wantAdmin    bool
	}{
		{"admin token grants admin", Options{AllowAdminSignup: true}, true, adminToken, true},
		{"no admin requested", Options{AllowAdminSignup: true}, false, adminToken, false},
		{"no token declines", Options{AllowAdminSignup: true}, true, "", false},
		{"invalid token declines", Options{AllowAdminSignup: true}, true, "garbage", false},
		{"non-admin token declines", Options{AllowAdminSignup: true}, true, collectorToken, false},
		{"unknown user token declines", Options{AllowAdminSignup: true}, true, ghostToken, false},
		{"feature disabled declines", Options{AllowAdminSignup: false}, true, adminToken, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUsecase(repo, iss, tt.opts)

			res, err := uc.Register(ctx, RegisterInput{
				Username:     fmt.Sprintf("new-user-%d", i),
				Password:     "password123",
				RequestAdmin: tt.requestAdmin,
				BearerToken:  tt.token,
			})

			require.NoError(t, err, "registration must succeed even when the grant is declined")
			assert.Equal(t, tt.wantAdmin, res.User.IsAdmin)
		})
	}
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	testUser := &entity.User{ID: "id-1", Username: "ash", PasswordHash: string(hashedPassword)}

	findAsh := func(ctx context.Context, username string) (*entity.User, error) {
		if username == testUser.Username {
			return testUser, nil
		}
		return nil, domain.ErrUserNotFound
	}

	t.Run("successful login", func(t *testing.T) {
		tokens := &mockTokenIssuer{GenerateTokenFunc: func(userID string) (string, error) {
			assert.Equal(t, "id-1", userID)
			return "mock-jwt-token", nil
		}}
		uc := newTestUsecase(&mockUserRepository{FindByUsernameFunc: findAsh}, tokens, Options{})

		res, err := uc.Login(ctx, "ash", "password123")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", res.Token)
		assert.Equal(t, testUser, res.User)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		uc := newTestUsecase(&mockUserRepository{FindByUsernameFunc: findAsh}, &mockTokenIssuer{}, Options{})

		_, errUnknown := uc.Login(ctx, "gary", "password123")
		_, errWrong := uc.Login(ctx, "ash", "wrong-password")

		assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		storeErr := errors.New("connection reset")
		repo := &mockUserRepository{FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
			return nil, storeErr
		}}
		uc := newTestUsecase(repo, &mockTokenIssuer{}, Options{})

		_, err := uc.Login(ctx, "ash", "password123")

		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("token generation failure", func(t *testing.T) {
		tokens := &mockTokenIssuer{GenerateTokenFunc: func(userID string) (string, error) {
			return "", errors.New("failed to sign token")
		}}
		uc := newTestUsecase(&mockUserRepository{FindByUsernameFunc: findAsh}, tokens, Options{})

		_, err := uc.Login(ctx, "ash", "password123")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})
}

func TestAuthUsecase_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	iss := newIssuer(t)
	uc := newTestUsecase(newMemoryUserRepository(), iss, Options{})

	pairs := []struct{ username, password string }{
		{"ash", "pikachu-4ever"},
		{"Misty", "starmie!!"},
		{"professor oak", "p@ssw0rd with spaces"},
		// appending "x" below changes only bytes past bcrypt's 72 byte input
		{"brock", strings.Repeat("onix", 18) + "!"},
		{"gary", strings.Repeat("ラッタ", 40)},
	}

	for _, p := range pairs {
		registered, err := uc.Register(ctx, RegisterInput{Username: p.username, Password: p.password})
		require.NoError(t, err)

		loggedIn, err := uc.Login(ctx, p.username, p.password)
		require.NoError(t, err)

		userID, err := iss.Validate(loggedIn.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, userID)

		_, err = uc.Login(ctx, p.username, p.password+"x")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	}
}
