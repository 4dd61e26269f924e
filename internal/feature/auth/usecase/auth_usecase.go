// Package usecase implements registration and login.
package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/blake2b"

	"pokecard_backend/internal/feature/auth/domain"
	"pokecard_backend/internal/feature/auth/domain/entity"
)

const (
	// DefaultMinPasswordLength is used when Options.MinPasswordLength is not positive.
	DefaultMinPasswordLength = 8

	// maxPasswordBytes bounds the input hashed per request.
	maxPasswordBytes = 1024

	// bcryptInputLimit is the number of bytes bcrypt reads from its input.
	bcryptInputLimit = 72

	// dummyHash is compared against when the username does not exist so that
	// login timing does not reveal which usernames are registered.
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository abstracts the credential store.
// Following Go convention, the interface is defined by the consumer.
type UserRepository interface {
	// Create persists a new user and assigns its id.
	// It returns domain.ErrUsernameTaken when the username is in use.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns domain.ErrUserNotFound when no user matches.
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

// TokenIssuer issues and validates bearer tokens.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
	Validate(token string) (string, error)
}

// Options toggles optional registration behaviour.
type Options struct {
	// AllowAdminSignup lets an existing admin create another admin by sending
	// isAdmin=true together with their own token.
	AllowAdminSignup bool
	// MinPasswordLength is counted in characters. 1 only requires a non-empty password.
	MinPasswordLength int
}

// RegisterInput is the data needed to register a user.
type RegisterInput struct {
	Username     string
	Password     string
	RequestAdmin bool
	// BearerToken is the caller's token, if any. Only consulted when RequestAdmin is set.
	BearerToken string
}

// Result is returned by Register and Login.
type Result struct {
	Token string
	User  *entity.User
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users    UserRepository
	tokens   TokenIssuer
	opts     Options
	hashCost int
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, tokens TokenIssuer, opts Options) *authUsecase {
	if opts.MinPasswordLength <= 0 {
		opts.MinPasswordLength = DefaultMinPasswordLength
	}
	return &authUsecase{
		users:    users,
		tokens:   tokens,
		opts:     opts,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register creates a user with a hashed password and returns a token for it.
// The admin flag is granted only when RequestAdmin is set, admin signup is
// enabled and BearerToken belongs to a current admin; otherwise the user is
// created as a regular collector and registration still succeeds.
func (u *authUsecase) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.ErrInvalidUsername
	}
	if in.Password == "" || utf8.RuneCountInString(in.Password) < u.opts.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword(bcryptInput(in.Password), u.hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: string(hashed),
		IsAdmin:      in.RequestAdmin && u.callerIsAdmin(ctx, in.BearerToken),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Result{Token: token, User: user}, nil
}

// callerIsAdmin reports whether token belongs to an existing admin.
// Any failure declines the privilege instead of failing registration.
func (u *authUsecase) callerIsAdmin(ctx context.Context, token string) bool {
	if !u.opts.AllowAdminSignup || token == "" {
		return false
	}
	callerID, err := u.tokens.Validate(token)
	if err != nil {
		return false
	}
	caller, err := u.users.FindByID(ctx, callerID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			slog.Warn("admin signup check failed", "error", err, "caller_id", callerID)
		}
		return false
	}
	return caller.IsAdmin
}

// Login authenticates the user and returns a token.
// bcrypt runs even for unknown usernames and every failure is reported as
// domain.ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, username, password string) (*Result, error) {
	user, err := u.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), bcryptInput(password))

	if err != nil || compareErr != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Result{Token: token, User: user}, nil
}

// bcryptInput returns the bytes handed to bcrypt. Passwords longer than bcrypt
// reads are digested first so every byte counts and hashing never fails on length.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptInputLimit {
		return []byte(password)
	}
	sum := blake2b.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
