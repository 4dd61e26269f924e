package dto

import "pokecard_backend/internal/feature/auth/domain/entity"

// UserRes is the public view of a user. The password hash never leaves the server.
type UserRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// AuthRes is returned by register and login.
type AuthRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// NewUserRes converts a user entity to its public view.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}
