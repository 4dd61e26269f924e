// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered collector. Ownership of cards lives in the collection
// feature; this type only carries identity and credentials.
type User struct {
	// ID is a server-generated uuid. It is never taken from the caller.
	ID string `gorm:"primaryKey;size:36"`

	// Username is unique and case-sensitive.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is a bcrypt hash; plaintext is never stored.
	PasswordHash string `gorm:"size:255;not null"`

	IsAdmin bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CaseSensitiveColumns keeps username comparisons exact on every database.
func (User) CaseSensitiveColumns() []string {
	return []string{"username"}
}
