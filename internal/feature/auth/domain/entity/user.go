// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is a registered account. Portfolios are owned by a User.
type User struct {
	ID uint `gorm:"primaryKey"`

	// Email is unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash. Empty for accounts created through OAuth, which
	// cannot log in with a password.
	Password string `gorm:"size:255;not null;default:''"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPassword reports whether password login is possible for this account.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
