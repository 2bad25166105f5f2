// Package model defines domain entities for the application.
package model

import "time"

// User is a registered account. The hello-world page only ever reads the
// number of users; the remaining fields exist for account administration.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
