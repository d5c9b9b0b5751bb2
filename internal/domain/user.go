package domain

import "time"

// User is the domain model for people who open tickets. There is no staff
// subject in this system; every authenticated caller is a User.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy safe to attach to a request context or response.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
