package domain

import "strings"

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	PasswordHash string   `json:"-"`
}

// Actor is the signed-in identity a command runs on behalf of.
type Actor struct {
	ID   string
	Name string
	Role UserRole
}

func (a Actor) SignedIn() bool {
	return a.ID != "" && a.Role.Valid()
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func ActorFor(u User) Actor {
	return Actor{ID: u.ID, Name: u.Name, Role: u.Role}
}

// NormalizeEmail is the matching rule for emails in the snapshot and the store.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
