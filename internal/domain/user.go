package domain

import "time"

// Role represents the access level of a user
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AuthProvider represents how the account was created
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an account of the car-wash dashboard
type User struct {
	ID           int64
	Username     string
	Email        *string
	FullName     *string
	ProfileImage *string
	Role         Role
	Provider     AuthProvider
	GoogleID     *string
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPassword returns true if the user can sign in with a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64 `validate:"gt=0"`
	Role   Role  `validate:"-"`
}

// IsAdmin returns true if the actor has the admin role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanAccess returns true if the actor may see or change a record owned by ownerID
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin() || a.UserID == ownerID
}

// OwnerScope returns the owner filter for list queries: nil for admins (everything),
// the actor's own ID otherwise
func (a Actor) OwnerScope() *int64 {
	if a.IsAdmin() {
		return nil
	}
	id := a.UserID
	return &id
}

// ProfileUpdate holds the optional fields of a profile edit; nil means unchanged
type ProfileUpdate struct {
	Username     *string
	Email        *string
	FullName     *string
	ProfileImage *string
}
