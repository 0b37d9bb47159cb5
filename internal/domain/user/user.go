package user

import (
	"strings"

	"github.com/sharespot/service-sharing/internal/domain"
)

// User is an aggregate for a registered user (the user directory).
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a new User with validated fields. The id is zero until the
// store assigns one.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// ID returns the store-assigned identifier, or zero for an unsaved user.
func (u *User) ID() int64 { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// Update applies a partial update: nil fields keep their current value.
func (u *User) Update(name, email *string) error {
	if email != nil && !strings.Contains(*email, "@") {
		return domain.NewValidationError("a valid email is required")
	}
	if name != nil {
		u.name = *name
	}
	if email != nil {
		u.email = *email
	}
	return nil
}
