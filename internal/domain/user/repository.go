package user

import "context"

// Repository defines the persistence contract for users (the user directory).
type Repository interface {
	// Save persists a new user and returns it with the store-assigned id.
	Save(ctx context.Context, u *User) (*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) (*User, error)

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindAll retrieves every user, ordered by id.
	FindAll(ctx context.Context) ([]*User, error)

	// ExistsByID reports whether a user with the given id exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Delete removes a user by id.
	Delete(ctx context.Context, id int64) error
}
