package comment

import "context"

// Repository defines the persistence contract for item comments.
type Repository interface {
	// Save persists a new comment and returns it with the store-assigned id.
	Save(ctx context.Context, c *Comment) (*Comment, error)

	// FindByItem retrieves all comments on an item, oldest first.
	FindByItem(ctx context.Context, itemID int64) ([]*Comment, error)
}
