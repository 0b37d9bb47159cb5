package item

import "context"

// Repository defines the persistence contract for items (the item catalog).
type Repository interface {
	// Save persists a new item and returns it with the store-assigned id.
	Save(ctx context.Context, it *Item) (*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, it *Item) (*Item, error)

	// FindByID retrieves an item by its identifier.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwner retrieves all items owned by the given user, ordered by id.
	FindByOwner(ctx context.Context, ownerID int64) ([]*Item, error)

	// Search retrieves available items whose name or description contains the
	// text, case-insensitively.
	Search(ctx context.Context, text string) ([]*Item, error)
}
