package item

import (
	"github.com/sharespot/service-sharing/internal/domain"
)

// Item is an aggregate for a listed item: something a user offers for others
// to book. The available flag gates booking creation.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
}

// NewItem creates a new Item with validated fields. The id is zero until the
// store assigns one.
func NewItem(ownerID int64, name, description string, available bool) (*Item, error) {
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
	}
}

// ID returns the store-assigned identifier, or zero for an unsaved item.
func (i *Item) ID() int64 { return i.id }

// OwnerID returns the owning user's identifier.
func (i *Item) OwnerID() int64 { return i.ownerID }

// Name returns the item's display name.
func (i *Item) Name() string { return i.name }

// Description returns the item's description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item may currently be booked.
func (i *Item) Available() bool { return i.available }

// IsOwnedBy reports whether the given user owns the item.
func (i *Item) IsOwnedBy(userID int64) bool { return i.ownerID == userID }

// Update applies a partial update: nil fields keep their current value.
func (i *Item) Update(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
