package booking

import (
	"context"
	"time"
)

// Filter narrows a listing query to one temporal or status predicate. Zero
// value means no filtering. Results are ordered by id descending unless
// AscendingID is set (the CURRENT bucket is the only ascending one).
type Filter struct {
	Status      *Status
	StartBefore *time.Time // start < t
	StartAfter  *time.Time // start > t
	EndBefore   *time.Time // end < t
	EndAfter    *time.Time // end > t
	AscendingID bool
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// Save persists a new booking and returns it with the store-assigned id.
	Save(ctx context.Context, bk *Booking) (*Booking, error)

	// Update persists a status change to an existing booking.
	Update(ctx context.Context, bk *Booking) (*Booking, error)

	// FindByID retrieves a booking by its identifier.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// FindByBooker retrieves bookings requested by the given user, filtered
	// and ordered per the Filter, with offset pagination.
	FindByBooker(ctx context.Context, bookerID int64, f Filter, offset, limit int) ([]*Booking, error)

	// FindByItemOwner retrieves bookings of items owned by the given user,
	// filtered and ordered per the Filter, with offset pagination.
	FindByItemOwner(ctx context.Context, ownerID int64, f Filter, offset, limit int) ([]*Booking, error)

	// FindByItemOrderByStartAsc retrieves every booking of an item, ordered
	// by interval start ascending.
	FindByItemOrderByStartAsc(ctx context.Context, itemID int64) ([]*Booking, error)

	// HasFinishedApprovedBooking reports whether the user has an APPROVED
	// booking of the item that ended before the given moment.
	HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)

	// CountByBooker returns the user's total booking count, all states.
	CountByBooker(ctx context.Context, bookerID int64) (int64, error)

	// CountByItemOwner returns the total count of bookings of the user's
	// items, all states.
	CountByItemOwner(ctx context.Context, ownerID int64) (int64, error)
}
