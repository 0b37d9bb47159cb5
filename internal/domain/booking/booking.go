package booking

import (
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
)

// Booking is the aggregate root for the booking domain: a reservation of one
// item for a time interval, owned by its booker and subject to approval by
// the item's owner.
type Booking struct {
	id       int64
	itemID   int64
	bookerID int64
	start    time.Time
	end      time.Time
	status   Status
}

// NewBooking creates a new Booking with status=WAITING. The id is zero until
// the store assigns one. The interval must be strictly start < end; an equal
// or inverted interval is rejected.
func NewBooking(itemID, bookerID int64, start, end time.Time) (*Booking, error) {
	if !start.Before(end) {
		return nil, domain.NewInvalidIntervalError(start, end)
	}
	return &Booking{
		itemID:   itemID,
		bookerID: bookerID,
		start:    start,
		end:      end,
		status:   StatusWaiting,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id, itemID, bookerID int64, start, end time.Time, status Status) *Booking {
	return &Booking{
		id:       id,
		itemID:   itemID,
		bookerID: bookerID,
		start:    start,
		end:      end,
		status:   status,
	}
}

// ID returns the store-assigned identifier, or zero for an unsaved booking.
func (b *Booking) ID() int64 { return b.id }

// ItemID returns the booked item's identifier.
func (b *Booking) ItemID() int64 { return b.itemID }

// BookerID returns the identifier of the user who requested the booking.
func (b *Booking) BookerID() int64 { return b.bookerID }

// Start returns the interval start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the interval end.
func (b *Booking) End() time.Time { return b.end }

// Status returns the current approval status.
func (b *Booking) Status() Status { return b.status }

// Approve transitions the booking to APPROVED. Re-approving an APPROVED
// booking is an error; approving a REJECTED booking is allowed.
func (b *Booking) Approve() error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return domain.NewAlreadyApprovedError(b.id)
	}
	b.status = StatusApproved
	return nil
}

// Reject transitions the booking to REJECTED. Rejecting is unconditional;
// re-rejecting a REJECTED booking is a no-op transition, not an error.
func (b *Booking) Reject() {
	b.status = StatusRejected
}

// IsBookedBy reports whether the given user requested this booking.
func (b *Booking) IsBookedBy(userID int64) bool {
	return b.bookerID == userID
}
