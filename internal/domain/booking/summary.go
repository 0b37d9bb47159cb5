package booking

import "time"

// Ref is a lightweight booking projection attached to item views as the
// "last" or "next" booking.
type Ref struct {
	ID       int64     `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	BookerID int64     `json:"bookerId"`
	Status   Status    `json:"status"`
}

func toRef(b *Booking) *Ref {
	return &Ref{
		ID:       b.ID(),
		Start:    b.Start(),
		End:      b.End(),
		BookerID: b.BookerID(),
		Status:   b.Status(),
	}
}

// LastAndNext picks, from an item's bookings ordered by start ascending, the
// most recently started approved booking and the one immediately after it.
//
// The scan keeps the last index whose start precedes now and defaults that
// index to 0 when nothing has started yet; the candidate at that index is
// only accepted as "last" if its start really precedes now. The index
// defaulting and the separate acceptance guard are both deliberate: dropping
// either changes which booking is reported when every booking is in the
// future.
func LastAndNext(orderedByStartAsc []*Booking, now time.Time) (last, next *Ref) {
	approved := make([]*Booking, 0, len(orderedByStartAsc))
	for _, b := range orderedByStartAsc {
		if b.Status() == StatusApproved {
			approved = append(approved, b)
		}
	}
	if len(approved) == 0 {
		return nil, nil
	}

	lastIdx := 0
	for i := range approved {
		if approved[i].Start().Before(now) {
			lastIdx = i
		}
	}

	if approved[lastIdx].Start().Before(now) {
		last = toRef(approved[lastIdx])
	}
	if nextIdx := lastIdx + 1; nextIdx < len(approved) {
		next = toRef(approved[nextIdx])
	}
	return last, next
}
