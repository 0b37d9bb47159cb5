package application

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
	bookingDomain "github.com/sharespot/service-sharing/internal/domain/booking"
	commentDomain "github.com/sharespot/service-sharing/internal/domain/comment"
	itemDomain "github.com/sharespot/service-sharing/internal/domain/item"
	userDomain "github.com/sharespot/service-sharing/internal/domain/user"
	"github.com/sharespot/service-sharing/internal/kafka"
)

// In-memory fakes for the repository and publisher ports. They reproduce the
// ordering and filtering the real GORM repositories perform so service tests
// can assert listing semantics without a database.

type fakeUserRepo struct {
	seq   int64
	users map[int64]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*userDomain.User)}
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return nil, domain.NewConflictError("email " + u.Email() + " is already registered")
		}
	}
	r.seq++
	saved := userDomain.Reconstruct(r.seq, u.Name(), u.Email())
	r.users[r.seq] = saved
	return saved, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) (*userDomain.User, error) {
	if _, ok := r.users[u.ID()]; !ok {
		return nil, domain.NewNotFoundError("user", u.ID())
	}
	r.users[u.ID()] = u
	return u, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*userDomain.User, len(ids))
	for i, id := range ids {
		out[i] = r.users[id]
	}
	return out, nil
}

func (r *fakeUserRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) mustAdd(name, email string) *userDomain.User {
	u, err := userDomain.NewUser(name, email)
	if err != nil {
		panic(err)
	}
	saved, err := r.Save(context.Background(), u)
	if err != nil {
		panic(err)
	}
	return saved
}

type fakeItemRepo struct {
	seq   int64
	items map[int64]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*itemDomain.Item)}
}

func (r *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	r.seq++
	saved := itemDomain.Reconstruct(r.seq, it.OwnerID(), it.Name(), it.Description(), it.Available())
	r.items[r.seq] = saved
	return saved, nil
}

func (r *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) (*itemDomain.Item, error) {
	if _, ok := r.items[it.ID()]; !ok {
		return nil, domain.NewNotFoundError("item", it.ID())
	}
	r.items[it.ID()] = it
	return it, nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id int64) (*itemDomain.Item, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id)
	}
	return it, nil
}

func (r *fakeItemRepo) FindByOwner(_ context.Context, ownerID int64) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.IsOwnedBy(ownerID) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *fakeItemRepo) Search(_ context.Context, text string) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, it := range r.items {
		if !it.Available() {
			continue
		}
		if containsFold(it.Name(), text) || containsFold(it.Description(), text) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *fakeItemRepo) mustAdd(ownerID int64, name, description string, available bool) *itemDomain.Item {
	it, err := itemDomain.NewItem(ownerID, name, description, available)
	if err != nil {
		panic(err)
	}
	saved, err := r.Save(context.Background(), it)
	if err != nil {
		panic(err)
	}
	return saved
}

type fakeBookingRepo struct {
	seq      int64
	bookings map[int64]*bookingDomain.Booking
	items    *fakeItemRepo
}

func newFakeBookingRepo(items *fakeItemRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*bookingDomain.Booking), items: items}
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	r.seq++
	saved := bookingDomain.Reconstruct(r.seq, bk.ItemID(), bk.BookerID(), bk.Start(), bk.End(), bk.Status())
	r.bookings[r.seq] = saved
	return saved, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	if _, ok := r.bookings[bk.ID()]; !ok {
		return nil, domain.NewNotFoundError("booking", bk.ID())
	}
	r.bookings[bk.ID()] = bk
	return bk, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id)
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByBooker(_ context.Context, bookerID int64, f bookingDomain.Filter, offset, limit int) ([]*bookingDomain.Booking, error) {
	return r.query(func(bk *bookingDomain.Booking) bool { return bk.IsBookedBy(bookerID) }, f, offset, limit), nil
}

func (r *fakeBookingRepo) FindByItemOwner(_ context.Context, ownerID int64, f bookingDomain.Filter, offset, limit int) ([]*bookingDomain.Booking, error) {
	return r.query(func(bk *bookingDomain.Booking) bool { return r.ownedBy(bk, ownerID) }, f, offset, limit), nil
}

func (r *fakeBookingRepo) FindByItemOrderByStartAsc(_ context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.ItemID() == itemID {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().Before(out[j].Start()) })
	return out, nil
}

func (r *fakeBookingRepo) HasFinishedApprovedBooking(_ context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	for _, bk := range r.bookings {
		if bk.ItemID() == itemID && bk.IsBookedBy(bookerID) &&
			bk.Status() == bookingDomain.StatusApproved && bk.End().Before(before) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) CountByBooker(_ context.Context, bookerID int64) (int64, error) {
	var n int64
	for _, bk := range r.bookings {
		if bk.IsBookedBy(bookerID) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) CountByItemOwner(_ context.Context, ownerID int64) (int64, error) {
	var n int64
	for _, bk := range r.bookings {
		if r.ownedBy(bk, ownerID) {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookingRepo) ownedBy(bk *bookingDomain.Booking, ownerID int64) bool {
	it, ok := r.items.items[bk.ItemID()]
	return ok && it.IsOwnedBy(ownerID)
}

func (r *fakeBookingRepo) query(match func(*bookingDomain.Booking) bool, f bookingDomain.Filter, offset, limit int) []*bookingDomain.Booking {
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if match(bk) && matchesFilter(bk, f) {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if f.AscendingID {
			return out[i].ID() < out[j].ID()
		}
		return out[i].ID() > out[j].ID()
	})
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func matchesFilter(bk *bookingDomain.Booking, f bookingDomain.Filter) bool {
	if f.Status != nil && bk.Status() != *f.Status {
		return false
	}
	if f.StartBefore != nil && !bk.Start().Before(*f.StartBefore) {
		return false
	}
	if f.StartAfter != nil && !bk.Start().After(*f.StartAfter) {
		return false
	}
	if f.EndBefore != nil && !bk.End().Before(*f.EndBefore) {
		return false
	}
	if f.EndAfter != nil && !bk.End().After(*f.EndAfter) {
		return false
	}
	return true
}

func (r *fakeBookingRepo) mustAdd(itemID, bookerID int64, start, end time.Time, status bookingDomain.Status) *bookingDomain.Booking {
	r.seq++
	bk := bookingDomain.Reconstruct(r.seq, itemID, bookerID, start, end, status)
	r.bookings[r.seq] = bk
	return bk
}

type fakeCommentRepo struct {
	seq      int64
	comments map[int64][]*commentDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64][]*commentDomain.Comment)}
}

func (r *fakeCommentRepo) Save(_ context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	r.seq++
	saved := commentDomain.Reconstruct(r.seq, c.ItemID(), c.AuthorID(), c.AuthorName(), c.Text(), c.Created())
	r.comments[c.ItemID()] = append(r.comments[c.ItemID()], saved)
	return saved, nil
}

func (r *fakeCommentRepo) FindByItem(_ context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	return r.comments[itemID], nil
}

type publishedEvent struct {
	topic string
	event kafka.CloudEvent
}

type fakePublisher struct {
	published []publishedEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic string, event kafka.CloudEvent) error {
	p.published = append(p.published, publishedEvent{topic: topic, event: event})
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
