package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
	bookingDomain "github.com/sharespot/service-sharing/internal/domain/booking"
	itemDomain "github.com/sharespot/service-sharing/internal/domain/item"
	userDomain "github.com/sharespot/service-sharing/internal/domain/user"
	"github.com/sharespot/service-sharing/internal/events"
	"github.com/sharespot/service-sharing/internal/kafka"
	"go.uber.org/zap"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"itemId"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}

// ListRole selects which identity field a booking listing matches: the
// requesting user as booker, or as owner of the booked items.
type ListRole int

const (
	RoleBooker ListRole = iota
	RoleOwner
)

// EventPublisher publishes CloudEvents to a topic. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

// BookingService is the application service orchestrating the booking
// lifecycle: creation checks, approval transitions, reads and the temporal
// listing buckets. It holds no state of its own; everything lives in the
// repositories.
type BookingService struct {
	bookings bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	producer EventPublisher
	clock    domain.Clock
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	producer EventPublisher,
	clock domain.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		producer: producer,
		clock:    clock,
		logger:   logger,
	}
}

// Create validates and saves a new WAITING booking for the given booker.
// Checks run in a fixed order, each a distinct failure: interval, item
// existence, item availability, self-booking, booker existence. Overlap with
// existing bookings of the same item is deliberately not checked.
func (s *BookingService) Create(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	if !req.Start.Before(req.End) {
		return nil, domain.NewInvalidIntervalError(req.Start, req.End)
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewUnavailableError(it.ID())
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewSelfBookingError(it.ID(), bookerID)
	}

	exists, err := s.users.ExistsByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", bookerID)
	}

	bk, err := bookingDomain.NewBooking(req.ItemID, bookerID, req.Start, req.End)
	if err != nil {
		return nil, err
	}

	saved, err := s.bookings.Save(ctx, bk)
	if err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", saved.ID()),
		zap.Int64("item_id", saved.ItemID()),
		zap.Int64("booker_id", saved.BookerID()),
	)
	s.publishBookingEvent(ctx, events.BookingCreated, saved, it.OwnerID())

	result := toBookingDTO(saved)
	return &result, nil
}

// SetApproval approves or rejects a WAITING (or, for approval, a REJECTED)
// booking. Only the owner of the booked item may transition a booking; any
// other acting user gets a not-found-style error. A second approval of an
// APPROVED booking fails; rejection is always accepted.
func (s *BookingService) SetApproval(ctx context.Context, bookingID int64, approved bool, actingUserID int64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(actingUserID) {
		return nil, domain.NewNotAuthorizedError(
			fmt.Sprintf("user %d is not the owner of item %d", actingUserID, it.ID()))
	}

	eventType := events.BookingRejected
	if approved {
		if err := bk.Approve(); err != nil {
			return nil, err
		}
		eventType = events.BookingApproved
	} else {
		bk.Reject()
	}

	updated, err := s.bookings.Update(ctx, bk)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.logger.Info("booking status changed",
		zap.Int64("booking_id", updated.ID()),
		zap.String("status", updated.Status().String()),
	)
	s.publishBookingEvent(ctx, eventType, updated, it.OwnerID())

	result := toBookingDTO(updated)
	return &result, nil
}

// GetByID retrieves a single booking, readable only by its booker or the
// booked item's owner. Anyone else gets a not-found-style error.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID int64) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, bk.ItemID())
	if err != nil {
		return nil, err
	}
	if !bk.IsBookedBy(requesterID) && !it.IsOwnedBy(requesterID) {
		return nil, domain.NewNotAuthorizedError(
			fmt.Sprintf("user %d is neither booker nor item owner of booking %d", requesterID, bookingID))
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListByBooker returns the temporal bucket of bookings the user requested.
func (s *BookingService) ListByBooker(ctx context.Context, userID int64, state string, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	return s.list(ctx, userID, RoleBooker, state, from, size)
}

// ListByOwner returns the temporal bucket of bookings of the user's items.
func (s *BookingService) ListByOwner(ctx context.Context, userID int64, state string, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	return s.list(ctx, userID, RoleOwner, state, from, size)
}

// list dispatches on the requested state and returns the correctly ordered,
// correctly paginated bucket. The page size is shrunk against the role's
// total booking count, not the per-state count; for non-ALL states this can
// under- or over-shrink, which is the inherited paging arithmetic callers
// depend on.
func (s *BookingService) list(ctx context.Context, userID int64, role ListRole, state string, from, size int) (*domain.PaginatedResult[BookingDTO], error) {
	if from < 0 {
		return nil, domain.NewValidationError("from must not be negative")
	}
	if size < 1 {
		return nil, domain.NewValidationError("size must be positive")
	}

	exists, err := s.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", userID)
	}

	st, err := bookingDomain.ParseState(state)
	if err != nil {
		return nil, err
	}
	filter, err := filterForState(st, s.clock.Now())
	if err != nil {
		return nil, err
	}

	var total int64
	switch role {
	case RoleBooker:
		total, err = s.bookings.CountByBooker(ctx, userID)
	case RoleOwner:
		total, err = s.bookings.CountByItemOwner(ctx, userID)
	default:
		return nil, domain.NewValidationError("unknown listing role")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}

	if total < int64(from+size) {
		size = int(max(total-int64(from), 0))
	}

	var list []*bookingDomain.Booking
	if size == 0 {
		list = nil
	} else if role == RoleBooker {
		list, err = s.bookings.FindByBooker(ctx, userID, filter, from, size)
	} else {
		list, err = s.bookings.FindByItemOwner(ctx, userID, filter, from, size)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(list))
	for i, bk := range list {
		dtos[i] = toBookingDTO(bk)
	}
	return domain.NewPaginatedResult(dtos, total, from, size), nil
}

// filterForState maps a temporal bucket to its repository predicate. CURRENT
// is the only bucket ordered by id ascending; everything else is descending.
// The default arm keeps unknown values of the enum from silently matching
// everything.
func filterForState(st bookingDomain.State, now time.Time) (bookingDomain.Filter, error) {
	switch st {
	case bookingDomain.StateAll:
		return bookingDomain.Filter{}, nil
	case bookingDomain.StateCurrent:
		return bookingDomain.Filter{StartBefore: &now, EndAfter: &now, AscendingID: true}, nil
	case bookingDomain.StatePast:
		return bookingDomain.Filter{EndBefore: &now}, nil
	case bookingDomain.StateFuture:
		return bookingDomain.Filter{StartAfter: &now}, nil
	case bookingDomain.StateWaiting:
		waiting := bookingDomain.StatusWaiting
		return bookingDomain.Filter{Status: &waiting}, nil
	case bookingDomain.StateRejected:
		rejected := bookingDomain.StatusRejected
		return bookingDomain.Filter{Status: &rejected}, nil
	default:
		return bookingDomain.Filter{}, domain.NewUnknownStateError(st.String())
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:       bk.ID(),
		ItemID:   bk.ItemID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
		Status:   bk.Status().String(),
	}
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking, ownerID int64) {
	evt := events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.ItemID(),
		BookerID:   bk.BookerID(),
		OwnerID:    ownerID,
		Start:      bk.Start(),
		End:        bk.End(),
		Status:     bk.Status().String(),
		OccurredAt: s.clock.Now(),
	}

	cloudEvent, err := kafka.NewCloudEvent("service-sharing", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
