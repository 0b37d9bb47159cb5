package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
	bookingDomain "github.com/sharespot/service-sharing/internal/domain/booking"
	"gorm.io/gorm"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ItemID    int64     `gorm:"index;not null"`
	BookerID  int64     `gorm:"index;not null"`
	StartTime time.Time `gorm:"index;not null"`
	EndTime   time.Time `gorm:"index;not null"`
	Status    string    `gorm:"size:20;index;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Save persists a new booking and returns it with the assigned id.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}
	return toDomainBooking(model)
}

// Update persists a status change to an existing booking. No concurrency
// guard is applied between a caller's read and this write; a concurrent
// transition on the same booking can be lost.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) (*bookingDomain.Booking, error) {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ?", bk.ID()).
		Updates(map[string]interface{}{
			"status":     bk.Status().String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("booking", bk.ID())
	}
	return bk, nil
}

// FindByID retrieves a booking by its identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id)
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByBooker retrieves bookings requested by the given user.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID int64, f bookingDomain.Filter, offset, limit int) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).Where("bookings.booker_id = ?", bookerID)
	q = applyFilter(q, f)

	var models []BookingModel
	if err := q.Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by booker: %w", err)
	}
	return toDomainBookings(models)
}

// FindByItemOwner retrieves bookings of items owned by the given user.
func (r *GormBookingRepository) FindByItemOwner(ctx context.Context, ownerID int64, f bookingDomain.Filter, offset, limit int) ([]*bookingDomain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID)
	q = applyFilter(q, f)

	var models []BookingModel
	if err := q.Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by item owner: %w", err)
	}
	return toDomainBookings(models)
}

// FindByItemOrderByStartAsc retrieves every booking of an item, ordered by
// interval start ascending.
func (r *GormBookingRepository) FindByItemOrderByStartAsc(ctx context.Context, itemID int64) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("start_time ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by item: %w", err)
	}
	return toDomainBookings(models)
}

// HasFinishedApprovedBooking reports whether the user has an APPROVED
// booking of the item that ended before the given moment.
func (r *GormBookingRepository) HasFinishedApprovedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_time < ?",
			itemID, bookerID, bookingDomain.StatusApproved.String(), before).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// CountByBooker returns the user's total booking count, all states.
func (r *GormBookingRepository) CountByBooker(ctx context.Context, bookerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("booker_id = ?", bookerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings by booker: %w", err)
	}
	return count, nil
}

// CountByItemOwner returns the total count of bookings of the user's items.
func (r *GormBookingRepository) CountByItemOwner(ctx context.Context, ownerID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("items.owner_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count bookings by item owner: %w", err)
	}
	return count, nil
}

// applyFilter translates a booking Filter into WHERE clauses and ordering.
func applyFilter(q *gorm.DB, f bookingDomain.Filter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("bookings.status = ?", f.Status.String())
	}
	if f.StartBefore != nil {
		q = q.Where("bookings.start_time < ?", *f.StartBefore)
	}
	if f.StartAfter != nil {
		q = q.Where("bookings.start_time > ?", *f.StartAfter)
	}
	if f.EndBefore != nil {
		q = q.Where("bookings.end_time < ?", *f.EndBefore)
	}
	if f.EndAfter != nil {
		q = q.Where("bookings.end_time > ?", *f.EndAfter)
	}
	if f.AscendingID {
		return q.Order("bookings.id ASC")
	}
	return q.Order("bookings.id DESC")
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	now := time.Now().UTC()
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartTime: bk.Start(),
		EndTime:   bk.End(),
		Status:    bk.Status().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(m.ID, m.ItemID, m.BookerID, m.StartTime, m.EndTime, status), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
