package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
	bookingDomain "github.com/sharespot/service-sharing/internal/domain/booking"
	commentDomain "github.com/sharespot/service-sharing/internal/domain/comment"
	itemDomain "github.com/sharespot/service-sharing/internal/domain/item"
	userDomain "github.com/sharespot/service-sharing/internal/domain/user"
	"go.uber.org/zap"
)

// CreateItemRequest holds the data needed to list a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest holds a partial item update; nil fields are unchanged.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest holds the body of a new item comment.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are attached only when the viewer owns the item.
type ItemDTO struct {
	ID          int64              `json:"id"`
	OwnerID     int64              `json:"ownerId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Available   bool               `json:"available"`
	LastBooking *bookingDomain.Ref `json:"lastBooking,omitempty"`
	NextBooking *bookingDomain.Ref `json:"nextBooking,omitempty"`
	Comments    []CommentDTO       `json:"comments,omitempty"`
}

// CommentDTO is the response representation of an item comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemService implements use cases for the item catalog: CRUD, search,
// comments and the last/next booking summary attached to owner views.
type ItemService struct {
	items    itemDomain.Repository
	users    userDomain.Repository
	bookings bookingDomain.Repository
	comments commentDomain.Repository
	clock    domain.Clock
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	users userDomain.Repository,
	bookings bookingDomain.Repository,
	comments commentDomain.Repository,
	clock domain.Clock,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		clock:    clock,
		logger:   logger,
	}
}

// Create lists a new item for the given owner.
func (s *ItemService) Create(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	exists, err := s.users.ExistsByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.NewNotFoundError("user", ownerID)
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, *req.Available)
	if err != nil {
		return nil, err
	}

	saved, err := s.items.Save(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item listed",
		zap.Int64("item_id", saved.ID()),
		zap.Int64("owner_id", ownerID),
	)
	result := toItemDTO(saved)
	return &result, nil
}

// Update applies a partial update to an item. Only the owner may update;
// anyone else gets a not-found-style error.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewNotAuthorizedError(
			fmt.Sprintf("user %d is not the owner of item %d", ownerID, itemID))
	}

	it.Update(req.Name, req.Description, req.Available)

	updated, err := s.items.Update(ctx, it)
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated", zap.Int64("item_id", itemID))
	result := toItemDTO(updated)
	return &result, nil
}

// GetByID retrieves one item with its comments; the last/next booking
// summary is attached when the viewer is the owner.
func (s *ItemService) GetByID(ctx context.Context, itemID, viewerID int64) (*ItemDTO, error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	if err := s.attachSummary(ctx, &dto, it, viewerID); err != nil {
		return nil, err
	}
	if err := s.attachComments(ctx, &dto); err != nil {
		return nil, err
	}
	return &dto, nil
}

// ListByOwner retrieves the owner's items, each with comments and the
// last/next booking summary.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemDTO, error) {
	items, err := s.items.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
		if err := s.attachSummary(ctx, &dtos[i], it, ownerID); err != nil {
			return nil, err
		}
		if err := s.attachComments(ctx, &dtos[i]); err != nil {
			return nil, err
		}
	}
	return dtos, nil
}

// Search retrieves available items matching the text against name or
// description, case-insensitively. Empty text returns an empty result rather
// than everything.
func (s *ItemService) Search(ctx context.Context, text string) ([]ItemDTO, error) {
	if text == "" {
		return []ItemDTO{}, nil
	}

	items, err := s.items.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos, nil
}

// Summarize computes the last/next approved booking pair for an item.
// Summaries are owner-only: any other viewer gets an empty pair.
func (s *ItemService) Summarize(ctx context.Context, itemID, viewerID int64) (last, next *bookingDomain.Ref, err error) {
	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return s.summarize(ctx, it, viewerID)
}

// AddComment records feedback on an item. The author must have an APPROVED
// booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, req CreateCommentRequest) (*CommentDTO, error) {
	hasBooked, err := s.bookings.HasFinishedApprovedBooking(ctx, itemID, authorID, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if !hasBooked {
		return nil, domain.NewValidationError(
			fmt.Sprintf("user %d has not completed a booking of item %d", authorID, itemID))
	}

	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	cm, err := commentDomain.NewComment(itemID, authorID, author.Name(), req.Text, s.clock.Now())
	if err != nil {
		return nil, err
	}

	saved, err := s.comments.Save(ctx, cm)
	if err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("comment added",
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	result := toCommentDTO(saved)
	return &result, nil
}

func (s *ItemService) summarize(ctx context.Context, it *itemDomain.Item, viewerID int64) (last, next *bookingDomain.Ref, err error) {
	if !it.IsOwnedBy(viewerID) {
		return nil, nil, nil
	}
	bookings, err := s.bookings.FindByItemOrderByStartAsc(ctx, it.ID())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load item bookings: %w", err)
	}
	last, next = bookingDomain.LastAndNext(bookings, s.clock.Now())
	return last, next, nil
}

func (s *ItemService) attachSummary(ctx context.Context, dto *ItemDTO, it *itemDomain.Item, viewerID int64) error {
	last, next, err := s.summarize(ctx, it, viewerID)
	if err != nil {
		return err
	}
	dto.LastBooking = last
	dto.NextBooking = next
	return nil
}

func (s *ItemService) attachComments(ctx context.Context, dto *ItemDTO) error {
	comments, err := s.comments.FindByItem(ctx, dto.ID)
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	dtos := make([]CommentDTO, len(comments))
	for i, cm := range comments {
		dtos[i] = toCommentDTO(cm)
	}
	dto.Comments = dtos
	return nil
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}
}

func toCommentDTO(cm *commentDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         cm.ID(),
		Text:       cm.Text(),
		AuthorName: cm.AuthorName(),
		Created:    cm.Created(),
	}
}
