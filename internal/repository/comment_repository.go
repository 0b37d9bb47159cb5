package repository

import (
	"context"
	"fmt"
	"time"

	commentDomain "github.com/sharespot/service-sharing/internal/domain/comment"
	"gorm.io/gorm"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ItemID     int64     `gorm:"index;not null"`
	AuthorID   int64     `gorm:"not null"`
	AuthorName string    `gorm:"size:255;not null"`
	Text       string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of the comment
// Repository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment and returns it with the assigned id.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) (*commentDomain.Comment, error) {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}
	return toDomainComment(model), nil
}

// FindByItem retrieves all comments for an item, oldest first.
func (r *GormCommentRepository) FindByItem(ctx context.Context, itemID int64) ([]*commentDomain.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments by item: %w", err)
	}
	comments := make([]*commentDomain.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments, nil
}

// --- Conversion helpers ---

func toCommentModel(c *commentDomain.Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text(),
		CreatedAt:  c.Created(),
	}
}

func toDomainComment(m *CommentModel) *commentDomain.Comment {
	return commentDomain.Reconstruct(m.ID, m.ItemID, m.AuthorID, m.AuthorName, m.Text, m.CreatedAt)
}
