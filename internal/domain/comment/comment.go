package comment

import (
	"time"

	"github.com/sharespot/service-sharing/internal/domain"
)

// Comment is feedback left on an item by a user who previously completed an
// approved booking of it.
type Comment struct {
	id         int64
	itemID     int64
	authorID   int64
	authorName string
	text       string
	created    time.Time
}

// NewComment creates a new Comment. The id is zero until the store assigns one.
func NewComment(itemID, authorID int64, authorName, text string, created time.Time) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text is required")
	}
	return &Comment{
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    created,
	}, nil
}

// Reconstruct rebuilds a Comment from persistence data (no validation).
func Reconstruct(id, itemID, authorID int64, authorName, text string, created time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    created,
	}
}

// ID returns the store-assigned identifier, or zero for an unsaved comment.
func (c *Comment) ID() int64 { return c.id }

// ItemID returns the commented item's identifier.
func (c *Comment) ItemID() int64 { return c.itemID }

// AuthorID returns the comment author's user id.
func (c *Comment) AuthorID() int64 { return c.authorID }

// AuthorName returns the author's display name captured at write time.
func (c *Comment) AuthorName() string { return c.authorName }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// Created returns the creation timestamp.
func (c *Comment) Created() time.Time { return c.created }
