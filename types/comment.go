package types

import "time"

// Comment represents a user comment attached to exactly one of a guide or
// a post. The parent is discriminated by which of GuideID/PostID is
// non-nil; exactly one must be set.
type Comment struct {
	// ID is the unique identifier of the comment.
	ID int `json:"id" db:"id"`

	// Content is the comment body, non-empty after trimming.
	Content string `json:"content" db:"content"`

	// UserID references the comment author. Immutable after creation.
	UserID int `json:"user_id" db:"user_id"`

	// AuthorUsername is the author's username, populated on reads.
	AuthorUsername string `json:"author_username,omitempty" db:"author_username"`

	// GuideID is set when the comment is attached to a guide, nil otherwise.
	GuideID *int `json:"guide_id" db:"guide_id"`

	// PostID is set when the comment is attached to a post, nil otherwise.
	PostID *int `json:"post_id" db:"post_id"`

	// CreatedAt is the timestamp at which the comment was written.
	// Comments are never edited, so there is no UpdatedAt.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
