package types

import "time"

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post represents a community post. Posts are owned by the user who wrote
// them and carry a set of tags through a many-to-many association.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// Title is the globally unique title of the post.
	Title string `json:"title" db:"title"`

	// Content contains the full post body.
	Content string `json:"content" db:"content"`

	// Status is the publication state, one of "draft", "published" or
	// "archived". Only published posts are visible to non-admins.
	Status string `json:"status" db:"status"`

	// UserID references the owning user. It is set at creation and
	// never reassigned.
	UserID int `json:"user_id" db:"user_id"`

	// AuthorUsername is the owner's username, populated on reads.
	AuthorUsername string `json:"author_username,omitempty" db:"author_username"`

	// Tags are the normalized (lowercase) tag names associated with the post.
	Tags []string `json:"tags" db:"tags"`

	// CoverKey is the object storage key of the post's cover image,
	// empty when no cover has been uploaded.
	CoverKey string `json:"cover_key,omitempty" db:"cover_key"`

	// CreatedAt is the timestamp at which the post was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the post.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Tag is a reusable label attached to posts. Tag names are unique and
// stored lowercase. Tags are created on first use and never deleted as
// part of post mutation.
type Tag struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// ValidPostStatus reports whether status is a known post status.
func ValidPostStatus(status string) bool {
	switch status {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}
