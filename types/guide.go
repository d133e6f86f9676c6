package types

import "time"

// Guide statuses.
const (
	GuideStatusDraft     = "draft"
	GuideStatusPublished = "published"
)

// Guide represents an editorial Linux guide.
// Guides are written by admins and targeted at a specific experience level.
type Guide struct {
	// ID is the unique identifier of the guide.
	ID int `json:"id" db:"id"`

	// Title is the human-readable name of the guide.
	Title string `json:"title" db:"title"`

	// Description contains the full guide body.
	Description string `json:"description" db:"description"`

	// Status is the publication state, "draft" or "published".
	// Drafts are only visible to admins.
	Status string `json:"status" db:"status"`

	// Level is the experience level the guide is written for.
	Level string `json:"level" db:"level"`

	// UserID references the owning user. It is set at creation and
	// never reassigned.
	UserID int `json:"user_id" db:"user_id"`

	// AuthorUsername is the owner's username, populated on reads.
	AuthorUsername string `json:"author_username,omitempty" db:"author_username"`

	// CreatedAt is the timestamp at which the guide was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the guide.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidGuideStatus reports whether status is a known guide status.
func ValidGuideStatus(status string) bool {
	switch status {
	case GuideStatusDraft, GuideStatusPublished:
		return true
	}
	return false
}
