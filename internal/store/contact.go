package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// ContactRepository handles persistence for contact form submissions.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact types.Contact) (types.Contact, error) {
	contact.CreatedAt = time.Now()

	const query = `
		INSERT INTO contacts (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		contact.Name,
		contact.Email,
		contact.Message,
		contact.CreatedAt,
	).Scan(&contact.ID); err != nil {
		return types.Contact{}, err
	}
	return contact, nil
}

// List returns contact submissions, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]types.Contact, error) {
	const query = `
		SELECT id, name, email, message, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := make([]types.Contact, 0, 8)
	for rows.Next() {
		var contact types.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.Name,
			&contact.Email,
			&contact.Message,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}
