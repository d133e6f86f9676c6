package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// GuideRepository handles persistence for guides.
type GuideRepository struct {
	db *sql.DB
}

func NewGuideRepository(db *sql.DB) *GuideRepository {
	return &GuideRepository{db: db}
}

const guideColumns = `
	g.id, g.title, g.description, g.status, g.level, g.user_id, u.username,
	g.created_at, g.updated_at`

// List returns guides joined with their author. When onlyPublished is set,
// drafts are filtered out.
func (r *GuideRepository) List(ctx context.Context, onlyPublished bool) ([]types.Guide, error) {
	query := `
		SELECT ` + guideColumns + `
		FROM guides g
		JOIN users u ON u.id = g.user_id`
	if onlyPublished {
		query += `
		WHERE g.status = 'published'`
	}
	query += `
		ORDER BY g.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guides := make([]types.Guide, 0, 8)
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, guide)
	}
	return guides, rows.Err()
}

// ListByLevel returns published guides at the given experience level.
func (r *GuideRepository) ListByLevel(ctx context.Context, level string) ([]types.Guide, error) {
	const query = `
		SELECT ` + guideColumns + `
		FROM guides g
		JOIN users u ON u.id = g.user_id
		WHERE g.status = 'published' AND g.level = $1
		ORDER BY g.id`
	rows, err := r.db.QueryContext(ctx, query, level)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guides := make([]types.Guide, 0, 8)
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, guide)
	}
	return guides, rows.Err()
}

func (r *GuideRepository) Get(ctx context.Context, id int, onlyPublished bool) (types.Guide, error) {
	query := `
		SELECT ` + guideColumns + `
		FROM guides g
		JOIN users u ON u.id = g.user_id
		WHERE g.id = $1`
	if onlyPublished {
		query += ` AND g.status = 'published'`
	}
	guide, err := scanGuide(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Guide{}, ErrNotFound
		}
		return types.Guide{}, err
	}
	return guide, nil
}

// Exists reports whether a guide with the given id exists, regardless of
// publication status.
func (r *GuideRepository) Exists(ctx context.Context, id int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM guides WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *GuideRepository) Create(ctx context.Context, guide types.Guide) (types.Guide, error) {
	now := time.Now()
	guide.CreatedAt = now
	guide.UpdatedAt = now

	const query = `
		INSERT INTO guides (title, description, status, level, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		guide.Title,
		guide.Description,
		guide.Status,
		guide.Level,
		guide.UserID,
		guide.CreatedAt,
		guide.UpdatedAt,
	).Scan(&guide.ID); err != nil {
		return types.Guide{}, translateError(err)
	}
	return guide, nil
}

// Update rewrites the mutable guide fields. The owner (user_id) is never
// touched.
func (r *GuideRepository) Update(ctx context.Context, guide types.Guide) (types.Guide, error) {
	guide.UpdatedAt = time.Now()

	const query = `
		UPDATE guides
		SET title = $1,
			description = $2,
			status = $3,
			level = $4,
			updated_at = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(
		ctx,
		query,
		guide.Title,
		guide.Description,
		guide.Status,
		guide.Level,
		guide.UpdatedAt,
		guide.ID,
	)
	if err != nil {
		return types.Guide{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Guide{}, err
	}
	if affected == 0 {
		return types.Guide{}, ErrNotFound
	}
	return guide, nil
}

func (r *GuideRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM guides WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGuide(row rowScanner) (types.Guide, error) {
	var guide types.Guide
	err := row.Scan(
		&guide.ID,
		&guide.Title,
		&guide.Description,
		&guide.Status,
		&guide.Level,
		&guide.UserID,
		&guide.AuthorUsername,
		&guide.CreatedAt,
		&guide.UpdatedAt,
	)
	if err != nil {
		return types.Guide{}, err
	}
	return guide, nil
}
