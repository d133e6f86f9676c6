package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
)

// CommentRepository handles persistence for comments.
//
// A comment references exactly one of a guide or a post through two
// nullable foreign keys. The database enforces the exclusivity with a
// CHECK constraint; the listing queries additionally pin the other key
// to NULL so that a guide id can never leak post comments even though
// both key spaces are small integers.
type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

const commentColumns = `
	c.id, c.content, c.user_id, u.username, c.guide_id, c.post_id, c.created_at`

// ListForGuide returns the comments attached to a guide, oldest first.
func (r *CommentRepository) ListForGuide(ctx context.Context, guideID int) ([]types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.guide_id = $1 AND c.post_id IS NULL
		ORDER BY c.created_at ASC, c.id ASC`
	return r.list(ctx, query, guideID)
}

// ListForPost returns the comments attached to a post, oldest first.
func (r *CommentRepository) ListForPost(ctx context.Context, postID int) ([]types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1 AND c.guide_id IS NULL
		ORDER BY c.created_at ASC, c.id ASC`
	return r.list(ctx, query, postID)
}

func (r *CommentRepository) Get(ctx context.Context, id int) (types.Comment, error) {
	const query = `
		SELECT ` + commentColumns + `
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.id = $1`
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Comment{}, ErrNotFound
		}
		return types.Comment{}, err
	}
	return comment, nil
}

func (r *CommentRepository) Create(ctx context.Context, comment types.Comment) (types.Comment, error) {
	comment.CreatedAt = time.Now()

	const query = `
		INSERT INTO comments (content, user_id, guide_id, post_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		comment.Content,
		comment.UserID,
		nullableID(comment.GuideID),
		nullableID(comment.PostID),
		comment.CreatedAt,
	).Scan(&comment.ID); err != nil {
		return types.Comment{}, translateError(err)
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM comments WHERE id = $1`
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

func (r *CommentRepository) list(ctx context.Context, query string, parentID int) ([]types.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]types.Comment, 0, 8)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func scanComment(row rowScanner) (types.Comment, error) {
	var comment types.Comment
	var guideID, postID sql.NullInt64
	err := row.Scan(
		&comment.ID,
		&comment.Content,
		&comment.UserID,
		&comment.AuthorUsername,
		&guideID,
		&postID,
		&comment.CreatedAt,
	)
	if err != nil {
		return types.Comment{}, err
	}
	if guideID.Valid {
		id := int(guideID.Int64)
		comment.GuideID = &id
	}
	if postID.Valid {
		id := int(postID.Int64)
		comment.PostID = &id
	}
	return comment, nil
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
