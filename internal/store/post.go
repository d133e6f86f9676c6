package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/lib/pq"
)

// PostRepository handles persistence for posts and their tag associations.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

const postColumns = `
	p.id, p.title, p.content, p.status, p.user_id, u.username, p.cover_key,
	COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}'),
	p.created_at, p.updated_at`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.user_id
	LEFT JOIN post_tags pt ON pt.post_id = p.id
	LEFT JOIN tags t ON t.id = pt.tag_id`

const postGroupBy = `
	GROUP BY p.id, u.username`

// List returns posts joined with their author and aggregated tag names.
// When onlyPublished is set, drafts and archived posts are filtered out.
func (r *PostRepository) List(ctx context.Context, onlyPublished bool) ([]types.Post, error) {
	query := `SELECT ` + postColumns + postJoins
	if onlyPublished {
		query += `
	WHERE p.status = 'published'`
	}
	query += postGroupBy + `
	ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0, 8)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Get(ctx context.Context, id int, onlyPublished bool) (types.Post, error) {
	query := `SELECT ` + postColumns + postJoins + `
	WHERE p.id = $1`
	if onlyPublished {
		query += ` AND p.status = 'published'`
	}
	query += postGroupBy

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

// Exists reports whether a post with the given id exists, regardless of
// publication status.
func (r *PostRepository) Exists(ctx context.Context, id int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a post and associates it with the given normalized tag
// names, creating any tags that do not exist yet. Post row, tag rows and
// join rows are written in one transaction.
func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Post{}, err
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO posts (title, content, status, user_id, cover_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Status,
		post.UserID,
		post.CoverKey,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return types.Post{}, translateError(err)
	}

	if err := replaceTags(ctx, tx, post.ID, post.Tags); err != nil {
		return types.Post{}, translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

// Update rewrites the mutable post fields and replaces the tag association
// set entirely. The owner (user_id) is never touched.
func (r *PostRepository) Update(ctx context.Context, post types.Post) (types.Post, error) {
	post.UpdatedAt = time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Post{}, err
	}
	defer tx.Rollback()

	const query = `
		UPDATE posts
		SET title = $1,
			content = $2,
			status = $3,
			updated_at = $4
		WHERE id = $5`
	result, err := tx.ExecContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.Status,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return types.Post{}, translateError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Post{}, err
	}
	if affected == 0 {
		return types.Post{}, ErrNotFound
	}

	if err := replaceTags(ctx, tx, post.ID, post.Tags); err != nil {
		return types.Post{}, translateError(err)
	}

	if err := tx.Commit(); err != nil {
		return types.Post{}, err
	}
	return post, nil
}

// SetCoverKey records the object storage key of the post's cover image.
func (r *PostRepository) SetCoverKey(ctx context.Context, id int, key string) error {
	const query = `
		UPDATE posts
		SET cover_key = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, key, time.Now(), id)
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

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
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

// replaceTags makes the post's association set exactly match names.
// Tags are found or created by unique name; a concurrent insert of the
// same name loses the ON CONFLICT race and falls back to the select.
// Unreferenced tags are deliberately not garbage-collected.
func replaceTags(ctx context.Context, tx *sql.Tx, postID int, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return err
	}

	for _, name := range names {
		tagID, err := ensureTag(ctx, tx, name)
		if err != nil {
			return err
		}
		const link = `
			INSERT INTO post_tags (post_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`
		if _, err := tx.ExecContext(ctx, link, postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

func ensureTag(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	const insert = `
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id`
	var id int
	err := tx.QueryRowContext(ctx, insert, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	const find = `SELECT id FROM tags WHERE name = $1`
	if err := tx.QueryRowContext(ctx, find, name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Status,
		&post.UserID,
		&post.AuthorUsername,
		&post.CoverKey,
		pq.Array(&post.Tags),
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return types.Post{}, err
	}
	return post, nil
}
