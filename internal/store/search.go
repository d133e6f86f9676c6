package store

import (
	"context"
	"database/sql"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/types"
	"github.com/lib/pq"
)

// SearchRepository runs free-text lookups across guides and posts.
type SearchRepository struct {
	db *sql.DB
}

func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search matches published guides by title/description and published posts
// by title/content/tag name, case-insensitively. Guides come first, each
// group ordered by id.
func (r *SearchRepository) Search(ctx context.Context, term string) ([]types.SearchResult, error) {
	pattern := "%" + escapeLike(term) + "%"

	const guideQuery = `
		SELECT id, title
		FROM guides
		WHERE status = 'published'
			AND (title ILIKE $1 OR description ILIKE $1)
		ORDER BY id`
	const postQuery = `
		SELECT p.id, p.title,
			COALESCE(array_agg(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}')
		FROM posts p
		LEFT JOIN post_tags pt ON pt.post_id = p.id
		LEFT JOIN tags t ON t.id = pt.tag_id
		WHERE p.status = 'published'
		GROUP BY p.id
		HAVING p.title ILIKE $1
			OR p.content ILIKE $1
			OR bool_or(t.name ILIKE $1)
		ORDER BY p.id`

	results := make([]types.SearchResult, 0, 8)

	rows, err := r.db.QueryContext(ctx, guideQuery, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		result := types.SearchResult{Kind: types.SearchKindGuide, Tags: []string{}}
		if err := rows.Scan(&result.ID, &result.Title); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	postRows, err := r.db.QueryContext(ctx, postQuery, pattern)
	if err != nil {
		return nil, err
	}
	defer postRows.Close()
	for postRows.Next() {
		result := types.SearchResult{Kind: types.SearchKindPost}
		if err := postRows.Scan(&result.ID, &result.Title, pq.Array(&result.Tags)); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, postRows.Err()
}

// escapeLike neutralizes LIKE metacharacters in user-supplied terms.
func escapeLike(term string) string {
	out := make([]byte, 0, len(term))
	for i := 0; i < len(term); i++ {
		switch term[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, term[i])
	}
	return string(out)
}
