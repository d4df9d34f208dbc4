package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

const postStatsColumns = `id, title, published, author, comment_count, like_count, category_count, tag_count`

func scanPostStats(row pgx.Row) (*models.PostStats, error) {
	var st models.PostStats
	err := row.Scan(
		&st.ID,
		&st.Title,
		&st.Published,
		&st.Author,
		&st.CommentCount,
		&st.LikeCount,
		&st.CategoryCount,
		&st.TagCount,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) ListPostStats(ctx context.Context) ([]models.PostStats, error) {
	query := `SELECT ` + postStatsColumns + ` FROM post_stats ORDER BY like_count DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list post stats: %w", err)
	}
	defer rows.Close()
	stats := make([]models.PostStats, 0)
	for rows.Next() {
		st, err := scanPostStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post stats: %w", err)
		}
		stats = append(stats, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return stats, nil
}

func (s *Store) GetPostStats(ctx context.Context, id int64) (*models.PostStats, error) {
	query := `SELECT ` + postStatsColumns + ` FROM post_stats WHERE id = $1`
	st, err := scanPostStats(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post stats: %w", err)
	}
	return st, nil
}
