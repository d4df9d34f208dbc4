package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

const likeColumns = `id, user_id, post_id, created_at`

func scanLike(row pgx.Row) (*models.Like, error) {
	var l models.Like
	if err := row.Scan(&l.ID, &l.UserID, &l.PostID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *Store) LikesOfPost(ctx context.Context, postID int64) ([]models.Like, error) {
	query := `SELECT ` + likeColumns + ` FROM likes WHERE post_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("likes of post: %w", err)
	}
	defer rows.Close()
	likes := make([]models.Like, 0)
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		likes = append(likes, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return likes, nil
}

// CountLikes counts current like rows at call time; the count is never
// cached, so two count fields in one query each hit the store.
func (s *Store) CountLikes(ctx context.Context, postID int64) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (s *Store) CountComments(ctx context.Context, postID int64) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

func (s *Store) LikePost(ctx context.Context, userID, postID int64) (*models.Like, error) {
	query := `INSERT INTO likes (user_id, post_id) VALUES ($1, $2) RETURNING ` + likeColumns
	like, err := scanLike(s.pool.QueryRow(ctx, query, userID, postID))
	if err != nil {
		return nil, writeError("like post", err)
	}
	return like, nil
}

func (s *Store) UnlikePost(ctx context.Context, userID, postID int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, writeError("unlike post", err)
	}
	return tag.RowsAffected() > 0, nil
}
