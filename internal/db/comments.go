package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

const commentColumns = `id, content, author_id, post_id, parent_comment_id, created_at, updated_at`

func scanComment(row pgx.Row) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID,
		&c.Content,
		&c.AuthorID,
		&c.PostID,
		&c.ParentCommentID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectComments(rows pgx.Rows) ([]models.Comment, error) {
	defer rows.Close()
	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return comments, nil
}

func (s *Store) ListComments(ctx context.Context) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return collectComments(rows)
}

func (s *Store) GetComment(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	comment, err := scanComment(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// CommentsByPost returns a post's comments oldest first, the order a
// reader sees a discussion in.
func (s *Store) CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE post_id = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("comments by post: %w", err)
	}
	return collectComments(rows)
}

func (s *Store) CommentsByAuthor(ctx context.Context, authorID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE author_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("comments by author: %w", err)
	}
	return collectComments(rows)
}

// CommentReplies returns the direct children of a comment, oldest
// first. Deeper levels are fetched by the resolver recursion, one
// level per requested nesting.
func (s *Store) CommentReplies(ctx context.Context, parentID int64) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE parent_comment_id = $1 ORDER BY created_at ASC`
	rows, err := s.pool.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("comment replies: %w", err)
	}
	return collectComments(rows)
}

func (s *Store) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (content, author_id, post_id, parent_comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns
	created, err := scanComment(s.pool.QueryRow(ctx, query,
		comment.Content,
		comment.AuthorID,
		comment.PostID,
		comment.ParentCommentID,
	))
	if err != nil {
		return nil, writeError("create comment", err)
	}
	return created, nil
}

func (s *Store) UpdateComment(ctx context.Context, id int64, content string) (*models.Comment, error) {
	query := `UPDATE comments SET content = $2, updated_at = now() WHERE id = $1 RETURNING ` + commentColumns
	updated, err := scanComment(s.pool.QueryRow(ctx, query, id, content))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, writeError("update comment", err)
	}
	return updated, nil
}

func (s *Store) DeleteComment(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, writeError("delete comment", err)
	}
	return tag.RowsAffected() > 0, nil
}
