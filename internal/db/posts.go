package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

const postColumns = `id, title, content, author_id, published, created_at, updated_at`

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.AuthorID,
		&p.Published,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectPosts(rows pgx.Rows) ([]models.Post, error) {
	defer rows.Close()
	posts := make([]models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return posts, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

func (s *Store) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *Store) PostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("posts by author: %w", err)
	}
	return collectPosts(rows)
}

func (s *Store) PublishedPosts(ctx context.Context) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE published = true ORDER BY created_at DESC`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("published posts: %w", err)
	}
	return collectPosts(rows)
}

func (s *Store) PostsByCategory(ctx context.Context, categoryID int64) ([]models.Post, error) {
	query := `
		SELECT ` + prefixColumns(postColumns, "p") + `
		FROM posts p
		JOIN post_categories pc ON p.id = pc.post_id
		WHERE pc.category_id = $1
		ORDER BY p.created_at DESC`
	rows, err := s.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("posts by category: %w", err)
	}
	return collectPosts(rows)
}

func (s *Store) PostsByTag(ctx context.Context, tagID int64) ([]models.Post, error) {
	query := `
		SELECT ` + prefixColumns(postColumns, "p") + `
		FROM posts p
		JOIN post_tags pt ON p.id = pt.post_id
		WHERE pt.tag_id = $1
		ORDER BY p.created_at DESC`
	rows, err := s.pool.Query(ctx, query, tagID)
	if err != nil {
		return nil, fmt.Errorf("posts by tag: %w", err)
	}
	return collectPosts(rows)
}

func (s *Store) CreatePost(ctx context.Context, post models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, content, author_id, published)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns
	created, err := scanPost(s.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.AuthorID,
		post.Published,
	))
	if err != nil {
		return nil, writeError("create post", err)
	}
	return created, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, upd PostUpdate) (*models.Post, error) {
	query, args, err := buildUpdate("posts", id, upd.fields(), postColumns)
	if err != nil {
		return nil, err
	}
	updated, err := scanPost(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, writeError("update post", err)
	}
	return updated, nil
}

func (s *Store) DeletePost(ctx context.Context, id int64) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, writeError("delete post", err)
	}
	return tag.RowsAffected() > 0, nil
}
