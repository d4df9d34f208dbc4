package db

import (
	"context"
	"fmt"
)

// schemaStatements is executed one by one at startup. Every statement
// is idempotent so restarting against an existing database is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
	    id SERIAL PRIMARY KEY,
	    username TEXT NOT NULL UNIQUE,
	    email TEXT NOT NULL UNIQUE,
	    first_name TEXT NOT NULL,
	    last_name TEXT NOT NULL,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
	    id SERIAL PRIMARY KEY,
	    title TEXT NOT NULL,
	    content TEXT NOT NULL,
	    author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	    published BOOLEAN NOT NULL DEFAULT false,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
	    id SERIAL PRIMARY KEY,
	    content TEXT NOT NULL,
	    author_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	    parent_comment_id INTEGER REFERENCES comments(id) ON DELETE CASCADE,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
	    id SERIAL PRIMARY KEY,
	    name TEXT NOT NULL UNIQUE,
	    description TEXT,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tags (
	    id SERIAL PRIMARY KEY,
	    name TEXT NOT NULL UNIQUE,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS post_categories (
	    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	    category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	    PRIMARY KEY (post_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS post_tags (
	    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	    tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	    PRIMARY KEY (post_id, tag_id)
	)`,
	// The UNIQUE pair makes a second like of the same post surface as
	// ErrDuplicate; the resolver layer does not pre-check.
	`CREATE TABLE IF NOT EXISTS likes (
	    id SERIAL PRIMARY KEY,
	    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	    post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	    UNIQUE (user_id, post_id)
	)`,
	`CREATE OR REPLACE VIEW post_stats AS
	    SELECT
	        p.id,
	        p.title,
	        p.published,
	        u.first_name || ' ' || u.last_name AS author,
	        (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
	        (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
	        (SELECT COUNT(*) FROM post_categories pc WHERE pc.post_id = p.id) AS category_count,
	        (SELECT COUNT(*) FROM post_tags pt WHERE pt.post_id = p.id) AS tag_count
	    FROM posts p
	    JOIN users u ON u.id = p.author_id`,
}

// EnsureSchema creates the tables and the post_stats view if they do
// not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	for _, stmt := range schemaStatements {
		if _, err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
