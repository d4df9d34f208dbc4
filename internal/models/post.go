package models

import "time"

type Post struct {
	ID        int64
	Title     string
	Content   string
	AuthorID  int64
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostStats is a read-only projection over the post_stats view. It is
// never written by this service; the counts are maintained by the view
// definition itself.
type PostStats struct {
	ID            int64
	Title         string
	Published     bool
	Author        string
	CommentCount  int
	LikeCount     int
	CategoryCount int
	TagCount      int
}
