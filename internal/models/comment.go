package models

import "time"

// Comment is one node of a post's discussion thread. A nil
// ParentCommentID marks a root comment on its post; otherwise the
// comment is a reply to another comment on the same post.
type Comment struct {
	ID              int64
	Content         string
	AuthorID        int64
	PostID          int64
	ParentCommentID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
