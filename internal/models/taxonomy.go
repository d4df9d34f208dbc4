package models

import "time"

type Category struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

type Tag struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type Like struct {
	ID        int64
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}
