package graph

import (
	"context"

	"github.com/BorisDmv/blog-graphql-api/internal/db"
	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

// Store is the relational access layer the resolvers fetch through.
// *db.Store satisfies it; tests substitute an in-memory fake. Every
// call issues its own isolated fetch; the engine never batches or
// deduplicates lookups across resolution paths.
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, upd db.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)

	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	PostsByAuthor(ctx context.Context, authorID int64) ([]models.Post, error)
	PublishedPosts(ctx context.Context) ([]models.Post, error)
	PostsByCategory(ctx context.Context, categoryID int64) ([]models.Post, error)
	PostsByTag(ctx context.Context, tagID int64) ([]models.Post, error)
	CreatePost(ctx context.Context, post models.Post) (*models.Post, error)
	UpdatePost(ctx context.Context, id int64, upd db.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, id int64) (bool, error)

	ListComments(ctx context.Context) ([]models.Comment, error)
	GetComment(ctx context.Context, id int64) (*models.Comment, error)
	CommentsByPost(ctx context.Context, postID int64) ([]models.Comment, error)
	CommentsByAuthor(ctx context.Context, authorID int64) ([]models.Comment, error)
	CommentReplies(ctx context.Context, parentID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) (bool, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CategoriesOfPost(ctx context.Context, postID int64) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTag(ctx context.Context, id int64) (*models.Tag, error)
	TagsOfPost(ctx context.Context, postID int64) ([]models.Tag, error)

	LikesOfPost(ctx context.Context, postID int64) ([]models.Like, error)
	CountLikes(ctx context.Context, postID int64) (int, error)
	CountComments(ctx context.Context, postID int64) (int, error)
	LikePost(ctx context.Context, userID, postID int64) (*models.Like, error)
	UnlikePost(ctx context.Context, userID, postID int64) (bool, error)

	ListPostStats(ctx context.Context) ([]models.PostStats, error)
	GetPostStats(ctx context.Context, id int64) (*models.PostStats, error)
}
