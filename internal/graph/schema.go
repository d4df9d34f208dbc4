package graph

import (
	"context"
	"strconv"
	"time"

	"github.com/BorisDmv/blog-graphql-api/internal/db"
	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

// New builds the engine with every type, query and mutation
// registered against the given store.
func New(store Store) *Engine {
	reg := NewRegistry()
	registerUser(reg, store)
	registerPost(reg, store)
	registerComment(reg, store)
	registerCategory(reg, store)
	registerTag(reg, store)
	registerLike(reg, store)
	registerPostStats(reg, store)
	registerQueries(reg, store)
	registerMutations(reg, store)
	return NewEngine(reg)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func registerUser(reg *Registry, store Store) {
	reg.Bind(models.User{}, "User")
	reg.Register("User", "id", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return formatID(u.ID), nil
	}))
	reg.Register("User", "username", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return u.Username, nil
	}))
	reg.Register("User", "email", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return u.Email, nil
	}))
	reg.Register("User", "firstName", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return u.FirstName, nil
	}))
	reg.Register("User", "lastName", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return u.LastName, nil
	}))
	reg.Register("User", "createdAt", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return formatTime(u.CreatedAt), nil
	}))
	reg.Register("User", "updatedAt", Field(func(_ context.Context, u models.User, _ Arguments) (any, error) {
		return formatTime(u.UpdatedAt), nil
	}))
	reg.Register("User", "posts", Field(func(ctx context.Context, u models.User, _ Arguments) (any, error) {
		return store.PostsByAuthor(ctx, u.ID)
	}))
	reg.Register("User", "comments", Field(func(ctx context.Context, u models.User, _ Arguments) (any, error) {
		return store.CommentsByAuthor(ctx, u.ID)
	}))
}

func registerPost(reg *Registry, store Store) {
	reg.Bind(models.Post{}, "Post")
	reg.Register("Post", "id", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return formatID(p.ID), nil
	}))
	reg.Register("Post", "title", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return p.Title, nil
	}))
	reg.Register("Post", "content", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return p.Content, nil
	}))
	reg.Register("Post", "published", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return p.Published, nil
	}))
	reg.Register("Post", "createdAt", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return formatTime(p.CreatedAt), nil
	}))
	reg.Register("Post", "updatedAt", Field(func(_ context.Context, p models.Post, _ Arguments) (any, error) {
		return formatTime(p.UpdatedAt), nil
	}))
	reg.Register("Post", "author", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.GetUser(ctx, p.AuthorID)
	}))
	reg.Register("Post", "comments", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.CommentsByPost(ctx, p.ID)
	}))
	reg.Register("Post", "categories", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.CategoriesOfPost(ctx, p.ID)
	}))
	reg.Register("Post", "tags", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.TagsOfPost(ctx, p.ID)
	}))
	reg.Register("Post", "likes", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.LikesOfPost(ctx, p.ID)
	}))
	// Counts are recomputed from current rows on every request, even
	// twice within one operation.
	reg.Register("Post", "likeCount", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.CountLikes(ctx, p.ID)
	}))
	reg.Register("Post", "commentCount", Field(func(ctx context.Context, p models.Post, _ Arguments) (any, error) {
		return store.CountComments(ctx, p.ID)
	}))
}

func registerComment(reg *Registry, store Store) {
	reg.Bind(models.Comment{}, "Comment")
	reg.Register("Comment", "id", Field(func(_ context.Context, c models.Comment, _ Arguments) (any, error) {
		return formatID(c.ID), nil
	}))
	reg.Register("Comment", "content", Field(func(_ context.Context, c models.Comment, _ Arguments) (any, error) {
		return c.Content, nil
	}))
	reg.Register("Comment", "createdAt", Field(func(_ context.Context, c models.Comment, _ Arguments) (any, error) {
		return formatTime(c.CreatedAt), nil
	}))
	reg.Register("Comment", "updatedAt", Field(func(_ context.Context, c models.Comment, _ Arguments) (any, error) {
		return formatTime(c.UpdatedAt), nil
	}))
	reg.Register("Comment", "author", Field(func(ctx context.Context, c models.Comment, _ Arguments) (any, error) {
		return store.GetUser(ctx, c.AuthorID)
	}))
	reg.Register("Comment", "post", Field(func(ctx context.Context, c models.Comment, _ Arguments) (any, error) {
		return store.GetPost(ctx, c.PostID)
	}))
	reg.Register("Comment", "parentComment", Field(func(ctx context.Context, c models.Comment, _ Arguments) (any, error) {
		if c.ParentCommentID == nil {
			return nil, nil
		}
		return store.GetComment(ctx, *c.ParentCommentID)
	}))
	// replies re-enters Comment resolution one level deeper; recursion
	// depth is whatever the caller's selection tree asks for.
	reg.Register("Comment", "replies", Field(func(ctx context.Context, c models.Comment, _ Arguments) (any, error) {
		return store.CommentReplies(ctx, c.ID)
	}))
}

func registerCategory(reg *Registry, store Store) {
	reg.Bind(models.Category{}, "Category")
	reg.Register("Category", "id", Field(func(_ context.Context, c models.Category, _ Arguments) (any, error) {
		return formatID(c.ID), nil
	}))
	reg.Register("Category", "name", Field(func(_ context.Context, c models.Category, _ Arguments) (any, error) {
		return c.Name, nil
	}))
	reg.Register("Category", "description", Field(func(_ context.Context, c models.Category, _ Arguments) (any, error) {
		return c.Description, nil
	}))
	reg.Register("Category", "createdAt", Field(func(_ context.Context, c models.Category, _ Arguments) (any, error) {
		return formatTime(c.CreatedAt), nil
	}))
	reg.Register("Category", "posts", Field(func(ctx context.Context, c models.Category, _ Arguments) (any, error) {
		return store.PostsByCategory(ctx, c.ID)
	}))
}

func registerTag(reg *Registry, store Store) {
	reg.Bind(models.Tag{}, "Tag")
	reg.Register("Tag", "id", Field(func(_ context.Context, t models.Tag, _ Arguments) (any, error) {
		return formatID(t.ID), nil
	}))
	reg.Register("Tag", "name", Field(func(_ context.Context, t models.Tag, _ Arguments) (any, error) {
		return t.Name, nil
	}))
	reg.Register("Tag", "createdAt", Field(func(_ context.Context, t models.Tag, _ Arguments) (any, error) {
		return formatTime(t.CreatedAt), nil
	}))
	reg.Register("Tag", "posts", Field(func(ctx context.Context, t models.Tag, _ Arguments) (any, error) {
		return store.PostsByTag(ctx, t.ID)
	}))
}

func registerLike(reg *Registry, store Store) {
	reg.Bind(models.Like{}, "Like")
	reg.Register("Like", "id", Field(func(_ context.Context, l models.Like, _ Arguments) (any, error) {
		return formatID(l.ID), nil
	}))
	reg.Register("Like", "createdAt", Field(func(_ context.Context, l models.Like, _ Arguments) (any, error) {
		return formatTime(l.CreatedAt), nil
	}))
	reg.Register("Like", "user", Field(func(ctx context.Context, l models.Like, _ Arguments) (any, error) {
		return store.GetUser(ctx, l.UserID)
	}))
	reg.Register("Like", "post", Field(func(ctx context.Context, l models.Like, _ Arguments) (any, error) {
		return store.GetPost(ctx, l.PostID)
	}))
}

func registerPostStats(reg *Registry, _ Store) {
	reg.Bind(models.PostStats{}, "PostStats")
	reg.Register("PostStats", "id", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return formatID(st.ID), nil
	}))
	reg.Register("PostStats", "title", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.Title, nil
	}))
	reg.Register("PostStats", "published", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.Published, nil
	}))
	reg.Register("PostStats", "author", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.Author, nil
	}))
	reg.Register("PostStats", "commentCount", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.CommentCount, nil
	}))
	reg.Register("PostStats", "likeCount", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.LikeCount, nil
	}))
	reg.Register("PostStats", "categoryCount", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.CategoryCount, nil
	}))
	reg.Register("PostStats", "tagCount", Field(func(_ context.Context, st models.PostStats, _ Arguments) (any, error) {
		return st.TagCount, nil
	}))
}

func registerQueries(reg *Registry, store Store) {
	reg.Register("Query", "users", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListUsers(ctx)
	}))
	reg.Register("Query", "user", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.GetUser(ctx, id)
	}))
	reg.Register("Query", "userByUsername", Root(func(ctx context.Context, args Arguments) (any, error) {
		username, err := args.String("username")
		if err != nil {
			return nil, err
		}
		return store.GetUserByUsername(ctx, username)
	}))
	reg.Register("Query", "posts", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListPosts(ctx)
	}))
	reg.Register("Query", "post", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.GetPost(ctx, id)
	}))
	reg.Register("Query", "postsByAuthor", Root(func(ctx context.Context, args Arguments) (any, error) {
		authorID, err := args.ID("authorId")
		if err != nil {
			return nil, err
		}
		return store.PostsByAuthor(ctx, authorID)
	}))
	reg.Register("Query", "publishedPosts", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.PublishedPosts(ctx)
	}))
	reg.Register("Query", "postsByCategory", Root(func(ctx context.Context, args Arguments) (any, error) {
		categoryID, err := args.ID("categoryId")
		if err != nil {
			return nil, err
		}
		return store.PostsByCategory(ctx, categoryID)
	}))
	reg.Register("Query", "postsByTag", Root(func(ctx context.Context, args Arguments) (any, error) {
		tagID, err := args.ID("tagId")
		if err != nil {
			return nil, err
		}
		return store.PostsByTag(ctx, tagID)
	}))
	reg.Register("Query", "comments", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListComments(ctx)
	}))
	reg.Register("Query", "commentsByPost", Root(func(ctx context.Context, args Arguments) (any, error) {
		postID, err := args.ID("postId")
		if err != nil {
			return nil, err
		}
		return store.CommentsByPost(ctx, postID)
	}))
	reg.Register("Query", "commentsByAuthor", Root(func(ctx context.Context, args Arguments) (any, error) {
		authorID, err := args.ID("authorId")
		if err != nil {
			return nil, err
		}
		return store.CommentsByAuthor(ctx, authorID)
	}))
	reg.Register("Query", "categories", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListCategories(ctx)
	}))
	reg.Register("Query", "category", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.GetCategory(ctx, id)
	}))
	reg.Register("Query", "tags", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListTags(ctx)
	}))
	reg.Register("Query", "tag", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.GetTag(ctx, id)
	}))
	reg.Register("Query", "postStats", Root(func(ctx context.Context, _ Arguments) (any, error) {
		return store.ListPostStats(ctx)
	}))
	reg.Register("Query", "postStatsById", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.GetPostStats(ctx, id)
	}))
}

func registerMutations(reg *Registry, store Store) {
	reg.Register("Mutation", "createUser", Root(func(ctx context.Context, args Arguments) (any, error) {
		username, err := args.String("username")
		if err != nil {
			return nil, err
		}
		email, err := args.String("email")
		if err != nil {
			return nil, err
		}
		firstName, err := args.String("firstName")
		if err != nil {
			return nil, err
		}
		lastName, err := args.String("lastName")
		if err != nil {
			return nil, err
		}
		return store.CreateUser(ctx, models.User{
			Username:  username,
			Email:     email,
			FirstName: firstName,
			LastName:  lastName,
		})
	}))
	reg.Register("Mutation", "updateUser", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		var upd db.UserUpdate
		if upd.Username, err = args.OptionalString("username"); err != nil {
			return nil, err
		}
		if upd.Email, err = args.OptionalString("email"); err != nil {
			return nil, err
		}
		if upd.FirstName, err = args.OptionalString("firstName"); err != nil {
			return nil, err
		}
		if upd.LastName, err = args.OptionalString("lastName"); err != nil {
			return nil, err
		}
		return store.UpdateUser(ctx, id, upd)
	}))
	reg.Register("Mutation", "deleteUser", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.DeleteUser(ctx, id)
	}))
	reg.Register("Mutation", "createPost", Root(func(ctx context.Context, args Arguments) (any, error) {
		title, err := args.String("title")
		if err != nil {
			return nil, err
		}
		content, err := args.String("content")
		if err != nil {
			return nil, err
		}
		authorID, err := args.ID("authorId")
		if err != nil {
			return nil, err
		}
		published, err := args.OptionalBool("published")
		if err != nil {
			return nil, err
		}
		post := models.Post{
			Title:    title,
			Content:  content,
			AuthorID: authorID,
		}
		if published != nil {
			post.Published = *published
		}
		return store.CreatePost(ctx, post)
	}))
	reg.Register("Mutation", "updatePost", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		var upd db.PostUpdate
		if upd.Title, err = args.OptionalString("title"); err != nil {
			return nil, err
		}
		if upd.Content, err = args.OptionalString("content"); err != nil {
			return nil, err
		}
		if upd.Published, err = args.OptionalBool("published"); err != nil {
			return nil, err
		}
		return store.UpdatePost(ctx, id, upd)
	}))
	reg.Register("Mutation", "deletePost", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.DeletePost(ctx, id)
	}))
	reg.Register("Mutation", "createComment", Root(func(ctx context.Context, args Arguments) (any, error) {
		content, err := args.String("content")
		if err != nil {
			return nil, err
		}
		authorID, err := args.ID("authorId")
		if err != nil {
			return nil, err
		}
		postID, err := args.ID("postId")
		if err != nil {
			return nil, err
		}
		parentID, err := args.OptionalID("parentCommentId")
		if err != nil {
			return nil, err
		}
		return store.CreateComment(ctx, models.Comment{
			Content:         content,
			AuthorID:        authorID,
			PostID:          postID,
			ParentCommentID: parentID,
		})
	}))
	reg.Register("Mutation", "updateComment", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		content, err := args.String("content")
		if err != nil {
			return nil, err
		}
		return store.UpdateComment(ctx, id, content)
	}))
	reg.Register("Mutation", "deleteComment", Root(func(ctx context.Context, args Arguments) (any, error) {
		id, err := args.ID("id")
		if err != nil {
			return nil, err
		}
		return store.DeleteComment(ctx, id)
	}))
	reg.Register("Mutation", "likePost", Root(func(ctx context.Context, args Arguments) (any, error) {
		userID, err := args.ID("userId")
		if err != nil {
			return nil, err
		}
		postID, err := args.ID("postId")
		if err != nil {
			return nil, err
		}
		return store.LikePost(ctx, userID, postID)
	}))
	reg.Register("Mutation", "unlikePost", Root(func(ctx context.Context, args Arguments) (any, error) {
		userID, err := args.ID("userId")
		if err != nil {
			return nil, err
		}
		postID, err := args.ID("postId")
		if err != nil {
			return nil, err
		}
		return store.UnlikePost(ctx, userID, postID)
	}))
}
