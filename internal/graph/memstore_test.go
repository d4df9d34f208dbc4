package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/BorisDmv/blog-graphql-api/internal/db"
	"github.com/BorisDmv/blog-graphql-api/internal/models"
)

// memStore is an in-memory Store used by the resolver tests. It
// reproduces the access layer's documented behavior: ordering rules,
// nil for missing rows, sentinel errors for constraint violations.
type memStore struct {
	mu             sync.Mutex
	users          []models.User
	posts          []models.Post
	comments       []models.Comment
	categories     []models.Category
	tags           []models.Tag
	likes          []models.Like
	postCategories map[int64][]int64
	postTags       map[int64][]int64
	nextID         int64
	now            time.Time
	failing        map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		postCategories: make(map[int64][]int64),
		postTags:       make(map[int64][]int64),
		now:            time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failing:        make(map[string]error),
	}
}

// failWith makes the named method return err on every call.
func (m *memStore) failWith(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[method] = err
}

// tick returns a strictly increasing timestamp; callers hold mu.
func (m *memStore) tick() time.Time {
	m.now = m.now.Add(time.Second)
	return m.now
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func sortedBy[T any](items []T, less func(a, b T) bool) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func contains(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (m *memStore) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["ListUsers"]; err != nil {
		return nil, err
	}
	return sortedBy(m.users, func(a, b models.User) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) GetUser(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["GetUser"]; err != nil {
		return nil, err
	}
	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUser(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, fmt.Errorf("create user: %w", db.ErrDuplicate)
		}
	}
	user.ID = m.id()
	user.CreatedAt = m.tick()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, user)
	created := user
	return &created, nil
}

func (m *memStore) UpdateUser(_ context.Context, id int64, upd db.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if upd.Username == nil && upd.Email == nil && upd.FirstName == nil && upd.LastName == nil {
		return nil, db.ErrNoUpdateFields
	}
	for i := range m.users {
		if m.users[i].ID != id {
			continue
		}
		if upd.Username != nil {
			m.users[i].Username = *upd.Username
		}
		if upd.Email != nil {
			m.users[i].Email = *upd.Email
		}
		if upd.FirstName != nil {
			m.users[i].FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			m.users[i].LastName = *upd.LastName
		}
		m.users[i].UpdatedAt = m.tick()
		updated := m.users[i]
		return &updated, nil
	}
	return nil, nil
}

func (m *memStore) DeleteUser(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListPosts(context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["ListPosts"]; err != nil {
		return nil, err
	}
	return sortedBy(m.posts, func(a, b models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) GetPost(_ context.Context, id int64) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func (m *memStore) PostsByAuthor(_ context.Context, authorID int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["PostsByAuthor"]; err != nil {
		return nil, err
	}
	var posts []models.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	return sortedBy(posts, func(a, b models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) PublishedPosts(context.Context) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []models.Post
	for _, p := range m.posts {
		if p.Published {
			posts = append(posts, p)
		}
	}
	return sortedBy(posts, func(a, b models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) PostsByCategory(_ context.Context, categoryID int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []models.Post
	for _, p := range m.posts {
		if contains(m.postCategories[p.ID], categoryID) {
			posts = append(posts, p)
		}
	}
	return sortedBy(posts, func(a, b models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) PostsByTag(_ context.Context, tagID int64) ([]models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var posts []models.Post
	for _, p := range m.posts {
		if contains(m.postTags[p.ID], tagID) {
			posts = append(posts, p)
		}
	}
	return sortedBy(posts, func(a, b models.Post) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) CreatePost(_ context.Context, post models.Post) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.id()
	post.CreatedAt = m.tick()
	post.UpdatedAt = post.CreatedAt
	m.posts = append(m.posts, post)
	created := post
	return &created, nil
}

func (m *memStore) UpdatePost(_ context.Context, id int64, upd db.PostUpdate) (*models.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if upd.Title == nil && upd.Content == nil && upd.Published == nil {
		return nil, db.ErrNoUpdateFields
	}
	for i := range m.posts {
		if m.posts[i].ID != id {
			continue
		}
		if upd.Title != nil {
			m.posts[i].Title = *upd.Title
		}
		if upd.Content != nil {
			m.posts[i].Content = *upd.Content
		}
		if upd.Published != nil {
			m.posts[i].Published = *upd.Published
		}
		m.posts[i].UpdatedAt = m.tick()
		updated := m.posts[i]
		return &updated, nil
	}
	return nil, nil
}

func (m *memStore) DeletePost(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.posts {
		if m.posts[i].ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListComments(context.Context) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedBy(m.comments, func(a, b models.Comment) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) GetComment(_ context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.comments {
		if c.ID == id {
			comment := c
			return &comment, nil
		}
	}
	return nil, nil
}

func (m *memStore) CommentsByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var comments []models.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	return sortedBy(comments, func(a, b models.Comment) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (m *memStore) CommentsByAuthor(_ context.Context, authorID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var comments []models.Comment
	for _, c := range m.comments {
		if c.AuthorID == authorID {
			comments = append(comments, c)
		}
	}
	return sortedBy(comments, func(a, b models.Comment) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) CommentReplies(_ context.Context, parentID int64) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["CommentReplies"]; err != nil {
		return nil, err
	}
	var replies []models.Comment
	for _, c := range m.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == parentID {
			replies = append(replies, c)
		}
	}
	return sortedBy(replies, func(a, b models.Comment) bool { return a.CreatedAt.Before(b.CreatedAt) }), nil
}

func (m *memStore) CreateComment(_ context.Context, comment models.Comment) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment.ID = m.id()
	comment.CreatedAt = m.tick()
	comment.UpdatedAt = comment.CreatedAt
	m.comments = append(m.comments, comment)
	created := comment
	return &created, nil
}

func (m *memStore) UpdateComment(_ context.Context, id int64, content string) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.comments {
		if m.comments[i].ID == id {
			m.comments[i].Content = content
			m.comments[i].UpdatedAt = m.tick()
			updated := m.comments[i]
			return &updated, nil
		}
	}
	return nil, nil
}

func (m *memStore) DeleteComment(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.comments {
		if m.comments[i].ID == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListCategories(context.Context) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedBy(m.categories, func(a, b models.Category) bool { return a.Name < b.Name }), nil
}

func (m *memStore) GetCategory(_ context.Context, id int64) (*models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, nil
}

func (m *memStore) CategoriesOfPost(_ context.Context, postID int64) ([]models.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var categories []models.Category
	for _, c := range m.categories {
		if contains(m.postCategories[postID], c.ID) {
			categories = append(categories, c)
		}
	}
	return sortedBy(categories, func(a, b models.Category) bool { return a.Name < b.Name }), nil
}

func (m *memStore) ListTags(context.Context) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedBy(m.tags, func(a, b models.Tag) bool { return a.Name < b.Name }), nil
}

func (m *memStore) GetTag(_ context.Context, id int64) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tags {
		if t.ID == id {
			tag := t
			return &tag, nil
		}
	}
	return nil, nil
}

func (m *memStore) TagsOfPost(_ context.Context, postID int64) ([]models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var tags []models.Tag
	for _, t := range m.tags {
		if contains(m.postTags[postID], t.ID) {
			tags = append(tags, t)
		}
	}
	return sortedBy(tags, func(a, b models.Tag) bool { return a.Name < b.Name }), nil
}

func (m *memStore) LikesOfPost(_ context.Context, postID int64) ([]models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var likes []models.Like
	for _, l := range m.likes {
		if l.PostID == postID {
			likes = append(likes, l)
		}
	}
	return sortedBy(likes, func(a, b models.Like) bool { return a.CreatedAt.After(b.CreatedAt) }), nil
}

func (m *memStore) CountLikes(_ context.Context, postID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failing["CountLikes"]; err != nil {
		return 0, err
	}
	n := 0
	for _, l := range m.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) CountComments(_ context.Context, postID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

func (m *memStore) LikePost(_ context.Context, userID, postID int64) (*models.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.likes {
		if l.UserID == userID && l.PostID == postID {
			return nil, fmt.Errorf("like post: %w", db.ErrDuplicate)
		}
	}
	like := models.Like{ID: m.id(), UserID: userID, PostID: postID, CreatedAt: m.tick()}
	m.likes = append(m.likes, like)
	return &like, nil
}

func (m *memStore) UnlikePost(_ context.Context, userID, postID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.likes {
		if m.likes[i].UserID == userID && m.likes[i].PostID == postID {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListPostStats(ctx context.Context) ([]models.PostStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := make([]models.PostStats, 0, len(m.posts))
	for _, p := range m.posts {
		stats = append(stats, m.statsForLocked(p))
	}
	return sortedBy(stats, func(a, b models.PostStats) bool { return a.LikeCount > b.LikeCount }), nil
}

func (m *memStore) GetPostStats(_ context.Context, id int64) (*models.PostStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			st := m.statsForLocked(p)
			return &st, nil
		}
	}
	return nil, nil
}

func (m *memStore) statsForLocked(p models.Post) models.PostStats {
	st := models.PostStats{
		ID:            p.ID,
		Title:         p.Title,
		Published:     p.Published,
		CategoryCount: len(m.postCategories[p.ID]),
		TagCount:      len(m.postTags[p.ID]),
	}
	for _, u := range m.users {
		if u.ID == p.AuthorID {
			st.Author = u.FirstName + " " + u.LastName
		}
	}
	for _, c := range m.comments {
		if c.PostID == p.ID {
			st.CommentCount++
		}
	}
	for _, l := range m.likes {
		if l.PostID == p.ID {
			st.LikeCount++
		}
	}
	return st
}
