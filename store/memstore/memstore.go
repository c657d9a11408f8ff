// Package memstore is an in-memory implementation of the repository
// contract. It backs the test suite and local development without MySQL
// while honoring the same semantics: not-found signaling, deterministic
// ordering, pre-pagination totals, and an atomic post-delete cascade (both
// removals happen under one lock).
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/store"
)

// Store keeps all records in process memory guarded by a single mutex.
type Store struct {
	mu sync.RWMutex

	users    map[uint]models.User
	posts    map[uint]models.Post
	comments map[uint]models.Comment

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
}

var _ store.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    map[uint]models.User{},
		posts:    map[uint]models.Post{},
		comments: map[uint]models.Comment{},
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() || updated.Before(*created) {
		*updated = *created
	}
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return store.ErrDuplicate
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	stamp(&u.CreatedAt, &u.UpdatedAt)
	s.users[u.ID] = *u
	return nil
}

func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) attachUserLocked(p *models.Post) {
	if u, ok := s.users[p.UserID]; ok {
		p.User = u
	}
}

func (s *Store) attachCommentUserLocked(c *models.Comment) {
	if u, ok := s.users[c.UserID]; ok {
		c.User = u
	}
}

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPostID++
	p.ID = s.nextPostID
	stamp(&p.CreatedAt, &p.UpdatedAt)
	s.posts[p.ID] = *p
	s.attachUserLocked(p)
	return nil
}

func (s *Store) FindPost(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	s.attachUserLocked(&p)
	return &p, nil
}

func (s *Store) ListPosts(ctx context.Context, q policy.PostQuery) ([]models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		p := p
		if q.Matches(&p) {
			s.attachUserLocked(&p)
			matched = append(matched, p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return pageOf(matched, q.Page), int64(len(matched)), nil
}

func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return store.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	s.posts[p.ID] = *p
	s.attachUserLocked(p)
	return nil
}

func (s *Store) DeletePost(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[c.PostID]; !ok {
		return store.ErrNotFound
	}
	s.nextCommentID++
	c.ID = s.nextCommentID
	stamp(&c.CreatedAt, &c.UpdatedAt)
	s.comments[c.ID] = *c
	s.attachCommentUserLocked(c)
	return nil
}

func (s *Store) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	s.attachCommentUserLocked(&c)
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, q policy.CommentQuery) ([]models.Comment, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]models.Comment, 0)
	for _, c := range s.comments {
		if c.PostID == q.PostID {
			c := c
			s.attachCommentUserLocked(&c)
			matched = append(matched, c)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	return pageOf(matched, q.Page), int64(len(matched)), nil
}

func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[c.ID]; !ok {
		return store.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	if c.UpdatedAt.Before(c.CreatedAt) {
		c.UpdatedAt = c.CreatedAt
	}
	s.comments[c.ID] = *c
	s.attachCommentUserLocked(c)
	return nil
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

func pageOf[T any](items []T, p policy.Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}
