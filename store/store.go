// Package store defines the narrow persistence contract the access-control
// kernel consumes. Implementations decide storage; the contract fixes the
// semantics the kernel relies on: not-found signaling, deterministic
// newest-first ordering with descending-id tie-break, pre-pagination
// totals, and an atomic post-delete cascade.
package store

import (
	"context"
	"errors"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
)

// ErrNotFound is returned by lookups and mutations targeting an id that
// does not exist.
var ErrNotFound = errors.New("store: record not found")

// ErrDuplicate is returned by CreateUser when the username is already
// taken. Backed by the unique index in MySQL; the in-memory store
// enforces it explicitly.
var ErrDuplicate = errors.New("store: duplicate record")

// UserStore persists user accounts for the auth surface. Usernames are
// unique; CreateUser reports a collision as ErrDuplicate.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// PostStore persists posts. Find and the write operations load the owner's
// public identity into the returned record. ListPosts evaluates the
// composed query — visibility base predicate plus caller filters — and
// returns the page slice along with the total count of matching records
// before pagination. A page beyond the last yields an empty slice and the
// unchanged total. DeletePost removes the post and all of its comments in
// a single transaction; a concurrent reader never observes one without the
// other.
type PostStore interface {
	CreatePost(ctx context.Context, p *models.Post) error
	FindPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, q policy.PostQuery) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id uint) error
}

// CommentStore persists comments. ListComments is implicitly scoped to one
// post; callers verify the parent post's visibility first. Ordering and
// totals follow the PostStore contract.
type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	FindComment(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, q policy.CommentQuery) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// Store is the full repository surface consumed by the services.
type Store interface {
	UserStore
	PostStore
	CommentStore
}
