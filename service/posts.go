package service

import (
	"context"
	"strings"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/utils"
)

// PostService owns the post read and write paths.
type PostService struct {
	store PostCommentStore
}

// PostCommentStore is the slice of the repository the post service needs.
// Deleting a post cascades over comments, so both stores ride together.
type PostCommentStore interface {
	CreatePost(ctx context.Context, p *models.Post) error
	FindPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, q policy.PostQuery) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id uint) error
}

// NewPostService wires the post service to a repository.
func NewPostService(s PostCommentStore) *PostService {
	return &PostService{store: s}
}

// CreatePostInput is the accepted payload for a new post. The owner is
// never part of it: it is always taken from the caller identity.
type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
}

// UpdatePostInput carries only the fields the caller wants to change.
type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
}

// List returns the composed, visibility-gated page of posts.
func (s *PostService) List(ctx context.Context, viewer *policy.Identity, filter policy.PostFilter, page, size int) (Listing[models.Post], error) {
	q := policy.NewPostQuery(viewer, filter, page, size)
	items, total, err := s.store.ListPosts(ctx, q)
	if err != nil {
		return Listing[models.Post]{}, policy.Internal("failed to list posts", err)
	}
	return Listing[models.Post]{Items: items, Page: q.Page, Total: total}, nil
}

// Get returns a single post, gated by the visibility policy. A draft that
// is not the viewer's reads as not found, never as forbidden.
func (s *PostService) Get(ctx context.Context, viewer *policy.Identity, id uint) (*models.Post, error) {
	post, err := s.store.FindPost(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	if !policy.CanView(post, viewer) {
		return nil, policy.NotFound("post not found")
	}
	return post, nil
}

// Create stores a new post owned by the caller.
func (s *PostService) Create(ctx context.Context, caller *policy.Identity, in CreatePostInput) (*models.Post, error) {
	if caller == nil {
		return nil, policy.Unauthenticated("authentication required")
	}
	title := utils.SanitizeTitle(strings.TrimSpace(in.Title))
	if title == "" {
		return nil, policy.Invalid("title cannot be empty")
	}
	post := &models.Post{
		UserID:    caller.ID,
		Title:     title,
		Content:   utils.Sanitize(in.Content),
		Published: in.Published,
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, policy.Internal("failed to create post", err)
	}
	return post, nil
}

// Update applies the supplied fields to an owned post. The owner is
// immutable regardless of payload.
func (s *PostService) Update(ctx context.Context, caller *policy.Identity, id uint, in UpdatePostInput) (*models.Post, error) {
	if caller == nil {
		return nil, policy.Unauthenticated("authentication required")
	}
	post, err := s.store.FindPost(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	if !policy.CanMutate(post, caller) {
		return nil, policy.Forbidden("you can only update your own posts")
	}
	if in.Title != nil {
		title := utils.SanitizeTitle(strings.TrimSpace(*in.Title))
		if title == "" {
			return nil, policy.Invalid("title cannot be empty")
		}
		post.Title = title
	}
	if in.Content != nil {
		post.Content = utils.Sanitize(*in.Content)
	}
	if in.Published != nil {
		post.Published = *in.Published
	}
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, policy.Internal("failed to update post", err)
	}
	return post, nil
}

// Delete removes an owned post. The repository cascades over the post's
// comments in the same transaction before the delete is considered applied.
func (s *PostService) Delete(ctx context.Context, caller *policy.Identity, id uint) error {
	if caller == nil {
		return policy.Unauthenticated("authentication required")
	}
	post, err := s.store.FindPost(ctx, id)
	if err != nil {
		return notFoundOr(err, "post not found")
	}
	if !policy.CanMutate(post, caller) {
		return policy.Forbidden("you can only delete your own posts")
	}
	if err := s.store.DeletePost(ctx, id); err != nil {
		return notFoundOr(err, "post not found")
	}
	return nil
}
