package service

import (
	"context"
	"strings"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/utils"
)

// CommentService owns the comment read and write paths. Every entry point
// that is scoped to a post verifies the parent's visibility before
// touching comments, so callers who cannot see a draft learn nothing about
// its replies.
type CommentService struct {
	store CommentParentStore
}

// CommentParentStore is the slice of the repository the comment service
// needs: comments plus parent-post lookups for the visibility gate.
type CommentParentStore interface {
	FindPost(ctx context.Context, id uint) (*models.Post, error)
	CreateComment(ctx context.Context, c *models.Comment) error
	FindComment(ctx context.Context, id uint) (*models.Comment, error)
	ListComments(ctx context.Context, q policy.CommentQuery) ([]models.Comment, int64, error)
	UpdateComment(ctx context.Context, c *models.Comment) error
	DeleteComment(ctx context.Context, id uint) error
}

// NewCommentService wires the comment service to a repository.
func NewCommentService(s CommentParentStore) *CommentService {
	return &CommentService{store: s}
}

// visibleParent resolves the parent post and applies the visibility gate.
// An invisible parent reads as not found before any comment query runs.
func (s *CommentService) visibleParent(ctx context.Context, viewer *policy.Identity, postID uint) (*models.Post, error) {
	post, err := s.store.FindPost(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	if !policy.CanView(post, viewer) {
		return nil, policy.NotFound("post not found")
	}
	return post, nil
}

// ListForPost returns one visible post's comments, newest first.
func (s *CommentService) ListForPost(ctx context.Context, viewer *policy.Identity, postID uint, page, size int) (Listing[models.Comment], error) {
	if _, err := s.visibleParent(ctx, viewer, postID); err != nil {
		return Listing[models.Comment]{}, err
	}
	q := policy.NewCommentQuery(postID, page, size)
	items, total, err := s.store.ListComments(ctx, q)
	if err != nil {
		return Listing[models.Comment]{}, policy.Internal("failed to list comments", err)
	}
	return Listing[models.Comment]{Items: items, Page: q.Page, Total: total}, nil
}

// Create stores a new comment on a visible post, owned by the caller.
func (s *CommentService) Create(ctx context.Context, caller *policy.Identity, postID uint, content string) (*models.Comment, error) {
	if caller == nil {
		return nil, policy.Unauthenticated("authentication required")
	}
	content = utils.Sanitize(strings.TrimSpace(content))
	if content == "" {
		return nil, policy.Invalid("content cannot be empty")
	}
	post, err := s.visibleParent(ctx, caller, postID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		PostID:  post.ID,
		UserID:  caller.ID,
		Content: content,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, notFoundOr(err, "post not found")
	}
	return comment, nil
}

// Update replaces the content of an owned comment. Ownership is checked
// against the comment itself, never the parent post.
func (s *CommentService) Update(ctx context.Context, caller *policy.Identity, id uint, content string) (*models.Comment, error) {
	if caller == nil {
		return nil, policy.Unauthenticated("authentication required")
	}
	content = utils.Sanitize(strings.TrimSpace(content))
	if content == "" {
		return nil, policy.Invalid("content cannot be empty")
	}
	comment, err := s.store.FindComment(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "comment not found")
	}
	if !policy.CanMutate(comment, caller) {
		return nil, policy.Forbidden("you can only update your own comments")
	}
	comment.Content = content
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, policy.Internal("failed to update comment", err)
	}
	return comment, nil
}

// Delete removes an owned comment.
func (s *CommentService) Delete(ctx context.Context, caller *policy.Identity, id uint) error {
	if caller == nil {
		return policy.Unauthenticated("authentication required")
	}
	comment, err := s.store.FindComment(ctx, id)
	if err != nil {
		return notFoundOr(err, "comment not found")
	}
	if !policy.CanMutate(comment, caller) {
		return policy.Forbidden("you can only delete your own comments")
	}
	if err := s.store.DeleteComment(ctx, comment.ID); err != nil {
		return notFoundOr(err, "comment not found")
	}
	return nil
}
