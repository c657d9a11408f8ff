package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/store/memstore"
)

// spyStore records comment queries so tests can assert the parent
// visibility gate short-circuits before any comment listing runs.
type spyStore struct {
	*memstore.Store
	commentQueries int
}

func (s *spyStore) ListComments(ctx context.Context, q policy.CommentQuery) ([]models.Comment, int64, error) {
	s.commentQueries++
	return s.Store.ListComments(ctx, q)
}

func TestListCommentsInvisibleParentShortCircuits(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spy := &spyStore{Store: f.store}
	comments := service.NewCommentService(spy)

	t.Run("nonexistent post", func(t *testing.T) {
		_, err := comments.ListForPost(ctx, f.alice, 999, 0, 0)
		assert.Equal(t, policy.KindNotFound, policy.KindOf(err))
		assert.Zero(t, spy.commentQueries)
	})

	t.Run("foreign draft", func(t *testing.T) {
		draft := f.seedPost(t, f.alice, false)
		_, err := comments.ListForPost(ctx, f.bob, draft.ID, 0, 0)
		assert.Equal(t, policy.KindNotFound, policy.KindOf(err))
		assert.Zero(t, spy.commentQueries)

		// The owner gets through to the comment query.
		_, err = comments.ListForPost(ctx, f.alice, draft.ID, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, spy.commentQueries)
	})
}

func TestListCommentsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)

	var ids []uint
	for i := 0; i < 3; i++ {
		c, err := f.comments.Create(ctx, f.bob, post.ID, "reply")
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	listing, err := f.comments.ListForPost(ctx, nil, post.ID, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, listing.Total)
	require.Len(t, listing.Items, 3)
	assert.Equal(t, ids[2], listing.Items[0].ID)
	assert.Equal(t, ids[0], listing.Items[2].ID)
}

func TestCreateCommentGates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)
	draft := f.seedPost(t, f.alice, false)

	comment, err := f.comments.Create(ctx, f.bob, post.ID, "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, comment.UserID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, "hello", comment.Content)
	assert.Equal(t, "bob", comment.User.Username)

	_, err = f.comments.Create(ctx, nil, post.ID, "anon")
	assert.Equal(t, policy.KindUnauthenticated, policy.KindOf(err))

	_, err = f.comments.Create(ctx, f.bob, post.ID, "   ")
	assert.Equal(t, policy.KindValidation, policy.KindOf(err))

	// A draft invisible to the caller reads as a missing post.
	_, err = f.comments.Create(ctx, f.bob, draft.ID, "hi")
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	// The owner may comment on their own draft.
	_, err = f.comments.Create(ctx, f.alice, draft.ID, "note to self")
	require.NoError(t, err)
}

func TestUpdateCommentOwnershipGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)

	comment, err := f.comments.Create(ctx, f.alice, post.ID, "original")
	require.NoError(t, err)

	// User B attempts to update user A's comment.
	_, err = f.comments.Update(ctx, f.bob, comment.ID, "hijacked")
	assert.Equal(t, policy.KindForbidden, policy.KindOf(err))

	_, err = f.comments.Update(ctx, f.alice, 9999, "x")
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	got, err := f.comments.Update(ctx, f.alice, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)
	assert.Equal(t, f.alice.ID, got.UserID)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestDeleteCommentOwnershipGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)

	comment, err := f.comments.Create(ctx, f.bob, post.ID, "mine")
	require.NoError(t, err)

	// The post's owner does not own the comment.
	err = f.comments.Delete(ctx, f.alice, comment.ID)
	assert.Equal(t, policy.KindForbidden, policy.KindOf(err))

	err = f.comments.Delete(ctx, nil, comment.ID)
	assert.Equal(t, policy.KindUnauthenticated, policy.KindOf(err))

	require.NoError(t, f.comments.Delete(ctx, f.bob, comment.ID))

	err = f.comments.Delete(ctx, f.bob, comment.ID)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))
}
