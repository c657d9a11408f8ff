package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/store/memstore"
)

type fixture struct {
	store    *memstore.Store
	posts    *service.PostService
	comments *service.CommentService
	alice    *policy.Identity
	bob      *policy.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	ctx := context.Background()

	alice := &models.User{Username: "alice", Email: "alice@example.com"}
	require.NoError(t, s.CreateUser(ctx, alice))
	bob := &models.User{Username: "bob", Email: "bob@example.com"}
	require.NoError(t, s.CreateUser(ctx, bob))

	return &fixture{
		store:    s,
		posts:    service.NewPostService(s),
		comments: service.NewCommentService(s),
		alice:    &policy.Identity{ID: alice.ID, Username: alice.Username},
		bob:      &policy.Identity{ID: bob.ID, Username: bob.Username},
	}
}

func (f *fixture) seedPost(t *testing.T, owner *policy.Identity, published bool) *models.Post {
	t.Helper()
	p := &models.Post{
		UserID:    owner.ID,
		Title:     "title",
		Content:   "content",
		Published: published,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, f.store.CreatePost(context.Background(), p))
	return p
}

func TestListPostsAnonymousSeesPublishedOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var published []uint
	for i := 0; i < 5; i++ {
		p := f.seedPost(t, f.alice, i < 3)
		if i < 3 {
			published = append(published, p.ID)
		}
	}

	listing, err := f.posts.List(ctx, nil, policy.PostFilter{}, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, listing.Total)
	require.Len(t, listing.Items, 3)
	// Newest first: descending ids, drafts absent.
	assert.Equal(t, published[2], listing.Items[0].ID)
	assert.Equal(t, published[1], listing.Items[1].ID)
	assert.Equal(t, published[0], listing.Items[2].ID)
	assert.Equal(t, 1, listing.Page.Number)
	assert.Equal(t, policy.DefaultPageSize, listing.Page.Size)
}

func TestListPostsOwnerSeesOwnDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draft := f.seedPost(t, f.alice, false)

	listing, err := f.posts.List(ctx, f.alice, policy.PostFilter{}, 0, 0)
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)
	assert.Equal(t, draft.ID, listing.Items[0].ID)

	listing, err = f.posts.List(ctx, nil, policy.PostFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.Zero(t, listing.Total)

	// Another authenticated user does not see it either.
	listing, err = f.posts.List(ctx, f.bob, policy.PostFilter{}, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
}

func TestListPostsPageBeyondEndKeepsTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		f.seedPost(t, f.alice, true)
	}

	listing, err := f.posts.List(ctx, nil, policy.PostFilter{}, 5, 15)
	require.NoError(t, err)
	assert.Empty(t, listing.Items)
	assert.EqualValues(t, 4, listing.Total)
	assert.Equal(t, 1, listing.TotalPages())
}

func TestGetPostVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	draft := f.seedPost(t, f.alice, false)

	got, err := f.posts.Get(ctx, f.alice, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
	assert.Equal(t, "alice", got.User.Username)

	_, err = f.posts.Get(ctx, nil, draft.ID)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	// Drafts read as not found, never forbidden, to other users too.
	_, err = f.posts.Get(ctx, f.bob, draft.ID)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	_, err = f.posts.Get(ctx, f.alice, 9999)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))
}

func TestCreatePostOwnerFromIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	post, err := f.posts.Create(ctx, f.alice, service.CreatePostInput{Title: "  hello  ", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, post.UserID)
	assert.Equal(t, "hello", post.Title)
	assert.False(t, post.Published)

	_, err = f.posts.Create(ctx, nil, service.CreatePostInput{Title: "t", Content: "c"})
	assert.Equal(t, policy.KindUnauthenticated, policy.KindOf(err))

	_, err = f.posts.Create(ctx, f.alice, service.CreatePostInput{Title: "   ", Content: "c"})
	assert.Equal(t, policy.KindValidation, policy.KindOf(err))
}

func TestUpdatePostOwnershipGate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)

	newTitle := "changed"
	_, err := f.posts.Update(ctx, f.bob, post.ID, service.UpdatePostInput{Title: &newTitle})
	assert.Equal(t, policy.KindForbidden, policy.KindOf(err))

	_, err = f.posts.Update(ctx, nil, post.ID, service.UpdatePostInput{Title: &newTitle})
	assert.Equal(t, policy.KindUnauthenticated, policy.KindOf(err))

	_, err = f.posts.Update(ctx, f.alice, 9999, service.UpdatePostInput{Title: &newTitle})
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	published := true
	got, err := f.posts.Update(ctx, f.alice, post.ID, service.UpdatePostInput{Title: &newTitle, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, "changed", got.Title)
	assert.Equal(t, "content", got.Content)
	assert.True(t, got.Published)
	assert.Equal(t, f.alice.ID, got.UserID)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestDeletePostCascadesComments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.seedPost(t, f.alice, true)

	for i := 0; i < 3; i++ {
		_, err := f.comments.Create(ctx, f.bob, post.ID, "nice")
		require.NoError(t, err)
	}

	err := f.posts.Delete(ctx, f.bob, post.ID)
	assert.Equal(t, policy.KindForbidden, policy.KindOf(err))

	require.NoError(t, f.posts.Delete(ctx, f.alice, post.ID))

	_, err = f.posts.Get(ctx, f.alice, post.ID)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))

	_, err = f.comments.ListForPost(ctx, f.alice, post.ID, 0, 0)
	assert.Equal(t, policy.KindNotFound, policy.KindOf(err))
}
