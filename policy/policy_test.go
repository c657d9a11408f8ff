package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
)

func TestCanView(t *testing.T) {
	owner := &policy.Identity{ID: 1, Username: "alice"}
	other := &policy.Identity{ID: 2, Username: "bob"}

	tests := []struct {
		name      string
		published bool
		viewer    *policy.Identity
		want      bool
	}{
		{"published anonymous", true, nil, true},
		{"published owner", true, owner, true},
		{"published other user", true, other, true},
		{"draft anonymous", false, nil, false},
		{"draft owner", false, owner, true},
		{"draft other user", false, other, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := &models.Post{UserID: owner.ID, Published: tt.published}
			assert.Equal(t, tt.want, policy.CanView(post, tt.viewer))
		})
	}
}

func TestCanMutate(t *testing.T) {
	owner := &policy.Identity{ID: 7}
	other := &policy.Identity{ID: 8}

	post := &models.Post{UserID: 7, Published: true}
	comment := &models.Comment{UserID: 7, PostID: 1}

	assert.True(t, policy.CanMutate(post, owner))
	assert.True(t, policy.CanMutate(comment, owner))
	assert.False(t, policy.CanMutate(post, other))
	assert.False(t, policy.CanMutate(comment, other))
	assert.False(t, policy.CanMutate(post, nil))
	assert.False(t, policy.CanMutate(comment, nil))
}

func TestCanMutateChecksOwnResourceNotParent(t *testing.T) {
	postOwner := &policy.Identity{ID: 1}
	commentOwner := &policy.Identity{ID: 2}

	// Comment on someone else's post: only the comment's own author may
	// mutate it.
	comment := &models.Comment{UserID: commentOwner.ID, PostID: 10}
	assert.True(t, policy.CanMutate(comment, commentOwner))
	assert.False(t, policy.CanMutate(comment, postOwner))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, policy.KindNone, policy.KindOf(nil))
	assert.Equal(t, policy.KindNotFound, policy.KindOf(policy.NotFound("x")))
	assert.Equal(t, policy.KindForbidden, policy.KindOf(policy.Forbidden("x")))
	assert.Equal(t, policy.KindUnauthenticated, policy.KindOf(policy.Unauthenticated("x")))
	assert.Equal(t, policy.KindValidation, policy.KindOf(policy.Invalid("x")))
	assert.Equal(t, policy.KindInternal, policy.KindOf(policy.Internal("x", assert.AnError)))
	assert.Equal(t, policy.KindInternal, policy.KindOf(assert.AnError))
}
