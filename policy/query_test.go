package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
)

func boolPtr(b bool) *bool { return &b }
func uintPtr(u uint) *uint { return &u }

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		want       policy.Page
	}{
		{"defaults", 0, 0, policy.Page{Number: 1, Size: policy.DefaultPageSize}},
		{"negative page", -3, 10, policy.Page{Number: 1, Size: 10}},
		{"negative size", 2, -1, policy.Page{Number: 2, Size: policy.DefaultPageSize}},
		{"oversized clamped", 1, 5000, policy.Page{Number: 1, Size: policy.MaxPageSize}},
		{"in range untouched", 3, 25, policy.Page{Number: 3, Size: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.NormalizePage(tt.page, tt.size))
		})
	}
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, policy.Page{Number: 1, Size: 15}.Offset())
	assert.Equal(t, 30, policy.Page{Number: 3, Size: 15}.Offset())
}

func TestPostQueryMatches(t *testing.T) {
	owner := &policy.Identity{ID: 1}
	other := &policy.Identity{ID: 2}

	draft := &models.Post{UserID: 1, Published: false}
	published := &models.Post{UserID: 1, Published: true}

	t.Run("visibility is the base predicate", func(t *testing.T) {
		q := policy.NewPostQuery(nil, policy.PostFilter{}, 1, 15)
		assert.True(t, q.Matches(published))
		assert.False(t, q.Matches(draft))
	})

	t.Run("filters are conjunctions", func(t *testing.T) {
		q := policy.NewPostQuery(owner, policy.PostFilter{Published: boolPtr(true)}, 1, 15)
		assert.True(t, q.Matches(published))
		assert.False(t, q.Matches(draft))

		q = policy.NewPostQuery(owner, policy.PostFilter{Owner: uintPtr(99)}, 1, 15)
		assert.False(t, q.Matches(published))
	})

	t.Run("published=false filter cannot leak foreign drafts", func(t *testing.T) {
		// The filter explicitly requests unpublished posts, but the
		// visibility conjunct still excludes drafts the viewer does not own.
		q := policy.NewPostQuery(other, policy.PostFilter{Published: boolPtr(false)}, 1, 15)
		assert.False(t, q.Matches(draft))

		q = policy.NewPostQuery(owner, policy.PostFilter{Published: boolPtr(false)}, 1, 15)
		assert.True(t, q.Matches(draft))
	})
}
