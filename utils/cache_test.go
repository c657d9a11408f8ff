package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/draftbox/draftbox/utils"
)

func TestPostListCacheKey(t *testing.T) {
	assert.Equal(t, "cache:posts:list:page=1:size=15", utils.PostListCacheKey(1, 15))
	assert.Equal(t, "cache:posts:list:page=3:size=100", utils.PostListCacheKey(3, 100))
}
