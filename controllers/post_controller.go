package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbox/draftbox/middleware"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/utils"
)

// PostController translates HTTP requests into post service calls.
type PostController struct {
	posts *service.PostService
}

// NewPostController creates a new PostController instance.
func NewPostController(posts *service.PostService) *PostController {
	return &PostController{posts: posts}
}

// ListPosts returns a paginated, visibility-gated post listing. Anonymous
// callers see published posts; authenticated callers also see their own
// drafts. Supported filters: published, owner.
func (p *PostController) ListPosts(ctx *gin.Context) {
	caller := middleware.Caller(ctx)
	page, pageSize := parsePage(ctx)

	var filter policy.PostFilter
	if raw := ctx.Query("published"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40020, "published must be a boolean")
			return
		}
		filter.Published = &v
	}
	if raw := ctx.Query("owner"); raw != "" {
		owner, ok := parseID(raw)
		if !ok {
			utils.Error(ctx, http.StatusBadRequest, 40021, "owner must be a user id")
			return
		}
		filter.Owner = &owner
	}

	// Only the anonymous, unfiltered listing is cached: cached pages must
	// never depend on who is asking.
	cacheable := caller == nil && filter.Published == nil && filter.Owner == nil
	var cacheKey string
	if cacheable {
		norm := policy.NormalizePage(page, pageSize)
		cacheKey = utils.PostListCacheKey(norm.Number, norm.Size)
		if b, ok := utils.CachedPostListing(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	listing, err := p.posts.List(ctx.Request.Context(), caller, filter, page, pageSize)
	if err != nil {
		fail(ctx, err, 22)
		return
	}

	payload := gin.H{
		"items":      listing.Items,
		"pagination": paginationOf(listing),
	}
	if cacheable {
		utils.CachePostListing(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload})
	}
	utils.Success(ctx, payload)
}

// GetPost returns a single post. Drafts read as not found to everyone but
// their owner.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	post, err := p.posts.Get(ctx.Request.Context(), middleware.Caller(ctx), id)
	if err != nil {
		fail(ctx, err, 1)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost stores a new post owned by the authenticated caller.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title     string `json:"title" binding:"required,min=1"`
		Content   string `json:"content" binding:"required"`
		Published bool   `json:"published"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	post, err := p.posts.Create(ctx.Request.Context(), middleware.Caller(ctx), service.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		fail(ctx, err, 23)
		return
	}

	utils.InvalidatePostListings()
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost applies the supplied fields to a post the caller owns.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40402, "post not found")
		return
	}

	var req struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		Published *bool   `json:"published"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}

	post, err := p.posts.Update(ctx.Request.Context(), middleware.Caller(ctx), id, service.UpdatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	})
	if err != nil {
		fail(ctx, err, 25)
		return
	}

	utils.InvalidatePostListings()
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post the caller owns along with all of its
// comments.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40403, "post not found")
		return
	}
	if err := p.posts.Delete(ctx.Request.Context(), middleware.Caller(ctx), id); err != nil {
		fail(ctx, err, 27)
		return
	}

	utils.InvalidatePostListings()
	utils.Success(ctx, gin.H{"message": "post deleted"})
}
