package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftbox/draftbox/middleware"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/utils"
)

// CommentController translates HTTP requests into comment service calls.
type CommentController struct {
	comments *service.CommentService
}

// NewCommentController creates a new CommentController instance.
func NewCommentController(comments *service.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// ListComments returns one post's comments, newest first. When the parent
// post is not visible to the caller the post reads as not found and no
// comment query runs.
func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40410, "post not found")
		return
	}
	page, pageSize := parsePage(ctx)

	listing, err := c.comments.ListForPost(ctx.Request.Context(), middleware.Caller(ctx), postID, page, pageSize)
	if err != nil {
		fail(ctx, err, 30)
		return
	}
	utils.Success(ctx, gin.H{
		"items":      listing.Items,
		"pagination": paginationOf(listing),
	})
}

// CreateComment stores a new comment on a visible post, owned by the
// authenticated caller.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40411, "post not found")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid request payload")
		return
	}

	comment, err := c.comments.Create(ctx.Request.Context(), middleware.Caller(ctx), postID, req.Content)
	if err != nil {
		fail(ctx, err, 31)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// UpdateComment replaces the content of a comment the caller owns.
func (c *CommentController) UpdateComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40412, "comment not found")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	comment, err := c.comments.Update(ctx.Request.Context(), middleware.Caller(ctx), id, req.Content)
	if err != nil {
		fail(ctx, err, 32)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment the caller owns.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40413, "comment not found")
		return
	}
	if err := c.comments.Delete(ctx.Request.Context(), middleware.Caller(ctx), id); err != nil {
		fail(ctx, err, 33)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
