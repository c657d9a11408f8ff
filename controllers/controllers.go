package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/service"
	"github.com/draftbox/draftbox/utils"
)

// fail maps a tagged kernel failure onto the HTTP envelope. The base app
// code identifies the failure kind; call sites add a small offset so log
// lines stay greppable per endpoint.
func fail(ctx *gin.Context, err error, codeOffset int) {
	msg := "internal server error"
	if e, ok := err.(*policy.Error); ok {
		msg = e.Msg
	}
	switch policy.KindOf(err) {
	case policy.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40400+codeOffset, msg)
	case policy.KindForbidden:
		utils.Error(ctx, http.StatusForbidden, 40300+codeOffset, msg)
	case policy.KindUnauthenticated:
		utils.Error(ctx, http.StatusUnauthorized, 40100+codeOffset, msg)
	case policy.KindValidation:
		utils.Error(ctx, http.StatusBadRequest, 40000+codeOffset, msg)
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorw("request failed", "error", err, "path", ctx.Request.URL.Path)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50000+codeOffset, msg)
	}
}

// paginationOf wraps a listing's page metadata in the response shape.
func paginationOf[T any](l service.Listing[T]) gin.H {
	return gin.H{
		"page":        l.Page.Number,
		"page_size":   l.Page.Size,
		"total":       l.Total,
		"total_pages": l.TotalPages(),
	}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parsePage reads raw pagination params; normalization and clamping happen
// in the query composer, so malformed values fall back to defaults rather
// than erroring.
func parsePage(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.Query("page"))
	size, _ := strconv.Atoi(ctx.Query("page_size"))
	return page, size
}
