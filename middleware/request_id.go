package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/draftbox/draftbox/utils"
)

// RequestIDHeader carries the request id back to the client and accepts a
// caller-supplied id for trace continuity across hops.
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, echoed in the response header and
// attached to access log lines.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(utils.ContextRequestIDKey, rid)
		ctx.Header(RequestIDHeader, rid)
		ctx.Next()
	}
}
