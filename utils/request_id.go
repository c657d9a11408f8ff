package utils

import "github.com/gin-gonic/gin"

// ContextRequestIDKey is where the request id middleware stores the id in
// the gin context. It lives here so the logger can read it without
// importing the middleware package.
const ContextRequestIDKey = "request_id"

// RequestID returns the id assigned to the current request, or "".
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(ContextRequestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
