package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/utils"
)

// ContextIdentityKey is the key used to store the resolved caller identity
// in the gin context.
const ContextIdentityKey = "caller_identity"

// Caller returns the authenticated identity for the request, or nil when
// the request is anonymous. Handlers pass it explicitly into the policy
// and service layers; nothing downstream reads the gin context.
func Caller(ctx *gin.Context) *policy.Identity {
	value, exists := ctx.Get(ContextIdentityKey)
	if !exists {
		return nil
	}
	id, _ := value.(*policy.Identity)
	return id
}

func bearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func resolveIdentity(token string) (*policy.Identity, bool) {
	if token == "" || utils.IsTokenRevoked(token) {
		return nil, false
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, false
	}
	return &policy.Identity{ID: claims.UserID, Username: claims.Username}, true
}

// AuthRequired ensures the request carries a valid JWT and stores the
// resolved identity in the context.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing or malformed")
			ctx.Abort()
			return
		}
		identity, ok := resolveIdentity(token)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid or revoked token")
			ctx.Abort()
			return
		}
		ctx.Set(ContextIdentityKey, identity)
		ctx.Next()
	}
}

// AuthOptional resolves an identity when a bearer token is present and
// valid, and proceeds anonymously otherwise. Read endpoints use it so
// owners see their drafts while everyone else sees published content only.
// A present-but-invalid token is rejected rather than silently downgraded
// to anonymous.
func AuthOptional() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := bearerToken(ctx)
		if !ok {
			ctx.Next()
			return
		}
		identity, ok := resolveIdentity(token)
		if !ok {
			utils.Error(ctx, http.StatusUnauthorized, 40103, "invalid or revoked token")
			ctx.Abort()
			return
		}
		ctx.Set(ContextIdentityKey, identity)
		ctx.Next()
	}
}
