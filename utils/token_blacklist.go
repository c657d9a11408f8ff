package utils

import (
	"context"
	"sync"
	"time"
)

const revokedKeyPrefix = "auth:revoked:"

var (
	revokedMu     sync.RWMutex
	revokedTokens = map[string]time.Time{}
)

// RevokeToken marks a token unusable until its natural expiry. The
// in-process map is authoritative; Redis carries the revocation to
// other processes on a best-effort basis.
func RevokeToken(token string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	revokedMu.Lock()
	revokedTokens[token] = expiresAt
	pruneRevokedLocked()
	revokedMu.Unlock()

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := rc.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil && Sugar != nil {
			Sugar.Warnw("token revocation not shared via redis", "error", err)
		}
	}
}

// IsTokenRevoked reports whether a token was revoked before its natural
// expiry. A Redis failure degrades to the local map rather than locking
// every caller out.
func IsTokenRevoked(token string) bool {
	revokedMu.RLock()
	expiresAt, ok := revokedTokens[token]
	revokedMu.RUnlock()
	if ok {
		if time.Now().Before(expiresAt) {
			return true
		}
		revokedMu.Lock()
		delete(revokedTokens, token)
		revokedMu.Unlock()
		return false
	}

	if rc := GetRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := rc.Exists(ctx, revokedKeyPrefix+token).Result(); err == nil {
			return n > 0
		}
	}
	return false
}

// pruneRevokedLocked drops expired entries. Callers hold revokedMu.
func pruneRevokedLocked() {
	now := time.Now()
	for tok, exp := range revokedTokens {
		if now.After(exp) {
			delete(revokedTokens, tok)
		}
	}
}
