package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// The only payload Redis caches is the anonymous, unfiltered post
// listing: cached pages must never depend on who is asking, so
// identity-aware or filtered listings always hit the database.
const (
	postListKeyPrefix = "cache:posts:list:"
	postListTTL       = time.Hour
)

// PostListCacheKey identifies one cached page of the public post listing.
func PostListCacheKey(page, size int) string {
	return fmt.Sprintf("%spage=%d:size=%d", postListKeyPrefix, page, size)
}

// CachedPostListing returns the cached response body for a listing page.
func CachedPostListing(key string) ([]byte, bool) {
	rc := GetRedis()
	if rc == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	b, err := rc.Get(ctx, key).Bytes()
	if err != nil {
		if Sugar != nil {
			Sugar.Debugw("post listing cache miss", "key", key, "error", err)
		}
		return nil, false
	}
	return b, true
}

// CachePostListing stores a marshalled response body for a listing page.
// Failures are logged and swallowed; the cache is best-effort.
func CachePostListing(key string, v interface{}) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Set(ctx, key, b, postListTTL).Err(); err != nil {
		if Sugar != nil {
			Sugar.Warnw("post listing cache set failed", "key", key, "error", err)
		}
	}
}

// InvalidatePostListings drops every cached listing page. Post writes
// call this so stale pages never outlive a publish, edit or delete.
func InvalidatePostListings() {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var cursor uint64
	for i := 0; i < 10; i++ { // bound SCAN rounds
		keys, cur, err := rc.Scan(ctx, cursor, postListKeyPrefix+"*", 1000).Result()
		if err != nil {
			break
		}
		cursor = cur
		if len(keys) > 0 {
			pipe := rc.Pipeline()
			for _, k := range keys {
				pipe.Del(ctx, k)
			}
			_, _ = pipe.Exec(ctx)
		}
		if cursor == 0 {
			break
		}
	}
}
