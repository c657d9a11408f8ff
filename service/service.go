// Package service orchestrates the write path and the composed listings:
// fetch, authorize through the policy kernel, then mutate through the
// repository. Policies return booleans; this layer translates them into
// tagged failures and never lets a raw repository error escape untagged.
package service

import (
	"errors"

	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/store"
)

// Listing is the caller-facing shape of every collection view: the page
// slice plus the total count of matching records before pagination, so
// callers can compute page counts.
type Listing[T any] struct {
	Items []T
	Page  policy.Page
	Total int64
}

// TotalPages derives the page count from the pre-pagination total.
func (l Listing[T]) TotalPages() int {
	return int((l.Total + int64(l.Page.Size) - 1) / int64(l.Page.Size))
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return policy.NotFound(msg)
	}
	return policy.Internal(msg, err)
}
