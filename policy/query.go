package policy

const (
	// DefaultPageSize applies when the caller omits a page size or supplies
	// a non-positive one.
	DefaultPageSize = 15
	// MaxPageSize bounds the work a single listing request can demand.
	// Larger requests are clamped, not rejected.
	MaxPageSize = 100
)

// Page is a normalized 1-based pagination window.
type Page struct {
	Number int
	Size   int
}

// NormalizePage clamps raw pagination input to a safe window: page numbers
// below 1 become 1, absent or non-positive sizes become DefaultPageSize,
// and sizes above MaxPageSize are clamped to MaxPageSize.
func NormalizePage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of records to skip for this window.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// PostFilter is the caller-supplied conjunction applied on top of the
// visibility base predicate. Nil fields are absent filters.
type PostFilter struct {
	Published *bool
	Owner     *uint
}

// PostQuery is a composed listing over posts: the viewer's visibility as
// base predicate, the caller's filters as a conjunction on top, and a
// normalized page window. Results are ordered newest-first by creation
// time, ties broken by descending id, so repeated calls are deterministic
// even when timestamps collide.
type PostQuery struct {
	Viewer *Identity
	Filter PostFilter
	Page   Page
}

// NewPostQuery composes a post listing from raw request input.
func NewPostQuery(viewer *Identity, filter PostFilter, page, size int) PostQuery {
	return PostQuery{Viewer: viewer, Filter: filter, Page: NormalizePage(page, size)}
}

// Matches is the authoritative per-record predicate: visibility AND every
// supplied filter. A published=false filter can request drafts, but the
// visibility conjunct still excludes drafts the viewer does not own — no
// filter widens what a caller may see. SQL-backed stores must implement
// exactly this conjunction.
func (q PostQuery) Matches(p Publishable) bool {
	if !CanView(p, q.Viewer) {
		return false
	}
	if q.Filter.Published != nil && p.IsPublished() != *q.Filter.Published {
		return false
	}
	if q.Filter.Owner != nil && p.OwnerID() != *q.Filter.Owner {
		return false
	}
	return true
}

// CommentQuery is a composed listing over one post's comments. The parent
// post's visibility must be verified before the comment query runs; the
// query itself carries no per-comment gate. Ordering matches PostQuery.
type CommentQuery struct {
	PostID uint
	Page   Page
}

// NewCommentQuery composes a comment listing from raw request input.
func NewCommentQuery(postID uint, page, size int) CommentQuery {
	return CommentQuery{PostID: postID, Page: NormalizePage(page, size)}
}
