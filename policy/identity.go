// Package policy is the access-control kernel: it decides which records a
// caller may read, which it may mutate, and how collection views are
// filtered, ordered, and paginated. Every function here is pure — a total
// function of the resource snapshot and the caller identity, safe for
// unrestricted concurrent use. Persistence and transport stay outside.
package policy

// Identity is the resolved caller of a request. A nil *Identity means the
// request is anonymous. Identities are passed explicitly through every
// policy and store call; nothing in this module reads a request-global
// current user.
type Identity struct {
	ID       uint
	Username string
}

// Owned is any resource that records the user who created it. Ownership is
// a uniform capability field, not a type hierarchy: Post and Comment both
// satisfy it and are checked by the same predicate.
type Owned interface {
	OwnerID() uint
}

// Publishable is an owned resource with a publication gate. Only posts
// carry one in this design.
type Publishable interface {
	Owned
	IsPublished() bool
}
