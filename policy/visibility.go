package policy

// CanView reports whether the caller may read the resource. Published
// resources are visible to everyone, anonymous callers included; drafts are
// visible only to their owner.
//
// Comments carry no publication gate of their own. Their readability
// follows the parent post: callers must check CanView on the post before
// listing or creating comments, and signal not-found for the post rather
// than revealing that comments exist.
func CanView(r Publishable, viewer *Identity) bool {
	if r.IsPublished() {
		return true
	}
	return viewer != nil && viewer.ID == r.OwnerID()
}
