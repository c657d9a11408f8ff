package policy

// CanMutate reports whether the actor may update or delete the resource.
// There is no separate delete tier: the same predicate gates both. The
// check is always against the resource's own owner — a comment is never
// mutable by the parent post's owner.
//
// The caller translates false into Unauthenticated (no identity) or
// Forbidden (identity that is not the owner); this predicate only decides.
func CanMutate(r Owned, actor *Identity) bool {
	return actor != nil && actor.ID == r.OwnerID()
}
