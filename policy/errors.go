package policy

import "fmt"

// Kind tags a failure so transport layers can map it to a status without
// string matching. The kernel returns these instead of panicking or using
// exceptions as control flow.
type Kind int

const (
	// KindNone marks a nil or foreign error.
	KindNone Kind = iota
	// KindNotFound: the resource id does not exist, or a nested comment
	// listing's parent post is not visible to the caller.
	KindNotFound
	// KindForbidden: authenticated but not the owner.
	KindForbidden
	// KindUnauthenticated: a mutation was attempted with no identity.
	KindUnauthenticated
	// KindValidation: malformed input that has no safe default.
	KindValidation
	// KindInternal: the repository failed.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindValidation:
		return "validation_failed"
	case KindInternal:
		return "internal"
	default:
		return "none"
	}
}

// Error is a tagged failure carried up the call chain.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound failure.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Forbidden builds a KindForbidden failure.
func Forbidden(msg string) *Error { return &Error{Kind: KindForbidden, Msg: msg} }

// Unauthenticated builds a KindUnauthenticated failure.
func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Msg: msg} }

// Invalid builds a KindValidation failure.
func Invalid(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// Internal wraps a repository or infrastructure error.
func Internal(msg string, err error) *Error { return &Error{Kind: KindInternal, Msg: msg, Err: err} }

// KindOf extracts the tag from an error chain. Errors that did not
// originate in this kernel report KindInternal so callers never leak a raw
// failure as success.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	for {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		type unwrapper interface{ Unwrap() error }
		u, ok := err.(unwrapper)
		if !ok {
			return KindInternal
		}
		err = u.Unwrap()
		if err == nil {
			return KindInternal
		}
	}
}
