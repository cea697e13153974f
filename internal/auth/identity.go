package auth

import "errors"

// AdminKeyHeader carries the pre-shared admin secret. Requests presenting it
// never resolve to a user identity; the admin and user credential paths are
// mutually exclusive.
const AdminKeyHeader = "X-SECURITY-ADMIN-KEY"

var (
	// ErrUnauthenticated indicates the request carried no usable credentials.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden indicates the caller is authenticated but lacks the role or
	// ownership the operation requires.
	ErrForbidden = errors.New("operation not allowed")
)

// Identity is the resolved caller of a request: either the administrator
// (no user row, no accounts) or an authenticated user. The zero value means
// unauthenticated.
type Identity struct {
	Admin  bool
	UserID int64
}

// AdminIdentity returns the administrator identity.
func AdminIdentity() Identity {
	return Identity{Admin: true}
}

// UserIdentity returns the identity of an authenticated user.
func UserIdentity(userID int64) Identity {
	return Identity{UserID: userID}
}

// Authenticated reports whether the identity resolved from any credential.
func (i Identity) Authenticated() bool {
	return i.Admin || i.UserID != 0
}
