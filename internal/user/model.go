package user

import "time"

// User represents a registered bank customer. The administrator is not a
// User: it exists only as a configured credential.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

// View is the externally visible projection of a user. The password hash is
// never serialized.
type View struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AsView converts the user to its response projection.
func (u User) AsView() View {
	return View{ID: u.ID, Username: u.Username}
}
