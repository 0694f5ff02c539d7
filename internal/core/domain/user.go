package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is the authenticated principal as known to the client. A non-nil
// principal always corresponds to a credential currently applied to the
// transport; the session manager enforces the pairing.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
