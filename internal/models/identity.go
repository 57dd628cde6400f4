package models

// Identity is the authenticated identity attached to a request by the JWT
// middleware. It is threaded into service calls as an explicit argument,
// never read from global state.
type Identity struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
