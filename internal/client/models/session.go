package models

import "time"

// Role is the access tier of an authenticated user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// Session describes the single active session on this client. Absence of a
// session record means unauthenticated.
type Session struct {
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}

// IsAdmin reports whether the session belongs to the admin tier.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
