package model

const (
	RoleUser   = "USER"
	RoleAdmin  = "ADMIN"
	RoleSystem = "system"
)

// Scope is the authenticated caller attached to a request.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// SystemScope is used by background processes acting on behalf of no user.
func SystemScope() Scope {
	return Scope{UserID: RoleSystem, Role: RoleSystem}
}
