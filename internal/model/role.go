package model

// Role drives restaurant visibility: admins see every restaurant, owners only their own.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Profile mirrors a row of the profiles table. ID matches the identity provider subject.
type Profile struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
