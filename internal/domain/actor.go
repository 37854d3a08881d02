package domain

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   int64
	Role ActorRole
}

// IsAdmin returns true for platform administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsPro returns true for instructor accounts
func (a Actor) IsPro() bool {
	return a.Role == RolePro
}

// IsCustomer returns true for registered customer accounts
func (a Actor) IsCustomer() bool {
	return a.Role == RoleCustomer
}
