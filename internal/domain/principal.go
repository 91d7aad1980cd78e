package domain

// Role роль аутентифицированного пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Principal аутентифицированный пользователь, полученный от identity-сервиса
type Principal struct {
	ID    int64
	Email string
	Name  string
	Role  Role
}

// IsAdmin returns true if the principal has the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser проверяет, может ли principal работать с данными пользователя userID.
// Разрешено владельцу и администратору.
func (p *Principal) CanAccessUser(userID int64) bool {
	return p.ID == userID || p.IsAdmin()
}
