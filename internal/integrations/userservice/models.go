package userservice

// Роли пользователей, которым разрешено управлять чужими бронированиями
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User модель пользователя из UserService
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // employee, manager, admin
	IsActive bool   `json:"is_active"`
}

// IsPrivileged проверяет, может ли пользователь отменять и переносить чужие брони
func (u *User) IsPrivileged() bool {
	if u == nil || !u.IsActive {
		return false
	}
	return u.Role == RoleAdmin || u.Role == RoleManager
}
