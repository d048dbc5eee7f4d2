package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string // admin, staff
	IsVerified   bool   // la aprobación del admin queda fuera del alcance; el flag se conserva
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve el nombre completo para atribución en movimientos y correos.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
