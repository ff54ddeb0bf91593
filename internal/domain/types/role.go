package types

import (
	"fmt"
	"strings"
)

// Role es un perfil de acceso asignado a un cliente.
type Role int

const (
	RoleAdmin  Role = 1
	RoleClient Role = 2
)

// String retorna el nombre del rol tal como viaja en los tokens.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "ROLE_ADMIN"
	case RoleClient:
		return "ROLE_CLIENTE"
	}
	return ""
}

// RoleFromCode mapea el código persistido a Role.
func RoleFromCode(code int) (Role, error) {
	r := Role(code)
	if r.String() == "" {
		return 0, fmt.Errorf("invalid role code: %d", code)
	}
	return r, nil
}

// ParseRole acepta "ROLE_ADMIN", "ADMIN" o "admin" (y equivalentes para CLIENTE).
func ParseRole(s string) (Role, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	switch s {
	case "ADMIN":
		return RoleAdmin, nil
	case "CLIENTE", "CLIENT", "USER":
		return RoleClient, nil
	}
	return 0, fmt.Errorf("unknown role: %q", s)
}
