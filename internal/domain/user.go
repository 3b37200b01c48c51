package domain

import (
	"fmt"
	"time"
)

type Role int

const (
	RoleClient Role = 0
	RoleAdmin  Role = 1
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAdmin
}

// ParseRole accepts the persisted role code
func ParseRole(code int) (Role, error) {
	r := Role(code)
	if !r.Valid() {
		return 0, fmt.Errorf("unknown role code %d", code)
	}
	return r, nil
}

type User struct {
	ID           string
	Email        string
	PasswordHash string `json:"-"`
	Role         Role
	CreatedAt    time.Time
}

// Profile is the identity carried in tokens and used for authorization
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
