package models

import (
	"time"
)

// Role is the privilege level attached to a user and to every issued token.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleFaculty       Role = "faculty"
	RoleTeacher       Role = "teacher"
)

// DefaultRole is assigned to every self-registered account.
const DefaultRole = RoleTeacher

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleFaculty, RoleTeacher:
		return true
	}
	return false
}

// User represents an account in the system. PasswordHash is never
// serialized to any caller.
type User struct {
	ID           int64      `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password"`
	Role         Role       `json:"role" db:"role"`
	FirstName    string     `json:"f_name" db:"f_name"`
	LastName     string     `json:"l_name" db:"l_name"`
	MobileNumber string     `json:"mobile_number,omitempty" db:"mobile_number"`
	Birthday     string     `json:"birthday,omitempty" db:"birthday"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// UserUpdate carries the mutable fields for administrative user updates.
type UserUpdate struct {
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"f_name"`
	LastName     string `json:"l_name"`
	Role         Role   `json:"role"`
	MobileNumber string `json:"mobile_number"`
	Birthday     string `json:"birthday"`
	Status       string `json:"status"`
}
