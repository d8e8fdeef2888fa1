package model

import (
	"salon/shared/model"
	"time"
)

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

// Roles carried in actor tokens and checked against permissions.json.
const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

// Staff is a salon employee who signs in to manage appointments.
type Staff struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Name      string     `db:"name"`
	Role      string     `db:"role"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
