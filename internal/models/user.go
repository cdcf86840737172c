package models

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleOwner    UserRole = "owner"
	RoleManager  UserRole = "manager"
)

// User is the minimal account shape this core needs: identity, role
// and contact details for notifications. Credential management lives
// in a separate service.
type User struct {
	ID    uuid.UUID `json:"id"`
	Role  UserRole  `json:"role"`
	Name  string    `json:"name"`
	Email string    `json:"email"`

	CreatedAt time.Time `json:"created_at"`
}
