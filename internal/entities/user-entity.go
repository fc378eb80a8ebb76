package entities

import (
	"equipment-dashboard/pkg/types"
)

type User struct {
	ID       uint64 `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password_hash"`
	Role     string `json:"role" db:"role"`

	types.BaseEntity
}
