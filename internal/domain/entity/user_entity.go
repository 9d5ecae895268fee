package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// PasswordHash holds a bcrypt hash, or a legacy unsalted SHA-256 hex digest
// for accounts created before the bcrypt migration.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}
