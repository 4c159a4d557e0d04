package domain

import "time"

type User struct {
	ID           int64
	Name         string
	PasswordHash string // argon2 encoded
	RoleID       int64  // Foreign key to roles table
	CreatedAt    time.Time
}
