package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string // lowercase-normalized, unique
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
