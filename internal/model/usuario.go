package model

import (
	"time"

	"github.com/google/uuid"
)

// Usuario is a system account.
// Funcao: "admin" | "moderator" | "employee"
// Senha is stored and compared as plain text — the original system works this
// way and hashing would break login for every pre-existing account. See
// DESIGN.md before changing this.
type Usuario struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome      string    `gorm:"not null"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Senha     string    `gorm:"not null" json:"-"`
	Funcao    string    `gorm:"type:varchar(20);not null;default:'employee'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Usuario) TableName() string { return "usuarios" }
