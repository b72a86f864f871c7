package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a registered buyer. Only Name is mandatory; Email, when present,
// must match the basic local@domain.tld pattern (checked in the service layer).
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Email     *string
	Phone     *string
	Address   *string
	CreatedAt time.Time
}

func (Customer) TableName() string { return "customers" }
