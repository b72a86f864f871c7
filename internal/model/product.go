package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry sold at the PDV.
// Price and StockQuantity are validated as non-negative by the service layer
// before any write reaches the database.
type Product struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"index;not null"`
	Description   *string
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	Category      *string
	CreatedAt     time.Time
}

// TableName keeps the original schema's table name.
func (Product) TableName() string { return "products" }
