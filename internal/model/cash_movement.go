package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Movement types recognized by the cash ledger.
const (
	MovementSale    = "sale"
	MovementExpense = "expense"
	MovementOpening = "opening"
	MovementClosing = "closing"
)

// CashMovement is an entry in the cash ledger.
// Amount is signed: positive for sales/openings, negative for expenses.
// SaleID carries a unique index so the database backs the probe-then-insert
// dedupe done by the sale service (at most one sale movement per sale).
type CashMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"not null"`
	SaleID      *uuid.UUID      `gorm:"type:uuid;uniqueIndex"`
	CreatedAt   time.Time
}

func (CashMovement) TableName() string { return "cash_movements" }
