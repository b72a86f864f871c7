package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarDespesaRequest takes the expense amount as a strictly positive
// value; the service stores it negated (type "expense", amount = -value).
type RegistrarDespesaRequest struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,max=500"`
}

type AtualizarDespesaRequest struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// MovimentoResponse carries a ledger entry. PaymentMethod is resolved from the
// associated sale when Type == "sale"; nil for every other movement type.
type MovimentoResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	SaleID        *string         `json:"sale_id"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// ResumoDiarioResponse is the daily cash summary for one calendar date.
// Total = Sales - Expenses; Cash+Credit+Debit == Sales when every sale's
// payment method is one of the three recognized values.
type ResumoDiarioResponse struct {
	Date       string          `json:"date"`
	Sales      decimal.Decimal `json:"sales"`
	Expenses   decimal.Decimal `json:"expenses"`
	Cash       decimal.Decimal `json:"cash"`
	Credit     decimal.Decimal `json:"credit"`
	Debit      decimal.Decimal `json:"debit"`
	Total      decimal.Decimal `json:"total"`
	SalesCount int             `json:"sales_count"`
}
