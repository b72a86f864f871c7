package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarProdutoRequest struct {
	Name          string           `json:"name"           validate:"required"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"          validate:"required"`
	StockQuantity *int             `json:"stock_quantity" validate:"required"`
	Category      *string          `json:"category"`
}

// AtualizarProdutoRequest is a partial update: nil fields are left untouched,
// supplied fields go through the same validation as on create.
type AtualizarProdutoRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity"`
	Category      *string          `json:"category"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProdutoResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Category      *string         `json:"category"`
	CreatedAt     string          `json:"created_at"`
}
