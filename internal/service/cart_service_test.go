package service

import (
	"context"
	"testing"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCarrinhoAdicionarESomar(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	cart := NewCartService(products)
	userID := uuid.New()

	morango := products.seed("Morango 500g", "12.50", 10)

	resp, err := cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 2})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("25.00")))

	// Same product accumulates into the existing line
	resp, err = cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 3})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("62.50")))
}

func TestCarrinhoRespeitaEstoque(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	cart := NewCartService(products)
	userID := uuid.New()

	morango := products.seed("Morango 500g", "12.50", 5)

	_, err := cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 3})
	require.NoError(t, err)

	// 3 already in cart + 3 more > 5 in stock
	_, err = cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 3})
	assert.ErrorIs(t, err, ErrConflito)

	// Absolute update above stock also fails
	_, err = cart.AtualizarItem(ctx, userID, morango.ID, 6)
	assert.ErrorIs(t, err, ErrConflito)
}

func TestCarrinhoAtualizarERemover(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	cart := NewCartService(products)
	userID := uuid.New()

	morango := products.seed("Morango 500g", "12.50", 10)
	_, err := cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 2})
	require.NoError(t, err)

	resp, err := cart.AtualizarItem(ctx, userID, morango.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Items[0].Quantity)

	// Quantity zero removes the line
	resp, err = cart.AtualizarItem(ctx, userID, morango.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
}

func TestCarrinhoIsoladoPorUsuario(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	cart := NewCartService(products)
	alice, bob := uuid.New(), uuid.New()

	morango := products.seed("Morango 500g", "12.50", 10)
	_, err := cart.Adicionar(ctx, alice, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 2})
	require.NoError(t, err)

	assert.Len(t, cart.Ver(ctx, alice).Items, 1)
	assert.Empty(t, cart.Ver(ctx, bob).Items)

	cart.Limpar(alice)
	assert.Empty(t, cart.Ver(ctx, alice).Items)
}

func TestCarrinhoPrecoCongeladoNaAdicao(t *testing.T) {
	ctx := context.Background()
	products := newStubProductRepo()
	cart := NewCartService(products)
	userID := uuid.New()

	morango := products.seed("Morango 500g", "12.50", 10)
	_, err := cart.Adicionar(ctx, userID, dto.AdicionarItemRequest{ProductID: morango.ID.String(), Quantity: 1})
	require.NoError(t, err)

	// Catalog price change does not reprice the open cart line
	p, _ := products.FindByID(ctx, morango.ID)
	p.Price = decimal.RequireFromString("99.99")
	require.NoError(t, products.Update(ctx, p))

	resp := cart.Ver(ctx, userID)
	assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.50")))
}
