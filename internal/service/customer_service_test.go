package service

import (
	"context"
	"testing"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomerFixture() (*stubCustomerRepo, *stubSaleRepo, CustomerService) {
	customers := newStubCustomerRepo()
	sales := newStubSaleRepo(newStubCashMovementRepo())
	return customers, sales, NewCustomerService(customers, sales, nil)
}

func TestCriarCliente(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newCustomerFixture()

	resp, err := svc.Criar(ctx, dto.CriarClienteRequest{
		Name:  "Maria da Silva",
		Email: ptr("maria@exemplo.com"),
		Phone: ptr("11999990000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria da Silva", resp.Name)
	require.NotNil(t, resp.Email)
	assert.Equal(t, "maria@exemplo.com", *resp.Email)
}

func TestCriarClienteEmailInvalido(t *testing.T) {
	_, _, svc := newCustomerFixture()
	_, err := svc.Criar(context.Background(), dto.CriarClienteRequest{
		Name:  "Maria",
		Email: ptr("sem-arroba"),
	})
	assert.ErrorIs(t, err, ErrInvalido)
}

func TestCriarClienteEmailVazioVistoComoAusente(t *testing.T) {
	_, _, svc := newCustomerFixture()
	resp, err := svc.Criar(context.Background(), dto.CriarClienteRequest{
		Name:  "Maria",
		Email: ptr(""),
	})
	require.NoError(t, err)
	assert.Nil(t, resp.Email)
}

func TestExcluirClienteComVendas(t *testing.T) {
	ctx := context.Background()
	customers, sales, svc := newCustomerFixture()
	c := customers.seed("Maria")

	require.NoError(t, sales.Create(ctx, &model.Sale{CustomerID: c.ID, Status: "completed"}))

	err := svc.Excluir(ctx, c.ID)
	assert.ErrorIs(t, err, ErrConflito)
}

func TestExcluirClienteSemVendas(t *testing.T) {
	ctx := context.Background()
	customers, _, svc := newCustomerFixture()
	c := customers.seed("Maria")

	require.NoError(t, svc.Excluir(ctx, c.ID))
	_, err := svc.ObterPorID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNaoEncontrado)
}
