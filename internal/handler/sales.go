package handler

import (
	"net/http"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/apierror"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/middleware"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	svc  service.SaleService
	cart service.CartService
}

func NewSalesHandler(svc service.SaleService, cart service.CartService) *SalesHandler {
	return &SalesHandler{svc: svc, cart: cart}
}

// ─── Carrinho ────────────────────────────────────────────────────────────────

// VerCarrinho godoc
// @Summary      Ver carrinho da sessão
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CartResponse
// @Router       /v1/carrinho [get]
func (h *SalesHandler) VerCarrinho(c *gin.Context) {
	u := middleware.GetCurrentUser(c)
	c.JSON(http.StatusOK, h.cart.Ver(c.Request.Context(), u.ID))
}

// AdicionarItem godoc
// @Summary      Adicionar item ao carrinho
// @Description  A quantidade acumulada no carrinho não pode ultrapassar o estoque atual do produto.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdicionarItemRequest true "Item"
// @Success      200 {object} dto.CartResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/carrinho/itens [post]
func (h *SalesHandler) AdicionarItem(c *gin.Context) {
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u := middleware.GetCurrentUser(c)
	resp, err := h.cart.Adicionar(c.Request.Context(), u.ID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarItem godoc
// @Summary      Alterar quantidade de um item do carrinho
// @Description  Quantidade zero ou negativa remove o item.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string                    true "UUID do produto"
// @Param        body       body dto.AtualizarItemRequest true "Nova quantidade"
// @Success      200 {object} dto.CartResponse
// @Router       /v1/carrinho/itens/{product_id} [put]
func (h *SalesHandler) AtualizarItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	u := middleware.GetCurrentUser(c)
	resp, err := h.cart.AtualizarItem(c.Request.Context(), u.ID, productID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverItem godoc
// @Summary      Remover item do carrinho
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "UUID do produto"
// @Success      200 {object} dto.CartResponse
// @Router       /v1/carrinho/itens/{product_id} [delete]
func (h *SalesHandler) RemoverItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	u := middleware.GetCurrentUser(c)
	resp, err := h.cart.RemoverItem(c.Request.Context(), u.ID, productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LimparCarrinho godoc
// @Summary      Esvaziar o carrinho
// @Tags         vendas
// @Security     BearerAuth
// @Success      204
// @Router       /v1/carrinho [delete]
func (h *SalesHandler) LimparCarrinho(c *gin.Context) {
	h.cart.Limpar(middleware.GetCurrentUser(c).ID)
	c.Status(http.StatusNoContent)
}

// ─── Vendas ──────────────────────────────────────────────────────────────────

// FecharVenda godoc
// @Summary      Fechar venda
// @Description  Converte o carrinho da sessão em uma venda: baixa estoque e lança o movimento de caixa.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.FecharVendaRequest true "Cliente e forma de pagamento"
// @Success      201 {object} dto.SaleResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *SalesHandler) FecharVenda(c *gin.Context) {
	var req dto.FecharVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.FecharVenda(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary      Listar vendas
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.SaleResponse
// @Router       /v1/vendas [get]
func (h *SalesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObterPorID godoc
// @Summary      Buscar venda por ID
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *SalesHandler) ObterPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObterPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Excluir godoc
// @Summary      Excluir venda
// @Description  Restaura o estoque dos itens e remove o movimento de caixa associado.
// @Tags         vendas
// @Security     BearerAuth
// @Param        id path string true "UUID da venda"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [delete]
func (h *SalesHandler) Excluir(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Excluir(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
