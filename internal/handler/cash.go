package handler

import (
	"net/http"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/apierror"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/middleware"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// ListarMovimentos godoc
// @Summary      Listar movimentos de caixa
// @Description  Sem filtro, lista tudo do mais recente ao mais antigo. Com
// @Description  ?date, lista o dia em ordem cronológica com a forma de
// @Description  pagamento de cada venda.
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Data YYYY-MM-DD"
// @Success      200 {array} dto.MovimentoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/caixa/movimentos [get]
func (h *CashHandler) ListarMovimentos(c *gin.Context) {
	var (
		resp []dto.MovimentoResponse
		err  error
	)
	if date := c.Query("date"); date != "" {
		resp, err = h.svc.ListarMovimentosPorData(c.Request.Context(), date)
	} else {
		resp, err = h.svc.ListarMovimentos(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarDespesa godoc
// @Summary      Registrar despesa
// @Description  O valor é sempre lançado como negativo no livro caixa.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarDespesaRequest true "Despesa"
// @Success      201 {object} dto.MovimentoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/caixa/despesas [post]
func (h *CashHandler) RegistrarDespesa(c *gin.Context) {
	var req dto.RegistrarDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarDespesa(c.Request.Context(), middleware.GetCurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AtualizarDespesa godoc
// @Summary      Atualizar despesa
// @Description  Apenas movimentos do tipo despesa podem ser alterados.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                      true "UUID do movimento"
// @Param        body body dto.AtualizarDespesaRequest true "Novos dados"
// @Success      200 {object} dto.MovimentoResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caixa/despesas/{id} [put]
func (h *CashHandler) AtualizarDespesa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AtualizarDespesaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AtualizarDespesa(c.Request.Context(), middleware.GetCurrentUser(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExcluirDespesa godoc
// @Summary      Excluir despesa
// @Tags         caixa
// @Security     BearerAuth
// @Param        id path string true "UUID do movimento"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caixa/despesas/{id} [delete]
func (h *CashHandler) ExcluirDespesa(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.ExcluirDespesa(c.Request.Context(), middleware.GetCurrentUser(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ResumoDiario godoc
// @Summary      Resumo diário do caixa
// @Description  Totais de vendas por forma de pagamento, despesas e saldo do dia.
// @Tags         caixa
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Data YYYY-MM-DD (default: hoje)"
// @Success      200 {object} dto.ResumoDiarioResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/caixa/resumo [get]
func (h *CashHandler) ResumoDiario(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	resp, err := h.svc.ResumoDiario(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
