package handler

import (
	"net/http"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct{ svc service.DashboardService }

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats godoc
// @Summary      Indicadores do dia
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardStatsResponse
// @Router       /v1/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtividadeRecente godoc
// @Summary      Atividade recente
// @Description  Últimas vendas, produtos e clientes intercalados por data de criação.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AtividadeRecente
// @Router       /v1/dashboard/atividade [get]
func (h *DashboardHandler) AtividadeRecente(c *gin.Context) {
	resp, err := h.svc.AtividadeRecente(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
