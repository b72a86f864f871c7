package handler

import (
	"net/http"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/middleware"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary      Autenticar usuário
// @Description  Valida email e senha e abre uma sessão. O token retornado não expira; encerre com /logout.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body dto.LoginRequest true "Credenciais"
// @Success      200  {object} dto.LoginResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      Encerrar sessão
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.GetSessionToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Usuário da sessão atual
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UsuarioResponse
// @Router       /v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	u := middleware.GetCurrentUser(c)
	c.JSON(http.StatusOK, dto.UsuarioResponse{
		ID:     u.ID.String(),
		Nome:   u.Nome,
		Email:  u.Email,
		Funcao: u.Funcao,
	})
}
