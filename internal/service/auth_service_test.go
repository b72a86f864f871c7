package service

import (
	"context"
	"testing"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	usuarios := newStubUsuarioRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(usuarios, sessions)

	usuarios.seed(&model.Usuario{Nome: "Admin", Email: "admin@morango.com", Senha: "admin123", Funcao: "admin"})

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@morango.com", Senha: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin@morango.com", resp.User.Email)
	assert.Equal(t, "admin", resp.User.Funcao)

	// Token resolves to the stored account
	u, err := sessions.Get(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Nome)
}

func TestLoginCredenciaisIncorretas(t *testing.T) {
	ctx := context.Background()
	usuarios := newStubUsuarioRepo()
	svc := NewAuthService(usuarios, newStubSessionStore())

	usuarios.seed(&model.Usuario{Nome: "Admin", Email: "admin@morango.com", Senha: "admin123", Funcao: "admin"})

	// Wrong senha and unknown email produce the same message
	for _, req := range []dto.LoginRequest{
		{Email: "admin@morango.com", Senha: "errada"},
		{Email: "quem@morango.com", Senha: "admin123"},
	} {
		_, err := svc.Login(ctx, req)
		assert.ErrorIs(t, err, ErrInvalido)
		assert.Contains(t, err.Error(), "Email ou senha incorretos.")
	}
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	usuarios := newStubUsuarioRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(usuarios, sessions)

	usuarios.seed(&model.Usuario{Nome: "Admin", Email: "admin@morango.com", Senha: "admin123", Funcao: "admin"})
	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@morango.com", Senha: "admin123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, resp.Token))
	_, err = sessions.Get(ctx, resp.Token)
	assert.Error(t, err)

	// Logging out an already-dead token is not an error
	assert.NoError(t, svc.Logout(ctx, resp.Token))
}
