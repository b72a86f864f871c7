package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/session"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AuthService authenticates accounts and manages their sessions.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	usuarios repository.UsuarioRepository
	sessions session.Store
}

func NewAuthService(usuarios repository.UsuarioRepository, sessions session.Store) AuthService {
	return &authService{usuarios: usuarios, sessions: sessions}
}

// Login matches email and senha exactly against the stored account. The
// generic failure message deliberately does not reveal which of the two was
// wrong.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	u, err := s.usuarios.FindByCredentials(ctx, req.Email, req.Senha)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: Email ou senha incorretos.", ErrInvalido)
	}
	if err != nil {
		return nil, err
	}

	token, err := s.sessions.Put(ctx, u)
	if err != nil {
		return nil, err
	}

	log.Info().Str("usuario_id", u.ID.String()).Str("funcao", u.Funcao).Msg("login")
	return &dto.LoginResponse{Token: token, User: usuarioToResponse(u)}, nil
}

// Logout drops the session. A token that no longer resolves is not an error:
// the end state is the same.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
