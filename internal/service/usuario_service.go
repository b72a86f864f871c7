package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/permission"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsuarioService administers accounts. Every operation requires the admin
// role, re-checked here regardless of route gating. Email uniqueness is
// pre-checked for a friendly message; the unique index on the column is what
// actually guarantees it.
type UsuarioService interface {
	Listar(ctx context.Context, actor *model.Usuario) ([]dto.UsuarioResponse, error)
	Criar(ctx context.Context, actor *model.Usuario, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	Atualizar(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error
}

type usuarioService struct {
	repo      repository.UsuarioRepository
	sales     repository.SaleRepository
	movements repository.CashMovementRepository
}

func NewUsuarioService(repo repository.UsuarioRepository, sales repository.SaleRepository, movements repository.CashMovementRepository) UsuarioService {
	return &usuarioService{repo: repo, sales: sales, movements: movements}
}

func (s *usuarioService) Listar(ctx context.Context, actor *model.Usuario) ([]dto.UsuarioResponse, error) {
	if !permission.CanManageUsers(actor.Funcao) {
		return nil, ErrSemPermissao
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(users))
	for i := range users {
		out = append(out, usuarioToResponse(&users[i]))
	}
	return out, nil
}

func (s *usuarioService) Criar(ctx context.Context, actor *model.Usuario, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if !permission.CanManageUsers(actor.Funcao) {
		return nil, ErrSemPermissao
	}

	if !emailRe.MatchString(req.Email) {
		return nil, fmt.Errorf("%w: email inválido", ErrInvalido)
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("%w: Este email já está em uso.", ErrConflito)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	u := &model.Usuario{
		Nome:   req.Nome,
		Email:  req.Email,
		Senha:  req.Senha,
		Funcao: req.Funcao,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

func (s *usuarioService) Atualizar(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if !permission.CanManageUsers(actor.Funcao) {
		return nil, ErrSemPermissao
	}

	u, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: usuário", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != u.Email {
		if !emailRe.MatchString(*req.Email) {
			return nil, fmt.Errorf("%w: email inválido", ErrInvalido)
		}
		if _, err := s.repo.FindByEmailExcluding(ctx, *req.Email, id); err == nil {
			return nil, fmt.Errorf("%w: Este email já está em uso.", ErrConflito)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		u.Email = *req.Email
	}
	if req.Nome != nil {
		if *req.Nome == "" {
			return nil, fmt.Errorf("%w: nome é obrigatório", ErrInvalido)
		}
		u.Nome = *req.Nome
	}
	// A blank senha means "keep the current one".
	if req.Senha != nil && *req.Senha != "" {
		u.Senha = *req.Senha
	}
	if req.Funcao != nil {
		u.Funcao = *req.Funcao
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(u)
	return &resp, nil
}

// Excluir refuses to remove the acting admin's own account, and any account
// that already appears in the sale or ledger history.
func (s *usuarioService) Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error {
	if !permission.CanManageUsers(actor.Funcao) {
		return ErrSemPermissao
	}
	if actor.ID == id {
		return fmt.Errorf("%w: você não pode excluir seu próprio usuário", ErrConflito)
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: usuário", ErrNaoEncontrado)
		}
		return err
	}

	hasSales, err := s.sales.HasSalesForUser(ctx, id)
	if err != nil {
		return err
	}
	if hasSales {
		return fmt.Errorf("%w: usuário possui vendas registradas e não pode ser excluído", ErrConflito)
	}
	hasMovements, err := s.movements.HasMovementsForUser(ctx, id)
	if err != nil {
		return err
	}
	if hasMovements {
		return fmt.Errorf("%w: usuário possui movimentos de caixa e não pode ser excluído", ErrConflito)
	}

	return s.repo.Delete(ctx, id)
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:        u.ID.String(),
		Nome:      u.Nome,
		Email:     u.Email,
		Funcao:    u.Funcao,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
