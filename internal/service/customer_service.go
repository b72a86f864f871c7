package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/cache"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// emailRe is the basic local@domain.tld shape; an empty email is allowed and
// stored as absent.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CustomerService manages the customer registry. Every authenticated account
// may read and write customers; deletion is guarded by sale history.
type CustomerService interface {
	Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context) ([]dto.ClienteResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo  repository.CustomerRepository
	sales repository.SaleRepository
	views *cache.QueryCache
}

func NewCustomerService(repo repository.CustomerRepository, sales repository.SaleRepository, views *cache.QueryCache) CustomerService {
	return &customerService{repo: repo, sales: sales, views: views}
}

func (s *customerService) Criar(ctx context.Context, req dto.CriarClienteRequest) (*dto.ClienteResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	c := &model.Customer{
		Name:    req.Name,
		Email:   email,
		Phone:   req.Phone,
		Address: req.Address,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return clienteToResponse(c), nil
}

func (s *customerService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cliente", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *customerService) Listar(ctx context.Context) ([]dto.ClienteResponse, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(customers))
	for i := range customers {
		out = append(out, *clienteToResponse(&customers[i]))
	}
	return out, nil
}

func (s *customerService) Atualizar(ctx context.Context, id uuid.UUID, req dto.AtualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cliente", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: nome é obrigatório", ErrInvalido)
		}
		c.Name = *req.Name
	}
	if req.Email != nil {
		email, err := normalizeEmail(req.Email)
		if err != nil {
			return nil, err
		}
		c.Email = email
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return clienteToResponse(c), nil
}

func (s *customerService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cliente", ErrNaoEncontrado)
		}
		return err
	}

	referenced, err := s.sales.HasSalesForCustomer(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: cliente possui vendas registradas e não pode ser excluído", ErrConflito)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return nil
}

// normalizeEmail treats the empty string as absent and validates the rest.
func normalizeEmail(email *string) (*string, error) {
	if email == nil || *email == "" {
		return nil, nil
	}
	if !emailRe.MatchString(*email) {
		return nil, fmt.Errorf("%w: email inválido", ErrInvalido)
	}
	return email, nil
}

func clienteToResponse(c *model.Customer) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
