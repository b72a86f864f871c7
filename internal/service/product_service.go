package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/cache"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/permission"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService is the business logic for the catalog. Reads are open to any
// authenticated account; mutations re-check the actor's capability even though
// the route is already gated, so a service caller can never bypass the rule.
type ProductService interface {
	Criar(ctx context.Context, actor *model.Usuario, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	sales repository.SaleRepository
	views *cache.QueryCache
}

func NewProductService(repo repository.ProductRepository, sales repository.SaleRepository, views *cache.QueryCache) ProductService {
	return &productService{repo: repo, sales: sales, views: views}
}

func (s *productService) Criar(ctx context.Context, actor *model.Usuario, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if !permission.CanManageProducts(actor.Funcao) {
		return nil, ErrSemPermissao
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: preço não pode ser negativo", ErrInvalido)
	}
	if *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: estoque não pode ser negativo", ErrInvalido)
	}

	p := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		StockQuantity: *req.StockQuantity,
		Category:      req.Category,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return produtoToResponse(p), nil
}

func (s *productService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.ProdutoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: produto", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	return produtoToResponse(p), nil
}

func (s *productService) Listar(ctx context.Context) ([]dto.ProdutoResponse, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(products))
	for i := range products {
		out = append(out, *produtoToResponse(&products[i]))
	}
	return out, nil
}

func (s *productService) Atualizar(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	if !permission.CanManageProducts(actor.Funcao) {
		return nil, ErrSemPermissao
	}
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: produto", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: nome é obrigatório", ErrInvalido)
		}
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("%w: preço não pode ser negativo", ErrInvalido)
		}
		p.Price = *req.Price
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return nil, fmt.Errorf("%w: estoque não pode ser negativo", ErrInvalido)
		}
		p.StockQuantity = *req.StockQuantity
	}
	if req.Category != nil {
		p.Category = req.Category
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return produtoToResponse(p), nil
}

// Excluir refuses to remove a product referenced by any sale line, keeping the
// sale history readable.
func (s *productService) Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error {
	if !permission.CanManageProducts(actor.Funcao) {
		return ErrSemPermissao
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: produto", ErrNaoEncontrado)
		}
		return err
	}

	referenced, err := s.sales.HasItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: produto possui vendas registradas e não pode ser excluído", ErrConflito)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	return nil
}

func produtoToResponse(p *model.Product) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
