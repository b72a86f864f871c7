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
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService turns carts into sales and keeps stock and the cash ledger in
// step with them.
//
// Checkout is deliberately a sequence of independent writes, not one
// transaction: the sale header is the source of truth, and stock or ledger
// writes that fail afterwards are logged and repaired later (the ledger by the
// reconcile worker). Deleting a sale walks the same steps backwards.
type SaleService interface {
	FecharVenda(ctx context.Context, actor *model.Usuario, req dto.FecharVendaRequest) (*dto.SaleResponse, error)
	ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	Listar(ctx context.Context) ([]dto.SaleResponse, error)
	Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error
}

type saleService struct {
	repo      repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	movements repository.CashMovementRepository
	cart      CartService
	views     *cache.QueryCache
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	movements repository.CashMovementRepository,
	cart CartService,
	views *cache.QueryCache,
) SaleService {
	return &saleService{
		repo:      repo,
		products:  products,
		customers: customers,
		movements: movements,
		cart:      cart,
		views:     views,
	}
}

// ─── FecharVenda ─────────────────────────────────────────────────────────────
// Checkout sequence:
//  1. snapshot the actor's cart (must be non-empty) and total it
//  2. resolve the customer
//  3. verify stock covers every line; a shortfall aborts with nothing written
//  4. persist the sale header, then its lines
//  5. per line: stock = max(0, stock - quantity), written back absolutely
//  6. probe-then-insert the sale's ledger movement (unique sale_id backs it)
//  7. clear the cart, drop the cached views
//
// Steps 5 and 6 never fail the sale: once the header exists the sale happened,
// and a missed write is logged for repair. The clamp in step 5 only covers
// stock drained by a concurrent checkout between steps 3 and 4.

func (s *saleService) FecharVenda(ctx context.Context, actor *model.Usuario, req dto.FecharVendaRequest) (*dto.SaleResponse, error) {
	if !permission.CanManageSales(actor.Funcao) {
		return nil, ErrSemPermissao
	}

	lines := s.cart.Snapshot(actor.ID)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: carrinho vazio", ErrInvalido)
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer_id inválido", ErrInvalido)
	}
	if _, err := s.customers.FindByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cliente", ErrNaoEncontrado)
		}
		return nil, err
	}

	for _, line := range lines {
		p, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: produto", ErrNaoEncontrado)
			}
			return nil, err
		}
		if line.Quantity > p.StockQuantity {
			return nil, fmt.Errorf("%w: estoque insuficiente para %s (disponível: %d)",
				ErrConflito, p.Name, p.StockQuantity)
		}
	}

	method := req.PaymentMethod
	if method == "" {
		method = "cash"
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	sale := &model.Sale{
		CustomerID:    customerID,
		UserID:        actor.ID,
		TotalAmount:   total,
		Status:        "completed",
		PaymentMethod: method,
	}
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}

	items := make([]model.SaleItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, model.SaleItem{
			SaleID:     sale.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}
	if err := s.repo.CreateItems(ctx, items); err != nil {
		return nil, err
	}

	for _, line := range lines {
		s.decrementStock(ctx, sale.ID, line.ProductID, line.Quantity)
	}

	s.registerSaleMovement(ctx, sale)

	s.cart.Limpar(actor.ID)
	s.invalidateSaleViews(ctx)

	return s.ObterPorID(ctx, sale.ID)
}

// decrementStock applies max(0, stock - qty) as an absolute write. Failures
// are logged, never propagated: the sale already exists.
func (s *saleService) decrementStock(ctx context.Context, saleID, productID uuid.UUID, qty int) {
	p, err := s.products.FindByID(ctx, productID)
	if err != nil {
		log.Error().Str("sale_id", saleID.String()).Str("product_id", productID.String()).
			Err(err).Msg("stock read failed after sale")
		return
	}
	newStock := p.StockQuantity - qty
	if newStock < 0 {
		newStock = 0
	}
	if err := s.products.UpdateStock(ctx, productID, newStock); err != nil {
		log.Error().Str("sale_id", saleID.String()).Str("product_id", productID.String()).
			Err(err).Msg("stock write failed after sale")
	}
}

// registerSaleMovement records the sale in the cash ledger, once. The probe
// keeps retries idempotent; the unique index on sale_id catches the race the
// probe cannot.
func (s *saleService) registerSaleMovement(ctx context.Context, sale *model.Sale) {
	exists, err := s.movements.ExistsForSale(ctx, sale.ID)
	if err != nil {
		log.Error().Str("sale_id", sale.ID.String()).Err(err).Msg("ledger probe failed")
		return
	}
	if exists {
		return
	}

	saleID := sale.ID
	m := &model.CashMovement{
		UserID:      sale.UserID,
		Type:        model.MovementSale,
		Amount:      sale.TotalAmount,
		Description: fmt.Sprintf("Venda #%s - %s", sale.ID.String()[:8], sale.PaymentMethod),
		SaleID:      &saleID,
	}
	if err := s.movements.Create(ctx, m); err != nil {
		log.Error().Str("sale_id", sale.ID.String()).Err(err).Msg("ledger write failed after sale")
	}
}

func (s *saleService) ObterPorID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: venda", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	return saleToResponse(sale), nil
}

func (s *saleService) Listar(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

// Excluir undoes a sale: stock is restored line by line, then the lines, the
// ledger movement and finally the header are removed, in that order. A stock
// restore that fails is logged and skipped; the deletion still proceeds.
func (s *saleService) Excluir(ctx context.Context, actor *model.Usuario, id uuid.UUID) error {
	if !permission.CanManageSales(actor.Funcao) {
		return ErrSemPermissao
	}

	sale, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: venda", ErrNaoEncontrado)
	}
	if err != nil {
		return err
	}

	for _, item := range sale.Items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			log.Error().Str("sale_id", id.String()).Str("product_id", item.ProductID.String()).
				Err(err).Msg("stock read failed during sale deletion")
			continue
		}
		if err := s.products.UpdateStock(ctx, item.ProductID, p.StockQuantity+item.Quantity); err != nil {
			log.Error().Str("sale_id", id.String()).Str("product_id", item.ProductID.String()).
				Err(err).Msg("stock restore failed during sale deletion")
		}
	}

	if err := s.repo.DeleteItems(ctx, id); err != nil {
		return err
	}
	if err := s.movements.DeleteBySaleID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSaleViews(ctx)
	return nil
}

func (s *saleService) invalidateSaleViews(ctx context.Context) {
	s.views.Invalidate(ctx, cache.KeyDashboardStats, cache.KeyRecentActivity)
	s.views.InvalidateCashSummaries(ctx)
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		CustomerID:    sale.CustomerID.String(),
		UserID:        sale.UserID.String(),
		TotalAmount:   sale.TotalAmount,
		Status:        sale.Status,
		PaymentMethod: sale.PaymentMethod,
		Items:         make([]dto.SaleItemResponse, 0, len(sale.Items)),
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
	if sale.Customer != nil {
		resp.CustomerName = sale.Customer.Name
	}
	for _, item := range sale.Items {
		line := dto.SaleItemResponse{
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
		if item.Product != nil {
			line.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
