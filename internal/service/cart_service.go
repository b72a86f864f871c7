package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cartLine is one product in a cart. UnitPrice is snapshotted when the line is
// first added; changing the catalog price later does not reprice an open cart.
type cartLine struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// CartService holds one open cart per account, in memory. Carts are working
// state, not records: a restart empties them, and only checkout turns a cart
// into a sale. All methods are safe for concurrent use.
type CartService interface {
	Adicionar(ctx context.Context, userID uuid.UUID, req dto.AdicionarItemRequest) (*dto.CartResponse, error)
	AtualizarItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.CartResponse, error)
	RemoverItem(ctx context.Context, userID, productID uuid.UUID) (*dto.CartResponse, error)
	Ver(ctx context.Context, userID uuid.UUID) *dto.CartResponse
	Limpar(userID uuid.UUID)

	// Snapshot returns the cart lines for checkout. The sale service owns
	// clearing the cart once the sale header is persisted.
	Snapshot(userID uuid.UUID) []cartLine
}

type cartService struct {
	mu       sync.Mutex
	carts    map[uuid.UUID][]cartLine
	products repository.ProductRepository
}

func NewCartService(products repository.ProductRepository) CartService {
	return &cartService{carts: make(map[uuid.UUID][]cartLine), products: products}
}

// Adicionar appends quantity to the user's cart line for the product, creating
// the line if absent. The cumulative cart quantity may not exceed the stock
// visible at the moment of the call; concurrent checkouts can still outrun
// this check, which the checkout clamp absorbs.
func (s *cartService) Adicionar(ctx context.Context, userID uuid.UUID, req dto.AdicionarItemRequest) (*dto.CartResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: product_id inválido", ErrInvalido)
	}

	p, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: produto", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	idx := -1
	inCart := 0
	for i, line := range lines {
		if line.ProductID == productID {
			idx = i
			inCart = line.Quantity
		}
	}
	if inCart+req.Quantity > p.StockQuantity {
		return nil, fmt.Errorf("%w: estoque insuficiente para %s (disponível: %d)", ErrConflito, p.Name, p.StockQuantity)
	}

	if idx >= 0 {
		lines[idx].Quantity += req.Quantity
	} else {
		lines = append(lines, cartLine{
			ProductID: productID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  req.Quantity,
		})
	}
	s.carts[userID] = lines
	return cartToResponse(lines), nil
}

// AtualizarItem sets the absolute quantity of a line. Zero or negative removes
// it.
func (s *cartService) AtualizarItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*dto.CartResponse, error) {
	if quantity <= 0 {
		return s.RemoverItem(ctx, userID, productID)
	}

	p, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: produto", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	if quantity > p.StockQuantity {
		return nil, fmt.Errorf("%w: estoque insuficiente para %s (disponível: %d)", ErrConflito, p.Name, p.StockQuantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity = quantity
			return cartToResponse(lines), nil
		}
	}
	return nil, fmt.Errorf("%w: item não está no carrinho", ErrNaoEncontrado)
}

func (s *cartService) RemoverItem(_ context.Context, userID, productID uuid.UUID) (*dto.CartResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.carts[userID]
	for i := range lines {
		if lines[i].ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			s.carts[userID] = lines
			return cartToResponse(lines), nil
		}
	}
	return nil, fmt.Errorf("%w: item não está no carrinho", ErrNaoEncontrado)
}

func (s *cartService) Ver(_ context.Context, userID uuid.UUID) *dto.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cartToResponse(s.carts[userID])
}

func (s *cartService) Limpar(userID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}

func (s *cartService) Snapshot(userID uuid.UUID) []cartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[userID]
	out := make([]cartLine, len(lines))
	copy(out, lines)
	return out
}

func cartToResponse(lines []cartLine) *dto.CartResponse {
	resp := &dto.CartResponse{Items: make([]dto.CartItemResponse, 0, len(lines)), Total: decimal.Zero}
	for _, line := range lines {
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID: line.ProductID.String(),
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
		resp.Total = resp.Total.Add(subtotal)
	}
	return resp
}
