package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/cache"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/dto"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"
)

// The feed considers the three latest sales and the two latest products and
// customers, and keeps the three newest of those.
const (
	recentSalesLimit    = 3
	recentEntitiesLimit = 2
	recentFeedLimit     = 3
)

// DashboardService computes the landing-page aggregates. Both views are
// cached; every mutating service invalidates them.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	AtividadeRecente(ctx context.Context) ([]dto.AtividadeRecente, error)
}

type dashboardService struct {
	sales     repository.SaleRepository
	products  repository.ProductRepository
	customers repository.CustomerRepository
	views     *cache.QueryCache
}

func NewDashboardService(
	sales repository.SaleRepository,
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	views *cache.QueryCache,
) DashboardService {
	return &dashboardService{sales: sales, products: products, customers: customers, views: views}
}

// Stats returns today's sales total plus the catalog, customer and order
// counters.
func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var cached dto.DashboardStatsResponse
	if s.views.GetJSON(ctx, cache.KeyDashboardStats, &cached) {
		return &cached, nil
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	to := from.Add(24*time.Hour - time.Nanosecond)

	todays, err := s.sales.SumCompletedBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	orders, err := s.sales.CountBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	productsCount, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	customersCount, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := dto.DashboardStatsResponse{
		TodaysSales:    todays,
		ProductsCount:  productsCount,
		CustomersCount: customersCount,
		OrdersCount:    orders,
	}
	s.views.SetJSON(ctx, cache.KeyDashboardStats, &resp)
	return &resp, nil
}

// AtividadeRecente interleaves the latest sales, products and customers by
// creation time, newest first.
func (s *dashboardService) AtividadeRecente(ctx context.Context) ([]dto.AtividadeRecente, error) {
	var cached []dto.AtividadeRecente
	if s.views.GetJSON(ctx, cache.KeyRecentActivity, &cached) {
		return cached, nil
	}

	type entry struct {
		at  time.Time
		out dto.AtividadeRecente
	}
	var entries []entry

	sales, err := s.sales.ListRecent(ctx, recentSalesLimit)
	if err != nil {
		return nil, err
	}
	for i := range sales {
		sale := &sales[i]
		name := "Cliente"
		if sale.Customer != nil {
			name = sale.Customer.Name
		}
		entries = append(entries, entry{at: sale.CreatedAt, out: dto.AtividadeRecente{
			Type:        "sale",
			ID:          sale.ID.String(),
			Title:       "Venda realizada",
			Description: fmt.Sprintf("%s - R$ %s", name, sale.TotalAmount.StringFixed(2)),
			CreatedAt:   sale.CreatedAt.Format(time.RFC3339),
		}})
	}

	products, err := s.products.ListRecent(ctx, recentEntitiesLimit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		entries = append(entries, entry{at: p.CreatedAt, out: dto.AtividadeRecente{
			Type:        "product",
			ID:          p.ID.String(),
			Title:       "Produto cadastrado",
			Description: p.Name,
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		}})
	}

	customers, err := s.customers.ListRecent(ctx, recentEntitiesLimit)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		c := &customers[i]
		entries = append(entries, entry{at: c.CreatedAt, out: dto.AtividadeRecente{
			Type:        "customer",
			ID:          c.ID.String(),
			Title:       "Cliente cadastrado",
			Description: c.Name,
			CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		}})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].at.After(entries[j].at) })
	if len(entries) > recentFeedLimit {
		entries = entries[:recentFeedLimit]
	}

	out := make([]dto.AtividadeRecente, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.out)
	}
	s.views.SetJSON(ctx, cache.KeyRecentActivity, out)
	return out, nil
}
