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

// CashService is the cash ledger: sale movements written by the sale workflow,
// expenses registered by hand, and the daily summary derived from both.
// Only expense movements can be edited or removed here — sale movements follow
// their sale's lifecycle.
type CashService interface {
	ListarMovimentos(ctx context.Context) ([]dto.MovimentoResponse, error)
	ListarMovimentosPorData(ctx context.Context, date string) ([]dto.MovimentoResponse, error)
	RegistrarDespesa(ctx context.Context, actor *model.Usuario, req dto.RegistrarDespesaRequest) (*dto.MovimentoResponse, error)
	AtualizarDespesa(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.MovimentoResponse, error)
	ExcluirDespesa(ctx context.Context, actor *model.Usuario, id uuid.UUID) error
	ResumoDiario(ctx context.Context, date string) (*dto.ResumoDiarioResponse, error)
}

type cashService struct {
	repo  repository.CashMovementRepository
	views *cache.QueryCache
}

func NewCashService(repo repository.CashMovementRepository, views *cache.QueryCache) CashService {
	return &cashService{repo: repo, views: views}
}

func (s *cashService) ListarMovimentos(ctx context.Context) ([]dto.MovimentoResponse, error) {
	movements, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoResponse, 0, len(movements))
	for i := range movements {
		out = append(out, *movimentoToResponse(&movements[i], nil))
	}
	return out, nil
}

// ListarMovimentosPorData returns one calendar date's movements in insertion
// order, each sale movement carrying its sale's payment method.
func (s *cashService) ListarMovimentosPorData(ctx context.Context, date string) ([]dto.MovimentoResponse, error) {
	from, to, err := dayBounds(date)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimentoResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *movimentoToResponse(&rows[i].CashMovement, rows[i].PaymentMethod))
	}
	return out, nil
}

// RegistrarDespesa takes a strictly positive amount and stores it negated: the
// ledger keeps signed values, and an expense always subtracts.
func (s *cashService) RegistrarDespesa(ctx context.Context, actor *model.Usuario, req dto.RegistrarDespesaRequest) (*dto.MovimentoResponse, error) {
	if !permission.CanManageSales(actor.Funcao) {
		return nil, ErrSemPermissao
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: valor da despesa deve ser maior que zero", ErrInvalido)
	}

	m := &model.CashMovement{
		UserID:      actor.ID,
		Type:        model.MovementExpense,
		Amount:      req.Amount.Neg(),
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.views.InvalidateCashSummaries(ctx)
	return movimentoToResponse(m, nil), nil
}

func (s *cashService) AtualizarDespesa(ctx context.Context, actor *model.Usuario, id uuid.UUID, req dto.AtualizarDespesaRequest) (*dto.MovimentoResponse, error) {
	if !permission.CanManageSales(actor.Funcao) {
		return nil, ErrSemPermissao
	}

	m, err := s.findExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: valor da despesa deve ser maior que zero", ErrInvalido)
	}

	m.Amount = req.Amount.Neg()
	m.Description = req.Description
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.views.InvalidateCashSummaries(ctx)
	return movimentoToResponse(m, nil), nil
}

func (s *cashService) ExcluirDespesa(ctx context.Context, actor *model.Usuario, id uuid.UUID) error {
	if !permission.CanManageSales(actor.Funcao) {
		return ErrSemPermissao
	}

	if _, err := s.findExpense(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.views.InvalidateCashSummaries(ctx)
	return nil
}

func (s *cashService) findExpense(ctx context.Context, id uuid.UUID) (*model.CashMovement, error) {
	m, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: movimento", ErrNaoEncontrado)
	}
	if err != nil {
		return nil, err
	}
	if m.Type != model.MovementExpense {
		return nil, fmt.Errorf("%w: apenas despesas podem ser alteradas", ErrConflito)
	}
	return m, nil
}

// ─── ResumoDiario ────────────────────────────────────────────────────────────
// One calendar date's totals. Sale movements add to Sales and to the bucket of
// their sale's payment method (cash when the method is absent or unknown);
// expenses accumulate as absolute values; opening and closing movements are
// listed in the ledger but fold into no bucket. Total = Sales - Expenses.

func (s *cashService) ResumoDiario(ctx context.Context, date string) (*dto.ResumoDiarioResponse, error) {
	from, to, err := dayBounds(date)
	if err != nil {
		return nil, err
	}

	key := cache.KeyCashSummary(date)
	var cached dto.ResumoDiarioResponse
	if s.views.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.repo.ListByDate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := dto.ResumoDiarioResponse{Date: date}
	for _, row := range rows {
		switch row.Type {
		case model.MovementSale:
			resp.Sales = resp.Sales.Add(row.Amount)
			resp.SalesCount++
			switch method(row.PaymentMethod) {
			case "credit":
				resp.Credit = resp.Credit.Add(row.Amount)
			case "debit":
				resp.Debit = resp.Debit.Add(row.Amount)
			default:
				resp.Cash = resp.Cash.Add(row.Amount)
			}
		case model.MovementExpense:
			resp.Expenses = resp.Expenses.Add(row.Amount.Abs())
		}
	}
	resp.Total = resp.Sales.Sub(resp.Expenses)

	s.views.SetJSON(ctx, key, &resp)
	return &resp, nil
}

// dayBounds turns a YYYY-MM-DD string into the local-time [from, to] range
// covering that calendar date.
func dayBounds(date string) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: data deve ser YYYY-MM-DD", ErrInvalido)
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.Local)
	return from, from.Add(24*time.Hour - time.Nanosecond), nil
}

func method(m *string) string {
	if m == nil {
		return "cash"
	}
	return *m
}

func movimentoToResponse(m *model.CashMovement, paymentMethod *string) *dto.MovimentoResponse {
	resp := &dto.MovimentoResponse{
		ID:            m.ID.String(),
		UserID:        m.UserID.String(),
		Type:          m.Type,
		Amount:        m.Amount,
		Description:   m.Description,
		PaymentMethod: paymentMethod,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.SaleID != nil {
		id := m.SaleID.String()
		resp.SaleID = &id
	}
	return resp
}
