package worker

import (
	"context"
	"testing"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeLedger implements just enough of the sale and movement repositories for
// the reconcile pass: completed sales on one side, their movements on the
// other.
type fakeLedger struct {
	sales     []model.Sale
	movements []model.CashMovement
}

// ── repository.SaleRepository ────────────────────────────────────────────────

func (f *fakeLedger) Create(_ context.Context, s *model.Sale) error {
	f.sales = append(f.sales, *s)
	return nil
}

func (f *fakeLedger) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	for i := range f.sales {
		if f.sales[i].ID == id {
			return &f.sales[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedger) List(_ context.Context) ([]model.Sale, error) { return f.sales, nil }

func (f *fakeLedger) ListRecent(_ context.Context, _ int) ([]model.Sale, error) {
	return f.sales, nil
}

func (f *fakeLedger) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeLedger) CreateItems(_ context.Context, _ []model.SaleItem) error { return nil }

func (f *fakeLedger) ListItems(_ context.Context, _ uuid.UUID) ([]model.SaleItem, error) {
	return nil, nil
}

func (f *fakeLedger) DeleteItems(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeLedger) HasItemsForProduct(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeLedger) HasSalesForCustomer(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeLedger) HasSalesForUser(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

func (f *fakeLedger) SumCompletedBetween(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeLedger) CountBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeLedger) ListCompletedWithoutMovement(_ context.Context, olderThan time.Time, limit int) ([]model.Sale, error) {
	var out []model.Sale
	for _, s := range f.sales {
		if s.Status != "completed" || !s.CreatedAt.Before(olderThan) {
			continue
		}
		if f.movementFor(s.ID) != nil {
			continue
		}
		out = append(out, s)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// ── repository.CashMovementRepository ────────────────────────────────────────

type fakeMovements struct{ ledger *fakeLedger }

func (f *fakeLedger) movementFor(saleID uuid.UUID) *model.CashMovement {
	for i := range f.movements {
		m := &f.movements[i]
		if m.SaleID != nil && *m.SaleID == saleID {
			return m
		}
	}
	return nil
}

func (f *fakeMovements) Create(_ context.Context, m *model.CashMovement) error {
	m.ID = uuid.New()
	f.ledger.movements = append(f.ledger.movements, *m)
	return nil
}

func (f *fakeMovements) FindByID(_ context.Context, _ uuid.UUID) (*model.CashMovement, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMovements) List(_ context.Context) ([]model.CashMovement, error) {
	return f.ledger.movements, nil
}

func (f *fakeMovements) ListByDate(_ context.Context, _, _ time.Time) ([]repository.MovementWithMethod, error) {
	return nil, nil
}

func (f *fakeMovements) Update(_ context.Context, _ *model.CashMovement) error { return nil }

func (f *fakeMovements) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeMovements) DeleteBySaleID(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeMovements) ExistsForSale(_ context.Context, saleID uuid.UUID) (bool, error) {
	return f.ledger.movementFor(saleID) != nil, nil
}

func (f *fakeMovements) HasMovementsForUser(_ context.Context, _ uuid.UUID) (bool, error) {
	return false, nil
}

var (
	_ repository.SaleRepository         = (*fakeLedger)(nil)
	_ repository.CashMovementRepository = (*fakeMovements)(nil)
)

// ── Tests ────────────────────────────────────────────────────────────────────

func TestReconcileRestauraMovimentoPerdido(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	movements := &fakeMovements{ledger: ledger}

	orphan := model.Sale{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		TotalAmount:   decimal.RequireFromString("73.50"),
		Status:        "completed",
		PaymentMethod: "credit",
		CreatedAt:     time.Now().Add(-10 * time.Minute),
	}
	covered := model.Sale{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		TotalAmount:   decimal.RequireFromString("20.00"),
		Status:        "completed",
		PaymentMethod: "cash",
		CreatedAt:     time.Now().Add(-10 * time.Minute),
	}
	fresh := model.Sale{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		TotalAmount:   decimal.RequireFromString("5.00"),
		Status:        "completed",
		PaymentMethod: "cash",
		CreatedAt:     time.Now(), // too recent, checkout may still be writing
	}
	ledger.sales = append(ledger.sales, orphan, covered, fresh)

	coveredID := covered.ID
	ledger.movements = append(ledger.movements, model.CashMovement{
		ID:     uuid.New(),
		UserID: covered.UserID,
		Type:   model.MovementSale,
		Amount: covered.TotalAmount,
		SaleID: &coveredID,
	})

	RunReconcileOnce(ctx, ReconcileConfig{
		Sales:     ledger,
		Movements: movements,
		Interval:  time.Minute,
		MinAge:    2 * time.Minute,
	})

	// The orphan got its entry, with the checkout description format
	m := ledger.movementFor(orphan.ID)
	require.NotNil(t, m)
	assert.True(t, m.Amount.Equal(orphan.TotalAmount))
	assert.Equal(t, "Venda #"+orphan.ID.String()[:8]+" - credit", m.Description)

	// The covered sale did not get a duplicate; the fresh one was skipped
	assert.Len(t, ledger.movements, 2)
	assert.Nil(t, ledger.movementFor(fresh.ID))

	// A second pass changes nothing
	RunReconcileOnce(ctx, ReconcileConfig{
		Sales:     ledger,
		Movements: movements,
		Interval:  time.Minute,
		MinAge:    2 * time.Minute,
	})
	assert.Len(t, ledger.movements, 2)
}
