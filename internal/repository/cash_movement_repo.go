package repository

import (
	"context"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MovementWithMethod is the explicit result shape of the by-date listing: a
// ledger entry plus the payment method of its sale, resolved by a LEFT JOIN.
// PaymentMethod is nil for movements that are not tied to a sale.
type MovementWithMethod struct {
	model.CashMovement
	PaymentMethod *string
}

type CashMovementRepository interface {
	Create(ctx context.Context, m *model.CashMovement) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error)
	List(ctx context.Context) ([]model.CashMovement, error)
	ListByDate(ctx context.Context, from, to time.Time) ([]MovementWithMethod, error)
	Update(ctx context.Context, m *model.CashMovement) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error

	// ExistsForSale is the pre-insert probe keeping at most one sale-type
	// movement per sale; the unique index on sale_id backs it at the storage
	// level.
	ExistsForSale(ctx context.Context, saleID uuid.UUID) (bool, error)
	HasMovementsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type cashMovementRepo struct{ db *gorm.DB }

func NewCashMovementRepository(db *gorm.DB) CashMovementRepository {
	return &cashMovementRepo{db: db}
}

func (r *cashMovementRepo) Create(ctx context.Context, m *model.CashMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *cashMovementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CashMovement, error) {
	var m model.CashMovement
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *cashMovementRepo) List(ctx context.Context) ([]model.CashMovement, error) {
	var movements []model.CashMovement
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&movements).Error
	return movements, err
}

func (r *cashMovementRepo) ListByDate(ctx context.Context, from, to time.Time) ([]MovementWithMethod, error) {
	var rows []MovementWithMethod
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Select("cash_movements.*, sales.payment_method AS payment_method").
		Joins("LEFT JOIN sales ON sales.id = cash_movements.sale_id").
		Where("cash_movements.created_at >= ? AND cash_movements.created_at <= ?", from, to).
		Order("cash_movements.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *cashMovementRepo) Update(ctx context.Context, m *model.CashMovement) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *cashMovementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CashMovement{}, "id = ?", id).Error
}

func (r *cashMovementRepo) DeleteBySaleID(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CashMovement{}, "sale_id = ?", saleID).Error
}

func (r *cashMovementRepo) ExistsForSale(ctx context.Context, saleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Where("sale_id = ?", saleID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *cashMovementRepo) HasMovementsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CashMovement{}).
		Where("user_id = ?", userID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}
