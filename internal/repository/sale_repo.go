package repository

import (
	"context"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context) ([]model.Sale, error)
	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CreateItems(ctx context.Context, items []model.SaleItem) error
	ListItems(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error)
	DeleteItems(ctx context.Context, saleID uuid.UUID) error

	// Existence probes backing the referential deletion guards (limit 1).
	HasItemsForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	HasSalesForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error)
	HasSalesForUser(ctx context.Context, userID uuid.UUID) (bool, error)

	// Dashboard aggregates over today's completed sales.
	SumCompletedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)

	// ListCompletedWithoutMovement feeds the ledger reconcile worker: completed
	// sales older than `olderThan` that have no sale-type cash movement yet.
	ListCompletedWithoutMovement(ctx context.Context, olderThan time.Time, limit int) ([]model.Sale, error)
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *saleRepo) List(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items.Product").
		Order("created_at DESC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("created_at DESC").
		Limit(limit).
		Find(&sales).Error
	return sales, err
}

func (r *saleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sale{}, "id = ?", id).Error
}

func (r *saleRepo) CreateItems(ctx context.Context, items []model.SaleItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *saleRepo) ListItems(ctx context.Context, saleID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Find(&items).Error
	return items, err
}

func (r *saleRepo) DeleteItems(ctx context.Context, saleID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SaleItem{}, "sale_id = ?", saleID).Error
}

func (r *saleRepo) HasItemsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Where("product_id = ?", productID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) HasSalesForCustomer(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("customer_id = ?", customerID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) HasSalesForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("user_id = ?", userID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *saleRepo) SumCompletedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Select("SUM(total_amount)").
		Where("status = ? AND created_at >= ? AND created_at <= ?", "completed", from, to).
		Scan(&total).Error
	if err != nil || !total.Valid {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *saleRepo) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *saleRepo) ListCompletedWithoutMovement(ctx context.Context, olderThan time.Time, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", "completed", olderThan).
		Where("id NOT IN (?)", r.db.Model(&model.CashMovement{}).
			Select("sale_id").
			Where("type = ? AND sale_id IS NOT NULL", model.MovementSale)).
		Limit(limit).
		Find(&sales).Error
	return sales, err
}
