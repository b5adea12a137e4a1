package repositories

import (
	"context"

	"gorm.io/gorm"

	"namogange/app/models/agspayment"
	"namogange/pkg/database"
)

// AGSPaymentRepository 缴费记录仓库
type AGSPaymentRepository struct {
	db *gorm.DB
}

// NewAGSPaymentRepository 创建仓库实例
func NewAGSPaymentRepository() *AGSPaymentRepository {
	return &AGSPaymentRepository{db: database.DB}
}

// ListByClient 客户的全部记录，新记录在前
func (r *AGSPaymentRepository) ListByClient(ctx context.Context, clientID string) ([]agspayment.AGSPayment, error) {
	var payments []agspayment.AGSPayment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("id DESC").
		Find(&payments).Error
	return payments, err
}

// Get 按 ID 获取，不存在时返回 gorm.ErrRecordNotFound
func (r *AGSPaymentRepository) Get(ctx context.Context, id uint64) (*agspayment.AGSPayment, error) {
	var payment agspayment.AGSPayment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create 新增
func (r *AGSPaymentRepository) Create(ctx context.Context, payment *agspayment.AGSPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// Save 保存全部字段
func (r *AGSPaymentRepository) Save(ctx context.Context, payment *agspayment.AGSPayment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete 删除，记录不存在时返回 gorm.ErrRecordNotFound
func (r *AGSPaymentRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&agspayment.AGSPayment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
