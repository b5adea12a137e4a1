package repositories

import (
	"context"

	"gorm.io/gorm"

	"namogange/app/models/bank"
	"namogange/pkg/database"
)

// BankRepository 银行仓库
type BankRepository struct {
	db *gorm.DB
}

// NewBankRepository 创建仓库实例
func NewBankRepository() *BankRepository {
	return &BankRepository{db: database.DB}
}

// List 按名称排序
func (r *BankRepository) List(ctx context.Context) ([]bank.Bank, error) {
	var banks []bank.Bank
	err := r.db.WithContext(ctx).Order("name ASC").Find(&banks).Error
	return banks, err
}

// Create 新增
func (r *BankRepository) Create(ctx context.Context, b *bank.Bank) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// Delete 删除，不存在时返回 gorm.ErrRecordNotFound
func (r *BankRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&bank.Bank{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
