package regno

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"namogange/pkg/redis"
)

// RedisSequence 基于 Redis INCR 的计数器
type RedisSequence struct {
	client *redis.RedisClient
	prefix string
}

// NewRedisSequence 键名为 <prefix>:regno:<year>:<day>
func NewRedisSequence(client *redis.RedisClient, prefix string) *RedisSequence {
	return &RedisSequence{client: client, prefix: prefix + ":regno:"}
}

func (s *RedisSequence) Peek(ctx context.Context, key string) (int64, error) {
	return s.client.GetInt64(ctx, s.prefix+key)
}

func (s *RedisSequence) Next(ctx context.Context, key string) (int64, error) {
	return s.client.Incr(ctx, s.prefix+key)
}

// SequenceRow 数据库计数器表
type SequenceRow struct {
	Key   string `gorm:"column:seq_key;primaryKey;size:32"`
	Value int64  `gorm:"column:seq_value;not null;default:0"`
}

// TableName 表名
func (SequenceRow) TableName() string {
	return "registration_sequences"
}

// DBSequence 基于数据库行的计数器，没有 Redis 时使用
type DBSequence struct {
	db *gorm.DB
}

// NewDBSequence 需要先迁移 SequenceRow
func NewDBSequence(db *gorm.DB) *DBSequence {
	return &DBSequence{db: db}
}

func (s *DBSequence) Peek(ctx context.Context, key string) (int64, error) {
	var row SequenceRow
	err := s.db.WithContext(ctx).Where("seq_key = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return row.Value, err
}

func (s *DBSequence) Next(ctx context.Context, key string) (int64, error) {
	var row SequenceRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&SequenceRow{Key: key}).Error; err != nil {
			return err
		}
		// UPDATE 持有行锁直到事务结束
		if err := tx.Model(&SequenceRow{}).Where("seq_key = ?", key).
			Update("seq_value", gorm.Expr("seq_value + ?", 1)).Error; err != nil {
			return err
		}
		return tx.Where("seq_key = ?", key).Take(&row).Error
	})
	if err != nil {
		return 0, err
	}
	return row.Value, nil
}
