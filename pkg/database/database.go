// Package database 数据库连接
package database

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"namogange/pkg/logger"
)

// DB gorm 对象
var DB *gorm.DB

// SQLDB 底层连接池
var SQLDB *sql.DB

// Connect 连接数据库，失败时 panic
func Connect(dbConfig gorm.Dialector, _logger gormlogger.Interface) {
	var err error
	DB, err = gorm.Open(dbConfig, &gorm.Config{
		Logger: _logger,
		// 唯一索引冲突统一转换为 gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		logger.ErrorString("数据库", "连接", err.Error())
		panic(err)
	}

	SQLDB, err = DB.DB()
	if err != nil {
		logger.ErrorString("数据库", "获取底层SQL", err.Error())
		panic(err)
	}
}

// AutoMigrate 自动迁移所有数据表
func AutoMigrate(tables []interface{}) error {
	return DB.AutoMigrate(tables...)
}

// Ping 检查连接
func Ping(ctx context.Context) error {
	if SQLDB == nil {
		return errors.New("database: not connected")
	}
	return SQLDB.PingContext(ctx)
}

// Close 关闭连接池
func Close() error {
	if SQLDB == nil {
		return nil
	}
	return SQLDB.Close()
}
