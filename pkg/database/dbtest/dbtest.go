// Package dbtest 测试用的内存 SQLite 数据库
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"namogange/pkg/database"
	"namogange/pkg/database/migrations"
)

// Setup 创建迁移好的内存库并替换 database.DB，测试结束后恢复
func Setup(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	// 内存库每个连接独立，限制为单连接
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(migrations.RegisterTables()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	oldDB, oldSQL := database.DB, database.SQLDB
	database.DB, database.SQLDB = db, sqlDB
	t.Cleanup(func() {
		database.DB, database.SQLDB = oldDB, oldSQL
		_ = sqlDB.Close()
	})
	return db
}
