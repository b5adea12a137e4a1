package bootstrap

import (
	"namogange/pkg/app"
	"namogange/pkg/config"
	"namogange/pkg/database"
	"namogange/pkg/logger"
	"namogange/pkg/redis"
	"namogange/pkg/regno"
)

// SetupAllocator 创建登记号分配器。Redis 可用且 ags.regno_driver=redis 时使用 INCR，否则使用数据库计数
func SetupAllocator() *regno.Allocator {
	opts := []regno.Option{
		regno.WithPrefix(config.GetString("ags.regno_prefix")),
		regno.WithClock(app.TimenowInTimezone),
	}

	if client := redis.GetRedis(redis.MainDB); client != nil && config.GetString("ags.regno_driver") == "redis" {
		logger.InfoString("Regno", "Setup", "登记号计数器: redis")
		return regno.New(regno.NewRedisSequence(client, config.GetString("redis.prefix")), opts...)
	}

	logger.InfoString("Regno", "Setup", "登记号计数器: database")
	return regno.New(regno.NewDBSequence(database.DB), opts...)
}
