package bootstrap

import (
	"fmt"

	"namogange/pkg/config"
	"namogange/pkg/logger"
	"namogange/pkg/redis"
)

// SetupRedis 初始化 Redis，未启用时返回 false
func SetupRedis() bool {
	if !config.GetBool("redis.enabled") {
		logger.WarnString("Redis", "Setup", "Redis 未启用，登记号使用数据库计数，操作日志直接写库")
		return false
	}
	redis.InitRedis(
		fmt.Sprintf("%v:%v", config.GetString("redis.host"), config.GetString("redis.port")),
		config.GetString("redis.username"),
		config.GetString("redis.password"),
		config.GetInt("redis.database"),
		config.GetInt("redis.queue_database"),
	)
	return true
}
