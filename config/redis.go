package config

import (
	"namogange/pkg/config"
)

func init() {
	config.Add("redis", func() map[string]interface{} {
		return map[string]interface{}{
			// 为 false 时登记号使用数据库计数，操作日志直接写库
			"enabled":  config.Env("REDIS_ENABLED", true),
			"host":     config.Env("REDIS_HOST", "127.0.0.1"),
			"port":     config.Env("REDIS_PORT", "6379"),
			"username": config.Env("REDIS_USERNAME", ""),
			"password": config.Env("REDIS_PASSWORD", ""),

			// 登记号计数器和限流使用 1 号库
			"database": config.Env("REDIS_MAIN_DB", 1),

			// 操作日志队列使用 2 号库
			"queue_database": config.Env("REDIS_QUEUE_DB", 2),
			"prefix":         config.Env("REDIS_PREFIX", "namogange"),
		}
	})
}
