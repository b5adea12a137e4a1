package config

import "namogange/pkg/config"

func init() {
	config.Add("queue", func() map[string]interface{} {
		return map[string]interface{}{
			// 入队限速，每秒条数
			"rate_limit": config.Env("QUEUE_RATE_LIMIT", 50),
			"rate_burst": config.Env("QUEUE_RATE_BURST", 100),

			"worker_count": config.Env("QUEUE_WORKER_COUNT", 4),
			"retry_times":  config.Env("QUEUE_RETRY_TIMES", 3),
			"retry_delay":  config.Env("QUEUE_RETRY_DELAY", 1),
			// 单次 BRPOP 阻塞秒数
			"pop_timeout": config.Env("QUEUE_POP_TIMEOUT", 5),
		}
	})
}
