package bootstrap

import (
	"time"

	"namogange/app/http/controllers/api/v1/activity"
	"namogange/app/repositories"
	"namogange/pkg/config"
	"namogange/pkg/logger"
	"namogange/pkg/queue"
	"namogange/pkg/redis"
)

// SetupQueue 启动操作日志队列和 Worker，Redis 未初始化时返回 nil
func SetupQueue() (*queue.QueueService, *queue.Worker) {
	client := redis.GetRedis(redis.QueueDB)
	if client == nil {
		logger.WarnString("Queue", "Setup", "Redis 未初始化，跳过队列服务")
		return nil, nil
	}

	queueService := queue.NewQueueService(client,
		config.GetString("redis.prefix"),
		config.GetInt("queue.rate_limit", 50),
		config.GetInt("queue.rate_burst", 100),
	)

	worker := queue.NewWorker(queueService, activity.TaskHandler(repositories.NewActivityRepository()), queue.WorkerConfig{
		WorkerCount:     config.GetInt("queue.worker_count", 4),
		MaxRetries:      config.GetInt("queue.retry_times", 3),
		RetryInterval:   time.Duration(config.GetInt("queue.retry_delay", 1)) * time.Second,
		PopTimeout:      time.Duration(config.GetInt("queue.pop_timeout", 5)) * time.Second,
		ShutdownTimeout: 30 * time.Second,
	})
	worker.Start()

	logger.InfoString("Queue", "Setup", "队列服务启动成功")
	return queueService, worker
}
