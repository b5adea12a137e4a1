// Package queue 操作日志的异步写入队列：接口只负责入队，由后台 Worker 落库
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"namogange/pkg/ags"
	"namogange/pkg/redis"
)

// ActivityTask 一条待写入的操作日志
type ActivityTask struct {
	ID         string            `json:"id"`
	Event      ags.ActivityEvent `json:"event"`
	IP         string            `json:"ip,omitempty"`
	Attempts   int               `json:"attempts"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// QueueService 基于 Redis List 的队列
type QueueService struct {
	client      *goredis.Client
	key         string
	rateLimiter *rate.Limiter
	metrics     *QueueMetrics
}

// NewQueueService 创建队列，ratePerSecond 为入队限速
func NewQueueService(client *redis.RedisClient, prefix string, ratePerSecond, burst int) *QueueService {
	if burst < ratePerSecond {
		burst = ratePerSecond
	}
	return &QueueService{
		client:      client.Client,
		key:         prefix + ":activity",
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		metrics:     NewQueueMetrics(),
	}
}

// PushTask 入队
func (q *QueueService) PushTask(ctx context.Context, task *ActivityTask) error {
	if err := q.rateLimiter.Wait(ctx); err != nil {
		q.metrics.RecordError(OpPush)
		return fmt.Errorf("queue: rate limit: %w", err)
	}

	start := time.Now()
	defer func() { q.metrics.RecordPushLatency(time.Since(start)) }()

	data, err := json.Marshal(task)
	if err != nil {
		q.metrics.RecordError(OpPush)
		return fmt.Errorf("queue: marshal task: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		q.metrics.RecordError(OpPush)
		return fmt.Errorf("queue: push task: %w", err)
	}

	q.metrics.RecordSuccess(OpPush)
	return nil
}

// PopTask 阻塞出队，超时或队列为空时返回 nil
func (q *QueueService) PopTask(ctx context.Context, timeout time.Duration) (*ActivityTask, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("queue: pop task: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("queue: unexpected BRPOP reply %v", result)
	}

	var task ActivityTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		q.metrics.RecordError(OpPop)
		return nil, fmt.Errorf("queue: unmarshal task: %w", err)
	}
	q.metrics.RecordSuccess(OpPop)
	return &task, nil
}

// Len 队列长度
func (q *QueueService) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}

// Ping 检查队列库连通性
func (q *QueueService) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}

// Metrics 队列指标
func (q *QueueService) Metrics() *QueueMetrics {
	return q.metrics
}
