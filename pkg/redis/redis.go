/*
Package redis 提供 Redis 连接管理和常用操作

按用途拆分为两个逻辑库：
 1. main  登记号计数器、限流
 2. queue 操作日志队列
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	redis "github.com/redis/go-redis/v9"

	"namogange/pkg/logger"
)

const (
	// DefaultPoolSize 连接池大小
	DefaultPoolSize = 50
	// DefaultMinIdleConns 最小空闲连接数
	DefaultMinIdleConns = 5
	// DefaultTimeout 单次操作超时
	DefaultTimeout = 5 * time.Second
	// DefaultMaxRetries 最大重试次数
	DefaultMaxRetries = 3
	// DefaultIdleTimeout 空闲超时
	DefaultIdleTimeout = 5 * time.Minute
)

// RedisInstance 逻辑库
type RedisInstance string

const (
	MainDB  RedisInstance = "main"
	QueueDB RedisInstance = "queue"
)

// RedisClient Redis 客户端封装
type RedisClient struct {
	Client *redis.Client
}

// RedisConfig 连接配置
type RedisConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	Timeout      time.Duration
}

// RedisManager 按逻辑库管理客户端
type RedisManager struct {
	instances map[RedisInstance]*RedisClient
	mutex     sync.RWMutex
}

var (
	once    sync.Once
	Manager *RedisManager
	// Redis 主库，便于直接使用
	Redis *RedisClient
)

// NewClient 创建客户端并检查连通性
func NewClient(config RedisConfig) (*RedisClient, error) {
	if config.PoolSize <= 0 {
		config.PoolSize = DefaultPoolSize
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}

	rds := &RedisClient{
		Client: redis.NewClient(&redis.Options{
			Addr:         config.Address,
			Username:     config.Username,
			Password:     config.Password,
			DB:           config.DB,
			PoolSize:     config.PoolSize,
			MinIdleConns: config.MinIdleConns,

			PoolTimeout:     config.Timeout,
			ConnMaxIdleTime: DefaultIdleTimeout,
			ConnMaxLifetime: 24 * time.Hour,

			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,

			MaxRetries:      DefaultMaxRetries,
			MinRetryBackoff: 8 * time.Millisecond,
			MaxRetryBackoff: 512 * time.Millisecond,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()
	if err := rds.Ping(ctx); err != nil {
		_ = rds.Client.Close()
		return nil, fmt.Errorf("redis %s/%d: %w", config.Address, config.DB, err)
	}
	return rds, nil
}

// InitRedis 初始化主库和队列库，连接失败直接 panic
func InitRedis(address, username, password string, mainDB, queueDB int) {
	once.Do(func() {
		Manager = &RedisManager{instances: make(map[RedisInstance]*RedisClient)}

		for instance, db := range map[RedisInstance]int{MainDB: mainDB, QueueDB: queueDB} {
			client, err := NewClient(RedisConfig{
				Address:      address,
				Username:     username,
				Password:     password,
				DB:           db,
				MinIdleConns: DefaultMinIdleConns,
			})
			if err != nil {
				logger.ErrorString("Redis", "Connect", err.Error())
				panic(err)
			}
			Manager.instances[instance] = client
		}
		Redis = Manager.instances[MainDB]
	})
}

// GetRedis 获取指定逻辑库，未初始化时返回 nil
func GetRedis(instance RedisInstance) *RedisClient {
	if Manager == nil {
		return nil
	}
	Manager.mutex.RLock()
	defer Manager.mutex.RUnlock()

	if client, ok := Manager.instances[instance]; ok {
		return client
	}
	return Redis
}

// Close 关闭全部连接
func Close() {
	if Manager == nil {
		return
	}
	Manager.mutex.Lock()
	defer Manager.mutex.Unlock()
	for name, client := range Manager.instances {
		if err := client.Client.Close(); err != nil {
			logger.WarnString("Redis", "Close", fmt.Sprintf("%s: %v", name, err))
		}
	}
}

// Ping 连通性检查
func (rds *RedisClient) Ping(ctx context.Context) error {
	return rds.Client.Ping(ctx).Err()
}

// Incr 计数器加一并返回新值
func (rds *RedisClient) Incr(ctx context.Context, key string) (int64, error) {
	n, err := rds.Client.Incr(ctx, key).Result()
	if err != nil {
		logger.ErrorString("Redis", "Incr", err.Error())
		return 0, err
	}
	return n, nil
}

// GetInt64 读取计数器当前值，键不存在时返回 0
func (rds *RedisClient) GetInt64(ctx context.Context, key string) (int64, error) {
	value, err := rds.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		logger.ErrorString("Redis", "Get", err.Error())
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis: key %s is not a counter: %w", key, err)
	}
	return n, nil
}
