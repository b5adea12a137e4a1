// Package limiter 处理限流逻辑
package limiter

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	limiterlib "github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"namogange/pkg/config"
	"namogange/pkg/logger"
	"namogange/pkg/redis"
)

// ParseLimit 解析限流配置
// 支持的格式: "5-S"、"10-M"、"1000-H"、"2000-D"
func ParseLimit(limit string) (limiterlib.Rate, error) {
	rate, err := limiterlib.NewRateFromFormatted(strings.ToUpper(strings.TrimSpace(limit)))
	if err != nil {
		return limiterlib.Rate{}, fmt.Errorf("invalid limit format %q: %w", limit, err)
	}
	return rate, nil
}

// PerSecond 换算为每秒请求数，供进程内令牌桶使用
func PerSecond(rate limiterlib.Rate) float64 {
	if rate.Period <= 0 {
		return 0
	}
	return float64(rate.Limit) / rate.Period.Seconds()
}

// GetKeyIP 以 IP 作为限流键
func GetKeyIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetKeyRouteWithIP 路由 + IP，针对单个路由做限流
func GetKeyRouteWithIP(c *gin.Context) string {
	return routeToKeyString(c.FullPath()) + c.ClientIP()
}

var (
	storeOnce sync.Once
	store     limiterlib.Store
)

// RedisStore 共用主库的限流存储，Redis 未初始化时返回 nil
func RedisStore() limiterlib.Store {
	storeOnce.Do(func() {
		if redis.Redis == nil {
			return
		}
		s, err := sredis.NewStoreWithOptions(redis.Redis.Client, limiterlib.StoreOptions{
			Prefix:          config.GetString("app.name", "namogange") + ":limiter",
			CleanUpInterval: time.Hour,
		})
		if err != nil {
			logger.LogIf(err)
			return
		}
		store = s
	})
	return store
}

// CheckRate 检测请求是否超额
func CheckRate(c *gin.Context, store limiterlib.Store, key string, rate limiterlib.Rate) (limiterlib.Context, error) {
	limiterObj := limiterlib.New(store, rate)

	// 多个路由组都挂了限流时，只在第一次计数
	if c.GetBool("limiter-once") {
		return limiterObj.Peek(c, key)
	}
	c.Set("limiter-once", true)
	return limiterObj.Get(c, key)
}

// routeToKeyString 将 URL 中的 / 格式为 -
func routeToKeyString(routeName string) string {
	routeName = strings.ReplaceAll(routeName, "/", "-")
	routeName = strings.ReplaceAll(routeName, ":", "_")
	return routeName
}
