package middlewares

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	limiterlib "github.com/ulule/limiter/v3"
	"golang.org/x/time/rate"

	"namogange/pkg/app"
	"namogange/pkg/limiter"
	"namogange/pkg/logger"
	"namogange/pkg/response"
)

// DefaultBurst 进程内令牌桶的突发容量
const DefaultBurst = 20

// LimitIP 针对 IP 限流
//
// 支持的限流格式:
// - 5 reqs/second:   "5-S"
// - 10 reqs/minute:  "10-M"
// - 1000 reqs/hour:  "1000-H"
// - 2000 reqs/day:   "2000-D"
//
// Redis 可用时多实例共享计数，否则退化为进程内令牌桶。
func LimitIP(limit string) gin.HandlerFunc {
	return createLimiterHandler(limiter.GetKeyIP, limit)
}

// LimitPerRoute 针对 IP + 路由限流
func LimitPerRoute(limit string) gin.HandlerFunc {
	return createLimiterHandler(limiter.GetKeyRouteWithIP, limit)
}

func createLimiterHandler(keyFunc func(*gin.Context) string, limit string) gin.HandlerFunc {
	if app.IsTesting() {
		limit = "1000000-H"
	}
	r, err := limiter.ParseLimit(limit)
	if err != nil {
		// 配置错误在启动时暴露
		panic(err)
	}
	memory := newMemoryLimiter(r)

	return func(c *gin.Context) {
		key := keyFunc(c)

		if store := limiter.RedisStore(); store != nil {
			result, err := limiter.CheckRate(c, store, key, r)
			if err == nil {
				setRateLimitHeaders(c, result)
				if result.Reached {
					response.Abort429(c)
					return
				}
				c.Next()
				return
			}
			// Redis 出错时改用进程内限流
			logger.WarnString("Limiter", "Redis", err.Error())
		}

		if !memory.allow(key) {
			response.Abort429(c)
			return
		}
		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, result limiterlib.Context) {
	c.Header("X-RateLimit-Limit", cast.ToString(result.Limit))
	c.Header("X-RateLimit-Remaining", cast.ToString(result.Remaining))
	c.Header("X-RateLimit-Reset", cast.ToString(result.Reset))
}

// memoryLimiter 进程内按 key 的令牌桶，24 小时未访问的 key 会被清理
type memoryLimiter struct {
	rate     limiterlib.Rate
	limiters sync.Map // key -> *memoryEntry
	sweeps   atomic.Int64
}

type memoryEntry struct {
	lim      *rate.Limiter
	lastSeen atomic.Int64
}

func newMemoryLimiter(r limiterlib.Rate) *memoryLimiter {
	return &memoryLimiter{rate: r}
}

func (m *memoryLimiter) allow(key string) bool {
	now := time.Now()
	v, ok := m.limiters.Load(key)
	if !ok {
		v, _ = m.limiters.LoadOrStore(key, &memoryEntry{
			lim: rate.NewLimiter(rate.Limit(limiter.PerSecond(m.rate)), burst(m.rate)),
		})
	}
	entry := v.(*memoryEntry)
	entry.lastSeen.Store(now.Unix())

	// 每 1000 次请求清理一次
	if m.sweeps.Add(1)%1000 == 0 {
		m.sweep(now)
	}
	return entry.lim.Allow()
}

func (m *memoryLimiter) sweep(now time.Time) {
	cutoff := now.Add(-24 * time.Hour).Unix()
	m.limiters.Range(func(key, value interface{}) bool {
		if value.(*memoryEntry).lastSeen.Load() < cutoff {
			m.limiters.Delete(key)
		}
		return true
	})
}

func burst(r limiterlib.Rate) int {
	if r.Limit < DefaultBurst {
		return int(r.Limit)
	}
	return DefaultBurst
}
