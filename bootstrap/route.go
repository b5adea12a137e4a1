package bootstrap

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"namogange/app/http/controllers/api/v1/activity"
	"namogange/app/http/controllers/api/v1/agspayment"
	"namogange/app/http/controllers/api/v1/bank"
	"namogange/app/http/controllers/api/v1/health"
	"namogange/app/http/middlewares"
	"namogange/app/repositories"
	"namogange/pkg/database"
	"namogange/pkg/queue"
	"namogange/pkg/redis"
	"namogange/pkg/regno"
	"namogange/routes"
)

// SetupRoute 注册全局中间件、API 路由和 404 处理器
func SetupRoute(router *gin.Engine, ctl routes.Controllers) {
	registerGlobalMiddleWare(router)

	routes.RegisterAPIRoutes(router, ctl)

	setup404Handler(router)
}

// SetupControllers 组装控制器，q 为 nil 时操作日志直接写库
func SetupControllers(allocator *regno.Allocator, q *queue.QueueService) routes.Controllers {
	var enqueuer activity.Enqueuer
	var metrics *queue.QueueMetrics
	checks := []health.Check{{Name: "database", Ping: database.Ping}}
	if q != nil {
		enqueuer = q
		metrics = q.Metrics()
		checks = append(checks, health.Check{Name: "queue", Ping: q.Ping})
	}
	if client := redis.GetRedis(redis.MainDB); client != nil {
		checks = append(checks, health.Check{Name: "redis", Ping: client.Ping})
	}

	return routes.Controllers{
		Payments: agspayment.NewController(repositories.NewAGSPaymentRepository(), allocator),
		Banks:    bank.NewController(repositories.NewBankRepository()),
		Activity: activity.NewController(repositories.NewActivityRepository(), enqueuer),
		Health:   health.NewController(metrics, checks...),
	}
}

func registerGlobalMiddleWare(router *gin.Engine) {
	router.Use(
		middlewares.Logger(),
		middlewares.Recovery(),
	)
}

// setup404Handler 浏览器访问返回文本，其他情况返回 JSON
func setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		if strings.Contains(c.Request.Header.Get("Accept"), "text/html") {
			c.String(http.StatusNotFound, "页面返回 404")
			return
		}
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Route not found, check the url and method",
		})
	})
}
