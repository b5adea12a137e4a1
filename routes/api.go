package routes

import (
	"github.com/gin-gonic/gin"

	"namogange/app/http/controllers/api/v1/activity"
	"namogange/app/http/controllers/api/v1/agspayment"
	"namogange/app/http/controllers/api/v1/bank"
	"namogange/app/http/controllers/api/v1/health"
	"namogange/app/http/middlewares"
)

// 路由限流配置
const (
	// 全局限流：每小时每 IP 30000 请求
	GlobalRateLimit = "30000-H"
	// 新增缴费：每分钟每 IP 60 次，每次都会占用一个登记号
	CreatePaymentLimit = "60-M"
	// 登记号预览：每分钟每 IP 120 次
	PreviewLimit = "120-M"
	// 操作日志：每分钟每 IP 600 次
	ActivityLimit = "600-M"
)

// Controllers 路由用到的控制器
type Controllers struct {
	Payments *agspayment.Controller
	Banks    *bank.Controller
	Activity *activity.Controller
	Health   *health.Controller
}

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, ctl Controllers) {
	v1 := r.Group("/v1")

	v1.Use(
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(GlobalRateLimit),
		middlewares.Cors(),
	)

	payments := v1.Group("/ags-payments")
	{
		pc := ctl.Payments

		// GET /v1/ags-payments?client_id=
		payments.GET("", pc.Index)
		// POST /v1/ags-payments
		payments.POST("", middlewares.LimitPerRoute(CreatePaymentLimit), pc.Store)
		// 需注册在 /:id 之前
		// GET /v1/ags-payments/registration-no/preview?seminar_day=
		payments.GET("/registration-no/preview", middlewares.LimitPerRoute(PreviewLimit), pc.PreviewRegistrationNo)
		// PUT /v1/ags-payments/:id
		payments.PUT("/:id", pc.Update)
		// DELETE /v1/ags-payments/:id?user_id=
		payments.DELETE("/:id", pc.Destroy)
	}

	banks := v1.Group("/banks")
	{
		bc := ctl.Banks
		banks.GET("", bc.Index)
		banks.POST("", bc.Store)
		banks.DELETE("/:id", bc.Destroy)
	}

	logs := v1.Group("/activity-logs")
	{
		ac := ctl.Activity
		logs.GET("", ac.Index)
		logs.POST("", middlewares.LimitPerRoute(ActivityLimit), ac.Store)
	}

	v1.GET("/health", ctl.Health.Show)
}
