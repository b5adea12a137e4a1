// Package health 健康检查
package health

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"namogange/pkg/logger"
	"namogange/pkg/queue"
	"namogange/pkg/response"
)

// Check 一项依赖检查
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Controller 健康检查控制器
type Controller struct {
	checks  []Check
	metrics *queue.QueueMetrics
	timeout time.Duration
}

// NewController metrics 可以为 nil
func NewController(metrics *queue.QueueMetrics, checks ...Check) *Controller {
	return &Controller{checks: checks, metrics: metrics, timeout: 2 * time.Second}
}

// Show 逐项检查依赖，任一失败返回 503
// GET /v1/health
func (hc *Controller) Show(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), hc.timeout)
	defer cancel()

	healthy := true
	statuses := make(map[string]string, len(hc.checks))
	for _, check := range hc.checks {
		if err := check.Ping(ctx); err != nil {
			healthy = false
			statuses[check.Name] = err.Error()
			logger.WarnString("Health", check.Name, err.Error())
			continue
		}
		statuses[check.Name] = "ok"
	}

	data := gin.H{"checks": statuses}
	if hc.metrics != nil {
		data["queue"] = hc.metrics.Snapshot()
	}
	if !healthy {
		response.Abort503(c, data)
		return
	}
	response.Data(c, data)
}
