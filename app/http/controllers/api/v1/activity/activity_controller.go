// Package activity 操作日志接口。日志先入队，由 Worker 异步落库
package activity

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	model "namogange/app/models/activity"
	"namogange/app/repositories"
	"namogange/app/requests"
	"namogange/pkg/logger"
	"namogange/pkg/queue"
	"namogange/pkg/response"
)

// Enqueuer 日志队列
type Enqueuer interface {
	PushTask(ctx context.Context, task *queue.ActivityTask) error
}

// Controller 操作日志控制器
type Controller struct {
	repo  *repositories.ActivityRepository
	queue Enqueuer
}

// NewController q 为 nil 时（未配置 Redis）直接写库
func NewController(repo *repositories.ActivityRepository, q Enqueuer) *Controller {
	return &Controller{repo: repo, queue: q}
}

// Store 记录一条操作日志
// POST /v1/activity-logs
func (ac *Controller) Store(c *gin.Context) {
	event, err := requests.ValidateActivity(c)
	if err != nil {
		var verr *requests.ValidationError
		if errors.As(err, &verr) {
			response.ValidationError(c, verr.Message, verr.Errors)
			return
		}
		response.BadRequest(c, err)
		return
	}

	task := &queue.ActivityTask{
		ID:         uuid.New().String(),
		Event:      *event,
		IP:         c.ClientIP(),
		EnqueuedAt: time.Now(),
	}

	if ac.queue != nil {
		err := ac.queue.PushTask(c.Request.Context(), task)
		if err == nil {
			response.Accepted(c, gin.H{"id": task.ID})
			return
		}
		logger.WarnString("Activity", "Enqueue", "入队失败，改为直接写库: "+err.Error())
	}

	if err := ac.repo.Create(c.Request.Context(), model.FromEvent(task.ID, task.IP, task.Event)); err != nil {
		response.ServerError(c, err)
		return
	}
	response.Created(c, gin.H{"id": task.ID})
}

// Index 客户最近的操作日志
// GET /v1/activity-logs?client_id=&limit=
func (ac *Controller) Index(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		response.Abort400(c, "Client ID is required")
		return
	}
	logs, err := ac.repo.ListRecent(c.Request.Context(), clientID, cast.ToInt(c.Query("limit")))
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, logs)
}

// TaskHandler Worker 使用的落库处理函数，重复投递的任务只写一次
func TaskHandler(repo *repositories.ActivityRepository) queue.Handler {
	return func(ctx context.Context, task *queue.ActivityTask) error {
		return repo.Create(ctx, model.FromEvent(task.ID, task.IP, task.Event))
	}
}
