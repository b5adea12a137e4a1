package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"namogange/pkg/logger"
)

// Source Worker 读取任务的队列
type Source interface {
	PopTask(ctx context.Context, timeout time.Duration) (*ActivityTask, error)
	PushTask(ctx context.Context, task *ActivityTask) error
	Metrics() *QueueMetrics
}

// Handler 处理一条任务，返回错误时按配置重新入队
type Handler func(ctx context.Context, task *ActivityTask) error

// WorkerConfig 工作器配置
type WorkerConfig struct {
	WorkerCount     int           // 并发数
	MaxRetries      int           // 失败后最多重新入队次数
	RetryInterval   time.Duration // 出错后的等待
	PopTimeout      time.Duration // 单次阻塞出队超时
	HandleTimeout   time.Duration // 单条任务处理超时
	ShutdownTimeout time.Duration
}

// Worker 工作器组
type Worker struct {
	source  Source
	handler Handler
	config  WorkerConfig

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWorker 创建工作器组
func NewWorker(source Source, handler Handler, config WorkerConfig) *Worker {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 2
	}
	if config.RetryInterval <= 0 {
		config.RetryInterval = time.Second
	}
	if config.PopTimeout <= 0 {
		config.PopTimeout = 5 * time.Second
	}
	if config.HandleTimeout <= 0 {
		config.HandleTimeout = 10 * time.Second
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		source:  source,
		handler: handler,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start 启动工作器组
func (w *Worker) Start() {
	for i := 0; i < w.config.WorkerCount; i++ {
		w.wg.Add(1)
		go w.run(i)
	}
}

func (w *Worker) run(id int) {
	defer w.wg.Done()
	logger.InfoString("Worker", "Start", fmt.Sprintf("worker %d started", id))

	for {
		if w.ctx.Err() != nil {
			logger.InfoString("Worker", "Stop", fmt.Sprintf("worker %d stopped", id))
			return
		}
		if err := w.processNext(); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorString("Worker", "Error", fmt.Sprintf("worker %d: %v", id, err))
			select {
			case <-w.ctx.Done():
			case <-time.After(w.config.RetryInterval):
			}
		}
	}
}

func (w *Worker) processNext() error {
	task, err := w.source.PopTask(w.ctx, w.config.PopTimeout)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	return w.handle(task)
}

func (w *Worker) handle(task *ActivityTask) error {
	metrics := w.source.Metrics()
	start := time.Now()
	defer func() { metrics.RecordProcessLatency(time.Since(start)) }()

	// 已出队的任务在关闭过程中也要处理完
	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), w.config.HandleTimeout)
	defer cancel()

	err := w.handler(ctx, task)
	if err == nil {
		metrics.RecordSuccess(OpProcess)
		return nil
	}
	metrics.RecordError(OpProcess)

	if task.Attempts >= w.config.MaxRetries {
		logger.ErrorString("Worker", "Drop", fmt.Sprintf("task %s dropped after %d attempts: %v", task.ID, task.Attempts+1, err))
		return nil
	}
	task.Attempts++
	if pushErr := w.source.PushTask(ctx, task); pushErr != nil {
		return fmt.Errorf("requeue task %s: %w", task.ID, errors.Join(err, pushErr))
	}
	return fmt.Errorf("task %s: %w", task.ID, err)
}

// Stop 通知全部工作器退出并等待，超时后直接返回
func (w *Worker) Stop() {
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.InfoString("Worker", "Stop", "all workers stopped")
	case <-time.After(w.config.ShutdownTimeout):
		logger.WarnString("Worker", "Stop", "worker shutdown timed out")
	}
}
