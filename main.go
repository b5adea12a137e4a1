package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"namogange/bootstrap"
	btsConfig "namogange/config"
	"namogange/pkg/app"
	"namogange/pkg/config"
	"namogange/pkg/database"
	"namogange/pkg/logger"
	"namogange/pkg/queue"
	"namogange/pkg/redis"
)

// 加载应用程序的基础配置
func init() {
	btsConfig.Initialize()
}

// App 应用程序上下文，用于优雅关闭
type App struct {
	server *http.Server
	worker *queue.Worker
}

func main() {
	env := parseFlags()

	config.InitConfig(env)
	bootstrap.SetupLogger()
	bootstrap.SetupDB()
	bootstrap.SetupRedis()

	queueService, worker := bootstrap.SetupQueue()
	allocator := bootstrap.SetupAllocator()

	if app.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	bootstrap.SetupRoute(router, bootstrap.SetupControllers(allocator, queueService))

	a := &App{
		server: &http.Server{
			Addr:              ":" + config.Get("app.port"),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		worker: worker,
	}
	a.start()
}

// parseFlags 解析命令行参数
func parseFlags() string {
	var env string
	flag.StringVar(&env, "env", "", "加载 .env 文件，例如 --env=testing 将加载 .env.testing 文件")
	flag.Parse()
	return env
}

// start 启动服务器并处理优雅关闭
func (a *App) start() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.InfoString("Server", "Start", "服务器正在启动，监听端口 "+a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	<-quit
	logger.InfoString("Server", "Shutdown", "正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.ErrorString("Server", "Shutdown", "服务器关闭异常: "+err.Error())
	}

	// 先停 Worker，已出队的日志写完后再断开连接
	if a.worker != nil {
		a.worker.Stop()
	}
	redis.Close()
	logger.LogIf(database.Close())

	logger.InfoString("Server", "Shutdown", "服务器已成功关闭")
	_ = logger.Logger.Sync()
}
