package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pu-ac-cn/geo-console/internal/config"
	"github.com/pu-ac-cn/geo-console/internal/database"
	"github.com/pu-ac-cn/geo-console/internal/handler"
	"github.com/pu-ac-cn/geo-console/internal/logging"
	"github.com/pu-ac-cn/geo-console/internal/middleware"
	"github.com/pu-ac-cn/geo-console/internal/redis"
	"github.com/pu-ac-cn/geo-console/internal/repository"
	"github.com/pu-ac-cn/geo-console/internal/seed"
	"github.com/pu-ac-cn/geo-console/internal/service"
	"github.com/pu-ac-cn/geo-console/internal/storage"
	"github.com/pu-ac-cn/geo-console/web"
	"go.uber.org/zap"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化日志
	if err := logging.Init(cfg.Log); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logging.Sync()
	logger := logging.L()

	ctx := context.Background()
	var checks []handler.HealthCheck

	// 初始化存储
	var (
		resourceRepo repository.ResourceRepository
		recordRepo   repository.ReviewRecordRepository
	)
	if cfg.Database.Driver == database.DriverMemory {
		store := repository.NewMemoryStore()
		resourceRepo = store.Resources()
		recordRepo = store.Records()
		logger.Info("使用内存存储，重启后数据丢失")
	} else {
		if err := database.Init(&cfg.Database); err != nil {
			logger.Fatal("初始化数据库失败", zap.Error(err))
		}
		defer database.Close()
		logger.Info("数据库连接成功", zap.String("driver", cfg.Database.Driver))

		if err := database.AutoMigrate(); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}
		logger.Info("数据库迁移完成")

		resourceRepo = repository.NewResourceRepository(database.GetDB())
		recordRepo = repository.NewReviewRecordRepository(database.GetDB())
		checks = append(checks, handler.HealthCheck{
			Name: "database",
			Ping: func(context.Context) error { return database.Ping() },
		})
	}

	if cfg.Database.Seed {
		n, err := seed.Load(ctx, resourceRepo)
		if err != nil {
			logger.Fatal("写入演示数据失败", zap.Error(err))
		}
		logger.Info("演示数据已写入", zap.Int("count", n))
	}

	// 初始化 Redis 连接
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("初始化 Redis 失败", zap.Error(err))
	}
	defer redis.Close()
	logger.Info("Redis 连接成功", zap.Bool("embedded", cfg.Redis.Embedded))
	checks = append(checks, handler.HealthCheck{Name: "redis", Ping: redis.Ping})

	// 初始化对象存储，未配置时缩略图上传返回不可用
	var objects storage.ObjectStorage
	minioStore, err := storage.NewMinIO(ctx, cfg.MinIO)
	switch {
	case errors.Is(err, storage.ErrDisabled):
		logger.Warn("未配置对象存储，缩略图上传不可用")
	case err != nil:
		logger.Fatal("初始化对象存储失败", zap.Error(err))
	default:
		objects = minioStore
		logger.Info("对象存储连接成功", zap.String("bucket", cfg.MinIO.Bucket))
	}

	// 初始化 Service
	resourceService := service.NewResourceService(resourceRepo, recordRepo, objects)
	dashboardService := service.NewDashboardService(resourceService)
	exportService := service.NewExportService(resourceService)
	consoleService := service.NewConsoleService(
		service.NewScreenStore(redis.GetClient(), cfg.Console.ScreenTTL),
		service.NewNoticeService(redis.GetClient(), cfg.Console.NoticeTTL),
		resourceService,
		dashboardService,
		cfg.Console.PageSize,
	)

	// 初始化 Handler
	handlers := &handler.Handlers{
		Health:   handler.NewHealthHandler(checks...),
		Console:  handler.NewConsoleHandler(dashboardService),
		Resource: handler.NewResourceHandler(resourceService, exportService, cfg.Console.PageSize),
		Review:   handler.NewReviewHandler(resourceService, cfg.Console.PageSize),
		Product:  handler.NewProductHandler(resourceService, cfg.Console.PageSize),
		Screen:   handler.NewScreenHandler(consoleService),
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()

	// 全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics())
	router.Use(middleware.Operator(cfg.Console.DefaultOperator))

	// 前端静态文件
	if mode := web.StaticMode(cfg.Server.StaticMode); mode != web.ModeOff {
		static := web.DefaultConfig()
		static.Mode = mode
		if cfg.Server.StaticPath != "" {
			static.DiskPath = cfg.Server.StaticPath
		}
		web.NewStaticHandler(static).SetupRoutes(router)
	}

	handlers.RegisterRoutes(router)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		logger.Info("服务启动", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务...")

	// 优雅关闭，等待 5 秒
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("服务关闭失败", zap.Error(err))
	}

	logger.Info("服务已关闭")
}
