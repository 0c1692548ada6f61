/*
 * @Description: 应用组装与生命周期管理
 * @Author: 安知鱼
 * @Date: 2025-06-10 19:52:55
 * @LastEditTime: 2025-08-26 11:40:12
 * @LastEditors: 安知鱼
 */
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/soloblog/internal/app/middleware"
	"github.com/anzhiyu-c/soloblog/internal/app/task"
	"github.com/anzhiyu-c/soloblog/internal/infra/persistence/database"
	"github.com/anzhiyu-c/soloblog/internal/infra/persistence/gormimpl"
	"github.com/anzhiyu-c/soloblog/internal/infra/router"
	"github.com/anzhiyu-c/soloblog/internal/infra/storage"
	"github.com/anzhiyu-c/soloblog/pkg/config"
	"github.com/anzhiyu-c/soloblog/pkg/domain/model"
	auth_handler "github.com/anzhiyu-c/soloblog/pkg/handler/auth"
	category_handler "github.com/anzhiyu-c/soloblog/pkg/handler/category"
	image_handler "github.com/anzhiyu-c/soloblog/pkg/handler/image"
	post_handler "github.com/anzhiyu-c/soloblog/pkg/handler/post"
	tag_handler "github.com/anzhiyu-c/soloblog/pkg/handler/tag"
	visitor_handler "github.com/anzhiyu-c/soloblog/pkg/handler/visitor"
	"github.com/anzhiyu-c/soloblog/pkg/idgen"
	auth_service "github.com/anzhiyu-c/soloblog/pkg/service/auth"
	image_service "github.com/anzhiyu-c/soloblog/pkg/service/image"
	post_service "github.com/anzhiyu-c/soloblog/pkg/service/post"
	taxonomy_service "github.com/anzhiyu-c/soloblog/pkg/service/taxonomy"
	visitor_service "github.com/anzhiyu-c/soloblog/pkg/service/visitor"
)

// App 封装了应用的核心组件和生命周期。
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	scheduler *task.Scheduler
}

// NewApp 按依赖顺序组装整个应用：
// 配置 -> 基础设施 -> 仓储 -> 服务 -> 处理器 -> 路由 -> 定时任务。
func NewApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("加载配置失败: %w", err)
	}

	if err := idgen.InitSqidsEncoder(); err != nil {
		return nil, fmt.Errorf("初始化ID生成器失败: %w", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	// 仓储层
	postRepo := gormimpl.NewPostRepository(db)
	categoryRepo := gormimpl.NewCategoryRepository(db)
	tagRepo := gormimpl.NewTagRepository(db)
	imageRepo := gormimpl.NewImageRepository(db)
	statsRepo := gormimpl.NewSiteStatsRepository(db)

	// 存储后端
	provider, err := buildStorageProvider(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化存储后端失败: %w", err)
	}

	// 服务层
	taxonomySvc := taxonomy_service.NewService(categoryRepo, tagRepo, postRepo)
	postSvc := post_service.NewService(postRepo, imageRepo, taxonomySvc)
	imageSvc := image_service.NewService(imageRepo, provider)
	visitorSvc := visitor_service.NewService(statsRepo)
	tokenSvc, err := auth_service.NewTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("初始化认证服务失败: %w", err)
	}

	// 处理器
	authHandler := auth_handler.NewHandler(tokenSvc)
	postHandler := post_handler.NewHandler(postSvc)
	categoryHandler := category_handler.NewHandler(taxonomySvc)
	tagHandler := tag_handler.NewHandler(taxonomySvc)
	imageHandler := image_handler.NewHandler(imageSvc)
	visitorHandler := visitor_handler.NewHandler(visitorSvc)

	// 路由
	if !cfg.GetBool(config.KeyServerDebug) {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.Default()
	mw := middleware.NewMiddleware(tokenSvc)
	r := router.NewRouter(mw, authHandler, postHandler, categoryHandler, tagHandler, imageHandler, visitorHandler)
	r.SetupRoutes(engine)

	// 定时任务
	scheduler := task.NewScheduler(imageSvc)
	scheduler.RegisterJobs()

	return &App{
		cfg:       cfg,
		engine:    engine,
		scheduler: scheduler,
	}, nil
}

// buildStorageProvider 根据配置选择存储后端并完成初始化。
func buildStorageProvider(ctx context.Context, cfg *config.Config) (storage.Provider, error) {
	timeout := cfg.GetInt(config.KeyStorageUploadTimeout)
	if timeout <= 0 {
		timeout = 30
	}

	policy := &model.StoragePolicy{
		Type:        cfg.GetString(config.KeyStorageType),
		Bucket:      cfg.GetString(config.KeyStorageBucket),
		Server:      cfg.GetString(config.KeyStorageServer),
		AccessKey:   cfg.GetString(config.KeyStorageAccessKey),
		SecretKey:   cfg.GetString(config.KeyStorageSecretKey),
		PublicURL:   cfg.GetString(config.KeyStoragePublicURL),
		PrivateKey:  cfg.GetString(config.KeyStoragePrivateKey),
		URLEndpoint: cfg.GetString(config.KeyStorageURLEndpoint),
		Timeout:     time.Duration(timeout) * time.Second,
	}

	switch policy.Type {
	case model.StorageTypeImageKit:
		return storage.NewImageKitProvider(policy)
	case model.StorageTypeS3, "":
		return storage.NewAWSS3Provider(ctx, policy)
	default:
		return nil, fmt.Errorf("不支持的存储后端类型: %s", policy.Type)
	}
}

// Run 启动 HTTP 服务和定时任务，并阻塞直到收到退出信号后优雅关闭。
func (a *App) Run() error {
	port := a.cfg.GetInt(config.KeyServerPort)
	if port <= 0 {
		port = 8091
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: a.engine,
	}

	a.scheduler.Start()

	go func() {
		log.Printf("🚀 服务启动，监听端口 %d", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP 服务异常退出: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("收到退出信号，开始优雅关闭...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP 服务关闭异常: %v", err)
	}

	a.scheduler.Stop()

	log.Println("服务已退出。")
	return nil
}
