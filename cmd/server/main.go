package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news_portal/internal/pkg/config"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"
	"news_portal/internal/pkg/uploader"
	"news_portal/pkg/database"
	"news_portal/pkg/logger"

	// 各业务模块通过 init 自注册
	_ "news_portal/internal/domain/admin"
	_ "news_portal/internal/domain/comment"
	_ "news_portal/internal/domain/common"
	_ "news_portal/internal/domain/news"
	_ "news_portal/internal/domain/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()

	logger.Init(config.GlobalConfig.App.Env)
	defer logger.Sync()

	db := database.InitDatabase()
	rdb := database.InitRedis()

	var up uploader.Uploader
	if ossUploader, err := uploader.NewAliyunOSSUploader(); err != nil {
		// 缺少 OSS 配置时也能启动，只是上传类接口会失败
		logger.Log.Warn("oss uploader unavailable", zap.Error(err))
		up = uploader.Disabled{}
	} else {
		up = ossUploader
	}

	gin.SetMode(config.GlobalConfig.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctx := &registry.ModuleContext{
		DB:       db,
		Redis:    rdb,
		Router:   r,
		Uploader: up,
	}
	if err := registry.InitModules(ctx); err != nil {
		logger.Log.Fatal("failed to initialize modules", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + config.GlobalConfig.Server.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		logger.Log.Error("failed to close redis", zap.Error(err))
	}

	logger.Log.Info("server exited")
}
