package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log 全局日志实例，Init 之后可用
var Log *zap.Logger

// Init 初始化日志，开发环境输出彩色可读日志，生产环境输出 JSON
func Init(env string) {
	var (
		l   *zap.Logger
		err error
	)

	if env == "prod" || env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	Log = l
}

// Sync 刷出缓冲日志，进程退出前调用
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
