package common

import (
	"news_portal/internal/domain/common/handler"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"
)

// CommonModule 通用模块
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	// 不被其他模块依赖，最后初始化
	return 100
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	h := handler.NewCommonHandler(ctx.Uploader)

	ctx.Router.POST("/upload", middleware.AuthMiddleware(), h.Upload)

	return nil
}
