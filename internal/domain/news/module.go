package news

import (
	"news_portal/internal/domain/news/handler"
	"news_portal/internal/domain/news/repository"
	"news_portal/internal/domain/news/service"
	userrepo "news_portal/internal/domain/user/repository"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// NewsModule 新闻模块
type NewsModule struct{}

func init() {
	registry.Register(&NewsModule{})
}

func (m *NewsModule) Name() string {
	return "news"
}

func (m *NewsModule) Priority() int {
	return 2
}

func (m *NewsModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	newsRepo := repository.NewNewsRepository(ctx.DB)
	userRepo := userrepo.NewUserRepository(ctx.DB)
	newsService := service.NewNewsService(newsRepo, userRepo, ctx.Uploader)
	newsHandler := handler.NewNewsHandler(newsService)

	// 2. 路由注册
	setupRoutes(ctx.Router, newsHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.NewsHandler) {
	// 公开路由
	r.GET("/news_list", h.List)

	newsGroup := r.Group("/news")
	{
		newsGroup.GET("/click_rank", h.ClickRank)
		newsGroup.GET("/categories", h.Categories)
		newsGroup.GET("/:id", middleware.OptionalAuthMiddleware(), h.Detail)
		newsGroup.POST("/collect", middleware.AuthMiddleware(), h.Collect)
	}

	// 个人中心里的新闻相关路由
	userGroup := r.Group("/user")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.POST("/news_release", h.Release)
		userGroup.GET("/news_list", h.MyNews)
		userGroup.GET("/collections", h.Collections)
	}

	r.GET("/user/other_news_list", h.OtherNewsList)
}
