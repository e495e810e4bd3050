package comment

import (
	"news_portal/internal/domain/comment/handler"
	"news_portal/internal/domain/comment/repository"
	"news_portal/internal/domain/comment/service"
	newsrepo "news_portal/internal/domain/news/repository"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// CommentModule 评论模块
type CommentModule struct{}

func init() {
	registry.Register(&CommentModule{})
}

func (m *CommentModule) Name() string {
	return "comment"
}

func (m *CommentModule) Priority() int {
	return 3
}

func (m *CommentModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	commentRepo := repository.NewCommentRepository(ctx.DB)
	newsRepo := newsrepo.NewNewsRepository(ctx.DB)
	commentService := service.NewCommentService(commentRepo, newsRepo)
	commentHandler := handler.NewCommentHandler(commentService)

	// 2. 路由注册
	setupRoutes(ctx.Router, commentHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CommentHandler) {
	newsGroup := r.Group("/news")
	{
		newsGroup.GET("/:id/comments", middleware.OptionalAuthMiddleware(), h.List)
		newsGroup.POST("/news_comment", middleware.AuthMiddleware(), h.Post)
		newsGroup.POST("/comment_like", middleware.AuthMiddleware(), h.Like)
	}
}
