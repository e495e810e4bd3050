package admin

import (
	"news_portal/internal/domain/admin/handler"
	adminrepo "news_portal/internal/domain/admin/repository"
	"news_portal/internal/domain/admin/service"
	newsrepo "news_portal/internal/domain/news/repository"
	newsservice "news_portal/internal/domain/news/service"
	userrepo "news_portal/internal/domain/user/repository"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"
)

// AdminModule 后台管理模块
type AdminModule struct{}

func init() {
	registry.Register(&AdminModule{})
}

// Name 模块名称
func (m *AdminModule) Name() string {
	return "admin"
}

// Priority 初始化顺序
func (m *AdminModule) Priority() int {
	return 4
}

// Init 装配后台路由，除登录外全部要求管理员身份
func (m *AdminModule) Init(ctx *registry.ModuleContext) error {
	users := userrepo.NewUserRepository(ctx.DB)
	repo := adminrepo.NewAdminRepository(ctx.DB)
	news := newsrepo.NewNewsRepository(ctx.DB)

	svc := service.NewAdminService(users, repo)
	newsSvc := newsservice.NewNewsService(news, users, ctx.Uploader)
	h := handler.NewAdminHandler(svc, newsSvc)

	admin := ctx.Router.Group("/admin")
	admin.POST("/login", h.Login)

	guarded := admin.Group("")
	guarded.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		guarded.GET("/user_count", h.UserCount)
		guarded.GET("/user_list", h.UserList)
		guarded.GET("/news_review", h.NewsReview)
		guarded.GET("/news_review/:id", h.NewsReviewDetail)
		guarded.POST("/news_review_action", h.NewsReviewAction)
		guarded.GET("/news_edit", h.NewsEdit)
		guarded.GET("/news_edit/:id", h.NewsEditDetail)
		guarded.POST("/news_edit_action", h.NewsEditAction)
		guarded.POST("/add_category", h.SaveCategory)
	}

	return nil
}
