package user

import (
	"news_portal/internal/domain/user/handler"
	"news_portal/internal/domain/user/repository"
	"news_portal/internal/domain/user/service"
	"news_portal/internal/pkg/captcha"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/registry"
	"news_portal/internal/pkg/sms"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，其他模块都依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	smsService := sms.NewService(ctx.Redis)
	captchaService := captcha.NewService(ctx.Redis)
	userService := service.NewUserService(userRepo, smsService, ctx.Uploader)
	userHandler := handler.NewUserHandler(userService, captchaService, smsService)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler) {
	// 短信接口打第三方服务，单独限流
	smsLimiter := middleware.NewIPRateLimiter(rate.Limit(1), 5)

	// 公开路由
	passportGroup := r.Group("/passport")
	{
		passportGroup.GET("/image_code", h.ImageCode)
		passportGroup.POST("/sms_code", middleware.RateLimitMiddleware(smsLimiter), h.SendSMSCode)
		passportGroup.POST("/register", h.Register)
		passportGroup.POST("/login", h.Login)
	}

	// 其他用户主页，登录与否都能看
	r.GET("/user/other_info", middleware.OptionalAuthMiddleware(), h.OtherInfo)

	// 受保护的路由
	userGroup := r.Group("/user")
	userGroup.Use(middleware.AuthMiddleware())
	{
		userGroup.GET("/info", h.Info)
		userGroup.POST("/base_info", h.BaseInfo)
		userGroup.POST("/pass_info", h.PassInfo)
		userGroup.POST("/pic_info", h.PicInfo)
		userGroup.POST("/followed_user", h.FollowedUser)
		userGroup.GET("/follows", h.Follows)
	}
}
