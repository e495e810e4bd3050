package middleware

import (
	"net/http"
	"strings"

	"news_portal/pkg/response"
	"news_portal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// 上下文 key
const (
	CtxUserID  = "userID"
	CtxIsAdmin = "isAdmin"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseAuthHeader(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, response.ErrSession, "please log in first")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证
// 公开页面也需要知道访问者身份（比如判断是否已收藏），没带 token 时不拦截
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := parseAuthHeader(c); ok {
			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxIsAdmin, claims.IsAdmin)
		}
		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件，必须在 AuthMiddleware 之后
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(CtxIsAdmin)
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrSession, "please log in first")
			c.Abort()
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			response.Error(c, http.StatusForbidden, response.ErrRole, "admin permission required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID 从上下文取当前登录用户 id，0 表示未登录
func UserID(c *gin.Context) uint {
	if v, exists := c.Get(CtxUserID); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func parseAuthHeader(c *gin.Context) (*utils.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// 检查格式 "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ParseToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
