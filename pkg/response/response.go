package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Errno  int         `json:"errno"`          // 业务码
	Errmsg string      `json:"errmsg"`         // 提示信息
	Data   interface{} `json:"data,omitempty"` // 数据
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Errno:  CodeOK,
		Errmsg: "OK",
		Data:   data,
	})
}

// Fail 业务失败响应 (HTTP 200, errno 非 0)
func Fail(c *gin.Context, errno int, msg string) {
	c.JSON(http.StatusOK, Response{
		Errno:  errno,
		Errmsg: msg,
	})
}

// Error 错误响应，同时指定 HTTP 状态码
func Error(c *gin.Context, httpCode int, errno int, msg string) {
	c.JSON(httpCode, Response{
		Errno:  errno,
		Errmsg: msg,
	})
}
