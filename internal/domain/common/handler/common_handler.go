package handler

import (
	"news_portal/internal/pkg/uploader"
	"news_portal/pkg/logger"
	"news_portal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommonHandler 通用能力处理器
type CommonHandler struct {
	uploader uploader.Uploader
}

// NewCommonHandler 创建处理器
func NewCommonHandler(up uploader.Uploader) *CommonHandler {
	return &CommonHandler{uploader: up}
}

// Upload 通用文件上传，返回可直接引用的 URL
// @Summary 文件上传
// @Tags Common
// @Accept multipart/form-data
// @Param file formData file true "文件"
// @Success 200 {object} response.Response
// @Router /upload [post]
func (h *CommonHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.ErrParam, "file is required")
		return
	}

	key, err := h.uploader.UploadFile(file)
	if err != nil {
		logger.Log.Error("file upload failed", zap.Error(err))
		response.Fail(c, response.ErrThirdParty, "failed to upload file")
		return
	}

	response.Success(c, gin.H{"url": uploader.DisplayURL(key)})
}
