package handler

import (
	"errors"
	"strconv"

	"news_portal/internal/domain/comment/service"
	"news_portal/internal/pkg/middleware"
	"news_portal/pkg/logger"
	"news_portal/pkg/response"
	"news_portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler 评论处理器
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler 创建处理器
func NewCommentHandler(s service.CommentService) *CommentHandler {
	return &CommentHandler{service: s}
}

// CommentInput 发表评论输入
type CommentInput struct {
	NewsID   uint   `json:"news_id" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// LikeInput 点赞输入
type LikeInput struct {
	CommentID uint   `json:"comment_id" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=add remove"`
}

// Post 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Param input body CommentInput true "评论内容"
// @Success 200 {object} response.Response
// @Router /news/news_comment [post]
func (h *CommentHandler) Post(c *gin.Context) {
	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	comment, err := h.service.PostComment(middleware.UserID(c), input.NewsID, input.Content, input.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNewsNotFound), errors.Is(err, service.ErrCommentNotFound):
			response.Fail(c, response.ErrNoData, err.Error())
		default:
			logger.Log.Error("post comment failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to post comment")
		}
		return
	}

	response.Success(c, gin.H{"comment": comment})
}

// Like 点赞/取消点赞
// @Summary 评论点赞
// @Tags Comment
// @Accept json
// @Param input body LikeInput true "评论与动作"
// @Success 200 {object} response.Response
// @Router /news/comment_like [post]
func (h *CommentHandler) Like(c *gin.Context) {
	var input LikeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	err := h.service.LikeComment(middleware.UserID(c), input.CommentID, input.Action == "add")
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("like comment failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to update like")
		return
	}
	response.Success(c, nil)
}

// List 新闻下的评论列表
// @Summary 评论列表
// @Tags Comment
// @Param id path int true "新闻ID"
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /news/{id}/comments [get]
func (h *CommentHandler) List(c *gin.Context) {
	newsID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrParam, "invalid news id")
		return
	}
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.ListComments(uint(newsID), middleware.UserID(c), p)
	if err != nil {
		logger.Log.Error("list comments failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load comments")
		return
	}
	response.Success(c, result)
}
