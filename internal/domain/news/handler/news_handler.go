package handler

import (
	"errors"
	"strconv"

	"news_portal/internal/domain/news/service"
	"news_portal/internal/pkg/middleware"
	"news_portal/pkg/logger"
	"news_portal/pkg/response"
	"news_portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewsHandler 新闻处理器
type NewsHandler struct {
	service service.NewsService
}

// NewNewsHandler 创建处理器
func NewNewsHandler(s service.NewsService) *NewsHandler {
	return &NewsHandler{service: s}
}

// CollectInput 收藏输入
type CollectInput struct {
	NewsID uint   `json:"news_id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=collect cancel_collect"`
}

// List 首页新闻列表
// @Summary 新闻列表
// @Tags News
// @Param cid query int false "分类ID，最新分类等于全部"
// @Param page query int false "页码"
// @Param per_page query int false "每页条数"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /news_list [get]
func (h *NewsHandler) List(c *gin.Context) {
	cid, err := strconv.ParseUint(c.DefaultQuery("cid", "1"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrParam, "invalid cid")
		return
	}
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.List(uint(cid), p)
	if err != nil {
		logger.Log.Error("list news failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, result)
}

// ClickRank 点击排行
// @Summary 点击排行
// @Tags News
// @Success 200 {object} response.Response
// @Router /news/click_rank [get]
func (h *NewsHandler) ClickRank(c *gin.Context) {
	list, err := h.service.ClickRank()
	if err != nil {
		logger.Log.Error("click rank failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load click rank")
		return
	}
	response.Success(c, gin.H{"click_list": list})
}

// Categories 分类列表
// @Summary 分类列表
// @Tags News
// @Param for_picker query bool false "为 true 时去掉“最新”分类"
// @Success 200 {object} response.Response
// @Router /news/categories [get]
func (h *NewsHandler) Categories(c *gin.Context) {
	forPicker := c.Query("for_picker") == "true"

	list, err := h.service.Categories(forPicker)
	if err != nil {
		logger.Log.Error("list categories failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load categories")
		return
	}
	response.Success(c, gin.H{"categories": list})
}

// Detail 新闻详情
// @Summary 新闻详情
// @Tags News
// @Param id path int true "新闻ID"
// @Success 200 {object} response.Response
// @Router /news/{id} [get]
func (h *NewsHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrParam, "invalid news id")
		return
	}

	dict, isCollected, err := h.service.Detail(uint(id), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("news detail failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}

	response.Success(c, gin.H{"news": dict, "is_collected": isCollected})
}

// Collect 收藏/取消收藏
// @Summary 收藏或取消收藏
// @Tags News
// @Accept json
// @Param input body CollectInput true "新闻与动作"
// @Success 200 {object} response.Response
// @Router /news/collect [post]
func (h *NewsHandler) Collect(c *gin.Context) {
	var input CollectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	err := h.service.Collect(middleware.UserID(c), input.NewsID, input.Action == "collect")
	if err != nil {
		if errors.Is(err, service.ErrNewsNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("collect action failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to update collection")
		return
	}
	response.Success(c, nil)
}

// Release 发布新闻
// @Summary 发布新闻
// @Tags News
// @Accept multipart/form-data
// @Param title formData string true "标题"
// @Param category_id formData int true "分类ID"
// @Param digest formData string true "摘要"
// @Param content formData string true "正文"
// @Param index_image formData file false "列表图"
// @Success 200 {object} response.Response
// @Router /user/news_release [post]
func (h *NewsHandler) Release(c *gin.Context) {
	title := c.PostForm("title")
	digest := c.PostForm("digest")
	content := c.PostForm("content")
	categoryID, err := strconv.ParseUint(c.PostForm("category_id"), 10, 64)
	if title == "" || digest == "" || content == "" || err != nil || categoryID == 0 {
		response.Fail(c, response.ErrParam, "title, category_id, digest and content are required")
		return
	}

	// 列表图可选
	image, _ := c.FormFile("index_image")

	news, err := h.service.Submit(middleware.UserID(c), title, uint(categoryID), digest, content, image)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("release news failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to release news")
		return
	}
	response.Success(c, gin.H{"news_id": news.ID})
}

// MyNews 我发布的新闻
// @Summary 我发布的新闻
// @Tags News
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /user/news_list [get]
func (h *NewsHandler) MyNews(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.MyNews(middleware.UserID(c), p)
	if err != nil {
		logger.Log.Error("my news failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, result)
}

// Collections 我的收藏
// @Summary 我的收藏
// @Tags News
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /user/collections [get]
func (h *NewsHandler) Collections(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.MyCollections(middleware.UserID(c), p)
	if err != nil {
		logger.Log.Error("collections failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load collections")
		return
	}
	response.Success(c, result)
}

// OtherNewsList 他人主页的新闻列表
// @Summary 他人发布的新闻
// @Tags News
// @Param user_id query int true "用户ID"
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /user/other_news_list [get]
func (h *NewsHandler) OtherNewsList(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || userID == 0 {
		response.Fail(c, response.ErrParam, "user_id is required")
		return
	}
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.OtherNewsList(uint(userID), p)
	if err != nil {
		logger.Log.Error("other news list failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, result)
}
