package handler

import (
	"errors"
	"strconv"

	"news_portal/internal/domain/admin/service"
	newsservice "news_portal/internal/domain/news/service"
	"news_portal/pkg/logger"
	"news_portal/pkg/response"
	"news_portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler 后台处理器
type AdminHandler struct {
	service     service.AdminService
	newsService newsservice.NewsService
}

// NewAdminHandler 创建处理器
func NewAdminHandler(s service.AdminService, ns newsservice.NewsService) *AdminHandler {
	return &AdminHandler{service: s, newsService: ns}
}

// LoginInput 后台登录输入
type LoginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ReviewInput 审核输入
type ReviewInput struct {
	NewsID uint   `json:"news_id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=accept reject"`
	Reason string `json:"reason"`
}

// CategoryInput 分类管理输入，id 为 0 时新增
type CategoryInput struct {
	ID   uint   `json:"id"`
	Name string `json:"name" binding:"required,max=64"`
}

// Login 后台登录
// @Summary 后台登录
// @Tags Admin
// @Accept json
// @Param input body LoginInput true "管理员账号"
// @Success 200 {object} response.Response
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	token, user, err := h.service.Login(input.Mobile, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, response.ErrUser, err.Error())
		case errors.Is(err, service.ErrNotAdmin):
			response.Fail(c, response.ErrRole, err.Error())
		case errors.Is(err, service.ErrPasswordWrong):
			response.Fail(c, response.ErrPassword, err.Error())
		default:
			logger.Log.Error("admin login failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to log in")
		}
		return
	}

	response.Success(c, gin.H{"token": token, "user": user})
}

// UserCount 用户统计与活跃折线
// @Summary 用户统计
// @Tags Admin
// @Success 200 {object} response.Response{data=service.UserStats}
// @Router /admin/user_count [get]
func (h *AdminHandler) UserCount(c *gin.Context) {
	stats, err := h.service.UserStats()
	if err != nil {
		logger.Log.Error("user stats failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load stats")
		return
	}
	response.Success(c, stats)
}

// UserList 用户列表
// @Summary 用户列表
// @Tags Admin
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /admin/user_list [get]
func (h *AdminHandler) UserList(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.UserList(p)
	if err != nil {
		logger.Log.Error("user list failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load users")
		return
	}
	response.Success(c, result)
}

// NewsReview 待审核新闻列表
// @Summary 待审核新闻
// @Tags Admin
// @Param keywords query string false "标题关键字"
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /admin/news_review [get]
func (h *AdminHandler) NewsReview(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.newsService.ListReview(c.Query("keywords"), p)
	if err != nil {
		logger.Log.Error("news review list failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, result)
}

// NewsReviewDetail 审核详情
// @Summary 审核详情
// @Tags Admin
// @Param id path int true "新闻ID"
// @Success 200 {object} response.Response
// @Router /admin/news_review/{id} [get]
func (h *AdminHandler) NewsReviewDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrParam, "invalid news id")
		return
	}

	dict, _, err := h.newsService.Detail(uint(id), 0)
	if err != nil {
		if errors.Is(err, newsservice.ErrNewsNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("news review detail failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, gin.H{"news": dict})
}

// NewsReviewAction 审核通过/拒绝
// @Summary 审核新闻
// @Tags Admin
// @Accept json
// @Param input body ReviewInput true "审核决定"
// @Success 200 {object} response.Response
// @Router /admin/news_review_action [post]
func (h *AdminHandler) NewsReviewAction(c *gin.Context) {
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	err := h.newsService.Moderate(input.NewsID, input.Action == "accept", input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, newsservice.ErrMissingReason):
			response.Fail(c, response.ErrParam, err.Error())
		case errors.Is(err, newsservice.ErrNewsNotFound):
			response.Fail(c, response.ErrNoData, err.Error())
		default:
			logger.Log.Error("news review action failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to review news")
		}
		return
	}
	response.Success(c, nil)
}

// NewsEdit 后台可编辑新闻列表
// @Summary 可编辑新闻
// @Tags Admin
// @Param keywords query string false "标题关键字"
// @Param page query int false "页码"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /admin/news_edit [get]
func (h *AdminHandler) NewsEdit(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.newsService.ListEdit(c.Query("keywords"), p)
	if err != nil {
		logger.Log.Error("news edit list failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}
	response.Success(c, result)
}

// NewsEditDetail 编辑详情
// @Summary 编辑详情
// @Tags Admin
// @Param id path int true "新闻ID"
// @Success 200 {object} response.Response
// @Router /admin/news_edit/{id} [get]
func (h *AdminHandler) NewsEditDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrParam, "invalid news id")
		return
	}

	dict, _, err := h.newsService.Detail(uint(id), 0)
	if err != nil {
		if errors.Is(err, newsservice.ErrNewsNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("news edit detail failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load news")
		return
	}

	// 编辑表单需要完整分类列表（去掉“最新”）
	categories, err := h.newsService.Categories(true)
	if err != nil {
		logger.Log.Error("load categories failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load categories")
		return
	}

	response.Success(c, gin.H{"news": dict, "categories": categories})
}

// NewsEditAction 保存编辑
// @Summary 保存新闻编辑
// @Tags Admin
// @Accept multipart/form-data
// @Param news_id formData int true "新闻ID"
// @Param title formData string true "标题"
// @Param category_id formData int true "分类ID"
// @Param digest formData string true "摘要"
// @Param content formData string true "正文"
// @Param index_image formData file false "新列表图"
// @Success 200 {object} response.Response
// @Router /admin/news_edit_action [post]
func (h *AdminHandler) NewsEditAction(c *gin.Context) {
	newsID, err1 := strconv.ParseUint(c.PostForm("news_id"), 10, 64)
	categoryID, err2 := strconv.ParseUint(c.PostForm("category_id"), 10, 64)
	title := c.PostForm("title")
	digest := c.PostForm("digest")
	content := c.PostForm("content")
	if err1 != nil || err2 != nil || title == "" || digest == "" || content == "" {
		response.Fail(c, response.ErrParam, "news_id, title, category_id, digest and content are required")
		return
	}

	image, _ := c.FormFile("index_image")

	err := h.newsService.Edit(uint(newsID), title, uint(categoryID), digest, content, image)
	if err != nil {
		switch {
		case errors.Is(err, newsservice.ErrNewsNotFound), errors.Is(err, newsservice.ErrCategoryNotFound):
			response.Fail(c, response.ErrNoData, err.Error())
		default:
			logger.Log.Error("news edit action failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to save news")
		}
		return
	}
	response.Success(c, nil)
}

// SaveCategory 新增或修改分类
// @Summary 分类管理
// @Tags Admin
// @Accept json
// @Param input body CategoryInput true "分类"
// @Success 200 {object} response.Response
// @Router /admin/add_category [post]
func (h *AdminHandler) SaveCategory(c *gin.Context) {
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	if err := h.newsService.SaveCategory(input.ID, input.Name); err != nil {
		if errors.Is(err, newsservice.ErrCategoryNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("save category failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to save category")
		return
	}
	response.Success(c, nil)
}
