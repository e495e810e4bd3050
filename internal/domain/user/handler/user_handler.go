package handler

import (
	"errors"
	"regexp"
	"strconv"

	"news_portal/internal/domain/user/service"
	"news_portal/internal/pkg/captcha"
	"news_portal/internal/pkg/middleware"
	"news_portal/internal/pkg/sms"
	"news_portal/pkg/logger"
	"news_portal/pkg/response"
	"news_portal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var mobilePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
	captcha captcha.Service
	sms     sms.Service
}

// NewUserHandler 创建处理器
func NewUserHandler(s service.UserService, cap captcha.Service, smsService sms.Service) *UserHandler {
	return &UserHandler{service: s, captcha: cap, sms: smsService}
}

// SMSCodeInput 发送短信验证码输入
type SMSCodeInput struct {
	Mobile      string `json:"mobile" binding:"required"`
	ImageCode   string `json:"image_code" binding:"required"`
	ImageCodeID string `json:"image_code_id" binding:"required"`
}

// RegisterInput 注册输入
type RegisterInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	SMSCode  string `json:"sms_code" binding:"required"`
}

// LoginInput 登录输入
type LoginInput struct {
	Mobile   string `json:"mobile" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BaseInfoInput 基本资料输入
type BaseInfoInput struct {
	NickName  string `json:"nick_name" binding:"required,max=32"`
	Signature string `json:"signature" binding:"required,max=512"`
	Gender    string `json:"gender" binding:"required,oneof=MAN WOMAN"`
}

// PassInfoInput 修改密码输入
type PassInfoInput struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// FollowInput 关注/取关输入
type FollowInput struct {
	UserID uint   `json:"user_id" binding:"required"`
	Action string `json:"action" binding:"required,oneof=follow unfollow"`
}

// ImageCode 生成图片验证码
// @Summary 图片验证码
// @Tags Passport
// @Param imageCodeId query string true "前端生成的验证码编号"
// @Success 200 {object} response.Response
// @Router /passport/image_code [get]
func (h *UserHandler) ImageCode(c *gin.Context) {
	codeID := c.Query("imageCodeId")
	if codeID == "" {
		response.Fail(c, response.ErrParam, "imageCodeId is required")
		return
	}

	image, err := h.captcha.Generate(codeID)
	if err != nil {
		logger.Log.Error("generate image code failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to generate image code")
		return
	}

	response.Success(c, gin.H{"image": image})
}

// SendSMSCode 发送短信验证码，需要先通过图片验证码
// @Summary 发送短信验证码
// @Tags Passport
// @Accept json
// @Param input body SMSCodeInput true "手机号与图片验证码"
// @Success 200 {object} response.Response
// @Router /passport/sms_code [post]
func (h *UserHandler) SendSMSCode(c *gin.Context) {
	var input SMSCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	if !mobilePattern.MatchString(input.Mobile) {
		response.Fail(c, response.ErrParam, "invalid mobile number")
		return
	}

	if !h.captcha.Verify(input.ImageCodeID, input.ImageCode) {
		response.Fail(c, response.ErrParam, "image code is wrong or expired")
		return
	}

	if err := h.sms.SendCode(input.Mobile); err != nil {
		logger.Log.Error("send sms failed", zap.String("mobile", input.Mobile), zap.Error(err))
		response.Fail(c, response.ErrThirdParty, "failed to send sms code")
		return
	}

	response.Success(c, nil)
}

// Register 注册
// @Summary 注册
// @Tags Passport
// @Accept json
// @Param input body RegisterInput true "注册信息"
// @Success 200 {object} response.Response
// @Router /passport/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	if !mobilePattern.MatchString(input.Mobile) {
		response.Fail(c, response.ErrParam, "invalid mobile number")
		return
	}

	token, user, err := h.service.Register(input.Mobile, input.Password, input.SMSCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodeInvalid):
			response.Fail(c, response.ErrParam, err.Error())
		case errors.Is(err, service.ErrUserExists):
			response.Fail(c, response.ErrDataExist, err.Error())
		default:
			logger.Log.Error("register failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to register")
		}
		return
	}

	response.Success(c, gin.H{"token": token, "user": user})
}

// Login 登录
// @Summary 登录
// @Tags Passport
// @Accept json
// @Param input body LoginInput true "登录信息"
// @Success 200 {object} response.Response
// @Router /passport/login [post]
func (h *UserHandler) Login(c *gin.Context) {
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
		case errors.Is(err, service.ErrPasswordWrong):
			response.Fail(c, response.ErrPassword, err.Error())
		default:
			logger.Log.Error("login failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to log in")
		}
		return
	}

	response.Success(c, gin.H{"token": token, "user": user})
}

// Info 当前登录用户信息
// @Summary 当前用户信息
// @Tags User
// @Success 200 {object} response.Response{data=model.UserDict}
// @Router /user/info [get]
func (h *UserHandler) Info(c *gin.Context) {
	dict, err := h.service.GetUserDict(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Fail(c, response.ErrNoData, err.Error())
			return
		}
		logger.Log.Error("get user info failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load user")
		return
	}
	response.Success(c, gin.H{"user_info": dict})
}

// BaseInfo 修改基本资料
// @Summary 修改基本资料
// @Tags User
// @Accept json
// @Param input body BaseInfoInput true "昵称/签名/性别"
// @Success 200 {object} response.Response
// @Router /user/base_info [post]
func (h *UserHandler) BaseInfo(c *gin.Context) {
	var input BaseInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	if err := h.service.UpdateBaseInfo(middleware.UserID(c), input.NickName, input.Signature, input.Gender); err != nil {
		if errors.Is(err, service.ErrInvalidGender) {
			response.Fail(c, response.ErrParam, err.Error())
			return
		}
		logger.Log.Error("update base info failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to update profile")
		return
	}
	response.Success(c, nil)
}

// PassInfo 修改密码
// @Summary 修改密码
// @Tags User
// @Accept json
// @Param input body PassInfoInput true "旧密码与新密码"
// @Success 200 {object} response.Response
// @Router /user/pass_info [post]
func (h *UserHandler) PassInfo(c *gin.Context) {
	var input PassInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	if err := h.service.UpdatePassword(middleware.UserID(c), input.OldPassword, input.NewPassword); err != nil {
		if errors.Is(err, service.ErrPasswordWrong) {
			response.Fail(c, response.ErrPassword, err.Error())
			return
		}
		logger.Log.Error("update password failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to update password")
		return
	}
	response.Success(c, nil)
}

// PicInfo 上传头像
// @Summary 上传头像
// @Tags User
// @Accept multipart/form-data
// @Param avatar formData file true "头像文件"
// @Success 200 {object} response.Response
// @Router /user/pic_info [post]
func (h *UserHandler) PicInfo(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Fail(c, response.ErrParam, "avatar file is required")
		return
	}

	url, err := h.service.UpdateAvatar(middleware.UserID(c), file)
	if err != nil {
		logger.Log.Error("upload avatar failed", zap.Error(err))
		response.Fail(c, response.ErrThirdParty, "failed to upload avatar")
		return
	}
	response.Success(c, gin.H{"avatar_url": url})
}

// FollowedUser 关注/取消关注
// @Summary 关注或取消关注
// @Tags User
// @Accept json
// @Param input body FollowInput true "目标用户与动作"
// @Success 200 {object} response.Response
// @Router /user/followed_user [post]
func (h *UserHandler) FollowedUser(c *gin.Context) {
	var input FollowInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, response.ErrParam, err.Error())
		return
	}

	userID := middleware.UserID(c)
	var err error
	if input.Action == "follow" {
		err = h.service.Follow(userID, input.UserID)
	} else {
		err = h.service.Unfollow(userID, input.UserID)
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyFollowing):
			response.Fail(c, response.ErrDataExist, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, response.ErrNoData, err.Error())
		default:
			logger.Log.Error("follow action failed", zap.Error(err))
			response.Fail(c, response.ErrDB, "failed to update follow state")
		}
		return
	}
	response.Success(c, nil)
}

// Follows 我的关注列表
// @Summary 我的关注
// @Tags User
// @Param page query int false "页码"
// @Param per_page query int false "每页条数"
// @Success 200 {object} response.Response{data=utils.PageResult}
// @Router /user/follows [get]
func (h *UserHandler) Follows(c *gin.Context) {
	p := utils.ParsePagination(c.Query("page"), c.Query("per_page"))

	result, err := h.service.GetFollowedList(middleware.UserID(c), p)
	if err != nil {
		logger.Log.Error("list follows failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load follows")
		return
	}
	response.Success(c, result)
}

// OtherInfo 其他用户主页信息
// @Summary 其他用户信息
// @Tags User
// @Param user_id query int true "用户ID"
// @Success 200 {object} response.Response
// @Router /user/other_info [get]
func (h *UserHandler) OtherInfo(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil || targetID == 0 {
		response.Fail(c, response.ErrParam, "user_id is required")
		return
	}

	dict, isFollowed, err := h.service.GetOtherInfo(middleware.UserID(c), uint(targetID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNoData, "user not found")
			return
		}
		logger.Log.Error("load other user failed", zap.Error(err))
		response.Fail(c, response.ErrDB, "failed to load user")
		return
	}

	response.Success(c, gin.H{"user_info": dict, "is_followed": isFollowed})
}
