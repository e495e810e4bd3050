package service

import (
	"errors"
	"mime/multipart"
	"time"

	"news_portal/internal/domain/user/model"
	"news_portal/internal/domain/user/repository"
	"news_portal/internal/pkg/sms"
	"news_portal/internal/pkg/uploader"
	"news_portal/pkg/utils"

	"gorm.io/gorm"
)

// 业务错误
var (
	ErrCodeInvalid      = errors.New("invalid or expired verification code")
	ErrUserExists       = errors.New("mobile already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrPasswordWrong    = errors.New("wrong password")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrInvalidGender    = errors.New("gender must be MAN or WOMAN")
)

// UserService 用户服务接口
type UserService interface {
	Register(mobile, password, smsCode string) (string, *model.User, error)
	Login(mobile, password string) (string, *model.User, error)
	GetUser(id uint) (*model.User, error)
	GetUserDict(id uint) (*model.UserDict, error)
	UpdateBaseInfo(id uint, nickName, signature, gender string) error
	UpdatePassword(id uint, oldPassword, newPassword string) error
	UpdateAvatar(id uint, file *multipart.FileHeader) (string, error)
	Follow(followerID, followedID uint) error
	Unfollow(followerID, followedID uint) error
	GetFollowedList(userID uint, p utils.Pagination) (*utils.PageResult, error)
	GetOtherInfo(viewerID, targetID uint) (*model.UserDict, bool, error)
}

// userService 实现
type userService struct {
	repo     repository.UserRepository
	sms      sms.Service
	uploader uploader.Uploader
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, smsService sms.Service, up uploader.Uploader) UserService {
	return &userService{repo: repo, sms: smsService, uploader: up}
}

// Register 注册：校验短信验证码后建号，昵称默认为手机号
func (s *userService) Register(mobile, password, smsCode string) (string, *model.User, error) {
	if !s.sms.VerifyCode(mobile, smsCode) {
		return "", nil, ErrCodeInvalid
	}

	if _, err := s.repo.GetByMobile(mobile); err == nil {
		return "", nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, err
	}

	user := &model.User{
		NickName:  mobile,
		Mobile:    mobile,
		LastLogin: time.Now(),
	}
	if err := user.SetPassword(password); err != nil {
		return "", nil, err
	}

	if err := s.repo.Create(user); err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Login 手机号+密码登录
func (s *userService) Login(mobile, password string) (string, *model.User, error) {
	user, err := s.repo.GetByMobile(mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if !user.CheckPassword(password) {
		return "", nil, ErrPasswordWrong
	}

	// 登录成功才刷新最后登录时间，后台活跃统计依赖这个字段
	now := time.Now()
	if err := s.repo.UpdateLastLogin(user.ID, now); err != nil {
		return "", nil, err
	}
	user.LastLogin = now

	token, err := utils.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(id uint) (*model.User, error) {
	return s.repo.GetByID(id)
}

// GetUserDict 获取用户公开信息（含粉丝数与发文数）
func (s *userService) GetUserDict(id uint) (*model.UserDict, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildDict(user)
}

// UpdateBaseInfo 修改昵称、签名、性别
func (s *userService) UpdateBaseInfo(id uint, nickName, signature, gender string) error {
	if gender != model.GenderMan && gender != model.GenderWoman {
		return ErrInvalidGender
	}

	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	user.NickName = nickName
	user.Signature = signature
	user.Gender = gender
	return s.repo.Update(user)
}

// UpdatePassword 修改密码，需要先校验旧密码
func (s *userService) UpdatePassword(id uint, oldPassword, newPassword string) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}

	if !user.CheckPassword(oldPassword) {
		return ErrPasswordWrong
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	return s.repo.Update(user)
}

// UpdateAvatar 上传头像并保存对象 key，返回展示 URL
func (s *userService) UpdateAvatar(id uint, file *multipart.FileHeader) (string, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return "", err
	}

	key, err := s.uploader.UploadFile(file)
	if err != nil {
		return "", err
	}

	user.AvatarURL = key
	if err := s.repo.Update(user); err != nil {
		return "", err
	}
	return uploader.DisplayURL(key), nil
}

// Follow 关注，重复关注报错
func (s *userService) Follow(followerID, followedID uint) error {
	if _, err := s.repo.GetByID(followedID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	followed, err := s.repo.HasFollowed(followerID, followedID)
	if err != nil {
		return err
	}
	if followed {
		return ErrAlreadyFollowing
	}

	return s.repo.CreateFollow(followerID, followedID)
}

// Unfollow 取消关注，边不存在时静默成功
func (s *userService) Unfollow(followerID, followedID uint) error {
	_, err := s.repo.DeleteFollow(followerID, followedID)
	return err
}

// GetFollowedList 我关注的人（分页）
func (s *userService) GetFollowedList(userID uint, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	users, total, err := s.repo.GetFollowedUsers(userID, offset, limit)
	if err != nil {
		return nil, err
	}

	dicts := make([]*model.UserDict, 0, len(users))
	for i := range users {
		d, err := s.buildDict(&users[i])
		if err != nil {
			return nil, err
		}
		dicts = append(dicts, d)
	}

	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: p.Page,
	}, nil
}

// GetOtherInfo 查看其他用户主页，返回该用户信息与当前访问者是否已关注
func (s *userService) GetOtherInfo(viewerID, targetID uint) (*model.UserDict, bool, error) {
	dict, err := s.GetUserDict(targetID)
	if err != nil {
		return nil, false, err
	}

	isFollowed := false
	if viewerID != 0 {
		if isFollowed, err = s.repo.HasFollowed(viewerID, targetID); err != nil {
			return nil, false, err
		}
	}
	return dict, isFollowed, nil
}

func (s *userService) buildDict(user *model.User) (*model.UserDict, error) {
	followers, err := s.repo.CountFollowers(user.ID)
	if err != nil {
		return nil, err
	}
	newsCount, err := s.repo.CountNewsByAuthor(user.ID)
	if err != nil {
		return nil, err
	}
	return user.ToDict(followers, newsCount), nil
}
