package service

import (
	"errors"
	"time"

	"news_portal/internal/domain/admin/repository"
	usermodel "news_portal/internal/domain/user/model"
	userrepo "news_portal/internal/domain/user/repository"
	"news_portal/pkg/utils"

	"gorm.io/gorm"
)

// 活跃统计的窗口天数（含今天）
const activeWindowDays = 31

// 业务错误
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrPasswordWrong = errors.New("wrong password")
	ErrNotAdmin      = errors.New("admin permission required")
)

// ActivePoint 某一天的活跃用户数，日期与计数成对产出
type ActivePoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// UserStats 后台用户统计
type UserStats struct {
	TotalCount int64         `json:"total_count"`
	MonthCount int64         `json:"month_count"`
	DayCount   int64         `json:"day_count"`
	ActiveLine []ActivePoint `json:"active_line"`
}

// AdminService 后台服务接口
type AdminService interface {
	Login(mobile, password string) (string, *usermodel.User, error)
	UserStats() (*UserStats, error)
	UserList(p utils.Pagination) (*utils.PageResult, error)
}

// adminService 实现
type adminService struct {
	userRepo userrepo.UserRepository
	repo     repository.AdminRepository
	now      func() time.Time
}

// NewAdminService 创建后台服务
func NewAdminService(userRepo userrepo.UserRepository, repo repository.AdminRepository) AdminService {
	return &adminService{
		userRepo: userRepo,
		repo:     repo,
		now:      time.Now,
	}
}

// Login 后台登录，只有管理员能进
func (s *adminService) Login(mobile, password string) (string, *usermodel.User, error) {
	user, err := s.userRepo.GetByMobile(mobile)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	if !user.IsAdmin {
		return "", nil, ErrNotAdmin
	}
	if !user.CheckPassword(password) {
		return "", nil, ErrPasswordWrong
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return "", nil, err
	}
	user.LastLogin = now

	token, err := utils.GenerateToken(user.ID, true)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// UserStats 用户总量、本月/今日新增，以及 31 天活跃折线
// 折线按 (日期, 计数) 成对生成并按日期升序返回
func (s *adminService) UserStats() (*UserStats, error) {
	total, err := s.repo.CountUsers()
	if err != nil {
		return nil, err
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	monthCount, err := s.repo.CountUsersCreatedSince(monthStart)
	if err != nil {
		return nil, err
	}
	dayCount, err := s.repo.CountUsersCreatedSince(dayStart)
	if err != nil {
		return nil, err
	}

	line := make([]ActivePoint, 0, activeWindowDays)
	for i := activeWindowDays - 1; i >= 0; i-- {
		begin := dayStart.AddDate(0, 0, -i)
		end := begin.AddDate(0, 0, 1)

		count, err := s.repo.CountActiveBetween(begin, end)
		if err != nil {
			return nil, err
		}
		line = append(line, ActivePoint{Date: begin.Format("2006-01-02"), Count: count})
	}

	return &UserStats{
		TotalCount: total,
		MonthCount: monthCount,
		DayCount:   dayCount,
		ActiveLine: line,
	}, nil
}

// UserList 后台用户列表
func (s *adminService) UserList(p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	users, total, err := s.repo.ListUsers(offset, limit)
	if err != nil {
		return nil, err
	}

	dicts := make([]*usermodel.AdminDict, 0, len(users))
	for i := range users {
		dicts = append(dicts, users[i].ToAdminDict())
	}

	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: p.Page,
	}, nil
}
