package repository

import (
	"time"

	usermodel "news_portal/internal/domain/user/model"

	"gorm.io/gorm"
)

// AdminRepository 后台统计查询
type AdminRepository interface {
	CountUsers() (int64, error)
	CountUsersCreatedSince(t time.Time) (int64, error)
	CountActiveBetween(start, end time.Time) (int64, error)
	ListUsers(offset, limit int) ([]usermodel.User, int64, error)
}

// adminRepository 实现
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建新的仓库实例
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// CountUsers 用户总数（不含管理员）
func (r *adminRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).Where("is_admin = ?", false).Count(&count).Error
	return count, err
}

// CountUsersCreatedSince 某时间点之后注册的用户数（不含管理员）
func (r *adminRepository) CountUsersCreatedSince(t time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("is_admin = ? AND created_at >= ?", false, t).
		Count(&count).Error
	return count, err
}

// CountActiveBetween 最后登录时间落在 [start, end) 的用户数
func (r *adminRepository) CountActiveBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("is_admin = ? AND last_login >= ? AND last_login < ?", false, start, end).
		Count(&count).Error
	return count, err
}

// ListUsers 用户列表（不含管理员），按最后登录时间倒序
func (r *adminRepository) ListUsers(offset, limit int) ([]usermodel.User, int64, error) {
	var users []usermodel.User
	var total int64

	query := r.db.Model(&usermodel.User{}).Where("is_admin = ?", false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("last_login desc").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
