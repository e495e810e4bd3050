package repository

import (
	"time"

	"news_portal/internal/domain/user/model"

	"gorm.io/gorm"
)

// UserRepository 接口定义
type UserRepository interface {
	Create(user *model.User) error
	GetByID(id uint) (*model.User, error)
	GetByMobile(mobile string) (*model.User, error)
	Update(user *model.User) error
	UpdateLastLogin(id uint, t time.Time) error

	CountFollowers(userID uint) (int64, error)
	CountNewsByAuthor(userID uint) (int64, error)

	CreateFollow(followerID, followedID uint) error
	DeleteFollow(followerID, followedID uint) (bool, error)
	HasFollowed(followerID, followedID uint) (bool, error)
	GetFollowedUsers(userID uint, offset, limit int) ([]model.User, int64, error)
}

// userRepository 实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建新的仓库实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

// GetByID 根据ID获取用户
func (r *userRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByMobile 根据手机号获取用户
func (r *userRepository) GetByMobile(mobile string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新用户
func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *userRepository) UpdateLastLogin(id uint, t time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", t).Error
}

// CountFollowers 统计粉丝数量
func (r *userRepository) CountFollowers(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// CountNewsByAuthor 统计用户发布的新闻数量
// 跨领域查询，这里只依赖表名避免引入 news 包
func (r *userRepository) CountNewsByAuthor(userID uint) (int64, error) {
	var count int64
	err := r.db.Table("info_news").Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CreateFollow 建立关注边，复合主键保证同一条边不会重复插入
func (r *userRepository) CreateFollow(followerID, followedID uint) error {
	return r.db.Create(&model.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// DeleteFollow 删除关注边，返回是否真的删掉了
func (r *userRepository) DeleteFollow(followerID, followedID uint) (bool, error) {
	result := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{})
	return result.RowsAffected > 0, result.Error
}

// HasFollowed 是否已关注
func (r *userRepository) HasFollowed(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// GetFollowedUsers 获取用户关注的人（分页）
func (r *userRepository) GetFollowedUsers(userID uint, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	sub := r.db.Model(&model.Follow{}).Select("followed_id").Where("follower_id = ?", userID)

	if err := r.db.Model(&model.User{}).Where("id IN (?)", sub).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.Where("id IN (?)", sub).Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
