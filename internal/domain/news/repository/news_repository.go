package repository

import (
	"news_portal/internal/domain/news/model"

	"gorm.io/gorm"
)

// NewsRepository 接口定义
type NewsRepository interface {
	Create(news *model.News) error
	GetByID(id uint) (*model.News, error)
	Update(news *model.News) error
	IncrementClicks(id uint) error
	UpdateStatus(id uint, status int, reason string) error

	ListApproved(categoryID uint, offset, limit int) ([]model.News, int64, error)
	ListByAuthor(userID uint, offset, limit int) ([]model.News, int64, error)
	ListApprovedByAuthor(userID uint, offset, limit int) ([]model.News, int64, error)
	ListReview(keyword string, offset, limit int) ([]model.News, int64, error)
	ListEdit(keyword string, offset, limit int) ([]model.News, int64, error)
	ClickRank(limit int) ([]model.News, error)
	CountComments(newsID uint) (int64, error)

	Categories() ([]model.Category, error)
	GetCategoryByID(id uint) (*model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error

	CreateCollection(userID, newsID uint) error
	DeleteCollection(userID, newsID uint) (bool, error)
	HasCollected(userID, newsID uint) (bool, error)
	ListCollected(userID uint, offset, limit int) ([]model.News, int64, error)
}

// newsRepository 实现
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建新的仓库实例
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Create 创建新闻
func (r *newsRepository) Create(news *model.News) error {
	return r.db.Create(news).Error
}

// GetByID 根据ID获取新闻，带分类与作者
func (r *newsRepository) GetByID(id uint) (*model.News, error) {
	var news model.News
	if err := r.db.Preload("Category").Preload("User").Where("id = ?", id).First(&news).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// Update 更新新闻
func (r *newsRepository) Update(news *model.News) error {
	return r.db.Save(news).Error
}

// IncrementClicks 浏览量 +1，放在数据库端执行避免读改写竞争
func (r *newsRepository) IncrementClicks(id uint) error {
	return r.db.Model(&model.News{}).Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1")).Error
}

// UpdateStatus 更新审核状态与原因
func (r *newsRepository) UpdateStatus(id uint, status int, reason string) error {
	return r.db.Model(&model.News{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "reason": reason}).Error
}

// ListApproved 审核通过的新闻列表，categoryID 为 0 时不过滤分类
func (r *newsRepository) ListApproved(categoryID uint, offset, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{}).Where("status = ?", model.StatusApproved)
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	return r.page(query, offset, limit)
}

// ListByAuthor 某作者的全部新闻（含审核中/未通过）
func (r *newsRepository) ListByAuthor(userID uint, offset, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{}).Where("user_id = ?", userID)
	return r.page(query, offset, limit)
}

// ListApprovedByAuthor 某作者审核通过的新闻，用于他人主页
func (r *newsRepository) ListApprovedByAuthor(userID uint, offset, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{}).
		Where("user_id = ? AND status = ?", userID, model.StatusApproved)
	return r.page(query, offset, limit)
}

// ListReview 待审核/未通过的新闻，可按标题模糊过滤
func (r *newsRepository) ListReview(keyword string, offset, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{}).Where("status != ?", model.StatusApproved)
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	return r.page(query, offset, limit)
}

// ListEdit 审核通过的新闻，供后台编辑列表使用
func (r *newsRepository) ListEdit(keyword string, offset, limit int) ([]model.News, int64, error) {
	query := r.db.Model(&model.News{}).Where("status = ?", model.StatusApproved)
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}
	return r.page(query, offset, limit)
}

// ClickRank 点击排行（只取审核通过的）
func (r *newsRepository) ClickRank(limit int) ([]model.News, error) {
	var list []model.News
	err := r.db.Where("status = ?", model.StatusApproved).
		Order("clicks desc").Limit(limit).Find(&list).Error
	return list, err
}

// CountComments 统计新闻的评论数
func (r *newsRepository) CountComments(newsID uint) (int64, error) {
	var count int64
	err := r.db.Table("info_comment").Where("news_id = ?", newsID).Count(&count).Error
	return count, err
}

// Categories 获取全部分类，按 id 升序，第一个是“最新”
func (r *newsRepository) Categories() ([]model.Category, error) {
	var categories []model.Category
	err := r.db.Order("id asc").Find(&categories).Error
	return categories, err
}

// GetCategoryByID 根据ID获取分类
func (r *newsRepository) GetCategoryByID(id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory 新增分类
func (r *newsRepository) CreateCategory(category *model.Category) error {
	return r.db.Create(category).Error
}

// UpdateCategory 更新分类
func (r *newsRepository) UpdateCategory(category *model.Category) error {
	return r.db.Save(category).Error
}

// CreateCollection 收藏，复合主键挡住重复插入
func (r *newsRepository) CreateCollection(userID, newsID uint) error {
	return r.db.Create(&model.Collection{UserID: userID, NewsID: newsID}).Error
}

// DeleteCollection 取消收藏，返回是否真的删掉了
func (r *newsRepository) DeleteCollection(userID, newsID uint) (bool, error) {
	result := r.db.Where("user_id = ? AND news_id = ?", userID, newsID).
		Delete(&model.Collection{})
	return result.RowsAffected > 0, result.Error
}

// HasCollected 是否已收藏
func (r *newsRepository) HasCollected(userID, newsID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Collection{}).
		Where("user_id = ? AND news_id = ?", userID, newsID).
		Count(&count).Error
	return count > 0, err
}

// ListCollected 用户收藏的新闻（分页，按收藏时间倒序）
func (r *newsRepository) ListCollected(userID uint, offset, limit int) ([]model.News, int64, error) {
	var list []model.News
	var total int64

	base := r.db.Table("info_news").
		Joins("JOIN info_user_collection ON info_user_collection.news_id = info_news.id").
		Where("info_user_collection.user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.Select("info_news.*").
		Order("info_user_collection.created_at desc").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, total, err
}

// page 统一的 count + 按创建时间倒序分页
func (r *newsRepository) page(query *gorm.DB, offset, limit int) ([]model.News, int64, error) {
	var list []model.News
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
