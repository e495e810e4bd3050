package model

import (
	"time"

	usermodel "news_portal/internal/domain/user/model"
	"news_portal/internal/pkg/uploader"
	baseModel "news_portal/pkg/model"
)

// 新闻审核状态
const (
	StatusApproved = 0  // 审核通过
	StatusPending  = 1  // 审核中
	StatusRejected = -1 // 审核未通过
)

// News 新闻模型
type News struct {
	baseModel.BaseModel
	Title         string `gorm:"size:256;not null" json:"title"`
	Source        string `gorm:"size:64;not null" json:"source"`
	Digest        string `gorm:"size:512;not null" json:"digest"`
	Content       string `gorm:"type:text;not null" json:"content"`
	Clicks        int64  `gorm:"default:0" json:"clicks"`
	IndexImageURL string `gorm:"size:256" json:"index_image_url"` // 列表图对象 key
	CategoryID    uint   `json:"category_id"`
	UserID        *uint  `json:"user_id"` // 作者可能被删除，允许为空
	Status        int    `gorm:"default:1" json:"status"`
	Reason        string `gorm:"size:256" json:"reason"` // 审核未通过原因，status = -1 时使用

	// 关联
	Category *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	User     *usermodel.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (News) TableName() string {
	return "info_news"
}

// Category 新闻分类，id 最小的分类是“最新”，不进用户分类选择器
type Category struct {
	baseModel.BaseModel
	Name string `gorm:"size:64;not null" json:"name"`
}

func (Category) TableName() string {
	return "info_category"
}

// Collection 用户收藏，多对多成员关系
type Collection struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	NewsID    uint      `gorm:"primaryKey" json:"news_id"`
	CreatedAt time.Time `json:"create_time"`
}

func (Collection) TableName() string {
	return "info_user_collection"
}

// CategoryDict 分类展示信息
type CategoryDict struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (c *Category) ToDict() *CategoryDict {
	return &CategoryDict{ID: c.ID, Name: c.Name}
}

// BasicDict 列表页展示信息
type BasicDict struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Source        string `json:"source"`
	Digest        string `json:"digest"`
	CreateTime    string `json:"create_time"`
	IndexImageURL string `json:"index_image_url"`
	Clicks        int64  `json:"clicks"`
}

func (n *News) ToBasicDict() *BasicDict {
	return &BasicDict{
		ID:            n.ID,
		Title:         n.Title,
		Source:        n.Source,
		Digest:        n.Digest,
		CreateTime:    n.CreatedAt.Format(baseModel.TimeLayout),
		IndexImageURL: uploader.DisplayURL(n.IndexImageURL),
		Clicks:        n.Clicks,
	}
}

// ReviewDict 审核列表展示信息
type ReviewDict struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	CreateTime string `json:"create_time"`
	Status     int    `json:"status"`
	Reason     string `json:"reason"`
}

func (n *News) ToReviewDict() *ReviewDict {
	return &ReviewDict{
		ID:         n.ID,
		Title:      n.Title,
		CreateTime: n.CreatedAt.Format(baseModel.TimeLayout),
		Status:     n.Status,
		Reason:     n.Reason,
	}
}

// Dict 详情页展示信息
type Dict struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Source        string              `json:"source"`
	Digest        string              `json:"digest"`
	CreateTime    string              `json:"create_time"`
	Content       string              `json:"content"`
	CommentsCount int64               `json:"comments_count"`
	Clicks        int64               `json:"clicks"`
	Category      *CategoryDict       `json:"category"`
	IndexImageURL string              `json:"index_image_url"`
	Author        *usermodel.UserDict `json:"author"` // 作者被删除时为 null
}

// ToDict 组装详情，评论数与作者信息由服务层查出后传入
func (n *News) ToDict(commentsCount int64, author *usermodel.UserDict) *Dict {
	d := &Dict{
		ID:            n.ID,
		Title:         n.Title,
		Source:        n.Source,
		Digest:        n.Digest,
		CreateTime:    n.CreatedAt.Format(baseModel.TimeLayout),
		Content:       n.Content,
		CommentsCount: commentsCount,
		Clicks:        n.Clicks,
		IndexImageURL: uploader.DisplayURL(n.IndexImageURL),
		Author:        author,
	}
	if n.Category != nil {
		d.Category = n.Category.ToDict()
	}
	return d
}
