package model

import (
	"time"

	usermodel "news_portal/internal/domain/user/model"
	baseModel "news_portal/pkg/model"
)

// Comment 评论模型
// LikeCount 是冗余计数，真实来源是 info_comment_like 的行数，
// 两者在同一个事务里一起变更
type Comment struct {
	baseModel.BaseModel
	UserID   uint   `gorm:"not null" json:"user_id"`
	NewsID   uint   `gorm:"not null" json:"news_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	ParentID *uint  `json:"parent_id"` // 父评论id，一层引用
	LikeCount int64 `gorm:"default:0" json:"like_count"`

	// 关联
	Parent *Comment        `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	User   *usermodel.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Comment) TableName() string {
	return "info_comment"
}

// CommentLike 评论点赞，复合主键保证同一用户对同一评论最多一条
type CommentLike struct {
	CommentID uint      `gorm:"primaryKey" json:"comment_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"create_time"`
}

func (CommentLike) TableName() string {
	return "info_comment_like"
}

// Dict 评论展示信息
type Dict struct {
	ID         uint                `json:"id"`
	CreateTime string              `json:"create_time"`
	Content    string              `json:"content"`
	Parent     *Dict               `json:"parent"` // 只展开一层，父评论的 parent 恒为 null
	User       *usermodel.UserDict `json:"user"`
	NewsID     uint                `json:"news_id"`
	LikeCount  int64               `json:"like_count"`
	IsLiked    bool                `json:"is_liked"`
}

// ToDict 组装评论展示信息
// 父评论只展开一层：parent 的 Parent 字段不再填充
func (c *Comment) ToDict(isLiked bool) *Dict {
	d := &Dict{
		ID:         c.ID,
		CreateTime: c.CreatedAt.Format(baseModel.TimeLayout),
		Content:    c.Content,
		NewsID:     c.NewsID,
		LikeCount:  c.LikeCount,
		IsLiked:    isLiked,
	}
	if c.User != nil {
		d.User = c.User.ToDict(0, 0)
	}
	if c.Parent != nil {
		parent := &Dict{
			ID:         c.Parent.ID,
			CreateTime: c.Parent.CreatedAt.Format(baseModel.TimeLayout),
			Content:    c.Parent.Content,
			NewsID:     c.Parent.NewsID,
			LikeCount:  c.Parent.LikeCount,
		}
		if c.Parent.User != nil {
			parent.User = c.Parent.User.ToDict(0, 0)
		}
		d.Parent = parent
	}
	return d
}
