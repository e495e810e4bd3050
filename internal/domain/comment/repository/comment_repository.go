package repository

import (
	"news_portal/internal/domain/comment/model"

	"gorm.io/gorm"
)

// CommentRepository 接口定义
type CommentRepository interface {
	Create(comment *model.Comment) error
	GetByID(id uint) (*model.Comment, error)
	ListByNews(newsID uint, offset, limit int) ([]model.Comment, int64, error)

	HasLiked(commentID, userID uint) (bool, error)
	InsertLike(commentID, userID uint) error
	RemoveLike(commentID, userID uint) error
	LikedCommentIDs(userID, newsID uint) ([]uint, error)
}

// commentRepository 实现
type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建新的仓库实例
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create 创建评论
func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据ID获取评论
func (r *commentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByNews 新闻下的评论列表，带作者与一层父评论
func (r *commentRepository) ListByNews(newsID uint, offset, limit int) ([]model.Comment, int64, error) {
	var comments []model.Comment
	var total int64

	query := r.db.Model(&model.Comment{}).Where("news_id = ?", newsID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("User").Preload("Parent").Preload("Parent.User").
		Order("created_at desc").Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// HasLiked 是否已点赞
func (r *commentRepository) HasLiked(commentID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	return count > 0, err
}

// InsertLike 点赞：插入关系行并在同一事务里维护冗余计数
// 复合主键让并发重复插入直接失败，计数不会被多加
func (r *commentRepository) InsertLike(commentID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.CommentLike{CommentID: commentID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// RemoveLike 取消点赞：只有真的删掉了关系行才减计数，计数不会减到负数
func (r *commentRepository) RemoveLike(commentID, userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&model.CommentLike{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Comment{}).
			Where("id = ? AND like_count > 0", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}

// LikedCommentIDs 用户在某条新闻下点过赞的评论 id 集合
func (r *commentRepository) LikedCommentIDs(userID, newsID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.CommentLike{}).
		Joins("JOIN info_comment ON info_comment.id = info_comment_like.comment_id").
		Where("info_comment_like.user_id = ? AND info_comment.news_id = ?", userID, newsID).
		Pluck("info_comment_like.comment_id", &ids).Error
	return ids, err
}
