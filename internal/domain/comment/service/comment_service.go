package service

import (
	"errors"

	"news_portal/internal/domain/comment/model"
	"news_portal/internal/domain/comment/repository"
	newsrepo "news_portal/internal/domain/news/repository"
	"news_portal/pkg/utils"

	"gorm.io/gorm"
)

// 业务错误
var (
	ErrNewsNotFound    = errors.New("news not found")
	ErrCommentNotFound = errors.New("comment not found")
)

// CommentService 评论服务接口
type CommentService interface {
	PostComment(userID, newsID uint, content string, parentID *uint) (*model.Comment, error)
	LikeComment(userID, commentID uint, add bool) error
	ListComments(newsID, viewerID uint, p utils.Pagination) (*utils.PageResult, error)
}

// commentService 实现
type commentService struct {
	repo     repository.CommentRepository
	newsRepo newsrepo.NewsRepository
}

// NewCommentService 创建评论服务
func NewCommentService(repo repository.CommentRepository, newsRepo newsrepo.NewsRepository) CommentService {
	return &commentService{repo: repo, newsRepo: newsRepo}
}

// PostComment 发表评论，支持引用一条父评论
func (s *commentService) PostComment(userID, newsID uint, content string, parentID *uint) (*model.Comment, error) {
	if _, err := s.newsRepo.GetByID(newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNewsNotFound
		}
		return nil, err
	}

	if parentID != nil {
		parent, err := s.repo.GetByID(*parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		// 父评论必须属于同一条新闻
		if parent.NewsID != newsID {
			return nil, ErrCommentNotFound
		}
	}

	comment := &model.Comment{
		UserID:   userID,
		NewsID:   newsID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.repo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// LikeComment 点赞/取消点赞，两个方向都幂等：
// 重复点赞不会把计数加两次，取消不存在的点赞不会减计数
func (s *commentService) LikeComment(userID, commentID uint, add bool) error {
	if _, err := s.repo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	liked, err := s.repo.HasLiked(commentID, userID)
	if err != nil {
		return err
	}

	if add {
		if liked {
			return nil
		}
		return s.repo.InsertLike(commentID, userID)
	}

	if !liked {
		return nil
	}
	return s.repo.RemoveLike(commentID, userID)
}

// ListComments 新闻下的评论列表，标记访问者点过赞的评论
func (s *commentService) ListComments(newsID, viewerID uint, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	comments, total, err := s.repo.ListByNews(newsID, offset, limit)
	if err != nil {
		return nil, err
	}

	liked := map[uint]bool{}
	if viewerID != 0 {
		ids, err := s.repo.LikedCommentIDs(viewerID, newsID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			liked[id] = true
		}
	}

	dicts := make([]*model.Dict, 0, len(comments))
	for i := range comments {
		dicts = append(dicts, comments[i].ToDict(liked[comments[i].ID]))
	}

	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: p.Page,
	}, nil
}
