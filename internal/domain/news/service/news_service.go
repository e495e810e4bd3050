package service

import (
	"errors"
	"mime/multipart"

	"news_portal/internal/domain/news/model"
	"news_portal/internal/domain/news/repository"
	usermodel "news_portal/internal/domain/user/model"
	userrepo "news_portal/internal/domain/user/repository"
	"news_portal/internal/pkg/uploader"
	"news_portal/pkg/utils"

	"gorm.io/gorm"
)

// 点击排行条数
const clickRankMax = 6

// 个人发布的新闻来源固定值
const personalSource = "个人发布"

// 业务错误
var (
	ErrNewsNotFound     = errors.New("news not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrMissingReason    = errors.New("a reason is required when rejecting")
)

// NewsService 新闻服务接口
type NewsService interface {
	Submit(userID uint, title string, categoryID uint, digest, content string, image *multipart.FileHeader) (*model.News, error)
	Edit(newsID uint, title string, categoryID uint, digest, content string, image *multipart.FileHeader) error
	Detail(newsID, viewerID uint) (*model.Dict, bool, error)
	List(categoryID uint, p utils.Pagination) (*utils.PageResult, error)
	ClickRank() ([]*model.BasicDict, error)
	Categories(excludeLatest bool) ([]*model.CategoryDict, error)
	SaveCategory(id uint, name string) error
	Collect(userID, newsID uint, collect bool) error
	Moderate(newsID uint, accept bool, reason string) error
	ListReview(keyword string, p utils.Pagination) (*utils.PageResult, error)
	ListEdit(keyword string, p utils.Pagination) (*utils.PageResult, error)
	MyNews(userID uint, p utils.Pagination) (*utils.PageResult, error)
	MyCollections(userID uint, p utils.Pagination) (*utils.PageResult, error)
	OtherNewsList(userID uint, p utils.Pagination) (*utils.PageResult, error)
}

// newsService 实现
type newsService struct {
	repo     repository.NewsRepository
	userRepo userrepo.UserRepository
	uploader uploader.Uploader
}

// NewNewsService 创建新闻服务
func NewNewsService(repo repository.NewsRepository, userRepo userrepo.UserRepository, up uploader.Uploader) NewsService {
	return &newsService{repo: repo, userRepo: userRepo, uploader: up}
}

// Submit 发布新闻，进入待审核状态
func (s *newsService) Submit(userID uint, title string, categoryID uint, digest, content string, image *multipart.FileHeader) (*model.News, error) {
	if _, err := s.repo.GetCategoryByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	news := &model.News{
		Title:      title,
		Source:     personalSource,
		Digest:     digest,
		Content:    content,
		CategoryID: categoryID,
		UserID:     &userID,
		Status:     model.StatusPending,
	}

	if image != nil {
		key, err := s.uploader.UploadFile(image)
		if err != nil {
			return nil, err
		}
		news.IndexImageURL = key
	}

	if err := s.repo.Create(news); err != nil {
		return nil, err
	}
	return news, nil
}

// Edit 编辑新闻的可变字段，新图片替换旧的对象 key
func (s *newsService) Edit(newsID uint, title string, categoryID uint, digest, content string, image *multipart.FileHeader) error {
	news, err := s.repo.GetByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if _, err := s.repo.GetCategoryByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	news.Title = title
	news.CategoryID = categoryID
	news.Digest = digest
	news.Content = content
	news.Category = nil
	news.User = nil

	if image != nil {
		key, err := s.uploader.UploadFile(image)
		if err != nil {
			return err
		}
		news.IndexImageURL = key
	}

	return s.repo.Update(news)
}

// Detail 新闻详情，浏览量 +1，返回访问者是否已收藏
func (s *newsService) Detail(newsID, viewerID uint) (*model.Dict, bool, error) {
	news, err := s.repo.GetByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNewsNotFound
		}
		return nil, false, err
	}

	if err := s.repo.IncrementClicks(newsID); err != nil {
		return nil, false, err
	}
	news.Clicks++

	commentsCount, err := s.repo.CountComments(newsID)
	if err != nil {
		return nil, false, err
	}

	var author *usermodel.UserDict
	if news.User != nil {
		if author, err = s.buildAuthorDict(news.User); err != nil {
			return nil, false, err
		}
	}

	isCollected := false
	if viewerID != 0 {
		if isCollected, err = s.repo.HasCollected(viewerID, newsID); err != nil {
			return nil, false, err
		}
	}

	return news.ToDict(commentsCount, author), isCollected, nil
}

// List 首页新闻列表，“最新”分类等于不过滤
func (s *newsService) List(categoryID uint, p utils.Pagination) (*utils.PageResult, error) {
	latestID, err := s.latestCategoryID()
	if err != nil {
		return nil, err
	}
	if categoryID == latestID {
		categoryID = 0
	}

	offset, limit := p.Offset()
	list, total, err := s.repo.ListApproved(categoryID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.basicPage(list, total, limit, p.Page), nil
}

// ClickRank 点击排行
func (s *newsService) ClickRank() ([]*model.BasicDict, error) {
	list, err := s.repo.ClickRank(clickRankMax)
	if err != nil {
		return nil, err
	}

	dicts := make([]*model.BasicDict, 0, len(list))
	for i := range list {
		dicts = append(dicts, list[i].ToBasicDict())
	}
	return dicts, nil
}

// Categories 分类列表，excludeLatest 为 true 时去掉“最新”（id 最小的分类）
func (s *newsService) Categories(excludeLatest bool) ([]*model.CategoryDict, error) {
	categories, err := s.repo.Categories()
	if err != nil {
		return nil, err
	}

	dicts := make([]*model.CategoryDict, 0, len(categories))
	for i := range categories {
		if excludeLatest && i == 0 {
			continue
		}
		dicts = append(dicts, categories[i].ToDict())
	}
	return dicts, nil
}

// SaveCategory id 为 0 时新增分类，否则改名
func (s *newsService) SaveCategory(id uint, name string) error {
	if id == 0 {
		return s.repo.CreateCategory(&model.Category{Name: name})
	}

	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	category.Name = name
	return s.repo.UpdateCategory(category)
}

// Collect 收藏/取消收藏，两个方向都幂等
func (s *newsService) Collect(userID, newsID uint, collect bool) error {
	if _, err := s.repo.GetByID(newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	collected, err := s.repo.HasCollected(userID, newsID)
	if err != nil {
		return err
	}

	if collect {
		if collected {
			return nil // 已收藏，重复操作不再插入
		}
		return s.repo.CreateCollection(userID, newsID)
	}

	if !collected {
		return nil
	}
	_, err = s.repo.DeleteCollection(userID, newsID)
	return err
}

// Moderate 审核：通过清掉历史拒绝原因，拒绝必须给原因且校验先于任何写入
func (s *newsService) Moderate(newsID uint, accept bool, reason string) error {
	if !accept && reason == "" {
		return ErrMissingReason
	}

	if _, err := s.repo.GetByID(newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNewsNotFound
		}
		return err
	}

	if accept {
		return s.repo.UpdateStatus(newsID, model.StatusApproved, "")
	}
	return s.repo.UpdateStatus(newsID, model.StatusRejected, reason)
}

// ListReview 待审核列表
func (s *newsService) ListReview(keyword string, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	list, total, err := s.repo.ListReview(keyword, offset, limit)
	if err != nil {
		return nil, err
	}

	dicts := make([]*model.ReviewDict, 0, len(list))
	for i := range list {
		dicts = append(dicts, list[i].ToReviewDict())
	}
	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: p.Page,
	}, nil
}

// ListEdit 后台编辑列表（只含审核通过的）
func (s *newsService) ListEdit(keyword string, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	list, total, err := s.repo.ListEdit(keyword, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.basicPage(list, total, limit, p.Page), nil
}

// MyNews 我发布的新闻（含审核状态）
func (s *newsService) MyNews(userID uint, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	list, total, err := s.repo.ListByAuthor(userID, offset, limit)
	if err != nil {
		return nil, err
	}

	dicts := make([]*model.ReviewDict, 0, len(list))
	for i := range list {
		dicts = append(dicts, list[i].ToReviewDict())
	}
	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: p.Page,
	}, nil
}

// MyCollections 我的收藏
func (s *newsService) MyCollections(userID uint, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	list, total, err := s.repo.ListCollected(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.basicPage(list, total, limit, p.Page), nil
}

// OtherNewsList 他人主页的新闻列表，只展示审核通过的
func (s *newsService) OtherNewsList(userID uint, p utils.Pagination) (*utils.PageResult, error) {
	offset, limit := p.Offset()
	list, total, err := s.repo.ListApprovedByAuthor(userID, offset, limit)
	if err != nil {
		return nil, err
	}
	return s.basicPage(list, total, limit, p.Page), nil
}

func (s *newsService) basicPage(list []model.News, total int64, limit, page int) *utils.PageResult {
	dicts := make([]*model.BasicDict, 0, len(list))
	for i := range list {
		dicts = append(dicts, list[i].ToBasicDict())
	}
	return &utils.PageResult{
		List:        dicts,
		TotalPage:   utils.TotalPages(total, limit),
		CurrentPage: page,
	}
}

func (s *newsService) latestCategoryID() (uint, error) {
	categories, err := s.repo.Categories()
	if err != nil {
		return 0, err
	}
	if len(categories) == 0 {
		return 0, nil
	}
	return categories[0].ID, nil
}

func (s *newsService) buildAuthorDict(user *usermodel.User) (*usermodel.UserDict, error) {
	followers, err := s.userRepo.CountFollowers(user.ID)
	if err != nil {
		return nil, err
	}
	newsCount, err := s.userRepo.CountNewsByAuthor(user.ID)
	if err != nil {
		return nil, err
	}
	return user.ToDict(followers, newsCount), nil
}
