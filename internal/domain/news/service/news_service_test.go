package service

import (
	"testing"

	"news_portal/internal/domain/news/model"
	"news_portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockNewsRepository is a mock of NewsRepository
type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(news *model.News) error {
	args := m.Called(news)
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(id uint) (*model.News, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.News), args.Error(1)
}

func (m *MockNewsRepository) Update(news *model.News) error {
	args := m.Called(news)
	return args.Error(0)
}

func (m *MockNewsRepository) IncrementClicks(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNewsRepository) UpdateStatus(id uint, status int, reason string) error {
	args := m.Called(id, status, reason)
	return args.Error(0)
}

func (m *MockNewsRepository) ListApproved(categoryID uint, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(categoryID, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) ListByAuthor(userID uint, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) ListApprovedByAuthor(userID uint, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) ListReview(keyword string, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(keyword, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) ListEdit(keyword string, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(keyword, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) ClickRank(limit int) ([]model.News, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.News), args.Error(1)
}

func (m *MockNewsRepository) CountComments(newsID uint) (int64, error) {
	args := m.Called(newsID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNewsRepository) Categories() ([]model.Category, error) {
	args := m.Called()
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockNewsRepository) GetCategoryByID(id uint) (*model.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Category), args.Error(1)
}

func (m *MockNewsRepository) CreateCategory(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockNewsRepository) UpdateCategory(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockNewsRepository) CreateCollection(userID, newsID uint) error {
	args := m.Called(userID, newsID)
	return args.Error(0)
}

func (m *MockNewsRepository) DeleteCollection(userID, newsID uint) (bool, error) {
	args := m.Called(userID, newsID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsRepository) HasCollected(userID, newsID uint) (bool, error) {
	args := m.Called(userID, newsID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNewsRepository) ListCollected(userID uint, offset, limit int) ([]model.News, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.News), args.Get(1).(int64), args.Error(2)
}

func createTestNews(id uint, title string) *model.News {
	news := &model.News{
		Title:      title,
		Source:     personalSource,
		Digest:     "digest",
		Content:    "content",
		CategoryID: 2,
		Status:     model.StatusPending,
	}
	news.ID = id
	return news
}

func createTestCategories() []model.Category {
	names := []string{"最新", "股市", "债市"}
	categories := make([]model.Category, 0, len(names))
	for i, name := range names {
		c := model.Category{Name: name}
		c.ID = uint(i + 1)
		categories = append(categories, c)
	}
	return categories
}

func TestModerate(t *testing.T) {
	t.Run("Reject without reason fails before any write", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		err := service.Moderate(1, false, "")

		assert.ErrorIs(t, err, ErrMissingReason)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Reject with reason", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		news := createTestNews(1, "pending story")

		mockRepo.On("GetByID", uint(1)).Return(news, nil)
		mockRepo.On("UpdateStatus", uint(1), model.StatusRejected, "duplicate content").Return(nil)

		err := service.Moderate(1, false, "duplicate content")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Accept clears a stale rejection reason", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		news := createTestNews(1, "resubmitted story")
		news.Status = model.StatusPending
		news.Reason = "was rejected before"

		mockRepo.On("GetByID", uint(1)).Return(news, nil)
		mockRepo.On("UpdateStatus", uint(1), model.StatusApproved, "").Return(nil)

		err := service.Moderate(1, true, "")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing news", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("GetByID", uint(42)).Return(nil, gorm.ErrRecordNotFound)

		err := service.Moderate(42, true, "")

		assert.ErrorIs(t, err, ErrNewsNotFound)
	})
}

func TestCollect(t *testing.T) {
	t.Run("Collect inserts once", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		news := createTestNews(1, "story")

		mockRepo.On("GetByID", uint(1)).Return(news, nil)
		mockRepo.On("HasCollected", uint(5), uint(1)).Return(false, nil)
		mockRepo.On("CreateCollection", uint(5), uint(1)).Return(nil)

		err := service.Collect(5, 1, true)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Collect again is a no-op", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		news := createTestNews(1, "story")

		mockRepo.On("GetByID", uint(1)).Return(news, nil)
		mockRepo.On("HasCollected", uint(5), uint(1)).Return(true, nil)

		err := service.Collect(5, 1, true)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "CreateCollection", mock.Anything, mock.Anything)
	})

	t.Run("Cancel absent collection is a no-op", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		news := createTestNews(1, "story")

		mockRepo.On("GetByID", uint(1)).Return(news, nil)
		mockRepo.On("HasCollected", uint(5), uint(1)).Return(false, nil)

		err := service.Collect(5, 1, false)

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "DeleteCollection", mock.Anything, mock.Anything)
	})

	t.Run("Collect missing news", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("GetByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		err := service.Collect(5, 9, true)

		assert.ErrorIs(t, err, ErrNewsNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("Latest category means no filter", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		p := utils.Pagination{Page: 1, PerPage: 10}

		mockRepo.On("Categories").Return(createTestCategories(), nil)
		mockRepo.On("ListApproved", uint(0), 0, 10).Return([]model.News{*createTestNews(1, "a")}, int64(1), nil)

		result, err := service.List(1, p)

		assert.NoError(t, err)
		assert.Len(t, result.List, 1)
		assert.Equal(t, 1, result.TotalPage)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Out of range page returns empty list with same total", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		p := utils.Pagination{Page: 9, PerPage: 10}

		mockRepo.On("Categories").Return(createTestCategories(), nil)
		mockRepo.On("ListApproved", uint(2), 80, 10).Return([]model.News{}, int64(25), nil)

		result, err := service.List(2, p)

		assert.NoError(t, err)
		assert.Empty(t, result.List)
		assert.Equal(t, 3, result.TotalPage)
		assert.Equal(t, 9, result.CurrentPage)
	})
}

func TestCategories(t *testing.T) {
	t.Run("Picker list drops the latest pseudo category", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("Categories").Return(createTestCategories(), nil)

		dicts, err := service.Categories(true)

		assert.NoError(t, err)
		assert.Len(t, dicts, 2)
		assert.Equal(t, "股市", dicts[0].Name)
	})

	t.Run("Full list keeps all categories", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("Categories").Return(createTestCategories(), nil)

		dicts, err := service.Categories(false)

		assert.NoError(t, err)
		assert.Len(t, dicts, 3)
	})
}

func TestSubmit(t *testing.T) {
	t.Run("Submit enters pending state", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		category := &model.Category{Name: "股市"}
		category.ID = 2

		mockRepo.On("GetCategoryByID", uint(2)).Return(category, nil)
		mockRepo.On("Create", mock.AnythingOfType("*model.News")).Return(nil)

		news, err := service.Submit(5, "title", 2, "digest", "content", nil)

		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, news.Status)
		assert.Equal(t, personalSource, news.Source)
		assert.Equal(t, uint(5), *news.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Submit to missing category", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("GetCategoryByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Submit(5, "title", 99, "digest", "content", nil)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestSaveCategory(t *testing.T) {
	t.Run("Zero id creates", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		mockRepo.On("CreateCategory", mock.AnythingOfType("*model.Category")).Return(nil)

		err := service.SaveCategory(0, "科技")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Existing id renames", func(t *testing.T) {
		mockRepo := new(MockNewsRepository)
		service := NewNewsService(mockRepo, nil, nil)

		category := &model.Category{Name: "股市"}
		category.ID = 2

		mockRepo.On("GetCategoryByID", uint(2)).Return(category, nil)
		mockRepo.On("UpdateCategory", category).Return(nil)

		err := service.SaveCategory(2, "A股")

		assert.NoError(t, err)
		assert.Equal(t, "A股", category.Name)
	})
}
