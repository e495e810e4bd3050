package service

import (
	"os"
	"testing"
	"time"

	usermodel "news_portal/internal/domain/user/model"
	"news_portal/internal/pkg/config"
	"news_portal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	config.GlobalConfig.JWT.Secret = "test-secret-key-for-unit-tests-only!!"
	config.GlobalConfig.JWT.Expire = 24
	os.Exit(m.Run())
}

// MockUserRepository is a mock of the user repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *usermodel.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*usermodel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodel.User), args.Error(1)
}

func (m *MockUserRepository) GetByMobile(mobile string) (*usermodel.User, error) {
	args := m.Called(mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usermodel.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *usermodel.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateLastLogin(id uint, t time.Time) error {
	args := m.Called(id, t)
	return args.Error(0)
}

func (m *MockUserRepository) CountFollowers(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountNewsByAuthor(userID uint) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CreateFollow(followerID, followedID uint) error {
	args := m.Called(followerID, followedID)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteFollow(followerID, followedID uint) (bool, error) {
	args := m.Called(followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) HasFollowed(followerID, followedID uint) (bool, error) {
	args := m.Called(followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetFollowedUsers(userID uint, offset, limit int) ([]usermodel.User, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]usermodel.User), args.Get(1).(int64), args.Error(2)
}

// MockAdminRepository is a mock of AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) CountUsersCreatedSince(t time.Time) (int64, error) {
	args := m.Called(t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) CountActiveBetween(start, end time.Time) (int64, error) {
	args := m.Called(start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) ListUsers(offset, limit int) ([]usermodel.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]usermodel.User), args.Get(1).(int64), args.Error(2)
}

func createAdminUser(mobile string) *usermodel.User {
	user := &usermodel.User{
		NickName: "admin",
		Mobile:   mobile,
		IsAdmin:  true,
	}
	user.ID = 1
	_ = user.SetPassword("admin-password")
	return user
}

func TestAdminLogin(t *testing.T) {
	t.Run("Admin login success", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockRepo := new(MockAdminRepository)
		service := NewAdminService(mockUsers, mockRepo)

		admin := createAdminUser("13900000000")

		mockUsers.On("GetByMobile", "13900000000").Return(admin, nil)
		mockUsers.On("UpdateLastLogin", uint(1), mock.AnythingOfType("time.Time")).Return(nil)

		token, user, err := service.Login("13900000000", "admin-password")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, user.IsAdmin)
		mockUsers.AssertExpectations(t)
	})

	t.Run("Regular user is rejected", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		service := NewAdminService(mockUsers, new(MockAdminRepository))

		regular := createAdminUser("13900000001")
		regular.IsAdmin = false

		mockUsers.On("GetByMobile", "13900000001").Return(regular, nil)

		_, _, err := service.Login("13900000001", "admin-password")

		assert.ErrorIs(t, err, ErrNotAdmin)
		mockUsers.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		service := NewAdminService(mockUsers, new(MockAdminRepository))

		admin := createAdminUser("13900000000")

		mockUsers.On("GetByMobile", "13900000000").Return(admin, nil)

		_, _, err := service.Login("13900000000", "nope")

		assert.ErrorIs(t, err, ErrPasswordWrong)
	})

	t.Run("Unknown mobile", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		service := NewAdminService(mockUsers, new(MockAdminRepository))

		mockUsers.On("GetByMobile", "13912345678").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := service.Login("13912345678", "whatever")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserStats(t *testing.T) {
	t.Run("Active line pairs date with that day's count in ascending order", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockRepo := new(MockAdminRepository)

		svc := NewAdminService(mockUsers, mockRepo).(*adminService)
		fixed := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
		svc.now = func() time.Time { return fixed }

		dayStart := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		monthStart := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		mockRepo.On("CountUsers").Return(int64(100), nil)
		mockRepo.On("CountUsersCreatedSince", monthStart).Return(int64(20), nil)
		mockRepo.On("CountUsersCreatedSince", dayStart).Return(int64(3), nil)

		// 每天返回不同的值，点位必须和它自己的日期配对
		for i := activeWindowDays - 1; i >= 0; i-- {
			begin := dayStart.AddDate(0, 0, -i)
			mockRepo.On("CountActiveBetween", begin, begin.AddDate(0, 0, 1)).Return(int64(i), nil)
		}

		stats, err := svc.UserStats()

		assert.NoError(t, err)
		assert.Equal(t, int64(100), stats.TotalCount)
		assert.Equal(t, int64(20), stats.MonthCount)
		assert.Equal(t, int64(3), stats.DayCount)
		assert.Len(t, stats.ActiveLine, activeWindowDays)

		// 升序：最早的一天在最前
		assert.Equal(t, "2024-02-14", stats.ActiveLine[0].Date)
		assert.Equal(t, int64(activeWindowDays-1), stats.ActiveLine[0].Count)
		assert.Equal(t, "2024-03-15", stats.ActiveLine[len(stats.ActiveLine)-1].Date)
		assert.Equal(t, int64(0), stats.ActiveLine[len(stats.ActiveLine)-1].Count)

		for i := 1; i < len(stats.ActiveLine); i++ {
			assert.Less(t, stats.ActiveLine[i-1].Date, stats.ActiveLine[i].Date)
		}
	})
}

func TestUserList(t *testing.T) {
	t.Run("User list pages", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockRepo := new(MockAdminRepository)
		service := NewAdminService(mockUsers, mockRepo)

		user := createAdminUser("13800138000")
		user.IsAdmin = false

		mockRepo.On("ListUsers", 0, 10).Return([]usermodel.User{*user}, int64(1), nil)

		result, err := service.UserList(utils.Pagination{Page: 1, PerPage: 10})

		assert.NoError(t, err)
		assert.Equal(t, 1, result.TotalPage)
		assert.Equal(t, 1, result.CurrentPage)
	})
}
