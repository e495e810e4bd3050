package service

import (
	"mime/multipart"
	"os"
	"testing"
	"time"

	"news_portal/internal/domain/user/model"
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

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByMobile(mobile string) (*model.User, error) {
	args := m.Called(mobile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
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

func (m *MockUserRepository) GetFollowedUsers(userID uint, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

// MockSMSService is a mock of sms.Service
type MockSMSService struct {
	mock.Mock
}

func (m *MockSMSService) SendCode(mobile string) error {
	args := m.Called(mobile)
	return args.Error(0)
}

func (m *MockSMSService) VerifyCode(mobile, code string) bool {
	args := m.Called(mobile, code)
	return args.Bool(0)
}

// MockUploader is a mock of uploader.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func createTestUser(id uint, mobile string) *model.User {
	user := &model.User{
		NickName: mobile,
		Mobile:   mobile,
		Gender:   model.GenderMan,
	}
	user.ID = id
	_ = user.SetPassword("correct-password")
	return user
}

func TestRegister(t *testing.T) {
	t.Run("New user registration success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSMS := new(MockSMSService)
		service := NewUserService(mockRepo, mockSMS, nil)

		mobile := "13800138000"

		mockSMS.On("VerifyCode", mobile, "123456").Return(true)
		mockRepo.On("GetByMobile", mobile).Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		token, user, err := service.Register(mobile, "secret123", "123456")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, mobile, user.NickName)
		mockSMS.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid verification code", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSMS := new(MockSMSService)
		service := NewUserService(mockRepo, mockSMS, nil)

		mockSMS.On("VerifyCode", "13800138000", "000000").Return(false)

		token, user, err := service.Register("13800138000", "secret123", "000000")

		assert.ErrorIs(t, err, ErrCodeInvalid)
		assert.Empty(t, token)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Mobile already registered", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockSMS := new(MockSMSService)
		service := NewUserService(mockRepo, mockSMS, nil)

		mobile := "13800138001"
		existing := createTestUser(7, mobile)

		mockSMS.On("VerifyCode", mobile, "123456").Return(true)
		mockRepo.On("GetByMobile", mobile).Return(existing, nil)

		_, _, err := service.Register(mobile, "secret123", "123456")

		assert.ErrorIs(t, err, ErrUserExists)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Login success updates last login", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		mobile := "13800138000"
		user := createTestUser(1, mobile)

		mockRepo.On("GetByMobile", mobile).Return(user, nil)
		mockRepo.On("UpdateLastLogin", uint(1), mock.AnythingOfType("time.Time")).Return(nil)

		token, got, err := service.Login(mobile, "correct-password")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(1), got.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		mobile := "13800138000"
		user := createTestUser(1, mobile)

		mockRepo.On("GetByMobile", mobile).Return(user, nil)

		_, _, err := service.Login(mobile, "wrong-password")

		assert.ErrorIs(t, err, ErrPasswordWrong)
		mockRepo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything)
	})

	t.Run("Unknown mobile", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		mockRepo.On("GetByMobile", "13800138009").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := service.Login("13800138009", "whatever")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUpdateBaseInfo(t *testing.T) {
	t.Run("Update success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		user := createTestUser(1, "13800138000")

		mockRepo.On("GetByID", uint(1)).Return(user, nil)
		mockRepo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		err := service.UpdateBaseInfo(1, "newnick", "hello", model.GenderWoman)

		assert.NoError(t, err)
		assert.Equal(t, "newnick", user.NickName)
		assert.Equal(t, model.GenderWoman, user.Gender)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Invalid gender rejected before any read", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		err := service.UpdateBaseInfo(1, "newnick", "hello", "OTHER")

		assert.ErrorIs(t, err, ErrInvalidGender)
		mockRepo.AssertNotCalled(t, "GetByID", mock.Anything)
	})
}

func TestUpdatePassword(t *testing.T) {
	t.Run("Old password must match", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		user := createTestUser(1, "13800138000")
		mockRepo.On("GetByID", uint(1)).Return(user, nil)

		err := service.UpdatePassword(1, "wrong-password", "newpass123")

		assert.ErrorIs(t, err, ErrPasswordWrong)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	})
}

func TestFollow(t *testing.T) {
	t.Run("Follow success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		target := createTestUser(2, "13800138002")

		mockRepo.On("GetByID", uint(2)).Return(target, nil)
		mockRepo.On("HasFollowed", uint(1), uint(2)).Return(false, nil)
		mockRepo.On("CreateFollow", uint(1), uint(2)).Return(nil)

		err := service.Follow(1, 2)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate follow rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		target := createTestUser(2, "13800138002")

		mockRepo.On("GetByID", uint(2)).Return(target, nil)
		mockRepo.On("HasFollowed", uint(1), uint(2)).Return(true, nil)

		err := service.Follow(1, 2)

		assert.ErrorIs(t, err, ErrAlreadyFollowing)
		mockRepo.AssertNotCalled(t, "CreateFollow", mock.Anything, mock.Anything)
	})

	t.Run("Follow missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		mockRepo.On("GetByID", uint(99)).Return(nil, gorm.ErrRecordNotFound)

		err := service.Follow(1, 99)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUnfollow(t *testing.T) {
	t.Run("Unfollow absent edge is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		mockRepo.On("DeleteFollow", uint(1), uint(2)).Return(false, nil)

		err := service.Unfollow(1, 2)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetOtherInfo(t *testing.T) {
	t.Run("Anonymous viewer gets is_followed false", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		target := createTestUser(2, "13800138002")

		mockRepo.On("GetByID", uint(2)).Return(target, nil)
		mockRepo.On("CountFollowers", uint(2)).Return(int64(3), nil)
		mockRepo.On("CountNewsByAuthor", uint(2)).Return(int64(5), nil)

		dict, isFollowed, err := service.GetOtherInfo(0, 2)

		assert.NoError(t, err)
		assert.False(t, isFollowed)
		assert.Equal(t, int64(3), dict.FollowersCount)
		assert.Equal(t, int64(5), dict.NewsCount)
		mockRepo.AssertNotCalled(t, "HasFollowed", mock.Anything, mock.Anything)
	})

	t.Run("Logged in viewer sees follow state", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		target := createTestUser(2, "13800138002")

		mockRepo.On("GetByID", uint(2)).Return(target, nil)
		mockRepo.On("CountFollowers", uint(2)).Return(int64(0), nil)
		mockRepo.On("CountNewsByAuthor", uint(2)).Return(int64(0), nil)
		mockRepo.On("HasFollowed", uint(1), uint(2)).Return(true, nil)

		_, isFollowed, err := service.GetOtherInfo(1, 2)

		assert.NoError(t, err)
		assert.True(t, isFollowed)
	})
}

func TestGetFollowedList(t *testing.T) {
	t.Run("Out of range page returns empty list with same total", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, new(MockSMSService), nil)

		p := utils.Pagination{Page: 5, PerPage: 10}

		mockRepo.On("GetFollowedUsers", uint(1), 40, 10).Return([]model.User{}, int64(12), nil)

		result, err := service.GetFollowedList(1, p)

		assert.NoError(t, err)
		assert.Empty(t, result.List)
		assert.Equal(t, 2, result.TotalPage)
		assert.Equal(t, 5, result.CurrentPage)
	})
}
