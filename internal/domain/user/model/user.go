package model

import (
	"time"

	"news_portal/internal/pkg/uploader"
	baseModel "news_portal/pkg/model"

	"golang.org/x/crypto/bcrypt"
)

// 性别枚举
const (
	GenderMan   = "MAN"
	GenderWoman = "WOMAN"
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	NickName     string    `gorm:"size:32;uniqueIndex;not null" json:"nick_name"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"` // 密码不返回给前端
	Mobile       string    `gorm:"size:11;uniqueIndex;not null" json:"mobile"`
	AvatarURL    string    `gorm:"size:256" json:"avatar_url"` // 存对象 key，展示时拼接域名
	LastLogin    time.Time `json:"last_login"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	Signature    string    `gorm:"size:512" json:"signature"`
	Gender       string    `gorm:"size:8;default:'MAN'" json:"gender"`
}

func (User) TableName() string {
	return "info_user"
}

// SetPassword 对密码进行bcrypt加密
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword 校验密码
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Follow 关注关系，有向边：follower 关注 followed
type Follow struct {
	FollowerID uint      `gorm:"primaryKey" json:"follower_id"`
	FollowedID uint      `gorm:"primaryKey" json:"followed_id"`
	CreatedAt  time.Time `json:"create_time"`
}

func (Follow) TableName() string {
	return "info_user_fans"
}

// UserDict 用户公开信息
type UserDict struct {
	ID             uint   `json:"id"`
	NickName       string `json:"nick_name"`
	AvatarURL      string `json:"avatar_url"`
	Mobile         string `json:"mobile"`
	Gender         string `json:"gender"`
	Signature      string `json:"signature"`
	FollowersCount int64  `json:"followers_count"`
	NewsCount      int64  `json:"news_count"`
}

// ToDict 组装用户公开信息，计数由仓库层查出后传入
func (u *User) ToDict(followersCount, newsCount int64) *UserDict {
	gender := u.Gender
	if gender == "" {
		gender = GenderMan
	}
	return &UserDict{
		ID:             u.ID,
		NickName:       u.NickName,
		AvatarURL:      uploader.DisplayURL(u.AvatarURL),
		Mobile:         u.Mobile,
		Gender:         gender,
		Signature:      u.Signature,
		FollowersCount: followersCount,
		NewsCount:      newsCount,
	}
}

// AdminDict 后台用户列表展示信息
type AdminDict struct {
	ID        uint   `json:"id"`
	NickName  string `json:"nick_name"`
	Mobile    string `json:"mobile"`
	Register  string `json:"register"`
	LastLogin string `json:"last_login"`
}

func (u *User) ToAdminDict() *AdminDict {
	return &AdminDict{
		ID:        u.ID,
		NickName:  u.NickName,
		Mobile:    u.Mobile,
		Register:  u.CreatedAt.Format(baseModel.TimeLayout),
		LastLogin: u.LastLogin.Format(baseModel.TimeLayout),
	}
}
