package captcha

import (
	"context"
	"strings"
	"time"

	"github.com/mojocn/base64Captcha"
	"github.com/redis/go-redis/v9"
)

// 图片验证码有效期
const imageCodeExpires = 5 * time.Minute

const keyPrefix = "ImageCodeId_"

// Service 图片验证码服务
// 答案保存在 Redis 中，由前端提交的 imageCodeId 定位
type Service interface {
	Generate(codeID string) (string, error)
	Verify(codeID, answer string) bool
}

type service struct {
	rdb    *redis.Client
	driver *base64Captcha.DriverDigit
}

func NewService(rdb *redis.Client) Service {
	return &service{
		rdb:    rdb,
		driver: base64Captcha.NewDriverDigit(38, 110, 4, 0.7, 80),
	}
}

// Generate 生成图片验证码，返回 base64 编码的图片
func (s *service) Generate(codeID string) (string, error) {
	_, content, answer := s.driver.GenerateIdQuestionAnswer()
	item, err := s.driver.DrawCaptcha(content)
	if err != nil {
		return "", err
	}

	key := keyPrefix + codeID
	if err := s.rdb.Set(context.Background(), key, answer, imageCodeExpires).Err(); err != nil {
		return "", err
	}

	return item.EncodeB64string(), nil
}

// Verify 校验图片验证码
// 验证通过后立即删除，防止重放
func (s *service) Verify(codeID, answer string) bool {
	key := keyPrefix + codeID
	val, err := s.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}

	if strings.EqualFold(val, answer) {
		s.rdb.Del(context.Background(), key)
		return true
	}
	return false
}
