package sms

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"news_portal/internal/pkg/config"
	"news_portal/pkg/logger"

	"github.com/aliyun/alibaba-cloud-sdk-go/services/dysmsapi"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 短信验证码有效期与重发间隔
const (
	smsCodeExpires = 5 * time.Minute
	resendInterval = time.Minute
)

const keyPrefix = "SMS_"

// Service 短信验证码服务
type Service interface {
	SendCode(mobile string) error
	VerifyCode(mobile, code string) bool
}

type aliyunService struct {
	client *dysmsapi.Client
	rdb    *redis.Client
	cfg    config.SMSConfig
}

// NewService 创建短信服务
// 短信配置缺失时 client 为空，发送会直接失败，但验证码校验仍可用（配合 test_sms_code）
func NewService(rdb *redis.Client) Service {
	cfg := config.GlobalConfig.SMS

	var client *dysmsapi.Client
	if cfg.AccessKeyID != "" {
		c, err := dysmsapi.NewClientWithAccessKey(cfg.RegionID, cfg.AccessKeyID, cfg.AccessKeySecret)
		if err != nil {
			logger.Log.Warn("Failed to create sms client", zap.Error(err))
		} else {
			client = c
		}
	}

	return &aliyunService{client: client, rdb: rdb, cfg: cfg}
}

// SendCode 生成验证码、存入 Redis 并通过阿里云短信下发
func (s *aliyunService) SendCode(mobile string) error {
	ctx := context.Background()
	key := keyPrefix + mobile

	// 频率限制：剩余有效期超过 (有效期-重发间隔) 说明刚发过
	if ttl, err := s.rdb.TTL(ctx, key).Result(); err == nil && ttl > smsCodeExpires-resendInterval {
		return fmt.Errorf("please wait before requesting another code")
	}

	code := s.generateCode()

	if err := s.rdb.Set(ctx, key, code, smsCodeExpires).Err(); err != nil {
		return err
	}

	// 测试验证码模式下不调用服务商
	if config.GlobalConfig.App.TestSMSCode != "" {
		logger.Log.Info("SMS test mode, skip sending", zap.String("mobile", mobile))
		return nil
	}

	if s.client == nil {
		return fmt.Errorf("sms service is not configured")
	}

	request := dysmsapi.CreateSendSmsRequest()
	request.Scheme = "https"
	request.PhoneNumbers = mobile
	request.SignName = s.cfg.SignName
	request.TemplateCode = s.cfg.TemplateCode
	request.TemplateParam = fmt.Sprintf(`{"code":"%s"}`, code)

	resp, err := s.client.SendSms(request)
	if err != nil {
		return err
	}
	// 服务商约定 "OK" 为成功
	if resp.Code != "OK" {
		return fmt.Errorf("sms provider error: %s (%s)", resp.Code, resp.Message)
	}

	return nil
}

// VerifyCode 校验短信验证码
// 验证成功后立即删除，防止重放
func (s *aliyunService) VerifyCode(mobile, code string) bool {
	key := keyPrefix + mobile
	val, err := s.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}

	if val == code {
		s.rdb.Del(context.Background(), key)
		return true
	}
	return false
}

func (s *aliyunService) generateCode() string {
	if test := config.GlobalConfig.App.TestSMSCode; test != "" {
		return test
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand 基本不会失败，兜底用时间戳尾数
		n = big.NewInt(time.Now().UnixNano() % 1000000)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
