package uploader

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"news_portal/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

// Uploader 媒体存储收集器，返回的是对象 key，展示 URL 由 DisplayURL 拼接
type Uploader interface {
	UploadFile(file *multipart.FileHeader) (string, error)
}

type AliyunOSSUploader struct {
	client *oss.Client
	bucket *oss.Bucket
	config config.OSSConfig
}

func NewAliyunOSSUploader() (*AliyunOSSUploader, error) {
	cfg := config.GlobalConfig.OSS
	if cfg.Endpoint == "" || cfg.AccessKeyID == "" {
		return nil, fmt.Errorf("oss config is missing")
	}

	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		client: client,
		bucket: bucket,
		config: cfg,
	}, nil
}

// UploadFile 上传文件并返回对象 key: YYYYMMDD/uuid.ext
func (u *AliyunOSSUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	key := fmt.Sprintf("%s/%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)

	if err := u.bucket.PutObject(key, src); err != nil {
		return "", err
	}

	return key, nil
}

// Disabled 未配置对象存储时的兜底实现，所有上传直接报错
type Disabled struct{}

func (Disabled) UploadFile(*multipart.FileHeader) (string, error) {
	return "", fmt.Errorf("object storage is not configured")
}

// DisplayURL 用配置的域名前缀把对象 key 拼成可访问的 URL
func DisplayURL(key string) string {
	if key == "" {
		return ""
	}
	return config.GlobalConfig.OSS.Domain + key
}
