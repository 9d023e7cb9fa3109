package storage

import (
	"Anatome/internal/api/config"
	"Anatome/internal/pkg/consts"
	"context"
	"fmt"
	log "log/slog"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured 存储后端凭据无效或不可达，所有操作降级为空操作
var ErrNotConfigured = fmt.Errorf("object storage is not configured")

// FileInfo 对象存储中的文件概要
type FileInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	URL          string    `json:"url"`
}

// Stats 存储状态概要
type Stats struct {
	Configured bool   `json:"configured"`
	Bucket     string `json:"bucket"`
	Region     string `json:"region"`
	Healthy    bool   `json:"healthy"`
}

type Storage interface {
	UploadVideo(ctx context.Context, localPath string, objectKey string) (string, error)
	UploadImage(ctx context.Context, localPath string, objectKey string) (string, error)
	Delete(ctx context.Context, fileURL string) bool
	StatFile(ctx context.Context, fileURL string) (*FileInfo, error)
	PresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error)
	ListFiles(ctx context.Context, prefix string) ([]FileInfo, error)
	IsHealthy(ctx context.Context) bool
	Stats(ctx context.Context) Stats
}

type minioStorage struct {
	client     *minio.Client
	endpoint   string
	bucket     string
	region     string
	useSSL     bool
	configured bool
}

// NewStorage 初始化对象存储客户端。凭据无效或桶不可达时不报错退出，
// 而是进入降级模式：上传/删除均为空操作，健康检查报告不健康。
func NewStorage(cfg config.MinIOConfig) Storage {
	s := &minioStorage{
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		useSSL:   cfg.UseSSL,
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		log.Warn("object storage not configured, uploads will be skipped", "err", err)
		return s
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil || !exists {
		log.Warn("object storage bucket not accessible, uploads will be skipped",
			"bucket", cfg.Bucket, "err", err)
		return s
	}

	s.client = client
	s.configured = true
	log.Info("object storage initialized", "bucket", cfg.Bucket)
	return s
}

// UploadVideo 上传视频并返回公共访问地址。视频对外公开可读。
func (s *minioStorage) UploadVideo(ctx context.Context, localPath string, objectKey string) (string, error) {
	return s.upload(ctx, localPath, objectKey, consts.MimeVideoMp4, true)
}

// UploadImage 上传封面图并返回访问地址。封面涉及隐私，不设公共读。
func (s *minioStorage) UploadImage(ctx context.Context, localPath string, objectKey string) (string, error) {
	return s.upload(ctx, localPath, objectKey, imageContentType(localPath), false)
}

func (s *minioStorage) upload(ctx context.Context, localPath string, objectKey string, contentType string, public bool) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}

	if _, err := os.Stat(localPath); err != nil {
		return "", fmt.Errorf("local file not found: %w", err)
	}

	opts := minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: consts.CacheControlLongLived,
	}
	if public {
		opts.UserMetadata = map[string]string{"x-amz-acl": "public-read"}
	}

	if _, err := s.client.FPutObject(ctx, s.bucket, objectKey, localPath, opts); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	url := s.publicURL(objectKey)
	log.InfoContext(ctx, "file uploaded", "key", objectKey, "url", url)
	return url, nil
}

// Delete 根据公共地址反解对象键并删除。地址无法识别或删除失败时返回 false。
func (s *minioStorage) Delete(ctx context.Context, fileURL string) bool {
	if !s.configured {
		log.WarnContext(ctx, "object storage not configured, skipping delete", "url", fileURL)
		return false
	}

	objectKey, ok := s.resolveObjectKey(fileURL)
	if !ok {
		log.ErrorContext(ctx, "could not resolve object key from url", "url", fileURL)
		return false
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		log.ErrorContext(ctx, "failed to delete object", "key", objectKey, "err", err)
		return false
	}

	log.InfoContext(ctx, "object deleted", "key", objectKey)
	return true
}

// StatFile 查询对象元信息，对象不存在或地址无法识别时报错
func (s *minioStorage) StatFile(ctx context.Context, fileURL string) (*FileInfo, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}

	objectKey, ok := s.resolveObjectKey(fileURL)
	if !ok {
		return nil, fmt.Errorf("could not resolve object key from url: %s", fileURL)
	}

	stat, err := s.client.StatObject(ctx, s.bucket, objectKey, minio.StatObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Key:          stat.Key,
		Size:         stat.Size,
		LastModified: stat.LastModified,
		URL:          s.publicURL(stat.Key),
	}, nil
}

// PresignedURL 为私有对象签发临时访问地址
func (s *minioStorage) PresignedURL(ctx context.Context, fileURL string, expiry time.Duration) (string, error) {
	if !s.configured {
		return "", ErrNotConfigured
	}

	objectKey, ok := s.resolveObjectKey(fileURL)
	if !ok {
		return "", fmt.Errorf("could not resolve object key from url: %s", fileURL)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// ListFiles 列举指定前缀下的对象
func (s *minioStorage) ListFiles(ctx context.Context, prefix string) ([]FileInfo, error) {
	if !s.configured {
		return nil, ErrNotConfigured
	}

	files := make([]FileInfo, 0)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		files = append(files, FileInfo{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			URL:          s.publicURL(obj.Key),
		})
	}
	return files, nil
}

func (s *minioStorage) IsHealthy(ctx context.Context) bool {
	if !s.configured {
		return false
	}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	return err == nil && exists
}

func (s *minioStorage) Stats(ctx context.Context) Stats {
	return Stats{
		Configured: s.configured,
		Bucket:     s.bucket,
		Region:     s.region,
		Healthy:    s.IsHealthy(ctx),
	}
}

// publicURL 构造对象的公共访问地址（路径风格）
func (s *minioStorage) publicURL(objectKey string) string {
	protocol := "http"
	if s.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.endpoint, s.bucket, objectKey)
}
