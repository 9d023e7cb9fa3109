package storage

import (
	"context"
	"testing"

	"Anatome/internal/pkg/consts"

	"github.com/stretchr/testify/assert"
)

func newTestStorage() *minioStorage {
	return &minioStorage{
		endpoint: "minio.local:9000",
		bucket:   "anatome-ai-videos",
		useSSL:   true,
	}
}

func TestResolveObjectKey(t *testing.T) {
	s := newTestStorage()

	tests := []struct {
		name    string
		url     string
		wantKey string
		wantOk  bool
	}{
		{"s3 scheme", "s3://anatome-ai-videos/videos/biz1/AAA.mp4", "videos/biz1/AAA.mp4", true},
		{"virtual-hosted style", "https://anatome-ai-videos.minio.local:9000/videos/biz1/AAA.mp4", "videos/biz1/AAA.mp4", true},
		{"path style", "https://minio.local:9000/anatome-ai-videos/videos/biz1/AAA.mp4", "videos/biz1/AAA.mp4", true},
		{"path style over http", "http://minio.local:9000/anatome-ai-videos/thumbnails/biz1/AAA.jpg", "thumbnails/biz1/AAA.jpg", true},
		{"wrong bucket", "s3://other-bucket/videos/AAA.mp4", "", false},
		{"unrelated host", "https://cdn.example/videos/AAA.mp4", "", false},
		{"empty key", "s3://anatome-ai-videos/", "", false},
		{"empty url", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := s.resolveObjectKey(tt.url)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, consts.MimeImagePng, imageContentType("/tmp/a.PNG"))
	assert.Equal(t, consts.MimeImageWebp, imageContentType("/tmp/a.webp"))
	assert.Equal(t, consts.MimeImageJpeg, imageContentType("/tmp/a.jpg"))
	assert.Equal(t, consts.MimeImageJpeg, imageContentType("/tmp/a.unknown"))
}

func TestPublicURL(t *testing.T) {
	s := newTestStorage()
	assert.Equal(t,
		"https://minio.local:9000/anatome-ai-videos/videos/biz1/AAA.mp4",
		s.publicURL("videos/biz1/AAA.mp4"))

	s.useSSL = false
	assert.Equal(t,
		"http://minio.local:9000/anatome-ai-videos/videos/biz1/AAA.mp4",
		s.publicURL("videos/biz1/AAA.mp4"))
}

func TestUnconfiguredStorageDegradesGracefully(t *testing.T) {
	s := newTestStorage()
	ctx := context.Background()

	_, err := s.UploadVideo(ctx, "/tmp/nonexistent.mp4", "videos/x.mp4")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.UploadImage(ctx, "/tmp/nonexistent.jpg", "thumbnails/x.jpg")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.False(t, s.Delete(ctx, "s3://anatome-ai-videos/videos/x.mp4"))

	_, err = s.StatFile(ctx, "s3://anatome-ai-videos/videos/x.mp4")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.False(t, s.IsHealthy(ctx))

	stats := s.Stats(ctx)
	assert.False(t, stats.Configured)
	assert.False(t, stats.Healthy)
	assert.Equal(t, "anatome-ai-videos", stats.Bucket)
}
