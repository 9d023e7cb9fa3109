package service

import (
	"Anatome/internal/api/dto"
	"Anatome/internal/pkg/mongo"
	"Anatome/internal/pkg/storage"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

// VideoService 视频记录查询与删除
type VideoService interface {
	// ListByBusiness 按业务分页查询视频记录
	ListByBusiness(ctx context.Context, businessID string, skip, limit int) (*dto.VideoListDTO, error)
	// DeleteVideo 删除视频记录及其再托管的媒体文件。
	// 对象存储删除失败只记录孤儿告警，不阻断记录删除。
	DeleteVideo(ctx context.Context, id string) error
}

type videoServiceImpl struct {
	videoRepo mongo.VideoRepo
	storage   storage.Storage
}

func NewVideoService(videoRepo mongo.VideoRepo, storage storage.Storage) VideoService {
	return &videoServiceImpl{
		videoRepo: videoRepo,
		storage:   storage,
	}
}

func (s *videoServiceImpl) ListByBusiness(ctx context.Context, businessID string, skip, limit int) (*dto.VideoListDTO, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	videos, total, err := s.videoRepo.FindByBusiness(ctx, businessID, int64(skip), int64(limit))
	if err != nil {
		log.Error("failed to list videos", "business_id", businessID, "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.VideoDTO, 0, len(videos))
	for _, video := range videos {
		items = append(items, toVideoDTO(video))
	}

	return &dto.VideoListDTO{
		Videos: items,
		Total:  total,
		Skip:   skip,
		Limit:  limit,
	}, nil
}

func (s *videoServiceImpl) DeleteVideo(ctx context.Context, id string) error {
	video, err := s.videoRepo.GetById(ctx, id)
	if err != nil {
		log.Error("failed to load video", "id", id, "err", err)
		return UnExpectedError
	}
	if video == nil {
		return ErrVideoNotFound
	}

	if video.S3URL != "" && !s.storage.Delete(ctx, video.S3URL) {
		log.Warn("failed to delete rehosted video, object may be orphaned", "id", id, "url", video.S3URL)
	}
	if video.S3ThumbnailURL != "" && !s.storage.Delete(ctx, video.S3ThumbnailURL) {
		log.Warn("failed to delete rehosted thumbnail, object may be orphaned", "id", id, "url", video.S3ThumbnailURL)
	}

	deleted, err := s.videoRepo.DeleteById(ctx, id)
	if err != nil {
		log.Error("failed to delete video record", "id", id, "err", err)
		return UnExpectedError
	}
	if !deleted {
		return ErrVideoNotFound
	}
	return nil
}

// toVideoDTO 数据库记录转响应结构
func toVideoDTO(video *mongo.Video) *dto.VideoDTO {
	item := &dto.VideoDTO{}
	_ = copier.Copy(item, video)

	item.ID = video.ID.Hex()
	if video.PublishedAt != nil {
		item.PublishedAt = video.PublishedAt.Format(time.RFC3339)
	}
	item.CreatedAt = video.CreatedAt.Format(time.RFC3339)
	item.UpdatedAt = video.UpdatedAt.Format(time.RFC3339)
	return item
}
