package service

import (
	"Anatome/internal/api/dto"
	"Anatome/internal/pkg/consts"
	"Anatome/internal/pkg/instagram"
	"Anatome/internal/pkg/mongo"
	"Anatome/internal/pkg/redis"
	"Anatome/internal/pkg/storage"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

const (
	// scrapeStatusTTL 抓取进度记录的保留时长
	scrapeStatusTTL = 24 * time.Hour
	// backgroundScrapeTimeout 单次后台抓取任务的总时长上限
	backgroundScrapeTimeout = 30 * time.Minute
)

// ScrapeResult 一次批量抓取的结果汇总
type ScrapeResult struct {
	Created           int
	SkippedDuplicates int
	Failed            []dto.ItemFailed
}

// ScrapeService 抓取编排：拉元数据、下载、再托管、入库
type ScrapeService interface {
	// ScrapeProfile 同步抓取账号时间线中至多 maxVideos 条视频并逐条落库。
	// 单条失败只计入汇总，不中断批次。
	ScrapeProfile(ctx context.Context, username, userID, socialProfileID, businessID string, maxVideos int) *ScrapeResult
	// ScrapeOne 按帖子链接抓取单条视频并落库
	ScrapeOne(ctx context.Context, videoURL, userID, socialProfileID, businessID string) (*dto.VideoDTO, error)
	// RunProfileScrape 在后台执行 ScrapeProfile，进度写入 Redis
	RunProfileScrape(username, userID, socialProfileID, businessID string, maxVideos int)
	// GetScrapeStatus 查询该用户后台抓取任务的进度
	GetScrapeStatus(ctx context.Context, userID, username string) (*dto.ScrapeStatusDTO, error)
	// GetProfileInfo 拉取账号档案概要
	GetProfileInfo(ctx context.Context, username string) (*instagram.ProfileInfo, error)
}

type scrapeServiceImpl struct {
	scraper   instagram.Scraper
	videoRepo mongo.VideoRepo
	storage   storage.Storage
}

func NewScrapeService(scraper instagram.Scraper, videoRepo mongo.VideoRepo, storage storage.Storage) ScrapeService {
	return &scrapeServiceImpl{
		scraper:   scraper,
		videoRepo: videoRepo,
		storage:   storage,
	}
}

func (s *scrapeServiceImpl) ScrapeProfile(ctx context.Context, username, userID, socialProfileID, businessID string, maxVideos int) *ScrapeResult {
	result := &ScrapeResult{Failed: make([]dto.ItemFailed, 0)}

	videos := s.scraper.GetProfileVideos(ctx, username, maxVideos)
	for _, info := range videos {
		exists, err := s.videoRepo.ExistsBySourceURL(ctx, userID, info.URL)
		if err != nil {
			result.Failed = append(result.Failed, dto.ItemFailed{VideoURL: info.URL, Reason: err.Error()})
			continue
		}
		if exists {
			result.SkippedDuplicates++
			continue
		}

		if _, err := s.processVideo(ctx, info, userID, socialProfileID, businessID); err != nil {
			log.Error("failed to process video", "url", info.URL, "err", err)
			result.Failed = append(result.Failed, dto.ItemFailed{VideoURL: info.URL, Reason: err.Error()})
			continue
		}
		result.Created++
	}

	log.Info("profile scrape finished",
		"username", username,
		"created", result.Created,
		"skipped", result.SkippedDuplicates,
		"failed", len(result.Failed))
	return result
}

func (s *scrapeServiceImpl) ScrapeOne(ctx context.Context, videoURL, userID, socialProfileID, businessID string) (*dto.VideoDTO, error) {
	if instagram.ExtractShortcode(videoURL) == "" {
		return nil, ErrVideoURLInvalid
	}

	info, err := s.scraper.GetVideoInfo(ctx, videoURL)
	if err != nil {
		return nil, mapScrapeError(err)
	}

	exists, err := s.videoRepo.ExistsBySourceURL(ctx, userID, info.URL)
	if err != nil {
		log.Error("failed to check duplicate", "url", info.URL, "err", err)
		return nil, UnExpectedError
	}
	if exists {
		return nil, ErrActionDuplicate
	}

	video, err := s.processVideo(ctx, info, userID, socialProfileID, businessID)
	if err != nil {
		return nil, mapScrapeError(err)
	}
	return toVideoDTO(video), nil
}

// processVideo 单条视频的完整流水线：下载、再托管、入库。临时文件无论成败都会清理。
func (s *scrapeServiceImpl) processVideo(ctx context.Context, info *instagram.VideoInfo, userID, socialProfileID, businessID string) (*mongo.Video, error) {
	videoPath, err := s.scraper.DownloadVideo(ctx, info.URL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(filepath.Dir(videoPath)); err != nil {
			log.Warn("failed to remove temp download dir", "path", videoPath, "err", err)
		}
	}()

	// 对象存储不可用时降级：记录照常入库，托管地址留空
	s3URL, err := s.storage.UploadVideo(ctx, videoPath,
		fmt.Sprintf("videos/%s/%s.mp4", businessID, info.Shortcode))
	if err != nil {
		log.Warn("failed to rehost video, keeping record without s3 url", "shortcode", info.Shortcode, "err", err)
		s3URL = ""
	}

	s3ThumbnailURL := ""
	thumbPath := instagram.ThumbnailPathFor(videoPath)
	if _, statErr := os.Stat(thumbPath); statErr == nil {
		s3ThumbnailURL, err = s.storage.UploadImage(ctx, thumbPath,
			fmt.Sprintf("thumbnails/%s/%s.jpg", businessID, info.Shortcode))
		if err != nil {
			log.Warn("failed to rehost thumbnail", "shortcode", info.Shortcode, "err", err)
			s3ThumbnailURL = ""
		}
	}

	video := &mongo.Video{
		UserID:          userID,
		SocialProfileID: socialProfileID,
		BusinessID:      businessID,
		VideoURL:        info.URL,
		ThumbnailURL:    info.ThumbnailURL,
		S3URL:           s3URL,
		S3ThumbnailURL:  s3ThumbnailURL,
		Caption:         info.Caption,
		Likes:           info.Likes,
		Comments:        info.Comments,
		Shares:          info.Shares,
		Views:           info.Views,
		Duration:        info.Duration,
		PublishedAt:     info.PublishedAt,
		AnalysisStatus:  consts.AnalysisStatusPending,
	}
	return s.videoRepo.Insert(ctx, video)
}

func (s *scrapeServiceImpl) RunProfileScrape(username, userID, socialProfileID, businessID string, maxVideos int) {
	status := &dto.ScrapeStatusDTO{
		UserID:    userID,
		Username:  username,
		Status:    consts.ScrapeStatusRunning,
		Requested: maxVideos,
		Failed:    make([]dto.ItemFailed, 0),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.saveStatus(context.Background(), status)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("background scrape panicked", "username", username, "panic", r)
				status.Status = consts.ScrapeStatusFailed
				status.Error = fmt.Sprintf("%v", r)
				status.FinishedAt = time.Now().UTC().Format(time.RFC3339)
				s.saveStatus(context.Background(), status)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundScrapeTimeout)
		defer cancel()

		result := s.ScrapeProfile(ctx, username, userID, socialProfileID, businessID, maxVideos)

		status.Status = consts.ScrapeStatusCompleted
		status.Created = result.Created
		status.SkippedDuplicates = result.SkippedDuplicates
		status.Failed = result.Failed
		status.FinishedAt = time.Now().UTC().Format(time.RFC3339)
		s.saveStatus(context.Background(), status)
	}()
}

// scrapeStatusKey 状态记录按用户隔离，不同用户抓取同一账号互不覆盖
func scrapeStatusKey(userID, username string) string {
	return consts.ScrapeStatusKey + userID + ":" + username
}

func (s *scrapeServiceImpl) GetScrapeStatus(ctx context.Context, userID, username string) (*dto.ScrapeStatusDTO, error) {
	raw, err := redis.GetValue(ctx, scrapeStatusKey(userID, username))
	if err != nil || raw == "" {
		return nil, ErrScrapeStatusNotFound
	}

	status := &dto.ScrapeStatusDTO{}
	if err := json.Unmarshal([]byte(raw), status); err != nil {
		log.Error("failed to parse scrape status", "username", username, "err", err)
		return nil, UnExpectedError
	}
	return status, nil
}

func (s *scrapeServiceImpl) saveStatus(ctx context.Context, status *dto.ScrapeStatusDTO) {
	raw, err := json.Marshal(status)
	if err != nil {
		log.Error("failed to marshal scrape status", "username", status.Username, "err", err)
		return
	}
	if err := redis.SetWithExpiration(ctx, scrapeStatusKey(status.UserID, status.Username), string(raw), scrapeStatusTTL); err != nil {
		log.Error("failed to save scrape status", "username", status.Username, "err", err)
	}
}

func (s *scrapeServiceImpl) GetProfileInfo(ctx context.Context, username string) (*instagram.ProfileInfo, error) {
	info, err := s.scraper.GetProfileInfo(ctx, username)
	if err != nil {
		return nil, mapScrapeError(err)
	}
	return info, nil
}

// mapScrapeError 将抓取层错误映射为对外的业务错误
func mapScrapeError(err error) error {
	switch {
	case errors.Is(err, instagram.ErrPostNotFound):
		return ErrVideoNotFound
	case errors.Is(err, instagram.ErrProfileNotFound):
		return ErrProfileNotFound
	case errors.Is(err, instagram.ErrProfilePrivate):
		return ErrProfilePrivate
	case errors.Is(err, instagram.ErrNotVideo):
		return ErrNotVideoPost
	case errors.Is(err, instagram.ErrLoginRequired):
		return ErrLoginRequired
	default:
		return UnExpectedError
	}
}
