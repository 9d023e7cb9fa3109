package instagram

import (
	"Anatome/internal/api/config"
	"context"
	log "log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Stats 抓取器运行状态快照
type Stats struct {
	SessionLoaded bool             `json:"session_loaded"`
	RateLimiter   RateLimiterStats `json:"rate_limiter"`
}

// Scraper 上游平台抓取器
type Scraper interface {
	// GetProfileInfo 拉取账号档案概要
	GetProfileInfo(ctx context.Context, username string) (*ProfileInfo, error)
	// GetProfileVideos 抓取账号时间线中最新的至多 maxVideos 条视频帖子元数据。
	// 私密账号和上游错误均退化为空结果，不向调用方冒泡。
	GetProfileVideos(ctx context.Context, username string, maxVideos int) []*VideoInfo
	// GetVideoInfo 按帖子链接抓取单条视频元数据
	GetVideoInfo(ctx context.Context, rawURL string) (*VideoInfo, error)
	// DownloadVideo 下载单条视频到临时目录，返回视频文件路径
	DownloadVideo(ctx context.Context, rawURL string) (string, error)
	// CleanupTempFiles 清空临时下载目录
	CleanupTempFiles()
	IsHealthy() bool
	Stats() Stats
}

type scraperImpl struct {
	client  *Client
	limiter *RateLimiter
	tempDir string

	// 每处理 pauseEvery 条视频帖子暂停一次，进一步压低抓取节奏
	pauseEvery int
	pauseMin   time.Duration
	pauseMax   time.Duration
}

func NewScraper(cfg config.InstagramConfig) Scraper {
	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = "./temp"
	}
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		log.Error("failed to create temp dir", "dir", tempDir, "err", err)
	}
	if cfg.SessionsDir != "" {
		if err := os.MkdirAll(cfg.SessionsDir, 0o755); err != nil {
			log.Error("failed to create sessions dir", "dir", cfg.SessionsDir, "err", err)
		}
	}

	maxPerHour := cfg.MaxRequestsPerHour
	if maxPerHour <= 0 {
		maxPerHour = 30
	}
	minDelay := time.Duration(cfg.MinRequestDelayMs) * time.Millisecond
	if minDelay <= 0 {
		minDelay = 2 * time.Second
	}

	return &scraperImpl{
		client:     NewClient(cfg),
		limiter:    NewRateLimiter(maxPerHour, minDelay),
		tempDir:    tempDir,
		pauseEvery: 5,
		pauseMin:   2 * time.Second,
		pauseMax:   4 * time.Second,
	}
}

func (s *scraperImpl) GetProfileInfo(ctx context.Context, username string) (*ProfileInfo, error) {
	s.limiter.Acquire()

	user, err := s.client.Profile(ctx, username)
	if err != nil {
		return nil, err
	}

	return &ProfileInfo{
		Username:      user.Username,
		FullName:      user.FullName,
		Biography:     user.Biography,
		Followers:     user.EdgeFollowedBy.Count,
		Following:     user.EdgeFollow.Count,
		PostsCount:    user.EdgeOwnerToTimelineMedia.Count,
		IsVerified:    user.IsVerified,
		IsPrivate:     user.IsPrivate,
		ProfilePicURL: user.ProfilePicURL,
	}, nil
}

func (s *scraperImpl) GetProfileVideos(ctx context.Context, username string, maxVideos int) []*VideoInfo {
	videos := make([]*VideoInfo, 0, maxVideos)
	if maxVideos <= 0 {
		return videos
	}

	s.limiter.Acquire()
	user, err := s.client.Profile(ctx, username)
	if err != nil {
		log.Error("failed to fetch profile", "username", username, "err", err)
		return videos
	}
	if user.IsPrivate {
		log.Warn("profile is private, skipping", "username", username)
		return videos
	}

	timeline := &user.EdgeOwnerToTimelineMedia
	processed := 0
	for {
		for i := range timeline.Edges {
			node := &timeline.Edges[i].Node
			if !node.IsVideo {
				continue
			}

			processed++
			if info := newVideoInfo(node, username); info != nil {
				videos = append(videos, info)
			}

			// 每处理若干条视频帖子就随机停顿，降低被风控的概率
			if s.pauseEvery > 0 && processed%s.pauseEvery == 0 {
				s.pause()
			}
			if processed >= maxVideos {
				return videos
			}
		}

		if !timeline.PageInfo.HasNextPage || timeline.PageInfo.EndCursor == "" {
			return videos
		}

		s.limiter.Acquire()
		next, err := s.client.MediaPage(ctx, user.ID, timeline.PageInfo.EndCursor)
		if err != nil {
			log.Error("failed to fetch media page", "username", username, "err", err)
			return videos
		}
		timeline = next
	}
}

func (s *scraperImpl) GetVideoInfo(ctx context.Context, rawURL string) (*VideoInfo, error) {
	shortcode := ExtractShortcode(rawURL)
	if shortcode == "" {
		return nil, errors.Errorf("cannot extract shortcode from url: %s", rawURL)
	}

	s.limiter.Acquire()
	node, err := s.client.Post(ctx, shortcode)
	if err != nil {
		return nil, err
	}

	info := newVideoInfo(node, "")
	if info == nil {
		return nil, ErrNotVideo
	}
	return info, nil
}

func (s *scraperImpl) DownloadVideo(ctx context.Context, rawURL string) (string, error) {
	shortcode := ExtractShortcode(rawURL)
	if shortcode == "" {
		return "", errors.Errorf("cannot extract shortcode from url: %s", rawURL)
	}

	s.limiter.Acquire()
	node, err := s.client.Post(ctx, shortcode)
	if err != nil {
		return "", err
	}
	if !node.IsVideo || node.VideoURL == "" {
		return "", ErrNotVideo
	}

	dir := filepath.Join(s.tempDir, "video_"+shortcode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create download dir")
	}

	videoPath := filepath.Join(dir, shortcode+".mp4")
	if err := s.client.DownloadFile(ctx, node.VideoURL, videoPath); err != nil {
		return "", err
	}
	stat, err := os.Stat(videoPath)
	if err != nil || stat.Size() == 0 {
		return "", errors.Errorf("downloaded file is missing or empty: %s", videoPath)
	}

	// 缩略图尽力而为，失败不影响主流程
	if node.DisplayURL != "" {
		thumbPath := filepath.Join(dir, shortcode+".jpg")
		if err := s.client.DownloadFile(ctx, node.DisplayURL, thumbPath); err != nil {
			log.Warn("failed to download thumbnail", "shortcode", shortcode, "err", err)
		}
	}

	return videoPath, nil
}

func (s *scraperImpl) CleanupTempFiles() {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		log.Error("failed to read temp dir", "dir", s.tempDir, "err", err)
		return
	}
	removed := 0
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.tempDir, entry.Name())); err != nil {
			log.Warn("failed to remove temp entry", "name", entry.Name(), "err", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info("temp files cleaned", "removed", removed)
	}
}

func (s *scraperImpl) IsHealthy() bool {
	stat, err := os.Stat(s.tempDir)
	return err == nil && stat.IsDir()
}

func (s *scraperImpl) Stats() Stats {
	return Stats{
		SessionLoaded: s.client.HasSession(),
		RateLimiter:   s.limiter.Stats(),
	}
}

func (s *scraperImpl) pause() {
	d := s.pauseMin
	if s.pauseMax > s.pauseMin {
		d += time.Duration(rand.Int63n(int64(s.pauseMax - s.pauseMin)))
	}
	if d > 0 {
		time.Sleep(d)
	}
}

// ThumbnailPathFor 返回与视频文件同目录同名的缩略图路径
func ThumbnailPathFor(videoPath string) string {
	return strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".jpg"
}
