package instagram

import (
	"Anatome/internal/api/config"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	// BaseURL 上游平台根地址
	BaseURL = "https://www.instagram.com"

	profileEndpoint = "/api/v1/users/web_profile_info/"
	mediaEndpoint   = "/graphql/query/"
	mediaQueryHash  = "e769aa130647d2354c40ea6a439bfc08"

	// pageSize 时间线翻页每页条数
	pageSize = 12

	appID            = "936619743392459"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfilePrivate  = errors.New("profile is private")
	ErrLoginRequired   = errors.New("login required")
	ErrPostNotFound    = errors.New("post not found")
	ErrNotVideo        = errors.New("post is not a video")
)

// Client 上游平台 HTTP 客户端，会话凭据在构造时从会话文件装载
type Client struct {
	http    *resty.Client
	session *Session
}

func NewClient(cfg config.InstagramConfig) *Client {
	timeout := 30 * time.Second
	if cfg.RequestTimeoutSec > 0 {
		timeout = time.Duration(cfg.RequestTimeoutSec) * time.Second
	}

	session, err := LoadSession(cfg.SessionFile)
	if err != nil {
		log.Warn("failed to load instagram session, continuing anonymously", "err", err)
	}

	userAgent := defaultUserAgent
	if session != nil && session.UserAgent != "" {
		userAgent = session.UserAgent
	}

	httpClient := resty.New().
		SetBaseURL(BaseURL).
		SetTimeout(timeout).
		SetHeaders(map[string]string{
			"User-Agent":      userAgent,
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
			"X-IG-App-ID":     appID,
		})

	if session != nil {
		httpClient.SetCookies([]*http.Cookie{
			{Name: "sessionid", Value: session.SessionID, Domain: ".instagram.com"},
			{Name: "csrftoken", Value: session.CSRFToken, Domain: ".instagram.com"},
		})
		httpClient.SetHeader("X-CSRFToken", session.CSRFToken)
		log.Info("instagram session loaded", "username", session.Username)
	}

	return &Client{
		http:    httpClient,
		session: session,
	}
}

func (s *Client) HasSession() bool {
	return s.session != nil
}

// Profile 按用户名拉取账号档案和时间线第一页
func (s *Client) Profile(ctx context.Context, username string) (*profileUser, error) {
	var result profileResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("username", username).
		SetResult(&result).
		Get(profileEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "fetch profile")
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrProfileNotFound
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, ErrLoginRequired
	case resp.IsError():
		return nil, errors.Errorf("fetch profile: unexpected status %d", resp.StatusCode())
	}

	if result.Data.User == nil || result.Data.User.ID == "" {
		return nil, ErrProfileNotFound
	}
	return result.Data.User, nil
}

// MediaPage 按游标拉取账号时间线的下一页
func (s *Client) MediaPage(ctx context.Context, userID string, after string) (*timelineMedia, error) {
	variables := map[string]interface{}{
		"id":    userID,
		"first": pageSize,
	}
	if after != "" {
		variables["after"] = after
	}
	variablesJSON, err := json.Marshal(variables)
	if err != nil {
		return nil, errors.Wrap(err, "marshal query variables")
	}

	var result mediaPageResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query_hash": mediaQueryHash,
			"variables":  string(variablesJSON),
		}).
		SetResult(&result).
		Get(mediaEndpoint)
	if err != nil {
		return nil, errors.Wrap(err, "fetch media page")
	}
	if resp.IsError() {
		return nil, errors.Errorf("fetch media page: unexpected status %d", resp.StatusCode())
	}

	return &result.Data.User.EdgeOwnerToTimelineMedia, nil
}

// Post 按 shortcode 拉取单条帖子
func (s *Client) Post(ctx context.Context, shortcode string) (*mediaNode, error) {
	var result postResponse
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"__a": "1",
			"__d": "dis",
		}).
		SetResult(&result).
		Get("/p/" + shortcode + "/")
	if err != nil {
		return nil, errors.Wrap(err, "fetch post")
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrPostNotFound
	case resp.IsError():
		return nil, errors.Errorf("fetch post: unexpected status %d", resp.StatusCode())
	}

	if result.RequiresToLogin {
		return nil, ErrLoginRequired
	}
	if result.GraphQL.ShortcodeMedia == nil {
		return nil, ErrPostNotFound
	}
	return result.GraphQL.ShortcodeMedia, nil
}

// DownloadFile 将指定地址的媒体字节落盘到 destPath
func (s *Client) DownloadFile(ctx context.Context, rawURL string, destPath string) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetOutput(destPath).
		Get(rawURL)
	if err != nil {
		return errors.Wrap(err, "download media")
	}
	if resp.IsError() {
		return errors.Errorf("download media: unexpected status %d", resp.StatusCode())
	}
	return nil
}
