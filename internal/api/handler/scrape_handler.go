package handler

import (
	"Anatome/internal/api/dto"
	"Anatome/internal/pkg/consts"
	"Anatome/internal/pkg/response"
	"Anatome/internal/service"
	"regexp"

	"github.com/gin-gonic/gin"
)

// usernamePattern 上游平台合法用户名：字母数字、点、下划线，至多 30 位
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9._]{1,30}$`)

const defaultMaxVideos = 10

type ScrapeHandler struct {
	scrapeSvc service.ScrapeService
	limitsSvc service.LimitsService
}

func NewScrapeHandler(scrapeSvc service.ScrapeService, limitsSvc service.LimitsService) *ScrapeHandler {
	return &ScrapeHandler{
		scrapeSvc: scrapeSvc,
		limitsSvc: limitsSvc,
	}
}

// ScrapeProfile 受理账号批量抓取任务，配额内裁剪数量后转入后台执行
func (s *ScrapeHandler) ScrapeProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.ScrapeProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if !usernamePattern.MatchString(req.Username) {
		response.Error(c, service.ErrUsernameInvalid)
		return
	}
	if req.MaxVideos <= 0 {
		req.MaxVideos = defaultMaxVideos
	}

	quota := s.limitsSvc.CheckLimit(c.Request.Context(), userID, 1)
	if quota.Remaining <= 0 {
		response.FailWithData(c, response.QuotaExceeded, service.ErrQuotaExceeded.Error(), quota)
		return
	}

	// 配额不足请求量时按剩余额度裁剪
	maxVideos := req.MaxVideos
	if int64(maxVideos) > quota.Remaining {
		maxVideos = int(quota.Remaining)
	}

	s.scrapeSvc.RunProfileScrape(req.Username, userID, req.SocialProfileID, req.BusinessID, maxVideos)

	response.Success(c, &dto.ScrapeAcceptedDTO{
		Username:  req.Username,
		MaxVideos: maxVideos,
		Status:    consts.ScrapeStatusRunning,
	})
}

// ScrapeVideo 同步抓取单条视频
func (s *ScrapeHandler) ScrapeVideo(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.ScrapeVideoDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	quota := s.limitsSvc.CheckLimit(c.Request.Context(), userID, 1)
	if !quota.Allowed {
		response.FailWithData(c, response.QuotaExceeded, service.ErrQuotaExceeded.Error(), quota)
		return
	}

	video, err := s.scrapeSvc.ScrapeOne(c.Request.Context(), req.VideoURL, userID, req.SocialProfileID, req.BusinessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, video)
}

// ScrapeStatus 查询后台抓取任务进度
func (s *ScrapeHandler) ScrapeStatus(c *gin.Context) {
	username := c.Param("username")
	if !usernamePattern.MatchString(username) {
		response.Error(c, service.ErrUsernameInvalid)
		return
	}

	status, err := s.scrapeSvc.GetScrapeStatus(c.Request.Context(), c.GetString("user_id"), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, status)
}

// ProfileInfo 拉取账号档案概要
func (s *ScrapeHandler) ProfileInfo(c *gin.Context) {
	username := c.Param("username")
	if !usernamePattern.MatchString(username) {
		response.Error(c, service.ErrUsernameInvalid)
		return
	}

	info, err := s.scrapeSvc.GetProfileInfo(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}
