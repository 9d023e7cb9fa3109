package handler

import (
	"Anatome/internal/pkg/response"
	"Anatome/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	videoSvc service.VideoService
}

func NewVideoHandler(videoSvc service.VideoService) *VideoHandler {
	return &VideoHandler{
		videoSvc: videoSvc,
	}
}

// ListByBusiness 按业务分页查询视频记录
func (s *VideoHandler) ListByBusiness(c *gin.Context) {
	businessID := c.Param("business_id")
	if businessID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	videos, err := s.videoSvc.ListByBusiness(c.Request.Context(), businessID, skip, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, videos)
}

// DeleteVideo 删除视频记录及其托管媒体
func (s *VideoHandler) DeleteVideo(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.videoSvc.DeleteVideo(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
