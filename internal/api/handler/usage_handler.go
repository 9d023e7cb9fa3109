package handler

import (
	"Anatome/internal/pkg/response"
	"Anatome/internal/service"

	"github.com/gin-gonic/gin"
)

type UsageHandler struct {
	limitsSvc service.LimitsService
}

func NewUsageHandler(limitsSvc service.LimitsService) *UsageHandler {
	return &UsageHandler{
		limitsSvc: limitsSvc,
	}
}

// Usage 当前用户的当月用量统计
func (s *UsageHandler) Usage(c *gin.Context) {
	userID := c.GetString("user_id")
	response.Success(c, s.limitsSvc.UsageStats(c.Request.Context(), userID))
}

// Limits 各订阅档位的月度上限
func (s *UsageHandler) Limits(c *gin.Context) {
	response.Success(c, s.limitsSvc.SubscriptionLimits())
}
