package middleware

import (
	"Anatome/internal/pkg/response"
	"Anatome/internal/service"
	"context"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验调用方身份并将用户信息注入 Context。
// 身份由上游网关完成认证后通过 X-User-ID 透传。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			response.Fail(c, response.Unauthorized, service.ErrMissingLoginCredentials.Error())
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", userID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
