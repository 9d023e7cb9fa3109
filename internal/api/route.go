package api

import (
	"Anatome/internal/api/middleware"
	"Anatome/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		apiGroup.GET("/health", group.HealthHandler.Health)

		scrapeGroup := apiGroup.Group("/scrape")
		scrapeGroup.Use(middleware.AuthMiddleware())
		{
			scrapeGroup.POST("/profile", group.ScrapeHandler.ScrapeProfile)
			scrapeGroup.POST("/video", group.ScrapeHandler.ScrapeVideo)
			scrapeGroup.GET("/status/:username", group.ScrapeHandler.ScrapeStatus)
			scrapeGroup.GET("/profile-info/:username", group.ScrapeHandler.ProfileInfo)
		}

		videoGroup := apiGroup.Group("/videos")
		videoGroup.Use(middleware.AuthMiddleware())
		{
			videoGroup.GET("/:business_id", group.VideoHandler.ListByBusiness)
			videoGroup.DELETE("/:id", group.VideoHandler.DeleteVideo)
		}

		usageGroup := apiGroup.Group("")
		usageGroup.Use(middleware.AuthMiddleware())
		{
			usageGroup.GET("/usage", group.UsageHandler.Usage)
			usageGroup.GET("/limits", group.UsageHandler.Limits)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.GET("/presigned", group.MediaHandler.PresignedURL)
			mediaGroup.GET("/stat", group.MediaHandler.StatFile)
			mediaGroup.GET("/list", group.MediaHandler.ListFiles)
		}
	}

	return r
}
